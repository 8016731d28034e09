package commands

import (
	"github.com/spf13/cobra"

	"staybooking/pkg/i18n"
	"staybooking/pkg/models"
)

func newLoginCmd(a *app) *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		user, err := a.auth.Login(cmd.Context(), creds)
		if err != nil {
			return a.fail(err)
		}
		return a.printUser(user)
	})

	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var profile models.Profile

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		user, err := a.auth.Register(cmd.Context(), profile)
		if err != nil {
			return a.fail(err)
		}
		return a.printUser(user)
	})

	cmd.Flags().StringVar(&profile.Name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&profile.Email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&profile.Password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		if err := a.auth.Logout(); err != nil {
			return a.fail(err)
		}
		a.out.Success("%s", a.t(i18n.LoggedOut))
		return nil
	})
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		user, ok := a.session.User()
		if !ok {
			if a.json {
				return a.out.JSON(nil)
			}
			a.out.Info("%s", a.t(i18n.NotLoggedIn))
			return nil
		}
		return a.printUser(user)
	})
	return cmd
}

func (a *app) printUser(user models.User) error {
	if a.json {
		return a.out.JSON(user)
	}
	a.out.Success("%s %s <%s>", a.t(i18n.LoggedInAs), user.Name, user.Email)
	return nil
}
