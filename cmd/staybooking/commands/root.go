package commands

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"staybooking/cmd/staybooking/output"
	"staybooking/pkg/api"
	"staybooking/pkg/booking"
	"staybooking/pkg/config"
	"staybooking/pkg/i18n"
	"staybooking/pkg/models"
	"staybooking/pkg/rooms"
	"staybooking/pkg/session"
	"staybooking/pkg/storage"
)

// globalFlags override the environment configuration.
type globalFlags struct {
	apiURL     string
	dataPath   string
	lang       string
	offline    bool
	jsonOutput bool
	verbose    bool
}

// app is the wired client for one command invocation.
type app struct {
	cfg      *config.ClientConfig
	lang     models.Language
	json     bool
	out      *output.Printer
	store    *storage.Store
	session  *session.Session
	auth     *session.Service
	rooms    *rooms.Service
	bookings *booking.Controller
}

func (a *app) t(key i18n.Key) string {
	return i18n.T(a.lang, key)
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

// run wraps a command body so the data file is closed whatever the outcome.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return fn(cmd, args)
	}
}

// reportedError has already been shown to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}
	a := &app{}

	root := &cobra.Command{
		Use:   "staybooking",
		Short: "StayBooking - find rooms, book stays, manage requests",
		Long: `StayBooking is a client for the StayBooking accommodation API.

Guests search rooms and request stays; hosts confirm or reject requests
for the rooms they own. When the API is unreachable the client keeps
working against a local demo backend stored in the data file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.apiURL, "api", "", "API base URL (env STAYBOOKING_API)")
	root.PersistentFlags().StringVar(&flags.dataPath, "data", "", "Local data file (env STAYBOOKING_DATA)")
	root.PersistentFlags().StringVar(&flags.lang, "lang", "", "Interface language: en or de (env STAYBOOKING_LANG)")
	root.PersistentFlags().BoolVar(&flags.offline, "offline", false, "Use the local demo backend only")
	root.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newRoomsCmd(a),
		newRoomCmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newBookCmd(a),
		newBookingsCmd(a),
		newDecisionCmd(a, booking.ActionConfirm),
		newDecisionCmd(a, booking.ActionReject),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, flags *globalFlags) error {
	logOut := io.Discard
	if flags.verbose {
		logOut = cmd.ErrOrStderr()
	}
	logger := log.New(logOut, "[staybooking] ", log.LstdFlags)

	config.LoadDotEnv(logger)
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if flags.apiURL != "" {
		cfg.APIBaseURL = flags.apiURL
	}
	if flags.dataPath != "" {
		cfg.DataPath = flags.dataPath
	}
	if flags.lang != "" {
		cfg.Language = models.ParseLanguage(flags.lang)
	}
	if flags.offline {
		cfg.Offline = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := storage.Open(cfg.DataPath)
	if err != nil {
		return err
	}

	sess := session.New(store, logger)
	if err := sess.Restore(); err != nil {
		store.Close()
		return err
	}

	client := api.NewClient(api.Options{
		BaseURL:         cfg.APIBaseURL,
		Timeout:         cfg.Timeout,
		Offline:         cfg.Offline,
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
		Logger:          logger,
	}, sess, api.NewMockBackend(store, sess))

	a.cfg = cfg
	a.lang = cfg.Language
	a.json = flags.jsonOutput
	a.out = output.New(cmd.OutOrStdout())
	a.store = store
	a.session = sess
	a.auth = session.NewService(sess, client, logger)
	a.rooms = rooms.NewService(client)
	a.bookings = booking.NewController(client, sess, logger)
	return nil
}

// fail prints err in the user's language and returns it so the command
// exits non-zero.
func (a *app) fail(err error) error {
	a.out.Error("%s", a.describe(err))
	return reportedError{err}
}

func (a *app) describe(err error) string {
	var be *api.BusinessError
	switch {
	case errors.Is(err, api.ErrEmailTaken):
		return a.t(i18n.EmailTaken)
	case errors.Is(err, api.ErrInvalidCredentials):
		return a.t(i18n.LoginError)
	case errors.Is(err, models.ErrInvalidEmail):
		return a.t(i18n.InvalidEmail)
	case errors.Is(err, booking.ErrNotAuthenticated):
		return a.t(i18n.LoginToBook)
	case errors.Is(err, booking.ErrBookingFailed):
		return a.t(i18n.BookingError)
	case errors.As(err, &be):
		return be.Error()
	}
	return fmt.Sprintf("%s: %v", a.t(i18n.UnexpectedError), err)
}
