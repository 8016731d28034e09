package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"staybooking/pkg/i18n"
	"staybooking/pkg/models"
	"staybooking/pkg/rooms"
)

func newRoomsCmd(a *app) *cobra.Command {
	var q rooms.Query

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Search available rooms",
		Long: `Search rooms by city, party size and dates.

Examples:
  staybooking rooms
  staybooking rooms --city Nice --guests 2 --check-in 2024-06-01 --check-out 2024-06-03`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		found, err := a.rooms.Search(cmd.Context(), q)
		if err != nil {
			return a.fail(err)
		}
		if a.json {
			return a.out.JSON(found)
		}

		a.out.Section(a.t(i18n.AvailableRooms))
		if len(found) == 0 {
			a.out.Muted("%s", a.t(i18n.NoRooms))
			return nil
		}
		for _, r := range found {
			a.printRoomSummary(r)
		}
		return nil
	})

	cmd.Flags().StringVar(&q.City, "city", "", "City to search in")
	cmd.Flags().IntVar(&q.Guests, "guests", 1, "Number of guests")
	cmd.Flags().StringVar(&q.CheckIn, "check-in", "", "Check-in date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&q.CheckOut, "check-out", "", "Check-out date, YYYY-MM-DD (default tomorrow)")
	return cmd
}

func newRoomCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room <id>",
		Short: "Show a room with its reviews",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := a.rooms.Detail(cmd.Context(), id)
		if err != nil {
			return a.fail(err)
		}
		if a.json {
			return a.out.JSON(d)
		}

		a.out.Section(d.Room.Title)
		a.out.Line("%s · %s %s", d.Room.City, a.t(i18n.HostedBy), d.Room.OwnerName)
		a.out.Line("%s %s · %d %s", money(d.Room.PricePerNight), a.t(i18n.PerNight), d.Room.MaxGuests, a.t(i18n.Guests))
		a.out.Line("")
		a.out.Line("%s", d.Room.Description)

		a.out.Section(a.t(i18n.Reviews))
		if len(d.Reviews) == 0 {
			a.out.Muted("%s", a.t(i18n.NoReviews))
		}
		for _, r := range d.Reviews {
			a.out.Line("%d/5 %s: %s", r.Rating, r.UserName, r.Comment)
		}
		if !a.session.Authenticated() {
			a.out.Line("")
			a.out.Muted("%s", a.t(i18n.LoginToBook))
		}
		return nil
	})
	return cmd
}

func (a *app) printRoomSummary(r models.Room) {
	a.out.Line("#%d  %s (%s)", r.ID, r.Title, r.City)
	a.out.Muted("     %s %s · %d %s · %s: %s",
		money(r.PricePerNight), a.t(i18n.PerNight), r.MaxGuests, a.t(i18n.Guests), a.t(i18n.Host), r.OwnerName)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func money(v float64) string {
	return "€" + strconv.FormatFloat(v, 'f', -1, 64)
}
