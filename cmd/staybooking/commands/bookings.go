package commands

import (
	"github.com/spf13/cobra"

	"staybooking/cmd/staybooking/output"
	"staybooking/pkg/booking"
	"staybooking/pkg/i18n"
	"staybooking/pkg/models"
	"staybooking/pkg/rooms"
)

func newBookCmd(a *app) *cobra.Command {
	var stay rooms.Query

	cmd := &cobra.Command{
		Use:   "book <roomId>",
		Short: "Request a stay in a room",
		Long: `Request a stay. The booking stays PENDING until the room's owner
confirms or rejects it.

Examples:
  staybooking book 1 --check-in 2024-06-01 --check-out 2024-06-03`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		stay = a.rooms.Defaults(stay)

		b, err := a.bookings.Create(cmd.Context(), id, stay.CheckIn, stay.CheckOut)
		if err != nil {
			return a.fail(err)
		}
		if a.json {
			return a.out.JSON(b)
		}
		a.out.Success("%s", a.t(i18n.BookingSuccess))
		a.printBooking(booking.ViewMine, b)
		return nil
	})

	cmd.Flags().StringVar(&stay.CheckIn, "check-in", "", "Check-in date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&stay.CheckOut, "check-out", "", "Check-out date, YYYY-MM-DD (default tomorrow)")
	return cmd
}

func newBookingsCmd(a *app) *cobra.Command {
	var managed bool

	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List your trips, or requests for rooms you own",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		view := booking.ViewMine
		list := a.bookings.ListMine
		if managed {
			view = booking.ViewManaged
			list = a.bookings.ListManaged
		}

		found, err := list(cmd.Context())
		if err != nil {
			a.out.Error("%s: %s", a.t(i18n.LoadBookingsFailed), a.describe(err))
			return reportedError{err}
		}
		if a.json {
			return a.out.JSON(found)
		}
		a.printListing(view, found)
		return nil
	})

	cmd.Flags().BoolVar(&managed, "managed", false, "Show requests for rooms you own")
	return cmd
}

func newDecisionCmd(a *app, action booking.Action) *cobra.Command {
	short := "Confirm a pending request for one of your rooms"
	if action == booking.ActionReject {
		short = "Reject a pending request for one of your rooms"
	}

	cmd := &cobra.Command{
		Use:   string(action) + " <bookingId>",
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		decide, done := a.bookings.Confirm, i18n.BookingConfirmed
		if action == booking.ActionReject {
			decide, done = a.bookings.Reject, i18n.BookingRejected
		}

		l, err := decide(cmd.Context(), id)
		if err != nil {
			return a.fail(err)
		}
		if a.json {
			return a.out.JSON(l.Managed)
		}
		a.out.Success("%s", a.t(done))
		if l.ManagedErr != nil {
			a.out.Warning("%s: %s", a.t(i18n.LoadBookingsFailed), a.describe(l.ManagedErr))
			return nil
		}
		a.printListing(booking.ViewManaged, l.Managed)
		return nil
	})
	return cmd
}

func (a *app) printListing(view booking.View, list []models.Booking) {
	title := a.t(i18n.MyTrips)
	if view == booking.ViewManaged {
		title = a.t(i18n.ManagedRequests)
	}
	a.out.Section(title)
	if len(list) == 0 {
		a.out.Muted("%s", a.t(i18n.NoBookings))
		return
	}
	for _, b := range list {
		a.printBooking(view, b)
	}
}

func (a *app) printBooking(view booking.View, b models.Booking) {
	a.out.Line("#%d  %s  %s", b.ID, b.RoomTitle, output.Status(b.Status))
	a.out.Muted("     %s → %s · %s: %s", b.CheckIn, b.CheckOut, a.t(i18n.TotalPrice), money(b.TotalPrice))
	if view == booking.ViewManaged && b.UserName != "" {
		a.out.Muted("     %s: %s <%s>", a.t(i18n.Guest), b.UserName, b.UserEmail)
	}
	for _, action := range booking.Actions(view, b) {
		a.out.Muted("     staybooking %s %d", action, b.ID)
	}
}
