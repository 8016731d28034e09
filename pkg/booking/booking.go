package booking

import (
	"context"
	"errors"
	"fmt"
	"log"

	"staybooking/pkg/api"
	"staybooking/pkg/models"
)

var (
	ErrNotAuthenticated = errors.New("login required to book")
	ErrBookingFailed    = errors.New("Error creating booking. Please check dates.")
)

type Backend interface {
	Fetch(ctx context.Context, path string, out interface{}) error
	Submit(ctx context.Context, path string, body, out interface{}) error
}

type Identity interface {
	Authenticated() bool
}

// View names the listing a booking is shown in.
type View int

const (
	ViewMine View = iota
	ViewManaged
)

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionReject  Action = "reject"
)

// Listings is the dashboard state: the guest's trips and the requests for
// rooms the user owns. Each side fails independently.
type Listings struct {
	Mine       []models.Booking
	Managed    []models.Booking
	MineErr    error
	ManagedErr error
}

type Controller struct {
	api      Backend
	identity Identity
	log      *log.Logger
}

func NewController(backend Backend, identity Identity, logger *log.Logger) *Controller {
	return &Controller{api: backend, identity: identity, log: logger}
}

// Create requests a stay. Date ordering and availability are the backend's
// call; the result is always PENDING until the owner acts on it.
func (c *Controller) Create(ctx context.Context, roomID int64, checkIn, checkOut string) (models.Booking, error) {
	if c.identity == nil || !c.identity.Authenticated() {
		return models.Booking{}, ErrNotAuthenticated
	}

	req := models.BookingRequest{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut}
	var booking models.Booking
	if err := c.api.Submit(ctx, "/bookings", req, &booking); err != nil {
		var be *api.BusinessError
		if errors.As(err, &be) && be.Message == "" {
			return models.Booking{}, ErrBookingFailed
		}
		return models.Booking{}, err
	}
	c.logf("Requested booking %d for room %d (%s..%s)", booking.ID, roomID, checkIn, checkOut)
	return booking, nil
}

func (c *Controller) ListMine(ctx context.Context) ([]models.Booking, error) {
	return c.list(ctx, "/bookings/my")
}

func (c *Controller) ListManaged(ctx context.Context) ([]models.Booking, error) {
	return c.list(ctx, "/bookings/managed")
}

func (c *Controller) list(ctx context.Context, path string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if err := c.api.Fetch(ctx, path, &bookings); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	return bookings, nil
}

func (c *Controller) Load(ctx context.Context) Listings {
	var l Listings
	l.Mine, l.MineErr = c.ListMine(ctx)
	l.Managed, l.ManagedErr = c.ListManaged(ctx)
	return l
}

// Confirm and Reject return the re-read listings; the previous ones are
// stale after any decision.
func (c *Controller) Confirm(ctx context.Context, id int64) (Listings, error) {
	return c.decide(ctx, id, ActionConfirm)
}

func (c *Controller) Reject(ctx context.Context, id int64) (Listings, error) {
	return c.decide(ctx, id, ActionReject)
}

func (c *Controller) decide(ctx context.Context, id int64, action Action) (Listings, error) {
	path := fmt.Sprintf("/bookings/%d/%s", id, action)
	if err := c.api.Submit(ctx, path, struct{}{}, nil); err != nil {
		return Listings{}, err
	}
	c.logf("Booking %d: %s", id, action)
	return c.Load(ctx), nil
}

// Actions lists what the user may do with a booking in the given view.
// Only pending requests for the user's own rooms can be decided.
func Actions(view View, b models.Booking) []Action {
	if view != ViewManaged || b.Status != models.StatusPending {
		return nil
	}
	return []Action{ActionConfirm, ActionReject}
}

func (c *Controller) logf(format string, args ...interface{}) {
	if c.log != nil {
		c.log.Printf(format, args...)
	}
}
