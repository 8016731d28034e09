package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybooking/pkg/models"
	"staybooking/pkg/storage"
)

func newTestMock(t *testing.T, sess SessionReader) (*MockBackend, *storage.Store) {
	t.Helper()
	store := setupTestStore(t)
	m := NewMockBackend(store, sess)
	clock := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return m, store
}

func TestMockGetRooms(t *testing.T) {
	m, _ := newTestMock(t, nil)

	tests := []struct {
		name     string
		path     string
		expected interface{}
	}{
		{name: "catalogue", path: "/rooms", expected: SampleRooms},
		{name: "catalogue with search query", path: "/rooms?city=Nice&guests=2", expected: SampleRooms},
		{name: "known room", path: "/rooms/2", expected: SampleRooms[1]},
		{name: "unknown room falls back to first", path: "/rooms/99", expected: SampleRooms[0]},
		{name: "reviews are empty", path: "/rooms/1/reviews", expected: []models.Review{}},
		{name: "managed bookings are empty", path: "/bookings/managed", expected: []models.Booking{}},
		{name: "my bookings start empty", path: "/bookings/my", expected: []models.Booking{}},
		{name: "unknown path", path: "/favourites", expected: []interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Get(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMockUnknownPost(t *testing.T) {
	m, _ := newTestMock(t, nil)

	got, err := m.Post("/bookings/5/confirm", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"success": true}, got)
}

func TestMockRegisterTwice(t *testing.T) {
	m, _ := newTestMock(t, nil)

	first, err := m.Post("/auth/register", models.Profile{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	firstUser := first.(models.AuthResponse).User

	_, err = m.Post("/auth/register", models.Profile{Name: "Impostor", Email: "a@x.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	users, err := m.users()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, firstUser, users[0])
	assert.Equal(t, "A", users[0].Name)
}

func TestMockLogin(t *testing.T) {
	m, _ := newTestMock(t, nil)

	_, err := m.Post("/auth/login", models.Credentials{Email: "stranger@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	host, err := m.Post("/auth/login", models.Credentials{Email: DemoHostEmail, Password: "anything"})
	require.NoError(t, err)
	resp := host.(models.AuthResponse)
	assert.Equal(t, MockToken, resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "John Host", resp.User.Name)
}

func TestMockRegisterThenLogin(t *testing.T) {
	m, _ := newTestMock(t, nil)

	reg, err := m.Post("/auth/register", models.Profile{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	login, err := m.Post("/auth/login", models.Credentials{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, reg.(models.AuthResponse).User.ID, login.(models.AuthResponse).User.ID)
}

func TestMockCreateBooking(t *testing.T) {
	guest := models.User{ID: 42, Name: "A", Email: "a@x.com"}
	m, store := newTestMock(t, &staticSession{token: MockToken, user: &guest})

	got, err := m.Post("/bookings", models.BookingRequest{RoomID: 1, CheckIn: "2024-06-01", CheckOut: "2024-06-04"})
	require.NoError(t, err)

	b := got.(models.Booking)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, "Luxury Beachfront Apartment", b.RoomTitle)
	assert.Equal(t, int64(42), b.UserID)
	assert.Equal(t, 360.0, b.TotalPrice)
	assert.NotZero(t, b.ID)

	// A fresh responder over the same store sees the persisted booking.
	again := NewMockBackend(store, nil)
	mine, err := again.Get("/bookings/my")
	require.NoError(t, err)
	assert.Equal(t, []models.Booking{b}, mine)
}

func TestMockBookingPriceDefaultsToTwoNights(t *testing.T) {
	m, _ := newTestMock(t, nil)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{name: "unparseable dates", checkIn: "", checkOut: ""},
		{name: "reversed dates", checkIn: "2024-06-03", checkOut: "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Post("/bookings", models.BookingRequest{RoomID: 2, CheckIn: tt.checkIn, CheckOut: tt.checkOut})
			require.NoError(t, err)
			assert.Equal(t, 170.0, got.(models.Booking).TotalPrice)
		})
	}
}

func TestMockUnknownRoomBookingUsesFirstRoom(t *testing.T) {
	m, _ := newTestMock(t, nil)

	got, err := m.Post("/bookings", models.BookingRequest{RoomID: 77, CheckIn: "2024-06-01", CheckOut: "2024-06-02"})
	require.NoError(t, err)

	b := got.(models.Booking)
	assert.Equal(t, int64(77), b.RoomID)
	assert.Equal(t, SampleRooms[0].Title, b.RoomTitle)
	assert.Equal(t, 120.0, b.TotalPrice)
}
