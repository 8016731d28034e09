package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"staybooking/pkg/models"
	"staybooking/pkg/storage"
)

const (
	DemoHostEmail = "host@example.com"
	MockToken     = "mock-jwt-token"

	// mockDefaultNights prices a mock booking whose dates do not parse into
	// a positive stay.
	mockDefaultNights = 2
)

var SampleRooms = []models.Room{
	{
		ID:            1,
		Title:         "Luxury Beachfront Apartment",
		Description:   "Stunning view of the ocean with all modern amenities. Perfect for a relaxing getaway.",
		City:          "Nice",
		PricePerNight: 120,
		MaxGuests:     4,
		ImageURL:      "https://images.unsplash.com/photo-1499793983690-e29da59ef1c2?auto=format&fit=crop&w=800&q=80",
		OwnerName:     "John Host",
	},
	{
		ID:            2,
		Title:         "Modern City Loft",
		Description:   "Located in the heart of Berlin, perfect for business trips or urban exploration.",
		City:          "Berlin",
		PricePerNight: 85,
		MaxGuests:     2,
		ImageURL:      "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?auto=format&fit=crop&w=800&q=80",
		OwnerName:     "John Host",
	},
}

var roomPathPattern = regexp.MustCompile(`^/rooms/(\d+)`)

// MockBackend answers requests locally when the backend is unreachable. Its
// users and bookings persist in the local store so a demo survives restarts.
type MockBackend struct {
	store   *storage.Store
	session SessionReader
	now     func() time.Time
}

func NewMockBackend(store *storage.Store, session SessionReader) *MockBackend {
	return &MockBackend{store: store, session: session, now: time.Now}
}

func (m *MockBackend) Get(path string) (interface{}, error) {
	p := trimQuery(path)

	switch {
	case strings.HasPrefix(p, "/rooms"):
		if strings.Contains(p, "/reviews") {
			return []models.Review{}, nil
		}
		if match := roomPathPattern.FindStringSubmatch(p); match != nil {
			id, _ := strconv.ParseInt(match[1], 10, 64)
			return findRoom(id), nil
		}
		return SampleRooms, nil
	case p == "/bookings/my":
		return m.bookings()
	case p == "/bookings/managed":
		return []models.Booking{}, nil
	}
	return []interface{}{}, nil
}

func (m *MockBackend) Post(path string, body interface{}) (interface{}, error) {
	switch trimQuery(path) {
	case "/auth/login":
		var creds models.Credentials
		if err := convert(body, &creds); err != nil {
			return nil, err
		}
		return m.login(creds)
	case "/auth/register":
		var profile models.Profile
		if err := convert(body, &profile); err != nil {
			return nil, err
		}
		return m.register(profile)
	case "/bookings":
		var req models.BookingRequest
		if err := convert(body, &req); err != nil {
			return nil, err
		}
		return m.createBooking(req)
	}
	return map[string]bool{"success": true}, nil
}

func (m *MockBackend) login(creds models.Credentials) (models.AuthResponse, error) {
	users, err := m.users()
	if err != nil {
		return models.AuthResponse{}, err
	}
	for _, u := range users {
		if u.Email == creds.Email {
			return models.AuthResponse{Token: MockToken, User: u}, nil
		}
	}
	if creds.Email != DemoHostEmail {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	return models.AuthResponse{
		Token: MockToken,
		User:  models.User{ID: 1, Name: "John Host", Email: creds.Email},
	}, nil
}

func (m *MockBackend) register(profile models.Profile) (models.AuthResponse, error) {
	users, err := m.users()
	if err != nil {
		return models.AuthResponse{}, err
	}
	for _, u := range users {
		if u.Email == profile.Email {
			return models.AuthResponse{}, ErrEmailTaken
		}
	}

	user := models.User{ID: m.now().UnixMilli(), Name: profile.Name, Email: profile.Email}
	users = append(users, user)
	if err := m.store.SetJSON(storage.KeyMockUsers, users); err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: MockToken, User: user}, nil
}

func (m *MockBackend) createBooking(req models.BookingRequest) (models.Booking, error) {
	bookings, err := m.bookings()
	if err != nil {
		return models.Booking{}, err
	}

	room := findRoom(req.RoomID)
	booking := models.Booking{
		ID:         m.now().UnixMilli(),
		RoomID:     req.RoomID,
		RoomTitle:  room.Title,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalPrice: room.PricePerNight * float64(mockNights(req.CheckIn, req.CheckOut)),
		Status:     models.StatusPending,
	}
	if m.session != nil {
		if u, ok := m.session.User(); ok {
			booking.UserID = u.ID
		}
	}

	bookings = append(bookings, booking)
	if err := m.store.SetJSON(storage.KeyMockBookings, bookings); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (m *MockBackend) users() ([]models.User, error) {
	users := []models.User{}
	if _, err := m.store.GetJSON(storage.KeyMockUsers, &users); err != nil {
		return nil, fmt.Errorf("load mock users: %w", err)
	}
	return users, nil
}

func (m *MockBackend) bookings() ([]models.Booking, error) {
	bookings := []models.Booking{}
	if _, err := m.store.GetJSON(storage.KeyMockBookings, &bookings); err != nil {
		return nil, fmt.Errorf("load mock bookings: %w", err)
	}
	return bookings, nil
}

func findRoom(id int64) models.Room {
	for _, r := range SampleRooms {
		if r.ID == id {
			return r
		}
	}
	return SampleRooms[0]
}

// mockNights prices the stay the guest actually asked for. The web client
// this replaces always charged two nights whatever the dates; two nights is
// kept only for dates that do not form a stay.
func mockNights(checkIn, checkOut string) int {
	in, err := models.ParseDate(checkIn)
	if err != nil {
		return mockDefaultNights
	}
	out, err := models.ParseDate(checkOut)
	if err != nil {
		return mockDefaultNights
	}
	if n := models.Nights(in, out); n > 0 {
		return n
	}
	return mockDefaultNights
}

func trimQuery(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	return u.Path
}

func convert(in, out interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode mock request: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode mock request: %w", err)
	}
	return nil
}
