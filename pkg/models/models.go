package models

import (
	"time"
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Room is a listing as the backend presents it. OwnerName is copied from the
// owner's account for display only.
type Room struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	City          string  `json:"city"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxGuests     int     `json:"maxGuests"`
	ImageURL      string  `json:"imageUrl"`
	OwnerName     string  `json:"ownerName"`
}

// Booking carries display snapshots of the room title and, in host-facing
// listings, the guest identity. They are never used for pricing or
// authorization.
type Booking struct {
	ID         int64         `json:"id"`
	RoomID     int64         `json:"roomId"`
	RoomTitle  string        `json:"roomTitle"`
	UserID     int64         `json:"userId"`
	UserName   string        `json:"userName,omitempty"`
	UserEmail  string        `json:"userEmail,omitempty"`
	CheckIn    string        `json:"checkIn"`
	CheckOut   string        `json:"checkOut"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
}

type Review struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"roomId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BookingRequest struct {
	RoomID   int64  `json:"roomId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

type Language string

const (
	LanguageEN Language = "en"
	LanguageDE Language = "de"
)

func ParseLanguage(s string) Language {
	if Language(s) == LanguageDE {
		return LanguageDE
	}
	return LanguageEN
}
