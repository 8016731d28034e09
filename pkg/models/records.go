package models

import (
	"time"
)

// Records below are the reference backend's persistent rows. The client never
// touches them directly.

type AccountRecord struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	Name         string `gorm:"size:120;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AccountRecord) TableName() string { return "users" }

func (a AccountRecord) ToModel() User {
	return User{ID: a.ID, Email: a.Email, Name: a.Name}
}

type RoomRecord struct {
	ID            int64   `gorm:"primaryKey"`
	Title         string  `gorm:"size:200;not null"`
	Description   string  `gorm:"type:text"`
	City          string  `gorm:"size:120;not null;index"`
	PricePerNight float64 `gorm:"not null;check:price_per_night > 0"`
	MaxGuests     int     `gorm:"not null;check:max_guests >= 1"`
	ImageURL      string
	OwnerID       int64         `gorm:"not null;index"`
	Owner         AccountRecord `gorm:"foreignKey:OwnerID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (RoomRecord) TableName() string { return "rooms" }

func (r RoomRecord) ToModel() Room {
	return Room{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		City:          r.City,
		PricePerNight: r.PricePerNight,
		MaxGuests:     r.MaxGuests,
		ImageURL:      r.ImageURL,
		OwnerName:     r.Owner.Name,
	}
}

type BookingRecord struct {
	ID         int64         `gorm:"primaryKey"`
	RoomID     int64         `gorm:"not null;index"`
	Room       RoomRecord    `gorm:"foreignKey:RoomID"`
	UserID     int64         `gorm:"not null;index"`
	User       AccountRecord `gorm:"foreignKey:UserID"`
	CheckIn    time.Time     `gorm:"not null"`
	CheckOut   time.Time     `gorm:"not null"`
	TotalPrice float64
	Status     string `gorm:"size:20;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (BookingRecord) TableName() string { return "bookings" }

// ToModel expects Room and User to be preloaded.
func (b BookingRecord) ToModel() Booking {
	return Booking{
		ID:         b.ID,
		RoomID:     b.RoomID,
		RoomTitle:  b.Room.Title,
		UserID:     b.UserID,
		UserName:   b.User.Name,
		UserEmail:  b.User.Email,
		CheckIn:    b.CheckIn.Format(DateLayout),
		CheckOut:   b.CheckOut.Format(DateLayout),
		TotalPrice: b.TotalPrice,
		Status:     BookingStatus(b.Status),
	}
}

type ReviewRecord struct {
	ID        int64         `gorm:"primaryKey"`
	RoomID    int64         `gorm:"not null;index"`
	UserID    int64         `gorm:"not null"`
	User      AccountRecord `gorm:"foreignKey:UserID"`
	Rating    int           `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string        `gorm:"type:text"`
	CreatedAt time.Time
}

func (ReviewRecord) TableName() string { return "reviews" }

func (r ReviewRecord) ToModel() Review {
	return Review{
		ID:        r.ID,
		RoomID:    r.RoomID,
		UserName:  r.User.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
