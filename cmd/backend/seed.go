package main

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"staybooking/pkg/api"
	"staybooking/pkg/models"
)

const (
	demoHostName     = "John Host"
	demoHostPassword = "password123"
)

// seedData creates the demo host and the sample catalogue once. Rooms are
// seeded only into an empty table.
func seedData() error {
	var host models.AccountRecord
	err := db.Where("email = ?", api.DemoHostEmail).First(&host).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := hashPassword(demoHostPassword)
		if err != nil {
			return fmt.Errorf("hash demo password: %w", err)
		}
		host = models.AccountRecord{Email: api.DemoHostEmail, Name: demoHostName, PasswordHash: hash}
		if err := db.Create(&host).Error; err != nil {
			return fmt.Errorf("create demo host: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("look up demo host: %w", err)
	}

	var count int64
	if err := db.Model(&models.RoomRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		log.Println("Rooms already present, skipping catalogue seed")
		return nil
	}

	for _, r := range api.SampleRooms {
		room := models.RoomRecord{
			Title:         r.Title,
			Description:   r.Description,
			City:          r.City,
			PricePerNight: r.PricePerNight,
			MaxGuests:     r.MaxGuests,
			ImageURL:      r.ImageURL,
			OwnerID:       host.ID,
		}
		if err := room.ToModel().Validate(); err != nil {
			return fmt.Errorf("sample room %q: %w", r.Title, err)
		}
		if err := db.Create(&room).Error; err != nil {
			return fmt.Errorf("create room %q: %w", r.Title, err)
		}
	}
	log.Println("Demo data seeded")
	return nil
}
