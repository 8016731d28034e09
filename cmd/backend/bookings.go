package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staybooking/pkg/models"
	"staybooking/pkg/queue"
)

// decisionError is a refusal reported to the caller as 400 with its text.
type decisionError string

func (e decisionError) Error() string { return string(e) }

const (
	errBookingNotPending decisionError = "Booking is not pending."
	errDatesTaken        decisionError = "Dates are already taken by another confirmed booking."
	errInvalidDates      decisionError = "Invalid booking dates."
)

func createBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	var room models.RoomRecord
	if err := db.Preload("Owner").First(&room, req.RoomID).Error; err != nil {
		c.String(http.StatusBadRequest, "Room not found.")
		return
	}

	checkIn, errIn := models.ParseDate(req.CheckIn)
	checkOut, errOut := models.ParseDate(req.CheckOut)
	if errIn != nil || errOut != nil || checkIn.After(checkOut) || checkIn.Before(today()) {
		c.String(http.StatusBadRequest, errInvalidDates.Error())
		return
	}

	nights := models.Nights(checkIn, checkOut)
	if nights < 1 {
		nights = 1
	}

	record := models.BookingRecord{
		RoomID:     room.ID,
		UserID:     currentUserID(c),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: room.PricePerNight * float64(nights),
		Status:     string(models.StatusPending),
	}
	if err := db.Create(&record).Error; err != nil {
		c.String(http.StatusBadRequest, "Account does not exist.")
		return
	}
	if err := db.Preload("Room").Preload("User").First(&record, record.ID).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	notifyOwner(room, record)
	c.JSON(http.StatusOK, record.ToModel())
}

func getMyBookings(c *gin.Context) {
	var records []models.BookingRecord
	err := db.Preload("Room").Preload("User").
		Where("user_id = ?", currentUserID(c)).
		Order("id").
		Find(&records).Error
	respondWithBookings(c, records, err)
}

func getManagedBookings(c *gin.Context) {
	var records []models.BookingRecord
	err := db.Preload("Room").Preload("User").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.owner_id = ?", currentUserID(c)).
		Order("bookings.id").
		Find(&records).Error
	respondWithBookings(c, records, err)
}

func respondWithBookings(c *gin.Context, records []models.BookingRecord, err error) {
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	bookings := make([]models.Booking, len(records))
	for i, b := range records {
		bookings[i] = b.ToModel()
	}
	c.JSON(http.StatusOK, bookings)
}

func confirmBooking(c *gin.Context) {
	decide(c, models.StatusConfirmed, "confirm")
}

func rejectBooking(c *gin.Context) {
	decide(c, models.StatusRejected, "reject")
}

// decide moves a pending booking to target on behalf of the room's owner.
// Confirming also requires that no other confirmed booking overlaps.
func decide(c *gin.Context, target models.BookingStatus, verb string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ownerID := currentUserID(c)

	var record models.BookingRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").Preload("User").First(&record, id).Error; err != nil {
			return err
		}
		if record.Room.OwnerID != ownerID {
			return decisionError(fmt.Sprintf("Only the owner can %s this booking.", verb))
		}
		if !models.BookingStatus(record.Status).CanTransitionTo(target) {
			return errBookingNotPending
		}

		if target == models.StatusConfirmed {
			var overlapping int64
			err := tx.Model(&models.BookingRecord{}).
				Where("room_id = ? AND id <> ? AND status = ? AND check_in < ? AND check_out > ?",
					record.RoomID, record.ID, string(models.StatusConfirmed), record.CheckOut, record.CheckIn).
				Count(&overlapping).Error
			if err != nil {
				return err
			}
			if overlapping > 0 {
				return errDatesTaken
			}
		}

		record.Status = string(target)
		return tx.Model(&models.BookingRecord{}).Where("id = ?", record.ID).Update("status", record.Status).Error
	})

	var refusal decisionError
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.String(http.StatusNotFound, "Booking not found.")
		return
	case errors.As(err, &refusal):
		c.String(http.StatusBadRequest, refusal.Error())
		return
	default:
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	notifyGuest(record)
	c.JSON(http.StatusOK, record.ToModel())
}

func today() time.Time {
	y, m, d := now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func notifyOwner(room models.RoomRecord, b models.BookingRecord) {
	outbox.Enqueue(&queue.Message{
		To:      room.Owner.Email,
		Subject: "New Booking Request: " + room.Title,
		Body: fmt.Sprintf("Hello %s,\n\nYou have a new booking request from %s.\nRoom: %s\nDates: %s to %s\nTotal: €%.2f\n\nPlease log in to confirm or reject this request.",
			room.Owner.Name, b.User.Name, room.Title,
			b.CheckIn.Format(models.DateLayout), b.CheckOut.Format(models.DateLayout), b.TotalPrice),
		MaxRetries: notifyRetries,
	})
}

func notifyGuest(b models.BookingRecord) {
	outbox.Enqueue(&queue.Message{
		To:      b.User.Email,
		Subject: "Update on your booking for " + b.Room.Title,
		Body: fmt.Sprintf("Dear %s,\n\nYour booking request for %s has been %s by the host.\n\nThank you for using StayBooking!",
			b.User.Name, b.Room.Title, b.Status),
		MaxRetries: notifyRetries,
	})
}
