package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staybooking/pkg/models"
)

// getRooms filters by city substring and capacity. With both dates given,
// rooms holding a confirmed booking that overlaps the stay are left out.
func getRooms(c *gin.Context) {
	guests := 1
	if g := c.Query("guests"); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil || n < 1 {
			c.String(http.StatusBadRequest, "Invalid guests value")
			return
		}
		guests = n
	}

	query := db.Preload("Owner").Where("max_guests >= ?", guests)
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}

	checkIn, checkOut := c.Query("checkIn"), c.Query("checkOut")
	if checkIn != "" && checkOut != "" {
		in, err := models.ParseDate(checkIn)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid checkIn date")
			return
		}
		out, err := models.ParseDate(checkOut)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid checkOut date")
			return
		}
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM bookings b WHERE b.room_id = rooms.id AND b.status = ? AND b.check_in < ? AND b.check_out > ?)",
			string(models.StatusConfirmed), out, in)
	}

	var records []models.RoomRecord
	if err := query.Order("id").Find(&records).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	rooms := make([]models.Room, len(records))
	for i, r := range records {
		rooms[i] = r.ToModel()
	}
	c.JSON(http.StatusOK, rooms)
}

func getRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var room models.RoomRecord
	err := db.Preload("Owner").First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusNotFound, "Room not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, room.ToModel())
}

func getReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var records []models.ReviewRecord
	if err := db.Preload("User").Where("room_id = ?", id).Order("created_at DESC").Find(&records).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	reviews := make([]models.Review, len(records))
	for i, r := range records {
		reviews[i] = r.ToModel()
	}
	c.JSON(http.StatusOK, reviews)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.String(http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
