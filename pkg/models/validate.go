package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidStay  = errors.New("check-in must be before check-out")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks the local@domain.tld shape only; deliverability is not checked.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func (r Room) Validate() error {
	if r.PricePerNight <= 0 {
		return fmt.Errorf("room %d: price per night must be positive", r.ID)
	}
	if r.MaxGuests < 1 {
		return fmt.Errorf("room %d: max guests must be at least 1", r.ID)
	}
	return nil
}

func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("review %d: rating %d out of range 1-5", r.ID, r.Rating)
	}
	return nil
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// Nights returns the number of nights between two calendar dates. It is
// negative or zero when checkOut is not after checkIn.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

func ValidateStay(checkIn, checkOut string) error {
	in, err := ParseDate(checkIn)
	if err != nil {
		return err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return err
	}
	if !in.Before(out) {
		return ErrInvalidStay
	}
	return nil
}
