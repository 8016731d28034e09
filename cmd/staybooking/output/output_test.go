package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybooking/pkg/models"
)

func TestStatusKeepsLabel(t *testing.T) {
	for _, s := range []models.BookingStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusRejected, models.BookingStatus("ARCHIVED"),
	} {
		assert.Contains(t, Status(s), string(s))
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Success("booked %d", 3)
	p.Error("failed")
	p.Warning("reload failed")
	p.Info("not logged in")
	p.Section("My Trips")

	assert.Contains(t, buf.String(), "booked 3")
	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "⚠")
	assert.Contains(t, buf.String(), "reload failed")
	assert.Contains(t, buf.String(), "ℹ")
	assert.Contains(t, buf.String(), "not logged in")
	assert.Contains(t, buf.String(), "My Trips")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).JSON(models.User{ID: 1, Name: "A", Email: "a@x.com"}))
	assert.JSONEq(t, `{"id":1,"name":"A","email":"a@x.com"}`, buf.String())
}
