package rooms

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"staybooking/pkg/models"
)

type Fetcher interface {
	Fetch(ctx context.Context, path string, out interface{}) error
}

type Query struct {
	City     string
	Guests   int
	CheckIn  string
	CheckOut string
}

// Detail is a room together with its reviews.
type Detail struct {
	Room    models.Room     `json:"room"`
	Reviews []models.Review `json:"reviews"`
}

type Service struct {
	api Fetcher
	now func() time.Time
}

func NewService(api Fetcher) *Service {
	return &Service{api: api, now: time.Now}
}

// Defaults fills in one guest and a stay from today to tomorrow.
func (s *Service) Defaults(q Query) Query {
	today := s.now()
	if q.Guests < 1 {
		q.Guests = 1
	}
	if q.CheckIn == "" {
		q.CheckIn = today.Format(models.DateLayout)
	}
	if q.CheckOut == "" {
		q.CheckOut = today.AddDate(0, 0, 1).Format(models.DateLayout)
	}
	return q
}

func (s *Service) Search(ctx context.Context, q Query) ([]models.Room, error) {
	q = s.Defaults(q)

	params := url.Values{}
	params.Set("city", q.City)
	params.Set("guests", strconv.Itoa(q.Guests))
	params.Set("checkIn", q.CheckIn)
	params.Set("checkOut", q.CheckOut)

	rooms := []models.Room{}
	if err := s.api.Fetch(ctx, "/rooms?"+params.Encode(), &rooms); err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	return rooms, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Room, error) {
	var room models.Room
	if err := s.api.Fetch(ctx, fmt.Sprintf("/rooms/%d", id), &room); err != nil {
		return models.Room{}, fmt.Errorf("get room %d: %w", id, err)
	}
	return room, nil
}

func (s *Service) Reviews(ctx context.Context, id int64) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.api.Fetch(ctx, fmt.Sprintf("/rooms/%d/reviews", id), &reviews); err != nil {
		return nil, fmt.Errorf("get reviews for room %d: %w", id, err)
	}
	return reviews, nil
}

func (s *Service) Detail(ctx context.Context, id int64) (Detail, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	reviews, err := s.Reviews(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Room: room, Reviews: reviews}, nil
}
