package session

import (
	"context"
	"log"

	"staybooking/pkg/models"
)

type Submitter interface {
	Submit(ctx context.Context, path string, body, out interface{}) error
}

// Service performs the authentication flows on top of a Session.
type Service struct {
	sess *Session
	api  Submitter
	log  *log.Logger
}

func NewService(sess *Session, api Submitter, logger *log.Logger) *Service {
	return &Service{sess: sess, api: api, log: logger}
}

func (s *Service) Session() *Session {
	return s.sess
}

func (s *Service) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	var resp models.AuthResponse
	if err := s.api.Submit(ctx, "/auth/login", creds, &resp); err != nil {
		return models.User{}, err
	}
	if err := s.sess.Save(resp); err != nil {
		return models.User{}, err
	}
	s.logf("Logged in as %s", resp.User.Email)
	return resp.User, nil
}

// Register checks the email locally and never contacts the backend with a
// malformed address.
func (s *Service) Register(ctx context.Context, profile models.Profile) (models.User, error) {
	if !models.ValidEmail(profile.Email) {
		return models.User{}, models.ErrInvalidEmail
	}

	var resp models.AuthResponse
	if err := s.api.Submit(ctx, "/auth/register", profile, &resp); err != nil {
		return models.User{}, err
	}
	if err := s.sess.Save(resp); err != nil {
		return models.User{}, err
	}
	s.logf("Registered %s", resp.User.Email)
	return resp.User, nil
}

// Logout is local only; the backend keeps no session state.
func (s *Service) Logout() error {
	return s.sess.Clear()
}

func (s *Service) logf(format string, args ...interface{}) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}
