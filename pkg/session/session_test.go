package session

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"staybooking/pkg/api"
	"staybooking/pkg/models"
	"staybooking/pkg/storage"
)

var (
	testLogger = log.New(io.Discard, "", 0)

	_ api.SessionReader = (*Session)(nil)
)

func setupStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRestoreAnonymousByDefault(t *testing.T) {
	sess := New(setupStore(t), testLogger)
	require.NoError(t, sess.Restore())

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token())
}

func TestRestorePartialState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*storage.Store) error
	}{
		{
			name:  "token only",
			setup: func(s *storage.Store) error { return s.Set(storage.KeyToken, "abc") },
		},
		{
			name: "user only",
			setup: func(s *storage.Store) error {
				return s.SetJSON(storage.KeyUser, models.User{ID: 1, Email: "a@x.com"})
			},
		},
		{
			name: "unreadable user",
			setup: func(s *storage.Store) error {
				if err := s.Set(storage.KeyToken, "abc"); err != nil {
					return err
				}
				return s.Set(storage.KeyUser, "{not json")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupStore(t)
			require.NoError(t, tt.setup(store))

			sess := New(store, testLogger)
			require.NoError(t, sess.Restore())
			assert.False(t, sess.Authenticated())
			assert.Empty(t, sess.Token())
		})
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staybooking.db")

	store, err := storage.Open(path)
	require.NoError(t, err)
	sess := New(store, testLogger)
	require.NoError(t, sess.Save(models.AuthResponse{
		Token: "tok",
		User:  models.User{ID: 7, Name: "A", Email: "a@x.com"},
	}))
	require.NoError(t, store.Close())

	reopened, err := storage.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	restored := New(reopened, testLogger)
	require.NoError(t, restored.Restore())

	user, ok := restored.User()
	require.True(t, ok)
	assert.Equal(t, models.User{ID: 7, Name: "A", Email: "a@x.com"}, user)
	assert.Equal(t, "tok", restored.Token())
}

func TestClearRemovesBothKeys(t *testing.T) {
	store := setupStore(t)
	sess := New(store, testLogger)
	require.NoError(t, sess.Save(models.AuthResponse{Token: "tok", User: models.User{ID: 1}}))

	require.NoError(t, sess.Clear())

	assert.False(t, sess.Authenticated())
	for _, key := range []string{storage.KeyToken, storage.KeyUser} {
		_, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestServiceLogin(t *testing.T) {
	sess := New(setupStore(t), testLogger)
	submitter := new(MockSubmitter)
	svc := NewService(sess, submitter, testLogger)

	creds := models.Credentials{Email: "host@example.com", Password: "password123"}
	submitter.On("Submit", "/auth/login", creds).Return(models.AuthResponse{
		Token: "jwt",
		User:  models.User{ID: 1, Name: "John Host", Email: "host@example.com"},
	}, nil)

	user, err := svc.Login(context.Background(), creds)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "jwt", sess.Token())
	assert.True(t, sess.Authenticated())
	submitter.AssertExpectations(t)
}

func TestServiceLoginFailureKeepsSessionAnonymous(t *testing.T) {
	sess := New(setupStore(t), testLogger)
	submitter := new(MockSubmitter)
	svc := NewService(sess, submitter, testLogger)

	submitter.On("Submit", "/auth/login", mock.Anything).Return(nil, api.ErrInvalidCredentials)

	_, err := svc.Login(context.Background(), models.Credentials{Email: "x@y.z", Password: "bad"})

	assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	assert.False(t, sess.Authenticated())
}

func TestServiceRegister(t *testing.T) {
	tests := []struct {
		name        string
		profile     models.Profile
		reply       error
		expectCall  bool
		expectedErr error
	}{
		{
			name:       "valid profile",
			profile:    models.Profile{Name: "A", Email: "a@x.com", Password: "pw"},
			expectCall: true,
		},
		{
			name:        "malformed email never reaches the backend",
			profile:     models.Profile{Name: "A", Email: "a@x", Password: "pw"},
			expectedErr: models.ErrInvalidEmail,
		},
		{
			name:        "email taken",
			profile:     models.Profile{Name: "A", Email: "a@x.com", Password: "pw"},
			reply:       api.ErrEmailTaken,
			expectCall:  true,
			expectedErr: api.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := New(setupStore(t), testLogger)
			submitter := new(MockSubmitter)
			svc := NewService(sess, submitter, testLogger)

			if tt.expectCall {
				var reply interface{}
				if tt.reply == nil {
					reply = models.AuthResponse{Token: "jwt", User: models.User{ID: 5, Name: "A", Email: "a@x.com"}}
				}
				submitter.On("Submit", "/auth/register", tt.profile).Return(reply, tt.reply)
			}

			user, err := svc.Register(context.Background(), tt.profile)

			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr))
				assert.False(t, sess.Authenticated())
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(5), user.ID)
				assert.True(t, sess.Authenticated())
			}
			if !tt.expectCall {
				submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
			}
			submitter.AssertExpectations(t)
		})
	}
}

func TestServiceLogoutIsLocal(t *testing.T) {
	sess := New(setupStore(t), testLogger)
	submitter := new(MockSubmitter)
	svc := NewService(sess, submitter, testLogger)
	require.NoError(t, sess.Save(models.AuthResponse{Token: "tok", User: models.User{ID: 1}}))

	require.NoError(t, svc.Logout())

	assert.False(t, sess.Authenticated())
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
