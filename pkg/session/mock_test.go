package session

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

type MockSubmitter struct {
	mock.Mock
}

// Submit decodes the canned reply (args.Get(0)) into out the way the real
// client would.
func (m *MockSubmitter) Submit(ctx context.Context, path string, body, out interface{}) error {
	args := m.Called(path, body)
	if err := args.Error(1); err != nil {
		return err
	}
	if out != nil && args.Get(0) != nil {
		raw, err := json.Marshal(args.Get(0))
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	}
	return nil
}
