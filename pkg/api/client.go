package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"staybooking/pkg/circuitbreaker"
	"staybooking/pkg/models"
)

// SessionReader is the part of the session the data-access layer consults.
type SessionReader interface {
	Token() string
	User() (models.User, bool)
}

type Options struct {
	BaseURL         string
	Timeout         time.Duration
	Offline         bool
	BreakerFailures int
	BreakerTimeout  time.Duration
	HTTPClient      *http.Client
	Logger          *log.Logger
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionReader
	mock       *MockBackend
	breaker    *circuitbreaker.CircuitBreaker
	offline    bool
	log        *log.Logger
}

func NewClient(opts Options, session SessionReader, mock *MockBackend) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	failures := opts.BreakerFailures
	if failures < 1 {
		failures = 5
	}
	breakerTimeout := opts.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 30 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[api] ", log.LstdFlags)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		session:    session,
		mock:       mock,
		breaker:    circuitbreaker.NewCircuitBreaker(failures, breakerTimeout).WithFailureFilter(IsOffline),
		offline:    opts.Offline,
		log:        logger,
	}
}

// Fetch issues GET path and decodes the JSON answer into out (which may be nil).
func (c *Client) Fetch(ctx context.Context, path string, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

// Submit issues POST path with body encoded as JSON and decodes the answer into out.
func (c *Client) Submit(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.GetState()
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	if c.offline {
		return c.fallback(method, path, body, out)
	}

	err := c.breaker.Execute(func() error {
		return c.do(ctx, method, path, body, out)
	}, nil)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, circuitbreaker.ErrOpen), IsOffline(err):
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Printf("Backend unreachable at %s, using mock data: %v", path, err)
		return c.fallback(method, path, body, out)
	default:
		return err
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	token := ""
	if c.session != nil {
		token = c.session.Token()
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &OfflineError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &OfflineError{Path: path, Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return classify(path, resp.StatusCode, string(data))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &OfflineError{Path: path, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &OfflineError{Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) fallback(method, path string, body, out interface{}) error {
	if c.mock == nil {
		return &OfflineError{Path: path, Err: errors.New("no mock responder configured")}
	}

	var (
		result interface{}
		err    error
	)
	if method == http.MethodGet {
		result, err = c.mock.Get(path)
	} else {
		result, err = c.mock.Post(path, body)
	}
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode mock response: %w", err)
	}
	return json.Unmarshal(raw, out)
}
