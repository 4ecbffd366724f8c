// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the model client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeAuth
	ErrTypeQuota
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidRequest
	ErrTypeInvalidResponse
	ErrTypeBlocked
)

// Sentinel errors for easy checking.
var (
	ErrMissingAPIKey = &ClientError{Type: ErrTypeAuth, Message: "no API key configured"}
	ErrEmptyResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "model returned no candidates"}
)

// IsAuth returns true if the error is an authentication failure.
func IsAuth(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeAuth
}

// IsQuota returns true if the error is a quota/rate-limit failure.
func IsQuota(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeQuota
}

// IsTimeout returns true if the error is a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Type == ErrTypeTimeout {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the model client.
type ClientConfig struct {
	// BaseURL is the API base URL.
	BaseURL string

	// Model is the generative model identifier.
	Model string

	// APIKey authenticates requests. Required.
	APIKey string

	// Timeout bounds a single generateContent call (default: 120s; image
	// generation is slow).
	Timeout time.Duration

	// MaxRetries for transient failures (default: 2).
	MaxRetries int

	// RetryDelay between retries (default: 1s).
	RetryDelay time.Duration

	// RequestsPerMinute caps the client-side request rate (default: 10).
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "https://generativelanguage.googleapis.com",
		Model:             "gemini-2.0-flash-exp",
		Timeout:           120 * time.Second,
		MaxRetries:        2,
		RetryDelay:        1 * time.Second,
		RequestsPerMinute: 10,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the generateContent API. It accepts an
// ordered list of parts and returns the response split into text and images.
//
// The Client is safe for concurrent use, though the application only ever
// has one call in flight.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a model client with the given configuration. Nil falls
// back to defaults (which still need an API key before any call succeeds).
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = DefaultConfig().RequestsPerMinute
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}
}

// Generate sends an ordered part list to the model requesting text and image
// response modalities, and returns the split result. The part order is
// transmitted exactly as given.
func (c *Client) Generate(ctx context.Context, parts []Part) (*Result, error) {
	if c.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if len(parts) == 0 {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "no parts to send"}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait canceled", Cause: err}
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "encoding request", Cause: err}
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &ClientError{Type: ErrTypeTimeout, Message: "request canceled", Cause: ctx.Err()}
			case <-time.After(c.config.RetryDelay):
			}
		}

		result, err := c.generateOnce(ctx, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// generateOnce performs a single generateContent round trip.
func (c *Client) generateOnce(ctx context.Context, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "building request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "cannot reach model API", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "reading response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "decoding response", Cause: err}
	}
	if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
		return nil, &ClientError{
			Type:    ErrTypeBlocked,
			Message: "request blocked: " + parsed.PromptFeedback.BlockReason,
		}
	}
	return splitResult(&parsed)
}

// endpoint builds the generateContent URL with the key as a query parameter.
func (c *Client) endpoint() string {
	return c.config.BaseURL + "/v1beta/models/" + c.config.Model +
		":generateContent?key=" + url.QueryEscape(c.config.APIKey)
}

// statusError maps an HTTP failure to a typed client error. The API's own
// message is surfaced verbatim so the user sees what the service said.
func statusError(status int, body []byte) *ClientError {
	message := http.StatusText(status)
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	errType := ErrTypeUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		errType = ErrTypeAuth
	case status == http.StatusTooManyRequests:
		errType = ErrTypeQuota
	case status == http.StatusBadRequest:
		errType = ErrTypeInvalidRequest
	case status >= 500:
		errType = ErrTypeConnection
	}
	return &ClientError{Type: errType, Message: message}
}

// isRetryable reports whether a failed attempt is worth repeating.
// Connection problems and server-side errors are; everything the caller did
// wrong is not.
func isRetryable(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Type == ErrTypeConnection
}
