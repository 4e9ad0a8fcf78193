package exchange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	ErrCredentialsMissing = errors.New("api key/secret missing, set BINANCE_API_KEY and BINANCE_API_SECRET")
	ErrUnsupportedMethod  = errors.New("unsupported http method")
	ErrNetwork            = errors.New("network error")
	ErrExchangeAPI        = errors.New("exchange api error")
)

// APIError is a non-2xx reply. Code and Msg come from the venue's error body when it parses.
type APIError struct {
	StatusCode int
	Code       int
	Msg        string
	Body       string
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}
	var payload struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Code = payload.Code
		e.Msg = payload.Msg
	}
	return e
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("binance api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Msg)
	}
	if e.Body == "" {
		return fmt.Sprintf("binance api error status %d", e.StatusCode)
	}
	return fmt.Sprintf("binance api error status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrExchangeAPI
}

// NetworkError is a transport failure. It is never retried by the client.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
