package provider

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest    = errors.New("invalid generation request")
	ErrMissingCredential = errors.New("provider credential is not configured")
	ErrUpstream          = errors.New("upstream provider error")
	ErrResponseTooLarge  = errors.New("upstream response too large")
)

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

type ConfigError struct {
	Provider string
	EnvVar   string
}

func (e *ConfigError) Error() string {
	if e.EnvVar != "" {
		return fmt.Sprintf("%s credential is not configured (%s)", e.Provider, e.EnvVar)
	}
	return fmt.Sprintf("%s credential is not configured", e.Provider)
}

func (e *ConfigError) Unwrap() error { return ErrMissingCredential }

// UpstreamError carries the provider's status code and body exactly as received.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s responded with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
