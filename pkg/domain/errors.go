package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
	ErrMissingKey  = errors.New("api key is not set")
)

// ConfigError is a fatal startup configuration problem.
type ConfigError struct {
	EnvVar string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("API key must be provided in the environment variable '%s'", e.EnvVar)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StatusError is returned when an image URL answers with anything but 200.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
