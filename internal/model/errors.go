package model

import "errors"

var (
	// Dispatch request errors
	ErrActionTypeRequired = errors.New("action type is required")
	ErrPayloadRequired    = errors.New("action requires an integer payload")
	ErrUnexpectedPayload  = errors.New("action does not take a payload")

	// Control errors
	ErrUnknownControl  = errors.New("unknown control")
	ErrControlDisabled = errors.New("control is disabled for the current account state")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("authentication is not configured")

	// Queue errors
	ErrQueueUnavailable = errors.New("action queue is not available")
)
