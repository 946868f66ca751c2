package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventDatePast = errors.New("event date cannot be in the past")

	// Booking errors
	ErrNotEnoughTickets = errors.New("not enough tickets")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
