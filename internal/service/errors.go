package service

import "errors"

var (
	// ErrNotFound signals an unknown user or resource.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a write race lost: the slot was booked (or
	// the username claimed) between read and commit.
	ErrConflict = errors.New("conflict")

	// ErrPastTime signals a requested slot whose start is not strictly
	// after the current time.
	ErrPastTime = errors.New("slot is in the past")
)
