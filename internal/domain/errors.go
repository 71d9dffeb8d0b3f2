package domain

import "errors"

var (
	ErrInvalidStatus     = errors.New("domain: invalid booking status")
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")
	ErrMedicRequired     = errors.New("domain: booking status requires an assigned medic")
	ErrInvalidShift      = errors.New("domain: invalid shift time")
	ErrInvalidRRule      = errors.New("domain: invalid recurrence rule")
)
