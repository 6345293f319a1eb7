package seed

import (
	"errors"
)

// Sentinel kinds for seed catalog errors.
var (
	ErrNoActivities  = errors.New("seed catalog has no activities")
	ErrEmptyName     = errors.New("seed activity name must not be empty")
	ErrDuplicateName = errors.New("seed activity name duplicated")
)
