package order

import (
	"errors"
	"fmt"

	apperrors "backoffice/pkg/errors"
)

// ============================================================================
// Sentinel errors, usable with errors.Is()
// ============================================================================

var (
	// ErrInvalidOrderStateTransition the requested move is not in the whitelist
	ErrInvalidOrderStateTransition = errors.New("invalid order state transition")

	// ErrStatusUpdateNotBuilt a zero StatusUpdate reached the API layer
	ErrStatusUpdateNotBuilt = errors.New("status update must be built with NewStatusUpdate")
)

// NewInvalidTransitionError reports a rejected transition as a LOGICAL_ERROR
// that still matches ErrInvalidOrderStateTransition.
func NewInvalidTransitionError(from, to Status) error {
	return &apperrors.AppError{
		Code:    apperrors.CodeLogical,
		Message: fmt.Sprintf("cannot move order from %s to %s", from, to),
		Err:     ErrInvalidOrderStateTransition,
	}
}
