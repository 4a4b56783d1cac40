package admission

import (
	"testing"

	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	const (
		pending  = models.AssignmentStatusPending
		active   = models.AssignmentStatusActive
		rejected = models.AssignmentStatusRejected
		removed  = models.AssignmentStatusRemoved
	)

	tests := []struct {
		name     string
		from, to models.AssignmentStatus
		active   int
		capacity int
		wantErr  error
		noop     bool
		delta    int
	}{
		{"pending to active with room", pending, active, 1, 2, nil, false, 1},
		{"pending to active at capacity", pending, active, 2, 2, apperrors.ErrCapacityExceeded, false, 0},
		{"rejected to active with room", rejected, active, 0, 1, nil, false, 1},
		{"rejected to active at capacity", rejected, active, 1, 1, apperrors.ErrCapacityExceeded, false, 0},
		{"active to active is noop even when full", active, active, 3, 3, nil, true, 0},
		{"pending to rejected", pending, rejected, 3, 3, nil, false, 0},
		{"active to rejected frees slot", active, rejected, 3, 3, nil, false, -1},
		{"rejected to rejected is noop", rejected, rejected, 0, 1, nil, true, 0},
		{"active to removed frees slot", active, removed, 1, 1, nil, false, -1},
		{"pending to removed", pending, removed, 0, 1, nil, false, 0},
		{"rejected to removed", rejected, removed, 0, 1, nil, false, 0},
		{"removed is terminal", removed, active, 0, 5, apperrors.ErrInvalidTransition, false, 0},
		{"removed to removed is invalid", removed, removed, 0, 5, apperrors.ErrInvalidTransition, false, 0},
		{"back to pending is invalid", rejected, pending, 0, 5, apperrors.ErrInvalidTransition, false, 0},
		{"unknown target", pending, "archived", 0, 5, apperrors.ErrInvalidTransition, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decide(tt.from, tt.to, tt.active, tt.capacity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.noop, d.NoOp)
			assert.Equal(t, tt.delta, d.Delta)
			assert.Equal(t, tt.from, d.From)
			assert.Equal(t, tt.to, d.To)
		})
	}
}
