package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	cases := map[string]error{
		KindInvalidPlayer:    ErrInvalidPlayer,
		KindNotYourTurn:      fmt.Errorf("move rejected: %w", ErrNotYourTurn),
		KindInvalidIndex:     ErrInvalidIndex,
		KindSpotAlreadyTaken: &SpotTakenError{X: 1, Y: 2},
		KindInvalidGameID:    ErrInvalidGameID,
		KindInvalidUserID:    ErrInvalidUserID,
		KindInternal:         errors.New("boom"),
	}

	for kind, err := range cases {
		t.Run(kind, func(t *testing.T) {
			assert.Equal(t, kind, Kind(err))
			assert.Equal(t, kind != KindInternal, IsRequestError(err))
		})
	}
}

func TestSpotTakenError(t *testing.T) {
	// Given: a wrapped spot error
	err := fmt.Errorf("failed to make move: %w", &SpotTakenError{X: 0, Y: 2})

	// Then: it matches the sentinel and keeps the coordinates
	require.ErrorIs(t, err, ErrSpotAlreadyTaken)

	var spotErr *SpotTakenError
	require.ErrorAs(t, err, &spotErr)
	assert.Equal(t, 0, spotErr.X)
	assert.Equal(t, 2, spotErr.Y)
	assert.Contains(t, err.Error(), "x=0 y=2")
}
