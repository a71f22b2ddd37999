package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = New(KindConflict, "SAMPLE", "sample conflict")

func TestWithfKeepsIdentity(t *testing.T) {
	err := errSample.Withf("apartment %d is busy", 7)

	assert.True(t, errors.Is(err, errSample))
	assert.Equal(t, "apartment 7 is busy", err.Error())
	assert.Equal(t, KindConflict, KindOf(err))

	again := err.Withf("still busy")
	assert.True(t, errors.Is(again, errSample))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", errSample)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestDistinctSentinelsDoNotMatch(t *testing.T) {
	other := New(KindConflict, "OTHER", "other")
	assert.False(t, errors.Is(errSample, other))
	assert.False(t, errors.Is(errSample.Withf("x"), other))
}
