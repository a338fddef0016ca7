package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := New()
	require.NotEmpty(t, s.SessionID)
	assert.Equal(t, StepUserInfo, s.Step)
	assert.False(t, s.LastUpdated.IsZero())
}

func TestAdvanceAndBack(t *testing.T) {
	s := New()

	s.Advance()
	assert.Equal(t, StepAppDescription, s.Step)
	s.Advance()
	s.Advance()
	assert.Equal(t, StepReport, s.Step)

	// report is the final step
	s.Advance()
	assert.Equal(t, StepReport, s.Step)

	s.Back()
	assert.Equal(t, StepFeatureSelection, s.Step)
	s.Back()
	s.Back()
	assert.Equal(t, StepUserInfo, s.Step)

	// back at step 1 is a no-op
	s.Back()
	assert.Equal(t, StepUserInfo, s.Step)
}

func TestIsStale(t *testing.T) {
	s := New()
	now := s.LastUpdated

	assert.False(t, s.IsStale(TTL, now.Add(23*time.Hour)))
	assert.True(t, s.IsStale(TTL, now.Add(25*time.Hour)))
}

func TestStepValidity(t *testing.T) {
	assert.False(t, Step(0).IsValid())
	assert.True(t, StepUserInfo.IsValid())
	assert.True(t, StepReport.IsValid())
	assert.False(t, Step(5).IsValid())
}
