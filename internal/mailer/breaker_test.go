package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_StaysClosedBelowThreshold(t *testing.T) {
	b := NewBreaker(3, time.Minute)

	b.OnFailure()
	b.OnFailure()

	assert.True(t, b.TryAcquire())
}

func TestBreaker_OpensAtThreshold(t *testing.T) {
	b := NewBreaker(2, time.Minute)

	b.OnFailure()
	b.OnFailure()

	assert.False(t, b.TryAcquire())
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	b := NewBreaker(2, time.Minute)

	b.OnFailure()
	b.OnSuccess()
	b.OnFailure()

	assert.True(t, b.TryAcquire())
}

func TestBreaker_HalfOpenProbe(t *testing.T) {
	b := NewBreaker(1, time.Millisecond)

	b.OnFailure()
	assert.False(t, b.TryAcquire())

	time.Sleep(5 * time.Millisecond)

	// cooldown elapsed: exactly one probe is admitted
	assert.True(t, b.TryAcquire())
	assert.False(t, b.TryAcquire())

	// probe success closes the breaker
	b.OnSuccess()
	assert.True(t, b.TryAcquire())
}

func TestBreaker_ProbeFailureReopens(t *testing.T) {
	b := NewBreaker(1, time.Millisecond)

	b.OnFailure()
	time.Sleep(5 * time.Millisecond)

	assert.True(t, b.TryAcquire())
	b.OnFailure()

	assert.False(t, b.TryAcquire())
}
