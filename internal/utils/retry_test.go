package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryHandlerSucceedsFirstTry(t *testing.T) {
	calls := 0
	r := NewRetryHandler(time.Second, time.Millisecond, 3)

	err := r.Do(func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryHandlerRetriesUntilSuccess(t *testing.T) {
	calls := 0
	r := NewRetryHandler(time.Second, time.Millisecond, 3)

	err := r.Do(func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryHandlerExhaustsAttempts(t *testing.T) {
	calls := 0
	r := NewRetryHandler(time.Second, time.Millisecond, 3)

	err := r.Do(func() error {
		calls++
		return errors.New("permanent")
	})

	assert.EqualError(t, err, "permanent")
	assert.Equal(t, 3, calls)
}

func TestRetryHandlerRespectsTimeout(t *testing.T) {
	calls := 0
	r := NewRetryHandler(time.Millisecond*10, time.Millisecond*50, 10)

	err := r.Do(func() error {
		calls++
		return errors.New("slow dependency")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls, "no retry fits inside the timeout")
}

func TestHashIsStable(t *testing.T) {
	a := Hash("app-1\nsome content")
	b := Hash("app-1\nsome content")
	c := Hash("app-2\nsome content")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
