package utils

import "time"

// RetryHandler re-runs a failing operation a bounded number of times,
// waiting delay between attempts and giving up once timeout has elapsed.
type RetryHandler struct {
	timeout     time.Duration
	delay       time.Duration
	maxAttempts int
}

func NewRetryHandler(timeout, delay time.Duration, maxAttempts int) RetryHandler {
	return RetryHandler{
		timeout:     timeout,
		delay:       delay,
		maxAttempts: maxAttempts,
	}
}

func (r RetryHandler) Do(fn func() error) error {
	deadline := time.Now().Add(r.timeout)

	var err error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if time.Now().Add(r.delay).After(deadline) {
			return err
		}
		time.Sleep(r.delay)
	}

	return err
}
