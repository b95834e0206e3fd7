package retry

import (
	"fmt"
	"time"
)

// Do runs fn up to attempts times, doubling the wait between tries starting
// from backoff. The last error is returned when all attempts fail.
func Do(attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(backoff << uint(i))
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, err)
}
