package retry

import (
	"context"
	"errors"
	"time"

	"backoffice/config"
	apperrors "backoffice/pkg/errors"
)

type Config struct {
	Enabled        bool
	MaxRetries     int // attempts after the first; 3 means up to 4 calls
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RetryPredicate func(error) bool
	// OnRetry is called before sleeping, with the attempt that just failed.
	OnRetry func(attempt int, delay time.Duration, err error)
	// Sleep replaces the timer wait; tests use it to skip real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

var DefaultConfig = Config{
	Enabled:    true,
	MaxRetries: 3,
	BaseDelay:  time.Second,
	MaxDelay:   30 * time.Second,
}

func FromAppConfig(appConfig *config.Config) Config {
	retryConfig := appConfig.API.Retry

	return Config{
		Enabled:    retryConfig.Enabled,
		MaxRetries: retryConfig.MaxRetries,
		BaseDelay:  retryConfig.BaseDelay,
		MaxDelay:   retryConfig.MaxDelay,
	}
}

// Backoff returns 2^attempt * BaseDelay, capped at MaxDelay. attempt starts at 1.
func Backoff(attempt int, config Config) time.Duration {
	if attempt <= 0 || config.BaseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	delay := config.BaseDelay * time.Duration(1<<uint(attempt))
	if config.MaxDelay > 0 && (delay > config.MaxDelay || delay <= 0) {
		delay = config.MaxDelay
	}
	return delay
}

// IsRetryableError treats transport failures, 5xx and 429 as transient.
func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if config.RetryPredicate != nil {
		return config.RetryPredicate(err)
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable()
	}
	return false
}

func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context, attempt int) error) error {
	if !config.Enabled || config.MaxRetries <= 0 {
		return fn(ctx, 1)
	}

	var lastErr error
	maxAttempts := config.MaxRetries + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableError(err, config) || attempt == maxAttempts {
			break
		}

		delay := Backoff(attempt, config)
		if config.OnRetry != nil {
			config.OnRetry(attempt, delay, err)
		}
		if err := sleep(ctx, config, delay); err != nil {
			return err
		}
	}

	return lastErr
}

func ExecuteWithAppConfig(ctx context.Context, appConfig *config.Config, fn func(ctx context.Context, attempt int) error) error {
	return ExecuteWithRetry(ctx, FromAppConfig(appConfig), fn)
}

func sleep(ctx context.Context, config Config, delay time.Duration) error {
	if config.Sleep != nil {
		return config.Sleep(ctx, delay)
	}
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
