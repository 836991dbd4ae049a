package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig(attempts int) Config {
	return Config{
		Attempts:  attempts,
		BaseDelay: 10 * time.Millisecond,
		MaxDelay:  100 * time.Millisecond,
		PerTry:    time.Second,
	}
}

func TestDoFirstTrySuccess(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), testConfig(4), func(ctx context.Context) (string, error) {
		calls++
		return "success", nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("result = %q, want %q", result, "success")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoSuccessAfterFailures(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), testConfig(4), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("temporary failure")
		}
		return 42, nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != 42 {
		t.Errorf("result = %d, want 42", result)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	persistent := errors.New("persistent failure")
	result, err := Do(context.Background(), testConfig(3), func(ctx context.Context) (string, error) {
		calls++
		return "", persistent
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, persistent) {
		t.Errorf("error %v should wrap the last failure", err)
	}
	if result != "" {
		t.Errorf("result = %q, want empty", result)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoZeroAttemptsMeansOne(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Config{}, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("nope")
	})
	if err == nil {
		t.Error("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	result, err := Do(ctx, testConfig(6), func(ctx context.Context) (string, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return "", errors.New("failure")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if result != "" {
		t.Errorf("result = %q, want empty", result)
	}
	if calls > 3 {
		t.Errorf("calls = %d, want at most 3 after cancellation", calls)
	}
}

func TestDoParentDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Do(ctx, Config{
		Attempts:  10,
		BaseDelay: 50 * time.Millisecond,
		MaxDelay:  200 * time.Millisecond,
		PerTry:    time.Second,
	}, func(ctx context.Context) (string, error) {
		return "", errors.New("failure")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Errorf("took %v, should stop near the 100ms deadline", elapsed)
	}
}

func TestDoPerTryTimeout(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Config{
		Attempts:  2,
		BaseDelay: 5 * time.Millisecond,
		MaxDelay:  10 * time.Millisecond,
		PerTry:    20 * time.Millisecond,
	}, func(ctx context.Context) (string, error) {
		calls++
		<-ctx.Done()
		return "", ctx.Err()
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want wrapped deadline from per-try timeout", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (per-try timeout must not kill the parent)", calls)
	}
}

func TestBackoffBounds(t *testing.T) {
	base := 10 * time.Millisecond
	max := 100 * time.Millisecond

	cases := []struct {
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{1, 5 * time.Millisecond, 15 * time.Millisecond},
		{2, 10 * time.Millisecond, 30 * time.Millisecond},
		{3, 20 * time.Millisecond, 60 * time.Millisecond},
		{4, 40 * time.Millisecond, 100 * time.Millisecond},
		{5, 50 * time.Millisecond, 100 * time.Millisecond},
		{35, 50 * time.Millisecond, 100 * time.Millisecond},
		{100, 50 * time.Millisecond, 100 * time.Millisecond},
	}
	for _, tc := range cases {
		for i := 0; i < 10; i++ {
			got := backoff(tc.attempt, base, max)
			if got < tc.min || got > tc.max {
				t.Errorf("backoff(%d) = %v, want between %v and %v", tc.attempt, got, tc.min, tc.max)
			}
		}
	}
}
