package storage

import (
	"context"
	"errors"
)

// OnboardedKey marks that the first-run hint has been dismissed.
const OnboardedKey = "taskflow_onboarded"

// Onboarded reports whether the onboarding flag is set. Read failures count as
// not onboarded.
func Onboarded(ctx context.Context, kv KV) bool {
	v, err := kv.Get(ctx, OnboardedKey)
	return err == nil && string(v) == "1"
}

// MarkOnboarded sets the onboarding flag.
func MarkOnboarded(ctx context.Context, kv KV) error {
	if err := kv.Set(ctx, OnboardedKey, []byte("1")); err != nil {
		return PersistenceError{Op: "write", Key: OnboardedKey, Err: err}
	}
	return nil
}

// ResetOnboarded clears the onboarding flag.
func ResetOnboarded(ctx context.Context, kv KV) error {
	if err := kv.Delete(ctx, OnboardedKey); err != nil && !errors.Is(err, ErrNotFound) {
		return PersistenceError{Op: "delete", Key: OnboardedKey, Err: err}
	}
	return nil
}
