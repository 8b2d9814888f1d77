package services

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/yigaglobal/fellowship_service/internal/domain"
)

// Every store call is bounded; a store that does not answer within this
// window surfaces as ErrStoreUnavailable rather than hanging the request.
const storeTimeout = 5 * time.Second

const retryBackoff = 200 * time.Millisecond

// withStore runs a store operation with a bounded timeout and a single
// retry on transient failure. Caller/state errors are never retried.
func withStore(ctx context.Context, op func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	b := retry.WithMaxRetries(1, retry.NewConstant(retryBackoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}
