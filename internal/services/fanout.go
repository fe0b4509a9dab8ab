package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrSourceTimeout = errors.New("source timed out")

type outcome[T any] struct {
	Value    T
	Err      error
	Duration time.Duration
}

// fanOut runs task once per item, each in its own goroutine with its own
// timeout. Results keep the order of items. A task still running when its
// timeout fires is abandoned and reported as ErrSourceTimeout; siblings are
// not affected.
func fanOut[S, T any](ctx context.Context, items []S, timeout time.Duration, task func(ctx context.Context, item S) (T, error)) []outcome[T] {
	type slot struct {
		ch     chan outcome[T]
		ctx    context.Context
		cancel context.CancelFunc
	}

	slots := make([]slot, len(items))
	for i, item := range items {
		taskCtx, cancel := context.WithTimeout(ctx, timeout)
		ch := make(chan outcome[T], 1)
		slots[i] = slot{ch: ch, ctx: taskCtx, cancel: cancel}

		go func() {
			started := time.Now()
			var res outcome[T]
			defer func() {
				if r := recover(); r != nil {
					res = outcome[T]{Err: fmt.Errorf("source panicked: %v", r)}
				}
				res.Duration = time.Since(started)
				ch <- res
			}()
			res.Value, res.Err = task(taskCtx, item)
		}()
	}

	results := make([]outcome[T], len(items))
	for i, s := range slots {
		select {
		case res := <-s.ch:
			results[i] = res
		case <-s.ctx.Done():
			// a result that raced the deadline still wins
			select {
			case res := <-s.ch:
				results[i] = res
			default:
				results[i] = outcome[T]{Err: abandoned(ctx, timeout), Duration: timeout}
			}
		}
		s.cancel()
	}
	return results
}

func abandoned(parent context.Context, timeout time.Duration) error {
	if err := parent.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w after %s", ErrSourceTimeout, timeout)
}
