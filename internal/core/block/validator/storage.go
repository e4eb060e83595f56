package validator

import (
	"context"
	"errors"
	"time"
)

// callStorage 在超时限制内执行一次存储访问
//
// 存储实现未必响应 ctx，因此访问在独立 goroutine 中进行；超时后立即返回，
// 结果被丢弃。
func callStorage[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// isTimeout 超时与调用方取消都视为可重试的存储超时
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
