package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

// WithDelay выполняет safeCode под блокировкой по ключу.
// Если за wait блокировку получить не удалось, safeCode не вызывается и success = false.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}

func RequestKey(requestID string) string {
	return "maintenance_request:" + requestID
}
