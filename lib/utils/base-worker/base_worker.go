package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run периодически вызывает jobFunc до завершения ctx, паника в задаче не останавливает цикл
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context) error) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-time.After(period):
			i.runOnce(ctx, logger, jobFunc)
		}
		period = i.runInterval
	}
}

func (i BaseImpl) runOnce(ctx context.Context, logger *log.Entry, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	started := time.Now()
	if err := jobFunc(ctx); err != nil {
		logger.WithError(err).Error("Ошибка выполнения задачи")
		return
	}
	logger.WithField("duration", time.Since(started).String()).Debug("Задача выполнена")
}
