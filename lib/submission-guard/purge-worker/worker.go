package guardpurgeworker

import (
	"context"
	"time"

	submissionguard "maintenance-backend/lib/submission-guard"
	baseworker "maintenance-backend/lib/utils/base-worker"
)

const (
	firstRunDelay = 1 * time.Minute
	runInterval   = 30 * time.Minute
)

// StartWorker чистит просроченные отметки сессий в памяти процесса
func StartWorker(ctx context.Context, guard submissionguard.Provider) {
	worker := baseworker.NewInstance("SubmissionGuardPurgeWorker", firstRunDelay, runInterval)
	go worker.Run(ctx, func(ctx context.Context) error {
		count, err := guard.Purge(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			worker.GetLogger().WithField("count", count).Info("удалены просроченные отметки сессий")
		}
		return nil
	})
}
