package initializers

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	submissionguard "maintenance-backend/lib/submission-guard"
	guardpurgeworker "maintenance-backend/lib/submission-guard/purge-worker"
)

// InitSubmissionGuard отметки сессий в redis, без redis - в памяти процесса с периодической чисткой
func InitSubmissionGuard(ctx context.Context) {
	if config.Conf.Redis.Addr == "" {
		log.Warn("redis не настроен, отметки об отправке заявок хранятся в памяти процесса")
		submissionguard.NewHandler(submissionguard.NewMemoryStore(), config.Conf.GuardTTL(), config.Conf.Location())
		guardpurgeworker.StartWorker(ctx, submissionguard.Instance)
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Error("redis недоступен")
	}
	submissionguard.NewHandler(submissionguard.NewRedisStore(client), config.Conf.GuardTTL(), config.Conf.Location())
}
