package job

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// PublishScheduledJob 扫描到点的定时帖并发布。
// 多实例部署时通过分布式锁保证同一轮只有一个实例执行。
type PublishScheduledJob struct {
	postSvc service.PostService
}

func NewPublishScheduledJob(postSvc service.PostService) *PublishScheduledJob {
	return &PublishScheduledJob{
		postSvc: postSvc,
	}
}

func (s *PublishScheduledJob) Run() {
	traceID := "job-publish-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockVal := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.ScheduledPublishLock, lockVal, 50*time.Second, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire scheduled publish lock error", "err", err)
		return
	}
	if !locked {
		return
	}
	defer redis.UnLock(ctx, consts.ScheduledPublishLock, lockVal)

	published, err := s.postSvc.PublishScheduled(ctx, time.Now())
	if err != nil {
		log.ErrorContext(ctx, "publish scheduled posts error", "err", err)
		return
	}
	if published > 0 {
		log.InfoContext(ctx, "scheduled posts published", "count", published)
	}
}
