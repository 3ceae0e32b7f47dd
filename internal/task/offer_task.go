package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"storelink_erp_v1/internal/repository"
)

// OfferSweepTask 每天巡检过期活动并记日志，供运营复盘。
// 过期活动不自动删除，只在查询侧标记 expired。
type OfferSweepTask struct {
	OfferRepo repository.OfferRepository
	Cron      *cron.Cron
}

func NewOfferSweepTask(offerRepo repository.OfferRepository) *OfferSweepTask {
	return &OfferSweepTask{
		OfferRepo: offerRepo,
		Cron:      cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务，每天凌晨 2 点巡检
func (t *OfferSweepTask) Start() {
	_, err := t.Cron.AddFunc("0 0 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		t.sweepJob(ctx)
	})
	if err != nil {
		zap.L().Fatal("无法启动活动巡检任务", zap.Error(err))
	}

	t.Cron.Start()
	zap.L().Info("促销活动巡检任务已启动 (每天 02:00)")
}

// Stop 停止任务
func (t *OfferSweepTask) Stop() {
	t.Cron.Stop()
}

func (t *OfferSweepTask) sweepJob(ctx context.Context) {
	expired, err := t.OfferRepo.ListExpiredBefore(ctx, time.Now())
	if err != nil {
		zap.L().Warn("过期活动查询失败", zap.Error(err))
		return
	}
	for i := range expired {
		zap.L().Info("活动已过期",
			zap.Int64("offer_id", expired[i].ID),
			zap.String("title", expired[i].Title),
			zap.Time("valid_until", expired[i].ValidUntil),
		)
	}
}
