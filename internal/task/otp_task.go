package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"storelink_erp_v1/internal/repository"
)

// OtpPurgeTask 定期清理过期验证码
type OtpPurgeTask struct {
	OtpStore repository.OtpStore
	Cron     *cron.Cron
}

func NewOtpPurgeTask(otpStore repository.OtpStore) *OtpPurgeTask {
	return &OtpPurgeTask{
		OtpStore: otpStore,
		Cron:     cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务，每 10 分钟清理一轮
func (t *OtpPurgeTask) Start() {
	_, err := t.Cron.AddFunc("0 */10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.purgeJob(ctx)
	})
	if err != nil {
		zap.L().Fatal("无法启动验证码清理任务", zap.Error(err))
	}

	t.Cron.Start()
	zap.L().Info("验证码清理任务已启动 (每10分钟一轮)")
}

// Stop 停止任务
func (t *OtpPurgeTask) Stop() {
	t.Cron.Stop()
}

func (t *OtpPurgeTask) purgeJob(ctx context.Context) {
	purged, err := t.OtpStore.PurgeExpired(ctx, time.Now())
	if err != nil {
		zap.L().Warn("过期验证码清理失败", zap.Error(err))
		return
	}
	if purged > 0 {
		zap.L().Info("过期验证码已清理", zap.Int64("count", purged))
	}
}
