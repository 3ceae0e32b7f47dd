package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== 短信发送器 ====================

// SMSSender 短信发送接口
type SMSSender interface {
	Send(ctx context.Context, mobile, message string) error
}

// GatewaySMSSender 经网关发短信
type GatewaySMSSender struct {
	client *resty.Client
	apiKey string
}

// NewGatewaySMSSender 创建网关短信发送器
func NewGatewaySMSSender(gatewayURL, apiKey string) *GatewaySMSSender {
	// 发送失败即失败，不做重试
	client := resty.New().
		SetBaseURL(gatewayURL).
		SetTimeout(10 * time.Second)
	return &GatewaySMSSender{client: client, apiKey: apiKey}
}

func (s *GatewaySMSSender) Send(ctx context.Context, mobile, message string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", s.apiKey).
		SetBody(map[string]string{
			"mobile":  mobile,
			"message": message,
		}).
		Post("/v1/sms/send")
	if err != nil {
		return fmt.Errorf("短信网关请求失败: %v", err)
	}
	if resp.IsError() {
		return fmt.Errorf("短信网关返回 %d", resp.StatusCode())
	}
	return nil
}

// LogSMSSender 只写日志不真发，开发与测试环境用
type LogSMSSender struct{}

func (s *LogSMSSender) Send(_ context.Context, mobile, message string) error {
	zap.L().Info("模拟发送短信",
		zap.String("mobile", mobile),
		zap.String("message", message),
	)
	return nil
}

// ==================== NotifyService 通知服务 ====================

// NotifyService 发送通知并落通知记录
type NotifyService struct {
	notificationRepo repository.NotificationRepository
	sender           SMSSender
}

// NewNotifyService 创建通知服务
func NewNotifyService(notificationRepo repository.NotificationRepository, sender SMSSender) *NotifyService {
	return &NotifyService{
		notificationRepo: notificationRepo,
		sender:           sender,
	}
}

// NotifyCustomer 给单个客户发一条通知，发送结果写入通知记录。
// 发送失败不返回错误，只把记录标记为 failed。
func (s *NotifyService) NotifyCustomer(ctx context.Context, customer *model.Customer, offerID *int64, channel, message string) *model.Notification {
	n := &model.Notification{
		CustomerID: customer.ID,
		OfferID:    offerID,
		Channel:    channel,
		Status:     model.NotifyStatusSent,
		Payload: datatypes.JSONMap{
			"mobile":  customer.Phone,
			"message": message,
		},
	}

	switch channel {
	case "sms":
		if err := s.sender.Send(ctx, customer.Phone, message); err != nil {
			zap.L().Warn("短信发送失败",
				zap.Int64("customer_id", customer.ID),
				zap.Error(err),
			)
			n.Status = model.NotifyStatusFailed
		}
	default:
		// 其他渠道暂无真实通道，仅记录
		n.Status = model.NotifyStatusLogged
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		zap.L().Error("通知记录落库失败", zap.Error(err))
	}
	return n
}

// ListByCustomer 查客户的通知记录
func (s *NotifyService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Notification, error) {
	return s.notificationRepo.ListByCustomer(ctx, customerID)
}
