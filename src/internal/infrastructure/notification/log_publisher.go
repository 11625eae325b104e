package notification

import (
	"github.com/sirupsen/logrus"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// Logging EventPublisher 實作
// ===========================

// LogEventPublisher 只把事件寫進 log 的發布器
//
// 用於未配置 RabbitMQ 的環境（本地開發、單體部署）：
// Use Case 的發布流程不變，事件可從 log 追溯。
type LogEventPublisher struct {
	log *logrus.Logger
}

// NewLogEventPublisher 創建 logging 事件發布器
func NewLogEventPublisher(log *logrus.Logger) *LogEventPublisher {
	return &LogEventPublisher{log: log}
}

// Publish 記錄單一領域事件
func (p *LogEventPublisher) Publish(event shared.DomainEvent) error {
	p.log.WithFields(logrus.Fields{
		"event_id":     event.EventID(),
		"event_type":   event.EventType(),
		"aggregate_id": event.AggregateID(),
		"occurred_at":  event.OccurredAt(),
	}).Info("domain event")
	return nil
}

// PublishBatch 記錄多個領域事件
func (p *LogEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}
