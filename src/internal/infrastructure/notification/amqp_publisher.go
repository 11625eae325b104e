package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// AMQP EventPublisher 實作
// ===========================

const publishTimeout = 5 * time.Second

// EventEnvelope 事件的 wire 格式
//
// 只攜帶事件的識別資訊，不攜帶聚合狀態：
// 訂閱端需要最新狀態時應回查 API，避免事件內容過期。
type EventEnvelope struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AMQPEventPublisher 透過 RabbitMQ topic exchange 發布領域事件
//
// Routing key 即事件類型（如 "points.balance_changed"、"transfer.proposed"），
// 訂閱端可用 binding pattern（如 "transfer.*"）選擇性訂閱。
//
// 事件在事務提交後發布，此時業務狀態已確定：
// 發布失敗記 log 並返回錯誤供呼叫端觀察，但不得回滾業務。
type AMQPEventPublisher struct {
	channel  *amqp.Channel
	exchange string
	log      *logrus.Logger
	mu       sync.Mutex
}

// NewAMQPEventPublisher 創建 AMQP 事件發布器
//
// 會宣告 durable topic exchange；exchange 已存在且參數相符時為冪等操作。
func NewAMQPEventPublisher(conn *amqp.Connection, exchange string, log *logrus.Logger) (*AMQPEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPEventPublisher{
		channel:  ch,
		exchange: exchange,
		log:      log,
	}, nil
}

// Publish 發布單一領域事件
func (p *AMQPEventPublisher) Publish(event shared.DomainEvent) error {
	envelope := EventEnvelope{
		EventID:     event.EventID(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.EventType(), // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID(),
			Timestamp:    event.OccurredAt(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"event_id":   event.EventID(),
			"event_type": event.EventType(),
			"error":      err,
		}).Error("failed to publish domain event")
		return fmt.Errorf("failed to publish event %s: %w", event.EventID(), err)
	}

	p.log.WithFields(logrus.Fields{
		"event_id":     event.EventID(),
		"event_type":   event.EventType(),
		"aggregate_id": event.AggregateID(),
	}).Debug("domain event published")

	return nil
}

// PublishBatch 依序發布多個領域事件
//
// 單一事件失敗時繼續發布其餘事件，最後返回第一個錯誤：
// 事件之間相互獨立，不因一個通知失敗丟棄整批。
func (p *AMQPEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	var firstErr error
	for _, event := range events {
		if err := p.Publish(event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close 關閉 AMQP channel
func (p *AMQPEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Close()
}
