package shared

import "time"

// DomainEvent 領域事件基礎介面
//
// 提交後的變更通知只攜帶受影響實體的 ID（AggregateID），
// 訂閱方收到通知後自行重新查詢，不信任推送的內容。
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型
	OccurredAt() time.Time // 發生時間
	AggregateID() string   // 聚合根 ID
}

// EventPublisher 事件發布器介面
// 設計原則：介面定義在 Domain Layer（使用者），由 Infrastructure 實作
//
// 發布時機：必須在事務提交「之後」發布（聚合的 PullEvents 模式），
// 回滾的事務不得產生任何通知。
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}

// EventSubscriber 事件訂閱器介面
type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) error
}

// EventHandler 事件處理器介面
type EventHandler interface {
	Handle(event DomainEvent) error
	EventType() string
}
