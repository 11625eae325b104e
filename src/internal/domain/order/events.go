package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
)

// ===========================
// Order 領域事件
// ===========================

// OrderCreatedEvent 訂單創建事件
type OrderCreatedEvent struct {
	eventID     string
	orderID     OrderID
	memberID    MemberID
	sellerID    catalog.SellerID
	totalPoints points.PointsAmount
	occurredAt  time.Time
}

// NewOrderCreatedEvent 創建訂單創建事件
func NewOrderCreatedEvent(
	orderID OrderID,
	memberID MemberID,
	sellerID catalog.SellerID,
	totalPoints points.PointsAmount,
) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		eventID:     uuid.New().String(),
		orderID:     orderID,
		memberID:    memberID,
		sellerID:    sellerID,
		totalPoints: totalPoints,
		occurredAt:  time.Now(),
	}
}

func (e *OrderCreatedEvent) EventID() string       { return e.eventID }
func (e *OrderCreatedEvent) EventType() string     { return "order.created" }
func (e *OrderCreatedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *OrderCreatedEvent) AggregateID() string   { return e.orderID.String() }

// OrderID 獲取訂單 ID
func (e *OrderCreatedEvent) OrderID() OrderID { return e.orderID }

// MemberID 獲取會員 ID
func (e *OrderCreatedEvent) MemberID() MemberID { return e.memberID }

// SellerID 獲取賣家 ID
func (e *OrderCreatedEvent) SellerID() catalog.SellerID { return e.sellerID }

// TotalPoints 獲取訂單積分合計
func (e *OrderCreatedEvent) TotalPoints() points.PointsAmount { return e.totalPoints }

// ===========================
// OrderStatusChanged 領域事件
// ===========================

// OrderStatusChangedEvent 訂單狀態變更事件
type OrderStatusChangedEvent struct {
	eventID    string
	orderID    OrderID
	memberID   MemberID
	from       OrderStatus
	to         OrderStatus
	occurredAt time.Time
}

// NewOrderStatusChangedEvent 創建訂單狀態變更事件
func NewOrderStatusChangedEvent(
	orderID OrderID,
	memberID MemberID,
	from OrderStatus,
	to OrderStatus,
) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		eventID:    uuid.New().String(),
		orderID:    orderID,
		memberID:   memberID,
		from:       from,
		to:         to,
		occurredAt: time.Now(),
	}
}

func (e *OrderStatusChangedEvent) EventID() string       { return e.eventID }
func (e *OrderStatusChangedEvent) EventType() string     { return "order.status_changed" }
func (e *OrderStatusChangedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *OrderStatusChangedEvent) AggregateID() string   { return e.orderID.String() }

// OrderID 獲取訂單 ID
func (e *OrderStatusChangedEvent) OrderID() OrderID { return e.orderID }

// MemberID 獲取會員 ID
func (e *OrderStatusChangedEvent) MemberID() MemberID { return e.memberID }

// From 獲取轉移前狀態
func (e *OrderStatusChangedEvent) From() OrderStatus { return e.from }

// To 獲取轉移後狀態
func (e *OrderStatusChangedEvent) To() OrderStatus { return e.to }
