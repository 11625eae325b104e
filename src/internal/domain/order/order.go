package order

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// MemberID 會員識別符（identity context 定義）
type MemberID = identity.MemberID

// ===========================
// OrderID 識別符
// ===========================

// OrderMarker 訂單 ID 類型標記
type OrderMarker struct{}

// OrderID 訂單識別符
type OrderID = shared.EntityID[OrderMarker]

// NewOrderID 生成新的訂單 ID
func NewOrderID() OrderID {
	return shared.NewEntityID[OrderMarker]()
}

// OrderIDFromString 從字符串解析訂單 ID
func OrderIDFromString(s string) (OrderID, error) {
	return shared.EntityIDFromString[OrderMarker](s, ErrInvalidOrderID)
}

// ===========================
// OrderStatus 訂單狀態
// ===========================

// OrderStatus 訂單狀態枚舉
//
// 狀態機：
//
//	pending → confirmed → completed
//	pending → cancelled
//	confirmed → cancelled
//
// completed 與 cancelled 為終態。
// 取消不回補積分與庫存：積分與庫存的變動在結帳當下已結清，
// 訂單狀態之後只描述履約進度。
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid 判斷是否為合法的訂單狀態
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal 判斷是否為終態
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo 判斷狀態機是否允許此轉移
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	}
	return false
}

// ===========================
// OrderLine 訂單明細（值對象）
// ===========================

// OrderLine 訂單明細行
//
// unitPointCost 為下單當下目錄上的單價快照；
// 之後目錄調價不影響已成立的訂單。
type OrderLine struct {
	itemID        catalog.ItemID
	quantity      int
	unitPointCost points.PointsAmount
}

// NewOrderLine 創建訂單明細行
func NewOrderLine(
	itemID catalog.ItemID,
	quantity int,
	unitPointCost points.PointsAmount,
) (OrderLine, error) {
	if itemID.IsEmpty() {
		return OrderLine{}, catalog.ErrInvalidItemID.WithContext(
			"reason", "itemID cannot be empty",
		)
	}
	if quantity <= 0 {
		return OrderLine{}, ErrInvalidQuantity.WithContext(
			"item_id", itemID.String(),
			"quantity", quantity,
		)
	}

	return OrderLine{
		itemID:        itemID,
		quantity:      quantity,
		unitPointCost: unitPointCost,
	}, nil
}

// ItemID 獲取品項 ID
func (l OrderLine) ItemID() catalog.ItemID {
	return l.itemID
}

// Quantity 獲取數量
func (l OrderLine) Quantity() int {
	return l.quantity
}

// UnitPointCost 獲取單價快照
func (l OrderLine) UnitPointCost() points.PointsAmount {
	return l.unitPointCost
}

// LineTotal 計算明細小計（單價 × 數量）
func (l OrderLine) LineTotal() (points.PointsAmount, error) {
	return l.unitPointCost.MultiplyBy(l.quantity)
}

// ===========================
// Order 聚合根
// ===========================

// Order 訂單聚合根
//
// 業務不變條件：
// - 每張訂單只屬於一個賣家（結帳時購物籃按賣家拆單）
// - 至少包含一筆明細，各明細數量 > 0
// - totalPoints = Σ(unitPointCost × quantity)，建立時固定
// - 狀態轉移只能沿狀態機的邊
type Order struct {
	orderID     OrderID
	memberID    MemberID
	sellerID    catalog.SellerID
	lines       []OrderLine
	totalPoints points.PointsAmount
	status      OrderStatus

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewOrder 創建新訂單（初始狀態為 pending）
//
// totalPoints 由明細重新加總，不接受外部傳入的合計。
func NewOrder(
	memberID MemberID,
	sellerID catalog.SellerID,
	lines []OrderLine,
) (*Order, error) {
	if memberID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "memberID cannot be empty",
		)
	}
	if sellerID.IsEmpty() {
		return nil, catalog.ErrInvalidSellerID.WithContext(
			"reason", "sellerID cannot be empty",
		)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	total, err := sumLineTotals(lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	order := &Order{
		orderID:     NewOrderID(),
		memberID:    memberID,
		sellerID:    sellerID,
		lines:       lines,
		totalPoints: total,
		status:      OrderStatusPending,
		createdAt:   now,
		updatedAt:   now,
		events:      make([]shared.DomainEvent, 0),
	}

	order.addEvent(NewOrderCreatedEvent(order.orderID, memberID, sellerID, total))

	return order, nil
}

// sumLineTotals 加總所有明細小計
func sumLineTotals(lines []OrderLine) (points.PointsAmount, error) {
	total, err := points.NewPointsAmount(0)
	if err != nil {
		return points.PointsAmount{}, err
	}

	for _, line := range lines {
		lineTotal, err := line.LineTotal()
		if err != nil {
			return points.PointsAmount{}, err
		}
		total, err = total.Add(lineTotal)
		if err != nil {
			return points.PointsAmount{}, err
		}
	}

	return total, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// OrderID 獲取訂單 ID
func (o *Order) OrderID() OrderID {
	return o.orderID
}

// MemberID 獲取會員 ID
func (o *Order) MemberID() MemberID {
	return o.memberID
}

// SellerID 獲取賣家 ID
func (o *Order) SellerID() catalog.SellerID {
	return o.sellerID
}

// Lines 獲取訂單明細（副本）
func (o *Order) Lines() []OrderLine {
	lines := make([]OrderLine, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// TotalPoints 獲取訂單積分合計
func (o *Order) TotalPoints() points.PointsAmount {
	return o.totalPoints
}

// Status 獲取訂單狀態
func (o *Order) Status() OrderStatus {
	return o.status
}

// CreatedAt 獲取創建時間
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt 獲取最後更新時間
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ===========================
// 事件管理
// ===========================

func (o *Order) addEvent(event shared.DomainEvent) {
	o.events = append(o.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// TransitionTo 沿狀態機轉移訂單狀態
//
// 跨請求的狀態競爭由 Repository 的條件式更新
// （UpdateStatus WHERE status = from）擋下；
// 此處的檢查服務單一事務內的 read-modify-write 流程。
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return ErrInvalidStatus.WithContext("status", string(target))
	}
	if !o.status.CanTransitionTo(target) {
		return ErrInvalidTransition.WithContext(
			"order_id", o.orderID.String(),
			"from", string(o.status),
			"to", string(target),
		)
	}

	from := o.status
	o.status = target
	o.updatedAt = time.Now()

	o.addEvent(NewOrderStatusChangedEvent(o.orderID, o.memberID, from, target))

	return nil
}

// Confirm 賣家確認訂單
func (o *Order) Confirm() error {
	return o.TransitionTo(OrderStatusConfirmed)
}

// Complete 訂單完成履約
func (o *Order) Complete() error {
	return o.TransitionTo(OrderStatusCompleted)
}

// Cancel 取消訂單
//
// 取消只改變訂單狀態，不回補積分與庫存。
func (o *Order) Cancel() error {
	return o.TransitionTo(OrderStatusCancelled)
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructOrder 從持久化存儲重建聚合根
//
// 重建時重新加總明細並與落地的 totalPoints 比對，
// 不一致視為完整性錯誤浮出。
func ReconstructOrder(
	orderID OrderID,
	memberID MemberID,
	sellerID catalog.SellerID,
	lines []OrderLine,
	totalPoints int,
	status OrderStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if orderID.IsEmpty() {
		return nil, ErrInvalidOrderID.WithContext(
			"reason", "invalid order ID in database",
		)
	}
	if memberID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "invalid member ID in database",
		)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder.WithContext(
			"order_id", orderID.String(),
		)
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus.WithContext(
			"order_id", orderID.String(),
			"status", string(status),
		)
	}

	total, err := sumLineTotals(lines)
	if err != nil {
		return nil, err
	}
	if total.Value() != totalPoints {
		return nil, shared.ErrIntegrityViolation.WithContext(
			"order_id", orderID.String(),
			"stored_total", totalPoints,
			"computed_total", total.Value(),
		)
	}

	return &Order{
		orderID:     orderID,
		memberID:    memberID,
		sellerID:    sellerID,
		lines:       lines,
		totalPoints: total,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		events:      make([]shared.DomainEvent, 0),
	}, nil
}
