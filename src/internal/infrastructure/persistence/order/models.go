package order

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/order"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
)

// ===========================
// GORM Model 定義
// ===========================

// OrderGORM GORM 訂單頭模型
//
// total_points 落地作為完整性校驗值：
// 重建時與明細重新加總比對，不一致視為資料損壞。
type OrderGORM struct {
	OrderID     string          `gorm:"type:uuid;primaryKey;column:order_id"`
	MemberID    string          `gorm:"type:uuid;not null;index;column:member_id"`
	SellerID    string          `gorm:"type:uuid;not null;index;column:seller_id"`
	TotalPoints int             `gorm:"not null;check:total_points > 0"`
	Status      string          `gorm:"type:varchar(16);not null"`
	Lines       []OrderLineGORM `gorm:"foreignKey:OrderID;references:OrderID"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName 指定表名
func (OrderGORM) TableName() string {
	return "orders"
}

// OrderLineGORM GORM 訂單明細模型
//
// 明細創建後不可變：unit_point_cost 是結帳時刻的快照，
// 之後商品改價不影響已成立的訂單。
type OrderLineGORM struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	OrderID       string `gorm:"type:uuid;not null;index;column:order_id"`
	ItemID        string `gorm:"type:uuid;not null;column:item_id"`
	Quantity      int    `gorm:"not null;check:quantity > 0"`
	UnitPointCost int    `gorm:"not null;check:unit_point_cost >= 0"`
}

// TableName 指定表名
func (OrderLineGORM) TableName() string {
	return "order_lines"
}

// toDomain 將 GORM 模型（含明細）轉換為 Domain 聚合根
func (m *OrderGORM) toDomain() (*order.Order, error) {
	orderID, err := order.OrderIDFromString(m.OrderID)
	if err != nil {
		return nil, order.ErrInvalidOrderID.WithContext(
			"id", m.OrderID,
			"reason", "invalid UUID format in database",
		)
	}

	memberID, err := identity.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"id", m.MemberID,
			"reason", "invalid UUID format in database",
		)
	}

	sellerID, err := catalog.SellerIDFromString(m.SellerID)
	if err != nil {
		return nil, catalog.ErrInvalidSellerID.WithContext(
			"id", m.SellerID,
			"reason", "invalid UUID format in database",
		)
	}

	lines := make([]order.OrderLine, 0, len(m.Lines))
	for _, lineModel := range m.Lines {
		itemID, err := catalog.ItemIDFromString(lineModel.ItemID)
		if err != nil {
			return nil, catalog.ErrInvalidItemID.WithContext(
				"id", lineModel.ItemID,
				"reason", "invalid UUID format in database",
			)
		}
		cost, err := points.NewPointsAmount(lineModel.UnitPointCost)
		if err != nil {
			return nil, err
		}
		line, err := order.NewOrderLine(itemID, lineModel.Quantity, cost)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.ReconstructOrder(
		orderID,
		memberID,
		sellerID,
		lines,
		m.TotalPoints,
		order.OrderStatus(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toGORM 將 Domain 聚合根轉換為 GORM 模型（含明細）
func toGORM(o *order.Order) *OrderGORM {
	domainLines := o.Lines()
	lines := make([]OrderLineGORM, 0, len(domainLines))
	for _, line := range domainLines {
		lines = append(lines, OrderLineGORM{
			OrderID:       o.OrderID().String(),
			ItemID:        line.ItemID().String(),
			Quantity:      line.Quantity(),
			UnitPointCost: line.UnitPointCost().Value(),
		})
	}

	return &OrderGORM{
		OrderID:     o.OrderID().String(),
		MemberID:    o.MemberID().String(),
		SellerID:    o.SellerID().String(),
		TotalPoints: o.TotalPoints().Value(),
		Status:      string(o.Status()),
		Lines:       lines,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}
