package catalog

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
)

// ===========================
// GORM Model 定義
// ===========================

// CatalogItemGORM GORM 商品模型
//
// stock = -1 是「無上限」哨兵（僅 product），
// 否則 stock >= 0，只透過條件式 DecrementStock 下降。
type CatalogItemGORM struct {
	ItemID        string    `gorm:"type:uuid;primaryKey;column:item_id"`
	SellerID      string    `gorm:"type:uuid;not null;index;column:seller_id"`
	Kind          string    `gorm:"type:varchar(16);not null"`
	UnitPointCost int       `gorm:"not null;check:unit_point_cost >= 0"`
	Stock         int       `gorm:"not null;check:stock >= -1"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName 指定表名
func (CatalogItemGORM) TableName() string {
	return "catalog_items"
}

// toDomain 將 GORM 模型轉換為 Domain 商品
func (m *CatalogItemGORM) toDomain() (*catalog.CatalogItem, error) {
	itemID, err := catalog.ItemIDFromString(m.ItemID)
	if err != nil {
		return nil, catalog.ErrInvalidItemID.WithContext(
			"id", m.ItemID,
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

	return catalog.ReconstructCatalogItem(
		itemID,
		sellerID,
		catalog.ItemKind(m.Kind),
		m.UnitPointCost,
		m.Stock,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toGORM 將 Domain 商品轉換為 GORM 模型
func toGORM(item *catalog.CatalogItem) *CatalogItemGORM {
	return &CatalogItemGORM{
		ItemID:        item.ItemID().String(),
		SellerID:      item.SellerID().String(),
		Kind:          string(item.Kind()),
		UnitPointCost: item.UnitPointCost().Value(),
		Stock:         item.Stock(),
		CreatedAt:     item.CreatedAt(),
		UpdatedAt:     item.UpdatedAt(),
	}
}
