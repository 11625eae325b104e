package catalog

import (
	"errors"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// CatalogItemRepositoryImpl
// ===========================

// CatalogItemRepositoryImpl 商品倉儲實現（GORM）
//
// 庫存檢查與扣減是同一條條件式 UPDATE（WHERE stock >= quantity），
// 並發超賣由 rows-affected 判定擋住。
type CatalogItemRepositoryImpl struct {
	db *gorm.DB
}

// NewCatalogItemRepository 創建新的商品倉儲實例
func NewCatalogItemRepository(db *gorm.DB) catalog.CatalogItemRepository {
	return &CatalogItemRepositoryImpl{db: db}
}

// Save 保存新商品
func (r *CatalogItemRepositoryImpl) Save(ctx shared.TransactionContext, item *catalog.CatalogItem) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(toGORM(item))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return catalog.ErrItemAlreadyExists.WithContext(
				"item_id", item.ItemID().String(),
			)
		}
		return persistence.TranslateDBError(result.Error)
	}

	return nil
}

// FindByID 根據商品 ID 查找
func (r *CatalogItemRepositoryImpl) FindByID(ctx shared.TransactionContext, itemID catalog.ItemID) (*catalog.CatalogItem, error) {
	db := persistence.ContextDB(ctx, r.db)

	var model CatalogItemGORM
	result := db.Where("item_id = ?", itemID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrItemNotFound.WithContext(
				"item_id", itemID.String(),
			)
		}
		return nil, persistence.TranslateDBError(result.Error)
	}

	return model.toDomain()
}

// FindByIDs 批次查找（結帳時一次載入整個購物籃的商品）
//
// 任一 ID 不存在時返回 ErrItemNotFound，context 附帶缺失的 item_id，
// 讓客戶端知道籃子裡哪一項已下架。
func (r *CatalogItemRepositoryImpl) FindByIDs(ctx shared.TransactionContext, itemIDs []catalog.ItemID) ([]*catalog.CatalogItem, error) {
	db := persistence.ContextDB(ctx, r.db)

	idStrings := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		idStrings = append(idStrings, id.String())
	}

	var models []CatalogItemGORM
	result := db.Where("item_id IN ?", idStrings).Find(&models)
	if result.Error != nil {
		return nil, persistence.TranslateDBError(result.Error)
	}

	found := make(map[string]bool, len(models))
	items := make([]*catalog.CatalogItem, 0, len(models))
	for i := range models {
		item, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		found[models[i].ItemID] = true
		items = append(items, item)
	}

	for _, id := range idStrings {
		if !found[id] {
			return nil, catalog.ErrItemNotFound.WithContext("item_id", id)
		}
	}

	return items, nil
}

// DecrementStock 條件式扣減庫存
//
// 單條 UPDATE：
//
//	UPDATE catalog_items SET stock = stock - ?
//	WHERE item_id = ? AND stock >= ?
//
// RowsAffected = 0 時查明原因：商品不存在 → ErrItemNotFound，
// 庫存不足 → ErrOutOfStock（context 附帶 item_id）。
// 無上限哨兵（stock = -1）的商品不應走此方法。
func (r *CatalogItemRepositoryImpl) DecrementStock(ctx shared.TransactionContext, itemID catalog.ItemID, quantity int) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&CatalogItemGORM{}).
		Where("item_id = ? AND stock >= ?", itemID.String(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}

	if result.RowsAffected == 0 {
		var model CatalogItemGORM
		probe := db.Where("item_id = ?", itemID.String()).First(&model)
		if probe.Error != nil {
			if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
				return catalog.ErrItemNotFound.WithContext(
					"item_id", itemID.String(),
				)
			}
			return persistence.TranslateDBError(probe.Error)
		}
		return catalog.ErrOutOfStock.WithContext(
			"item_id", itemID.String(),
			"requested", quantity,
			"stock", model.Stock,
		)
	}

	return nil
}
