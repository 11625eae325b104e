package catalog

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// CatalogItem Repository 介面
// ===========================

// CatalogItemRepository 商品目錄倉儲介面
type CatalogItemRepository interface {
	// Save 保存新商品
	// 錯誤：ErrItemAlreadyExists
	Save(ctx shared.TransactionContext, item *CatalogItem) error

	// FindByID 根據商品 ID 查找
	// 返回：找到的商品，或 ErrItemNotFound
	FindByID(ctx shared.TransactionContext, itemID ItemID) (*CatalogItem, error)

	// FindByIDs 批次查找（結帳時一次載入整個購物籃的商品）
	// 任一 ID 不存在時返回 ErrItemNotFound（context 附帶缺失的 item_id）
	FindByIDs(ctx shared.TransactionContext, itemIDs []ItemID) ([]*CatalogItem, error)

	// DecrementStock 條件式扣減庫存
	// 以單條條件式 UPDATE 實作：僅當 stock >= quantity 時
	// stock -= quantity；條件不成立時返回 ErrOutOfStock
	// （context 附帶 item_id），由調用者讓整個事務回滾。
	// 無上限哨兵（UnlimitedStock）的商品不應走此方法。
	// 前置條件：ctx 必須為 non-nil，quantity >= 1
	DecrementStock(ctx shared.TransactionContext, itemID ItemID, quantity int) error
}
