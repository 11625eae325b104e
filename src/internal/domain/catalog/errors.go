package catalog

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidItemID    shared.ErrorCode = "ITEM_ID_INVALID"
	ErrCodeInvalidSellerID  shared.ErrorCode = "SELLER_ID_INVALID"
	ErrCodeInvalidItemKind  shared.ErrorCode = "ITEM_KIND_INVALID"
	ErrCodeInvalidStock     shared.ErrorCode = "STOCK_INVALID"
	ErrCodeOutOfStock       shared.ErrorCode = "STOCK_INSUFFICIENT"
	ErrCodeItemNotFound     shared.ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeItemAlreadyExist shared.ErrorCode = "ITEM_ALREADY_EXISTS"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	// ErrInvalidItemID 無效的商品 ID
	ErrInvalidItemID = &shared.DomainError{
		Code:    ErrCodeInvalidItemID,
		Message: "無效的商品 ID",
	}

	// ErrInvalidSellerID 無效的賣家 ID
	ErrInvalidSellerID = &shared.DomainError{
		Code:    ErrCodeInvalidSellerID,
		Message: "無效的賣家 ID",
	}

	// ErrInvalidItemKind 未知的商品種類
	ErrInvalidItemKind = &shared.DomainError{
		Code:    ErrCodeInvalidItemKind,
		Message: "商品種類必須是 product 或 reward",
	}

	// ErrInvalidStock 無效的庫存數量
	ErrInvalidStock = &shared.DomainError{
		Code:    ErrCodeInvalidStock,
		Message: "無效的庫存數量",
	}

	// ErrOutOfStock 庫存不足（context 附帶 item_id，供呼叫方標示失敗的品項）
	ErrOutOfStock = &shared.DomainError{
		Code:    ErrCodeOutOfStock,
		Message: "商品庫存不足",
	}

	// ErrItemNotFound 商品不存在
	ErrItemNotFound = &shared.DomainError{
		Code:    ErrCodeItemNotFound,
		Message: "商品不存在",
	}

	// ErrItemAlreadyExists 商品已存在
	ErrItemAlreadyExists = &shared.DomainError{
		Code:    ErrCodeItemAlreadyExist,
		Message: "商品已存在",
	}
)
