package order

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidOrderID    shared.ErrorCode = "ORDER_ID_INVALID"
	ErrCodeEmptyOrder        shared.ErrorCode = "ORDER_EMPTY"
	ErrCodeInvalidQuantity   shared.ErrorCode = "ORDER_QUANTITY_INVALID"
	ErrCodeInvalidStatus     shared.ErrorCode = "ORDER_STATUS_INVALID"
	ErrCodeInvalidTransition shared.ErrorCode = "ORDER_STATUS_TRANSITION_INVALID"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidOrderID = &shared.DomainError{
		Code:    ErrCodeInvalidOrderID,
		Message: "無效的訂單 ID",
	}

	// ErrEmptyOrder 訂單至少需要一筆明細
	ErrEmptyOrder = &shared.DomainError{
		Code:    ErrCodeEmptyOrder,
		Message: "訂單必須包含至少一筆明細",
	}

	// ErrInvalidQuantity 明細數量必須為正整數
	ErrInvalidQuantity = &shared.DomainError{
		Code:    ErrCodeInvalidQuantity,
		Message: "訂單明細數量必須為正整數",
	}

	ErrInvalidStatus = &shared.DomainError{
		Code:    ErrCodeInvalidStatus,
		Message: "無效的訂單狀態",
	}

	// ErrInvalidTransition 狀態轉移不在狀態機允許的邊上
	ErrInvalidTransition = &shared.DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: "不允許的訂單狀態轉移",
	}
)

// ===========================
// Repository 錯誤定義
// ===========================

const (
	ErrCodeOrderNotFound      shared.ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeOrderAlreadyExists shared.ErrorCode = "ORDER_ALREADY_EXISTS"
)

var (
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = &shared.DomainError{
		Code:    ErrCodeOrderNotFound,
		Message: "訂單不存在",
	}

	// ErrOrderAlreadyExists 訂單已存在
	ErrOrderAlreadyExists = &shared.DomainError{
		Code:    ErrCodeOrderAlreadyExists,
		Message: "訂單已存在",
	}
)
