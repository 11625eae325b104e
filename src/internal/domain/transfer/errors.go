package transfer

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidTransferID shared.ErrorCode = "TRANSFER_ID_INVALID"
	ErrCodeSelfTransfer      shared.ErrorCode = "TRANSFER_SELF"
	ErrCodeInvalidStatus     shared.ErrorCode = "TRANSFER_STATUS_INVALID"
	ErrCodeAlreadyResponded  shared.ErrorCode = "TRANSFER_ALREADY_RESPONDED"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidTransferID = &shared.DomainError{
		Code:    ErrCodeInvalidTransferID,
		Message: "無效的轉讓 ID",
	}

	// ErrSelfTransfer 不能轉讓給自己
	ErrSelfTransfer = &shared.DomainError{
		Code:    ErrCodeSelfTransfer,
		Message: "轉讓的發送方與接收方不能相同",
	}

	ErrInvalidStatus = &shared.DomainError{
		Code:    ErrCodeInvalidStatus,
		Message: "無效的轉讓狀態",
	}

	// ErrAlreadyResponded 轉讓已被回應（accepted / rejected 為終態）
	ErrAlreadyResponded = &shared.DomainError{
		Code:    ErrCodeAlreadyResponded,
		Message: "轉讓已被回應，不能重複操作",
	}
)

// ===========================
// Repository 錯誤定義
// ===========================

const (
	ErrCodeTransferNotFound      shared.ErrorCode = "TRANSFER_NOT_FOUND"
	ErrCodeTransferAlreadyExists shared.ErrorCode = "TRANSFER_ALREADY_EXISTS"
)

var (
	// ErrTransferNotFound 轉讓不存在
	ErrTransferNotFound = &shared.DomainError{
		Code:    ErrCodeTransferNotFound,
		Message: "轉讓不存在",
	}

	// ErrTransferAlreadyExists 轉讓已存在
	ErrTransferAlreadyExists = &shared.DomainError{
		Code:    ErrCodeTransferAlreadyExists,
		Message: "轉讓已存在",
	}
)
