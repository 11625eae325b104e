package points

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

// 積分相關錯誤代碼
const (
	// 積分數量相關
	ErrCodeNegativePointsAmount shared.ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInvalidAmount        shared.ErrorCode = "AMOUNT_INVALID"
	ErrCodeInsufficientPoints   shared.ErrorCode = "POINTS_INSUFFICIENT"
	ErrCodePointsOverflow       shared.ErrorCode = "POINTS_OVERFLOW"

	// 帳戶相關
	ErrCodeInvalidAccountID shared.ErrorCode = "ACCOUNT_ID_INVALID"
	ErrCodeInvalidGrantID   shared.ErrorCode = "GRANT_ID_INVALID"

	// 發點紀錄相關
	ErrCodeEmptyGrantReason shared.ErrorCode = "GRANT_REASON_EMPTY"
)

// ===========================
// 預定義錯誤
// ===========================

// 積分數量相關錯誤
var (
	ErrNegativePointsAmount = &shared.DomainError{
		Code:    ErrCodeNegativePointsAmount,
		Message: "積分數量不能為負數",
	}

	// ErrInvalidAmount 非正數的操作金額（轉讓、捐贈、發點都要求 > 0）
	ErrInvalidAmount = &shared.DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: "操作積分數量必須為正數",
	}

	ErrInsufficientPoints = &shared.DomainError{
		Code:    ErrCodeInsufficientPoints,
		Message: "積分餘額不足",
	}

	ErrPointsOverflow = &shared.DomainError{
		Code:    ErrCodePointsOverflow,
		Message: "積分數量超出可表示範圍",
	}
)

// 帳戶相關錯誤
var (
	ErrInvalidAccountID = &shared.DomainError{
		Code:    ErrCodeInvalidAccountID,
		Message: "無效的帳戶 ID",
	}

	ErrInvalidGrantID = &shared.DomainError{
		Code:    ErrCodeInvalidGrantID,
		Message: "無效的發點紀錄 ID",
	}

	ErrEmptyGrantReason = &shared.DomainError{
		Code:    ErrCodeEmptyGrantReason,
		Message: "管理員發點必須附帶原因",
	}
)

// ===========================
// Repository 錯誤定義
// ===========================

const (
	ErrCodeAccountNotFound      shared.ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeAccountAlreadyExists shared.ErrorCode = "ACCOUNT_ALREADY_EXISTS"
	ErrCodeCorruptedAccount     shared.ErrorCode = "ACCOUNT_CORRUPTED"
)

var (
	// ErrAccountNotFound 帳戶不存在
	ErrAccountNotFound = &shared.DomainError{
		Code:    ErrCodeAccountNotFound,
		Message: "積分帳戶不存在",
	}

	// ErrAccountAlreadyExists 帳戶已存在
	ErrAccountAlreadyExists = &shared.DomainError{
		Code:    ErrCodeAccountAlreadyExists,
		Message: "積分帳戶已存在",
	}

	// ErrCorruptedAccount 資料庫中的帳戶資料違反不變條件
	// 這屬於致命的完整性錯誤（見 shared.ErrIntegrityViolation）
	ErrCorruptedAccount = &shared.DomainError{
		Code:    ErrCodeCorruptedAccount,
		Message: "積分帳戶資料損壞",
	}
)
