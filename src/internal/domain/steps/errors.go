package steps

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeAlreadyValidated shared.ErrorCode = "STEPS_ALREADY_VALIDATED"
	ErrCodeNegativeSteps    shared.ErrorCode = "STEPS_NEGATIVE"
	ErrCodeDateNotToday     shared.ErrorCode = "STEPS_DATE_NOT_TODAY"
	ErrCodeInvalidDate      shared.ErrorCode = "STEPS_DATE_INVALID"
	ErrCodeInvalidRecordID  shared.ErrorCode = "STEPS_RECORD_ID_INVALID"
	ErrCodeRecordNotFound   shared.ErrorCode = "STEPS_RECORD_NOT_FOUND"
	ErrCodeRecordExists     shared.ErrorCode = "STEPS_RECORD_ALREADY_EXISTS"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	// ErrAlreadyValidated 當日已驗證過（終態，不可重複入帳）
	ErrAlreadyValidated = &shared.DomainError{
		Code:    ErrCodeAlreadyValidated,
		Message: "當日步數已驗證，不可重複驗證",
	}

	// ErrNegativeSteps 步數不能為負
	ErrNegativeSteps = &shared.DomainError{
		Code:    ErrCodeNegativeSteps,
		Message: "步數不能為負數",
	}

	// ErrDateNotToday 只接受今日的步數回報（不可回填）
	ErrDateNotToday = &shared.DomainError{
		Code:    ErrCodeDateNotToday,
		Message: "只能回報今日的步數",
	}

	// ErrInvalidDate 日期格式無效
	ErrInvalidDate = &shared.DomainError{
		Code:    ErrCodeInvalidDate,
		Message: "無效的日期格式（應為 YYYY-MM-DD）",
	}

	// ErrInvalidRecordID 無效的紀錄 ID
	ErrInvalidRecordID = &shared.DomainError{
		Code:    ErrCodeInvalidRecordID,
		Message: "無效的每日步數紀錄 ID",
	}

	// ErrRecordNotFound 紀錄不存在
	ErrRecordNotFound = &shared.DomainError{
		Code:    ErrCodeRecordNotFound,
		Message: "每日步數紀錄不存在",
	}

	// ErrRecordAlreadyExists 同一會員同一日期已有紀錄
	ErrRecordAlreadyExists = &shared.DomainError{
		Code:    ErrCodeRecordExists,
		Message: "該日期的步數紀錄已存在",
	}
)
