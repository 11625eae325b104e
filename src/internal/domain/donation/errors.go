package donation

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidInstituteID shared.ErrorCode = "INSTITUTE_ID_INVALID"
	ErrCodeInvalidDonationID  shared.ErrorCode = "DONATION_ID_INVALID"
	ErrCodeEmptyInstituteName shared.ErrorCode = "INSTITUTE_NAME_EMPTY"
	ErrCodeInvalidGoal        shared.ErrorCode = "INSTITUTE_GOAL_INVALID"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidInstituteID = &shared.DomainError{
		Code:    ErrCodeInvalidInstituteID,
		Message: "無效的機構 ID",
	}

	ErrInvalidDonationID = &shared.DomainError{
		Code:    ErrCodeInvalidDonationID,
		Message: "無效的捐贈紀錄 ID",
	}

	// ErrEmptyInstituteName 機構名稱不能為空
	ErrEmptyInstituteName = &shared.DomainError{
		Code:    ErrCodeEmptyInstituteName,
		Message: "機構名稱不能為空",
	}

	// ErrInvalidGoal 募集目標必須為正數
	ErrInvalidGoal = &shared.DomainError{
		Code:    ErrCodeInvalidGoal,
		Message: "機構募集目標必須為正數",
	}
)

// ===========================
// Repository 錯誤定義
// ===========================

const (
	ErrCodeInstituteNotFound      shared.ErrorCode = "INSTITUTE_NOT_FOUND"
	ErrCodeInstituteAlreadyExists shared.ErrorCode = "INSTITUTE_ALREADY_EXISTS"
)

var (
	// ErrInstituteNotFound 機構不存在
	ErrInstituteNotFound = &shared.DomainError{
		Code:    ErrCodeInstituteNotFound,
		Message: "機構不存在",
	}

	// ErrInstituteAlreadyExists 機構已存在
	ErrInstituteAlreadyExists = &shared.DomainError{
		Code:    ErrCodeInstituteAlreadyExists,
		Message: "機構已存在",
	}
)
