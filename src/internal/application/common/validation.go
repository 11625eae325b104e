package common

import (
	"github.com/go-playground/validator/v10"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// Command 驗證
// ===========================

// ErrCodeCommandInvalid 命令欄位驗證失敗
const ErrCodeCommandInvalid shared.ErrorCode = "COMMAND_INVALID"

// ErrInvalidCommand 命令欄位驗證失敗
var ErrInvalidCommand = &shared.DomainError{
	Code:    ErrCodeCommandInvalid,
	Message: "命令欄位驗證失敗",
}

// validate 單例：validator 內部快取 struct 解析結果，共用一個實例
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCommand 驗證命令 DTO 的結構標籤（validate:"..."）
//
// 這裡只做欄位級的形式驗證（必填、UUID 格式、範圍）；
// 業務規則驗證仍由值對象與聚合負責。
func ValidateCommand(cmd interface{}) error {
	if err := validate.Struct(cmd); err != nil {
		// 逐欄位展開，錯誤上下文留第一個失敗欄位即可
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return ErrInvalidCommand.WithContext(
				"field", first.Field(),
				"rule", first.Tag(),
			)
		}
		return ErrInvalidCommand.WithContext("reason", err.Error())
	}
	return nil
}
