package persistence

import (
	"strings"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// 資料庫錯誤判別
// ===========================

// IsUniqueConstraintError 判斷是否為唯一約束錯誤
//
// 支持的資料庫：
// - SQLite: "UNIQUE constraint failed"
// - PostgreSQL: "duplicate key value violates unique constraint"
// - MySQL: "Duplicate entry"
//
// 已知限制：依賴英文錯誤訊息的字符串匹配，
// 未來若支援多資料庫應改用驅動層錯誤碼。
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	// SQLite
	if strings.Contains(errMsg, "unique constraint failed") {
		return true
	}

	// PostgreSQL
	if strings.Contains(errMsg, "duplicate key value violates unique constraint") {
		return true
	}

	// MySQL
	if strings.Contains(errMsg, "duplicate entry") {
		return true
	}

	return false
}

// IsLockError 判斷是否為鎖競爭錯誤（可重試）
//
// - SQLite: "database is locked" / "database table is locked"（SQLITE_BUSY / SQLITE_LOCKED）
// - PostgreSQL: "deadlock detected" / "could not obtain lock"
// - MySQL: "Deadlock found" / "Lock wait timeout"
func IsLockError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	for _, marker := range []string{
		"database is locked",
		"database table is locked",
		"deadlock",
		"could not obtain lock",
		"lock wait timeout",
	} {
		if strings.Contains(errMsg, marker) {
			return true
		}
	}

	return false
}

// TranslateDBError 將儲存層的鎖競爭錯誤翻譯為 ErrConcurrentConflict
//
// 其他錯誤原樣返回，由各 Repository 做領域特定的映射
// （唯一約束 → *AlreadyExists、RecordNotFound → *NotFound）。
func TranslateDBError(err error) error {
	if err == nil {
		return nil
	}
	if IsLockError(err) {
		return shared.ErrConcurrentConflict.WithContext(
			"database_error", err.Error(),
		)
	}
	return err
}
