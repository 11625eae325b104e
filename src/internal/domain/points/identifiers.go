package points

import (
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// 實體 ID 類型定義
// ===========================
//
// 使用 shared.EntityID[T] 泛型 + 標記類型：
// - AccountID 和 GrantID 是不同類型（編譯器強制檢查）
// - 新增 ID 類型只需標記類型 + 別名 + 兩個建構函數

// MemberID 會員 ID（由身份邊界核發，此處僅作別名方便引用）
type MemberID = identity.MemberID

// ===========================
// AccountID - 積分帳戶 ID
// ===========================

// AccountMarker 是 AccountID 的標記類型
type AccountMarker struct{}

// AccountID 積分帳戶的唯一標識符
type AccountID = shared.EntityID[AccountMarker]

// NewAccountID 生成新的積分帳戶 ID（UUID v4）
func NewAccountID() AccountID {
	return shared.NewEntityID[AccountMarker]()
}

// AccountIDFromString 從字串解析積分帳戶 ID
func AccountIDFromString(s string) (AccountID, error) {
	return shared.EntityIDFromString[AccountMarker](s, ErrInvalidAccountID)
}

// ===========================
// GrantID - 管理員發點紀錄 ID
// ===========================

// GrantMarker 是 GrantID 的標記類型
type GrantMarker struct{}

// GrantID 發點紀錄的唯一標識符
type GrantID = shared.EntityID[GrantMarker]

// NewGrantID 生成新的發點紀錄 ID（UUID v4）
func NewGrantID() GrantID {
	return shared.NewEntityID[GrantMarker]()
}

// GrantIDFromString 從字串解析發點紀錄 ID
func GrantIDFromString(s string) (GrantID, error) {
	return shared.EntityIDFromString[GrantMarker](s, ErrInvalidGrantID)
}
