package identity

import (
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// 身份邊界（外部協作者）
// ===========================
//
// 引擎不做身份驗證：每次調用攜帶的 MemberID 已由外部身份提供者驗證。
// 此 context 只定義引擎信任邊界上的介面與 ID 類型。

// MemberMarker 是 MemberID 的標記類型
type MemberMarker struct{}

// MemberID 會員的唯一標識符（由外部身份提供者核發）
type MemberID = shared.EntityID[MemberMarker]

// NewMemberID 生成新的會員 ID（UUID v4）
func NewMemberID() MemberID {
	return shared.NewEntityID[MemberMarker]()
}

// MemberIDFromString 從字串解析會員 ID
func MemberIDFromString(s string) (MemberID, error) {
	return shared.EntityIDFromString[MemberMarker](s, ErrInvalidMemberID)
}

// IdentityProvider 身份提供者介面
//
// 由外部系統實作（如 OIDC、LINE Login）。引擎只需要把
// 不透明的憑證換成已驗證的 MemberID，其餘個資一概不經手。
type IdentityProvider interface {
	// ResolveMember 將已驗證的憑證解析為 MemberID
	// 錯誤：憑證無效時返回 ErrUnverifiedIdentity
	ResolveMember(credential string) (MemberID, error)
}

// AdminAuthorizer 管理員授權介面
//
// 管理性發點（AdminGrant）前必須通過此檢查。
// 授權策略（角色表、能力清單）屬於外部協作者，引擎不實作。
type AdminAuthorizer interface {
	// IsAdmin 判斷 actor 是否具有管理員能力
	IsAdmin(actorID MemberID) (bool, error)
}

// ===========================
// 錯誤定義
// ===========================

const (
	ErrCodeInvalidMemberID    shared.ErrorCode = "MEMBER_ID_INVALID"
	ErrCodeUnverifiedIdentity shared.ErrorCode = "IDENTITY_UNVERIFIED"
	ErrCodeNotAuthorized      shared.ErrorCode = "NOT_AUTHORIZED"
)

var (
	// ErrInvalidMemberID 無效的會員 ID
	ErrInvalidMemberID = &shared.DomainError{
		Code:    ErrCodeInvalidMemberID,
		Message: "無效的會員 ID",
	}

	// ErrUnverifiedIdentity 憑證未通過身份驗證
	ErrUnverifiedIdentity = &shared.DomainError{
		Code:    ErrCodeUnverifiedIdentity,
		Message: "身份憑證驗證失敗",
	}

	// ErrNotAuthorized 操作者不具備所需能力
	ErrNotAuthorized = &shared.DomainError{
		Code:    ErrCodeNotAuthorized,
		Message: "操作者不具備管理員權限",
	}
)
