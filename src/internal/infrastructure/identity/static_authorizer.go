package identity

import (
	domainidentity "github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
)

// ===========================
// 靜態 AdminAuthorizer 實作
// ===========================

// StaticAdminAuthorizer 以固定允許清單實作管理員授權
//
// 清單在啟動時由設定載入，之後不變。適合管理員極少、
// 授權策略尚未外部化的部署；之後可抽換為查詢身份提供者的實作。
type StaticAdminAuthorizer struct {
	adminIDs map[string]struct{}
}

// NewStaticAdminAuthorizer 創建靜態授權器
func NewStaticAdminAuthorizer(memberIDs []string) *StaticAdminAuthorizer {
	admins := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		admins[id] = struct{}{}
	}
	return &StaticAdminAuthorizer{adminIDs: admins}
}

// IsAdmin 判斷 actor 是否在允許清單內
func (a *StaticAdminAuthorizer) IsAdmin(actorID domainidentity.MemberID) (bool, error) {
	_, ok := a.adminIDs[actorID.String()]
	return ok, nil
}
