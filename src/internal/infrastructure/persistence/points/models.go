package points

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
)

// ===========================
// GORM Model 定義
// ===========================

// PointsAccountGORM GORM 積分帳戶模型
//
// available 不落地：永遠由 earned - used 推導。
type PointsAccountGORM struct {
	AccountID    string    `gorm:"type:uuid;primaryKey;column:account_id"`
	MemberID     string    `gorm:"type:uuid;uniqueIndex;not null;column:member_id"`
	EarnedPoints int       `gorm:"not null;default:0;check:earned_points >= 0"`
	UsedPoints   int       `gorm:"not null;default:0;check:used_points >= 0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName 指定表名
func (PointsAccountGORM) TableName() string {
	return "points_accounts"
}

// toDomain 將 GORM 模型轉換為 Domain 聚合根
//
// 使用 ReconstructPointsAccount 重建：完整驗證（負數、不變條件）
// 但不發布事件。資料庫數據違反業務規則時返回錯誤而非 panic。
func (m *PointsAccountGORM) toDomain() (*points.PointsAccount, error) {
	accountID, err := points.AccountIDFromString(m.AccountID)
	if err != nil {
		return nil, points.ErrInvalidAccountID.WithContext(
			"id", m.AccountID,
			"reason", "invalid UUID format in database",
		)
	}

	memberID, err := identity.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"id", m.MemberID,
			"reason", "invalid UUID format in database",
		)
	}

	return points.ReconstructPointsAccount(
		accountID,
		memberID,
		m.EarnedPoints,
		m.UsedPoints,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toGORM 將 Domain 聚合根轉換為 GORM 模型
// Domain 聚合已保證數據有效性，單向映射即可
func toGORM(account *points.PointsAccount) *PointsAccountGORM {
	return &PointsAccountGORM{
		AccountID:    account.AccountID().String(),
		MemberID:     account.MemberID().String(),
		EarnedPoints: account.EarnedPoints().Value(),
		UsedPoints:   account.UsedPoints().Value(),
		CreatedAt:    account.CreatedAt(),
		UpdatedAt:    account.UpdatedAt(),
	}
}

// PointsGrantGORM GORM 發點紀錄模型（append-only 審計日誌）
type PointsGrantGORM struct {
	GrantID   string    `gorm:"type:uuid;primaryKey;column:grant_id"`
	ActorID   string    `gorm:"type:uuid;not null;index;column:actor_id"`
	MemberID  string    `gorm:"type:uuid;not null;index;column:member_id"`
	Amount    int       `gorm:"not null;check:amount > 0"`
	Reason    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName 指定表名
func (PointsGrantGORM) TableName() string {
	return "points_grants"
}

// toDomain 將 GORM 模型轉換為 Domain 發點紀錄
func (m *PointsGrantGORM) toDomain() (*points.PointsGrant, error) {
	grantID, err := points.GrantIDFromString(m.GrantID)
	if err != nil {
		return nil, points.ErrInvalidGrantID.WithContext(
			"id", m.GrantID,
			"reason", "invalid UUID format in database",
		)
	}

	actorID, err := identity.MemberIDFromString(m.ActorID)
	if err != nil {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"id", m.ActorID,
			"reason", "invalid UUID format in database",
		)
	}

	memberID, err := identity.MemberIDFromString(m.MemberID)
	if err != nil {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"id", m.MemberID,
			"reason", "invalid UUID format in database",
		)
	}

	return points.ReconstructPointsGrant(
		grantID, actorID, memberID, m.Amount, m.Reason, m.CreatedAt,
	)
}

// grantToGORM 將 Domain 發點紀錄轉換為 GORM 模型
func grantToGORM(grant *points.PointsGrant) *PointsGrantGORM {
	return &PointsGrantGORM{
		GrantID:   grant.GrantID().String(),
		ActorID:   grant.ActorID().String(),
		MemberID:  grant.MemberID().String(),
		Amount:    grant.Amount().Value(),
		Reason:    grant.Reason(),
		CreatedAt: grant.CreatedAt(),
	}
}
