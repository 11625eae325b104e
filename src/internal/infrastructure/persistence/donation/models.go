package donation

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/donation"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
)

// ===========================
// GORM Model 定義
// ===========================

// InstituteGORM GORM 受贈機構模型
//
// current_points 只透過單條 increment UPDATE 上升，
// 永不下降（捐贈不可撤回）。
type InstituteGORM struct {
	InstituteID   string    `gorm:"type:uuid;primaryKey;column:institute_id"`
	Name          string    `gorm:"not null"`
	PointsGoal    int       `gorm:"not null;check:points_goal > 0"`
	CurrentPoints int       `gorm:"not null;default:0;check:current_points >= 0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName 指定表名
func (InstituteGORM) TableName() string {
	return "institutes"
}

// toDomain 將 GORM 模型轉換為 Domain 機構
func (m *InstituteGORM) toDomain() (*donation.Institute, error) {
	instituteID, err := donation.InstituteIDFromString(m.InstituteID)
	if err != nil {
		return nil, donation.ErrInvalidInstituteID.WithContext(
			"id", m.InstituteID,
			"reason", "invalid UUID format in database",
		)
	}

	return donation.ReconstructInstitute(
		instituteID,
		m.Name,
		m.PointsGoal,
		m.CurrentPoints,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// instituteToGORM 將 Domain 機構轉換為 GORM 模型
func instituteToGORM(i *donation.Institute) *InstituteGORM {
	return &InstituteGORM{
		InstituteID:   i.InstituteID().String(),
		Name:          i.Name(),
		PointsGoal:    i.PointsGoal().Value(),
		CurrentPoints: i.CurrentPoints().Value(),
		CreatedAt:     i.CreatedAt(),
		UpdatedAt:     i.UpdatedAt(),
	}
}

// DonationGORM GORM 捐贈紀錄模型（append-only）
type DonationGORM struct {
	DonationID  string    `gorm:"type:uuid;primaryKey;column:donation_id"`
	MemberID    string    `gorm:"type:uuid;not null;index;column:member_id"`
	InstituteID string    `gorm:"type:uuid;not null;index;column:institute_id"`
	Amount      int       `gorm:"not null;check:amount > 0"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName 指定表名
func (DonationGORM) TableName() string {
	return "donations"
}

// toDomain 將 GORM 模型轉換為 Domain 捐贈紀錄
func (m *DonationGORM) toDomain() (*donation.Donation, error) {
	donationID, err := donation.DonationIDFromString(m.DonationID)
	if err != nil {
		return nil, donation.ErrInvalidDonationID.WithContext(
			"id", m.DonationID,
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

	instituteID, err := donation.InstituteIDFromString(m.InstituteID)
	if err != nil {
		return nil, donation.ErrInvalidInstituteID.WithContext(
			"id", m.InstituteID,
			"reason", "invalid UUID format in database",
		)
	}

	return donation.ReconstructDonation(
		donationID, memberID, instituteID, m.Amount, m.CreatedAt,
	)
}

// donationToGORM 將 Domain 捐贈紀錄轉換為 GORM 模型
func donationToGORM(d *donation.Donation) *DonationGORM {
	return &DonationGORM{
		DonationID:  d.DonationID().String(),
		MemberID:    d.MemberID().String(),
		InstituteID: d.InstituteID().String(),
		Amount:      d.Amount().Value(),
		CreatedAt:   d.CreatedAt(),
	}
}
