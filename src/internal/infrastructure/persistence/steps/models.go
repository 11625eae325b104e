package steps

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/steps"
)

// ===========================
// GORM Model 定義
// ===========================

// DailyEarningRecordGORM GORM 每日步數紀錄模型
//
// (member_id, record_date) 唯一：一人一天一筆，append-only。
// validated_at NULL 表示未驗證；設值後不再改動。
type DailyEarningRecordGORM struct {
	RecordID     string     `gorm:"type:uuid;primaryKey;column:record_id"`
	MemberID     string     `gorm:"type:uuid;not null;uniqueIndex:idx_member_date;column:member_id"`
	RecordDate   string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_member_date;column:record_date"`
	StepsCount   int        `gorm:"not null;default:0;check:steps_count >= 0"`
	PointsEarned int        `gorm:"not null;default:0;check:points_earned >= 0"`
	ValidatedAt  *time.Time `gorm:"column:validated_at"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName 指定表名
func (DailyEarningRecordGORM) TableName() string {
	return "daily_earning_records"
}

// toDomain 將 GORM 模型轉換為 Domain 聚合根
func (m *DailyEarningRecordGORM) toDomain() (*steps.DailyEarningRecord, error) {
	recordID, err := steps.RecordIDFromString(m.RecordID)
	if err != nil {
		return nil, steps.ErrInvalidRecordID.WithContext(
			"id", m.RecordID,
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

	return steps.ReconstructDailyEarningRecord(
		recordID,
		memberID,
		m.RecordDate,
		m.StepsCount,
		m.PointsEarned,
		m.ValidatedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// toGORM 將 Domain 聚合根轉換為 GORM 模型
func toGORM(record *steps.DailyEarningRecord) *DailyEarningRecordGORM {
	return &DailyEarningRecordGORM{
		RecordID:     record.RecordID().String(),
		MemberID:     record.MemberID().String(),
		RecordDate:   record.RecordDate(),
		StepsCount:   record.StepsCount(),
		PointsEarned: record.PointsEarned().Value(),
		ValidatedAt:  record.ValidatedAt(),
		CreatedAt:    record.CreatedAt(),
		UpdatedAt:    record.UpdatedAt(),
	}
}
