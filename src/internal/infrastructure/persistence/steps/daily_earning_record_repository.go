package steps

import (
	"errors"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/steps"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// DailyEarningRecordRepositoryImpl
// ===========================

// DailyEarningRecordRepositoryImpl 每日步數紀錄倉儲實現（GORM）
//
// 驗證的一次性由條件式 UPDATE（WHERE validated_at IS NULL）守住：
// 並發驗證最多一個贏家，輸家收到 ErrAlreadyValidated。
type DailyEarningRecordRepositoryImpl struct {
	db *gorm.DB
}

// NewDailyEarningRecordRepository 創建新的每日紀錄倉儲實例
func NewDailyEarningRecordRepository(db *gorm.DB) steps.DailyEarningRecordRepository {
	return &DailyEarningRecordRepositoryImpl{db: db}
}

// Save 保存新的每日紀錄
//
// 錯誤處理：
// - UNIQUE constraint 違反（同一會員同一日期）→ ErrRecordAlreadyExists
func (r *DailyEarningRecordRepositoryImpl) Save(ctx shared.TransactionContext, record *steps.DailyEarningRecord) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(toGORM(record))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return steps.ErrRecordAlreadyExists.WithContext(
				"member_id", record.MemberID().String(),
				"record_date", record.RecordDate(),
			)
		}
		return persistence.TranslateDBError(result.Error)
	}

	return nil
}

// FindByMemberAndDate 查找某會員某日的紀錄
func (r *DailyEarningRecordRepositoryImpl) FindByMemberAndDate(
	ctx shared.TransactionContext,
	memberID identity.MemberID,
	date string,
) (*steps.DailyEarningRecord, error) {
	db := persistence.ContextDB(ctx, r.db)

	var model DailyEarningRecordGORM
	result := db.Where("member_id = ? AND record_date = ?", memberID.String(), date).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, steps.ErrRecordNotFound.WithContext(
				"member_id", memberID.String(),
				"record_date", date,
			)
		}
		return nil, persistence.TranslateDBError(result.Error)
	}

	return model.toDomain()
}

// UpdateSteps 更新未驗證紀錄的步數
//
// 條件式寫入：WHERE validated_at IS NULL。
// RowsAffected = 0 時查明原因：紀錄不存在 → ErrRecordNotFound，
// 已驗證 → ErrAlreadyValidated。
func (r *DailyEarningRecordRepositoryImpl) UpdateSteps(
	ctx shared.TransactionContext,
	memberID identity.MemberID,
	date string,
	stepsCount int,
) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&DailyEarningRecordGORM{}).
		Where("member_id = ? AND record_date = ? AND validated_at IS NULL",
			memberID.String(), date).
		Update("steps_count", stepsCount)
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.explainConditionalMiss(db, memberID, date)
	}

	return nil
}

// MarkValidated 條件式標記驗證完成
//
// 單條 UPDATE：僅當 validated_at IS NULL 時設置 validated_at
// 與 points_earned；並發驗證的輸家收到 ErrAlreadyValidated。
func (r *DailyEarningRecordRepositoryImpl) MarkValidated(
	ctx shared.TransactionContext,
	memberID identity.MemberID,
	date string,
	pointsEarned points.PointsAmount,
	validatedAt time.Time,
) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&DailyEarningRecordGORM{}).
		Where("member_id = ? AND record_date = ? AND validated_at IS NULL",
			memberID.String(), date).
		Updates(map[string]interface{}{
			"points_earned": pointsEarned.Value(),
			"validated_at":  validatedAt,
		})
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.explainConditionalMiss(db, memberID, date)
	}

	return nil
}

// explainConditionalMiss 查明條件式寫入未命中的原因
func (r *DailyEarningRecordRepositoryImpl) explainConditionalMiss(
	db *gorm.DB,
	memberID identity.MemberID,
	date string,
) error {
	var model DailyEarningRecordGORM
	probe := db.Where("member_id = ? AND record_date = ?", memberID.String(), date).
		First(&model)
	if probe.Error != nil {
		if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			return steps.ErrRecordNotFound.WithContext(
				"member_id", memberID.String(),
				"record_date", date,
			)
		}
		return persistence.TranslateDBError(probe.Error)
	}
	return steps.ErrAlreadyValidated.WithContext(
		"member_id", memberID.String(),
		"record_date", date,
	)
}
