package points

import (
	"errors"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// PointsAccountRepositoryImpl
// ===========================

// PointsAccountRepositoryImpl 積分帳戶倉儲實現（GORM）
//
// 設計原則：
// - 實作 points.PointsAccountRepository 接口
// - 處理 Domain 與 GORM 模型轉換
// - 封裝所有資料庫操作細節
// - 將 GORM 錯誤轉換為 Domain 錯誤
//
// 帳務規則全部以條件式 UPDATE 落地：
// 餘額檢查與扣減是同一條語句，靠 rows-affected 判定成敗，
// 不走「先讀再寫」的路徑。
type PointsAccountRepositoryImpl struct {
	db *gorm.DB
}

// NewPointsAccountRepository 創建新的積分帳戶倉儲實例
func NewPointsAccountRepository(db *gorm.DB) points.PointsAccountRepository {
	return &PointsAccountRepositoryImpl{db: db}
}

// Save 保存新的積分帳戶
//
// 錯誤處理：
// - UNIQUE constraint 違反（member_id 重複）→ ErrAccountAlreadyExists
// - 其他資料庫錯誤 → 原始錯誤（鎖競爭翻譯為 ErrConcurrentConflict）
func (r *PointsAccountRepositoryImpl) Save(ctx shared.TransactionContext, account *points.PointsAccount) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(toGORM(account))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return points.ErrAccountAlreadyExists.WithContext(
				"member_id", account.MemberID().String(),
			)
		}
		return persistence.TranslateDBError(result.Error)
	}

	return nil
}

// FindByID 根據帳戶 ID 查找積分帳戶
func (r *PointsAccountRepositoryImpl) FindByID(ctx shared.TransactionContext, accountID points.AccountID) (*points.PointsAccount, error) {
	db := persistence.ContextDB(ctx, r.db)

	var model PointsAccountGORM
	result := db.Where("account_id = ?", accountID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, points.ErrAccountNotFound.WithContext(
				"account_id", accountID.String(),
			)
		}
		return nil, persistence.TranslateDBError(result.Error)
	}

	return model.toDomain()
}

// FindByMemberID 根據會員 ID 查找積分帳戶
// 業務規則：一個會員對應一個積分帳戶（member_id 唯一索引）
func (r *PointsAccountRepositoryImpl) FindByMemberID(ctx shared.TransactionContext, memberID points.MemberID) (*points.PointsAccount, error) {
	db := persistence.ContextDB(ctx, r.db)

	var model PointsAccountGORM
	result := db.Where("member_id = ?", memberID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, points.ErrAccountNotFound.WithContext(
				"member_id", memberID.String(),
			)
		}
		return nil, persistence.TranslateDBError(result.Error)
	}

	return model.toDomain()
}

// CreditEarned 無條件增加累積獲得積分
//
// 單條 increment UPDATE：並發入帳各自累計、互不覆蓋。
// RowsAffected = 0 表示帳戶不存在。
func (r *PointsAccountRepositoryImpl) CreditEarned(ctx shared.TransactionContext, memberID points.MemberID, amount points.PointsAmount) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&PointsAccountGORM{}).
		Where("member_id = ?", memberID.String()).
		Update("earned_points", gorm.Expr("earned_points + ?", amount.Value()))
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return points.ErrAccountNotFound.WithContext(
			"member_id", memberID.String(),
		)
	}

	return nil
}

// DeductAvailable 條件式扣減可用積分
//
// 餘額檢查與扣減在同一條 UPDATE：
//
//	UPDATE points_accounts SET used_points = used_points + ?
//	WHERE member_id = ? AND earned_points - used_points >= ?
//
// 條件不成立時 RowsAffected = 0，再查明原因：
// 帳戶不存在 → ErrAccountNotFound，餘額不足 → ErrInsufficientPoints。
// 調用者收到錯誤後讓整個事務回滾。
func (r *PointsAccountRepositoryImpl) DeductAvailable(ctx shared.TransactionContext, memberID points.MemberID, amount points.PointsAmount) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&PointsAccountGORM{}).
		Where("member_id = ? AND earned_points - used_points >= ?",
			memberID.String(), amount.Value()).
		Update("used_points", gorm.Expr("used_points + ?", amount.Value()))
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}

	if result.RowsAffected == 0 {
		var model PointsAccountGORM
		probe := db.Where("member_id = ?", memberID.String()).First(&model)
		if probe.Error != nil {
			if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
				return points.ErrAccountNotFound.WithContext(
					"member_id", memberID.String(),
				)
			}
			return persistence.TranslateDBError(probe.Error)
		}
		return points.ErrInsufficientPoints.WithContext(
			"member_id", memberID.String(),
			"requested", amount.Value(),
			"available", model.EarnedPoints-model.UsedPoints,
		)
	}

	return nil
}
