package donation

import (
	"errors"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/donation"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// InstituteRepositoryImpl
// ===========================

// InstituteRepositoryImpl 受贈機構倉儲實現（GORM）
//
// AddPoints 以單條 increment UPDATE 落地：
// 並發的捐贈各自累計、互不覆蓋。
type InstituteRepositoryImpl struct {
	db *gorm.DB
}

// NewInstituteRepository 創建新的機構倉儲實例
func NewInstituteRepository(db *gorm.DB) donation.InstituteRepository {
	return &InstituteRepositoryImpl{db: db}
}

// Save 保存新的機構
func (r *InstituteRepositoryImpl) Save(ctx shared.TransactionContext, institute *donation.Institute) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(instituteToGORM(institute))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return donation.ErrInstituteAlreadyExists.WithContext(
				"institute_id", institute.InstituteID().String(),
			)
		}
		return persistence.TranslateDBError(result.Error)
	}

	return nil
}

// FindByID 根據機構 ID 查找機構
func (r *InstituteRepositoryImpl) FindByID(ctx shared.TransactionContext, instituteID donation.InstituteID) (*donation.Institute, error) {
	db := persistence.ContextDB(ctx, r.db)

	var model InstituteGORM
	result := db.Where("institute_id = ?", instituteID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, donation.ErrInstituteNotFound.WithContext(
				"institute_id", instituteID.String(),
			)
		}
		return nil, persistence.TranslateDBError(result.Error)
	}

	return model.toDomain()
}

// FindAll 查詢所有機構（按名稱升冪）
func (r *InstituteRepositoryImpl) FindAll(ctx shared.TransactionContext) ([]*donation.Institute, error) {
	db := persistence.ContextDB(ctx, r.db)

	var models []InstituteGORM
	result := db.Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, persistence.TranslateDBError(result.Error)
	}

	institutes := make([]*donation.Institute, 0, len(models))
	for i := range models {
		institute, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		institutes = append(institutes, institute)
	}
	return institutes, nil
}

// AddPoints 無條件累計機構已募集積分
//
// 單條 increment UPDATE 後在同一事務內重讀新總額，
// 供呼叫方做目標達成判斷。
func (r *InstituteRepositoryImpl) AddPoints(ctx shared.TransactionContext, instituteID donation.InstituteID, amount points.PointsAmount) (points.PointsAmount, error) {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&InstituteGORM{}).
		Where("institute_id = ?", instituteID.String()).
		Update("current_points", gorm.Expr("current_points + ?", amount.Value()))
	if result.Error != nil {
		return points.PointsAmount{}, persistence.TranslateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return points.PointsAmount{}, donation.ErrInstituteNotFound.WithContext(
			"institute_id", instituteID.String(),
		)
	}

	var model InstituteGORM
	probe := db.Where("institute_id = ?", instituteID.String()).First(&model)
	if probe.Error != nil {
		return points.PointsAmount{}, persistence.TranslateDBError(probe.Error)
	}

	return points.NewPointsAmount(model.CurrentPoints)
}
