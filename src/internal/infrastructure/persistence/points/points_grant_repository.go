package points

import (
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// PointsGrantRepositoryImpl
// ===========================

// PointsGrantRepositoryImpl 發點紀錄倉儲實現（GORM）
//
// append-only：只有 Create 與查詢，沒有 Update / Delete。
type PointsGrantRepositoryImpl struct {
	db *gorm.DB
}

// NewPointsGrantRepository 創建新的發點紀錄倉儲實例
func NewPointsGrantRepository(db *gorm.DB) points.PointsGrantRepository {
	return &PointsGrantRepositoryImpl{db: db}
}

// Append 追加一筆發點紀錄
func (r *PointsGrantRepositoryImpl) Append(ctx shared.TransactionContext, grant *points.PointsGrant) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(grantToGORM(grant))
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}
	return nil
}

// FindByMemberID 查詢某會員收到的所有發點紀錄（按時間升冪）
func (r *PointsGrantRepositoryImpl) FindByMemberID(ctx shared.TransactionContext, memberID points.MemberID) ([]*points.PointsGrant, error) {
	db := persistence.ContextDB(ctx, r.db)

	var models []PointsGrantGORM
	result := db.Where("member_id = ?", memberID.String()).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, persistence.TranslateDBError(result.Error)
	}

	grants := make([]*points.PointsGrant, 0, len(models))
	for i := range models {
		grant, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, nil
}
