package donation

import (
	"github.com/jackyeh168/walk_rewards/src/internal/domain/donation"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// DonationRepositoryImpl
// ===========================

// DonationRepositoryImpl 捐贈紀錄倉儲實現（GORM）
//
// append-only：只有 Create 與查詢，沒有 Update / Delete。
type DonationRepositoryImpl struct {
	db *gorm.DB
}

// NewDonationRepository 創建新的捐贈紀錄倉儲實例
func NewDonationRepository(db *gorm.DB) donation.DonationRepository {
	return &DonationRepositoryImpl{db: db}
}

// Append 追加一筆捐贈紀錄
func (r *DonationRepositoryImpl) Append(ctx shared.TransactionContext, d *donation.Donation) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(donationToGORM(d))
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}
	return nil
}

// FindByMemberID 查詢某會員的所有捐贈紀錄（按時間升冪）
func (r *DonationRepositoryImpl) FindByMemberID(ctx shared.TransactionContext, memberID donation.MemberID) ([]*donation.Donation, error) {
	return r.findWhere(ctx, "member_id = ?", memberID.String())
}

// FindByInstituteID 查詢某機構收到的所有捐贈紀錄（按時間升冪）
func (r *DonationRepositoryImpl) FindByInstituteID(ctx shared.TransactionContext, instituteID donation.InstituteID) ([]*donation.Donation, error) {
	return r.findWhere(ctx, "institute_id = ?", instituteID.String())
}

func (r *DonationRepositoryImpl) findWhere(ctx shared.TransactionContext, query string, arg string) ([]*donation.Donation, error) {
	db := persistence.ContextDB(ctx, r.db)

	var models []DonationGORM
	result := db.Where(query, arg).Order("created_at ASC").Find(&models)
	if result.Error != nil {
		return nil, persistence.TranslateDBError(result.Error)
	}

	donations := make([]*donation.Donation, 0, len(models))
	for i := range models {
		d, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, nil
}
