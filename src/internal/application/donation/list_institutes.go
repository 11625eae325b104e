package donation

import (
	"fmt"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/donation"
)

// ===========================
// ListInstitutes Use Case
// ===========================

// InstituteView 機構查詢視圖
type InstituteView struct {
	InstituteID   string
	Name          string
	PointsGoal    int
	CurrentPoints int
	GoalReached   bool
	CreatedAt     time.Time
}

// ListInstitutesUseCase 查詢所有受贈機構 Use Case
type ListInstitutesUseCase struct {
	instituteRepo donation.InstituteRepository
}

// NewListInstitutesUseCase 創建 Use Case 實例
func NewListInstitutesUseCase(instituteRepo donation.InstituteRepository) *ListInstitutesUseCase {
	return &ListInstitutesUseCase{instituteRepo: instituteRepo}
}

// Execute 查詢所有機構與其募集進度（按名稱升冪）
func (uc *ListInstitutesUseCase) Execute() ([]InstituteView, error) {
	institutes, err := uc.instituteRepo.FindAll(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutes: %w", err)
	}

	views := make([]InstituteView, 0, len(institutes))
	for _, i := range institutes {
		views = append(views, InstituteView{
			InstituteID:   i.InstituteID().String(),
			Name:          i.Name(),
			PointsGoal:    i.PointsGoal().Value(),
			CurrentPoints: i.CurrentPoints().Value(),
			GoalReached:   i.GoalReached(),
			CreatedAt:     i.CreatedAt(),
		})
	}
	return views, nil
}
