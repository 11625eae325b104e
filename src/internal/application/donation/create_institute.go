package donation

import (
	"fmt"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/donation"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// CreateInstitute Use Case
// ===========================

// CreateInstituteCommand 創建受贈機構命令（管理操作）
type CreateInstituteCommand struct {
	ActorID    string `validate:"required,uuid4"`
	Name       string `validate:"required"`
	PointsGoal int    `validate:"required,gt=0"`
}

// CreateInstituteResult 創建受贈機構結果
type CreateInstituteResult struct {
	InstituteID string
	Name        string
	PointsGoal  int
	CreatedAt   time.Time
}

// CreateInstituteUseCase 創建受贈機構 Use Case
type CreateInstituteUseCase struct {
	authorizer    identity.AdminAuthorizer
	instituteRepo donation.InstituteRepository
	txManager     shared.TransactionManager
}

// NewCreateInstituteUseCase 創建 Use Case 實例
func NewCreateInstituteUseCase(
	authorizer identity.AdminAuthorizer,
	instituteRepo donation.InstituteRepository,
	txManager shared.TransactionManager,
) *CreateInstituteUseCase {
	return &CreateInstituteUseCase{
		authorizer:    authorizer,
		instituteRepo: instituteRepo,
		txManager:     txManager,
	}
}

// Execute 執行創建受贈機構
//
// 錯誤處理：
// - ErrNotAuthorized: 操作者沒有管理員權限
// - ErrEmptyInstituteName / ErrInvalidGoal: 機構資料不合法
func (uc *CreateInstituteUseCase) Execute(cmd CreateInstituteCommand) (*CreateInstituteResult, error) {
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	actorID, err := identity.MemberIDFromString(cmd.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse actor ID: %w", err)
	}
	isAdmin, err := uc.authorizer.IsAdmin(actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin capability: %w", err)
	}
	if !isAdmin {
		return nil, identity.ErrNotAuthorized.WithContext(
			"actor_id", actorID.String(),
			"operation", "create_institute",
		)
	}

	goal, err := points.NewPositivePointsAmount(cmd.PointsGoal)
	if err != nil {
		return nil, err
	}

	institute, err := donation.NewInstitute(cmd.Name, goal)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := uc.instituteRepo.Save(ctx, institute); err != nil {
			return fmt.Errorf("failed to save institute: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateInstituteResult{
		InstituteID: institute.InstituteID().String(),
		Name:        institute.Name(),
		PointsGoal:  institute.PointsGoal().Value(),
		CreatedAt:   institute.CreatedAt(),
	}, nil
}
