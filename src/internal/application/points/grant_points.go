package points

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// GrantPoints Use Case
// ===========================

// GrantPointsCommand 管理員發點命令
type GrantPointsCommand struct {
	ActorID  string `validate:"required,uuid4"`
	MemberID string `validate:"required,uuid4"`
	Amount   int    `validate:"required,gt=0"`
	Reason   string `validate:"required"`
}

// GrantPointsResult 管理員發點結果
type GrantPointsResult struct {
	GrantID   string
	MemberID  string
	Amount    int
	CreatedAt time.Time
}

// GrantPointsUseCase 管理員發點 Use Case
//
// 發點是系統中唯一沒有對稱扣減的入帳路徑：
// 1. AdminAuthorizer 確認操作者具管理員能力（否則 NotAuthorized）
// 2. 同一事務內：發點紀錄落帳（append-only）＋ 帳戶入帳
// 3. 提交後寫一筆結構化審計日誌並發布變更通知
//
// 引擎不對單筆發點數量設上限，上限屬於外部策略層。
type GrantPointsUseCase struct {
	authorizer  identity.AdminAuthorizer
	accountRepo points.PointsAccountRepository
	grantRepo   points.PointsGrantRepository
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	logger      *logrus.Logger
}

// NewGrantPointsUseCase 創建 Use Case 實例
func NewGrantPointsUseCase(
	authorizer identity.AdminAuthorizer,
	accountRepo points.PointsAccountRepository,
	grantRepo points.PointsGrantRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *logrus.Logger,
) *GrantPointsUseCase {
	return &GrantPointsUseCase{
		authorizer:  authorizer,
		accountRepo: accountRepo,
		grantRepo:   grantRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute 執行管理員發點
//
// 錯誤處理：
// - ErrNotAuthorized: 操作者不具管理員能力
// - ErrAccountNotFound: 收點會員沒有積分帳戶
// - ErrInvalidAmount / ErrEmptyGrantReason: 輸入不合法
func (uc *GrantPointsUseCase) Execute(cmd GrantPointsCommand) (*GrantPointsResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	actorID, err := identity.MemberIDFromString(cmd.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse actor ID: %w", err)
	}

	memberID, err := identity.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}

	// 2. 管理員能力檢查
	isAdmin, err := uc.authorizer.IsAdmin(actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin capability: %w", err)
	}
	if !isAdmin {
		return nil, identity.ErrNotAuthorized.WithContext(
			"actor_id", actorID.String(),
			"operation", "grant_points",
		)
	}

	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	// 3. 建立發點紀錄（Domain Layer 驗證原因等規則）
	grant, err := points.NewPointsGrant(actorID, memberID, amount, cmd.Reason)
	if err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}

	// 4. 同一事務內：追加紀錄 + 帳戶入帳
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := uc.grantRepo.Append(ctx, grant); err != nil {
			return fmt.Errorf("failed to append grant: %w", err)
		}
		if err := uc.accountRepo.CreditEarned(ctx, memberID, amount); err != nil {
			return fmt.Errorf("failed to credit points: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. 審計日誌（提交後寫入，記錄既成事實）
	uc.logger.WithFields(logrus.Fields{
		"grant_id":  grant.GrantID().String(),
		"actor_id":  actorID.String(),
		"member_id": memberID.String(),
		"amount":    amount.Value(),
		"reason":    grant.Reason(),
	}).Info("admin points grant committed")

	// 6. 發布變更通知
	uc.publisher.Publish(points.NewBalanceChangedEvent(memberID))

	return &GrantPointsResult{
		GrantID:   grant.GrantID().String(),
		MemberID:  memberID.String(),
		Amount:    amount.Value(),
		CreatedAt: grant.CreatedAt(),
	}, nil
}
