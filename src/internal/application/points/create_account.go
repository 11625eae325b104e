package points

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// CreatePointsAccount Use Case
// ===========================

// CreatePointsAccountCommand 創建積分帳戶的命令
type CreatePointsAccountCommand struct {
	MemberID string `validate:"required,uuid4"`
}

// CreatePointsAccountResult 創建積分帳戶的結果
type CreatePointsAccountResult struct {
	AccountID      string
	MemberID       string
	InitialBalance int
	CreatedAt      time.Time
}

// CreatePointsAccountUseCase 創建積分帳戶 Use Case
//
// 設計原則：
// - 單一職責：只負責協調創建帳戶的流程
// - 依賴倒置：依賴 Repository 介面和 TransactionManager 介面
// - 事務管理：Use Case 管理事務（不依賴調用者）
// - 並發安全：依賴資料庫唯一約束，而非 check-then-insert
type CreatePointsAccountUseCase struct {
	accountRepo points.PointsAccountRepository
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
}

// NewCreatePointsAccountUseCase 創建 Use Case 實例
func NewCreatePointsAccountUseCase(
	repo points.PointsAccountRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) *CreatePointsAccountUseCase {
	return &CreatePointsAccountUseCase{
		accountRepo: repo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// Execute 執行創建積分帳戶
//
// 錯誤處理：
// - ErrInvalidCommand / ErrInvalidMemberID: 輸入格式無效
// - ErrAccountAlreadyExists: 會員已有積分帳戶（由資料庫唯一約束保證）
func (uc *CreatePointsAccountUseCase) Execute(cmd CreatePointsAccountCommand) (*CreatePointsAccountResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	memberID, err := identity.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}

	// 2. 創建新的積分帳戶（Domain Layer）
	account, err := points.NewPointsAccount(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to create points account: %w", err)
	}

	// 3. 在事務中保存到 Repository
	var result *CreatePointsAccountResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := uc.accountRepo.Save(ctx, account); err != nil {
			if errors.Is(err, points.ErrAccountAlreadyExists) {
				return fmt.Errorf("member already has an account: %w", err)
			}
			return fmt.Errorf("failed to save account: %w", err)
		}

		result = &CreatePointsAccountResult{
			AccountID:      account.AccountID().String(),
			MemberID:       account.MemberID().String(),
			InitialBalance: 0,
			CreatedAt:      account.CreatedAt(),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. 事務提交成功後發布事件
	uc.publisher.PublishBatch(account.PullEvents())

	return result, nil
}
