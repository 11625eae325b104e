package transfer

import (
	"fmt"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/transfer"
)

// ===========================
// ProposeTransfer Use Case
// ===========================

// ProposeTransferCommand 提出轉讓命令
type ProposeTransferCommand struct {
	SenderID   string `validate:"required,uuid4"`
	ReceiverID string `validate:"required,uuid4"`
	Amount     int    `validate:"required,gt=0"`
}

// ProposeTransferResult 提出轉讓結果
type ProposeTransferResult struct {
	TransferID string
	Status     string
	CreatedAt  time.Time
}

// ProposeTransferUseCase 提出轉讓 Use Case（兩階段的第一階段）
//
// 提案階段不動任何餘額：
// - 發送方的餘額檢查只是參考性的（擋下明顯無意義的提案），
//   pending 期間發送方仍可自由花費
// - 真正的扣點在接收方接受時於同一事務內重新驗證
type ProposeTransferUseCase struct {
	transferRepo transfer.PointTransferRepository
	accountRepo  points.PointsAccountRepository
	txManager    shared.TransactionManager
	publisher    shared.EventPublisher
}

// NewProposeTransferUseCase 創建 Use Case 實例
func NewProposeTransferUseCase(
	transferRepo transfer.PointTransferRepository,
	accountRepo points.PointsAccountRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) *ProposeTransferUseCase {
	return &ProposeTransferUseCase{
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// Execute 執行提出轉讓
//
// 錯誤處理：
// - ErrSelfTransfer: 發送方與接收方相同
// - ErrInvalidAmount: 數量非正數
// - ErrAccountNotFound: 發送方或接收方沒有積分帳戶
// - ErrInsufficientPoints: 發送方目前餘額不足（參考性檢查）
func (uc *ProposeTransferUseCase) Execute(cmd ProposeTransferCommand) (*ProposeTransferResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	senderID, err := identity.MemberIDFromString(cmd.SenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sender ID: %w", err)
	}
	receiverID, err := identity.MemberIDFromString(cmd.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse receiver ID: %w", err)
	}

	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	// 2. 建立提案（Domain Layer 驗證 sender != receiver 等規則）
	proposal, err := transfer.NewPointTransfer(senderID, receiverID, amount)
	if err != nil {
		return nil, err
	}

	// 3. 參考性餘額檢查（不凍結；雙方帳戶必須存在）
	senderAccount, err := uc.accountRepo.FindByMemberID(nil, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sender account: %w", err)
	}
	if _, err := uc.accountRepo.FindByMemberID(nil, receiverID); err != nil {
		return nil, fmt.Errorf("failed to find receiver account: %w", err)
	}
	if amount.GreaterThan(senderAccount.GetAvailablePoints()) {
		return nil, points.ErrInsufficientPoints.WithContext(
			"requested", amount.Value(),
			"available", senderAccount.GetAvailablePoints().Value(),
		)
	}

	// 4. 保存提案
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := uc.transferRepo.Save(ctx, proposal); err != nil {
			return fmt.Errorf("failed to save transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. 提交後通知接收方有待回應的轉讓
	uc.publisher.PublishBatch(proposal.PullEvents())

	return &ProposeTransferResult{
		TransferID: proposal.TransferID().String(),
		Status:     string(proposal.Status()),
		CreatedAt:  proposal.CreatedAt(),
	}, nil
}
