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
// RespondTransfer Use Case
// ===========================

// RespondTransferCommand 回應轉讓命令
type RespondTransferCommand struct {
	TransferID string `validate:"required,uuid4"`
	ActorID    string `validate:"required,uuid4"`
	Accept     bool
}

// RespondTransferResult 回應轉讓結果
type RespondTransferResult struct {
	TransferID  string
	Status      string
	RespondedAt time.Time
}

// RespondTransferUseCase 回應轉讓 Use Case（兩階段的第二階段）
//
// 拒絕：終態標記，無任何餘額變動（提案階段從未扣點）。
//
// 接受：單一原子單元內重新驗證並完成雙邊移轉：
// 1. 條件式扣減發送方可用積分（提交時刻重新驗證，
//    提案時的參考性檢查早已過期）
// 2. 接收方入帳
// 3. 條件式標記 accepted（WHERE status = 'pending'）
// 發送方餘額不足時整個單元回滾，轉讓停留在 pending，
// 之後餘額恢復時仍可再次嘗試接受。
type RespondTransferUseCase struct {
	transferRepo transfer.PointTransferRepository
	accountRepo  points.PointsAccountRepository
	txManager    shared.TransactionManager
	publisher    shared.EventPublisher
	now          func() time.Time
}

// NewRespondTransferUseCase 創建 Use Case 實例
func NewRespondTransferUseCase(
	transferRepo transfer.PointTransferRepository,
	accountRepo points.PointsAccountRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	now func() time.Time,
) *RespondTransferUseCase {
	if now == nil {
		now = time.Now
	}
	return &RespondTransferUseCase{
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
		txManager:    txManager,
		publisher:    publisher,
		now:          now,
	}
}

// Execute 執行回應轉讓
//
// 錯誤處理：
// - ErrTransferNotFound: 轉讓不存在
// - ErrNotAuthorized: 回應者不是接收方
// - ErrAlreadyResponded: 轉讓已被回應（含並發競爭的輸家）
// - ErrInsufficientPoints: 接受時發送方餘額不足（轉讓停留在 pending）
func (uc *RespondTransferUseCase) Execute(cmd RespondTransferCommand) (*RespondTransferResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	transferID, err := transfer.TransferIDFromString(cmd.TransferID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transfer ID: %w", err)
	}
	actorID, err := identity.MemberIDFromString(cmd.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse actor ID: %w", err)
	}

	respondedAt := uc.now()

	// 2. 單一原子單元：回應 + （接受時）雙邊移轉
	var responded *transfer.PointTransfer
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		t, err := uc.transferRepo.FindByID(ctx, transferID)
		if err != nil {
			return fmt.Errorf("failed to find transfer: %w", err)
		}

		if !cmd.Accept {
			if err := t.Reject(actorID, respondedAt); err != nil {
				return err
			}
			if err := uc.transferRepo.MarkRejected(ctx, transferID, respondedAt); err != nil {
				return fmt.Errorf("failed to mark rejected: %w", err)
			}
			responded = t
			return nil
		}

		if err := t.Accept(actorID, respondedAt); err != nil {
			return err
		}

		// 接受時刻的重新驗證：失敗即回滾，轉讓停留在 pending
		if err := uc.accountRepo.DeductAvailable(ctx, t.SenderID(), t.Amount()); err != nil {
			return fmt.Errorf("failed to debit sender: %w", err)
		}
		if err := uc.accountRepo.CreditEarned(ctx, t.ReceiverID(), t.Amount()); err != nil {
			return fmt.Errorf("failed to credit receiver: %w", err)
		}
		if err := uc.transferRepo.MarkAccepted(ctx, transferID, respondedAt); err != nil {
			return fmt.Errorf("failed to mark accepted: %w", err)
		}
		responded = t
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. 提交後發布事件（接受時雙方餘額都變動）
	uc.publisher.PublishBatch(responded.PullEvents())
	if responded.Status() == transfer.TransferStatusAccepted {
		uc.publisher.Publish(points.NewBalanceChangedEvent(responded.SenderID()))
		uc.publisher.Publish(points.NewBalanceChangedEvent(responded.ReceiverID()))
	}

	return &RespondTransferResult{
		TransferID:  transferID.String(),
		Status:      string(responded.Status()),
		RespondedAt: respondedAt,
	}, nil
}
