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
// Donate Use Case
// ===========================

// DonateCommand 捐贈命令
type DonateCommand struct {
	MemberID    string `validate:"required,uuid4"`
	InstituteID string `validate:"required,uuid4"`
	Amount      int    `validate:"required,gt=0"`
}

// DonateResult 捐贈結果
//
// GoalReached 反映本次捐贈入帳後的快照，屬參考性資訊：
// 並發捐贈下「哪一筆跨越目標」由資料庫的累計順序決定。
type DonateResult struct {
	DonationID     string
	InstituteTotal int
	GoalReached    bool
	CreatedAt      time.Time
}

// DonateUseCase 捐贈 Use Case
//
// 會員扣點與機構累計在同一原子單元內完成：
// 扣點失敗（餘額不足）時機構總額不變，捐贈紀錄不產生。
// 機構累計用單條 increment UPDATE，支撐多人同時捐贈。
type DonateUseCase struct {
	accountRepo   points.PointsAccountRepository
	instituteRepo donation.InstituteRepository
	donationRepo  donation.DonationRepository
	txManager     shared.TransactionManager
	publisher     shared.EventPublisher
}

// NewDonateUseCase 創建 Use Case 實例
func NewDonateUseCase(
	accountRepo points.PointsAccountRepository,
	instituteRepo donation.InstituteRepository,
	donationRepo donation.DonationRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) *DonateUseCase {
	return &DonateUseCase{
		accountRepo:   accountRepo,
		instituteRepo: instituteRepo,
		donationRepo:  donationRepo,
		txManager:     txManager,
		publisher:     publisher,
	}
}

// Execute 執行捐贈
//
// 錯誤處理：
// - ErrInstituteNotFound: 機構不存在
// - ErrInsufficientPoints: 會員可用積分不足
// - ErrInvalidAmount: 數量非正數
func (uc *DonateUseCase) Execute(cmd DonateCommand) (*DonateResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	memberID, err := identity.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}
	instituteID, err := donation.InstituteIDFromString(cmd.InstituteID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse institute ID: %w", err)
	}
	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	record, err := donation.NewDonation(memberID, instituteID, amount)
	if err != nil {
		return nil, err
	}

	// 2. 單一原子單元：扣點 + 機構累計 + 追加紀錄
	var (
		newTotal    points.PointsAmount
		goalReached bool
		goalCrossed bool
	)
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		institute, err := uc.instituteRepo.FindByID(ctx, instituteID)
		if err != nil {
			return fmt.Errorf("failed to find institute: %w", err)
		}

		if err := uc.accountRepo.DeductAvailable(ctx, memberID, amount); err != nil {
			return fmt.Errorf("failed to deduct points: %w", err)
		}

		newTotal, err = uc.instituteRepo.AddPoints(ctx, instituteID, amount)
		if err != nil {
			return fmt.Errorf("failed to add institute points: %w", err)
		}

		// 本次入帳是否跨越募集目標（之前未達、之後已達）
		goalReached = newTotal.GreaterThanOrEqual(institute.PointsGoal())
		goalCrossed = !institute.GoalReached() && goalReached

		if err := uc.donationRepo.Append(ctx, record); err != nil {
			return fmt.Errorf("failed to append donation record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. 提交後發布事件
	uc.publisher.Publish(donation.NewDonationMadeEvent(
		record.DonationID(), memberID, instituteID, amount,
	))
	uc.publisher.Publish(points.NewBalanceChangedEvent(memberID))
	if goalCrossed {
		uc.publisher.Publish(donation.NewGoalReachedEvent(instituteID))
	}

	return &DonateResult{
		DonationID:     record.DonationID().String(),
		InstituteTotal: newTotal.Value(),
		GoalReached:    goalReached,
		CreatedAt:      record.CreatedAt(),
	}, nil
}
