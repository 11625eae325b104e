package steps

import (
	"fmt"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/steps"
)

// ===========================
// ValidateSteps Use Case
// ===========================

// ValidateStepsCommand 驗證當日步數命令
type ValidateStepsCommand struct {
	MemberID string `validate:"required,uuid4"`
}

// ValidateStepsResult 驗證當日步數結果
type ValidateStepsResult struct {
	RecordID     string
	RecordDate   string
	StepsCount   int
	PointsEarned int
}

// ValidateStepsUseCase 驗證當日步數 Use Case
//
// 這是唯一的「賺取」路徑。單一原子單元內：
// 1. 讀取當日紀錄，計算 pointsEarned = floor(steps / rate)
// 2. 條件式標記驗證完成（WHERE validated_at IS NULL）——
//    「每日至多一次」的跨請求保證由這一步在提交時刻守住
// 3. 帳戶入帳（零點也入帳：零步驗證是合法結果，不是錯誤）
// 提交成功後發布餘額變更通知。
type ValidateStepsUseCase struct {
	recordRepo  steps.DailyEarningRecordRepository
	accountRepo points.PointsAccountRepository
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	conversion  *points.StepConversionService
	rate        points.StepsPerPoint
	now         func() time.Time
}

// NewValidateStepsUseCase 創建 Use Case 實例
func NewValidateStepsUseCase(
	recordRepo steps.DailyEarningRecordRepository,
	accountRepo points.PointsAccountRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	rate points.StepsPerPoint,
	now func() time.Time,
) *ValidateStepsUseCase {
	if now == nil {
		now = time.Now
	}
	return &ValidateStepsUseCase{
		recordRepo:  recordRepo,
		accountRepo: accountRepo,
		txManager:   txManager,
		publisher:   publisher,
		conversion:  points.NewStepConversionService(),
		rate:        rate,
		now:         now,
	}
}

// Execute 執行驗證當日步數
//
// 錯誤處理：
// - ErrRecordNotFound: 今天沒有任何步數回報
// - ErrAlreadyValidated: 今天已經驗證過（含並發競爭的輸家）
// - ErrAccountNotFound: 會員沒有積分帳戶
func (uc *ValidateStepsUseCase) Execute(cmd ValidateStepsCommand) (*ValidateStepsResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	memberID, err := identity.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}

	today := uc.now().Format(steps.DateLayout)
	validatedAt := uc.now()

	// 2. 單一原子單元：計算、標記、入帳
	var result *ValidateStepsResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		record, err := uc.recordRepo.FindByMemberAndDate(ctx, memberID, today)
		if err != nil {
			return fmt.Errorf("failed to find record: %w", err)
		}

		earned, err := record.Validate(validatedAt, uc.conversion, uc.rate)
		if err != nil {
			return err
		}

		// 條件式寫入：與並發驗證競爭時，輸家在這裡收到
		// ErrAlreadyValidated，整個單元回滾
		if err := uc.recordRepo.MarkValidated(ctx, memberID, today, earned, validatedAt); err != nil {
			return fmt.Errorf("failed to mark validated: %w", err)
		}

		if err := uc.accountRepo.CreditEarned(ctx, memberID, earned); err != nil {
			return fmt.Errorf("failed to credit points: %w", err)
		}

		result = &ValidateStepsResult{
			RecordID:     record.RecordID().String(),
			RecordDate:   today,
			StepsCount:   record.StepsCount(),
			PointsEarned: earned.Value(),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. 提交後發布餘額變更通知
	uc.publisher.Publish(points.NewBalanceChangedEvent(memberID))

	return result, nil
}
