package steps

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/steps"
)

// ===========================
// ReportSteps Use Case
// ===========================

// ReportStepsCommand 回報當日步數命令
type ReportStepsCommand struct {
	MemberID string `validate:"required,uuid4"`
	Date     string `validate:"required"`
	Steps    int    `validate:"gte=0"`
}

// ReportStepsResult 回報當日步數結果
type ReportStepsResult struct {
	RecordID   string
	RecordDate string
	StepsCount int
}

// ReportStepsUseCase 回報當日步數 Use Case
//
// 業務規則：
// - 只接受「今天」的日期：沒有回填、沒有預報
// - 覆寫語義：同日多次回報以最新值為準，不累加
// - 當日已驗證後不再接受回報（紀錄封存）
//
// now 以依賴注入傳入，讓測試可固定「今天」。
type ReportStepsUseCase struct {
	recordRepo steps.DailyEarningRecordRepository
	txManager  shared.TransactionManager
	now        func() time.Time
}

// NewReportStepsUseCase 創建 Use Case 實例
func NewReportStepsUseCase(
	recordRepo steps.DailyEarningRecordRepository,
	txManager shared.TransactionManager,
	now func() time.Time,
) *ReportStepsUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReportStepsUseCase{
		recordRepo: recordRepo,
		txManager:  txManager,
		now:        now,
	}
}

// Execute 執行回報當日步數
//
// 錯誤處理：
// - ErrInvalidDate: 日期格式不合法
// - ErrDateNotToday: 日期不是今天（拒絕回填與預報）
// - ErrAlreadyValidated: 當日已驗證，紀錄封存
func (uc *ReportStepsUseCase) Execute(cmd ReportStepsCommand) (*ReportStepsResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	memberID, err := identity.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}

	if _, err := time.Parse(steps.DateLayout, cmd.Date); err != nil {
		return nil, steps.ErrInvalidDate.WithContext("input", cmd.Date)
	}

	// 2. 只接受今天
	today := uc.now().Format(steps.DateLayout)
	if cmd.Date != today {
		return nil, steps.ErrDateNotToday.WithContext(
			"input", cmd.Date,
			"today", today,
		)
	}

	// 3. 在事務中 upsert 當日紀錄
	var result *ReportStepsResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		record, err := uc.recordRepo.FindByMemberAndDate(ctx, memberID, cmd.Date)
		switch {
		case err == nil:
			// 已有紀錄：條件式覆寫步數（已驗證則拒絕）
			if err := uc.recordRepo.UpdateSteps(ctx, memberID, cmd.Date, cmd.Steps); err != nil {
				return fmt.Errorf("failed to update steps: %w", err)
			}
			result = &ReportStepsResult{
				RecordID:   record.RecordID().String(),
				RecordDate: cmd.Date,
				StepsCount: cmd.Steps,
			}
			return nil

		case errors.Is(err, steps.ErrRecordNotFound):
			// 首次回報：建立新紀錄
			record, err := steps.NewDailyEarningRecord(memberID, cmd.Date, cmd.Steps)
			if err != nil {
				return fmt.Errorf("failed to create record: %w", err)
			}
			if err := uc.recordRepo.Save(ctx, record); err != nil {
				return fmt.Errorf("failed to save record: %w", err)
			}
			result = &ReportStepsResult{
				RecordID:   record.RecordID().String(),
				RecordDate: cmd.Date,
				StepsCount: cmd.Steps,
			}
			return nil

		default:
			return fmt.Errorf("failed to find record: %w", err)
		}
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
