package steps

import (
	"errors"
	"testing"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validateFixture struct {
	recordRepo  *MockDailyEarningRecordRepository
	accountRepo *MockPointsAccountRepository
	txManager   *MockTransactionManager
	publisher   *MockEventPublisher
	useCase     *ValidateStepsUseCase
	memberID    identity.MemberID
}

func newValidateFixture() *validateFixture {
	f := &validateFixture{
		recordRepo:  NewMockDailyEarningRecordRepository(),
		accountRepo: NewMockPointsAccountRepository(),
		txManager:   NewMockTransactionManager(),
		publisher:   NewMockEventPublisher(),
		memberID:    identity.NewMemberID(),
	}
	f.accountRepo.SeedAccount(f.memberID, 0, 0)
	f.useCase = NewValidateStepsUseCase(
		f.recordRepo, f.accountRepo, f.txManager, f.publisher,
		points.DefaultStepsPerPoint(), fixedNow,
	)
	return f
}

// ===========================
// ValidateSteps Use Case 測試
// ===========================

// Test 1: 1250 步驗證入帳 12 點（向下取整）
func TestValidateStepsUseCase_1250Steps_Earns12Points(t *testing.T) {
	// Arrange
	f := newValidateFixture()
	f.recordRepo.SeedRecord(f.memberID, fixedToday, 1250, nil)

	// Act
	result, err := f.useCase.Execute(ValidateStepsCommand{MemberID: f.memberID.String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fixedToday, result.RecordDate)
	assert.Equal(t, 1250, result.StepsCount)
	assert.Equal(t, 12, result.PointsEarned)

	assert.Equal(t, 1, f.recordRepo.MarkValidatedCallCount)
	assert.Equal(t, 1, f.accountRepo.CreditCallCount)
	assert.Equal(t, 12, f.accountRepo.Earned(f.memberID))

	// 提交後發布餘額變更通知
	require.Len(t, f.publisher.Published, 1)
	assert.Equal(t, "points.balance_changed", f.publisher.Published[0].EventType())
}

// Test 2: 同日第二次驗證被拒絕，不重複入帳
func TestValidateStepsUseCase_SecondValidation_ReturnsAlreadyValidated(t *testing.T) {
	// Arrange
	f := newValidateFixture()
	f.recordRepo.SeedRecord(f.memberID, fixedToday, 1250, nil)
	cmd := ValidateStepsCommand{MemberID: f.memberID.String()}
	_, err := f.useCase.Execute(cmd)
	require.NoError(t, err)

	// Act
	result, err := f.useCase.Execute(cmd)

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, steps.ErrAlreadyValidated)
	assert.Equal(t, 12, f.accountRepo.Earned(f.memberID), "balance unchanged after rejected re-validation")
	assert.Len(t, f.publisher.Published, 1, "no notification for the rejected attempt")
}

// Test 3: 零步驗證：零點入帳，不是錯誤
func TestValidateStepsUseCase_ZeroSteps_EarnsZeroPoints(t *testing.T) {
	// Arrange
	f := newValidateFixture()
	f.recordRepo.SeedRecord(f.memberID, fixedToday, 0, nil)

	// Act
	result, err := f.useCase.Execute(ValidateStepsCommand{MemberID: f.memberID.String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.PointsEarned)
	assert.Equal(t, 0, f.accountRepo.Earned(f.memberID))

	// 當日驗證機會已耗用
	_, err = f.useCase.Execute(ValidateStepsCommand{MemberID: f.memberID.String()})
	assert.ErrorIs(t, err, steps.ErrAlreadyValidated)
}

// Test 4: 今天沒有回報任何步數
func TestValidateStepsUseCase_NoRecordToday_ReturnsNotFound(t *testing.T) {
	f := newValidateFixture()

	result, err := f.useCase.Execute(ValidateStepsCommand{MemberID: f.memberID.String()})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, steps.ErrRecordNotFound), "error should wrap ErrRecordNotFound")
}

// Test 5: 會員沒有積分帳戶，入帳失敗中止
func TestValidateStepsUseCase_AccountMissing_ReturnsError(t *testing.T) {
	// Arrange
	f := newValidateFixture()
	stranger := identity.NewMemberID() // 有紀錄、沒帳戶
	f.recordRepo.SeedRecord(stranger, fixedToday, 500, nil)

	// Act
	_, err := f.useCase.Execute(ValidateStepsCommand{MemberID: stranger.String()})

	// Assert
	assert.True(t, errors.Is(err, points.ErrAccountNotFound), "error should wrap ErrAccountNotFound")
	assert.Empty(t, f.publisher.Published)
}
