package points

import (
	"errors"
	"testing"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// CreatePointsAccount Use Case 測試
// ===========================

// Test 1: 成功創建積分帳戶
func TestCreatePointsAccountUseCase_Success(t *testing.T) {
	// Arrange
	mockRepo := NewMockPointsAccountRepository()
	mockTxManager := NewMockTransactionManager()
	mockPublisher := NewMockEventPublisher()
	useCase := NewCreatePointsAccountUseCase(mockRepo, mockTxManager, mockPublisher)

	memberID := identity.NewMemberID()
	cmd := CreatePointsAccountCommand{
		MemberID: memberID.String(),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotEmpty(t, result.AccountID)
	assert.Equal(t, memberID.String(), result.MemberID)
	assert.Equal(t, 0, result.InitialBalance)
	assert.False(t, result.CreatedAt.IsZero())

	assert.Equal(t, 1, mockRepo.SaveCallCount)
	assert.Equal(t, 1, mockTxManager.InTransactionCallCount)

	// 提交後發布 AccountCreated 事件
	assert.Contains(t, mockPublisher.EventTypes(), "points.account_created")
}

// Test 2: MemberID 已存在，返回錯誤
func TestCreatePointsAccountUseCase_MemberAlreadyHasAccount_ReturnsError(t *testing.T) {
	// Arrange
	mockRepo := NewMockPointsAccountRepository()
	mockTxManager := NewMockTransactionManager()
	mockPublisher := NewMockEventPublisher()
	useCase := NewCreatePointsAccountUseCase(mockRepo, mockTxManager, mockPublisher)

	memberID := identity.NewMemberID()
	mockRepo.SeedAccount(memberID, 0, 0)

	cmd := CreatePointsAccountCommand{
		MemberID: memberID.String(),
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, points.ErrAccountAlreadyExists), "error should wrap ErrAccountAlreadyExists")

	assert.Equal(t, 1, mockRepo.SaveCallCount)
	// 事務失敗，不發布任何事件
	assert.Empty(t, mockPublisher.Published)
}

// Test 3: 無效的 MemberID 格式，返回錯誤
func TestCreatePointsAccountUseCase_InvalidMemberID_ReturnsError(t *testing.T) {
	// Arrange
	mockRepo := NewMockPointsAccountRepository()
	mockTxManager := NewMockTransactionManager()
	useCase := NewCreatePointsAccountUseCase(mockRepo, mockTxManager, NewMockEventPublisher())

	cmd := CreatePointsAccountCommand{
		MemberID: "invalid-id",
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, common.ErrInvalidCommand), "error should wrap ErrInvalidCommand")

	assert.Equal(t, 0, mockRepo.SaveCallCount)
	assert.Equal(t, 0, mockTxManager.InTransactionCallCount)
}

// Test 4: 空 MemberID，返回錯誤
func TestCreatePointsAccountUseCase_EmptyMemberID_ReturnsError(t *testing.T) {
	// Arrange
	mockTxManager := NewMockTransactionManager()
	useCase := NewCreatePointsAccountUseCase(
		NewMockPointsAccountRepository(), mockTxManager, NewMockEventPublisher())

	cmd := CreatePointsAccountCommand{
		MemberID: "",
	}

	// Act
	result, err := useCase.Execute(cmd)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, common.ErrInvalidCommand), "error should wrap ErrInvalidCommand")
	assert.Equal(t, 0, mockTxManager.InTransactionCallCount)
}
