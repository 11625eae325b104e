package checkout

import (
	"errors"
	"testing"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/order"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedPendingOrder 在 mock 倉儲中建立一張 pending 訂單
func seedPendingOrder(t *testing.T, repo *MockOrderRepository) *order.Order {
	t.Helper()
	cost, err := points.NewPositivePointsAmount(30)
	require.NoError(t, err)
	line, err := order.NewOrderLine(catalog.NewItemID(), 2, cost)
	require.NoError(t, err)
	o, err := order.NewOrder(identity.NewMemberID(), catalog.NewSellerID(), []order.OrderLine{line})
	require.NoError(t, err)
	o.PullEvents()
	repo.Orders[o.OrderID().String()] = o
	return o
}

// ===========================
// UpdateOrderStatus Use Case 測試
// ===========================

// Test 1: pending → confirmed
func TestUpdateOrderStatusUseCase_Confirm_Success(t *testing.T) {
	// Arrange
	repo := NewMockOrderRepository()
	publisher := NewMockEventPublisher()
	useCase := NewUpdateOrderStatusUseCase(repo, NewMockTransactionManager(), publisher)
	o := seedPendingOrder(t, repo)

	// Act
	result, err := useCase.Execute(UpdateOrderStatusCommand{
		OrderID: o.OrderID().String(),
		Target:  "confirmed",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pending", result.From)
	assert.Equal(t, "confirmed", result.To)
	assert.Equal(t, order.OrderStatusConfirmed, o.Status())
	assert.Contains(t, publisher.EventTypes(), "order.status_changed")
}

// Test 2: pending → completed 不合法
func TestUpdateOrderStatusUseCase_CompleteFromPending_ReturnsError(t *testing.T) {
	repo := NewMockOrderRepository()
	useCase := NewUpdateOrderStatusUseCase(repo, NewMockTransactionManager(), NewMockEventPublisher())
	o := seedPendingOrder(t, repo)

	result, err := useCase.Execute(UpdateOrderStatusCommand{
		OrderID: o.OrderID().String(),
		Target:  "completed",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.OrderStatusPending, o.Status())
}

// Test 3: 訂單不存在
func TestUpdateOrderStatusUseCase_OrderNotFound_ReturnsError(t *testing.T) {
	useCase := NewUpdateOrderStatusUseCase(
		NewMockOrderRepository(), NewMockTransactionManager(), NewMockEventPublisher())

	result, err := useCase.Execute(UpdateOrderStatusCommand{
		OrderID: order.NewOrderID().String(),
		Target:  "cancelled",
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, order.ErrOrderNotFound), "error should wrap ErrOrderNotFound")
}

// Test 4: 並發競爭輸家收到 ConcurrentConflict
func TestUpdateOrderStatusUseCase_ConcurrentStatusChange_ReturnsConflict(t *testing.T) {
	// Arrange: 條件式更新在提交時刻發現狀態已被改走
	repo := NewMockOrderRepository()
	repo.UpdateStatusErr = shared.ErrConcurrentConflict
	useCase := NewUpdateOrderStatusUseCase(repo, NewMockTransactionManager(), NewMockEventPublisher())
	o := seedPendingOrder(t, repo)

	// Act
	result, err := useCase.Execute(UpdateOrderStatusCommand{
		OrderID: o.OrderID().String(),
		Target:  "confirmed",
	})

	// Assert
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, shared.ErrConcurrentConflict), "error should wrap ErrConcurrentConflict")
}

// Test 5: 不在枚舉內的目標狀態被輸入驗證擋下
func TestUpdateOrderStatusUseCase_UnknownTarget_ReturnsError(t *testing.T) {
	useCase := NewUpdateOrderStatusUseCase(
		NewMockOrderRepository(), NewMockTransactionManager(), NewMockEventPublisher())

	result, err := useCase.Execute(UpdateOrderStatusCommand{
		OrderID: order.NewOrderID().String(),
		Target:  "shipped",
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, common.ErrInvalidCommand), "error should wrap ErrInvalidCommand")
}

// Test 6: 取消不回補積分與庫存（狀態為唯一變更）
func TestUpdateOrderStatusUseCase_Cancel_DoesNotTouchBalancesOrStock(t *testing.T) {
	// Arrange: 先經過結帳流程建立真實扣點扣庫存的狀態
	f := newCheckoutFixture(500)
	seller := catalog.NewSellerID()
	item := f.catalogRepo.SeedItem(seller, catalog.ItemKindReward, 50, 10)

	checkoutResult, err := f.useCase.Execute(CheckoutCommand{
		MemberID: f.memberID.String(),
		Lines:    []BasketLine{{ItemID: item.String(), Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, checkoutResult.Orders, 1)

	useCase := NewUpdateOrderStatusUseCase(f.orderRepo, f.txManager, f.publisher)

	// Act
	_, err = useCase.Execute(UpdateOrderStatusCommand{
		OrderID: checkoutResult.Orders[0].OrderID,
		Target:  "cancelled",
	})

	// Assert: 積分與庫存維持結帳後的狀態
	require.NoError(t, err)
	assert.Equal(t, 400, f.accountRepo.Available(f.memberID))
	assert.Equal(t, 8, f.catalogRepo.Stock(item))
}
