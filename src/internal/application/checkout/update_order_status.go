package checkout

import (
	"fmt"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/order"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// UpdateOrderStatus Use Case
// ===========================

// UpdateOrderStatusCommand 訂單狀態轉移命令
type UpdateOrderStatusCommand struct {
	OrderID string `validate:"required,uuid4"`
	Target  string `validate:"required,oneof=confirmed completed cancelled"`
}

// UpdateOrderStatusResult 訂單狀態轉移結果
type UpdateOrderStatusResult struct {
	OrderID string
	From    string
	To      string
}

// UpdateOrderStatusUseCase 訂單狀態轉移 Use Case
//
// 取消不回補積分與庫存：結帳當下帳務已結清，
// 狀態之後只描述履約進度。
//
// 並發安全：聚合先驗證轉移合法，存儲層再以
// UPDATE ... WHERE status = from 裁決競爭；
// 狀態已被其他請求改走時返回 ErrConcurrentConflict。
type UpdateOrderStatusUseCase struct {
	orderRepo order.OrderRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
}

// NewUpdateOrderStatusUseCase 創建 Use Case 實例
func NewUpdateOrderStatusUseCase(
	orderRepo order.OrderRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// Execute 執行訂單狀態轉移
//
// 錯誤處理：
// - ErrOrderNotFound: 訂單不存在
// - ErrInvalidTransition: 狀態機不允許此轉移
// - ErrConcurrentConflict: 與並發狀態變更競爭失敗
func (uc *UpdateOrderStatusUseCase) Execute(cmd UpdateOrderStatusCommand) (*UpdateOrderStatusResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	orderID, err := order.OrderIDFromString(cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order ID: %w", err)
	}
	target := order.OrderStatus(cmd.Target)

	// 2. 在事務中讀取、驗證轉移、條件式更新
	var (
		o      *order.Order
		result *UpdateOrderStatusResult
	)
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		loaded, err := uc.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to find order: %w", err)
		}

		from := loaded.Status()
		if err := loaded.TransitionTo(target); err != nil {
			return err
		}

		// 條件式更新：WHERE status = from 裁決並發競爭
		if err := uc.orderRepo.UpdateStatus(ctx, orderID, from, target); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		o = loaded
		result = &UpdateOrderStatusResult{
			OrderID: orderID.String(),
			From:    string(from),
			To:      string(target),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. 提交後發布狀態變更事件
	uc.publisher.PublishBatch(o.PullEvents())

	return result, nil
}
