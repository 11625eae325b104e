package checkout

import (
	"fmt"
	"sort"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/application/common"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/order"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// 錯誤與協作介面
// ===========================

// ErrCodeDuplicateRequest 冪等鍵已被使用（重複提交）
const ErrCodeDuplicateRequest shared.ErrorCode = "REQUEST_DUPLICATE"

// ErrDuplicateRequest 冪等鍵已被使用
var ErrDuplicateRequest = &shared.DomainError{
	Code:    ErrCodeDuplicateRequest,
	Message: "重複的結帳請求（冪等鍵已被使用）",
}

// IdempotencyStore 結帳冪等鍵存儲介面
//
// Reserve 必須是原子的先到先得：同一個 key 只有第一次
// 保留成功，之後一律返回 ErrDuplicateRequest。
// 實作見 infrastructure/idempotency（GORM 唯一約束 / Redis SetNX）。
type IdempotencyStore interface {
	Reserve(key string) error
}

// ===========================
// Checkout Use Case
// ===========================

// BasketLine 購物籃明細（客戶端輸入）
//
// 只攜帶品項與數量：單價一律以目錄當下為準，
// 不信任客戶端提交的任何金額。
type BasketLine struct {
	ItemID   string `validate:"required,uuid4"`
	Quantity int    `validate:"required,gt=0"`
}

// CheckoutCommand 結帳命令
//
// IdempotencyKey 為可選：客戶端防連點時帶上，
// 同一個 key 的第二次提交返回 ErrDuplicateRequest。
type CheckoutCommand struct {
	MemberID       string       `validate:"required,uuid4"`
	Lines          []BasketLine `validate:"required,min=1,dive"`
	IdempotencyKey string
}

// CheckoutOrderResult 單一賣家訂單的結果
type CheckoutOrderResult struct {
	OrderID     string
	SellerID    string
	TotalPoints int
}

// CheckoutResult 結帳結果
type CheckoutResult struct {
	Orders      []CheckoutOrderResult
	TotalPoints int
	CreatedAt   time.Time
}

// CheckoutUseCase 購物籃結帳 Use Case
//
// 整個結帳是單一原子單元：
// 1. 載入購物籃內所有品項（缺一即 NotFound，全籃中止）
// 2. 以目錄單價計算全籃合計，條件式扣減會員可用積分
// 3. 對每個需要扣庫存的品項（reward）做條件式庫存扣減
//    （product 的庫存哨兵值永遠充足、永不扣減）
// 4. 按賣家拆單，每個賣家一張 pending 訂單
// 任何一步失敗即整體回滾：不存在部分扣點或部分扣庫存的結果。
//
// 並發安全：
// - 扣點與扣庫存都是條件式 UPDATE，在提交時刻重新驗證前置條件
// - 品項處理順序固定（按 ItemID 排序），避免交錯事務死鎖
type CheckoutUseCase struct {
	accountRepo points.PointsAccountRepository
	catalogRepo catalog.CatalogItemRepository
	orderRepo   order.OrderRepository
	txManager   shared.TransactionManager
	publisher   shared.EventPublisher
	idempotency IdempotencyStore // 可為 nil：不啟用冪等保護
}

// NewCheckoutUseCase 創建 Use Case 實例
func NewCheckoutUseCase(
	accountRepo points.PointsAccountRepository,
	catalogRepo catalog.CatalogItemRepository,
	orderRepo order.OrderRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	idempotency IdempotencyStore,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		accountRepo: accountRepo,
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		txManager:   txManager,
		publisher:   publisher,
		idempotency: idempotency,
	}
}

// Execute 執行結帳
//
// 錯誤處理：
// - ErrDuplicateRequest: 冪等鍵已被使用
// - ErrItemNotFound: 購物籃內有品項不存在（context 帶 item_id）
// - ErrInsufficientPoints: 全籃合計超過可用積分
// - ErrOutOfStock: 某 reward 品項庫存不足（context 帶 item_id）
// - ErrConcurrentConflict: 存儲層鎖競爭，可重試
func (uc *CheckoutUseCase) Execute(cmd CheckoutCommand) (*CheckoutResult, error) {
	// 1. 驗證輸入格式
	if err := common.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	memberID, err := identity.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}

	// 2. 合併同品項的重複明細，固定處理順序
	quantities, itemIDs, err := normalizeBasket(cmd.Lines)
	if err != nil {
		return nil, err
	}

	// 3. 冪等鍵保留（先到先得；失敗時尚未發生任何帳務變動）
	if uc.idempotency != nil && cmd.IdempotencyKey != "" {
		if err := uc.idempotency.Reserve(cmd.IdempotencyKey); err != nil {
			return nil, err
		}
	}

	// 4. 單一原子單元：載入、扣點、扣庫存、拆單
	var (
		orders []*order.Order
		result *CheckoutResult
	)
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		items, err := uc.catalogRepo.FindByIDs(ctx, itemIDs)
		if err != nil {
			return fmt.Errorf("failed to load basket items: %w", err)
		}

		itemsByID := make(map[string]*catalog.CatalogItem, len(items))
		for _, item := range items {
			itemsByID[item.ItemID().String()] = item
		}

		// 全籃合計（目錄單價 × 數量）
		total, sellerLines, err := buildSellerLines(itemIDs, quantities, itemsByID)
		if err != nil {
			return err
		}

		// 條件式扣點：提交時刻重新驗證 available >= total
		if err := uc.accountRepo.DeductAvailable(ctx, memberID, total); err != nil {
			return fmt.Errorf("failed to debit points: %w", err)
		}

		// 條件式扣庫存：只有 reward 需要；順序固定
		for _, itemID := range itemIDs {
			item := itemsByID[itemID.String()]
			if !item.RequiresStockDecrement() {
				continue
			}
			if err := uc.catalogRepo.DecrementStock(ctx, itemID, quantities[itemID.String()]); err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
		}

		// 按賣家拆單（賣家順序固定）
		orders = orders[:0]
		orderResults := make([]CheckoutOrderResult, 0, len(sellerLines))
		for _, sl := range sellerLines {
			o, err := order.NewOrder(memberID, sl.sellerID, sl.lines)
			if err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}
			if err := uc.orderRepo.Save(ctx, o); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			orders = append(orders, o)
			orderResults = append(orderResults, CheckoutOrderResult{
				OrderID:     o.OrderID().String(),
				SellerID:    o.SellerID().String(),
				TotalPoints: o.TotalPoints().Value(),
			})
		}

		result = &CheckoutResult{
			Orders:      orderResults,
			TotalPoints: total.Value(),
			CreatedAt:   time.Now(),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. 提交後發布事件（訂單創建 + 餘額變更）
	for _, o := range orders {
		uc.publisher.PublishBatch(o.PullEvents())
	}
	uc.publisher.Publish(points.NewBalanceChangedEvent(memberID))

	return result, nil
}

// normalizeBasket 合併重複品項並返回排序後的品項 ID 列表
func normalizeBasket(lines []BasketLine) (map[string]int, []catalog.ItemID, error) {
	quantities := make(map[string]int, len(lines))
	ids := make(map[string]catalog.ItemID, len(lines))

	for _, line := range lines {
		itemID, err := catalog.ItemIDFromString(line.ItemID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse item ID: %w", err)
		}
		quantities[itemID.String()] += line.Quantity
		ids[itemID.String()] = itemID
	}

	keys := make([]string, 0, len(ids))
	for key := range ids {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	itemIDs := make([]catalog.ItemID, 0, len(keys))
	for _, key := range keys {
		itemIDs = append(itemIDs, ids[key])
	}
	return quantities, itemIDs, nil
}

// sellerPartition 單一賣家的訂單明細
type sellerPartition struct {
	sellerID catalog.SellerID
	lines    []order.OrderLine
}

// buildSellerLines 計算全籃合計並按賣家分組（賣家順序固定）
func buildSellerLines(
	itemIDs []catalog.ItemID,
	quantities map[string]int,
	itemsByID map[string]*catalog.CatalogItem,
) (points.PointsAmount, []sellerPartition, error) {
	var zero points.PointsAmount
	total, _ := points.NewPointsAmount(0)

	bySeller := make(map[string]*sellerPartition)
	sellerKeys := make([]string, 0)

	for _, itemID := range itemIDs {
		item, ok := itemsByID[itemID.String()]
		if !ok {
			return zero, nil, catalog.ErrItemNotFound.WithContext(
				"item_id", itemID.String(),
			)
		}

		quantity := quantities[itemID.String()]
		line, err := order.NewOrderLine(itemID, quantity, item.UnitPointCost())
		if err != nil {
			return zero, nil, err
		}

		lineTotal, err := line.LineTotal()
		if err != nil {
			return zero, nil, err
		}
		total, err = total.Add(lineTotal)
		if err != nil {
			return zero, nil, err
		}

		sellerKey := item.SellerID().String()
		partition, exists := bySeller[sellerKey]
		if !exists {
			partition = &sellerPartition{sellerID: item.SellerID()}
			bySeller[sellerKey] = partition
			sellerKeys = append(sellerKeys, sellerKey)
		}
		partition.lines = append(partition.lines, line)
	}

	sort.Strings(sellerKeys)
	partitions := make([]sellerPartition, 0, len(sellerKeys))
	for _, key := range sellerKeys {
		partitions = append(partitions, *bySeller[key])
	}
	return total, partitions, nil
}
