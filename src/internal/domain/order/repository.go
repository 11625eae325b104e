package order

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// Order Repository 介面
// ===========================

// OrderRepository 訂單倉儲介面
//
// 訂單與其明細行視為同一聚合，Save 必須在同一事務內
// 同時落地訂單頭與所有明細。
type OrderRepository interface {
	// Save 保存新訂單（訂單頭 + 所有明細）
	// 錯誤：ErrOrderAlreadyExists（如果 OrderID 已存在）
	Save(ctx shared.TransactionContext, o *Order) error

	// FindByID 根據訂單 ID 查找訂單（含明細）
	// 返回：找到的訂單，或 ErrOrderNotFound
	FindByID(ctx shared.TransactionContext, orderID OrderID) (*Order, error)

	// FindByMemberID 查詢某會員的所有訂單（按創建時間降冪）
	FindByMemberID(ctx shared.TransactionContext, memberID MemberID) ([]*Order, error)

	// UpdateStatus 條件式更新訂單狀態
	// 以單條條件式 UPDATE 實作：僅當當前狀態為 from 時轉移到 to；
	// 條件不成立時查明原因：訂單不存在返回 ErrOrderNotFound，
	// 狀態已被其他請求改走返回 shared.ErrConcurrentConflict。
	// 前置條件：ctx 必須為 non-nil，from → to 為狀態機允許的邊
	UpdateStatus(ctx shared.TransactionContext, orderID OrderID, from, to OrderStatus) error
}
