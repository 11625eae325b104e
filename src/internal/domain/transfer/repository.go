package transfer

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// PointTransfer Repository 介面
// ===========================

// PointTransferRepository 積分轉讓倉儲介面
//
// 條件式更新（MarkAccepted / MarkRejected）：
// 同一筆轉讓可能被並發回應（或重複提交），狀態只能離開
// pending 一次，由存儲層以 UPDATE ... WHERE status = 'pending'
// 的影響行數裁決；輸掉競爭的一方收到 ErrAlreadyResponded。
type PointTransferRepository interface {
	// Save 保存新的轉讓提案
	// 錯誤：ErrTransferAlreadyExists（如果 TransferID 已存在）
	Save(ctx shared.TransactionContext, t *PointTransfer) error

	// FindByID 根據轉讓 ID 查找轉讓
	// 返回：找到的轉讓，或 ErrTransferNotFound
	FindByID(ctx shared.TransactionContext, transferID TransferID) (*PointTransfer, error)

	// FindPendingByReceiver 查詢某會員待回應的轉讓（按時間升冪）
	FindPendingByReceiver(ctx shared.TransactionContext, receiverID MemberID) ([]*PointTransfer, error)

	// MarkAccepted 條件式標記為已接受
	// 僅當當前狀態為 pending 時生效；轉讓不存在返回
	// ErrTransferNotFound，已被回應返回 ErrAlreadyResponded。
	// 前置條件：ctx 必須為 non-nil（與雙邊入帳同一事務）
	MarkAccepted(ctx shared.TransactionContext, transferID TransferID, respondedAt time.Time) error

	// MarkRejected 條件式標記為已拒絕
	// 語義同 MarkAccepted
	MarkRejected(ctx shared.TransactionContext, transferID TransferID, respondedAt time.Time) error
}
