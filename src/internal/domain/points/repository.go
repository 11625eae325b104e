package points

import "github.com/jackyeh168/walk_rewards/src/internal/domain/shared"

// ===========================
// PointsAccount Repository 介面
// ===========================

// PointsAccountRepository 積分帳戶倉儲介面
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 聚合根持久化：每個聚合根一個 Repository
// 3. 事務支持：使用 TransactionContext 封裝事務，避免基礎設施洩漏
//
// 條件式寫入（CreditEarned / DeductAvailable）：
// 跨請求的餘額競爭不能靠「讀出聚合→判斷→寫回」擋住，
// 必須由存儲層以單條條件式 UPDATE（decrement only if available >= delta）
// 在提交時刻重新驗證前置條件。所有扣點路徑一律走 DeductAvailable。
type PointsAccountRepository interface {
	// Save 保存新的積分帳戶
	// 錯誤：ErrAccountAlreadyExists（如果 MemberID 已存在）
	Save(ctx shared.TransactionContext, account *PointsAccount) error

	// FindByID 根據帳戶 ID 查找積分帳戶
	// 返回：找到的帳戶，或 ErrAccountNotFound
	FindByID(ctx shared.TransactionContext, accountID AccountID) (*PointsAccount, error)

	// FindByMemberID 根據會員 ID 查找積分帳戶
	// 業務規則：一個會員對應一個積分帳戶（1:1 關係）
	FindByMemberID(ctx shared.TransactionContext, memberID MemberID) (*PointsAccount, error)

	// CreditEarned 無條件增加累積獲得積分
	// 前置條件：ctx 必須為 non-nil（寫操作需要事務保證）
	// 錯誤：ErrAccountNotFound（帳戶不存在）
	CreditEarned(ctx shared.TransactionContext, memberID MemberID, amount PointsAmount) error

	// DeductAvailable 條件式扣減可用積分
	// 以單條條件式 UPDATE 實作：僅當 earned - used >= amount 時
	// used += amount；條件不成立時返回 ErrInsufficientPoints，
	// 由調用者讓整個事務回滾。
	// 前置條件：ctx 必須為 non-nil
	DeductAvailable(ctx shared.TransactionContext, memberID MemberID, amount PointsAmount) error
}

// ===========================
// PointsGrant Repository 介面
// ===========================

// PointsGrantRepository 發點紀錄倉儲介面（append-only）
type PointsGrantRepository interface {
	// Append 追加一筆發點紀錄
	// 紀錄不可修改、不可刪除（審計追溯）
	Append(ctx shared.TransactionContext, grant *PointsGrant) error

	// FindByMemberID 查詢某會員收到的所有發點紀錄（按時間升冪）
	FindByMemberID(ctx shared.TransactionContext, memberID MemberID) ([]*PointsGrant, error)
}
