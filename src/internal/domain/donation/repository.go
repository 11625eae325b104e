package donation

import (
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// Institute Repository 介面
// ===========================

// InstituteRepository 受贈機構倉儲介面
//
// AddPoints 以單條 UPDATE increment 實作，
// 並發的捐贈各自累計、互不覆蓋。
type InstituteRepository interface {
	// Save 保存新的機構
	// 錯誤：ErrInstituteAlreadyExists（如果 InstituteID 已存在）
	Save(ctx shared.TransactionContext, institute *Institute) error

	// FindByID 根據機構 ID 查找機構
	// 返回：找到的機構，或 ErrInstituteNotFound
	FindByID(ctx shared.TransactionContext, instituteID InstituteID) (*Institute, error)

	// FindAll 查詢所有機構（按名稱升冪）
	FindAll(ctx shared.TransactionContext) ([]*Institute, error)

	// AddPoints 無條件累計機構已募集積分
	// 返回累計後的新總額，供呼叫方做目標達成判斷。
	// 錯誤：ErrInstituteNotFound（機構不存在）
	// 前置條件：ctx 必須為 non-nil（與會員扣點同一事務）
	AddPoints(ctx shared.TransactionContext, instituteID InstituteID, amount points.PointsAmount) (points.PointsAmount, error)
}

// ===========================
// Donation Repository 介面
// ===========================

// DonationRepository 捐贈紀錄倉儲介面（append-only）
type DonationRepository interface {
	// Append 追加一筆捐贈紀錄
	// 紀錄不可修改、不可刪除（審計追溯）
	Append(ctx shared.TransactionContext, d *Donation) error

	// FindByMemberID 查詢某會員的所有捐贈紀錄（按時間升冪）
	FindByMemberID(ctx shared.TransactionContext, memberID MemberID) ([]*Donation, error)

	// FindByInstituteID 查詢某機構收到的所有捐贈紀錄（按時間升冪）
	FindByInstituteID(ctx shared.TransactionContext, instituteID InstituteID) ([]*Donation, error)
}
