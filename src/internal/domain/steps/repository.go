package steps

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// DailyEarningRecord Repository 介面
// ===========================

// DailyEarningRecordRepository 每日步數紀錄倉儲介面
//
// 紀錄是 append-only 審計軌跡：沒有 Delete。
// (member_id, record_date) 的唯一性由存儲層唯一索引保證。
type DailyEarningRecordRepository interface {
	// Save 保存新的每日紀錄
	// 錯誤：ErrRecordAlreadyExists（同一會員同一日期重複）
	Save(ctx shared.TransactionContext, record *DailyEarningRecord) error

	// FindByMemberAndDate 查找某會員某日的紀錄
	// 返回：找到的紀錄，或 ErrRecordNotFound
	FindByMemberAndDate(
		ctx shared.TransactionContext,
		memberID identity.MemberID,
		date string,
	) (*DailyEarningRecord, error)

	// UpdateSteps 更新未驗證紀錄的步數
	// 條件式寫入：WHERE validated_at IS NULL；
	// 紀錄已被驗證時返回 ErrAlreadyValidated。
	// 前置條件：ctx 必須為 non-nil
	UpdateSteps(
		ctx shared.TransactionContext,
		memberID identity.MemberID,
		date string,
		stepsCount int,
	) error

	// MarkValidated 條件式標記驗證完成
	// 以單條條件式 UPDATE 實作：僅當 validated_at IS NULL 時設置
	// validated_at 與 points_earned；條件不成立（當日已驗證，
	// 包括與並發驗證的競爭）時返回 ErrAlreadyValidated。
	// 前置條件：ctx 必須為 non-nil
	MarkValidated(
		ctx shared.TransactionContext,
		memberID identity.MemberID,
		date string,
		pointsEarned points.PointsAmount,
		validatedAt time.Time,
	) error
}
