package points

import (
	"strings"
	"time"
)

// ===========================
// PointsGrant 發點紀錄
// ===========================

// PointsGrant 管理員發點紀錄（append-only 審計日誌）
//
// 管理員發點是系統中唯一沒有對稱扣減的入帳路徑（純發行），
// 因此每筆發點必須完整記錄 操作者、對象、數量、原因、時間，
// 紀錄只追加、不修改、不刪除。
type PointsGrant struct {
	grantID   GrantID
	actorID   MemberID // 執行發點的管理員
	memberID  MemberID // 收到積分的會員
	amount    PointsAmount
	reason    string
	createdAt time.Time
}

// NewPointsGrant 創建發點紀錄
//
// 業務規則：
// - amount 必須 > 0（引擎不設上限，上限屬於外部策略層）
// - reason 不能為空白（審計要求）
// - actor 與 target 必須是有效 ID
func NewPointsGrant(
	actorID MemberID,
	memberID MemberID,
	amount PointsAmount,
	reason string,
) (*PointsGrant, error) {
	if actorID.IsEmpty() || memberID.IsEmpty() {
		return nil, ErrInvalidGrantID.WithContext(
			"reason", "actor and target member IDs are required",
		)
	}

	if amount.IsZero() {
		return nil, ErrInvalidAmount.WithContext(
			"reason", "grant amount must be positive",
		)
	}

	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyGrantReason
	}

	return &PointsGrant{
		grantID:   NewGrantID(),
		actorID:   actorID,
		memberID:  memberID,
		amount:    amount,
		reason:    reason,
		createdAt: time.Now(),
	}, nil
}

// GrantID 獲取發點紀錄 ID
func (g *PointsGrant) GrantID() GrantID {
	return g.grantID
}

// ActorID 獲取操作者 ID
func (g *PointsGrant) ActorID() MemberID {
	return g.actorID
}

// MemberID 獲取收點會員 ID
func (g *PointsGrant) MemberID() MemberID {
	return g.memberID
}

// Amount 獲取發點數量
func (g *PointsGrant) Amount() PointsAmount {
	return g.amount
}

// Reason 獲取發點原因
func (g *PointsGrant) Reason() string {
	return g.reason
}

// CreatedAt 獲取發點時間
func (g *PointsGrant) CreatedAt() time.Time {
	return g.createdAt
}

// ReconstructPointsGrant 從持久化存儲重建發點紀錄
func ReconstructPointsGrant(
	grantID GrantID,
	actorID MemberID,
	memberID MemberID,
	amount int,
	reason string,
	createdAt time.Time,
) (*PointsGrant, error) {
	if grantID.IsEmpty() {
		return nil, ErrInvalidGrantID
	}

	grantAmount, err := NewPointsAmount(amount)
	if err != nil {
		return nil, err
	}

	return &PointsGrant{
		grantID:   grantID,
		actorID:   actorID,
		memberID:  memberID,
		amount:    grantAmount,
		reason:    reason,
		createdAt: createdAt,
	}, nil
}
