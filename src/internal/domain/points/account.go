package points

import (
	"fmt"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// PointsSource 積分來源
// ===========================

// PointsSource 積分來源枚舉
//
// 引擎只有四條入帳路徑：
// - 每日步數驗證（唯一的「賺取」路徑）
// - 管理員發點（唯一沒有對稱扣減的路徑，必須完整審計）
// - 轉讓入帳（對方帳戶同時扣減）
// 其餘任何來源都是非法的。
type PointsSource string

const (
	PointsSourceStepValidation PointsSource = "step_validation"
	PointsSourceAdminGrant     PointsSource = "admin_grant"
	PointsSourceTransferIn     PointsSource = "transfer_in"
)

// IsValid 判斷是否為合法的積分來源
func (s PointsSource) IsValid() bool {
	switch s {
	case PointsSourceStepValidation, PointsSourceAdminGrant, PointsSourceTransferIn:
		return true
	}
	return false
}

// ===========================
// PointsAccount 聚合根
// ===========================

// PointsAccount 積分帳戶聚合根
//
// 業務不變條件：
// - EarnedPoints >= 0（累積獲得的積分總數，單調非遞減）
// - UsedPoints >= 0（累積使用的積分總數）
// - UsedPoints <= EarnedPoints（使用積分不能超過獲得積分）
// - AvailablePoints = EarnedPoints - UsedPoints（可用積分為派生值，永不落地）
//
// 並發注意：
// 聚合上的 EarnPoints / DeductPoints 只在單一事務內的
// read-modify-write 流程中使用；跨請求的餘額競爭由
// Repository 的條件式寫入（DeductAvailable）擋下。
type PointsAccount struct {
	// 聚合根識別符
	accountID AccountID
	memberID  MemberID

	// 積分數據（使用值對象）
	earnedPoints PointsAmount // 累積獲得積分
	usedPoints   PointsAmount // 累積使用積分

	// 審計字段
	createdAt time.Time
	updatedAt time.Time

	// 待發布的領域事件
	events []shared.DomainEvent
}

// NewPointsAccount 創建新的積分帳戶
//
// 業務規則：
// - 新帳戶初始積分為 0
// - 自動生成唯一的 AccountID
// - 發布 AccountCreated 事件
func NewPointsAccount(memberID MemberID) (*PointsAccount, error) {
	if memberID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "memberID cannot be empty",
		)
	}

	now := time.Now()

	account := &PointsAccount{
		accountID:    NewAccountID(),
		memberID:     memberID,
		earnedPoints: newPointsAmountUnchecked(0),
		usedPoints:   newPointsAmountUnchecked(0),
		createdAt:    now,
		updatedAt:    now,
		events:       make([]shared.DomainEvent, 0),
	}

	account.addEvent(NewPointsAccountCreatedEvent(account.accountID, memberID))

	return account, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================
//
// 供 Repository 持久化與 DTO 轉換使用；
// 業務判斷應使用聚合的命令方法，不應基於 getter 在外部判斷。

// AccountID 獲取帳戶 ID
func (a *PointsAccount) AccountID() AccountID {
	return a.accountID
}

// MemberID 獲取會員 ID
func (a *PointsAccount) MemberID() MemberID {
	return a.memberID
}

// EarnedPoints 獲取累積獲得積分
func (a *PointsAccount) EarnedPoints() PointsAmount {
	return a.earnedPoints
}

// UsedPoints 獲取累積使用積分
func (a *PointsAccount) UsedPoints() PointsAmount {
	return a.usedPoints
}

// CreatedAt 獲取創建時間
func (a *PointsAccount) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt 獲取最後更新時間
func (a *PointsAccount) UpdatedAt() time.Time {
	return a.updatedAt
}

// GetAvailablePoints 獲取可用積分（派生值）
//
// AvailablePoints = EarnedPoints - UsedPoints，每次調用重新計算。
// 不變條件保證 earnedPoints >= usedPoints，Subtract 不會失敗。
func (a *PointsAccount) GetAvailablePoints() PointsAmount {
	available, _ := a.earnedPoints.Subtract(a.usedPoints)
	return available
}

// ===========================
// 事件管理
// ===========================

// addEvent 添加領域事件到待發布列表（私有方法）
func (a *PointsAccount) addEvent(event shared.DomainEvent) {
	a.events = append(a.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
//
// 使用場景：
// - 事務提交成功後，調用此方法獲取事件並發布
// - Pull 模式：聚合根不依賴 EventPublisher，只讀取一次避免重複發布
func (a *PointsAccount) PullEvents() []shared.DomainEvent {
	events := a.events
	a.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// EarnPoints 獲得積分
//
// 前置條件（由類型系統保證）：
// - amount 已通過 NewPointsAmount 驗證，保證 >= 0
// - source 為合法的 PointsSource
//
// 業務邏輯：
// - 累加積分到 earnedPoints
// - 零積分也接受（步數不足 100 步的驗證日即為零點入帳）
//
// 副作用：
// - 更新 earnedPoints 與 updatedAt
// - 發布 PointsEarnedEvent
func (a *PointsAccount) EarnPoints(
	amount PointsAmount,
	source PointsSource,
	sourceID string,
	description string,
) error {
	if !source.IsValid() {
		return fmt.Errorf("invalid points source %q", source)
	}

	newEarnedPoints, err := a.earnedPoints.Add(amount)
	if err != nil {
		return err
	}

	a.earnedPoints = newEarnedPoints
	a.updatedAt = time.Now()

	a.addEvent(NewPointsEarnedEvent(
		a.accountID,
		amount,
		source,
		sourceID,
		description,
	))

	return nil
}

// DeductPoints 扣減積分
//
// 業務規則：
// - 必須先檢查可用積分是否足夠（前置條件）
// - 前置檢查確保扣減後 usedPoints <= earnedPoints
//
// 副作用：
// - 更新 usedPoints 與 updatedAt
// - 發布 PointsDeductedEvent
func (a *PointsAccount) DeductPoints(
	amount PointsAmount,
	reason string,
) error {
	available := a.GetAvailablePoints()
	if amount.GreaterThan(available) {
		return ErrInsufficientPoints.WithContext(
			"requested", amount.Value(),
			"available", available.Value(),
			"reason", reason,
		)
	}

	newUsedPoints, err := a.usedPoints.Add(amount)
	if err != nil {
		return err
	}

	a.usedPoints = newUsedPoints
	a.updatedAt = time.Now()

	a.addEvent(NewPointsDeductedEvent(
		a.accountID,
		amount,
		reason,
	))

	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructPointsAccount 從持久化存儲重建聚合根
//
// 與 NewPointsAccount 的區別：
// - New: 創建新聚合，發布 AccountCreated 事件
// - Reconstruct: 重建已存在的聚合，不發布事件（事件已發生過）
//
// 重要：即使是從資料庫重建，也必須驗證不變條件。
// used > earned 表示持久層的原子性保證曾被打破（部分提交），
// 這是引擎無法恢復的完整性錯誤，必須浮出而非靜默修復。
func ReconstructPointsAccount(
	accountID AccountID,
	memberID MemberID,
	earnedPoints int,
	usedPoints int,
	createdAt time.Time,
	updatedAt time.Time,
) (*PointsAccount, error) {
	// 1. 驗證 ID 有效性
	if accountID.IsEmpty() {
		return nil, ErrInvalidAccountID.WithContext(
			"reason", "invalid account ID in database",
		)
	}

	if memberID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "invalid member ID in database",
		)
	}

	// 2. 驗證積分數量（防止負數）
	earnedAmount, err := NewPointsAmount(earnedPoints)
	if err != nil {
		return nil, ErrCorruptedAccount.WithContext(
			"field", "earned_points",
			"value", earnedPoints,
		)
	}

	usedAmount, err := NewPointsAmount(usedPoints)
	if err != nil {
		return nil, ErrCorruptedAccount.WithContext(
			"field", "used_points",
			"value", usedPoints,
		)
	}

	// 3. 驗證關鍵不變條件：usedPoints <= earnedPoints
	if usedAmount.GreaterThan(earnedAmount) {
		return nil, shared.ErrIntegrityViolation.WithContext(
			"account_id", accountID.String(),
			"used_points", usedPoints,
			"earned_points", earnedPoints,
		)
	}

	// 4. 重建聚合（重建時不包含事件）
	return &PointsAccount{
		accountID:    accountID,
		memberID:     memberID,
		earnedPoints: earnedAmount,
		usedPoints:   usedAmount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		events:       make([]shared.DomainEvent, 0),
	}, nil
}
