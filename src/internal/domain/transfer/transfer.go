package transfer

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// MemberID 會員識別符（identity context 定義）
type MemberID = identity.MemberID

// ===========================
// TransferID 識別符
// ===========================

// TransferMarker 轉讓 ID 類型標記
type TransferMarker struct{}

// TransferID 轉讓識別符
type TransferID = shared.EntityID[TransferMarker]

// NewTransferID 生成新的轉讓 ID
func NewTransferID() TransferID {
	return shared.NewEntityID[TransferMarker]()
}

// TransferIDFromString 從字符串解析轉讓 ID
func TransferIDFromString(s string) (TransferID, error) {
	return shared.EntityIDFromString[TransferMarker](s, ErrInvalidTransferID)
}

// ===========================
// TransferStatus 轉讓狀態
// ===========================

// TransferStatus 轉讓狀態枚舉
//
// 狀態機：pending → accepted / pending → rejected。
// accepted 與 rejected 為終態，回應只有一次。
type TransferStatus string

const (
	TransferStatusPending  TransferStatus = "pending"
	TransferStatusAccepted TransferStatus = "accepted"
	TransferStatusRejected TransferStatus = "rejected"
)

// IsValid 判斷是否為合法的轉讓狀態
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusAccepted, TransferStatusRejected:
		return true
	}
	return false
}

// ===========================
// PointTransfer 聚合根
// ===========================

// PointTransfer 積分轉讓聚合根（兩階段）
//
// 第一階段（提案）：發送方提出轉讓，只做餘額的參考性檢查，
// 不凍結、不扣留任何積分——pending 期間發送方可自由花費。
//
// 第二階段（回應）：接收方接受時才在同一事務內重新驗證
// 發送方餘額（Repository 的 DeductAvailable）並完成雙邊入帳；
// 驗證失敗時轉讓停留在 pending，之後仍可再次嘗試接受。
//
// 業務不變條件：
// - amount > 0
// - senderID != receiverID
// - 狀態只能從 pending 轉移一次
type PointTransfer struct {
	transferID TransferID
	senderID   MemberID
	receiverID MemberID
	amount     points.PointsAmount
	status     TransferStatus

	createdAt   time.Time
	respondedAt *time.Time

	events []shared.DomainEvent
}

// NewPointTransfer 創建新的轉讓提案（初始狀態為 pending）
func NewPointTransfer(
	senderID MemberID,
	receiverID MemberID,
	amount points.PointsAmount,
) (*PointTransfer, error) {
	if senderID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "senderID cannot be empty",
		)
	}
	if receiverID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "receiverID cannot be empty",
		)
	}
	if senderID.Equals(receiverID) {
		return nil, ErrSelfTransfer.WithContext(
			"member_id", senderID.String(),
		)
	}
	if amount.IsZero() {
		return nil, points.ErrInvalidAmount.WithContext(
			"amount", amount.Value(),
		)
	}

	t := &PointTransfer{
		transferID: NewTransferID(),
		senderID:   senderID,
		receiverID: receiverID,
		amount:     amount,
		status:     TransferStatusPending,
		createdAt:  time.Now(),
		events:     make([]shared.DomainEvent, 0),
	}

	t.addEvent(NewTransferProposedEvent(t.transferID, senderID, receiverID, amount))

	return t, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// TransferID 獲取轉讓 ID
func (t *PointTransfer) TransferID() TransferID {
	return t.transferID
}

// SenderID 獲取發送方會員 ID
func (t *PointTransfer) SenderID() MemberID {
	return t.senderID
}

// ReceiverID 獲取接收方會員 ID
func (t *PointTransfer) ReceiverID() MemberID {
	return t.receiverID
}

// Amount 獲取轉讓積分數量
func (t *PointTransfer) Amount() points.PointsAmount {
	return t.amount
}

// Status 獲取轉讓狀態
func (t *PointTransfer) Status() TransferStatus {
	return t.status
}

// CreatedAt 獲取創建時間
func (t *PointTransfer) CreatedAt() time.Time {
	return t.createdAt
}

// RespondedAt 獲取回應時間（pending 時為 nil）
func (t *PointTransfer) RespondedAt() *time.Time {
	return t.respondedAt
}

// IsPending 判斷是否仍在等待回應
func (t *PointTransfer) IsPending() bool {
	return t.status == TransferStatusPending
}

// ===========================
// 事件管理
// ===========================

func (t *PointTransfer) addEvent(event shared.DomainEvent) {
	t.events = append(t.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
func (t *PointTransfer) PullEvents() []shared.DomainEvent {
	events := t.events
	t.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// Accept 接收方接受轉讓
//
// 只回應接收方本人；非 pending 狀態返回 ErrAlreadyResponded。
// 呼叫方必須在同一事務內完成發送方扣點與接收方入帳，
// 扣點失敗時回滾，轉讓停留在 pending。
func (t *PointTransfer) Accept(actorID MemberID, respondedAt time.Time) error {
	if err := t.authorizeResponse(actorID); err != nil {
		return err
	}
	if t.status != TransferStatusPending {
		return ErrAlreadyResponded.WithContext(
			"transfer_id", t.transferID.String(),
			"status", string(t.status),
		)
	}

	t.status = TransferStatusAccepted
	t.respondedAt = &respondedAt

	t.addEvent(NewTransferRespondedEvent(
		t.transferID, t.senderID, t.receiverID, t.amount, TransferStatusAccepted,
	))

	return nil
}

// Reject 接收方拒絕轉讓
//
// 拒絕為終態，之後不能再接受。發送方從未被扣點，無需回補。
func (t *PointTransfer) Reject(actorID MemberID, respondedAt time.Time) error {
	if err := t.authorizeResponse(actorID); err != nil {
		return err
	}
	if t.status != TransferStatusPending {
		return ErrAlreadyResponded.WithContext(
			"transfer_id", t.transferID.String(),
			"status", string(t.status),
		)
	}

	t.status = TransferStatusRejected
	t.respondedAt = &respondedAt

	t.addEvent(NewTransferRespondedEvent(
		t.transferID, t.senderID, t.receiverID, t.amount, TransferStatusRejected,
	))

	return nil
}

// authorizeResponse 只有接收方可以回應轉讓
func (t *PointTransfer) authorizeResponse(actorID MemberID) error {
	if !actorID.Equals(t.receiverID) {
		return identity.ErrNotAuthorized.WithContext(
			"transfer_id", t.transferID.String(),
			"actor_id", actorID.String(),
		)
	}
	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructPointTransfer 從持久化存儲重建聚合根
func ReconstructPointTransfer(
	transferID TransferID,
	senderID MemberID,
	receiverID MemberID,
	amount int,
	status TransferStatus,
	createdAt time.Time,
	respondedAt *time.Time,
) (*PointTransfer, error) {
	if transferID.IsEmpty() {
		return nil, ErrInvalidTransferID.WithContext(
			"reason", "invalid transfer ID in database",
		)
	}
	if senderID.IsEmpty() || receiverID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "invalid member ID in database",
		)
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus.WithContext(
			"transfer_id", transferID.String(),
			"status", string(status),
		)
	}

	transferAmount, err := points.NewPositivePointsAmount(amount)
	if err != nil {
		return nil, err
	}

	return &PointTransfer{
		transferID:  transferID,
		senderID:    senderID,
		receiverID:  receiverID,
		amount:      transferAmount,
		status:      status,
		createdAt:   createdAt,
		respondedAt: respondedAt,
		events:      make([]shared.DomainEvent, 0),
	}, nil
}
