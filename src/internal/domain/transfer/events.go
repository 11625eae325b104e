package transfer

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
)

// ===========================
// PointTransfer 領域事件
// ===========================

// TransferProposedEvent 轉讓提案事件
type TransferProposedEvent struct {
	eventID    string
	transferID TransferID
	senderID   MemberID
	receiverID MemberID
	amount     points.PointsAmount
	occurredAt time.Time
}

// NewTransferProposedEvent 創建轉讓提案事件
func NewTransferProposedEvent(
	transferID TransferID,
	senderID MemberID,
	receiverID MemberID,
	amount points.PointsAmount,
) *TransferProposedEvent {
	return &TransferProposedEvent{
		eventID:    uuid.New().String(),
		transferID: transferID,
		senderID:   senderID,
		receiverID: receiverID,
		amount:     amount,
		occurredAt: time.Now(),
	}
}

func (e *TransferProposedEvent) EventID() string       { return e.eventID }
func (e *TransferProposedEvent) EventType() string     { return "transfer.proposed" }
func (e *TransferProposedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *TransferProposedEvent) AggregateID() string   { return e.transferID.String() }

// TransferID 獲取轉讓 ID
func (e *TransferProposedEvent) TransferID() TransferID { return e.transferID }

// SenderID 獲取發送方會員 ID
func (e *TransferProposedEvent) SenderID() MemberID { return e.senderID }

// ReceiverID 獲取接收方會員 ID
func (e *TransferProposedEvent) ReceiverID() MemberID { return e.receiverID }

// Amount 獲取轉讓積分數量
func (e *TransferProposedEvent) Amount() points.PointsAmount { return e.amount }

// ===========================
// TransferResponded 領域事件
// ===========================

// TransferRespondedEvent 轉讓回應事件（接受或拒絕）
type TransferRespondedEvent struct {
	eventID    string
	transferID TransferID
	senderID   MemberID
	receiverID MemberID
	amount     points.PointsAmount
	outcome    TransferStatus
	occurredAt time.Time
}

// NewTransferRespondedEvent 創建轉讓回應事件
func NewTransferRespondedEvent(
	transferID TransferID,
	senderID MemberID,
	receiverID MemberID,
	amount points.PointsAmount,
	outcome TransferStatus,
) *TransferRespondedEvent {
	return &TransferRespondedEvent{
		eventID:    uuid.New().String(),
		transferID: transferID,
		senderID:   senderID,
		receiverID: receiverID,
		amount:     amount,
		outcome:    outcome,
		occurredAt: time.Now(),
	}
}

func (e *TransferRespondedEvent) EventID() string       { return e.eventID }
func (e *TransferRespondedEvent) EventType() string     { return "transfer.responded" }
func (e *TransferRespondedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *TransferRespondedEvent) AggregateID() string   { return e.transferID.String() }

// TransferID 獲取轉讓 ID
func (e *TransferRespondedEvent) TransferID() TransferID { return e.transferID }

// SenderID 獲取發送方會員 ID
func (e *TransferRespondedEvent) SenderID() MemberID { return e.senderID }

// ReceiverID 獲取接收方會員 ID
func (e *TransferRespondedEvent) ReceiverID() MemberID { return e.receiverID }

// Amount 獲取轉讓積分數量
func (e *TransferRespondedEvent) Amount() points.PointsAmount { return e.amount }

// Outcome 獲取回應結果（accepted / rejected）
func (e *TransferRespondedEvent) Outcome() TransferStatus { return e.outcome }
