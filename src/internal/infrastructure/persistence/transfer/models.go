package transfer

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/transfer"
)

// ===========================
// GORM Model 定義
// ===========================

// PointTransferGORM GORM 轉讓模型
//
// status 只會經歷 pending → accepted / rejected 一次；
// responded_at 與終態一起寫入，之後不再改動。
type PointTransferGORM struct {
	TransferID  string     `gorm:"type:uuid;primaryKey;column:transfer_id"`
	SenderID    string     `gorm:"type:uuid;not null;index;column:sender_id"`
	ReceiverID  string     `gorm:"type:uuid;not null;index;column:receiver_id"`
	Amount      int        `gorm:"not null;check:amount > 0"`
	Status      string     `gorm:"type:varchar(16);not null"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName 指定表名
func (PointTransferGORM) TableName() string {
	return "point_transfers"
}

// toDomain 將 GORM 模型轉換為 Domain 聚合根
func (m *PointTransferGORM) toDomain() (*transfer.PointTransfer, error) {
	transferID, err := transfer.TransferIDFromString(m.TransferID)
	if err != nil {
		return nil, transfer.ErrInvalidTransferID.WithContext(
			"id", m.TransferID,
			"reason", "invalid UUID format in database",
		)
	}

	senderID, err := identity.MemberIDFromString(m.SenderID)
	if err != nil {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"id", m.SenderID,
			"reason", "invalid UUID format in database",
		)
	}

	receiverID, err := identity.MemberIDFromString(m.ReceiverID)
	if err != nil {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"id", m.ReceiverID,
			"reason", "invalid UUID format in database",
		)
	}

	return transfer.ReconstructPointTransfer(
		transferID,
		senderID,
		receiverID,
		m.Amount,
		transfer.TransferStatus(m.Status),
		m.CreatedAt,
		m.RespondedAt,
	)
}

// toGORM 將 Domain 聚合根轉換為 GORM 模型
func toGORM(t *transfer.PointTransfer) *PointTransferGORM {
	return &PointTransferGORM{
		TransferID:  t.TransferID().String(),
		SenderID:    t.SenderID().String(),
		ReceiverID:  t.ReceiverID().String(),
		Amount:      t.Amount().Value(),
		Status:      string(t.Status()),
		RespondedAt: t.RespondedAt(),
		CreatedAt:   t.CreatedAt(),
	}
}
