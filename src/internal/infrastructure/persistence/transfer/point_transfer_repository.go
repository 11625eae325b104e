package transfer

import (
	"errors"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/transfer"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// PointTransferRepositoryImpl
// ===========================

// PointTransferRepositoryImpl 轉讓倉儲實現（GORM）
//
// 回應的一次性由條件式 UPDATE（WHERE status = 'pending'）守住：
// 並發回應最多一個贏家，輸家收到 ErrAlreadyResponded。
type PointTransferRepositoryImpl struct {
	db *gorm.DB
}

// NewPointTransferRepository 創建新的轉讓倉儲實例
func NewPointTransferRepository(db *gorm.DB) transfer.PointTransferRepository {
	return &PointTransferRepositoryImpl{db: db}
}

// Save 保存新的轉讓提案
func (r *PointTransferRepositoryImpl) Save(ctx shared.TransactionContext, t *transfer.PointTransfer) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(toGORM(t))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return transfer.ErrTransferAlreadyExists.WithContext(
				"transfer_id", t.TransferID().String(),
			)
		}
		return persistence.TranslateDBError(result.Error)
	}

	return nil
}

// FindByID 根據轉讓 ID 查找轉讓
func (r *PointTransferRepositoryImpl) FindByID(ctx shared.TransactionContext, transferID transfer.TransferID) (*transfer.PointTransfer, error) {
	db := persistence.ContextDB(ctx, r.db)

	var model PointTransferGORM
	result := db.Where("transfer_id = ?", transferID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, transfer.ErrTransferNotFound.WithContext(
				"transfer_id", transferID.String(),
			)
		}
		return nil, persistence.TranslateDBError(result.Error)
	}

	return model.toDomain()
}

// FindPendingByReceiver 查詢某會員待回應的轉讓（按時間升冪）
func (r *PointTransferRepositoryImpl) FindPendingByReceiver(ctx shared.TransactionContext, receiverID transfer.MemberID) ([]*transfer.PointTransfer, error) {
	db := persistence.ContextDB(ctx, r.db)

	var models []PointTransferGORM
	result := db.Where("receiver_id = ? AND status = ?",
		receiverID.String(), string(transfer.TransferStatusPending)).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, persistence.TranslateDBError(result.Error)
	}

	transfers := make([]*transfer.PointTransfer, 0, len(models))
	for i := range models {
		t, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, nil
}

// MarkAccepted 條件式標記為已接受
func (r *PointTransferRepositoryImpl) MarkAccepted(ctx shared.TransactionContext, transferID transfer.TransferID, respondedAt time.Time) error {
	return r.markResponded(ctx, transferID, transfer.TransferStatusAccepted, respondedAt)
}

// MarkRejected 條件式標記為已拒絕
func (r *PointTransferRepositoryImpl) MarkRejected(ctx shared.TransactionContext, transferID transfer.TransferID, respondedAt time.Time) error {
	return r.markResponded(ctx, transferID, transfer.TransferStatusRejected, respondedAt)
}

// markResponded 單條 UPDATE：僅當當前狀態為 pending 時寫入終態
//
// RowsAffected = 0 時查明原因：轉讓不存在 → ErrTransferNotFound，
// 已被回應（包括與並發回應的競爭）→ ErrAlreadyResponded。
func (r *PointTransferRepositoryImpl) markResponded(
	ctx shared.TransactionContext,
	transferID transfer.TransferID,
	status transfer.TransferStatus,
	respondedAt time.Time,
) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&PointTransferGORM{}).
		Where("transfer_id = ? AND status = ?",
			transferID.String(), string(transfer.TransferStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(status),
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}

	if result.RowsAffected == 0 {
		var model PointTransferGORM
		probe := db.Where("transfer_id = ?", transferID.String()).First(&model)
		if probe.Error != nil {
			if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
				return transfer.ErrTransferNotFound.WithContext(
					"transfer_id", transferID.String(),
				)
			}
			return persistence.TranslateDBError(probe.Error)
		}
		return transfer.ErrAlreadyResponded.WithContext(
			"transfer_id", transferID.String(),
			"status", model.Status,
		)
	}

	return nil
}
