package order

import (
	"errors"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/order"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// OrderRepositoryImpl
// ===========================

// OrderRepositoryImpl 訂單倉儲實現（GORM）
//
// 訂單頭與明細在同一事務內落地（Create 會一併插入關聯的 Lines）；
// 狀態轉移以條件式 UPDATE（WHERE status = from）落地，
// 並發轉移最多一個贏家。
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 創建新的訂單倉儲實例
func NewOrderRepository(db *gorm.DB) order.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Save 保存新訂單（訂單頭 + 所有明細）
func (r *OrderRepositoryImpl) Save(ctx shared.TransactionContext, o *order.Order) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Create(toGORM(o))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return order.ErrOrderAlreadyExists.WithContext(
				"order_id", o.OrderID().String(),
			)
		}
		return persistence.TranslateDBError(result.Error)
	}

	return nil
}

// FindByID 根據訂單 ID 查找訂單（含明細）
func (r *OrderRepositoryImpl) FindByID(ctx shared.TransactionContext, orderID order.OrderID) (*order.Order, error) {
	db := persistence.ContextDB(ctx, r.db)

	var model OrderGORM
	result := db.Preload("Lines").Where("order_id = ?", orderID.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound.WithContext(
				"order_id", orderID.String(),
			)
		}
		return nil, persistence.TranslateDBError(result.Error)
	}

	return model.toDomain()
}

// FindByMemberID 查詢某會員的所有訂單（按創建時間降冪）
func (r *OrderRepositoryImpl) FindByMemberID(ctx shared.TransactionContext, memberID order.MemberID) ([]*order.Order, error) {
	db := persistence.ContextDB(ctx, r.db)

	var models []OrderGORM
	result := db.Preload("Lines").
		Where("member_id = ?", memberID.String()).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, persistence.TranslateDBError(result.Error)
	}

	orders := make([]*order.Order, 0, len(models))
	for i := range models {
		o, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// UpdateStatus 條件式更新訂單狀態
//
// 單條 UPDATE：僅當當前狀態為 from 時轉移到 to。
// RowsAffected = 0 時查明原因：訂單不存在 → ErrOrderNotFound，
// 狀態已被其他請求改走 → shared.ErrConcurrentConflict。
func (r *OrderRepositoryImpl) UpdateStatus(ctx shared.TransactionContext, orderID order.OrderID, from, to order.OrderStatus) error {
	db := persistence.ContextDB(ctx, r.db)

	result := db.Model(&OrderGORM{}).
		Where("order_id = ? AND status = ?", orderID.String(), string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return persistence.TranslateDBError(result.Error)
	}

	if result.RowsAffected == 0 {
		var model OrderGORM
		probe := db.Where("order_id = ?", orderID.String()).First(&model)
		if probe.Error != nil {
			if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
				return order.ErrOrderNotFound.WithContext(
					"order_id", orderID.String(),
				)
			}
			return persistence.TranslateDBError(probe.Error)
		}
		return shared.ErrConcurrentConflict.WithContext(
			"order_id", orderID.String(),
			"expected_status", string(from),
			"actual_status", model.Status,
		)
	}

	return nil
}
