package idempotency

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/application/checkout"
	"github.com/jackyeh168/walk_rewards/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// GORM IdempotencyStore 實作
// ===========================

// IdempotencyKeyGORM GORM 冪等鍵模型
//
// 保留（reserve）即成功插入：主鍵唯一約束保證
// 同一個鍵全域只有一個贏家，與業務資料同庫時
// 可進一步共享事務。
type IdempotencyKeyGORM struct {
	Key       string    `gorm:"primaryKey;size:128"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName 指定表名
func (IdempotencyKeyGORM) TableName() string {
	return "idempotency_keys"
}

// GORMIdempotencyStore 以資料庫唯一約束實作的冪等鍵存儲
type GORMIdempotencyStore struct {
	db *gorm.DB
}

// NewGORMIdempotencyStore 創建 GORM 冪等鍵存儲
func NewGORMIdempotencyStore(db *gorm.DB) checkout.IdempotencyStore {
	return &GORMIdempotencyStore{db: db}
}

// Reserve 保留一個冪等鍵（first-wins）
//
// 鍵已被保留時返回 ErrDuplicateRequest，
// 調用者應拒絕這次重複提交而不執行業務邏輯。
func (s *GORMIdempotencyStore) Reserve(key string) error {
	result := s.db.Create(&IdempotencyKeyGORM{Key: key})
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return checkout.ErrDuplicateRequest.WithContext("key", key)
		}
		return persistence.TranslateDBError(result.Error)
	}
	return nil
}
