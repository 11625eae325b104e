package persistence

import (
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionManager 實作
// ===========================

// GORMTransactionManager GORM 事務管理器
//
// 實作 shared.TransactionManager：fn 內的所有寫入要麼全部提交、
// 要麼全部回滾。封裝 gorm 的 db.Transaction：
// - fn 返回 error → Rollback，錯誤原樣返回
// - fn panic → Rollback 後 re-panic（gorm 內建行為）
// - fn 返回 nil → Commit
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建 GORM 事務管理器
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一事務中執行 fn
//
// fn 收到的 TransactionContext 封裝事務中的 *gorm.DB，
// 傳給 Repository 方法即可讓多個操作共享同一事務。
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}
