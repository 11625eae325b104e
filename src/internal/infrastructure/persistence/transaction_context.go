package persistence

import (
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文實作
// 設計原則：
// 1. 實作 shared.TransactionContext 介面（標記介面）
// 2. 封裝 *gorm.DB，避免洩漏到 Domain Layer
// 3. 提供 GetDB() 方法供 Infrastructure Layer 內部使用
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
// 注意：這個方法不在 shared.TransactionContext 介面中
// 這樣 Domain Layer 無法訪問 GORM，保持依賴方向正確
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// DBProvider 能提供 *gorm.DB 的事務上下文
// 各 Repository 子包以此介面做類型斷言，不依賴具體實作
type DBProvider interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ContextDB 從 TransactionContext 解出 GORM DB 實例
//
// 行為：
//   - ctx != nil 且為 GORM 事務上下文: 使用事務中的 DB
//   - ctx == nil: 使用 fallback（auto-commit 模式，僅限讀操作）
func ContextDB(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(DBProvider); ok {
			return txCtx.GetDB()
		}
	}
	return fallback
}
