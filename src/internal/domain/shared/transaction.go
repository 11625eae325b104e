package shared

// TransactionContext 事務上下文介面（原子單元）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// Repository 方法約束指南：
//
// ✅ ctx 必須為 non-nil（寫操作需要事務保證）：
//    - Save() / Update() / Append()
//    - 所有條件式寫入（DeductAvailable、DecrementStock、MarkValidated 等）
//
// ✅ ctx 可為 nil（讀操作可選事務參與）：
//    - FindByID() / FindByMemberID() 等查詢
//    - 注意：事務外讀到的餘額僅供顯示，不得作為提交依據；
//      提交前的餘額/庫存檢查必須在同一事務內以條件式寫入重做
//
// 範例（轉讓接受時的重新驗證）：
//   txManager.InTransaction(func(ctx TransactionContext) error {
//       if err := accountRepo.DeductAvailable(ctx, senderID, amount); err != nil {
//           return err // 餘額不足或並發衝突，整個單元回滾
//       }
//       return accountRepo.CreditEarned(ctx, receiverID, amount)
//   })
//
// 架構原則：
// - 這是一個標記介面（Marker Interface），不暴露任何方法
// - Infrastructure Layer 負責實作具體的事務封裝（如 GORM）
// - Domain Layer 和 Application Layer 只依賴此介面，不依賴具體實作
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// InTransaction 保證 fn 內的所有寫入要麼全部提交、要麼全部回滾：
// - fn 返回 error → 回滾，錯誤原樣返回
// - fn panic → 回滾後 re-panic
// - fn 返回 nil → 提交
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
