package shared

import "fmt"

// ===========================
// DomainError 領域錯誤
// ===========================

// ErrorCode 錯誤代碼類型
//
// 各 bounded context 定義自己的錯誤代碼常量，
// 共用同一個 DomainError 結構（errors.Is 以 Code 比對）。
type ErrorCode string

// 跨 context 共用的錯誤代碼
const (
	// ErrCodeConcurrentConflict 原子單元因前置條件競爭而中止
	// 呼叫方應重新讀取後重試，而非重放過期的輸入
	ErrCodeConcurrentConflict ErrorCode = "CONCURRENT_CONFLICT"

	// ErrCodeIntegrityViolation 持久層原子性保證失效（觀察到部分提交）
	// 這是唯一的致命錯誤：引擎無法自行恢復，不可靜默重試
	ErrCodeIntegrityViolation ErrorCode = "INTEGRITY_VIOLATION"
)

// DomainError 領域錯誤
//
// 設計原則：
// 1. 包含結構化的錯誤代碼（用於呼叫方分支與狀態碼映射）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（創建後不可修改）
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)

	// 複製現有上下文
	for k, v := range e.Context {
		ctx[k] = v
	}

	// 添加新上下文
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（用於錯誤類型判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ===========================
// 跨 context 共用的錯誤實例
// ===========================

var (
	// ErrConcurrentConflict 前置條件競爭（可重試）
	ErrConcurrentConflict = &DomainError{
		Code:    ErrCodeConcurrentConflict,
		Message: "操作因並發衝突而中止，請重新讀取後重試",
	}

	// ErrIntegrityViolation 完整性違反（致命，不可重試）
	ErrIntegrityViolation = &DomainError{
		Code:    ErrCodeIntegrityViolation,
		Message: "持久層資料違反完整性約束",
	}
)
