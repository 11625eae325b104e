package points

import (
	"fmt"
	"math"
)

// PointsAmount 積分數量值對象
// 設計原則：值對象不可變、自我驗證
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（checked 版本）
// 對外部輸入進行完整驗證
//
// 建構約束：積分數量必須 >= 0（不存在負數積分的概念）
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, fmt.Errorf(
			"%w: attempted to create PointsAmount with value %d",
			ErrNegativePointsAmount,
			value,
		)
	}
	return PointsAmount{value: value}, nil
}

// NewPositivePointsAmount 建構函數（嚴格正數版本）
//
// 轉讓、捐贈、發點的操作金額必須 > 0（零點操作沒有意義）。
// 與 NewPointsAmount 的差別：0 在這裡是建構約束違反。
func NewPositivePointsAmount(value int) (PointsAmount, error) {
	if value <= 0 {
		return PointsAmount{}, fmt.Errorf(
			"%w: attempted amount %d",
			ErrInvalidAmount,
			value,
		)
	}
	return PointsAmount{value: value}, nil
}

// newPointsAmountUnchecked 內部建構函數（unchecked 版本）
// 僅供內部使用，當我們確定值有效時使用
//
// 前提條件：調用者必須保證 value >= 0
func newPointsAmountUnchecked(value int) PointsAmount {
	return PointsAmount{value: value}
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// IsZero 判斷是否為零點
func (p PointsAmount) IsZero() bool {
	return p.value == 0
}

// Add 相加（返回新的 PointsAmount，保持不變性）
//
// 溢位檢查：兩個有效值相加超出 int 範圍時返回 ErrPointsOverflow。
// 實務上帳戶積分受業務上限約束，此檢查屬於最後防線。
func (p PointsAmount) Add(other PointsAmount) (PointsAmount, error) {
	if p.value > math.MaxInt-other.value {
		return PointsAmount{}, fmt.Errorf(
			"%w: %d + %d",
			ErrPointsOverflow,
			p.value,
			other.value,
		)
	}
	return newPointsAmountUnchecked(p.value + other.value), nil
}

// Subtract 相減（返回新的 PointsAmount）
// 業務規則：不能扣除超過當前數量的積分
func (p PointsAmount) Subtract(other PointsAmount) (PointsAmount, error) {
	// 檢查業務規則：餘額是否足夠
	if p.value < other.value {
		// 這是業務規則違反，不是建構約束違反
		return PointsAmount{}, fmt.Errorf(
			"%w: cannot subtract %d from %d (insufficient balance)",
			ErrInsufficientPoints,
			other.value,
			p.value,
		)
	}

	// 已經保證 result >= 0，可以安全使用 unchecked 建構
	return newPointsAmountUnchecked(p.value - other.value), nil
}

// MultiplyBy 乘以非負整數（用於 單價 × 數量）
func (p PointsAmount) MultiplyBy(quantity int) (PointsAmount, error) {
	if quantity < 0 {
		return PointsAmount{}, fmt.Errorf(
			"%w: quantity %d",
			ErrInvalidAmount,
			quantity,
		)
	}
	if quantity != 0 && p.value > math.MaxInt/quantity {
		return PointsAmount{}, fmt.Errorf(
			"%w: %d * %d",
			ErrPointsOverflow,
			p.value,
			quantity,
		)
	}
	return newPointsAmountUnchecked(p.value * quantity), nil
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// GreaterThan 判斷是否大於另一個 PointsAmount
func (p PointsAmount) GreaterThan(other PointsAmount) bool {
	return p.value > other.value
}

// LessThan 判斷是否小於另一個 PointsAmount
func (p PointsAmount) LessThan(other PointsAmount) bool {
	return p.value < other.value
}

// GreaterThanOrEqual 判斷是否大於等於另一個 PointsAmount
func (p PointsAmount) GreaterThanOrEqual(other PointsAmount) bool {
	return p.value >= other.value
}
