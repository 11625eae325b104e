package points

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ===========================
// StepsPerPoint 值對象
// ===========================

// StepsPerPoint 步數轉換率值對象（多少步換一點）
//
// 建構約束：轉換率必須在 1-100000 之間。
// 預設業務規則為 100 步一點。
type StepsPerPoint struct {
	value int
}

// DefaultStepsPerPoint 預設轉換率：每 100 步一點
func DefaultStepsPerPoint() StepsPerPoint {
	return StepsPerPoint{value: 100}
}

// NewStepsPerPoint 建構函數
func NewStepsPerPoint(value int) (StepsPerPoint, error) {
	if value < 1 || value > 100000 {
		return StepsPerPoint{}, fmt.Errorf(
			"%w: steps-per-point rate %d out of range [1, 100000]",
			ErrInvalidAmount,
			value,
		)
	}
	return StepsPerPoint{value: value}, nil
}

// Value 獲取轉換率
func (r StepsPerPoint) Value() int {
	return r.value
}

// ===========================
// StepConversionService 領域服務
// ===========================

// StepConversionService 步數→積分轉換領域服務
//
// 設計原則：
// - Domain Service 封裝不屬於任何單一實體/值對象的業務邏輯
// - 無狀態（stateless）- 所有數據通過參數傳入，可安全並發共享
type StepConversionService struct{}

// NewStepConversionService 建構函數
func NewStepConversionService() *StepConversionService {
	return &StepConversionService{}
}

// CalculateFromSteps 根據步數和轉換率計算積分
//
// 業務規則：
// - 積分 = floor(步數 / 轉換率)，精確整數除法、向下取整
//   （1250 步、100 步一點 → 12 點；絕不向上湊整）
// - 步數不足一個轉換率單位 → 0 點（合法結果，不是錯誤）
// - 負數步數返回 0 積分（防禦性處理，正常路徑不會出現）
func (s *StepConversionService) CalculateFromSteps(
	steps int,
	rate StepsPerPoint,
) (PointsAmount, error) {
	stepsValue := decimal.NewFromInt(int64(steps))
	rateValue := decimal.NewFromInt(int64(rate.Value()))

	// floor(steps / rate)
	pointsValue := stepsValue.Div(rateValue).Floor().IntPart()

	if pointsValue < 0 {
		pointsValue = 0
	}

	return NewPointsAmount(int(pointsValue))
}
