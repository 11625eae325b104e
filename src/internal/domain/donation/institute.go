package donation

import (
	"strings"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// InstituteID 識別符
// ===========================

// InstituteMarker 機構 ID 類型標記
type InstituteMarker struct{}

// InstituteID 機構識別符
type InstituteID = shared.EntityID[InstituteMarker]

// NewInstituteID 生成新的機構 ID
func NewInstituteID() InstituteID {
	return shared.NewEntityID[InstituteMarker]()
}

// InstituteIDFromString 從字符串解析機構 ID
func InstituteIDFromString(s string) (InstituteID, error) {
	return shared.EntityIDFromString[InstituteMarker](s, ErrInvalidInstituteID)
}

// ===========================
// Institute 聚合根
// ===========================

// Institute 受贈機構聚合根
//
// 業務不變條件：
// - pointsGoal > 0（募集目標）
// - currentPoints >= 0（已募集積分，單調非遞減）
//
// 目標達成（currentPoints >= pointsGoal）只是門檻通知，
// 不封存機構：之後的捐贈照常累計。
// 跨請求的累計由 Repository 的 AddPoints 以單條 UPDATE
// increment 實作，聚合上的 ReceiveDonation 服務單一事務內流程。
type Institute struct {
	instituteID   InstituteID
	name          string
	pointsGoal    points.PointsAmount
	currentPoints points.PointsAmount

	createdAt time.Time
	updatedAt time.Time
}

// NewInstitute 創建新的受贈機構
func NewInstitute(name string, pointsGoal points.PointsAmount) (*Institute, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyInstituteName
	}
	if pointsGoal.IsZero() {
		return nil, ErrInvalidGoal.WithContext(
			"points_goal", pointsGoal.Value(),
		)
	}

	now := time.Now()

	return &Institute{
		instituteID:   NewInstituteID(),
		name:          strings.TrimSpace(name),
		pointsGoal:    pointsGoal,
		currentPoints: points.PointsAmount{},
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// InstituteID 獲取機構 ID
func (i *Institute) InstituteID() InstituteID {
	return i.instituteID
}

// Name 獲取機構名稱
func (i *Institute) Name() string {
	return i.name
}

// PointsGoal 獲取募集目標
func (i *Institute) PointsGoal() points.PointsAmount {
	return i.pointsGoal
}

// CurrentPoints 獲取已募集積分
func (i *Institute) CurrentPoints() points.PointsAmount {
	return i.currentPoints
}

// GoalReached 判斷募集目標是否已達成
func (i *Institute) GoalReached() bool {
	return i.currentPoints.GreaterThanOrEqual(i.pointsGoal)
}

// CreatedAt 獲取創建時間
func (i *Institute) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt 獲取最後更新時間
func (i *Institute) UpdatedAt() time.Time {
	return i.updatedAt
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// ReceiveDonation 累計一筆捐贈
//
// 捐贈只進不出：amount 已由捐贈流程驗證為正數。
func (i *Institute) ReceiveDonation(amount points.PointsAmount) error {
	if amount.IsZero() {
		return points.ErrInvalidAmount.WithContext(
			"amount", amount.Value(),
		)
	}

	newCurrent, err := i.currentPoints.Add(amount)
	if err != nil {
		return err
	}

	i.currentPoints = newCurrent
	i.updatedAt = time.Now()

	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructInstitute 從持久化存儲重建聚合根
func ReconstructInstitute(
	instituteID InstituteID,
	name string,
	pointsGoal int,
	currentPoints int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Institute, error) {
	if instituteID.IsEmpty() {
		return nil, ErrInvalidInstituteID.WithContext(
			"reason", "invalid institute ID in database",
		)
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyInstituteName.WithContext(
			"institute_id", instituteID.String(),
		)
	}

	goal, err := points.NewPositivePointsAmount(pointsGoal)
	if err != nil {
		return nil, ErrInvalidGoal.WithContext(
			"institute_id", instituteID.String(),
			"points_goal", pointsGoal,
		)
	}

	current, err := points.NewPointsAmount(currentPoints)
	if err != nil {
		return nil, shared.ErrIntegrityViolation.WithContext(
			"institute_id", instituteID.String(),
			"current_points", currentPoints,
		)
	}

	return &Institute{
		instituteID:   instituteID,
		name:          name,
		pointsGoal:    goal,
		currentPoints: current,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}
