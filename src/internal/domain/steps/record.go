package steps

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// DateLayout 日曆日期的標準格式（與時區無關的純日期）
const DateLayout = "2006-01-02"

// ===========================
// 實體 ID
// ===========================

// RecordMarker 是 RecordID 的標記類型
type RecordMarker struct{}

// RecordID 每日步數紀錄的唯一標識符
type RecordID = shared.EntityID[RecordMarker]

// NewRecordID 生成新的紀錄 ID（UUID v4）
func NewRecordID() RecordID {
	return shared.NewEntityID[RecordMarker]()
}

// RecordIDFromString 從字串解析紀錄 ID
func RecordIDFromString(s string) (RecordID, error) {
	return shared.EntityIDFromString[RecordMarker](s, ErrInvalidRecordID)
}

// ===========================
// DailyEarningRecord 聚合根
// ===========================

// DailyEarningRecord 每日步數紀錄聚合根
//
// 每個 (member, date) 一筆，append-only（審計軌跡，永不刪除）。
//
// 狀態機（每個 (member, date)）：
//   Unvalidated → Validated（該日期的終態）
//
// 業務不變條件：
// - stepsCount >= 0
// - validatedAt 至多被設置一次；已驗證的紀錄拒絕再次驗證與步數更新
// - pointsEarned 只在驗證時計算一次 = floor(stepsCount / rate)
type DailyEarningRecord struct {
	recordID     RecordID
	memberID     identity.MemberID
	recordDate   string // DateLayout 格式的日曆日期
	stepsCount   int
	pointsEarned points.PointsAmount
	validatedAt  *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewDailyEarningRecord 創建當日的步數紀錄
//
// 業務規則：
// - date 必須是合法的 DateLayout 日期
// - steps >= 0
// - 新紀錄一律未驗證、零積分
func NewDailyEarningRecord(
	memberID identity.MemberID,
	date string,
	stepsCount int,
) (*DailyEarningRecord, error) {
	if memberID.IsEmpty() {
		return nil, identity.ErrInvalidMemberID.WithContext(
			"reason", "memberID cannot be empty",
		)
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidDate.WithContext("input", date)
	}

	if stepsCount < 0 {
		return nil, ErrNegativeSteps.WithContext("steps", stepsCount)
	}

	now := time.Now()
	zero, _ := points.NewPointsAmount(0)

	return &DailyEarningRecord{
		recordID:     NewRecordID(),
		memberID:     memberID,
		recordDate:   date,
		stepsCount:   stepsCount,
		pointsEarned: zero,
		validatedAt:  nil,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// RecordID 獲取紀錄 ID
func (r *DailyEarningRecord) RecordID() RecordID {
	return r.recordID
}

// MemberID 獲取會員 ID
func (r *DailyEarningRecord) MemberID() identity.MemberID {
	return r.memberID
}

// RecordDate 獲取日曆日期（DateLayout 格式）
func (r *DailyEarningRecord) RecordDate() string {
	return r.recordDate
}

// StepsCount 獲取步數
func (r *DailyEarningRecord) StepsCount() int {
	return r.stepsCount
}

// PointsEarned 獲取驗證後入帳的積分（未驗證時為 0）
func (r *DailyEarningRecord) PointsEarned() points.PointsAmount {
	return r.pointsEarned
}

// ValidatedAt 獲取驗證時間（未驗證時為 nil）
func (r *DailyEarningRecord) ValidatedAt() *time.Time {
	return r.validatedAt
}

// IsValidated 判斷是否已驗證
func (r *DailyEarningRecord) IsValidated() bool {
	return r.validatedAt != nil
}

// CreatedAt 獲取創建時間
func (r *DailyEarningRecord) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt 獲取最後更新時間
func (r *DailyEarningRecord) UpdatedAt() time.Time {
	return r.updatedAt
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// UpdateSteps 更新當日步數
//
// 業務規則：
// - 只有未驗證的紀錄可以更新步數
// - steps >= 0（覆寫語義：以最新回報為準，不累加）
func (r *DailyEarningRecord) UpdateSteps(stepsCount int) error {
	if r.IsValidated() {
		return ErrAlreadyValidated.WithContext(
			"record_date", r.recordDate,
		)
	}

	if stepsCount < 0 {
		return ErrNegativeSteps.WithContext("steps", stepsCount)
	}

	r.stepsCount = stepsCount
	r.updatedAt = time.Now()
	return nil
}

// Validate 驗證當日步數並計算積分（Unvalidated → Validated，終態）
//
// 業務規則：
// - 已驗證的紀錄返回 ErrAlreadyValidated（拒絕，不重複入帳）
// - pointsEarned = floor(stepsCount / rate)，零步合法（零點入帳，不是錯誤）
//
// 注意：此方法只變更聚合狀態；
// 「validatedAt 至多一次」的跨請求保證由存儲層的條件式寫入
// （MarkValidated: WHERE validated_at IS NULL）在提交時刻守住。
func (r *DailyEarningRecord) Validate(
	validatedAt time.Time,
	conversion *points.StepConversionService,
	rate points.StepsPerPoint,
) (points.PointsAmount, error) {
	if r.IsValidated() {
		return points.PointsAmount{}, ErrAlreadyValidated.WithContext(
			"record_date", r.recordDate,
			"validated_at", r.validatedAt,
		)
	}

	earned, err := conversion.CalculateFromSteps(r.stepsCount, rate)
	if err != nil {
		return points.PointsAmount{}, err
	}

	r.pointsEarned = earned
	r.validatedAt = &validatedAt
	r.updatedAt = validatedAt

	return earned, nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructDailyEarningRecord 從持久化存儲重建聚合根
func ReconstructDailyEarningRecord(
	recordID RecordID,
	memberID identity.MemberID,
	recordDate string,
	stepsCount int,
	pointsEarned int,
	validatedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*DailyEarningRecord, error) {
	if recordID.IsEmpty() {
		return nil, ErrInvalidRecordID
	}

	if stepsCount < 0 {
		return nil, ErrNegativeSteps.WithContext("steps", stepsCount)
	}

	earned, err := points.NewPointsAmount(pointsEarned)
	if err != nil {
		return nil, err
	}

	return &DailyEarningRecord{
		recordID:     recordID,
		memberID:     memberID,
		recordDate:   recordDate,
		stepsCount:   stepsCount,
		pointsEarned: earned,
		validatedAt:  validatedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}
