package steps

import (
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testDate = "2026-08-29"

// ===========================
// DailyEarningRecordRepository Integration Tests
// ===========================

// setupTestDB 創建測試資料庫（in-memory SQLite）
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to test database")

	err = db.AutoMigrate(&DailyEarningRecordGORM{})
	require.NoError(t, err, "failed to migrate database schema")

	return db
}

// seedRecord 保存一筆未驗證紀錄
func seedRecord(t *testing.T, repo steps.DailyEarningRecordRepository, memberID identity.MemberID, stepsCount int) {
	t.Helper()
	record, err := steps.NewDailyEarningRecord(memberID, testDate, stepsCount)
	require.NoError(t, err)
	require.NoError(t, repo.Save(nil, record))
}

// Test 1: Save then FindByMemberAndDate round-trips
func TestDailyEarningRecordRepository_SaveAndFind_RoundTrips(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	memberID := identity.NewMemberID()
	seedRecord(t, repo, memberID, 4200)

	// Act
	found, err := repo.FindByMemberAndDate(nil, memberID, testDate)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4200, found.StepsCount())
	assert.Equal(t, testDate, found.RecordDate())
	assert.False(t, found.IsValidated())
	assert.Equal(t, 0, found.PointsEarned().Value())
}

// Test 2: 同一會員同一日期第二筆 → ErrRecordAlreadyExists
func TestDailyEarningRecordRepository_Save_DuplicateDate_ReturnsError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	memberID := identity.NewMemberID()
	seedRecord(t, repo, memberID, 1000)

	record, err := steps.NewDailyEarningRecord(memberID, testDate, 2000)
	require.NoError(t, err)
	err = repo.Save(nil, record)

	assert.True(t, errors.Is(err, steps.ErrRecordAlreadyExists), "error should wrap ErrRecordAlreadyExists")
}

// Test 3: 不同日期不衝突
func TestDailyEarningRecordRepository_Save_DifferentDates_Succeeds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	memberID := identity.NewMemberID()
	seedRecord(t, repo, memberID, 1000)

	record, err := steps.NewDailyEarningRecord(memberID, "2026-08-30", 2000)
	require.NoError(t, err)

	assert.NoError(t, repo.Save(nil, record))
}

// Test 4: UpdateSteps 覆寫未驗證紀錄的步數
func TestDailyEarningRecordRepository_UpdateSteps_Unvalidated_Overwrites(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	memberID := identity.NewMemberID()
	seedRecord(t, repo, memberID, 1000)

	// Act
	err := repo.UpdateSteps(nil, memberID, testDate, 7500)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByMemberAndDate(nil, memberID, testDate)
	require.NoError(t, err)
	assert.Equal(t, 7500, found.StepsCount())
}

// Test 5: MarkValidated 設置 validated_at 與 points_earned
func TestDailyEarningRecordRepository_MarkValidated_SetsPointsAndTimestamp(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	memberID := identity.NewMemberID()
	seedRecord(t, repo, memberID, 1250)
	earned, _ := points.NewPointsAmount(12)

	// Act
	err := repo.MarkValidated(nil, memberID, testDate, earned, time.Now().UTC())

	// Assert
	require.NoError(t, err)
	found, findErr := repo.FindByMemberAndDate(nil, memberID, testDate)
	require.NoError(t, findErr)
	assert.True(t, found.IsValidated())
	assert.Equal(t, 12, found.PointsEarned().Value())
}

// Test 6: 第二次 MarkValidated → ErrAlreadyValidated（一次性邊界）
func TestDailyEarningRecordRepository_MarkValidated_Twice_ReturnsError(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	memberID := identity.NewMemberID()
	seedRecord(t, repo, memberID, 1250)
	earned, _ := points.NewPointsAmount(12)
	require.NoError(t, repo.MarkValidated(nil, memberID, testDate, earned, time.Now().UTC()))

	// Act: 第二次驗證（包括與並發驗證競爭的輸家路徑）
	err := repo.MarkValidated(nil, memberID, testDate, earned, time.Now().UTC())

	// Assert
	assert.True(t, errors.Is(err, steps.ErrAlreadyValidated), "error should wrap ErrAlreadyValidated")

	// points_earned 未被第二次寫入改動
	found, findErr := repo.FindByMemberAndDate(nil, memberID, testDate)
	require.NoError(t, findErr)
	assert.Equal(t, 12, found.PointsEarned().Value())
}

// Test 7: 驗證後 UpdateSteps 被拒絕
func TestDailyEarningRecordRepository_UpdateSteps_AfterValidation_ReturnsError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	memberID := identity.NewMemberID()
	seedRecord(t, repo, memberID, 1250)
	earned, _ := points.NewPointsAmount(12)
	require.NoError(t, repo.MarkValidated(nil, memberID, testDate, earned, time.Now().UTC()))

	err := repo.UpdateSteps(nil, memberID, testDate, 9999)

	assert.True(t, errors.Is(err, steps.ErrAlreadyValidated), "error should wrap ErrAlreadyValidated")
}

// Test 8: 紀錄不存在 → ErrRecordNotFound
func TestDailyEarningRecordRepository_MarkValidated_NoRecord_ReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDailyEarningRecordRepository(db)
	earned, _ := points.NewPointsAmount(0)

	err := repo.MarkValidated(nil, identity.NewMemberID(), testDate, earned, time.Now().UTC())

	assert.True(t, errors.Is(err, steps.ErrRecordNotFound), "error should wrap ErrRecordNotFound")
}
