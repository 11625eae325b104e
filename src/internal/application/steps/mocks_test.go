package steps

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/steps"
)

// ===========================
// Mock DailyEarningRecordRepository
// ===========================

type mockRecord struct {
	recordID     steps.RecordID
	stepsCount   int
	pointsEarned int
	validatedAt  *time.Time
}

type MockDailyEarningRecordRepository struct {
	records map[string]*mockRecord // key: memberID + "|" + date

	SaveCallCount          int
	UpdateStepsCallCount   int
	MarkValidatedCallCount int
}

func NewMockDailyEarningRecordRepository() *MockDailyEarningRecordRepository {
	return &MockDailyEarningRecordRepository{
		records: make(map[string]*mockRecord),
	}
}

func recordKey(memberID identity.MemberID, date string) string {
	return memberID.String() + "|" + date
}

// SeedRecord 預置一筆紀錄（validatedAt 為 nil 表示未驗證）
func (m *MockDailyEarningRecordRepository) SeedRecord(
	memberID identity.MemberID, date string, stepsCount int, validatedAt *time.Time,
) {
	m.records[recordKey(memberID, date)] = &mockRecord{
		recordID:    steps.NewRecordID(),
		stepsCount:  stepsCount,
		validatedAt: validatedAt,
	}
}

// Steps 讀取 mock 中的步數
func (m *MockDailyEarningRecordRepository) Steps(memberID identity.MemberID, date string) int {
	if rec, ok := m.records[recordKey(memberID, date)]; ok {
		return rec.stepsCount
	}
	return 0
}

func (m *MockDailyEarningRecordRepository) Save(ctx shared.TransactionContext, record *steps.DailyEarningRecord) error {
	m.SaveCallCount++
	key := recordKey(record.MemberID(), record.RecordDate())
	if _, exists := m.records[key]; exists {
		return steps.ErrRecordAlreadyExists
	}
	m.records[key] = &mockRecord{
		recordID:   record.RecordID(),
		stepsCount: record.StepsCount(),
	}
	return nil
}

func (m *MockDailyEarningRecordRepository) FindByMemberAndDate(
	ctx shared.TransactionContext, memberID identity.MemberID, date string,
) (*steps.DailyEarningRecord, error) {
	rec, exists := m.records[recordKey(memberID, date)]
	if !exists {
		return nil, steps.ErrRecordNotFound
	}
	return steps.ReconstructDailyEarningRecord(
		rec.recordID, memberID, date, rec.stepsCount, rec.pointsEarned,
		rec.validatedAt, time.Now(), time.Now(),
	)
}

func (m *MockDailyEarningRecordRepository) UpdateSteps(
	ctx shared.TransactionContext, memberID identity.MemberID, date string, stepsCount int,
) error {
	m.UpdateStepsCallCount++
	rec, exists := m.records[recordKey(memberID, date)]
	if !exists {
		return steps.ErrRecordNotFound
	}
	if rec.validatedAt != nil {
		return steps.ErrAlreadyValidated
	}
	rec.stepsCount = stepsCount
	return nil
}

func (m *MockDailyEarningRecordRepository) MarkValidated(
	ctx shared.TransactionContext,
	memberID identity.MemberID,
	date string,
	pointsEarned points.PointsAmount,
	validatedAt time.Time,
) error {
	m.MarkValidatedCallCount++
	rec, exists := m.records[recordKey(memberID, date)]
	if !exists {
		return steps.ErrRecordNotFound
	}
	if rec.validatedAt != nil {
		return steps.ErrAlreadyValidated
	}
	rec.pointsEarned = pointsEarned.Value()
	rec.validatedAt = &validatedAt
	return nil
}

// ===========================
// Mock PointsAccountRepository（只覆蓋本 context 需要的路徑）
// ===========================

type MockPointsAccountRepository struct {
	earned map[string]int
	used   map[string]int

	CreditCallCount int
	CreditErr       error
}

func NewMockPointsAccountRepository() *MockPointsAccountRepository {
	return &MockPointsAccountRepository{
		earned: make(map[string]int),
		used:   make(map[string]int),
	}
}

// SeedAccount 預置一個帳戶
func (m *MockPointsAccountRepository) SeedAccount(memberID identity.MemberID, earned, used int) {
	m.earned[memberID.String()] = earned
	m.used[memberID.String()] = used
}

// Earned 讀取 mock 中的累積獲得積分
func (m *MockPointsAccountRepository) Earned(memberID identity.MemberID) int {
	return m.earned[memberID.String()]
}

func (m *MockPointsAccountRepository) Save(ctx shared.TransactionContext, account *points.PointsAccount) error {
	m.earned[account.MemberID().String()] = account.EarnedPoints().Value()
	m.used[account.MemberID().String()] = account.UsedPoints().Value()
	return nil
}

func (m *MockPointsAccountRepository) FindByID(ctx shared.TransactionContext, accountID points.AccountID) (*points.PointsAccount, error) {
	return nil, points.ErrAccountNotFound
}

func (m *MockPointsAccountRepository) FindByMemberID(ctx shared.TransactionContext, memberID identity.MemberID) (*points.PointsAccount, error) {
	earned, exists := m.earned[memberID.String()]
	if !exists {
		return nil, points.ErrAccountNotFound
	}
	return points.ReconstructPointsAccount(
		points.NewAccountID(), memberID, earned, m.used[memberID.String()],
		time.Now(), time.Now(),
	)
}

func (m *MockPointsAccountRepository) CreditEarned(ctx shared.TransactionContext, memberID identity.MemberID, amount points.PointsAmount) error {
	m.CreditCallCount++
	if m.CreditErr != nil {
		return m.CreditErr
	}
	if _, exists := m.earned[memberID.String()]; !exists {
		return points.ErrAccountNotFound
	}
	m.earned[memberID.String()] += amount.Value()
	return nil
}

func (m *MockPointsAccountRepository) DeductAvailable(ctx shared.TransactionContext, memberID identity.MemberID, amount points.PointsAmount) error {
	if m.earned[memberID.String()]-m.used[memberID.String()] < amount.Value() {
		return points.ErrInsufficientPoints
	}
	m.used[memberID.String()] += amount.Value()
	return nil
}

// ===========================
// Mock TransactionManager / EventPublisher
// ===========================

type MockTransactionManager struct {
	InTransactionCallCount int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	var ctx shared.TransactionContext = nil
	return fn(ctx)
}

type MockEventPublisher struct {
	Published []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(event shared.DomainEvent) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *MockEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	m.Published = append(m.Published, events...)
	return nil
}
