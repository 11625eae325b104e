package points

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// Mock PointsAccountRepository
// ===========================

type mockAccount struct {
	accountID points.AccountID
	earned    int
	used      int
}

type MockPointsAccountRepository struct {
	accounts map[string]*mockAccount

	SaveCallCount   int
	CreditCallCount int
	DeductCallCount int

	CreditErr error
	DeductErr error
}

func NewMockPointsAccountRepository() *MockPointsAccountRepository {
	return &MockPointsAccountRepository{
		accounts: make(map[string]*mockAccount),
	}
}

// SeedAccount 預置一個帳戶（模擬資料庫中已存在的數據）
func (m *MockPointsAccountRepository) SeedAccount(memberID points.MemberID, earned, used int) {
	m.accounts[memberID.String()] = &mockAccount{
		accountID: points.NewAccountID(),
		earned:    earned,
		used:      used,
	}
}

// Earned 讀取 mock 中的累積獲得積分
func (m *MockPointsAccountRepository) Earned(memberID points.MemberID) int {
	if acc, ok := m.accounts[memberID.String()]; ok {
		return acc.earned
	}
	return 0
}

func (m *MockPointsAccountRepository) Save(ctx shared.TransactionContext, account *points.PointsAccount) error {
	m.SaveCallCount++ // 無論成功或失敗，都計數

	if _, exists := m.accounts[account.MemberID().String()]; exists {
		return points.ErrAccountAlreadyExists
	}

	m.accounts[account.MemberID().String()] = &mockAccount{
		accountID: account.AccountID(),
		earned:    account.EarnedPoints().Value(),
		used:      account.UsedPoints().Value(),
	}
	return nil
}

func (m *MockPointsAccountRepository) FindByID(ctx shared.TransactionContext, accountID points.AccountID) (*points.PointsAccount, error) {
	for memberIDStr, acc := range m.accounts {
		if acc.accountID.Equals(accountID) {
			memberID, _ := identity.MemberIDFromString(memberIDStr)
			return points.ReconstructPointsAccount(
				acc.accountID, memberID, acc.earned, acc.used, time.Now(), time.Now(),
			)
		}
	}
	return nil, points.ErrAccountNotFound
}

func (m *MockPointsAccountRepository) FindByMemberID(ctx shared.TransactionContext, memberID points.MemberID) (*points.PointsAccount, error) {
	acc, exists := m.accounts[memberID.String()]
	if !exists {
		return nil, points.ErrAccountNotFound
	}
	return points.ReconstructPointsAccount(
		acc.accountID, memberID, acc.earned, acc.used, time.Now(), time.Now(),
	)
}

func (m *MockPointsAccountRepository) CreditEarned(ctx shared.TransactionContext, memberID points.MemberID, amount points.PointsAmount) error {
	m.CreditCallCount++
	if m.CreditErr != nil {
		return m.CreditErr
	}

	acc, exists := m.accounts[memberID.String()]
	if !exists {
		return points.ErrAccountNotFound
	}
	acc.earned += amount.Value()
	return nil
}

func (m *MockPointsAccountRepository) DeductAvailable(ctx shared.TransactionContext, memberID points.MemberID, amount points.PointsAmount) error {
	m.DeductCallCount++
	if m.DeductErr != nil {
		return m.DeductErr
	}

	acc, exists := m.accounts[memberID.String()]
	if !exists {
		return points.ErrAccountNotFound
	}
	if acc.earned-acc.used < amount.Value() {
		return points.ErrInsufficientPoints
	}
	acc.used += amount.Value()
	return nil
}

// ===========================
// Mock PointsGrantRepository
// ===========================

type MockPointsGrantRepository struct {
	Grants          []*points.PointsGrant
	AppendCallCount int
	AppendErr       error
}

func NewMockPointsGrantRepository() *MockPointsGrantRepository {
	return &MockPointsGrantRepository{}
}

func (m *MockPointsGrantRepository) Append(ctx shared.TransactionContext, grant *points.PointsGrant) error {
	m.AppendCallCount++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Grants = append(m.Grants, grant)
	return nil
}

func (m *MockPointsGrantRepository) FindByMemberID(ctx shared.TransactionContext, memberID points.MemberID) ([]*points.PointsGrant, error) {
	var result []*points.PointsGrant
	for _, g := range m.Grants {
		if g.MemberID().Equals(memberID) {
			result = append(result, g)
		}
	}
	return result, nil
}

// ===========================
// Mock TransactionManager
// ===========================

type MockTransactionManager struct {
	InTransactionCallCount int
	ShouldFail             bool
	FailError              error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	m.InTransactionCallCount++

	if m.ShouldFail {
		return m.FailError
	}

	// mock 不提供回滾：回滾語義由 persistence 整合測試驗證
	var ctx shared.TransactionContext = nil
	return fn(ctx)
}

// ===========================
// Mock EventPublisher（記錄式）
// ===========================

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

// EventTypes 已發布事件的類型列表（按發布順序）
func (m *MockEventPublisher) EventTypes() []string {
	types := make([]string, 0, len(m.Published))
	for _, e := range m.Published {
		types = append(types, e.EventType())
	}
	return types
}

// ===========================
// Mock AdminAuthorizer
// ===========================

type MockAdminAuthorizer struct {
	Admins map[string]bool
	Err    error
}

func NewMockAdminAuthorizer(adminIDs ...string) *MockAdminAuthorizer {
	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &MockAdminAuthorizer{Admins: admins}
}

func (m *MockAdminAuthorizer) IsAdmin(actorID points.MemberID) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.Admins[actorID.String()], nil
}
