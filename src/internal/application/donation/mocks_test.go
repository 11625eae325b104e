package donation

import (
	"sort"
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/donation"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// Mock InstituteRepository
// ===========================

type mockInstitute struct {
	name          string
	pointsGoal    int
	currentPoints int
	createdAt     time.Time
}

type MockInstituteRepository struct {
	institutes map[string]*mockInstitute

	SaveCallCount      int
	AddPointsCallCount int
	AddPointsErr       error
}

func NewMockInstituteRepository() *MockInstituteRepository {
	return &MockInstituteRepository{
		institutes: make(map[string]*mockInstitute),
	}
}

// SeedInstitute 預置一個機構，返回其 ID
func (m *MockInstituteRepository) SeedInstitute(name string, pointsGoal, currentPoints int) donation.InstituteID {
	instituteID := donation.NewInstituteID()
	m.institutes[instituteID.String()] = &mockInstitute{
		name:          name,
		pointsGoal:    pointsGoal,
		currentPoints: currentPoints,
		createdAt:     time.Now(),
	}
	return instituteID
}

// CurrentPoints 讀取 mock 中的機構累計積分
func (m *MockInstituteRepository) CurrentPoints(instituteID donation.InstituteID) int {
	if i, ok := m.institutes[instituteID.String()]; ok {
		return i.currentPoints
	}
	return 0
}

func (m *MockInstituteRepository) Save(ctx shared.TransactionContext, institute *donation.Institute) error {
	m.SaveCallCount++
	if _, exists := m.institutes[institute.InstituteID().String()]; exists {
		return donation.ErrInstituteAlreadyExists
	}
	m.institutes[institute.InstituteID().String()] = &mockInstitute{
		name:          institute.Name(),
		pointsGoal:    institute.PointsGoal().Value(),
		currentPoints: institute.CurrentPoints().Value(),
		createdAt:     institute.CreatedAt(),
	}
	return nil
}

func (m *MockInstituteRepository) FindByID(ctx shared.TransactionContext, instituteID donation.InstituteID) (*donation.Institute, error) {
	i, exists := m.institutes[instituteID.String()]
	if !exists {
		return nil, donation.ErrInstituteNotFound
	}
	return donation.ReconstructInstitute(
		instituteID, i.name, i.pointsGoal, i.currentPoints,
		i.createdAt, i.createdAt,
	)
}

func (m *MockInstituteRepository) FindAll(ctx shared.TransactionContext) ([]*donation.Institute, error) {
	ids := make([]string, 0, len(m.institutes))
	for id := range m.institutes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		return m.institutes[ids[a]].name < m.institutes[ids[b]].name
	})

	result := make([]*donation.Institute, 0, len(ids))
	for _, idStr := range ids {
		instituteID, _ := donation.InstituteIDFromString(idStr)
		reconstructed, err := m.FindByID(ctx, instituteID)
		if err != nil {
			return nil, err
		}
		result = append(result, reconstructed)
	}
	return result, nil
}

func (m *MockInstituteRepository) AddPoints(ctx shared.TransactionContext, instituteID donation.InstituteID, amount points.PointsAmount) (points.PointsAmount, error) {
	m.AddPointsCallCount++
	if m.AddPointsErr != nil {
		return points.PointsAmount{}, m.AddPointsErr
	}
	i, exists := m.institutes[instituteID.String()]
	if !exists {
		return points.PointsAmount{}, donation.ErrInstituteNotFound
	}
	i.currentPoints += amount.Value()
	return points.NewPointsAmount(i.currentPoints)
}

// ===========================
// Mock DonationRepository
// ===========================

type MockDonationRepository struct {
	Appended []*donation.Donation

	AppendErr error
}

func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{}
}

func (m *MockDonationRepository) Append(ctx shared.TransactionContext, d *donation.Donation) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Appended = append(m.Appended, d)
	return nil
}

func (m *MockDonationRepository) FindByMemberID(ctx shared.TransactionContext, memberID donation.MemberID) ([]*donation.Donation, error) {
	var result []*donation.Donation
	for _, d := range m.Appended {
		if d.MemberID().Equals(memberID) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *MockDonationRepository) FindByInstituteID(ctx shared.TransactionContext, instituteID donation.InstituteID) ([]*donation.Donation, error) {
	var result []*donation.Donation
	for _, d := range m.Appended {
		if d.InstituteID().Equals(instituteID) {
			result = append(result, d)
		}
	}
	return result, nil
}

// ===========================
// Mock PointsAccountRepository
// ===========================

type MockPointsAccountRepository struct {
	earned map[string]int
	used   map[string]int

	DeductCallCount int
}

func NewMockPointsAccountRepository() *MockPointsAccountRepository {
	return &MockPointsAccountRepository{
		earned: make(map[string]int),
		used:   make(map[string]int),
	}
}

func (m *MockPointsAccountRepository) SeedAccount(memberID identity.MemberID, earned, used int) {
	m.earned[memberID.String()] = earned
	m.used[memberID.String()] = used
}

// Available 讀取 mock 中的可用積分
func (m *MockPointsAccountRepository) Available(memberID identity.MemberID) int {
	return m.earned[memberID.String()] - m.used[memberID.String()]
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
	if _, exists := m.earned[memberID.String()]; !exists {
		return points.ErrAccountNotFound
	}
	m.earned[memberID.String()] += amount.Value()
	return nil
}

func (m *MockPointsAccountRepository) DeductAvailable(ctx shared.TransactionContext, memberID identity.MemberID, amount points.PointsAmount) error {
	m.DeductCallCount++
	if _, exists := m.earned[memberID.String()]; !exists {
		return points.ErrAccountNotFound
	}
	if m.Available(memberID) < amount.Value() {
		return points.ErrInsufficientPoints.WithContext(
			"requested", amount.Value(),
			"available", m.Available(memberID),
		)
	}
	m.used[memberID.String()] += amount.Value()
	return nil
}

// ===========================
// Mock TransactionManager / EventPublisher / AdminAuthorizer
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

// EventTypes 列出已發布事件的類型
func (m *MockEventPublisher) EventTypes() []string {
	types := make([]string, 0, len(m.Published))
	for _, e := range m.Published {
		types = append(types, e.EventType())
	}
	return types
}

type MockAdminAuthorizer struct {
	admins map[string]bool
}

func NewMockAdminAuthorizer(adminIDs ...identity.MemberID) *MockAdminAuthorizer {
	admins := make(map[string]bool)
	for _, id := range adminIDs {
		admins[id.String()] = true
	}
	return &MockAdminAuthorizer{admins: admins}
}

func (m *MockAdminAuthorizer) IsAdmin(actorID identity.MemberID) (bool, error) {
	return m.admins[actorID.String()], nil
}
