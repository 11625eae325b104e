package transfer

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/transfer"
)

// ===========================
// Mock PointTransferRepository
// ===========================

type mockTransfer struct {
	senderID    identity.MemberID
	receiverID  identity.MemberID
	amount      int
	status      transfer.TransferStatus
	createdAt   time.Time
	respondedAt *time.Time
}

type MockPointTransferRepository struct {
	transfers map[string]*mockTransfer

	SaveCallCount         int
	MarkAcceptedCallCount int
	MarkRejectedCallCount int
}

func NewMockPointTransferRepository() *MockPointTransferRepository {
	return &MockPointTransferRepository{
		transfers: make(map[string]*mockTransfer),
	}
}

// Status 讀取 mock 中的轉讓狀態
func (m *MockPointTransferRepository) Status(transferID transfer.TransferID) transfer.TransferStatus {
	if t, ok := m.transfers[transferID.String()]; ok {
		return t.status
	}
	return ""
}

func (m *MockPointTransferRepository) Save(ctx shared.TransactionContext, t *transfer.PointTransfer) error {
	m.SaveCallCount++
	if _, exists := m.transfers[t.TransferID().String()]; exists {
		return transfer.ErrTransferAlreadyExists
	}
	m.transfers[t.TransferID().String()] = &mockTransfer{
		senderID:   t.SenderID(),
		receiverID: t.ReceiverID(),
		amount:     t.Amount().Value(),
		status:     t.Status(),
		createdAt:  t.CreatedAt(),
	}
	return nil
}

func (m *MockPointTransferRepository) FindByID(ctx shared.TransactionContext, transferID transfer.TransferID) (*transfer.PointTransfer, error) {
	t, exists := m.transfers[transferID.String()]
	if !exists {
		return nil, transfer.ErrTransferNotFound
	}
	return transfer.ReconstructPointTransfer(
		transferID, t.senderID, t.receiverID, t.amount, t.status,
		t.createdAt, t.respondedAt,
	)
}

func (m *MockPointTransferRepository) FindPendingByReceiver(ctx shared.TransactionContext, receiverID identity.MemberID) ([]*transfer.PointTransfer, error) {
	var result []*transfer.PointTransfer
	for idStr, t := range m.transfers {
		if t.status != transfer.TransferStatusPending || !t.receiverID.Equals(receiverID) {
			continue
		}
		transferID, _ := transfer.TransferIDFromString(idStr)
		reconstructed, err := transfer.ReconstructPointTransfer(
			transferID, t.senderID, t.receiverID, t.amount, t.status,
			t.createdAt, t.respondedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, reconstructed)
	}
	return result, nil
}

func (m *MockPointTransferRepository) MarkAccepted(ctx shared.TransactionContext, transferID transfer.TransferID, respondedAt time.Time) error {
	m.MarkAcceptedCallCount++
	return m.mark(transferID, transfer.TransferStatusAccepted, respondedAt)
}

func (m *MockPointTransferRepository) MarkRejected(ctx shared.TransactionContext, transferID transfer.TransferID, respondedAt time.Time) error {
	m.MarkRejectedCallCount++
	return m.mark(transferID, transfer.TransferStatusRejected, respondedAt)
}

func (m *MockPointTransferRepository) mark(transferID transfer.TransferID, status transfer.TransferStatus, respondedAt time.Time) error {
	t, exists := m.transfers[transferID.String()]
	if !exists {
		return transfer.ErrTransferNotFound
	}
	if t.status != transfer.TransferStatusPending {
		return transfer.ErrAlreadyResponded
	}
	t.status = status
	t.respondedAt = &respondedAt
	return nil
}

// ===========================
// Mock PointsAccountRepository
// ===========================

type MockPointsAccountRepository struct {
	earned map[string]int
	used   map[string]int

	DeductCallCount int
	CreditCallCount int
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

// EventTypes 已發布事件的類型列表（按發布順序）
func (m *MockEventPublisher) EventTypes() []string {
	types := make([]string, 0, len(m.Published))
	for _, e := range m.Published {
		types = append(types, e.EventType())
	}
	return types
}
