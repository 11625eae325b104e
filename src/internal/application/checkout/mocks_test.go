package checkout

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/catalog"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/identity"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/order"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

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
// Mock CatalogItemRepository
// ===========================

type mockItem struct {
	sellerID catalog.SellerID
	kind     catalog.ItemKind
	cost     int
	stock    int
}

type MockCatalogItemRepository struct {
	items map[string]*mockItem

	DecrementCallCount int
}

func NewMockCatalogItemRepository() *MockCatalogItemRepository {
	return &MockCatalogItemRepository{
		items: make(map[string]*mockItem),
	}
}

// SeedItem 預置一個目錄品項，返回其 ID
func (m *MockCatalogItemRepository) SeedItem(
	sellerID catalog.SellerID, kind catalog.ItemKind, cost, stock int,
) catalog.ItemID {
	itemID := catalog.NewItemID()
	m.items[itemID.String()] = &mockItem{
		sellerID: sellerID,
		kind:     kind,
		cost:     cost,
		stock:    stock,
	}
	return itemID
}

// Stock 讀取 mock 中的庫存
func (m *MockCatalogItemRepository) Stock(itemID catalog.ItemID) int {
	if item, ok := m.items[itemID.String()]; ok {
		return item.stock
	}
	return 0
}

func (m *MockCatalogItemRepository) reconstruct(itemID catalog.ItemID, item *mockItem) (*catalog.CatalogItem, error) {
	return catalog.ReconstructCatalogItem(
		itemID, item.sellerID, item.kind, item.cost, item.stock,
		time.Now(), time.Now(),
	)
}

func (m *MockCatalogItemRepository) Save(ctx shared.TransactionContext, item *catalog.CatalogItem) error {
	m.items[item.ItemID().String()] = &mockItem{
		sellerID: item.SellerID(),
		kind:     item.Kind(),
		cost:     item.UnitPointCost().Value(),
		stock:    item.Stock(),
	}
	return nil
}

func (m *MockCatalogItemRepository) FindByID(ctx shared.TransactionContext, itemID catalog.ItemID) (*catalog.CatalogItem, error) {
	item, exists := m.items[itemID.String()]
	if !exists {
		return nil, catalog.ErrItemNotFound.WithContext("item_id", itemID.String())
	}
	return m.reconstruct(itemID, item)
}

func (m *MockCatalogItemRepository) FindByIDs(ctx shared.TransactionContext, itemIDs []catalog.ItemID) ([]*catalog.CatalogItem, error) {
	result := make([]*catalog.CatalogItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, exists := m.items[itemID.String()]
		if !exists {
			return nil, catalog.ErrItemNotFound.WithContext("item_id", itemID.String())
		}
		reconstructed, err := m.reconstruct(itemID, item)
		if err != nil {
			return nil, err
		}
		result = append(result, reconstructed)
	}
	return result, nil
}

func (m *MockCatalogItemRepository) DecrementStock(ctx shared.TransactionContext, itemID catalog.ItemID, quantity int) error {
	m.DecrementCallCount++
	item, exists := m.items[itemID.String()]
	if !exists {
		return catalog.ErrItemNotFound.WithContext("item_id", itemID.String())
	}
	if item.stock < quantity {
		return catalog.ErrOutOfStock.WithContext("item_id", itemID.String())
	}
	item.stock -= quantity
	return nil
}

// ===========================
// Mock OrderRepository
// ===========================

type MockOrderRepository struct {
	Orders map[string]*order.Order

	SaveCallCount         int
	UpdateStatusCallCount int
	UpdateStatusErr       error
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		Orders: make(map[string]*order.Order),
	}
}

func (m *MockOrderRepository) Save(ctx shared.TransactionContext, o *order.Order) error {
	m.SaveCallCount++
	if _, exists := m.Orders[o.OrderID().String()]; exists {
		return order.ErrOrderAlreadyExists
	}
	m.Orders[o.OrderID().String()] = o
	return nil
}

func (m *MockOrderRepository) FindByID(ctx shared.TransactionContext, orderID order.OrderID) (*order.Order, error) {
	o, exists := m.Orders[orderID.String()]
	if !exists {
		return nil, order.ErrOrderNotFound
	}
	// 重建副本，模擬從持久層讀出（不共享聚合實例）
	return order.ReconstructOrder(
		o.OrderID(), o.MemberID(), o.SellerID(), o.Lines(),
		o.TotalPoints().Value(), o.Status(), o.CreatedAt(), o.UpdatedAt(),
	)
}

func (m *MockOrderRepository) FindByMemberID(ctx shared.TransactionContext, memberID identity.MemberID) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range m.Orders {
		if o.MemberID().Equals(memberID) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx shared.TransactionContext, orderID order.OrderID, from, to order.OrderStatus) error {
	m.UpdateStatusCallCount++
	if m.UpdateStatusErr != nil {
		return m.UpdateStatusErr
	}
	o, exists := m.Orders[orderID.String()]
	if !exists {
		return order.ErrOrderNotFound
	}
	if o.Status() != from {
		return shared.ErrConcurrentConflict
	}
	return o.TransitionTo(to)
}

// ===========================
// Mock TransactionManager / EventPublisher / IdempotencyStore
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

type MockIdempotencyStore struct {
	reserved map[string]bool
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{reserved: make(map[string]bool)}
}

func (m *MockIdempotencyStore) Reserve(key string) error {
	if m.reserved[key] {
		return ErrDuplicateRequest.WithContext("key", key)
	}
	m.reserved[key] = true
	return nil
}
