package catalog

import (
	"time"

	"github.com/jackyeh168/walk_rewards/src/internal/domain/points"
	"github.com/jackyeh168/walk_rewards/src/internal/domain/shared"
)

// ===========================
// 實體 ID
// ===========================

// ItemMarker 是 ItemID 的標記類型
type ItemMarker struct{}

// ItemID 商品的唯一標識符
type ItemID = shared.EntityID[ItemMarker]

// NewItemID 生成新的商品 ID（UUID v4）
func NewItemID() ItemID {
	return shared.NewEntityID[ItemMarker]()
}

// ItemIDFromString 從字串解析商品 ID
func ItemIDFromString(s string) (ItemID, error) {
	return shared.EntityIDFromString[ItemMarker](s, ErrInvalidItemID)
}

// SellerMarker 是 SellerID 的標記類型
type SellerMarker struct{}

// SellerID 賣家的唯一標識符
type SellerID = shared.EntityID[SellerMarker]

// NewSellerID 生成新的賣家 ID（UUID v4）
func NewSellerID() SellerID {
	return shared.NewEntityID[SellerMarker]()
}

// SellerIDFromString 從字串解析賣家 ID
func SellerIDFromString(s string) (SellerID, error) {
	return shared.EntityIDFromString[SellerMarker](s, ErrInvalidSellerID)
}

// ===========================
// ItemKind 商品種類
// ===========================

// ItemKind 商品種類枚舉
type ItemKind string

const (
	// ItemKindProduct 一般商品：庫存僅供展示，結帳不扣庫存
	// （賣家自行補貨/接單，引擎不追蹤其存量）
	ItemKindProduct ItemKind = "product"

	// ItemKindReward 兌換品：庫存受引擎嚴格控管，
	// 結帳時以條件式扣減保證 stock >= 0
	ItemKindReward ItemKind = "reward"
)

// IsValid 判斷是否為合法的商品種類
func (k ItemKind) IsValid() bool {
	return k == ItemKindProduct || k == ItemKindReward
}

// UnlimitedStock 「無上限庫存」哨兵值
//
// product 類商品可標記為無上限：永遠視為庫存充足、永不扣減。
// reward 類商品不允許使用哨兵（兌換品必須有精確存量）。
const UnlimitedStock = -1

// ===========================
// CatalogItem 實體
// ===========================

// CatalogItem 商品目錄項
//
// 業務不變條件：
// - reward: stock >= 0（由結帳路徑的條件式扣減維護）
// - product: stock >= 0 或 UnlimitedStock
// - unitPointCost > 0
//
// 庫存只會被成功提交的結帳扣減；引擎內沒有補貨路徑
// （補貨屬於賣家後台，超出此核心範圍）。
type CatalogItem struct {
	itemID        ItemID
	sellerID      SellerID
	kind          ItemKind
	unitPointCost points.PointsAmount
	stock         int

	createdAt time.Time
	updatedAt time.Time
}

// NewCatalogItem 創建商品
func NewCatalogItem(
	sellerID SellerID,
	kind ItemKind,
	unitPointCost points.PointsAmount,
	stock int,
) (*CatalogItem, error) {
	if sellerID.IsEmpty() {
		return nil, ErrInvalidSellerID
	}

	if !kind.IsValid() {
		return nil, ErrInvalidItemKind.WithContext("kind", string(kind))
	}

	if unitPointCost.IsZero() {
		return nil, points.ErrInvalidAmount.WithContext(
			"reason", "unit point cost must be positive",
		)
	}

	if err := validateStock(kind, stock); err != nil {
		return nil, err
	}

	now := time.Now()
	return &CatalogItem{
		itemID:        NewItemID(),
		sellerID:      sellerID,
		kind:          kind,
		unitPointCost: unitPointCost,
		stock:         stock,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func validateStock(kind ItemKind, stock int) error {
	if stock == UnlimitedStock {
		// 只有 product 可以無上限
		if kind != ItemKindProduct {
			return ErrInvalidStock.WithContext(
				"reason", "reward items must carry an exact stock count",
			)
		}
		return nil
	}
	if stock < 0 {
		return ErrInvalidStock.WithContext("stock", stock)
	}
	return nil
}

// ===========================
// 查詢方法
// ===========================

// ItemID 獲取商品 ID
func (i *CatalogItem) ItemID() ItemID {
	return i.itemID
}

// SellerID 獲取賣家 ID
func (i *CatalogItem) SellerID() SellerID {
	return i.sellerID
}

// Kind 獲取商品種類
func (i *CatalogItem) Kind() ItemKind {
	return i.kind
}

// UnitPointCost 獲取單價（點數）
func (i *CatalogItem) UnitPointCost() points.PointsAmount {
	return i.unitPointCost
}

// Stock 獲取庫存（可能為 UnlimitedStock 哨兵）
func (i *CatalogItem) Stock() int {
	return i.stock
}

// CreatedAt 獲取創建時間
func (i *CatalogItem) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt 獲取最後更新時間
func (i *CatalogItem) UpdatedAt() time.Time {
	return i.updatedAt
}

// HasUnlimitedStock 判斷是否為無上限庫存
func (i *CatalogItem) HasUnlimitedStock() bool {
	return i.stock == UnlimitedStock
}

// RequiresStockDecrement 判斷結帳時是否需要扣減庫存
//
// 只有 reward 走條件式扣減；product 的庫存是展示值。
func (i *CatalogItem) RequiresStockDecrement() bool {
	return i.kind == ItemKindReward
}

// CanSatisfy 判斷當前快照下庫存是否足夠（advisory）
//
// 注意：這是事務外的預檢，提交時刻的真正保證
// 由 Repository.DecrementStock 的條件式 UPDATE 守住。
func (i *CatalogItem) CanSatisfy(quantity int) bool {
	if quantity < 1 {
		return false
	}
	if i.HasUnlimitedStock() {
		return true
	}
	if !i.RequiresStockDecrement() {
		// product 的有限庫存仍作預檢，但不會被扣減
		return i.stock >= quantity
	}
	return i.stock >= quantity
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructCatalogItem 從持久化存儲重建商品
func ReconstructCatalogItem(
	itemID ItemID,
	sellerID SellerID,
	kind ItemKind,
	unitPointCost int,
	stock int,
	createdAt time.Time,
	updatedAt time.Time,
) (*CatalogItem, error) {
	if itemID.IsEmpty() {
		return nil, ErrInvalidItemID
	}

	if !kind.IsValid() {
		return nil, ErrInvalidItemKind.WithContext("kind", string(kind))
	}

	cost, err := points.NewPointsAmount(unitPointCost)
	if err != nil {
		return nil, err
	}

	if err := validateStock(kind, stock); err != nil {
		return nil, err
	}

	return &CatalogItem{
		itemID:        itemID,
		sellerID:      sellerID,
		kind:          kind,
		unitPointCost: cost,
		stock:         stock,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}
