package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements inventory.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create creates a new product
func (r *GormProductRepository) Create(ctx context.Context, product *inventory.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update updates an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *inventory.Product) error {
	result := r.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	var product inventory.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Product, error) {
	var product inventory.Product
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Product, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&inventory.Product{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("sku LIKE ? OR name LIKE ? OR brand LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var products []*inventory.Product
	if err := query.Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.Product{}).
		Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		Count(&count).Error
	return count > 0, err
}

// GormWarehouseRepository implements inventory.WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// Create creates a new warehouse
func (r *GormWarehouseRepository) Create(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

// Update updates an existing warehouse
func (r *GormWarehouseRepository) Update(ctx context.Context, warehouse *inventory.Warehouse) error {
	result := r.db.WithContext(ctx).Save(warehouse)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a warehouse by ID
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Warehouse{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a warehouse by ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	var warehouse inventory.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindAll finds warehouses matching the filter
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Warehouse, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&inventory.Warehouse{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR address LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var warehouses []*inventory.Warehouse
	if err := query.Order("code ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&warehouses).Error; err != nil {
		return nil, 0, err
	}
	return warehouses, total, nil
}

// MaxCode returns the highest warehouse sequence code, 0 when none exist
func (r *GormWarehouseRepository) MaxCode(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&inventory.Warehouse{}).
		Select("MAX(code)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// ExistsByID checks if a warehouse with the given ID exists
func (r *GormWarehouseRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.Warehouse{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// GormStockTransactionRepository implements inventory.StockTransactionRepository using GORM
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// Create creates a ledger entry
func (r *GormStockTransactionRepository) Create(ctx context.Context, entry *inventory.StockTransaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Delete deletes a ledger entry by ID
func (r *GormStockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockTransaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a ledger entry by ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	var entry inventory.StockTransaction
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds ledger entries matching the filter
func (r *GormStockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.StockTransaction, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reference LIKE ? OR note LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var entries []*inventory.StockTransaction
	if err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// FindByProduct finds all ledger entries for a product
func (r *GormStockTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.StockTransaction, error) {
	var entries []*inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumQuantity returns the signed sum of entries for a product at one warehouse
func (r *GormStockTransactionRepository) SumQuantity(ctx context.Context, productID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	return r.sumSigned(ctx, r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID))
}

// SumQuantityAllWarehouses returns the signed sum for a product across all warehouses
func (r *GormStockTransactionRepository) SumQuantityAllWarehouses(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	return r.sumSigned(ctx, r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("product_id = ?", productID))
}

func (r *GormStockTransactionRepository) sumSigned(ctx context.Context, query *gorm.DB) (decimal.Decimal, error) {
	var sum *string
	err := query.
		Select("SUM(CASE WHEN direction = 'out' THEN -quantity ELSE quantity END)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if sum == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*sum)
}

// CountByWarehouse counts ledger entries referencing a warehouse
func (r *GormStockTransactionRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("warehouse_id = ?", warehouseID).
		Count(&count).Error
	return count, err
}

// GormStockTransferRepository implements inventory.StockTransferRepository using GORM
type GormStockTransferRepository struct {
	db *gorm.DB
}

// NewGormStockTransferRepository creates a new GormStockTransferRepository
func NewGormStockTransferRepository(db *gorm.DB) *GormStockTransferRepository {
	return &GormStockTransferRepository{db: db}
}

// Create creates a transfer record
func (r *GormStockTransferRepository) Create(ctx context.Context, transfer *inventory.StockTransfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

// Delete deletes a transfer record by ID
func (r *GormStockTransferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockTransfer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a transfer record by ID
func (r *GormStockTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransfer, error) {
	var transfer inventory.StockTransfer
	if err := r.db.WithContext(ctx).First(&transfer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindAll finds transfer records matching the filter
func (r *GormStockTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.StockTransfer, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&inventory.StockTransfer{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var transfers []*inventory.StockTransfer
	if err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&transfers).Error; err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}
