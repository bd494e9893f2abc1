package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/garagehub/backend/internal/domain/garage"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements garage.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create creates a new customer
func (r *GormCustomerRepository) Create(ctx context.Context, customer *garage.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update updates an existing customer
func (r *GormCustomerRepository) Update(ctx context.Context, customer *garage.Customer) error {
	result := r.db.WithContext(ctx).Omit("Vehicles").Save(customer)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a customer by ID
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&garage.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*garage.Customer, error) {
	var customer garage.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByIDWithVehicles finds a customer with vehicles preloaded
func (r *GormCustomerRepository) FindByIDWithVehicles(ctx context.Context, id uuid.UUID) (*garage.Customer, error) {
	var customer garage.Customer
	if err := r.db.WithContext(ctx).
		Preload("Vehicles").
		First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*garage.Customer, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&garage.Customer{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var customers []*garage.Customer
	if err := query.Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// ExistsByPhone checks if a customer with the given phone exists
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&garage.Customer{}).
		Where("phone = ?", strings.TrimSpace(phone)).
		Count(&count).Error
	return count > 0, err
}

// CountVehicles counts vehicles registered to a customer
func (r *GormCustomerRepository) CountVehicles(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&garage.Vehicle{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

// GormVehicleRepository implements garage.VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *GormVehicleRepository) Create(ctx context.Context, vehicle *garage.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// Update updates an existing vehicle
func (r *GormVehicleRepository) Update(ctx context.Context, vehicle *garage.Vehicle) error {
	result := r.db.WithContext(ctx).Save(vehicle)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a vehicle by ID
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&garage.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a vehicle by ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*garage.Vehicle, error) {
	var vehicle garage.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindAll finds vehicles matching the filter
func (r *GormVehicleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*garage.Vehicle, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&garage.Vehicle{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("registration_no LIKE ? OR make LIKE ? OR model LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var vehicles []*garage.Vehicle
	if err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// ExistsByRegistrationNo checks if a vehicle with the given registration exists
func (r *GormVehicleRepository) ExistsByRegistrationNo(ctx context.Context, registrationNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&garage.Vehicle{}).
		Where("registration_no = ?", strings.ToUpper(strings.TrimSpace(registrationNo))).
		Count(&count).Error
	return count > 0, err
}

// GormWarrantyRepository implements garage.WarrantyRepository using GORM
type GormWarrantyRepository struct {
	db *gorm.DB
}

// NewGormWarrantyRepository creates a new GormWarrantyRepository
func NewGormWarrantyRepository(db *gorm.DB) *GormWarrantyRepository {
	return &GormWarrantyRepository{db: db}
}

// Create creates a new warranty
func (r *GormWarrantyRepository) Create(ctx context.Context, warranty *garage.Warranty) error {
	return r.db.WithContext(ctx).Create(warranty).Error
}

// Update updates an existing warranty
func (r *GormWarrantyRepository) Update(ctx context.Context, warranty *garage.Warranty) error {
	result := r.db.WithContext(ctx).Save(warranty)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a warranty by ID
func (r *GormWarrantyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&garage.Warranty{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a warranty by ID
func (r *GormWarrantyRepository) FindByID(ctx context.Context, id uuid.UUID) (*garage.Warranty, error) {
	var warranty garage.Warranty
	if err := r.db.WithContext(ctx).First(&warranty, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warranty, nil
}

// FindAll finds warranties matching the filter
func (r *GormWarrantyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*garage.Warranty, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&garage.Warranty{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var warranties []*garage.Warranty
	if err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&warranties).Error; err != nil {
		return nil, 0, err
	}
	return warranties, total, nil
}
