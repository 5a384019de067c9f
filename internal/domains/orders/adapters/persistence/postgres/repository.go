package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	customerdomain "github.com/storelabs/commerce-api/internal/domains/customers/domain"
	"github.com/storelabs/commerce-api/internal/domains/orders/domain"
	"github.com/storelabs/commerce-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID string    `gorm:"column:customer_id;type:uuid;index"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	OrderID   string  `gorm:"primaryKey;column:order_id;type:uuid"`
	ProductID string  `gorm:"primaryKey;column:product_id;type:uuid"`
	Price     float64 `gorm:"column:price"`
	Quantity  int32   `gorm:"column:quantity"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// customerRow is a read-only projection of the customers table used to
// rehydrate the order's customer reference.
type customerRow struct {
	ID    string
	Name  string
	Email string
}

// Create inserts the order and its items in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	record := orderRecord{ID: clone.ID, CustomerID: clone.Customer.ID}
	items := make([]orderItemRecord, 0, len(clone.Items))
	for _, item := range clone.Items {
		items = append(items, orderItemRecord{
			OrderID:   clone.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, clone.ID)
}

// GetByID fetches an order with its items and customer reference.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var itemRecords []orderItemRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Find(&itemRecords).Error; err != nil {
		return nil, err
	}
	var customer customerRow
	if err := r.db.WithContext(ctx).Table("customers").Where("id = ?", record.CustomerID).Take(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	items := make([]domain.OrderItem, 0, len(itemRecords))
	for _, item := range itemRecords {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return &domain.Order{
		ID:        record.ID,
		Customer:  customerdomain.Customer{ID: customer.ID, Name: customer.Name, Email: customer.Email},
		Items:     items,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Delete removes an order and its items. Compensating write for a failed
// stock decrement.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderItemRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&orderRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
