package repositories

import (
	"context"

	"salesproject-backend/apperr"
	"salesproject-backend/database"
	"salesproject-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{db: db} }

func (r *OrderRepository) FindByCustomerTaxID(ctx context.Context, taxID string) ([]models.Order, error) {
	var out []models.Order
	err := database.Conn(ctx, r.db).
		Where("customer_tax_id = ?", taxID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, apperr.Wrap(err, "find orders by customer")
}

func (r *OrderRepository) Save(ctx context.Context, o *models.Order) error {
	err := database.Conn(ctx, r.db).Omit(clause.Associations).Save(o).Error
	return apperr.Wrap(err, "save order")
}
