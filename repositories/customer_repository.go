package repositories

import (
	"context"
	"errors"

	"salesproject-backend/apperr"
	"salesproject-backend/database"
	"salesproject-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) FindByTaxID(ctx context.Context, taxID string) (*models.Customer, error) {
	var c models.Customer
	if err := database.Conn(ctx, r.db).First(&c, "tax_id = ?", taxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer %s not found", taxID)
		}
		return nil, apperr.Wrap(err, "find customer")
	}
	return &c, nil
}

// Save inserts the customer or overwrites every column of an existing row with the same tax-id.
func (r *CustomerRepository) Save(ctx context.Context, c *models.Customer) error {
	err := database.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tax_id"}},
			UpdateAll: true,
		}).
		Create(c).Error
	return apperr.Wrap(err, "save customer")
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := database.Conn(ctx, r.db).Order("name ASC, tax_id ASC").Find(&out).Error
	return out, apperr.Wrap(err, "list customers")
}
