package services

import (
	"context"
	"strings"

	"salesproject-backend/apperr"
	"salesproject-backend/dto"
	"salesproject-backend/models"
	"salesproject-backend/utils"
)

type OrderStore interface {
	FindByCustomerTaxID(ctx context.Context, taxID string) ([]models.Order, error)
	Save(ctx context.Context, o *models.Order) error
}

type OrderService struct {
	orders    OrderStore
	customers CustomerStore
}

func NewOrderService(orders OrderStore, customers CustomerStore) *OrderService {
	return &OrderService{orders: orders, customers: customers}
}

func (s *OrderService) FindByCustomerTaxID(ctx context.Context, taxID string) ([]models.Order, error) {
	return s.orders.FindByCustomerTaxID(ctx, taxID)
}

// CustomerOrders returns a registered customer with its orders. A customer that
// is missing or has no name is reported as not found.
func (s *OrderService) CustomerOrders(ctx context.Context, taxID string) (dto.CustomerView, []dto.OrderView, error) {
	c, err := s.customers.FindByTaxID(ctx, taxID)
	if err != nil {
		return dto.CustomerView{}, nil, err
	}
	if strings.TrimSpace(c.Name) == "" {
		return dto.CustomerView{}, nil, apperr.NotFound("customer %s is not registered", taxID)
	}

	orders, err := s.orders.FindByCustomerTaxID(ctx, taxID)
	if err != nil {
		return dto.CustomerView{}, nil, err
	}
	view := dto.CustomerViewFrom(c)
	return view, dto.OrderViewsFrom(orders, view), nil
}

// Place stores a new order for an existing customer. Any status of the
// enumeration is accepted.
func (s *OrderService) Place(ctx context.Context, form dto.OrderForm) (*models.Order, error) {
	utils.NormalizeDTO(&form)
	status := models.OrderStatus(form.Status)
	if !status.Valid() {
		return nil, apperr.InvalidField("status", "must be one of PENDENTE_ENVIO ENVIO_EM_PROCESSAMENTO FINALIZADO")
	}
	if _, err := s.customers.FindByTaxID(ctx, form.Cpf); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerTaxID: form.Cpf,
		Status:        status,
		Description:   form.Descricao,
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
