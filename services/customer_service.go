package services

import (
	"context"
	"errors"
	"strings"

	"salesproject-backend/apperr"
	"salesproject-backend/clients"
	"salesproject-backend/dto"
	"salesproject-backend/models"
	"salesproject-backend/utils"

	zlog "github.com/rs/zerolog/log"
)

type CustomerStore interface {
	FindByTaxID(ctx context.Context, taxID string) (*models.Customer, error)
	Save(ctx context.Context, c *models.Customer) error
	List(ctx context.Context) ([]models.Customer, error)
}

type CustomerService struct {
	customers CustomerStore
	cep       clients.CEPLookup
}

func NewCustomerService(customers CustomerStore, cep clients.CEPLookup) *CustomerService {
	return &CustomerService{customers: customers, cep: cep}
}

func (s *CustomerService) FindByTaxID(ctx context.Context, taxID string) (*models.Customer, error) {
	return s.customers.FindByTaxID(ctx, taxID)
}

func (s *CustomerService) SaveOrUpdate(ctx context.Context, c *models.Customer) error {
	return s.customers.Save(ctx, c)
}

func (s *CustomerService) List(ctx context.Context) ([]dto.CustomerView, error) {
	list, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerView, 0, len(list))
	for i := range list {
		out = append(out, dto.CustomerViewFrom(&list[i]))
	}
	return out, nil
}

// Detail returns the customer view for taxID. A missing customer yields a view
// holding only the tax-id. When the view has a postal code the address is
// enriched from the CEP service; lookup failures leave the view as it is.
func (s *CustomerService) Detail(ctx context.Context, taxID string) (dto.CustomerView, error) {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return dto.CustomerView{}, apperr.InvalidField("cpf", "is required")
	}

	var view dto.CustomerView
	c, err := s.customers.FindByTaxID(ctx, taxID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		view = dto.EmptyCustomerView(taxID)
	case err != nil:
		return dto.CustomerView{}, err
	default:
		view = dto.CustomerViewFrom(c)
	}

	if view.Cep == "" || s.cep == nil {
		return view, nil
	}
	details, err := s.cep.Lookup(ctx, view.Cep)
	if err != nil {
		zlog.Warn().Err(err).Str("cep", view.Cep).Msg("cep enrichment skipped")
		return view, nil
	}
	return view.EnrichWith(details), nil
}

// Save persists the stored part of view; enrichment fields are dropped.
func (s *CustomerService) Save(ctx context.Context, view dto.CustomerView) (dto.CustomerView, error) {
	utils.NormalizeDTO(&view)
	if view.Cpf == "" {
		return dto.CustomerView{}, apperr.InvalidField("cpf", "is required")
	}
	entity := view.ToEntity()
	if err := s.customers.Save(ctx, entity); err != nil {
		return dto.CustomerView{}, err
	}
	zlog.Info().Str("cpf", entity.TaxID).Msg("customer saved")
	return dto.CustomerViewFrom(entity), nil
}
