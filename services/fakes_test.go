package services

import (
	"context"
	"errors"

	"salesproject-backend/apperr"
	"salesproject-backend/clients"
	"salesproject-backend/models"
)

type fakeCustomers struct {
	rows    map[string]models.Customer
	findErr error
	saved   []models.Customer
}

func newFakeCustomers(rows ...models.Customer) *fakeCustomers {
	f := &fakeCustomers{rows: map[string]models.Customer{}}
	for _, r := range rows {
		f.rows[r.TaxID] = r
	}
	return f
}

func (f *fakeCustomers) FindByTaxID(_ context.Context, taxID string) (*models.Customer, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.rows[taxID]
	if !ok {
		return nil, apperr.NotFound("customer %s not found", taxID)
	}
	return &c, nil
}

func (f *fakeCustomers) Save(_ context.Context, c *models.Customer) error {
	f.rows[c.TaxID] = *c
	f.saved = append(f.saved, *c)
	return nil
}

func (f *fakeCustomers) List(context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

type fakeCEP struct {
	details *clients.CEPDetails
	err     error
	calls   []string
}

func (f *fakeCEP) Lookup(_ context.Context, cep string) (*clients.CEPDetails, error) {
	f.calls = append(f.calls, cep)
	return f.details, f.err
}

type fakeOrders struct {
	rows []models.Order
}

func (f *fakeOrders) FindByCustomerTaxID(_ context.Context, taxID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.rows {
		if o.CustomerTaxID == taxID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) Save(_ context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = "generated"
	}
	f.rows = append(f.rows, *o)
	return nil
}

type fakeUsers struct {
	rows map[string]models.User
	err  error
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.rows[username]
	if !ok {
		return nil, apperr.NotFound("user %s not found", username)
	}
	return &u, nil
}

var errBoom = errors.New("boom")
