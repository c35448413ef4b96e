package dto

import (
	"salesproject-backend/clients"
	"salesproject-backend/models"
)

// CustomerView is the flattened customer used by pages and JSON responses: the
// persisted fields plus the transient address enrichment.
type CustomerView struct {
	Cpf         string `json:"cpf" form:"cpf" validate:"required"`
	Nome        string `json:"nome" form:"nome"`
	Cep         string `json:"cep" form:"cep"`
	Numero      string `json:"numero" form:"numero"`
	Complemento string `json:"complemento" form:"complemento"`
	Telefone    string `json:"telefone" form:"telefone"`
	Logradouro  string `json:"logradouro" form:"logradouro"`
	Bairro      string `json:"bairro" form:"bairro"`
	Localidade  string `json:"localidade" form:"localidade"`
	Estado      string `json:"estado" form:"estado"`
}

// EmptyCustomerView is the placeholder shown for a tax-id with no stored customer.
func EmptyCustomerView(cpf string) CustomerView {
	return CustomerView{Cpf: cpf}
}

func CustomerViewFrom(c *models.Customer) CustomerView {
	if c == nil {
		return CustomerView{}
	}
	return CustomerView{
		Cpf:         c.TaxID,
		Nome:        c.Name,
		Cep:         c.PostalCode,
		Numero:      c.AddressNumber,
		Complemento: c.CompleteAddress,
		Telefone:    c.Phone,
	}
}

// EnrichWith copies the address fields of d into a copy of v. A nil or empty d
// returns v unchanged.
func (v CustomerView) EnrichWith(d *clients.CEPDetails) CustomerView {
	if d.Empty() {
		return v
	}
	v.Logradouro = d.Street
	v.Bairro = d.Neighborhood
	v.Localidade = d.City
	v.Estado = d.State
	return v
}

// ToEntity keeps only the persisted fields.
func (v CustomerView) ToEntity() *models.Customer {
	return &models.Customer{
		TaxID:           v.Cpf,
		Name:            v.Nome,
		PostalCode:      v.Cep,
		AddressNumber:   v.Numero,
		CompleteAddress: v.Complemento,
		Phone:           v.Telefone,
	}
}
