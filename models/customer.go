package models

// Customer is keyed by the national tax-id (cpf). No format is enforced on the key.
type Customer struct {
	TaxID           string `json:"cpf" gorm:"primaryKey;size:20"`
	Name            string `json:"nome" gorm:"size:140"`
	PostalCode      string `json:"cep" gorm:"size:20"`
	AddressNumber   string `json:"numero" gorm:"size:20"`
	CompleteAddress string `json:"complemento" gorm:"size:255"`
	Phone           string `json:"telefone" gorm:"size:40"`
}
