package dto

import (
	"salesproject-backend/models"
)

type OrderView struct {
	ID        string       `json:"id"`
	Cliente   CustomerView `json:"cliente"`
	Status    string       `json:"status"`
	Descricao string       `json:"descricao"`
}

// OrderForm is the body of POST /pedidos/save.
type OrderForm struct {
	Cpf       string `json:"cpf" form:"cpf" validate:"required"`
	Status    string `json:"status" form:"status" validate:"required,oneof=PENDENTE_ENVIO ENVIO_EM_PROCESSAMENTO FINALIZADO"`
	Descricao string `json:"descricao" form:"descricao" validate:"max=2000"`
}

func OrderViewFrom(o models.Order, customer CustomerView) OrderView {
	return OrderView{
		ID:        o.ID,
		Cliente:   customer,
		Status:    string(o.Status),
		Descricao: o.Description,
	}
}

func OrderViewsFrom(orders []models.Order, customer CustomerView) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderViewFrom(o, customer))
	}
	return out
}
