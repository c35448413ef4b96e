package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPendingShipment    OrderStatus = "PENDENTE_ENVIO"
	OrderShipmentInProgress OrderStatus = "ENVIO_EM_PROCESSAMENTO"
	OrderCompleted          OrderStatus = "FINALIZADO"
)

// OrderStatuses lists every accepted status. Transitions between them are not restricted.
var OrderStatuses = []OrderStatus{OrderPendingShipment, OrderShipmentInProgress, OrderCompleted}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;size:36"`
	CustomerTaxID string      `json:"cpf" gorm:"size:20;not null;index"`
	Customer      *Customer   `json:"-" gorm:"foreignKey:CustomerTaxID;references:TaxID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(30);not null"`
	Description   string      `json:"descricao" gorm:"type:text"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	return
}
