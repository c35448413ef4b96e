package controllers

import (
	"errors"
	"net/url"

	"salesproject-backend/apperr"
	"salesproject-backend/dto"
	"salesproject-backend/middlewares"
	"salesproject-backend/models"
	"salesproject-backend/services"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	orders *services.OrderService
	attrs  PageAttrs
}

func NewOrderController(orders *services.OrderService, attrs PageAttrs) *OrderController {
	return &OrderController{orders: orders, attrs: attrs}
}

// Index handles GET /pedidos.
func (oc *OrderController) Index(c *fiber.Ctx) error {
	return oc.attrs.render(c, "pedidos", fiber.Map{"statuses": models.OrderStatuses}, models.OrderStatuses)
}

// Detail handles GET /pedidos/detalhe/:cpf. Unknown or unnamed customers are
// sent to the customer form first.
func (oc *OrderController) Detail(c *fiber.Ctx) error {
	cpf, err := url.PathUnescape(c.Params("cpf"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cpf")
	}
	customer, orders, err := oc.orders.CustomerOrders(c.UserContext(), cpf)
	if errors.Is(err, apperr.ErrNotFound) {
		return c.Redirect("/clientes/detalhe/"+url.PathEscape(cpf), fiber.StatusFound)
	}
	if err != nil {
		return err
	}
	return oc.attrs.render(c, "detalhe-pedidos",
		fiber.Map{"cliente": customer, "pedidos": orders},
		fiber.Map{"cliente": customer, "pedidos": orders})
}

// Save handles POST /pedidos/save.
func (oc *OrderController) Save(c *fiber.Ctx) error {
	var form dto.OrderForm
	if err := middlewares.BindAndValidate(c, &form); err != nil {
		return err
	}
	order, err := oc.orders.Place(c.UserContext(), form)
	if err != nil {
		return err
	}
	return c.Redirect("/pedidos/detalhe/"+url.PathEscape(order.CustomerTaxID), fiber.StatusFound)
}
