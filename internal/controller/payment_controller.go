package controller

import (
	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Notification(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
	log     logger.ILogger
}

func NewPaymentController(service service.IPaymentService, log logger.ILogger) IPaymentController {
	return &paymentController{service: service, log: log}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	h.Post("/midtrans/notification", c.Notification)
}

// Notification is called by the provider, not by a browser. Any non-2xx reply
// makes the provider retry, so only storage failures surface as errors.
func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransNotification
	if err := ctx.BodyParser(&req); err != nil {
		c.log.Warn("PAYMENT", "Unreadable notification body", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification body")
	}

	if err := c.service.HandleNotification(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notification processed", nil))
}
