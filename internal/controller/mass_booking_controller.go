package controller

import (
	"fmt"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMassBookingController interface {
	RegisterRoutes(r fiber.Router)
	Book(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	AdminStatus(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	CreatePayment(ctx *fiber.Ctx) error
	MarkPaid(ctx *fiber.Ctx) error
}

type massBookingController struct {
	service service.IMassBookingService
	auth    fiber.Handler
}

func NewMassBookingController(service service.IMassBookingService, auth fiber.Handler) IMassBookingController {
	return &massBookingController{service: service, auth: auth}
}

func (c *massBookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/book")
	h.Use(c.auth)
	h.Post("/massForm", c.Book)
	h.Get("/status", c.Status)
	h.Get("/admin/status", c.AdminStatus)
	h.Patch("/admin/update-status", c.UpdateStatus)
	h.Post("/create-mass-payment", c.CreatePayment)
	h.Post("/mass-mark-paid", c.MarkPaid)
}

func (c *massBookingController) Book(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}
	if !caller.IsVerified {
		return apperror.Authorization("user not verified")
	}

	var req dto.CreateMassBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), caller, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Mass booking submitted successfully", res))
}

func (c *massBookingController) Status(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListOwn(ctx.UserContext(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get mass bookings", res))
}

func (c *massBookingController) AdminStatus(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListAll(ctx.UserContext(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get mass bookings", res))
}

func (c *massBookingController) UpdateStatus(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateMassStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Mass ID and status are required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.UserContext(), caller, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(fmt.Sprintf("Mass booking %s successfully", req.Status), res))
}

func (c *massBookingController) CreatePayment(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.MassIdRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Mass ID required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreatePayment(ctx.UserContext(), caller, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment intent created", res))
}

func (c *massBookingController) MarkPaid(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.MarkMassPaidRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Mass ID and payment ID required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.MarkPaid(ctx.UserContext(), caller, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment successful", res))
}
