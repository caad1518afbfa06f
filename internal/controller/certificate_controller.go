package controller

import (
	"fmt"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICertificateController interface {
	RegisterRoutes(r fiber.Router)
	Request(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	AdminStatus(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	CreatePayment(ctx *fiber.Ctx) error
	MarkPaid(ctx *fiber.Ctx) error
	UploadPdf(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type certificateController struct {
	service service.ICertificateService
	auth    fiber.Handler
}

func NewCertificateController(service service.ICertificateService, auth fiber.Handler) ICertificateController {
	return &certificateController{service: service, auth: auth}
}

func (c *certificateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/certificate")
	h.Use(c.auth)
	h.Post("/request", c.Request)
	h.Get("/status", c.Status)
	h.Get("/admin/status", c.AdminStatus)
	h.Patch("/admin/update-status", c.UpdateStatus)
	h.Post("/create-payment", c.CreatePayment)
	h.Post("/mark-paid", c.MarkPaid)
	h.Post("/admin/upload-Pdf", c.UploadPdf)
	h.Get("/download/:certificateId", c.Download)
}

func (c *certificateController) Request(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	// unverified callers get 403 before any field is looked at
	if !caller.IsVerified {
		return apperror.Authorization("User not verified!")
	}
	var req dto.CreateCertificateRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Certificate request sent successfully", res))
}

func (c *certificateController) Status(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListOwn(ctx.UserContext(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get certificate requests", res))
}

func (c *certificateController) AdminStatus(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListAll(ctx.UserContext(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get certificate requests", res))
}

func (c *certificateController) UpdateStatus(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCertificateStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Certificate ID and status are required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.UserContext(), caller, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(fmt.Sprintf("Request %s successfully", req.Status), res))
}

func (c *certificateController) CreatePayment(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.CertificateIdRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Certificate ID required")
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

func (c *certificateController) MarkPaid(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.MarkCertificatePaidRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Certificate ID and payment ID required")
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

func (c *certificateController) UploadPdf(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperror.Authorization("Admin access only")
	}

	certificateId := ctx.FormValue("certificateId")
	header, err := ctx.FormFile("certificate")
	if err != nil || certificateId == "" {
		return apperror.Validation("Certificate ID and PDF required")
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.service.UploadPdf(ctx.UserContext(), caller, certificateId, header.Filename, file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Certificate PDF uploaded successfully", res))
}

func (c *certificateController) Download(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	body, filename, err := c.service.Download(ctx.UserContext(), caller, ctx.Params("certificateId"))
	if err != nil {
		return err
	}

	ctx.Attachment(filename)
	// fiber closes the stream once the response is written
	return ctx.SendStream(body)
}
