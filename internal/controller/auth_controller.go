package controller

import (
	"time"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	SendVerifyOtp(ctx *fiber.Ctx) error
	VerifyAccount(ctx *fiber.Ctx) error
	IsAuthenticated(ctx *fiber.Ctx) error
	SendResetOtp(ctx *fiber.Ctx) error
	ResetPassword(ctx *fiber.Ctx) error
}

// CookieSettings shapes the token cookie. Secure cookies are sent cross-site
// (SameSite=None); otherwise the cookie is same-site only.
type CookieSettings struct {
	Secure bool
	MaxAge time.Duration
}

type authController struct {
	service service.IAuthService
	auth    fiber.Handler
	cookie  CookieSettings
}

func NewAuthController(service service.IAuthService, auth fiber.Handler, cookie CookieSettings) IAuthController {
	return &authController{service: service, auth: auth, cookie: cookie}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Post("/send-verify-otp", c.auth, c.SendVerifyOtp)
	h.Post("/verify-account", c.auth, c.VerifyAccount)
	h.Get("/is-auth", c.auth, c.IsAuthenticated)
	h.Post("/send-reset-otp", c.SendResetOtp)
	h.Post("/reset-password", c.ResetPassword)
}

func (c *authController) setTokenCookie(ctx *fiber.Ctx, token string, expires time.Time) {
	sameSite := fiber.CookieSameSiteStrictMode
	if c.cookie.Secure {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.TokenCookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   c.cookie.Secure,
		SameSite: sameSite,
	})
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing details")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	c.setTokenCookie(ctx, res.Token, time.Now().Add(c.cookie.MaxAge))
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Account created", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	c.setTokenCookie(ctx, res.Token, time.Now().Add(c.cookie.MaxAge))
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	c.setTokenCookie(ctx, "", time.Unix(0, 0))
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged Out", nil))
}

func (c *authController) SendVerifyOtp(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}
	if err := c.service.SendVerifyOtp(ctx.UserContext(), caller.UserId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("verification OTP sent", nil))
}

func (c *authController) VerifyAccount(ctx *fiber.Ctx) error {
	caller, err := serverutils.CurrentCaller(ctx)
	if err != nil {
		return err
	}

	var req dto.VerifyAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing details")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.VerifyAccount(ctx.UserContext(), caller.UserId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("email verified successfully", nil))
}

// IsAuthenticated only reaches the handler when the token middleware passed.
func (c *authController) IsAuthenticated(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse[any]("Authenticated", nil))
}

func (c *authController) SendResetOtp(ctx *fiber.Ctx) error {
	var req dto.SendResetOtpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SendResetOtp(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("OTP sent to your email", nil))
}

func (c *authController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "email,OTP and new password are required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ResetPassword(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Password has been reset successfully", nil))
}
