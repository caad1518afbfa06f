package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubResolver struct {
	callers map[uuid.UUID]*entity.Caller
}

func (r *stubResolver) ResolveCaller(_ context.Context, id uuid.UUID) (*entity.Caller, error) {
	return r.callers[id], nil
}

func newTestApp(resolver CallerResolver) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger.NewNopLogger())})
	auth := JwtMiddleware(testSecret, resolver)

	app.Get("/me", auth, func(ctx *fiber.Ctx) error {
		caller, err := CurrentCaller(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", caller.UserId.String()))
	})
	app.Get("/admin", auth, RequireAdmin, func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", "admin"))
	})
	app.Get("/verified", auth, RequireVerified, func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", "verified"))
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("database exploded")
	})
	app.Get("/conflict", func(ctx *fiber.Ctx) error {
		return apperror.Conflict("Already paid")
	})
	return app
}

func decode(t *testing.T, resp *http.Response) BaseResponse[any] {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestJwtMiddleware(t *testing.T) {
	memberId := uuid.New()
	adminId := uuid.New()
	resolver := &stubResolver{callers: map[uuid.UUID]*entity.Caller{
		memberId: {UserId: memberId, Role: entity.UserRoleUser, IsVerified: false},
		adminId:  {UserId: adminId, Role: entity.UserRoleAdmin, IsVerified: true},
	}}
	app := newTestApp(resolver)

	memberToken, err := SignToken(testSecret, memberId, time.Hour)
	require.NoError(t, err)
	adminToken, err := SignToken(testSecret, adminId, time.Hour)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, decode(t, resp).Success)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+memberToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, memberId.String(), decode(t, resp).Data)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: adminToken})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := SignToken("other", memberId, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := SignToken(testSecret, memberId, -time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost, err := SignToken(testSecret, uuid.New(), time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+ghost)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin guard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+memberToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Admin access only", decode(t, resp).Message)

		req = httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("verified guard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/verified", nil)
		req.Header.Set("Authorization", "Bearer "+memberToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "User not verified!", decode(t, resp).Message)
	})
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp(&stubResolver{})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", decode(t, resp).Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Already paid", body.Message)
	assert.Equal(t, fiber.StatusConflict, body.Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

type sampleRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=A B"`
	Detail string `json:"detail" validate:"required_if=Kind B" msg:"Detail is needed for B"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Kind: "A"}))

	err := ValidateRequest(sampleRequest{})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, "kind is required", err.Error())

	err = ValidateRequest(&sampleRequest{Kind: "B"})
	require.Error(t, err)
	assert.Equal(t, "Detail is needed for B", err.Error())

	err = ValidateRequest(sampleRequest{Kind: "C"})
	require.Error(t, err)
	assert.Equal(t, "kind must be one of [A B]", err.Error())

	err = ValidateRequest(sampleRequest{Kind: "A", Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email", err.Error())
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,strongpassword"`
}

func TestStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateRequest(passwordRequest{Password: "Secret1!"}))

	for _, pw := range []string{"short1!", "alllower1!", "ALLUPPER1!", "NoDigits!!", "NoSpecial12"} {
		err := ValidateRequest(passwordRequest{Password: pw})
		require.Error(t, err, pw)
		assert.Contains(t, err.Error(), "Password must be at least 8 characters")
	}
}

type filledRequest struct {
	Kind   string `json:"kind" validate:"required"`
	Name   string `json:"name" validate:"required,notblank"`
	Detail string `json:"detail" validate:"filled_if=Kind B" msg:"Detail is needed for B"`
}

func TestFilledIfRefusesWhitespace(t *testing.T) {
	assert.NoError(t, ValidateRequest(filledRequest{Kind: "A", Name: "x"}))
	assert.NoError(t, ValidateRequest(&filledRequest{Kind: "B", Name: "x", Detail: "d"}))

	for _, detail := range []string{"", "   ", "\t\n"} {
		err := ValidateRequest(filledRequest{Kind: "B", Name: "x", Detail: detail})
		require.Error(t, err, "%q", detail)
		assert.Equal(t, "Detail is needed for B", err.Error())
	}

	err := ValidateRequest(filledRequest{Kind: "A", Name: "  "})
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}
