package serverutils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenCookieName = "token"
	localsUserId    = "user_id"
	localsCaller    = "caller"
)

// CallerResolver loads the current role and verification flag for a token subject.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, userId uuid.UUID) (*entity.Caller, error)
}

func SignToken(secret string, userId uuid.UUID, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid claims")
	}
	sub, _ := claims["user_id"].(string)
	return uuid.Parse(sub)
}

func extractToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ctx.Cookies(TokenCookieName)
}

// JwtMiddleware accepts a Bearer header or the token cookie and stores the
// resolved caller in the request locals.
func JwtMiddleware(secret string, resolver CallerResolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := extractToken(ctx)
		if tokenStr == "" {
			return apperror.Unauthenticated("Not Authorized. Login Again")
		}

		userId, err := ParseToken(secret, tokenStr)
		if err != nil {
			return apperror.Unauthenticated("Not Authorized. Login Again")
		}

		caller, err := resolver.ResolveCaller(ctx.UserContext(), userId)
		if err != nil {
			return err
		}
		if caller == nil {
			return apperror.Unauthenticated("User not found")
		}

		ctx.Locals(localsUserId, userId.String())
		ctx.Locals(localsCaller, caller)
		return ctx.Next()
	}
}

func CurrentCaller(ctx *fiber.Ctx) (*entity.Caller, error) {
	caller, ok := ctx.Locals(localsCaller).(*entity.Caller)
	if !ok || caller == nil {
		return nil, apperror.Unauthenticated("Not Authorized. Login Again")
	}
	return caller, nil
}

// RequireAdmin must run after JwtMiddleware.
func RequireAdmin(ctx *fiber.Ctx) error {
	caller, err := CurrentCaller(ctx)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperror.Authorization("Admin access only")
	}
	return ctx.Next()
}

// RequireVerified must run after JwtMiddleware.
func RequireVerified(ctx *fiber.Ctx) error {
	caller, err := CurrentCaller(ctx)
	if err != nil {
		return err
	}
	if !caller.IsVerified {
		return apperror.Authorization("User not verified!")
	}
	return ctx.Next()
}
