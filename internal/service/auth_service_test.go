package service

import (
	"context"
	"testing"
	"time"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/pkg/throttle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// budgetLimiter allows n calls per key.
type budgetLimiter struct {
	n    int
	used map[string]int
}

func (l *budgetLimiter) Allow(ctx context.Context, key string) bool {
	if l.used == nil {
		l.used = map[string]int{}
	}
	l.used[key]++
	return l.used[key] <= l.n
}

func newAuthFixture(limiter throttle.Limiter) (*memStore, *recordingDispatcher, IAuthService) {
	store := newMemStore()
	mail := &recordingDispatcher{}
	svc := NewAuthService(fakeFactory{store}, mail, nil, limiter, AuthSettings{
		JwtSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, logger.NewNopLogger())
	return store, mail, svc
}

func register(t *testing.T, svc IAuthService) *dto.AuthResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Maria",
		Email:    "  Maria@Example.com ",
		Password: "Str0ng!pass",
		Address:  "12 Church St",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterAndLogin(t *testing.T) {
	_, mail, svc := newAuthFixture(throttle.Unlimited{})
	ctx := context.Background()

	res := register(t, svc)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "maria@example.com", res.User.Email)
	assert.Equal(t, "user", res.User.Role)
	assert.False(t, res.User.IsAccountVerified)
	require.Len(t, mail.messages(), 1)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Dup", Email: "maria@example.com", Password: "Str0ng!pass"})
	requireKind(t, err, apperror.KindConflict, "user already exists")

	logged, err := svc.Login(ctx, &dto.LoginRequest{Email: "maria@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, logged.User.Id)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "maria@example.com", Password: "wrong"})
	requireKind(t, err, apperror.KindUnauthenticated, "invalid password")

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	requireKind(t, err, apperror.KindUnauthenticated, "user Not found")
}

func TestVerifyAccountWithOtp(t *testing.T) {
	store, _, svc := newAuthFixture(throttle.Unlimited{})
	ctx := context.Background()
	userId := uuid.MustParse(register(t, svc).User.Id)

	require.NoError(t, svc.SendVerifyOtp(ctx, userId))
	otp := store.users[userId].VerifyOtp
	require.Len(t, otp, 6)

	wrong := "000000"
	if otp == wrong {
		wrong = "111111"
	}
	err := svc.VerifyAccount(ctx, userId, &dto.VerifyAccountRequest{Otp: wrong})
	requireKind(t, err, apperror.KindValidation, "invalid OTP")

	require.NoError(t, svc.VerifyAccount(ctx, userId, &dto.VerifyAccountRequest{Otp: otp}))
	caller, err := svc.ResolveCaller(ctx, userId)
	require.NoError(t, err)
	assert.True(t, caller.IsVerified)
	assert.Equal(t, "maria@example.com", caller.Email)

	err = svc.SendVerifyOtp(ctx, userId)
	requireKind(t, err, apperror.KindConflict, "account already verified")
}

func TestExpiredOtp(t *testing.T) {
	store, _, svc := newAuthFixture(throttle.Unlimited{})
	ctx := context.Background()
	userId := uuid.MustParse(register(t, svc).User.Id)

	require.NoError(t, svc.SendVerifyOtp(ctx, userId))
	past := time.Now().Add(-time.Minute)
	store.users[userId].VerifyOtpExpireAt = &past

	err := svc.VerifyAccount(ctx, userId, &dto.VerifyAccountRequest{Otp: store.users[userId].VerifyOtp})
	requireKind(t, err, apperror.KindValidation, "OTP expired")
}

func TestResetPassword(t *testing.T) {
	store, mail, svc := newAuthFixture(throttle.Unlimited{})
	ctx := context.Background()
	userId := uuid.MustParse(register(t, svc).User.Id)

	require.NoError(t, svc.SendResetOtp(ctx, &dto.SendResetOtpRequest{Email: "maria@example.com"}))
	assert.Len(t, mail.messages(), 2)

	otp := store.users[userId].ResetOtp
	require.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Email:       "maria@example.com",
		Otp:         otp,
		NewPassword: "N3w!password",
	}))

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "maria@example.com", Password: "N3w!password"})
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "maria@example.com", Otp: otp, NewPassword: "An0ther!pass"})
	requireKind(t, err, apperror.KindValidation, "invalid OTP")
}

func TestOtpThrottle(t *testing.T) {
	_, _, svc := newAuthFixture(&budgetLimiter{n: 1})
	ctx := context.Background()
	register(t, svc)

	require.NoError(t, svc.SendResetOtp(ctx, &dto.SendResetOtpRequest{Email: "maria@example.com"}))
	err := svc.SendResetOtp(ctx, &dto.SendResetOtpRequest{Email: "maria@example.com"})
	requireKind(t, err, apperror.KindTooManyRequests, "Too many OTP requests. Try again later")
}

func TestGetUserData(t *testing.T) {
	_, _, svc := newAuthFixture(throttle.Unlimited{})
	res := register(t, svc)

	data, err := svc.GetUserData(context.Background(), uuid.MustParse(res.User.Id))
	require.NoError(t, err)
	assert.Equal(t, "Maria", data.Name)

	_, err = svc.GetUserData(context.Background(), uuid.New())
	requireKind(t, err, apperror.KindNotFound, "User not found")
}
