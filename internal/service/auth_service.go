package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/pkg/mailer"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/pkg/throttle"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/internal/repository/unitofwork"
	"parish-portal-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	verifyOtpTTL = 24 * time.Hour
	resetOtpTTL  = 15 * time.Minute
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	SendVerifyOtp(ctx context.Context, userId uuid.UUID) error
	VerifyAccount(ctx context.Context, userId uuid.UUID, req *dto.VerifyAccountRequest) error
	SendResetOtp(ctx context.Context, req *dto.SendResetOtpRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	GetUserData(ctx context.Context, userId uuid.UUID) (*dto.UserDataResponse, error)
	ResolveCaller(ctx context.Context, userId uuid.UUID) (*entity.Caller, error)
}

type AuthSettings struct {
	JwtSecret string
	TokenTTL  time.Duration
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	effects    sideEffects
	otpLimiter throttle.Limiter
	settings   AuthSettings
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	mail mailer.Dispatcher,
	publisher events.Publisher,
	otpLimiter throttle.Limiter,
	settings AuthSettings,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		effects:    newSideEffects(mail, publisher, log, "AUTH"),
		otpLimiter: otpLimiter,
		settings:   settings,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func otpMatches(stored string, expiresAt *time.Time, given string) error {
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(given)) != 1 {
		return apperror.Validation("invalid OTP")
	}
	if expiresAt == nil || time.Now().After(*expiresAt) {
		return apperror.Validation("OTP expired")
	}
	return nil
}

func toUserData(u *entity.User) dto.UserDataResponse {
	return dto.UserDataResponse{
		Id:                u.Id.String(),
		Name:              u.Name,
		Email:             u.Email,
		Role:              string(u.Role),
		IsAccountVerified: u.IsAccountVerified,
	}
}

func (s *authService) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := serverutils.SignToken(s.settings.JwtSecret, user.Id, s.settings.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserData(user)}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Address:      strings.TrimSpace(req.Address),
		Role:         entity.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.effects.email(ctx, mailer.WelcomeMail(user.Name, user.Email))
	s.effects.emit(events.BaseEvent{
		Type:       events.UserRegistered,
		Data:       map[string]interface{}{"userId": user.Id.String()},
		OccurredAt: now,
	})

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthenticated("user Not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperror.Unauthenticated("invalid password")
	}

	return s.issueToken(user)
}

func (s *authService) SendVerifyOtp(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}
	if user.IsAccountVerified {
		return apperror.Conflict("account already verified")
	}
	if !s.otpLimiter.Allow(ctx, "verify:"+user.Email) {
		return apperror.TooManyRequests("Too many OTP requests. Try again later")
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	if err := uow.UserRepository().SetVerifyOtp(ctx, user.Id, otp, time.Now().Add(verifyOtpTTL)); err != nil {
		return err
	}

	s.effects.email(ctx, mailer.VerifyOtpMail(user.Name, user.Email, otp))
	return nil
}

func (s *authService) VerifyAccount(ctx context.Context, userId uuid.UUID, req *dto.VerifyAccountRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}
	if err := otpMatches(user.VerifyOtp, user.VerifyOtpExpireAt, req.Otp); err != nil {
		return err
	}

	return uow.UserRepository().MarkAccountVerified(ctx, user.Id)
}

func (s *authService) SendResetOtp(ctx context.Context, req *dto.SendResetOtpRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}
	if !s.otpLimiter.Allow(ctx, "reset:"+user.Email) {
		return apperror.TooManyRequests("Too many OTP requests. Try again later")
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	if err := uow.UserRepository().SetResetOtp(ctx, user.Id, otp, time.Now().Add(resetOtpTTL)); err != nil {
		return err
	}

	s.effects.email(ctx, mailer.ResetOtpMail(user.Name, user.Email, otp))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}
	if err := otpMatches(user.ResetOtp, user.ResetOtpExpireAt, req.Otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uow.UserRepository().UpdatePassword(ctx, user.Id, string(hash))
}

func (s *authService) GetUserData(ctx context.Context, userId uuid.UUID) (*dto.UserDataResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	data := toUserData(user)
	return &data, nil
}

// ResolveCaller backs the JWT middleware: role and verification are read from
// the store on every request, never from the token.
func (s *authService) ResolveCaller(ctx context.Context, userId uuid.UUID) (*entity.Caller, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &entity.Caller{
		UserId:     user.Id,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsAccountVerified,
	}, nil
}
