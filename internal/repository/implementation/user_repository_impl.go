package implementation

import (
	"context"
	"errors"
	"strings"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/mapper"
	"parish-portal-be/internal/model"
	"parish-portal-be/internal/repository/contract"
	"parish-portal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelUsers), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) updateFields(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(values).Error
}

func (r *UserRepositoryImpl) SetVerifyOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"verify_otp":           otp,
		"verify_otp_expire_at": expiresAt,
	})
}

func (r *UserRepositoryImpl) MarkAccountVerified(ctx context.Context, id uuid.UUID) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"is_account_verified":  true,
		"verify_otp":           "",
		"verify_otp_expire_at": nil,
	})
}

func (r *UserRepositoryImpl) SetResetOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"reset_otp":           otp,
		"reset_otp_expire_at": expiresAt,
	})
}

// UpdatePassword also consumes any outstanding reset OTP.
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"password_hash":       hash,
		"reset_otp":           "",
		"reset_otp_expire_at": nil,
	})
}

func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	return r.updateFields(ctx, id, map[string]interface{}{"role": string(role)})
}
