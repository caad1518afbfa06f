package mapper

import (
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                u.Id,
		Name:              u.Name,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Address:           u.Address,
		Role:              entity.UserRole(u.Role),
		IsAccountVerified: u.IsAccountVerified,
		VerifyOtp:         u.VerifyOtp,
		VerifyOtpExpireAt: u.VerifyOtpExpireAt,
		ResetOtp:          u.ResetOtp,
		ResetOtpExpireAt:  u.ResetOtpExpireAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                u.Id,
		Name:              u.Name,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Address:           u.Address,
		Role:              string(u.Role),
		IsAccountVerified: u.IsAccountVerified,
		VerifyOtp:         u.VerifyOtp,
		VerifyOtpExpireAt: u.VerifyOtpExpireAt,
		ResetOtp:          u.ResetOtp,
		ResetOtpExpireAt:  u.ResetOtpExpireAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

// ToRequester returns nil when the owner was not preloaded.
func (m *UserMapper) ToRequester(u *model.User) *entity.Requester {
	if u == nil {
		return nil
	}
	return &entity.Requester{Id: u.Id, Name: u.Name, Email: u.Email}
}
