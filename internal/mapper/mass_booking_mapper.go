package mapper

import (
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/model"
	"parish-portal-be/pkg/workflow"
)

type MassBookingMapper struct {
	users *UserMapper
}

func NewMassBookingMapper() *MassBookingMapper {
	return &MassBookingMapper{users: NewUserMapper()}
}

func (m *MassBookingMapper) ToEntity(b *model.MassBooking) *entity.MassBooking {
	if b == nil {
		return nil
	}
	return &entity.MassBooking{
		Id:                 b.Id,
		UserId:             b.UserId,
		MassType:           entity.MassType(b.MassType),
		OfferForName:       b.OfferForName,
		OfferByName:        b.OfferByName,
		Email:              b.Email,
		PreferedDate:       b.PreferedDate,
		PreferedTime:       b.PreferedTime,
		YearOfMarriage:     b.YearOfMarriage,
		Dob:                b.Dob,
		Age:                b.Age,
		RelationToDeceased: b.RelationToDeceased,
		YearSinceDeath:     b.YearSinceDeath,
		DateOfDeath:        b.DateOfDeath,
		Lifecycle: entity.Lifecycle{
			Status:        workflow.Status(b.Status),
			Remark:        b.AdminRemark,
			PaymentStatus: workflow.PaymentStatus(b.PaymentStatus),
			PaymentId:     b.PaymentId,
			PaidAt:        b.PaidAt,
		},
		Requester: m.users.ToRequester(b.User),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *MassBookingMapper) ToModel(b *entity.MassBooking) *model.MassBooking {
	if b == nil {
		return nil
	}
	return &model.MassBooking{
		Id:                 b.Id,
		UserId:             b.UserId,
		MassType:           string(b.MassType),
		OfferForName:       b.OfferForName,
		OfferByName:        b.OfferByName,
		Email:              b.Email,
		PreferedDate:       b.PreferedDate,
		PreferedTime:       b.PreferedTime,
		YearOfMarriage:     b.YearOfMarriage,
		Dob:                b.Dob,
		Age:                b.Age,
		RelationToDeceased: b.RelationToDeceased,
		YearSinceDeath:     b.YearSinceDeath,
		DateOfDeath:        b.DateOfDeath,
		Status:             string(b.Status),
		AdminRemark:        b.Remark,
		PaymentStatus:      string(b.PaymentStatus),
		PaymentId:          b.PaymentId,
		PaidAt:             b.PaidAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (m *MassBookingMapper) ToEntities(rows []*model.MassBooking) []*entity.MassBooking {
	entities := make([]*entity.MassBooking, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
