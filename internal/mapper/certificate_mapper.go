package mapper

import (
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/model"
	"parish-portal-be/pkg/workflow"
)

type CertificateMapper struct {
	users *UserMapper
}

func NewCertificateMapper() *CertificateMapper {
	return &CertificateMapper{users: NewUserMapper()}
}

func (m *CertificateMapper) ToEntity(c *model.CertificateRequest) *entity.CertificateRequest {
	if c == nil {
		return nil
	}
	return &entity.CertificateRequest{
		Id:                c.Id,
		UserId:            c.UserId,
		CertificateType:   entity.CertificateType(c.CertificateType),
		RequestPurpose:    c.RequestPurpose,
		RequesterName:     c.RequesterName,
		RequesterRelation: c.RequesterRelation,
		DateOfBaptism:     c.DateOfBaptism,
		FatherName:        c.FatherName,
		MotherName:        c.MotherName,
		GroomsName:        c.GroomsName,
		BridesName:        c.BridesName,
		DateOfMarriage:    c.DateOfMarriage,
		MarriageRegNo:     c.MarriageRegNo,
		ExpirationDate:    c.ExpirationDate,
		Lifecycle: entity.Lifecycle{
			Status:        workflow.Status(c.Status),
			Remark:        c.Remark,
			PaymentStatus: workflow.PaymentStatus(c.PaymentStatus),
			PaymentId:     c.PaymentId,
			PaidAt:        c.PaidAt,
		},
		CertificatePdf: c.CertificatePdf,
		DeliveredAt:    c.DeliveredAt,
		Requester:      m.users.ToRequester(c.User),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (m *CertificateMapper) ToModel(c *entity.CertificateRequest) *model.CertificateRequest {
	if c == nil {
		return nil
	}
	return &model.CertificateRequest{
		Id:                c.Id,
		UserId:            c.UserId,
		CertificateType:   string(c.CertificateType),
		RequestPurpose:    c.RequestPurpose,
		RequesterName:     c.RequesterName,
		RequesterRelation: c.RequesterRelation,
		DateOfBaptism:     c.DateOfBaptism,
		FatherName:        c.FatherName,
		MotherName:        c.MotherName,
		GroomsName:        c.GroomsName,
		BridesName:        c.BridesName,
		DateOfMarriage:    c.DateOfMarriage,
		MarriageRegNo:     c.MarriageRegNo,
		ExpirationDate:    c.ExpirationDate,
		Status:            string(c.Status),
		Remark:            c.Remark,
		PaymentStatus:     string(c.PaymentStatus),
		PaymentId:         c.PaymentId,
		PaidAt:            c.PaidAt,
		CertificatePdf:    c.CertificatePdf,
		DeliveredAt:       c.DeliveredAt,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func (m *CertificateMapper) ToEntities(rows []*model.CertificateRequest) []*entity.CertificateRequest {
	entities := make([]*entity.CertificateRequest, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
