package mapper

import (
	"fmt"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentIntentMapper struct{}

func NewPaymentIntentMapper() *PaymentIntentMapper {
	return &PaymentIntentMapper{}
}

func (m *PaymentIntentMapper) ToEntity(p *model.PaymentIntent) *entity.PaymentIntent {
	if p == nil {
		return nil
	}
	metadata := make(map[string]string, len(p.Metadata))
	for k, v := range p.Metadata {
		metadata[k] = fmt.Sprint(v)
	}
	return &entity.PaymentIntent{
		Id:           p.Id,
		RecordKind:   entity.RecordKind(p.RecordKind),
		RecordId:     p.RecordId,
		UserId:       p.UserId,
		AmountMinor:  p.AmountMinor,
		Currency:     p.Currency,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURL,
		Status:       entity.PaymentIntentStatus(p.Status),
		Metadata:     metadata,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *PaymentIntentMapper) ToModel(p *entity.PaymentIntent) *model.PaymentIntent {
	if p == nil {
		return nil
	}
	metadata := make(datatypes.JSONMap, len(p.Metadata))
	for k, v := range p.Metadata {
		metadata[k] = v
	}
	return &model.PaymentIntent{
		Id:           p.Id,
		RecordKind:   string(p.RecordKind),
		RecordId:     p.RecordId,
		UserId:       p.UserId,
		AmountMinor:  p.AmountMinor,
		Currency:     p.Currency,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURL,
		Status:       string(p.Status),
		Metadata:     metadata,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
