package dto

import "time"

type CreateCertificateRequest struct {
	CertificateType   string `json:"certificateType" validate:"required,oneof=BAPTISM MARRIAGE" msg:"Missing required fields"`
	RequestPurpose    string `json:"requestPurpose" validate:"required,notblank,max=500" msg:"Missing required fields"`
	RequesterName     string `json:"requesterName" validate:"required,notblank,max=100" msg:"Missing required fields"`
	RequesterRelation string `json:"requesterRelation" validate:"required,notblank,max=100" msg:"Missing required fields"`

	DateOfBaptism string `json:"dateOfBaptism" validate:"filled_if=CertificateType BAPTISM" msg:"Complete baptism details are required"`
	FatherName    string `json:"fatherName" validate:"filled_if=CertificateType BAPTISM" msg:"Complete baptism details are required"`
	MotherName    string `json:"motherName" validate:"filled_if=CertificateType BAPTISM" msg:"Complete baptism details are required"`

	GroomsName     string `json:"groomsName" validate:"filled_if=CertificateType MARRIAGE" msg:"Complete marriage details are required"`
	BridesName     string `json:"bridesName" validate:"filled_if=CertificateType MARRIAGE" msg:"Complete marriage details are required"`
	DateOfMarriage string `json:"dateOfMarriage" validate:"filled_if=CertificateType MARRIAGE" msg:"Complete marriage details are required"`
	MarriageRegNo  *int64 `json:"marriageRegNo"`
	ExpirationDate string `json:"expirationDate"`
}

type UpdateCertificateStatusRequest struct {
	CertificateId string `json:"certificateId" validate:"required,uuid" msg:"Certificate ID required"`
	Status        string `json:"status" validate:"required,oneof=approved rejected"`
	Remark        string `json:"remark" validate:"max=1000"`
}

type CertificateIdRequest struct {
	CertificateId string `json:"certificateId" validate:"required,uuid" msg:"Certificate ID required"`
}

type MarkCertificatePaidRequest struct {
	CertificateId string `json:"certificateId" validate:"required,uuid" msg:"Certificate ID required"`
	PaymentId     string `json:"paymentId"`
}

type CertificateResponse struct {
	Id                string     `json:"id"`
	CertificateType   string     `json:"certificateType"`
	RequestPurpose    string     `json:"requestPurpose"`
	RequesterName     string     `json:"requesterName"`
	RequesterRelation string     `json:"requesterRelation"`
	DateOfBaptism     string     `json:"dateOfBaptism,omitempty"`
	FatherName        string     `json:"fatherName,omitempty"`
	MotherName        string     `json:"motherName,omitempty"`
	GroomsName        string     `json:"groomsName,omitempty"`
	BridesName        string     `json:"bridesName,omitempty"`
	DateOfMarriage    string     `json:"dateOfMarriage,omitempty"`
	MarriageRegNo     *int64     `json:"marriageRegNo,omitempty"`
	ExpirationDate    string     `json:"expirationDate,omitempty"`
	Status            string     `json:"status"`
	Remark            string     `json:"remark"`
	PaymentStatus     string     `json:"paymentStatus"`
	PaymentId         *string    `json:"paymentId,omitempty"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	CertificatePdf    string     `json:"certificatePdf,omitempty"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`
	User              *Requester `json:"user,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type Requester struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
