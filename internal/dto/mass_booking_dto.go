package dto

import "time"

type CreateMassBookingRequest struct {
	MassType     string `json:"massType" validate:"required,oneof=THANKSGIVING SOULOF MONTHMIND DEATHANNIVERSARY BIRTHDAY WEDDINGANNIVERSARY INTENTIONS GOODHEALTH" msg:"Missing required fields"`
	OfferForName string `json:"offerForName" validate:"required,notblank,max=200" msg:"Missing required fields"`
	OfferByName  string `json:"offerByName" validate:"required,notblank,max=200" msg:"Missing required fields"`
	Email        string `json:"email" validate:"omitempty,email"`
	PreferedDate string `json:"preferedDate" validate:"required,notblank" msg:"Missing required fields"`
	PreferedTime string `json:"preferedTime" validate:"required,notblank" msg:"Missing required fields"`

	YearOfMarriage     string `json:"yearOfMarriage" validate:"filled_if=MassType WEDDINGANNIVERSARY" msg:"Year of marriage is required"`
	Dob                string `json:"dob"`
	Age                int    `json:"age" validate:"required_if=MassType BIRTHDAY,gte=0,lte=150" msg:"Age is required"`
	RelationToDeceased string `json:"relationToDeceased" validate:"filled_if=MassType MONTHMIND" msg:"Relation to deceased is required"`
	YearSinceDeath     string `json:"yearSinceDeath" validate:"filled_if=MassType DEATHANNIVERSARY" msg:"Death details are required"`
	DateOfDeath        string `json:"dateOfDeath" validate:"filled_if=MassType DEATHANNIVERSARY" msg:"Death details are required"`
}

type UpdateMassStatusRequest struct {
	MassId string `json:"massId" validate:"required,uuid" msg:"Mass ID required"`
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Remark string `json:"remark" validate:"max=1000"`
}

type MassIdRequest struct {
	MassId string `json:"massId" validate:"required,uuid" msg:"Mass ID required"`
}

type MarkMassPaidRequest struct {
	MassId    string `json:"massId" validate:"required,uuid" msg:"Mass ID required"`
	PaymentId string `json:"paymentId"`
}

type MassBookingResponse struct {
	Id                 string     `json:"id"`
	MassType           string     `json:"massType"`
	OfferForName       string     `json:"offerForName"`
	OfferByName        string     `json:"offerByName"`
	Email              string     `json:"email,omitempty"`
	PreferedDate       string     `json:"preferedDate"`
	PreferedTime       string     `json:"preferedTime"`
	YearOfMarriage     string     `json:"yearOfMarriage,omitempty"`
	Dob                string     `json:"dob,omitempty"`
	Age                *int       `json:"age,omitempty"`
	RelationToDeceased string     `json:"relationToDeceased,omitempty"`
	YearSinceDeath     string     `json:"yearSinceDeath,omitempty"`
	DateOfDeath        string     `json:"dateOfDeath,omitempty"`
	Status             string     `json:"status"`
	AdminRemark        string     `json:"adminRemark"`
	PaymentStatus      string     `json:"paymentStatus"`
	PaymentId          *string    `json:"paymentId,omitempty"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	User               *Requester `json:"user,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
