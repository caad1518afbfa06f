package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type MidtransConfig struct {
	ServerKey    string
	IsProduction bool
	FinishURL    string
}

type MidtransGateway struct {
	snap      snap.Client
	core      coreapi.Client
	finishURL string
}

func NewMidtransGateway(cfg MidtransConfig) *MidtransGateway {
	env := midtrans.Sandbox
	if cfg.IsProduction {
		env = midtrans.Production
	}

	g := &MidtransGateway{finishURL: cfg.FinishURL}
	g.snap.New(cfg.ServerKey, env)
	g.core.New(cfg.ServerKey, env)
	return g
}

func (g *MidtransGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	gross := int64(req.Amount.AsMajorUnits())

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.PaymentId,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.Metadata["recordId"],
				Name:  req.Description,
				Price: gross,
				Qty:   1,
			},
		},
		CustomField1:    req.Metadata["recordId"],
		CustomField2:    req.Metadata["kind"],
		CustomField3:    req.Metadata["userId"],
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if g.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: g.finishURL}
	}

	resp, midErr := g.snap.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans create transaction: %s", midErr.GetMessage())
	}

	return &Intent{
		PaymentId:    req.PaymentId,
		ClientSecret: resp.Token,
		RedirectURL:  resp.RedirectURL,
	}, nil
}

func (g *MidtransGateway) GetTransaction(ctx context.Context, paymentId string) (*TransactionStatus, error) {
	resp, midErr := g.core.CheckTransaction(paymentId)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans check transaction: %s", midErr.GetMessage())
	}

	return &TransactionStatus{
		PaymentId:         resp.OrderID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		GrossAmount:       resp.GrossAmount,
	}, nil
}
