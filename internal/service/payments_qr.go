package service

import (
	"context"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/params"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/qrcode"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"
	"go.uber.org/zap"
)

const (
	qrReferencePrefix       = "QR_"
	qrStatusReferencePrefix = "QR_STATUS_"
)

// CreateQr asks Nequi for a scannable payment code. The vendor's qrValue is
// stored as the row's transaction id and also rendered as a base64 PNG so
// callers can display it directly.
func (p *Payments) CreateQr(ctx context.Context, cmd CreateQrCommand) (PaymentResult, error) {
	result, err := p.execute(ctx, cmd.RequestContext, gatewayCall{
		operation:        model.OperationSendPush,
		urlKey:           params.NequiPaymentsQRURL,
		channel:          nequi.ChannelQR,
		serviceName:      nequi.ServicePayments,
		serviceOperation: nequi.OperationGenerateCodeQR,
		serviceVersion:   "1.2.0",
		body: func(messageID string) any {
			return nequi.GenerateCodeQRBody{
				GenerateCodeQRRQ: nequi.GenerateCodeQRRQ{
					Code:       nequi.MerchantCode,
					Value:      cmd.Value,
					Reference1: cmd.StationCode,
					Reference2: cmd.EquipmentCode,
					Reference3: messageID,
				},
			}
		},
		customize: func(entry *model.TransactionLog) {
			entry.PhoneNumber = optional(cmd.PhoneNumber)
			entry.Amount = optional(cmd.Value)
			ref := qrReferencePrefix + entry.MessageID
			entry.InternalReference = &ref
		},
		extract: func(resp *nequi.Response) string {
			var rs nequi.GenerateCodeQRRS
			if err := resp.Payload("generateCodeQRRS", &rs); err != nil {
				return ""
			}
			return rs.QRValue
		},
	})
	if err != nil {
		return result, err
	}

	if result.TransactionID != "" {
		image, rerr := qrcode.Render(result.TransactionID)
		if rerr != nil {
			p.logger.Warn("Failed to render QR image",
				zap.String("messageID", result.MessageID),
				zap.Error(rerr))
		} else {
			result.QRImage = image
		}
	}

	return result, nil
}

// GetQrStatus queries a QR payment by the code handed out at creation.
func (p *Payments) GetQrStatus(ctx context.Context, cmd QrStatusCommand) (PaymentResult, error) {
	return p.execute(ctx, cmd.RequestContext, gatewayCall{
		operation:        model.OperationGetStatus,
		urlKey:           params.NequiStatusPaymentsQRURL,
		channel:          nequi.ChannelQR,
		serviceName:      nequi.ServicePayments,
		serviceOperation: nequi.OperationGetStatusPayment,
		serviceVersion:   "1.0.0",
		body: func(messageID string) any {
			return nequi.GetStatusPaymentBody{
				GetStatusPaymentRQ: nequi.GetStatusPaymentRQ{
					CodeQR: cmd.QrID,
				},
			}
		},
		customize: func(entry *model.TransactionLog) {
			entry.TransactionID = optional(cmd.QrID)
			ref := qrStatusReferencePrefix + cmd.QrID
			entry.InternalReference = &ref
		},
	})
}

// ReverseQr refunds a settled QR payment. Parent matching and override
// semantics are the same as for push reversals.
func (p *Payments) ReverseQr(ctx context.Context, cmd ReverseQrCommand) (PaymentResult, error) {
	parent, err := p.findParentByMessageID(ctx, model.OperationReverse, cmd.MessageID)
	if err != nil {
		return PaymentResult{}, err
	}

	return p.execute(ctx, cmd.RequestContext, gatewayCall{
		operation:        model.OperationReverse,
		urlKey:           params.NequiReversePaymentURL,
		channel:          nequi.ChannelPush,
		serviceName:      nequi.ServiceReverse,
		serviceOperation: nequi.OperationReverseTransaction,
		serviceVersion:   "1.0.0",
		parent:           parent,
		overrideStatus:   model.StatusReversed,
		body: func(messageID string) any {
			return nequi.ReversionBody{
				ReversionRQ: nequi.ReversionRQ{
					PhoneNumber: cmd.PhoneNumber,
					Value:       cmd.Value,
					Code:        nequi.MerchantCode,
					MessageID:   cmd.MessageID,
					Type:        nequi.ReversionTypePayment,
				},
			}
		},
		customize: func(entry *model.TransactionLog) {
			entry.PhoneNumber = optional(cmd.PhoneNumber)
			entry.Amount = optional(cmd.Value)
		},
	})
}
