package service

import (
	"context"
	"errors"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/params"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"
	"go.uber.org/zap"
)

// SendPush asks Nequi to push a payment notification to the subscriber's app.
// The returned transaction id is the vendor's handle for later cancellation
// or status queries.
func (p *Payments) SendPush(ctx context.Context, cmd SendPushCommand) (PaymentResult, error) {
	return p.execute(ctx, cmd.RequestContext, gatewayCall{
		operation:        model.OperationSendPush,
		urlKey:           params.NequiUnregisteredPayURL,
		channel:          nequi.ChannelPush,
		serviceName:      nequi.ServicePayments,
		serviceOperation: nequi.OperationUnregisteredPayment,
		serviceVersion:   "1.2.0",
		body: func(messageID string) any {
			return nequi.UnregisteredPaymentBody{
				UnregisteredPaymentRQ: nequi.UnregisteredPaymentRQ{
					PhoneNumber: cmd.PhoneNumber,
					Code:        nequi.MerchantCode,
					Value:       cmd.Value,
					Reference1:  cmd.StationCode,
					Reference2:  cmd.EquipmentCode,
					Reference3:  messageID,
				},
			}
		},
		customize: func(entry *model.TransactionLog) {
			entry.PhoneNumber = optional(cmd.PhoneNumber)
			entry.Amount = optional(cmd.Value)
		},
		extract: func(resp *nequi.Response) string {
			var rs nequi.UnregisteredPaymentRS
			if err := resp.Payload("unregisteredPaymentRS", &rs); err != nil {
				return ""
			}
			return rs.TransactionID
		},
	})
}

// CancelPush voids a still-pending push payment. The originating SEND_PUSH
// row must exist; on vendor acceptance it is overridden to CANCELLED.
func (p *Payments) CancelPush(ctx context.Context, cmd CancelPushCommand) (PaymentResult, error) {
	parent, err := p.findPushParent(ctx, cmd.TransactionID, cmd.PhoneNumber)
	if err != nil {
		return PaymentResult{}, err
	}

	return p.execute(ctx, cmd.RequestContext, gatewayCall{
		operation:        model.OperationCancelPush,
		urlKey:           params.NequiCancelPaymentURL,
		channel:          nequi.ChannelPush,
		serviceName:      nequi.ServicePayments,
		serviceOperation: nequi.OperationUnregisteredPayment,
		serviceVersion:   "1.0.0",
		parent:           parent,
		overrideStatus:   model.StatusCancelled,
		body: func(messageID string) any {
			return nequi.CancelUnregisteredPaymentBody{
				CancelUnregisteredPaymentRQ: nequi.CancelUnregisteredPaymentRQ{
					Code:          nequi.MerchantCode,
					PhoneNumber:   cmd.PhoneNumber,
					TransactionID: cmd.TransactionID,
				},
			}
		},
		customize: func(entry *model.TransactionLog) {
			entry.PhoneNumber = optional(cmd.PhoneNumber)
			entry.TransactionID = optional(cmd.TransactionID)
		},
	})
}

// GetStatus queries the current state of a push payment by its vendor
// transaction id.
func (p *Payments) GetStatus(ctx context.Context, cmd GetStatusCommand) (PaymentResult, error) {
	return p.execute(ctx, cmd.RequestContext, gatewayCall{
		operation:        model.OperationGetStatus,
		urlKey:           params.NequiStatusPaymentURL,
		channel:          nequi.ChannelPush,
		serviceName:      nequi.ServicePayments,
		serviceOperation: nequi.OperationGetStatusPayment,
		serviceVersion:   "1.0.0",
		body: func(messageID string) any {
			return nequi.GetStatusPaymentBody{
				GetStatusPaymentRQ: nequi.GetStatusPaymentRQ{
					CodeQR: cmd.TransactionID,
				},
			}
		},
		customize: func(entry *model.TransactionLog) {
			entry.TransactionID = optional(cmd.TransactionID)
		},
	})
}

// Reverse refunds a completed push payment. The parent row is located by the
// message id of the original attempt and overridden to REVERSED on success.
func (p *Payments) Reverse(ctx context.Context, cmd ReverseCommand) (PaymentResult, error) {
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

// findPushParent matches the originating SEND_PUSH row on both the vendor
// transaction id and the phone number, most recent first.
func (p *Payments) findPushParent(ctx context.Context, transactionID, phoneNumber string) (*model.TransactionLog, error) {
	matches, err := p.repo.List(ctx, repository.ListFilter{
		TransactionID: transactionID,
		OperationType: model.OperationSendPush,
		PhoneNumber:   phoneNumber,
		Limit:         1,
	})
	if err != nil {
		return nil, newError(ErrCodeStore, model.OperationCancelPush, "", err)
	}
	if len(matches) == 0 {
		p.logger.Warn("Parent transaction not found for cancellation",
			zap.String("transactionID", transactionID))
		return nil, newError(ErrCodeParentNotFound, model.OperationCancelPush, "", repository.ErrLogNotFound)
	}

	return &matches[0], nil
}

func (p *Payments) findParentByMessageID(ctx context.Context, op model.OperationType, messageID string) (*model.TransactionLog, error) {
	parent, err := p.repo.GetByMessageID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrLogNotFound) {
			p.logger.Warn("Parent transaction not found for reversal",
				zap.String("parentMessageID", messageID))
			return nil, newError(ErrCodeParentNotFound, op, "", err)
		}
		return nil, newError(ErrCodeStore, op, "", err)
	}

	return parent, nil
}
