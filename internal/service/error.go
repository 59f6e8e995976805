package service

import (
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
)

const (
	ErrCodeConfiguration      = "CONFIGURATION_ERROR"
	ErrCodeParentNotFound     = "PARENT_NOT_FOUND"
	ErrCodeGatewayUnreachable = "GATEWAY_UNREACHABLE"
	ErrCodeBusinessRejection  = "BUSINESS_REJECTION"
	ErrCodeStore              = "STORE_ERROR"
	ErrCodeLogNotFound        = "TRANSACTION_NOT_FOUND"
	ErrCodeInvalidFilter      = "INVALID_FILTER"
)

// Error carries enough context to reconstruct a failure without re-querying
// the store: the operation, the attempt's message id and, for business
// rejections, the vendor's own code and description.
type Error struct {
	Code            string
	Operation       model.OperationType
	MessageID       string
	VendorCode      string
	VendorDesc      string
	AuditIncomplete bool
	Cause           error
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Code
	}
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

func newError(code string, op model.OperationType, messageID string, cause error) Error {
	return Error{Code: code, Operation: op, MessageID: messageID, Cause: cause}
}
