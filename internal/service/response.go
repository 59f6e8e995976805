package service

import "github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"

// PaymentResult is the normalized outcome of a successful gateway operation.
// Failures are reported through service.Error, never through this type.
type PaymentResult struct {
	Success          bool            `json:"success"`
	Message          string          `json:"message"`
	MessageID        string          `json:"messageId"`
	TransactionID    string          `json:"transactionId,omitempty"`
	StatusCode       string          `json:"statusCode"`
	StatusDesc       string          `json:"statusDesc"`
	QRImage          string          `json:"qrImage,omitempty"`
	ProcessingTimeMs int64           `json:"processingTimeMs"`
	AuditIncomplete  bool            `json:"auditIncomplete,omitempty"`
	Data             *nequi.Response `json:"data,omitempty"`
}
