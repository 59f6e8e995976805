package v1

import (
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
)

type TransactionResponse struct {
	ID               int64  `json:"id"`
	TransactionID    string `json:"transactionId,omitempty"`
	MessageID        string `json:"messageId"`
	OperationType    string `json:"operationType"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	Amount           string `json:"amount,omitempty"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	NequiStatusCode  string `json:"nequiStatusCode,omitempty"`
	ErrorMessage     string `json:"errorMessage,omitempty"`
	ParentID         *int64 `json:"parentId,omitempty"`
	ProcessingTimeMs *int64 `json:"processingTimeMs,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

func toTransactionResponse(entry model.TransactionLog) TransactionResponse {
	resp := TransactionResponse{
		ID:               entry.ID,
		MessageID:        entry.MessageID,
		OperationType:    string(entry.OperationType),
		Currency:         entry.Currency,
		Status:           string(entry.Status),
		ParentID:         entry.ParentID,
		ProcessingTimeMs: entry.ProcessingTimeMs,
		CreatedAt:        entry.CreatedAt.Format(time.RFC3339),
	}

	if entry.TransactionID != nil {
		resp.TransactionID = *entry.TransactionID
	}
	if entry.PhoneNumber != nil {
		resp.PhoneNumber = *entry.PhoneNumber
	}
	if entry.Amount != nil {
		resp.Amount = *entry.Amount
	}
	if entry.NequiStatusCode != nil {
		resp.NequiStatusCode = *entry.NequiStatusCode
	}
	if entry.ErrorMessage != nil {
		resp.ErrorMessage = *entry.ErrorMessage
	}

	return resp
}
