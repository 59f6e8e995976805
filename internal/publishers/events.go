package publishers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/mq"
	"go.uber.org/zap"
)

const TransactionsQueue = "payments.transactions"

// TransactionEvent is emitted once per attempt when it reaches a terminal
// status. Consumers (reconciliation, reporting) are external.
type TransactionEvent struct {
	LogID            int64     `json:"log_id"`
	MessageID        string    `json:"message_id"`
	TransactionID    string    `json:"transaction_id,omitempty"`
	OperationType    string    `json:"operation_type"`
	Status           string    `json:"status"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	Amount           string    `json:"amount,omitempty"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishTransaction(ctx context.Context, event TransactionEvent) error
}

type transactionPublisher struct {
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewTransactionPublisher(publisher mq.Publisher, logger *zap.Logger) EventPublisher {
	return &transactionPublisher{publisher: publisher, logger: logger}
}

func (p *transactionPublisher) PublishTransaction(ctx context.Context, event TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(ctx, "", TransactionsQueue, body); err != nil {
		p.logger.Error("Failed to publish transaction event",
			zap.Error(err),
			zap.Int64("logID", event.LogID),
			zap.String("messageID", event.MessageID))
		return err
	}

	return nil
}

// NopPublisher is wired when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishTransaction(ctx context.Context, event TransactionEvent) error {
	return nil
}
