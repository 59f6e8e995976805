package model

import "time"

type OperationType string

const (
	OperationSendPush   OperationType = "SEND_PUSH"
	OperationCancelPush OperationType = "CANCEL_PUSH"
	OperationGetStatus  OperationType = "GET_STATUS"
	OperationReverse    OperationType = "REVERSE"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusSuccess   TransactionStatus = "SUCCESS"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusReversed  TransactionStatus = "REVERSED"
	StatusTimeout   TransactionStatus = "TIMEOUT"
)

// IsTerminal reports whether a row may no longer transition on its own.
// CANCELLED and REVERSED are only ever set through the parent-override path.
func (s TransactionStatus) IsTerminal() bool {
	return s != StatusPending
}

const DefaultCurrency = "COP"

// TransactionLog is one attempted gateway operation. Rows are created in
// PENDING before the outbound call and updated at most twice afterwards: the
// terminal update and, for a parent row, the cancel/reverse override.
type TransactionLog struct {
	ID                     int64             `gorm:"primaryKey;autoIncrement;<-:create"`
	TransactionID          *string           `gorm:"type:varchar(64);index"`
	MessageID              string            `gorm:"type:varchar(20);not null;index;<-:create"`
	InternalReference      *string           `gorm:"type:varchar(64)"`
	OperationType          OperationType     `gorm:"type:varchar(20);not null;<-:create"`
	PhoneNumber            *string           `gorm:"type:varchar(20);index"`
	Amount                 *string           `gorm:"type:varchar(32)"`
	Currency               string            `gorm:"type:varchar(8);default:'COP'"`
	Status                 TransactionStatus `gorm:"type:varchar(16);not null;index"`
	NequiStatusCode        *string           `gorm:"type:varchar(8)"`
	NequiStatusDescription *string           `gorm:"type:varchar(255)"`
	ErrorMessage           *string           `gorm:"type:text"`
	RequestPayload         *string           `gorm:"type:json"`
	ResponsePayload        *string           `gorm:"type:json"`
	ClientIP               *string           `gorm:"type:varchar(45)"`
	UserAgent              *string           `gorm:"type:varchar(255)"`
	Reference1             *string           `gorm:"type:varchar(64)"`
	Reference2             *string           `gorm:"type:varchar(64)"`
	Reference3             *string           `gorm:"type:varchar(64)"`
	ParentID               *int64            `gorm:"index"`
	ProcessingTimeMs       *int64
	RetryCount             int       `gorm:"default:0"`
	Environment            string    `gorm:"type:varchar(32);default:'production'"`
	CreatedAt              time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;index"`
	UpdatedAt              time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (TransactionLog) TableName() string {
	return "transaction_log"
}
