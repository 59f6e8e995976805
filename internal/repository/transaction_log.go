package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrLogNotFound  = errors.New("TRANSACTION_LOG_NOT_FOUND")
	ErrInvalidLimit = errors.New("INVALID_LIMIT")
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// TransactionLogUpdate is the enumerated set of columns a terminal or
// override update may touch. Only non-nil fields are written.
type TransactionLogUpdate struct {
	Status                 *model.TransactionStatus
	TransactionID          *string
	NequiStatusCode        *string
	NequiStatusDescription *string
	ErrorMessage           *string
	ResponsePayload        *string
	ProcessingTimeMs       *int64
	RetryCount             *int
}

func (u TransactionLogUpdate) Values() map[string]any {
	values := map[string]any{}
	if u.Status != nil {
		values["status"] = *u.Status
	}
	if u.TransactionID != nil {
		values["transaction_id"] = *u.TransactionID
	}
	if u.NequiStatusCode != nil {
		values["nequi_status_code"] = *u.NequiStatusCode
	}
	if u.NequiStatusDescription != nil {
		values["nequi_status_description"] = *u.NequiStatusDescription
	}
	if u.ErrorMessage != nil {
		values["error_message"] = *u.ErrorMessage
	}
	if u.ResponsePayload != nil {
		values["response_payload"] = *u.ResponsePayload
	}
	if u.ProcessingTimeMs != nil {
		values["processing_time_ms"] = *u.ProcessingTimeMs
	}
	if u.RetryCount != nil {
		values["retry_count"] = *u.RetryCount
	}
	return values
}

type ListFilter struct {
	Status        model.TransactionStatus
	OperationType model.OperationType
	PhoneNumber   string
	TransactionID string
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}

// Validate bounds pagination. A zero limit selects the default; anything
// outside [1, MaxListLimit] is rejected.
func (f ListFilter) Validate() error {
	if f.Limit < 0 || f.Limit > MaxListLimit {
		return fmt.Errorf("%w: limit %d outside [1, %d]", ErrInvalidLimit, f.Limit, MaxListLimit)
	}
	if f.Offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidLimit, f.Offset)
	}
	return nil
}

type TransactionStats struct {
	Total                int64   `json:"total"`
	Succeeded            int64   `json:"succeeded"`
	Failed               int64   `json:"failed"`
	Pending              int64   `json:"pending"`
	AvgProcessingTimeMs  float64 `json:"avgProcessingTimeMs"`
	TotalSucceededAmount float64 `json:"totalSucceededAmount"`
}

type TransactionLogRepository interface {
	Create(ctx context.Context, entry *model.TransactionLog) (int64, error)
	Update(ctx context.Context, id int64, update TransactionLogUpdate) error
	GetByID(ctx context.Context, id int64) (*model.TransactionLog, error)
	GetByMessageID(ctx context.Context, messageID string) (*model.TransactionLog, error)
	List(ctx context.Context, filter ListFilter) ([]model.TransactionLog, error)
	Stats(ctx context.Context, dateFrom, dateTo *time.Time) (TransactionStats, error)
}

type TransactionLog struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTransactionLogRepository(db *gorm.DB, logger *zap.Logger) TransactionLogRepository {
	return &TransactionLog{db: db, logger: logger}
}

func (r *TransactionLog) Create(ctx context.Context, entry *model.TransactionLog) (int64, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return 0, err
	}

	return entry.ID, nil
}

func (r *TransactionLog) Update(ctx context.Context, id int64, update TransactionLogUpdate) error {
	values := update.Values()
	if len(values) == 0 {
		r.logger.Warn("No fields to update in transaction log", zap.Int64("logID", id))
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&model.TransactionLog{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *TransactionLog) GetByID(ctx context.Context, id int64) (*model.TransactionLog, error) {
	var entry model.TransactionLog

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err == nil {
		return &entry, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLogNotFound
	}

	return nil, err
}

// GetByMessageID resolves the newest row for a message id. Message ids are
// not unique by construction, so most-recent-first is the contract.
func (r *TransactionLog) GetByMessageID(ctx context.Context, messageID string) (*model.TransactionLog, error) {
	var entry model.TransactionLog

	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("created_at DESC").
		First(&entry).Error
	if err == nil {
		return &entry, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLogNotFound
	}

	return nil, err
}

func (r *TransactionLog) List(ctx context.Context, filter ListFilter) ([]model.TransactionLog, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	query := r.db.WithContext(ctx).Model(&model.TransactionLog{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OperationType != "" {
		query = query.Where("operation_type = ?", filter.OperationType)
	}
	if filter.PhoneNumber != "" {
		query = query.Where("phone_number = ?", filter.PhoneNumber)
	}
	if filter.TransactionID != "" {
		query = query.Where("transaction_id = ?", filter.TransactionID)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var entries []model.TransactionLog
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *TransactionLog) Stats(ctx context.Context, dateFrom, dateTo *time.Time) (TransactionStats, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionLog{})

	if dateFrom != nil {
		query = query.Where("created_at >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("created_at <= ?", *dateTo)
	}

	var row struct {
		Total                int64
		Succeeded            int64
		Failed               int64
		Pending              int64
		AvgProcessingTimeMs  *float64
		TotalSucceededAmount *float64
	}

	err := query.Select(
		"COUNT(*) AS total, " +
			"COUNT(CASE WHEN status = 'SUCCESS' THEN 1 END) AS succeeded, " +
			"COUNT(CASE WHEN status = 'FAILED' THEN 1 END) AS failed, " +
			"COUNT(CASE WHEN status = 'PENDING' THEN 1 END) AS pending, " +
			"AVG(processing_time_ms) AS avg_processing_time_ms, " +
			"SUM(CASE WHEN status = 'SUCCESS' THEN CAST(amount AS DECIMAL(18,2)) ELSE 0 END) AS total_succeeded_amount").
		Scan(&row).Error
	if err != nil {
		return TransactionStats{}, err
	}

	stats := TransactionStats{
		Total:     row.Total,
		Succeeded: row.Succeeded,
		Failed:    row.Failed,
		Pending:   row.Pending,
	}
	if row.AvgProcessingTimeMs != nil {
		stats.AvgProcessingTimeMs = *row.AvgProcessingTimeMs
	}
	if row.TotalSucceededAmount != nil {
		stats.TotalSucceededAmount = *row.TotalSucceededAmount
	}

	return stats, nil
}
