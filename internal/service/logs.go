package service

import (
	"context"
	"errors"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"go.uber.org/zap"
)

const timeoutErrorMessage = "Transaction timed out waiting for response"

// TransactionLogService exposes the audit trail for querying and for the
// operational sweep that expires rows stuck in PENDING.
type TransactionLogService interface {
	GetByID(ctx context.Context, id int64) (*model.TransactionLog, error)
	GetByMessageID(ctx context.Context, messageID string) (*model.TransactionLog, error)
	List(ctx context.Context, filter repository.ListFilter) ([]model.TransactionLog, error)
	Stats(ctx context.Context, dateFrom, dateTo *time.Time) (repository.TransactionStats, error)
	MarkTimeout(ctx context.Context, id int64) error
}

type TransactionLogs struct {
	repo   repository.TransactionLogRepository
	logger *zap.Logger
}

func NewTransactionLogService(repo repository.TransactionLogRepository, logger *zap.Logger) TransactionLogService {
	return &TransactionLogs{repo: repo, logger: logger}
}

func (s *TransactionLogs) GetByID(ctx context.Context, id int64) (*model.TransactionLog, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrapLookup(err)
	}

	return entry, nil
}

func (s *TransactionLogs) GetByMessageID(ctx context.Context, messageID string) (*model.TransactionLog, error) {
	entry, err := s.repo.GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, s.wrapLookup(err)
	}

	return entry, nil
}

func (s *TransactionLogs) List(ctx context.Context, filter repository.ListFilter) ([]model.TransactionLog, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidLimit) {
			return nil, newError(ErrCodeInvalidFilter, "", "", err)
		}
		return nil, newError(ErrCodeStore, "", "", err)
	}

	return entries, nil
}

func (s *TransactionLogs) Stats(ctx context.Context, dateFrom, dateTo *time.Time) (repository.TransactionStats, error) {
	stats, err := s.repo.Stats(ctx, dateFrom, dateTo)
	if err != nil {
		return repository.TransactionStats{}, newError(ErrCodeStore, "", "", err)
	}

	return stats, nil
}

// MarkTimeout expires a PENDING row whose outcome was never recorded. Rows
// already in a terminal state are left untouched.
func (s *TransactionLogs) MarkTimeout(ctx context.Context, id int64) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.wrapLookup(err)
	}

	if entry.Status.IsTerminal() {
		s.logger.Warn("Refusing to expire a terminal transaction",
			zap.Int64("logID", id),
			zap.String("status", string(entry.Status)))
		return nil
	}

	status := model.StatusTimeout
	message := timeoutErrorMessage
	err = s.repo.Update(ctx, id, repository.TransactionLogUpdate{
		Status:       &status,
		ErrorMessage: &message,
	})
	if err != nil {
		return newError(ErrCodeStore, entry.OperationType, entry.MessageID, err)
	}

	s.logger.Info("Transaction expired as timed out", zap.Int64("logID", id))
	return nil
}

func (s *TransactionLogs) wrapLookup(err error) error {
	if errors.Is(err, repository.ErrLogNotFound) {
		return newError(ErrCodeLogNotFound, "", "", err)
	}
	return newError(ErrCodeStore, "", "", err)
}
