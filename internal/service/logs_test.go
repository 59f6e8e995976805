package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/mocks"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestTransactionLogService(t *testing.T) {
	ctx := context.Background()

	t.Run("should map a missing row to TRANSACTION_NOT_FOUND", func(t *testing.T) {
		repo := &mocks.TransactionLogRepository{}
		repo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrLogNotFound)
		svc := service.NewTransactionLogService(repo, zap.NewNop())

		_, err := svc.GetByID(ctx, 99)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeLogNotFound, svcErr.Code)
	})

	t.Run("should map an invalid limit to INVALID_FILTER", func(t *testing.T) {
		repo := &mocks.TransactionLogRepository{}
		repo.On("List", mock.Anything, mock.Anything).
			Return(nil, repository.ErrInvalidLimit)
		svc := service.NewTransactionLogService(repo, zap.NewNop())

		_, err := svc.List(ctx, repository.ListFilter{Limit: 5000})

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeInvalidFilter, svcErr.Code)
	})

	t.Run("should pass listed rows through untouched", func(t *testing.T) {
		repo := &mocks.TransactionLogRepository{}
		rows := []model.TransactionLog{{ID: 1, MessageID: "abc"}, {ID: 2, MessageID: "def"}}
		repo.On("List", mock.Anything, mock.Anything).Return(rows, nil)
		svc := service.NewTransactionLogService(repo, zap.NewNop())

		entries, err := svc.List(ctx, repository.ListFilter{})

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestMarkTimeout(t *testing.T) {
	ctx := context.Background()

	t.Run("should expire a PENDING row with a timeout message", func(t *testing.T) {
		repo := &mocks.TransactionLogRepository{}
		repo.On("GetByID", mock.Anything, int64(5)).
			Return(&model.TransactionLog{ID: 5, Status: model.StatusPending}, nil)
		repo.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(u repository.TransactionLogUpdate) bool {
			return u.Status != nil && *u.Status == model.StatusTimeout &&
				u.ErrorMessage != nil && *u.ErrorMessage == "Transaction timed out waiting for response"
		})).Return(nil)
		svc := service.NewTransactionLogService(repo, zap.NewNop())

		err := svc.MarkTimeout(ctx, 5)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("should leave terminal rows untouched", func(t *testing.T) {
		repo := &mocks.TransactionLogRepository{}
		repo.On("GetByID", mock.Anything, int64(6)).
			Return(&model.TransactionLog{ID: 6, Status: model.StatusSuccess}, nil)
		svc := service.NewTransactionLogService(repo, zap.NewNop())

		err := svc.MarkTimeout(ctx, 6)

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should surface store failures on lookup", func(t *testing.T) {
		repo := &mocks.TransactionLogRepository{}
		repo.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))
		svc := service.NewTransactionLogService(repo, zap.NewNop())

		err := svc.MarkTimeout(ctx, 7)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeStore, svcErr.Code)
	})
}
