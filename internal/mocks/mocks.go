package mocks

import (
	"context"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/publishers"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"
	"github.com/stretchr/testify/mock"
)

type ParamsResolver struct {
	mock.Mock
}

func (m *ParamsResolver) Value(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *ParamsResolver) CompanyValue(ctx context.Context, key string, companyID int64) (string, error) {
	args := m.Called(ctx, key, companyID)
	return args.String(0), args.Error(1)
}

type TokenProvider struct {
	mock.Mock
}

func (m *TokenProvider) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type HeadersBuilder struct {
	mock.Mock
}

func (m *HeadersBuilder) Build(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)

	var headers map[string]string
	if v := args.Get(0); v != nil {
		headers = v.(map[string]string)
	}
	return headers, args.Error(1)
}

type MessageIDGenerator struct {
	mock.Mock
}

func (m *MessageIDGenerator) Generate(stationCode, equipmentCode string) string {
	args := m.Called(stationCode, equipmentCode)
	return args.String(0)
}

type NequiClient struct {
	mock.Mock
}

func (m *NequiClient) Send(ctx context.Context, url string, envelope *nequi.Envelope,
	headers map[string]string, timeout time.Duration) (*nequi.Response, error) {
	args := m.Called(ctx, url, envelope, headers, timeout)

	var resp *nequi.Response
	if v := args.Get(0); v != nil {
		resp = v.(*nequi.Response)
	}
	return resp, args.Error(1)
}

type TransactionLogRepository struct {
	mock.Mock
}

func (m *TransactionLogRepository) Create(ctx context.Context, entry *model.TransactionLog) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TransactionLogRepository) Update(ctx context.Context, id int64, update repository.TransactionLogUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *TransactionLogRepository) GetByID(ctx context.Context, id int64) (*model.TransactionLog, error) {
	args := m.Called(ctx, id)

	var entry *model.TransactionLog
	if v := args.Get(0); v != nil {
		entry = v.(*model.TransactionLog)
	}
	return entry, args.Error(1)
}

func (m *TransactionLogRepository) GetByMessageID(ctx context.Context, messageID string) (*model.TransactionLog, error) {
	args := m.Called(ctx, messageID)

	var entry *model.TransactionLog
	if v := args.Get(0); v != nil {
		entry = v.(*model.TransactionLog)
	}
	return entry, args.Error(1)
}

func (m *TransactionLogRepository) List(ctx context.Context, filter repository.ListFilter) ([]model.TransactionLog, error) {
	args := m.Called(ctx, filter)

	var entries []model.TransactionLog
	if v := args.Get(0); v != nil {
		entries = v.([]model.TransactionLog)
	}
	return entries, args.Error(1)
}

func (m *TransactionLogRepository) Stats(ctx context.Context, dateFrom, dateTo *time.Time) (repository.TransactionStats, error) {
	args := m.Called(ctx, dateFrom, dateTo)
	return args.Get(0).(repository.TransactionStats), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishTransaction(ctx context.Context, event publishers.TransactionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
