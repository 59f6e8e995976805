package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/config"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/metrics"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/mocks"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/params"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/service"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testMessageID = "ks8f2a91xq"

type paymentsFixture struct {
	resolver *mocks.ParamsResolver
	headers  *mocks.HeadersBuilder
	ids      *mocks.MessageIDGenerator
	repo     *mocks.TransactionLogRepository
	gateway  *mocks.NequiClient
	events   *mocks.EventPublisher
	svc      service.PaymentService
}

func newPaymentsFixture() *paymentsFixture {
	f := &paymentsFixture{
		resolver: &mocks.ParamsResolver{},
		headers:  &mocks.HeadersBuilder{},
		ids:      &mocks.MessageIDGenerator{},
		repo:     &mocks.TransactionLogRepository{},
		gateway:  &mocks.NequiClient{},
		events:   &mocks.EventPublisher{},
	}

	f.svc = service.NewPaymentService(f.resolver, f.headers, f.ids, f.repo, f.gateway, f.events,
		metrics.NewMetricsWith(prometheus.NewRegistry()), &config.Config{Environment: "test"}, zap.NewNop())

	return f
}

func (f *paymentsFixture) expectPreflight(urlKey, url string) {
	f.ids.On("Generate", mock.Anything, mock.Anything).Return(testMessageID)
	f.headers.On("Build", mock.Anything).Return(map[string]string{
		"Content-Type":  "application/json",
		"x-api-key":     "test-key",
		"Authorization": "Bearer token",
	}, nil)
	f.resolver.On("Value", mock.Anything, urlKey).Return(url, nil)
	f.resolver.On("Value", mock.Anything, params.NequiTimeoutCloud).Return("60000", nil)
}

func vendorResponse(code, desc string, payloads map[string]any) *nequi.Response {
	body := map[string]json.RawMessage{}
	for name, payload := range payloads {
		raw, _ := json.Marshal(payload)
		body[name] = raw
	}

	return &nequi.Response{
		ResponseMessage: nequi.ResponseMessage{
			ResponseHeader: nequi.ResponseHeader{
				MessageID: testMessageID,
				Status:    nequi.Status{StatusCode: code, StatusDesc: desc},
			},
			ResponseBody: nequi.ResponseBody{Any: body},
		},
	}
}

func TestSendPush(t *testing.T) {
	ctx := context.Background()

	cmd := service.SendPushCommand{
		PhoneNumber: "3998764643",
		Value:       "1000",
		RequestContext: service.RequestContext{
			StationCode:   "4217",
			EquipmentCode: "06",
		},
	}

	t.Run("should return trimmed transaction id when vendor accepts", func(t *testing.T) {
		f := newPaymentsFixture()
		f.expectPreflight(params.NequiUnregisteredPayURL, "https://nequi/unregisteredPayment")

		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.TransactionLog) bool {
			return entry.Status == model.StatusPending &&
				entry.OperationType == model.OperationSendPush &&
				entry.MessageID == testMessageID &&
				entry.PhoneNumber != nil && *entry.PhoneNumber == "3998764643" &&
				entry.Amount != nil && *entry.Amount == "1000" &&
				entry.RequestPayload != nil
		})).Return(int64(7), nil)

		resp := vendorResponse("0", "SUCCESS", map[string]any{
			"unregisteredPaymentRS": map[string]string{"transactionId": " ABC123 "},
		})
		f.gateway.On("Send", mock.Anything, "https://nequi/unregisteredPayment",
			mock.MatchedBy(func(envelope *nequi.Envelope) bool {
				return envelope.RequestMessage.RequestHeader.Channel == nequi.ChannelPush &&
					envelope.RequestMessage.RequestHeader.ClientID == "4217-06" &&
					envelope.RequestMessage.RequestHeader.MessageID == testMessageID
			}),
			mock.Anything, mock.Anything).Return(resp, nil)

		f.repo.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(u repository.TransactionLogUpdate) bool {
			return u.Status != nil && *u.Status == model.StatusSuccess &&
				u.TransactionID != nil && *u.TransactionID == "ABC123" &&
				u.NequiStatusCode != nil && *u.NequiStatusCode == "0" &&
				u.ProcessingTimeMs != nil
		})).Return(nil)
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		result, err := f.svc.SendPush(ctx, cmd)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "ABC123", result.TransactionID)
		assert.Equal(t, testMessageID, result.MessageID)
		assert.Equal(t, "0", result.StatusCode)
		assert.False(t, result.AuditIncomplete)
		f.repo.AssertExpectations(t)
		f.gateway.AssertExpectations(t)
	})

	t.Run("should classify non-zero vendor code as business rejection", func(t *testing.T) {
		f := newPaymentsFixture()
		f.expectPreflight(params.NequiUnregisteredPayURL, "https://nequi/unregisteredPayment")

		f.repo.On("Create", mock.Anything, mock.Anything).Return(int64(8), nil)
		f.gateway.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(vendorResponse("57", "Error de negocio", nil), nil)

		f.repo.On("Update", mock.Anything, int64(8), mock.MatchedBy(func(u repository.TransactionLogUpdate) bool {
			return u.Status != nil && *u.Status == model.StatusFailed &&
				u.ErrorMessage != nil && *u.ErrorMessage == "Error 57 = Error de negocio" &&
				u.NequiStatusCode != nil && *u.NequiStatusCode == "57"
		})).Return(nil)
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.SendPush(ctx, cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeBusinessRejection, svcErr.Code)
		assert.Equal(t, "57", svcErr.VendorCode)
		assert.Equal(t, "Error de negocio", svcErr.VendorDesc)
		f.repo.AssertExpectations(t)
	})

	t.Run("should record TIMEOUT when the gateway call exceeds its deadline", func(t *testing.T) {
		f := newPaymentsFixture()
		f.expectPreflight(params.NequiUnregisteredPayURL, "https://nequi/unregisteredPayment")

		f.repo.On("Create", mock.Anything, mock.Anything).Return(int64(9), nil)
		f.gateway.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nequi.ErrTimeout)

		f.repo.On("Update", mock.Anything, int64(9), mock.MatchedBy(func(u repository.TransactionLogUpdate) bool {
			return u.Status != nil && *u.Status == model.StatusTimeout && u.ErrorMessage != nil
		})).Return(nil)
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.SendPush(ctx, cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeGatewayUnreachable, svcErr.Code)
		assert.ErrorIs(t, err, nequi.ErrTimeout)
		f.repo.AssertExpectations(t)
	})

	t.Run("should fail before logging when credentials are unavailable", func(t *testing.T) {
		f := newPaymentsFixture()
		f.ids.On("Generate", mock.Anything, mock.Anything).Return(testMessageID)
		f.headers.On("Build", mock.Anything).Return(nil, errors.New("HEADERS_INCOMPLETE"))

		_, err := f.svc.SendPush(ctx, cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeConfiguration, svcErr.Code)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should flag incomplete audit when the terminal write fails", func(t *testing.T) {
		f := newPaymentsFixture()
		f.expectPreflight(params.NequiUnregisteredPayURL, "https://nequi/unregisteredPayment")

		f.repo.On("Create", mock.Anything, mock.Anything).Return(int64(10), nil)
		f.gateway.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(vendorResponse("0", "SUCCESS", map[string]any{
				"unregisteredPaymentRS": map[string]string{"transactionId": "ABC123"},
			}), nil)
		f.repo.On("Update", mock.Anything, int64(10), mock.Anything).Return(errors.New("connection lost"))
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		result, err := f.svc.SendPush(ctx, cmd)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "ABC123", result.TransactionID)
		assert.True(t, result.AuditIncomplete)
	})
}

func TestCancelPush(t *testing.T) {
	ctx := context.Background()

	cmd := service.CancelPushCommand{
		TransactionID: "ABC123",
		PhoneNumber:   "3998764643",
	}

	t.Run("should override parent to CANCELLED on vendor acceptance", func(t *testing.T) {
		f := newPaymentsFixture()

		parent := model.TransactionLog{ID: 7, MessageID: "parentmsg1", OperationType: model.OperationSendPush}
		f.repo.On("List", mock.Anything, repository.ListFilter{
			TransactionID: "ABC123",
			OperationType: model.OperationSendPush,
			PhoneNumber:   "3998764643",
			Limit:         1,
		}).Return([]model.TransactionLog{parent}, nil)

		f.expectPreflight(params.NequiCancelPaymentURL, "https://nequi/cancelPayment")
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.TransactionLog) bool {
			return entry.OperationType == model.OperationCancelPush &&
				entry.ParentID != nil && *entry.ParentID == int64(7)
		})).Return(int64(11), nil)
		f.gateway.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(vendorResponse("0", "SUCCESS", nil), nil)

		f.repo.On("Update", mock.Anything, int64(11), mock.MatchedBy(func(u repository.TransactionLogUpdate) bool {
			return u.Status != nil && *u.Status == model.StatusSuccess
		})).Return(nil)
		f.repo.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(u repository.TransactionLogUpdate) bool {
			return u.Status != nil && *u.Status == model.StatusCancelled
		})).Return(nil)
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		result, err := f.svc.CancelPush(ctx, cmd)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		f.repo.AssertExpectations(t)
	})

	t.Run("should not create a row when the parent is missing", func(t *testing.T) {
		f := newPaymentsFixture()
		f.repo.On("List", mock.Anything, mock.Anything).Return([]model.TransactionLog{}, nil)

		_, err := f.svc.CancelPush(ctx, cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeParentNotFound, svcErr.Code)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should keep the cancellation successful when the override fails", func(t *testing.T) {
		f := newPaymentsFixture()

		parent := model.TransactionLog{ID: 7, MessageID: "parentmsg1", OperationType: model.OperationSendPush}
		f.repo.On("List", mock.Anything, mock.Anything).Return([]model.TransactionLog{parent}, nil)

		f.expectPreflight(params.NequiCancelPaymentURL, "https://nequi/cancelPayment")
		f.repo.On("Create", mock.Anything, mock.Anything).Return(int64(12), nil)
		f.gateway.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(vendorResponse("0", "SUCCESS", nil), nil)

		f.repo.On("Update", mock.Anything, int64(12), mock.Anything).Return(nil)
		f.repo.On("Update", mock.Anything, int64(7), mock.Anything).Return(errors.New("deadlock"))
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		result, err := f.svc.CancelPush(ctx, cmd)

		assert.NoError(t, err)
		assert.True(t, result.Success)
	})
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("should classify status queries like any other operation", func(t *testing.T) {
		f := newPaymentsFixture()
		f.expectPreflight(params.NequiStatusPaymentURL, "https://nequi/getStatusPayment")

		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.TransactionLog) bool {
			return entry.OperationType == model.OperationGetStatus &&
				entry.TransactionID != nil && *entry.TransactionID == "ABC123"
		})).Return(int64(13), nil)
		f.gateway.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(vendorResponse("20-05A", "Transaccion no existe", nil), nil)
		f.repo.On("Update", mock.Anything, int64(13), mock.Anything).Return(nil)
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.GetStatus(ctx, service.GetStatusCommand{TransactionID: "ABC123"})

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeBusinessRejection, svcErr.Code)
		assert.Equal(t, "20-05A", svcErr.VendorCode)
	})
}

func TestReverse(t *testing.T) {
	ctx := context.Background()

	cmd := service.ReverseCommand{
		MessageID:   "parentmsg1",
		PhoneNumber: "3998764643",
		Value:       "1000",
	}

	t.Run("should override parent to REVERSED on vendor acceptance", func(t *testing.T) {
		f := newPaymentsFixture()

		parent := &model.TransactionLog{ID: 21, MessageID: "parentmsg1", OperationType: model.OperationSendPush}
		f.repo.On("GetByMessageID", mock.Anything, "parentmsg1").Return(parent, nil)

		f.expectPreflight(params.NequiReversePaymentURL, "https://nequi/reverseTransaction")
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.TransactionLog) bool {
			return entry.OperationType == model.OperationReverse &&
				entry.ParentID != nil && *entry.ParentID == int64(21)
		})).Return(int64(22), nil)
		f.gateway.On("Send", mock.Anything, mock.Anything,
			mock.MatchedBy(func(envelope *nequi.Envelope) bool {
				body, ok := envelope.RequestMessage.RequestBody.Any.(nequi.ReversionBody)
				return ok && body.ReversionRQ.MessageID == "parentmsg1" &&
					body.ReversionRQ.Type == "payment"
			}),
			mock.Anything, mock.Anything).Return(vendorResponse("0", "SUCCESS", nil), nil)

		f.repo.On("Update", mock.Anything, int64(22), mock.Anything).Return(nil)
		f.repo.On("Update", mock.Anything, int64(21), mock.MatchedBy(func(u repository.TransactionLogUpdate) bool {
			return u.Status != nil && *u.Status == model.StatusReversed
		})).Return(nil)
		f.events.On("PublishTransaction", mock.Anything, mock.Anything).Return(nil)

		result, err := f.svc.Reverse(ctx, cmd)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		f.repo.AssertExpectations(t)
	})

	t.Run("should report PARENT_NOT_FOUND for an unknown message id", func(t *testing.T) {
		f := newPaymentsFixture()
		f.repo.On("GetByMessageID", mock.Anything, "parentmsg1").Return(nil, repository.ErrLogNotFound)

		_, err := f.svc.Reverse(ctx, cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeParentNotFound, svcErr.Code)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
