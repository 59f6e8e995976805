package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/config"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/headers"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/metrics"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/msgid"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/params"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/publishers"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"
	"go.uber.org/zap"
)

const defaultGatewayTimeout = 60 * time.Second

type PaymentService interface {
	SendPush(ctx context.Context, cmd SendPushCommand) (PaymentResult, error)
	CancelPush(ctx context.Context, cmd CancelPushCommand) (PaymentResult, error)
	GetStatus(ctx context.Context, cmd GetStatusCommand) (PaymentResult, error)
	Reverse(ctx context.Context, cmd ReverseCommand) (PaymentResult, error)
	CreateQr(ctx context.Context, cmd CreateQrCommand) (PaymentResult, error)
	GetQrStatus(ctx context.Context, cmd QrStatusCommand) (PaymentResult, error)
	ReverseQr(ctx context.Context, cmd ReverseQrCommand) (PaymentResult, error)
}

type Payments struct {
	resolver    params.Resolver
	headers     headers.Builder
	ids         msgid.Generator
	repo        repository.TransactionLogRepository
	gateway     nequi.Client
	events      publishers.EventPublisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
	environment string
}

func NewPaymentService(resolver params.Resolver, headerBuilder headers.Builder, ids msgid.Generator,
	repo repository.TransactionLogRepository, gateway nequi.Client, events publishers.EventPublisher,
	m *metrics.Metrics, cfg *config.Config, logger *zap.Logger) PaymentService {
	return &Payments{
		resolver:    resolver,
		headers:     headerBuilder,
		ids:         ids,
		repo:        repo,
		gateway:     gateway,
		events:      events,
		metrics:     m,
		logger:      logger,
		environment: cfg.Environment,
	}
}

// gatewayCall describes one outbound operation for the shared pipeline:
// correlate, resolve config, log PENDING, call, classify, persist terminal
// state, and (for cancel/reverse) override the parent row.
type gatewayCall struct {
	operation        model.OperationType
	urlKey           string
	channel          string
	serviceName      string
	serviceOperation string
	serviceVersion   string
	body             func(messageID string) any
	customize        func(entry *model.TransactionLog)
	parent           *model.TransactionLog
	overrideStatus   model.TransactionStatus
	extract          func(resp *nequi.Response) string
}

func (p *Payments) execute(ctx context.Context, rc RequestContext, call gatewayCall) (PaymentResult, error) {
	messageID := p.ids.Generate(rc.StationCode, rc.EquipmentCode)

	// Pre-flight: configuration failures return before any log row exists.
	hdrs, err := p.headers.Build(ctx)
	if err != nil {
		p.logger.Error("Gateway headers unavailable",
			zap.String("messageID", messageID),
			zap.String("operation", string(call.operation)),
			zap.Error(err))
		return PaymentResult{}, newError(ErrCodeConfiguration, call.operation, messageID, err)
	}

	url, err := p.resolver.Value(ctx, call.urlKey)
	if err != nil {
		p.logger.Error("Gateway URL not configured",
			zap.String("urlKey", call.urlKey),
			zap.String("operation", string(call.operation)),
			zap.Error(err))
		return PaymentResult{}, newError(ErrCodeConfiguration, call.operation, messageID,
			fmt.Errorf("url %s: %w", call.urlKey, err))
	}

	timeout := p.resolveTimeout(ctx)

	envelope := nequi.BuildEnvelope(nequi.BuildParams{
		Channel:          call.channel,
		MessageID:        messageID,
		StationCode:      rc.StationCode,
		EquipmentCode:    rc.EquipmentCode,
		ServiceName:      call.serviceName,
		ServiceOperation: call.serviceOperation,
		ServiceVersion:   call.serviceVersion,
		Body:             call.body(messageID),
	})

	entry := &model.TransactionLog{
		MessageID:     messageID,
		OperationType: call.operation,
		Status:        model.StatusPending,
		Currency:      model.DefaultCurrency,
		Environment:   p.environment,
		ClientIP:      optional(rc.ClientIP),
		UserAgent:     optional(rc.UserAgent),
		Reference1:    optional(rc.StationCode),
		Reference2:    optional(rc.EquipmentCode),
		Reference3:    &messageID,
	}
	if raw, merr := json.Marshal(envelope); merr == nil {
		payload := string(raw)
		entry.RequestPayload = &payload
	}
	if call.customize != nil {
		call.customize(entry)
	}
	if call.parent != nil {
		entry.ParentID = &call.parent.ID
	}

	logID, err := p.repo.Create(ctx, entry)
	if err != nil {
		p.logger.Error("Failed to create transaction log",
			zap.String("messageID", messageID),
			zap.String("operation", string(call.operation)),
			zap.Error(err))
		return PaymentResult{}, newError(ErrCodeStore, call.operation, messageID, err)
	}

	start := time.Now()
	resp, callErr := p.gateway.Send(ctx, url, envelope, hdrs, timeout)
	elapsed := time.Since(start).Milliseconds()
	p.metrics.ObserveGatewayCall(string(call.operation), time.Since(start))

	if callErr != nil {
		status := model.StatusFailed
		if errors.Is(callErr, nequi.ErrTimeout) {
			status = model.StatusTimeout
		}

		errMsg := callErr.Error()
		auditOK := p.finalize(ctx, logID, repository.TransactionLogUpdate{
			Status:           &status,
			ErrorMessage:     &errMsg,
			ProcessingTimeMs: &elapsed,
		})
		p.metrics.RecordOperation(string(call.operation), string(status))
		p.publishEvent(ctx, logID, entry, "", status, elapsed)

		p.logger.Error("Nequi request failed",
			zap.String("messageID", messageID),
			zap.String("operation", string(call.operation)),
			zap.Int64("processingTimeMs", elapsed),
			zap.Error(callErr))

		svcErr := newError(ErrCodeGatewayUnreachable, call.operation, messageID, callErr)
		svcErr.AuditIncomplete = !auditOK
		return PaymentResult{}, svcErr
	}

	status := resp.Status()
	var respPayload *string
	if raw, merr := json.Marshal(resp); merr == nil {
		payload := string(raw)
		respPayload = &payload
	}

	if resp.IsSuccess() {
		success := model.StatusSuccess
		update := repository.TransactionLogUpdate{
			Status:                 &success,
			NequiStatusCode:        &status.StatusCode,
			NequiStatusDescription: &status.StatusDesc,
			ResponsePayload:        respPayload,
			ProcessingTimeMs:       &elapsed,
		}

		transactionID := ""
		if call.extract != nil {
			transactionID = strings.TrimSpace(call.extract(resp))
			if transactionID != "" {
				update.TransactionID = &transactionID
			}
		}

		auditOK := p.finalize(ctx, logID, update)
		p.metrics.RecordOperation(string(call.operation), string(model.StatusSuccess))

		if call.parent != nil && call.overrideStatus != "" {
			p.overrideParent(ctx, call.parent.ID, call.overrideStatus, messageID)
		}

		p.publishEvent(ctx, logID, entry, transactionID, model.StatusSuccess, elapsed)

		p.logger.Info("Nequi operation succeeded",
			zap.String("messageID", messageID),
			zap.String("operation", string(call.operation)),
			zap.String("transactionID", transactionID),
			zap.Int64("processingTimeMs", elapsed))

		return PaymentResult{
			Success:          true,
			Message:          "Operación exitosa",
			MessageID:        messageID,
			TransactionID:    transactionID,
			StatusCode:       status.StatusCode,
			StatusDesc:       status.StatusDesc,
			ProcessingTimeMs: elapsed,
			AuditIncomplete:  !auditOK,
			Data:             resp,
		}, nil
	}

	// 200 with a non-zero vendor code: the gateway declined the operation.
	failed := model.StatusFailed
	errMsg := fmt.Sprintf("Error %s = %s", status.StatusCode, status.StatusDesc)
	update := repository.TransactionLogUpdate{
		Status:                 &failed,
		NequiStatusCode:        &status.StatusCode,
		NequiStatusDescription: &status.StatusDesc,
		ErrorMessage:           &errMsg,
		ResponsePayload:        respPayload,
		ProcessingTimeMs:       &elapsed,
	}

	auditOK := p.finalize(ctx, logID, update)
	p.metrics.RecordOperation(string(call.operation), string(model.StatusFailed))
	p.publishEvent(ctx, logID, entry, "", model.StatusFailed, elapsed)

	p.logger.Warn("Nequi rejected operation",
		zap.String("messageID", messageID),
		zap.String("operation", string(call.operation)),
		zap.String("statusCode", status.StatusCode),
		zap.String("statusDesc", status.StatusDesc))

	return PaymentResult{}, Error{
		Code:            ErrCodeBusinessRejection,
		Operation:       call.operation,
		MessageID:       messageID,
		VendorCode:      status.StatusCode,
		VendorDesc:      status.StatusDesc,
		AuditIncomplete: !auditOK,
		Cause:           errors.New(errMsg),
	}
}

// finalize applies the terminal update. A store failure here must not mask
// the gateway-derived outcome; it is logged, counted, and surfaced as an
// audit flag on the returned result.
func (p *Payments) finalize(ctx context.Context, logID int64, update repository.TransactionLogUpdate) bool {
	if err := p.repo.Update(ctx, logID, update); err != nil {
		p.metrics.AuditWriteFailures.Inc()
		p.logger.Error("Failed to update transaction log after gateway call",
			zap.Int64("logID", logID),
			zap.Error(err))
		return false
	}

	return true
}

// overrideParent forces the originating row to CANCELLED/REVERSED after a
// successful child operation. Best-effort: not transactional with the
// child's terminal write; an external reconciliation sweep catches orphans.
func (p *Payments) overrideParent(ctx context.Context, parentID int64, status model.TransactionStatus, messageID string) {
	if err := p.repo.Update(ctx, parentID, repository.TransactionLogUpdate{Status: &status}); err != nil {
		p.metrics.ParentOverrideFailures.Inc()
		p.logger.Error("Failed to override parent transaction status",
			zap.Int64("parentID", parentID),
			zap.String("status", string(status)),
			zap.String("messageID", messageID),
			zap.Error(err))
		return
	}

	p.logger.Info("Parent transaction status overridden",
		zap.Int64("parentID", parentID),
		zap.String("status", string(status)))
}

func (p *Payments) publishEvent(ctx context.Context, logID int64, entry *model.TransactionLog,
	transactionID string, status model.TransactionStatus, elapsed int64) {
	event := publishers.TransactionEvent{
		LogID:            logID,
		MessageID:        entry.MessageID,
		TransactionID:    transactionID,
		OperationType:    string(entry.OperationType),
		Status:           string(status),
		PhoneNumber:      deref(entry.PhoneNumber),
		Amount:           deref(entry.Amount),
		ProcessingTimeMs: elapsed,
		OccurredAt:       time.Now().UTC(),
	}

	if err := p.events.PublishTransaction(ctx, event); err != nil {
		p.metrics.EventPublishFailures.Inc()
	}
}

func (p *Payments) resolveTimeout(ctx context.Context) time.Duration {
	value, err := p.resolver.Value(ctx, params.NequiTimeoutCloud)
	if err != nil {
		return defaultGatewayTimeout
	}

	ms, err := strconv.Atoi(value)
	if err != nil || ms <= 0 {
		p.logger.Warn("Invalid gateway timeout parameter", zap.String("value", value))
		return defaultGatewayTimeout
	}

	return time.Duration(ms) * time.Millisecond
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
