package v1

import (
	"errors"
	"strconv"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/api/validator"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/constants"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	stationHeader   = "x-station-code"
	equipmentHeader = "x-equipment-code"
)

type Handler struct {
	logger    *zap.Logger
	payments  service.PaymentService
	logs      service.TransactionLogService
	validator validator.XValidator
}

func NewHandler(logger *zap.Logger, payments service.PaymentService,
	logs service.TransactionLogService, v validator.XValidator) *Handler {
	return &Handler{logger: logger, payments: payments, logs: logs, validator: v}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) requestContext(c *fiber.Ctx) service.RequestContext {
	return service.RequestContext{
		ClientIP:      c.IP(),
		UserAgent:     c.Get(fiber.HeaderUserAgent),
		StationCode:   c.Get(stationHeader),
		EquipmentCode: c.Get(equipmentHeader),
	}
}

func (h *Handler) parseBody(c *fiber.Ctx, request any) error {
	if err := c.BodyParser(request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("path", c.Path()))
		return invalidRequest(err)
	}

	if err := h.validator.Validate(request); err != nil {
		return invalidRequest(err)
	}

	return nil
}

func invalidRequest(cause error) error {
	return service.Error{Code: constants.ErrCodeInvalidRequestBody, Cause: cause}
}

func (h *Handler) SendPush(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request SendPushRequest
	if err := h.parseBody(c, &request); err != nil {
		return err
	}

	result, err := h.payments.SendPush(ctx, service.SendPushCommand{
		PhoneNumber:    request.PhoneNumber,
		Value:          request.Value,
		RequestContext: h.requestContext(c),
	})
	if err != nil {
		h.logger.Error("Failed to send push payment",
			zap.Error(err),
			zap.String("phoneNumber", request.PhoneNumber))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handler) CancelPush(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request CancelPushRequest
	if err := h.parseBody(c, &request); err != nil {
		return err
	}

	result, err := h.payments.CancelPush(ctx, service.CancelPushCommand{
		TransactionID:  request.TransactionID,
		PhoneNumber:    request.PhoneNumber,
		RequestContext: h.requestContext(c),
	})
	if err != nil {
		h.logger.Error("Failed to cancel push payment",
			zap.Error(err),
			zap.String("transactionID", request.TransactionID))
		return err
	}

	return c.JSON(result)
}

func (h *Handler) GetStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	transactionID := c.Params("transactionId")
	if transactionID == "" {
		return invalidRequest(errors.New("transactionId is required"))
	}

	result, err := h.payments.GetStatus(ctx, service.GetStatusCommand{
		TransactionID:  transactionID,
		RequestContext: h.requestContext(c),
	})
	if err != nil {
		h.logger.Error("Failed to query payment status",
			zap.Error(err),
			zap.String("transactionID", transactionID))
		return err
	}

	return c.JSON(result)
}

func (h *Handler) Reverse(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request ReverseRequest
	if err := h.parseBody(c, &request); err != nil {
		return err
	}

	result, err := h.payments.Reverse(ctx, service.ReverseCommand{
		MessageID:      request.MessageID,
		PhoneNumber:    request.PhoneNumber,
		Value:          request.Value,
		RequestContext: h.requestContext(c),
	})
	if err != nil {
		h.logger.Error("Failed to reverse payment",
			zap.Error(err),
			zap.String("parentMessageID", request.MessageID))
		return err
	}

	return c.JSON(result)
}

func (h *Handler) CreateQr(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request CreateQrRequest
	if err := h.parseBody(c, &request); err != nil {
		return err
	}

	result, err := h.payments.CreateQr(ctx, service.CreateQrCommand{
		Value:          request.Value,
		PhoneNumber:    request.PhoneNumber,
		RequestContext: h.requestContext(c),
	})
	if err != nil {
		h.logger.Error("Failed to create QR payment", zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handler) GetQrStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	qrID := c.Params("qrId")
	if qrID == "" {
		return invalidRequest(errors.New("qrId is required"))
	}

	result, err := h.payments.GetQrStatus(ctx, service.QrStatusCommand{
		QrID:           qrID,
		RequestContext: h.requestContext(c),
	})
	if err != nil {
		h.logger.Error("Failed to query QR status",
			zap.Error(err),
			zap.String("qrID", qrID))
		return err
	}

	return c.JSON(result)
}

func (h *Handler) ReverseQr(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request ReverseRequest
	if err := h.parseBody(c, &request); err != nil {
		return err
	}

	result, err := h.payments.ReverseQr(ctx, service.ReverseQrCommand{
		MessageID:      request.MessageID,
		PhoneNumber:    request.PhoneNumber,
		Value:          request.Value,
		RequestContext: h.requestContext(c),
	})
	if err != nil {
		h.logger.Error("Failed to reverse QR payment",
			zap.Error(err),
			zap.String("parentMessageID", request.MessageID))
		return err
	}

	return c.JSON(result)
}

func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return invalidRequest(errors.New("id must be numeric"))
	}

	entry, err := h.logs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(toTransactionResponse(*entry))
}

func (h *Handler) GetTransactionByMessageID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	messageID := c.Params("messageId")
	if messageID == "" {
		return invalidRequest(errors.New("messageId is required"))
	}

	entry, err := h.logs.GetByMessageID(ctx, messageID)
	if err != nil {
		return err
	}

	return c.JSON(toTransactionResponse(*entry))
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	ctx := c.UserContext()

	filter, err := listFilterFromQuery(c)
	if err != nil {
		return err
	}

	entries, err := h.logs.List(ctx, filter)
	if err != nil {
		return err
	}

	response := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, 0, len(entries)),
		Total:        len(entries),
	}
	for _, entry := range entries {
		response.Transactions = append(response.Transactions, toTransactionResponse(entry))
	}

	return c.JSON(response)
}

func (h *Handler) TransactionStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	dateFrom, err := parseDateQuery(c, "dateFrom")
	if err != nil {
		return err
	}
	dateTo, err := parseDateQuery(c, "dateTo")
	if err != nil {
		return err
	}

	stats, err := h.logs.Stats(ctx, dateFrom, dateTo)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

func (h *Handler) ExpireTransaction(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return invalidRequest(errors.New("id must be numeric"))
	}

	if err := h.logs.MarkTimeout(ctx, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": string(model.StatusTimeout)})
}

func listFilterFromQuery(c *fiber.Ctx) (repository.ListFilter, error) {
	filter := repository.ListFilter{
		Status:        model.TransactionStatus(c.Query("status")),
		OperationType: model.OperationType(c.Query("operationType")),
		PhoneNumber:   c.Query("phoneNumber"),
		TransactionID: c.Query("transactionId"),
		Limit:         c.QueryInt("limit"),
		Offset:        c.QueryInt("offset"),
	}

	dateFrom, err := parseDateQuery(c, "dateFrom")
	if err != nil {
		return filter, err
	}
	dateTo, err := parseDateQuery(c, "dateTo")
	if err != nil {
		return filter, err
	}

	filter.DateFrom = dateFrom
	filter.DateTo = dateTo
	return filter, nil
}

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, invalidRequest(errors.New(name + " must be RFC3339"))
	}

	return &parsed, nil
}
