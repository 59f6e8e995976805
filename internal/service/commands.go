package service

// RequestContext is ambient caller information captured on every operation:
// origin of the request and the POS station/equipment issuing it.
type RequestContext struct {
	ClientIP      string
	UserAgent     string
	StationCode   string
	EquipmentCode string
}

type SendPushCommand struct {
	PhoneNumber string
	Value       string
	RequestContext
}

type CancelPushCommand struct {
	TransactionID string
	PhoneNumber   string
	RequestContext
}

type GetStatusCommand struct {
	TransactionID string
	RequestContext
}

type ReverseCommand struct {
	MessageID   string
	PhoneNumber string
	Value       string
	RequestContext
}

type CreateQrCommand struct {
	Value       string
	PhoneNumber string
	RequestContext
}

type QrStatusCommand struct {
	QrID string
	RequestContext
}

type ReverseQrCommand struct {
	MessageID   string
	PhoneNumber string
	Value       string
	RequestContext
}
