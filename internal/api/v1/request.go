package v1

type SendPushRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Value       string `json:"value" validate:"required,amount"`
}

type CancelPushRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,phone"`
}

type ReverseRequest struct {
	MessageID   string `json:"messageId" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Value       string `json:"value" validate:"required,amount"`
}

type CreateQrRequest struct {
	Value       string `json:"value" validate:"required,amount"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
}
