package nequi

import "time"

// Wire constants from the Nequi integration manual.
const (
	ChannelPush = "PNP04-C001"
	ChannelQR   = "PQR03-C001"

	ServiceRegion   = "C001"
	DefaultClientID = "12345"

	ServicePayments = "PaymentsService"
	ServiceReverse  = "ReverseServices"

	OperationUnregisteredPayment = "unregisteredPayment"
	OperationGetStatusPayment    = "getStatusPayment"
	OperationGenerateCodeQR      = "generateCodeQR"
	OperationReverseTransaction  = "reverseTransaction"

	MerchantCode         = "NIT_1"
	ReversionTypePayment = "payment"
)

type Envelope struct {
	RequestMessage RequestMessage `json:"RequestMessage"`
}

type RequestMessage struct {
	RequestHeader RequestHeader `json:"RequestHeader"`
	RequestBody   RequestBody   `json:"RequestBody"`
}

type RequestHeader struct {
	Channel     string      `json:"Channel"`
	RequestDate string      `json:"RequestDate"`
	MessageID   string      `json:"MessageID"`
	ClientID    string      `json:"ClientID"`
	Destination Destination `json:"Destination"`
}

type Destination struct {
	ServiceName      string `json:"ServiceName"`
	ServiceOperation string `json:"ServiceOperation"`
	ServiceRegion    string `json:"ServiceRegion"`
	ServiceVersion   string `json:"ServiceVersion"`
}

type RequestBody struct {
	Any any `json:"any"`
}

type BuildParams struct {
	Channel          string
	MessageID        string
	StationCode      string
	EquipmentCode    string
	ServiceName      string
	ServiceOperation string
	ServiceVersion   string
	Body             any
}

func BuildEnvelope(p BuildParams) *Envelope {
	return &Envelope{
		RequestMessage: RequestMessage{
			RequestHeader: RequestHeader{
				Channel:     p.Channel,
				RequestDate: time.Now().UTC().Format(time.RFC3339),
				MessageID:   p.MessageID,
				ClientID:    clientID(p.StationCode, p.EquipmentCode),
				Destination: Destination{
					ServiceName:      p.ServiceName,
					ServiceOperation: p.ServiceOperation,
					ServiceRegion:    ServiceRegion,
					ServiceVersion:   p.ServiceVersion,
				},
			},
			RequestBody: RequestBody{Any: p.Body},
		},
	}
}

func clientID(stationCode, equipmentCode string) string {
	if stationCode == "" && equipmentCode == "" {
		return DefaultClientID
	}
	return stationCode + "-" + equipmentCode
}

type UnregisteredPaymentBody struct {
	UnregisteredPaymentRQ UnregisteredPaymentRQ `json:"unregisteredPaymentRQ"`
}

type UnregisteredPaymentRQ struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
	Value       string `json:"value"`
	Reference1  string `json:"reference1,omitempty"`
	Reference2  string `json:"reference2,omitempty"`
	Reference3  string `json:"reference3,omitempty"`
}

type CancelUnregisteredPaymentBody struct {
	CancelUnregisteredPaymentRQ CancelUnregisteredPaymentRQ `json:"cancelUnregisteredPaymentRQ"`
}

type CancelUnregisteredPaymentRQ struct {
	Code          string `json:"code"`
	PhoneNumber   string `json:"phoneNumber"`
	TransactionID string `json:"transactionId"`
}

type GetStatusPaymentBody struct {
	GetStatusPaymentRQ GetStatusPaymentRQ `json:"getStatusPaymentRQ"`
}

type GetStatusPaymentRQ struct {
	CodeQR string `json:"codeQR"`
}

type GenerateCodeQRBody struct {
	GenerateCodeQRRQ GenerateCodeQRRQ `json:"generateCodeQRRQ"`
}

type GenerateCodeQRRQ struct {
	Code       string `json:"code"`
	Value      string `json:"value"`
	Reference1 string `json:"reference1,omitempty"`
	Reference2 string `json:"reference2,omitempty"`
	Reference3 string `json:"reference3,omitempty"`
}

type ReversionBody struct {
	ReversionRQ ReversionRQ `json:"reversionRQ"`
}

type ReversionRQ struct {
	PhoneNumber string `json:"phoneNumber"`
	Value       string `json:"value"`
	Code        string `json:"code"`
	MessageID   string `json:"messageId"`
	Type        string `json:"type"`
}
