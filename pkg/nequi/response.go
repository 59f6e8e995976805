package nequi

import (
	"encoding/json"
	"fmt"
)

// StatusCodeSuccess is the vendor-embedded code for an accepted operation.
// Any other value inside a 200 response is a business rejection.
const StatusCodeSuccess = "0"

type Response struct {
	ResponseMessage ResponseMessage `json:"ResponseMessage"`
}

type ResponseMessage struct {
	ResponseHeader ResponseHeader `json:"ResponseHeader"`
	ResponseBody   ResponseBody   `json:"ResponseBody"`
}

type ResponseHeader struct {
	Channel      string `json:"Channel"`
	ResponseDate string `json:"ResponseDate"`
	MessageID    string `json:"MessageID"`
	Status       Status `json:"Status"`
}

type Status struct {
	StatusCode string `json:"StatusCode"`
	StatusDesc string `json:"StatusDesc"`
}

type ResponseBody struct {
	Any map[string]json.RawMessage `json:"any"`
}

func (r *Response) Status() Status {
	return r.ResponseMessage.ResponseHeader.Status
}

func (r *Response) IsSuccess() bool {
	return r.Status().StatusCode == StatusCodeSuccess
}

// Payload decodes the named operation response out of the body's "any"
// wrapper, e.g. Payload("unregisteredPaymentRS", &rs).
func (r *Response) Payload(name string, out any) error {
	raw, ok := r.ResponseMessage.ResponseBody.Any[name]
	if !ok {
		return fmt.Errorf("response payload %q not present", name)
	}
	return json.Unmarshal(raw, out)
}

type UnregisteredPaymentRS struct {
	TransactionID string `json:"transactionId"`
}

type GenerateCodeQRRS struct {
	QRValue string `json:"qrValue"`
}

type GetStatusPaymentRS struct {
	Status        string `json:"status"`
	TransactionID string `json:"trnId"`
}
