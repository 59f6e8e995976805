package constants

const (
	ErrCodeConfigurationError  = "CONFIGURATION_ERROR"
	ErrCodeParentNotFound      = "PARENT_NOT_FOUND"
	ErrCodeGatewayUnreachable  = "GATEWAY_UNREACHABLE"
	ErrCodeBusinessRejection   = "BUSINESS_REJECTION"
	ErrCodeStoreError          = "STORE_ERROR"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeInvalidFilter       = "INVALID_FILTER"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgConfigurationError  = "gateway credentials or endpoints are not configured"
	ErrMsgParentNotFound      = "originating transaction not found"
	ErrMsgGatewayUnreachable  = "payment gateway did not answer"
	ErrMsgBusinessRejection   = "payment gateway rejected the operation"
	ErrMsgStoreError          = "transaction log unavailable"
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgInvalidFilter       = "invalid list filter"
	ErrMsgInternalError       = "Internal server error"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
)

var errorMessages = map[string]string{
	ErrCodeConfigurationError:  ErrMsgConfigurationError,
	ErrCodeParentNotFound:      ErrMsgParentNotFound,
	ErrCodeGatewayUnreachable:  ErrMsgGatewayUnreachable,
	ErrCodeBusinessRejection:   ErrMsgBusinessRejection,
	ErrCodeStoreError:          ErrMsgStoreError,
	ErrCodeTransactionNotFound: ErrMsgTransactionNotFound,
	ErrCodeInvalidFilter:       ErrMsgInvalidFilter,
	ErrCodeInternalError:       ErrMsgInternalError,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeConfigurationError, ErrCodeInvalidFilter:
		return 400
	case ErrCodeParentNotFound, ErrCodeTransactionNotFound:
		return 404
	case ErrCodeBusinessRejection:
		return 422
	case ErrCodeGatewayUnreachable:
		return 502
	case ErrCodeStoreError, ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
