package params

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrParamNotFound = errors.New("PARAMETER_NOT_FOUND")

// Logical parameter names resolved from the parametrizacion tables.
const (
	NequiAPIKey              = "NEQUI_API_KEY"
	NequiTimeoutCloud        = "NEQUI_TIMEOUT_CLOUD"
	NequiUnregisteredPayURL  = "NEQUI_UNREGISTERED_PAYMENT_URL"
	NequiCancelPaymentURL    = "NEQUI_CANCEL_PAYMENT_URL"
	NequiStatusPaymentURL    = "NEQUI_STATUS_PAYMENT_URL"
	NequiReversePaymentURL   = "NEQUI_REVERSE_PAYMENT_URL"
	NequiPaymentsQRURL       = "NEQUI_PAYMENTS_QR_URL"
	NequiStatusPaymentsQRURL = "NEQUI_STATUS_PAYMENTS_QR_URL"
)

// Resolver looks up configuration values by logical name, optionally scoped
// to a company. Absence is reported as ErrParamNotFound, never as "".
type Resolver interface {
	Value(ctx context.Context, key string) (string, error)
	CompanyValue(ctx context.Context, key string, companyID int64) (string, error)
}

type Params struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) Resolver {
	return &Params{db: db}
}

func (p *Params) Value(ctx context.Context, key string) (string, error) {
	return p.lookup(ctx, key, nil)
}

func (p *Params) CompanyValue(ctx context.Context, key string, companyID int64) (string, error) {
	return p.lookup(ctx, key, &companyID)
}

func (p *Params) lookup(ctx context.Context, key string, companyID *int64) (string, error) {
	query := `SELECT pv.valor FROM parametros p
		JOIN parametro_valores pv ON p.id_parametro = pv.id_parametro
		WHERE p.descripcion = ?`
	args := []any{key}

	if companyID != nil {
		query += " AND pv.id_empresa = ?"
		args = append(args, *companyID)
	} else {
		query += " AND pv.id_empresa IS NULL"
	}

	query += " LIMIT 1"

	var value string
	err := p.db.WithContext(ctx).Raw(query, args...).Scan(&value).Error
	if err != nil {
		return "", err
	}

	if value == "" {
		return "", ErrParamNotFound
	}

	return value, nil
}
