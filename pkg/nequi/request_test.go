package nequi_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/nequi"
	"github.com/stretchr/testify/assert"
)

func TestBuildEnvelope(t *testing.T) {
	t.Run("should compose client id from station and equipment", func(t *testing.T) {
		envelope := nequi.BuildEnvelope(nequi.BuildParams{
			Channel:          nequi.ChannelPush,
			MessageID:        "abcdefghij",
			StationCode:      "4217",
			EquipmentCode:    "06",
			ServiceName:      nequi.ServicePayments,
			ServiceOperation: nequi.OperationUnregisteredPayment,
			ServiceVersion:   "1.2.0",
		})

		header := envelope.RequestMessage.RequestHeader
		assert.Equal(t, "4217-06", header.ClientID)
		assert.Equal(t, nequi.ChannelPush, header.Channel)
		assert.Equal(t, "abcdefghij", header.MessageID)
		assert.Equal(t, nequi.ServiceRegion, header.Destination.ServiceRegion)

		_, err := time.Parse(time.RFC3339, header.RequestDate)
		assert.NoError(t, err)
	})

	t.Run("should fall back to the default client id", func(t *testing.T) {
		envelope := nequi.BuildEnvelope(nequi.BuildParams{Channel: nequi.ChannelQR})

		assert.Equal(t, nequi.DefaultClientID, envelope.RequestMessage.RequestHeader.ClientID)
	})

	t.Run("should wrap the operation body under the any key", func(t *testing.T) {
		envelope := nequi.BuildEnvelope(nequi.BuildParams{
			Body: nequi.UnregisteredPaymentBody{
				UnregisteredPaymentRQ: nequi.UnregisteredPaymentRQ{
					PhoneNumber: "3998764643",
					Code:        nequi.MerchantCode,
					Value:       "1000",
				},
			},
		})

		raw, err := json.Marshal(envelope)
		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"any":{"unregisteredPaymentRQ"`)
		assert.Contains(t, string(raw), `"code":"NIT_1"`)
	})
}
