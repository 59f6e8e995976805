package repository_test

import (
	"testing"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/model"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestTransactionLogUpdate_Values(t *testing.T) {
	t.Run("empty mask produces no values", func(t *testing.T) {
		update := repository.TransactionLogUpdate{}

		assert.Empty(t, update.Values())
	})

	t.Run("only set fields are written", func(t *testing.T) {
		status := model.StatusSuccess
		txID := "ABC123"
		elapsed := int64(532)

		update := repository.TransactionLogUpdate{
			Status:           &status,
			TransactionID:    &txID,
			ProcessingTimeMs: &elapsed,
		}

		values := update.Values()

		assert.Equal(t, map[string]any{
			"status":             model.StatusSuccess,
			"transaction_id":     "ABC123",
			"processing_time_ms": int64(532),
		}, values)
	})

	t.Run("explicit empty strings are still written", func(t *testing.T) {
		empty := ""
		update := repository.TransactionLogUpdate{ErrorMessage: &empty}

		values := update.Values()

		assert.Equal(t, "", values["error_message"])
	})
}

func TestListFilter_Validate(t *testing.T) {
	t.Run("zero limit is allowed and defaulted later", func(t *testing.T) {
		assert.NoError(t, repository.ListFilter{}.Validate())
	})

	t.Run("limit of one is allowed", func(t *testing.T) {
		assert.NoError(t, repository.ListFilter{Limit: 1}.Validate())
	})

	t.Run("limit at max is allowed", func(t *testing.T) {
		assert.NoError(t, repository.ListFilter{Limit: repository.MaxListLimit}.Validate())
	})

	t.Run("limit above max is rejected", func(t *testing.T) {
		err := repository.ListFilter{Limit: repository.MaxListLimit + 1}.Validate()

		assert.ErrorIs(t, err, repository.ErrInvalidLimit)
	})

	t.Run("negative offset is rejected", func(t *testing.T) {
		err := repository.ListFilter{Limit: 10, Offset: -1}.Validate()

		assert.ErrorIs(t, err, repository.ErrInvalidLimit)
	})
}
