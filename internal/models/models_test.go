package models_test

import (
	"encoding/json"
	"testing"

	"storefront_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchEnvelopeJSON(t *testing.T) {
	t.Run("ZeroDurationIsKept", func(t *testing.T) {
		env := models.FetchEnvelope{
			Data:            []models.Product{},
			IsMockData:      true,
			ShopID:          "22732326",
			APICallDuration: 0,
			Timestamp:       "2025-08-30T10:00:00Z",
		}

		raw, err := json.Marshal(env)
		require.NoError(t, err)

		// A measured 0ms is a value, not an absence.
		assert.Contains(t, string(raw), `"apiCallDuration":0`)
	})

	t.Run("OptionalFieldsOmittedWhenEmpty", func(t *testing.T) {
		env := models.FetchEnvelope{
			Data:           []models.Product{},
			ShopID:         "22108081",
			RealDataSource: true,
			Timestamp:      "2025-08-30T10:00:00Z",
		}

		raw, err := json.Marshal(env)
		require.NoError(t, err)

		assert.NotContains(t, string(raw), `"error"`)
		assert.NotContains(t, string(raw), `"fallbackReason"`)
	})
}

func TestProductIsMock(t *testing.T) {
	assert.True(t, models.Product{Tags: []string{"apparel", models.MockDataTag}}.IsMock())
	assert.False(t, models.Product{Tags: []string{"apparel"}}.IsMock())
	assert.False(t, models.Product{}.IsMock())
}
