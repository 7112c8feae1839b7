package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(MustAmount("75250"))
	require.NoError(t, err)
	assert.Equal(t, "75250.00", string(data))

	data, err = json.Marshal(MustAmount("13059.92"))
	require.NoError(t, err)
	assert.Equal(t, "13059.92", string(data))
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	t.Run("bare number", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte("13059.92"), &a))
		assert.True(t, a.Equal(MustAmount("13059.92").Decimal))
	})

	t.Run("quoted number", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(`"75250.00"`), &a))
		assert.True(t, a.Equal(MustAmount("75250").Decimal))
	})

	t.Run("garbage", func(t *testing.T) {
		var a Amount
		assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
	})
}

func TestNewAmount_Invalid(t *testing.T) {
	_, err := NewAmount("12,50")
	assert.Error(t, err)
	assert.Panics(t, func() { MustAmount("x") })
}
