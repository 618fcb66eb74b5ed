package feature

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformString(t *testing.T) {
	feat := NewTransform("sqft_living", TransformOpLog)
	assert.Equal(t, "tx_sqft_living_log", feat.String())
}

func TestTransformGet(t *testing.T) {
	feat := NewTransform("bedrooms", TransformOpSquare)

	testData := map[string]struct {
		label     string
		expVal    string
		expExists bool
	}{
		"unknown": {
			label: "unknown",
		},
		"capitalized": {
			label:     "NAME",
			expVal:    "bedrooms",
			expExists: true,
		},
		"name": {
			label:     "name",
			expVal:    "bedrooms",
			expExists: true,
		},
		"op": {
			label:     "op",
			expVal:    "square",
			expExists: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			val, exists := feat.Get(td.label)
			assert.Equal(t, td.expExists, exists, "exists")
			assert.Equal(t, td.expVal, val, "value")
		})
	}
}

func TestTransformDecode(t *testing.T) {
	feat := NewTransform("sqft_living", TransformOpLog)
	expected := map[string]string{
		"name": "sqft_living",
		"op":   "log",
	}
	assert.Equal(t, expected, feat.Decode())
}

func TestTransformUnmarshal(t *testing.T) {
	feat := NewTransform("sqft_living", TransformOpLog)

	out, err := json.Marshal(feat.Decode())
	require.Nil(t, err)

	res := new(Transform)
	require.Nil(t, json.Unmarshal(out, res))
	assert.Equal(t, feat, res)
}
