package client

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectResult(t *testing.T) {
	res := ObjectResult(map[string]any{"id": 5, "name": "Hoodie"})

	assert.False(t, res.IsArray())
	assert.Nil(t, res.Array())
	assert.Equal(t, "Hoodie", res.Object()["name"])

	var product struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, res.Decode(&product))
	assert.Equal(t, 5, product.ID)
	assert.Equal(t, "Hoodie", product.Name)
}

func TestResultMarshalJSON(t *testing.T) {
	raw, err := sonic.Marshal(ArrayResult([]any{"a", "b"}))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(raw))

	raw, err = sonic.Marshal(Result{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	res, err := Classify("GET", "x", jsonResponse(200, `{"message":"OK"}`))
	require.NoError(t, err)
	b, err := res.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"message":"OK"}`, string(b))
}
