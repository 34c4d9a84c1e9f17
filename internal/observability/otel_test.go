package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key=abc , bad, =x, tenant = edutax ")
	assert.Equal(t, map[string]string{"api-key": "abc", "tenant": "edutax"}, got)
	assert.Nil(t, ParseHeaders(""))
	assert.Nil(t, ParseHeaders("nothing"))
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 1.0, clampRatio(4))
	assert.Equal(t, 0.25, clampRatio(0.25))
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown, err := InitOTel(context.Background(), nil, OtelConfig{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
