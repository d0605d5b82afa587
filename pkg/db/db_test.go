package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsPlugin(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)

	require.NoError(t, registerMetricsPlugin(conn, "rollcall"))

	_, ok := conn.Config.Plugins["gorm:prometheus"]
	assert.True(t, ok, "pool stats plugin should be installed on the connection")
}
