package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsApplyWhenUnset(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c, err := New()
	require.NoError(err)
	assert.False(c.GetBool(KeyDebug))
	assert.Equal(8080, c.GetInt(KeyServerPort))
	assert.Equal("", c.GetString(KeyCORSOrigin))
	assert.Equal(1024, c.GetInt(KeyDefaultShots))
	assert.Equal(0, c.GetInt(KeyDefaultWork))
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	require.NoError(os.Setenv("REVQ_SERVER_PORT", "9090"))
	require.NoError(os.Setenv("REVQ_DEBUG", "true"))
	defer os.Unsetenv("REVQ_SERVER_PORT")
	defer os.Unsetenv("REVQ_DEBUG")

	c, err := New()
	require.NoError(err)
	assert.Equal(9090, c.GetInt(KeyServerPort))
	assert.True(c.GetBool(KeyDebug))
}
