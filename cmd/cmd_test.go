package main

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-service/config"
)

func TestCORSConfig(t *testing.T) {
	c := corsConfig(&config.Config{})
	require.True(t, c.AllowAllOrigins)
	require.False(t, c.AllowCredentials)
	require.NoError(t, c.Validate())

	c = corsConfig(&config.Config{CORSAllowedOrigins: "https://app.example.com"})
	require.False(t, c.AllowAllOrigins)
	require.True(t, c.AllowCredentials)
	require.Equal(t, []string{"https://app.example.com"}, c.AllowOrigins)
	require.NoError(t, c.Validate())
}

func TestMigrateCommandFlags(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cmd := migrateCommand(&config.Config{}, logger)
	require.NoError(t, cmd.ParseFlags([]string{"--steps", "-1"}))
	steps, err := cmd.Flags().GetInt("steps")
	require.NoError(t, err)
	require.Equal(t, -1, steps)
}
