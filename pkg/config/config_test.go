package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const configPath = "../../config/"

func TestSampleConfigs(t *testing.T) {
	for _, network := range []string{MainNet, TestNet, BetaNet, LocalNet} {
		t.Run(network, func(t *testing.T) {
			cfg, err := LoadFile(filepath.Join(configPath, "near."+network+".yml"))
			require.NoError(t, err)
			require.Equal(t, network, cfg.Network)

			e, err := Endpoint(network)
			require.NoError(t, err)
			require.Equal(t, e, cfg.Endpoint)
		})
	}
}

func TestForNetwork(t *testing.T) {
	cfg, err := ForNetwork(TestNet)
	require.NoError(t, err)
	require.Equal(t, "https://rpc.testnet.near.org", cfg.Endpoint)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.NoError(t, cfg.Validate())

	_, err = ForNetwork("privnet")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestNetworks(t *testing.T) {
	require.Equal(t, []string{BetaNet, LocalNet, MainNet, TestNet}, Networks())
	for _, n := range Networks() {
		cfg, err := ForNetwork(n)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
	}
}

func TestLoad(t *testing.T) {
	t.Run("explicit endpoint", func(t *testing.T) {
		cfg, err := Load([]byte(`
Network: mainnet
Endpoint: https://archival-rpc.mainnet.near.org
Headers:
  X-Api-Key: secret
Timeout: 3s
`))
		require.NoError(t, err)
		require.Equal(t, "https://archival-rpc.mainnet.near.org", cfg.Endpoint)
		require.Equal(t, 3*time.Second, cfg.Timeout)
		require.Equal(t, map[string]string{"X-Api-Key": "secret"}, cfg.Headers)
	})
	t.Run("default timeout", func(t *testing.T) {
		cfg, err := Load([]byte("Endpoint: http://127.0.0.1:3030\n"))
		require.NoError(t, err)
		require.Equal(t, DefaultTimeout, cfg.Timeout)
		require.Empty(t, cfg.Network)
	})

	errCases := map[string]string{
		"unknown field":    "Network: testnet\nPort: 1\n",
		"unknown network":  "Network: privnet\n",
		"no endpoint":      "Timeout: 1s\n",
		"bad scheme":       "Endpoint: ws://localhost:3030\n",
		"negative timeout": "Endpoint: http://localhost:3030\nTimeout: -1s\n",
		"bad log level":    "Network: testnet\nLogLevel: verbose\n",
		"not yaml":         "Network: [",
	}
	for name, data := range errCases {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestClientOptions(t *testing.T) {
	cfg := Config{
		Endpoint:         "http://localhost:3030",
		Headers:          map[string]string{"A": "b"},
		Timeout:          time.Second,
		DialTimeout:      2 * time.Second,
		MaxConnsPerHost:  3,
		StringRequestIDs: true,
	}
	log := zap.NewNop()
	opts := cfg.ClientOptions(log)
	require.Equal(t, log, opts.Logger)
	require.Equal(t, cfg.Headers, opts.Headers)
	require.Equal(t, time.Second, opts.RequestTimeout)
	require.Equal(t, 2*time.Second, opts.DialTimeout)
	require.Equal(t, 3, opts.MaxConnsPerHost)
	require.True(t, opts.StringRequestIDs)
	require.Nil(t, opts.Transport)

	c, err := cfg.NewClient(log)
	require.NoError(t, err)
	require.Equal(t, cfg.Endpoint, c.Endpoint())
}
