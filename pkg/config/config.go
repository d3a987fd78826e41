/*
Package config contains RPC client configuration. It's loaded from YAML files
and can use one of the well-known network presets instead of an explicit
endpoint.
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/russellwmy/near-api-go/pkg/rpcclient"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Version is the version of the client, set at build time.
var Version = "dev"

// Well-known network names.
const (
	MainNet  = "mainnet"
	TestNet  = "testnet"
	BetaNet  = "betanet"
	LocalNet = "localnet"
)

// DefaultTimeout is the default timeout of a single RPC call.
const DefaultTimeout = 10 * time.Second

// endpoints are the public RPC nodes of well-known networks.
var endpoints = map[string]string{
	MainNet:  "https://rpc.mainnet.near.org",
	TestNet:  "https://rpc.testnet.near.org",
	BetaNet:  "https://rpc.betanet.near.org",
	LocalNet: "http://localhost:3030",
}

// ErrUnknownNetwork is returned for network names without a preset.
var ErrUnknownNetwork = errors.New("unknown network")

// Config is the RPC client configuration.
type Config struct {
	// Network is one of the well-known networks, its endpoint is used when
	// Endpoint is empty.
	Network string `yaml:"Network" validate:"omitempty,oneof=mainnet testnet betanet localnet"`
	// Endpoint is the RPC node address.
	Endpoint string `yaml:"Endpoint" validate:"required,rpcurl"`
	// Headers are added to every HTTP request (API keys for example).
	Headers          map[string]string `yaml:"Headers" validate:"dive,keys,required,endkeys"`
	Timeout          time.Duration     `yaml:"Timeout" validate:"gte=0"`
	DialTimeout      time.Duration     `yaml:"DialTimeout" validate:"gte=0"`
	MaxConnsPerHost  int               `yaml:"MaxConnsPerHost" validate:"gte=0"`
	StringRequestIDs bool              `yaml:"StringRequestIDs"`
	LogLevel         string            `yaml:"LogLevel" validate:"omitempty,oneof=debug info warn error"`
	LogPath          string            `yaml:"LogPath"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	if err := v.RegisterValidation("rpcurl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register rpcurl validation: %v", err))
	}
	return v
}

// Endpoint returns the public RPC endpoint of the network.
func Endpoint(network string) (string, error) {
	e, ok := endpoints[network]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
	return e, nil
}

// Networks returns the names of well-known networks in sorted order.
func Networks() []string {
	res := make([]string, 0, len(endpoints))
	for n := range endpoints {
		res = append(res, n)
	}
	slices.Sort(res)
	return res
}

// ForNetwork returns the default configuration of the well-known network.
func ForNetwork(network string) (Config, error) {
	e, err := Endpoint(network)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Network:  network,
		Endpoint: e,
		Timeout:  DefaultTimeout,
	}, nil
}

// LoadFile loads the config from the provided path. Unknown fields are
// rejected, missing endpoint is taken from the network preset.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Load(configData)
}

// Load decodes the config from YAML data, see LoadFile.
func Load(configData []byte) (Config, error) {
	config := Config{
		Timeout: DefaultTimeout,
	}
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if config.Endpoint == "" && config.Network != "" {
		e, err := Endpoint(config.Network)
		if err != nil {
			return Config{}, err
		}
		config.Endpoint = e
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the config for consistency.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ClientOptions returns RPC client options corresponding to the config.
func (c Config) ClientOptions(log *zap.Logger) rpcclient.Options {
	return rpcclient.Options{
		Logger:           log,
		Headers:          c.Headers,
		DialTimeout:      c.DialTimeout,
		RequestTimeout:   c.Timeout,
		MaxConnsPerHost:  c.MaxConnsPerHost,
		StringRequestIDs: c.StringRequestIDs,
	}
}

// NewClient creates an RPC client for the configured endpoint.
func (c Config) NewClient(log *zap.Logger) (*rpcclient.Client, error) {
	return rpcclient.New(c.Endpoint, c.ClientOptions(log))
}
