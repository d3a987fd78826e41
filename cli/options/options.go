/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/russellwmy/near-api-go/pkg/config"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/rpcclient"
	"github.com/russellwmy/near-api-go/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTimeout is the default timeout used for RPC requests.
const DefaultTimeout = config.DefaultTimeout

// RPCEndpointFlag is a long flag name for an RPC endpoint. It can be used to
// check for flag presence in the context.
const RPCEndpointFlag = "rpc-endpoint"

// RPC is a set of flags used for RPC connections (endpoint, network,
// configuration and timeout).
var RPC = []cli.Flag{
	cli.StringFlag{
		Name:  RPCEndpointFlag + ", r",
		Usage: "RPC node address (overrides --network and configuration file)",
	},
	cli.StringFlag{
		Name:  "network, n",
		Usage: "use public RPC node of the network (mainnet, testnet, betanet or localnet)",
	},
	ConfigFile,
	cli.DurationFlag{
		Name:  "timeout, s",
		Value: DefaultTimeout,
		Usage: "Timeout for the operation",
	},
	Debug,
}

// ConfigFile is a flag for commands that use client configuration file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the client configuration file",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging of RPC calls (overrides configuration)",
}

// Block is a set of flags selecting the block to query at.
var Block = []cli.Flag{
	cli.StringFlag{
		Name:  "finality, f",
		Usage: "block finality (optimistic, near-final or final), final by default",
	},
	cli.StringFlag{
		Name:  "block-id, b",
		Usage: "block height or hash, conflicts with --finality",
	},
}

var (
	errNoEndpoint         = errors.New("no RPC endpoint specified, use option '--" + RPCEndpointFlag + "', '--network' or '--config-file'")
	errConflictingBlockID = errors.New("--block-id flag conflicts with --finality flag, please, provide one of them")
)

// GetTimeoutContext returns a context.Context with the default or a user-set timeout.
func GetTimeoutContext(ctx *cli.Context) (context.Context, func()) {
	dur := ctx.Duration("timeout")
	if dur == 0 {
		dur = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), dur)
}

// GetConfigFromContext builds client configuration from the configuration
// file, network preset and endpoint flags. Flags override file values.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg = config.Config{Timeout: DefaultTimeout}
		err error
	)
	if configFile := ctx.String("config-file"); configFile != "" {
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	if network := ctx.String("network"); network != "" {
		endpoint, err := config.Endpoint(network)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Network = network
		cfg.Endpoint = endpoint
	}
	if endpoint := ctx.String(RPCEndpointFlag); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if ctx.IsSet("timeout") {
		cfg.Timeout = ctx.Duration("timeout")
	}
	if cfg.Endpoint == "" {
		return config.Config{}, errNoEndpoint
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// GetRPCClient returns an RPC client instance for the given configuration.
func GetRPCClient(cfg config.Config, log *zap.Logger) (*rpcclient.Client, cli.ExitCoder) {
	c, err := cfg.NewClient(log)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return c, nil
}

// GetBlockReference parses "--block-id" and "--finality" flags, final block
// is used when none is given.
func GetBlockReference(ctx *cli.Context) (nearrpc.BlockReference, error) {
	var (
		blockID  = ctx.String("block-id")
		finality = ctx.String("finality")
	)
	if blockID != "" && finality != "" {
		return nearrpc.BlockReference{}, errConflictingBlockID
	}
	if blockID != "" {
		id, err := ParseBlockID(blockID)
		if err != nil {
			return nearrpc.BlockReference{}, err
		}
		return nearrpc.BlockRefByID(id), nil
	}
	if finality == "" {
		return nearrpc.BlockRefByFinality(nearrpc.FinalityFinal), nil
	}
	ref := nearrpc.BlockRefByFinality(nearrpc.Finality(finality))
	if err := ref.Validate(); err != nil {
		return nearrpc.BlockReference{}, err
	}
	return ref, nil
}

// ParseBlockID parses a block height or a base58 block hash.
func ParseBlockID(s string) (nearrpc.BlockID, error) {
	if height, err := strconv.ParseUint(s, 10, 64); err == nil {
		return nearrpc.BlockHeight(height), nil
	}
	h, err := util.CryptoHashDecodeString(s)
	if err != nil {
		return nearrpc.BlockID{}, fmt.Errorf("invalid block ID %q: neither a height, nor a block hash", s)
	}
	return nearrpc.BlockHash(h), nil
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.Config) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.WarnLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, fmt.Errorf("could not create dir for logger: %w", err)
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}
