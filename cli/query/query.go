package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/russellwmy/near-api-go/cli/options"
	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/request"
	"github.com/russellwmy/near-api-go/pkg/rpcclient"
	"github.com/russellwmy/near-api-go/pkg/util"
	"github.com/urfave/cli"
)

// queryFunc performs a single RPC call and returns its result to be printed.
type queryFunc func(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error)

var (
	errNoAccount = errors.New("account ID is missing")
	errNoHash    = errors.New("hash is missing")
)

// NewCommands returns 'query' command.
func NewCommands() []cli.Command {
	blockFlags := append(append([]cli.Flag{}, options.RPC...), options.Block...)
	prefixFlag := cli.StringFlag{
		Name:  "prefix",
		Usage: "storage key prefix",
	}
	return []cli.Command{{
		Name:  "query",
		Usage: "Query NEAR RPC node",
		Subcommands: []cli.Command{
			{
				Name:   "status",
				Usage:  "node status",
				Action: run(queryStatus),
				Flags:  options.RPC,
			},
			{
				Name:   "network-info",
				Usage:  "node network connections",
				Action: run(queryNetworkInfo),
				Flags:  options.RPC,
			},
			{
				Name:   "block",
				Usage:  "block by height, hash or finality",
				Action: run(queryBlock),
				Flags: append([]cli.Flag{
					cli.BoolFlag{
						Name:  "changes",
						Usage: "output accounts changed in the block instead of the block itself",
					},
				}, blockFlags...),
			},
			{
				Name:      "chunk",
				Usage:     "chunk by hash or by block and shard",
				UsageText: "near-go query chunk <chunk-hash> | --block-id <id> --shard <n>",
				Action:    run(queryChunk),
				Flags: append([]cli.Flag{
					cli.Uint64Flag{
						Name:  "shard",
						Usage: "shard ID (used with --block-id)",
					},
				}, blockFlags...),
			},
			{
				Name:      "tx",
				Usage:     "transaction status",
				UsageText: "near-go query tx <hash> <sender>",
				Action:    run(queryTx),
				Flags: append([]cli.Flag{
					cli.BoolFlag{
						Name:  "receipts",
						Usage: "output all receipts of the transaction",
					},
				}, options.RPC...),
			},
			{
				Name:      "account",
				Usage:     "account information",
				UsageText: "near-go query account <account-id>",
				Action:    run(queryAccount),
				Flags:     blockFlags,
			},
			{
				Name:      "access-key",
				Usage:     "single access key of the account",
				UsageText: "near-go query access-key <account-id> <public-key>",
				Action:    run(queryAccessKey),
				Flags:     blockFlags,
			},
			{
				Name:      "access-keys",
				Usage:     "all access keys of the account",
				UsageText: "near-go query access-keys <account-id>",
				Action:    run(queryAccessKeys),
				Flags:     blockFlags,
			},
			{
				Name:      "code",
				Usage:     "contract code of the account",
				UsageText: "near-go query code <account-id>",
				Action:    run(queryCode),
				Flags:     blockFlags,
			},
			{
				Name:      "state",
				Usage:     "contract storage of the account",
				UsageText: "near-go query state <account-id> [--prefix <prefix>]",
				Action:    run(queryState),
				Flags:     append([]cli.Flag{prefixFlag}, blockFlags...),
			},
			{
				Name:      "call",
				Usage:     "call view method of the contract",
				UsageText: "near-go query call <account-id> <method> [<json-args>]",
				Action:    run(queryCall),
				Flags:     blockFlags,
			},
			{
				Name:   "gas-price",
				Usage:  "gas price at the given or the latest block",
				Action: run(queryGasPrice),
				Flags: append([]cli.Flag{
					cli.StringFlag{
						Name:  "block-id, b",
						Usage: "block height or hash",
					},
				}, options.RPC...),
			},
			{
				Name:   "validators",
				Usage:  "validators of the given or the latest epoch",
				Action: run(queryValidators),
				Flags: append([]cli.Flag{
					cli.StringFlag{
						Name:  "epoch-id",
						Usage: "epoch ID, conflicts with --block-id",
					},
					cli.StringFlag{
						Name:  "block-id, b",
						Usage: "block height or hash of the last block of the epoch",
					},
				}, options.RPC...),
			},
			{
				Name:   "protocol-config",
				Usage:  "protocol configuration",
				Action: run(queryProtocolConfig),
				Flags:  blockFlags,
			},
			{
				Name:      "changes",
				Usage:     "state changes of accounts",
				UsageText: "near-go query changes account|access-keys|code|data <account-id>... [--prefix <prefix>]",
				Action:    run(queryChanges),
				Flags:     append([]cli.Flag{prefixFlag}, blockFlags...),
			},
		},
	}}
}

// run wraps the query into common configuration, logging and output
// handling.
func run(f queryFunc) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := options.GetConfigFromContext(ctx)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer func() { _ = log.Sync() }()

		gctx, cancel := options.GetTimeoutContext(ctx)
		defer cancel()

		c, exitErr := options.GetRPCClient(cfg, log)
		if exitErr != nil {
			return exitErr
		}
		defer c.Close()

		res, err := f(gctx, c, ctx)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		return dumpJSON(ctx, res)
	}
}

func dumpJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to marshal result: %w", err), 1)
	}
	fmt.Fprintln(ctx.App.Writer, string(data))
	return nil
}

func accountArg(ctx *cli.Context, i int) (account.ID, error) {
	if ctx.NArg() <= i {
		return "", errNoAccount
	}
	return account.NewID(ctx.Args().Get(i))
}

func queryStatus(gctx context.Context, c *rpcclient.Client, _ *cli.Context) (any, error) {
	return c.Status(gctx)
}

func queryNetworkInfo(gctx context.Context, c *rpcclient.Client, _ *cli.Context) (any, error) {
	return c.NetworkInfo(gctx)
}

func queryBlock(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	if ctx.Bool("changes") {
		return c.BlockChanges(gctx, ref)
	}
	return c.Block(gctx, ref)
}

func queryChunk(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	if ctx.NArg() > 0 {
		h, err := util.CryptoHashDecodeString(ctx.Args().First())
		if err != nil {
			return nil, fmt.Errorf("invalid chunk hash: %w", err)
		}
		return c.Chunk(gctx, request.ChunkByHash(h))
	}
	if ctx.String("block-id") == "" {
		return nil, errors.New("chunk hash or --block-id with --shard is required")
	}
	id, err := options.ParseBlockID(ctx.String("block-id"))
	if err != nil {
		return nil, err
	}
	return c.Chunk(gctx, request.ChunkByBlockShard(id, ctx.Uint64("shard")))
}

func queryTx(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	if ctx.NArg() == 0 {
		return nil, errNoHash
	}
	h, err := util.CryptoHashDecodeString(ctx.Args().First())
	if err != nil {
		return nil, fmt.Errorf("invalid tx hash: %w", err)
	}
	sender, err := accountArg(ctx, 1)
	if err != nil {
		return nil, err
	}
	info := request.TxByID(h, sender)
	if ctx.Bool("receipts") {
		return c.TxStatusWithReceipts(gctx, info)
	}
	return c.TxStatus(gctx, info)
}

func queryAccount(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	id, err := accountArg(ctx, 0)
	if err != nil {
		return nil, err
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	return c.ViewAccount(gctx, ref, id)
}

func queryAccessKey(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	id, err := accountArg(ctx, 0)
	if err != nil {
		return nil, err
	}
	if ctx.NArg() < 2 {
		return nil, errors.New("public key is missing")
	}
	pk, err := keys.NewPublicKeyFromString(ctx.Args().Get(1))
	if err != nil {
		return nil, err
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	return c.ViewAccessKey(gctx, ref, id, pk)
}

func queryAccessKeys(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	id, err := accountArg(ctx, 0)
	if err != nil {
		return nil, err
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	return c.ViewAccessKeyList(gctx, ref, id)
}

func queryCode(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	id, err := accountArg(ctx, 0)
	if err != nil {
		return nil, err
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	return c.ViewCode(gctx, ref, id)
}

func queryState(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	id, err := accountArg(ctx, 0)
	if err != nil {
		return nil, err
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	return c.ViewState(gctx, ref, id, []byte(ctx.String("prefix")))
}

func queryCall(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	id, err := accountArg(ctx, 0)
	if err != nil {
		return nil, err
	}
	if ctx.NArg() < 2 {
		return nil, errors.New("method name is missing")
	}
	var args = []byte("{}")
	if ctx.NArg() > 2 {
		args = []byte(ctx.Args().Get(2))
		if !json.Valid(args) {
			return nil, errors.New("method arguments must be a valid JSON")
		}
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	return c.CallFunction(gctx, ref, id, ctx.Args().Get(1), args)
}

func queryGasPrice(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	var id *nearrpc.BlockID
	if s := ctx.String("block-id"); s != "" {
		parsed, err := options.ParseBlockID(s)
		if err != nil {
			return nil, err
		}
		id = &parsed
	}
	return c.GasPrice(gctx, id)
}

func queryValidators(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	var (
		epochID = ctx.String("epoch-id")
		blockID = ctx.String("block-id")
	)
	switch {
	case epochID != "" && blockID != "":
		return nil, errors.New("--epoch-id flag conflicts with --block-id flag")
	case epochID != "":
		h, err := util.CryptoHashDecodeString(epochID)
		if err != nil {
			return nil, fmt.Errorf("invalid epoch ID: %w", err)
		}
		return c.Validators(gctx, request.EpochByID(h))
	case blockID != "":
		id, err := options.ParseBlockID(blockID)
		if err != nil {
			return nil, err
		}
		return c.Validators(gctx, request.EpochByBlockID(id))
	}
	return c.Validators(gctx, request.EpochLatest())
}

func queryProtocolConfig(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	return c.ProtocolConfig(gctx, ref)
}

func queryChanges(gctx context.Context, c *rpcclient.Client, ctx *cli.Context) (any, error) {
	if ctx.NArg() < 2 {
		return nil, errors.New("changes type and at least one account ID are required")
	}
	ids := make([]account.ID, 0, ctx.NArg()-1)
	for i := 1; i < ctx.NArg(); i++ {
		id, err := accountArg(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("account #%d: %w", i, err)
		}
		ids = append(ids, id)
	}
	ref, err := options.GetBlockReference(ctx)
	if err != nil {
		return nil, err
	}
	switch typ := ctx.Args().First(); typ {
	case "account":
		return c.AccountChanges(gctx, ref, ids)
	case "access-keys":
		return c.AccessKeyChanges(gctx, ref, ids)
	case "code":
		return c.ContractCodeChanges(gctx, ref, ids)
	case "data":
		return c.ContractStateChanges(gctx, ref, ids, []byte(ctx.String("prefix")))
	default:
		return nil, fmt.Errorf("unknown changes type %q", typ)
	}
}
