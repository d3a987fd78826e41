package rpcclient

import (
	"context"

	"github.com/russellwmy/near-api-go/pkg/core/transaction"
	"github.com/russellwmy/near-api-go/pkg/crypto/keys"
	"github.com/russellwmy/near-api-go/pkg/encoding/account"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/request"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/result"
	"github.com/russellwmy/near-api-go/pkg/nearrpc/rpcerr"
	"github.com/russellwmy/near-api-go/pkg/util"
)

// Status returns general status of the node.
func (c *Client) Status(ctx context.Context) (*result.Status, error) {
	var resp = new(result.Status)
	if err := c.performRequest(ctx, request.MethodStatus, request.Status{}, resp, decoder(rpcerr.DecodeStatusError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// NetworkInfo returns the current state of node network connections.
func (c *Client) NetworkInfo(ctx context.Context) (*result.NetworkInfo, error) {
	var resp = new(result.NetworkInfo)
	if err := c.performRequest(ctx, request.MethodNetworkInfo, request.NetworkInfo{}, resp, decoder(rpcerr.DecodeNetworkInfoError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// SendTransaction sends a signed transaction and waits until it's executed
// (broadcast_tx_commit).
func (c *Client) SendTransaction(ctx context.Context, tx *transaction.Signed) (*result.FinalExecutionOutcome, error) {
	var (
		params = request.BroadcastTx{SignedTransaction: tx}
		resp   = new(result.FinalExecutionOutcome)
	)
	if err := c.performRequest(ctx, request.MethodBroadcastTxCommit, params, resp, decoder(rpcerr.DecodeTransactionError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// SendTransactionAsync sends a signed transaction without waiting for its
// execution (broadcast_tx_async) and returns its hash.
func (c *Client) SendTransactionAsync(ctx context.Context, tx *transaction.Signed) (util.CryptoHash, error) {
	var (
		params = request.BroadcastTx{SignedTransaction: tx}
		resp   util.CryptoHash
	)
	if err := c.performRequest(ctx, request.MethodBroadcastTxAsync, params, &resp, decoder(rpcerr.DecodeTransactionError)); err != nil {
		return util.CryptoHash{}, err
	}
	return resp, nil
}

// TxStatus returns the status of a transaction identified either by its
// hash and sender or by its signed bytes.
func (c *Client) TxStatus(ctx context.Context, info request.TransactionInfo) (*result.FinalExecutionOutcome, error) {
	var resp = new(result.FinalExecutionOutcome)
	if err := c.performRequest(ctx, request.MethodTx, request.TxStatus{TransactionInfo: info}, resp, decoder(rpcerr.DecodeTransactionError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// TxStatusWithReceipts is the same as TxStatus, but it also returns all
// receipts generated by the transaction.
func (c *Client) TxStatusWithReceipts(ctx context.Context, info request.TransactionInfo) (*result.FinalExecutionOutcomeWithReceipts, error) {
	var resp = new(result.FinalExecutionOutcomeWithReceipts)
	if err := c.performRequest(ctx, request.MethodTxStatusWithReceipts, request.TxStatus{TransactionInfo: info}, resp, decoder(rpcerr.DecodeTransactionError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// Query performs a state query. Function call failures reported inside the
// result are returned as CONTRACT_EXECUTION_ERROR query errors.
func (c *Client) Query(ctx context.Context, q *request.Query) (*result.Query, error) {
	var resp = new(result.Query)
	if err := c.performRequest(ctx, request.MethodQuery, q, resp, decoder(rpcerr.DecodeQueryError)); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, rpcerr.NewContractExecutionError(resp.Error, resp.BlockHeight, resp.BlockHash).RPCError()
	}
	return resp, nil
}

// ViewAccount returns basic account information.
func (c *Client) ViewAccount(ctx context.Context, ref nearrpc.BlockReference, id account.ID) (*result.Account, error) {
	resp, err := c.queryKind(ctx, request.NewViewAccount(ref, id))
	if err != nil {
		return nil, err
	}
	return resp.Account, nil
}

// ViewAccessKey returns a single access key of the account.
func (c *Client) ViewAccessKey(ctx context.Context, ref nearrpc.BlockReference, id account.ID, pk *keys.PublicKey) (*result.AccessKey, error) {
	resp, err := c.queryKind(ctx, request.NewViewAccessKey(ref, id, pk))
	if err != nil {
		return nil, err
	}
	return resp.AccessKey, nil
}

// ViewAccessKeyList returns all access keys of the account.
func (c *Client) ViewAccessKeyList(ctx context.Context, ref nearrpc.BlockReference, id account.ID) (*result.AccessKeyList, error) {
	resp, err := c.queryKind(ctx, request.NewViewAccessKeyList(ref, id))
	if err != nil {
		return nil, err
	}
	return resp.AccessKeyList, nil
}

// ViewCode returns the contract code deployed to the account.
func (c *Client) ViewCode(ctx context.Context, ref nearrpc.BlockReference, id account.ID) (*result.ContractCode, error) {
	resp, err := c.queryKind(ctx, request.NewViewCode(ref, id))
	if err != nil {
		return nil, err
	}
	return resp.ContractCode, nil
}

// ViewState returns contract storage items with keys starting with prefix.
func (c *Client) ViewState(ctx context.Context, ref nearrpc.BlockReference, id account.ID, prefix []byte) (*result.ViewState, error) {
	resp, err := c.queryKind(ctx, request.NewViewState(ref, id, prefix))
	if err != nil {
		return nil, err
	}
	return resp.ViewState, nil
}

// CallFunction calls a view method of the contract.
func (c *Client) CallFunction(ctx context.Context, ref nearrpc.BlockReference, id account.ID, method string, args []byte) (*result.CallResult, error) {
	resp, err := c.queryKind(ctx, request.NewCallFunction(ref, id, method, args))
	if err != nil {
		return nil, err
	}
	return resp.CallResult, nil
}

// queryKind performs the query and ensures the result is of the requested
// kind.
func (c *Client) queryKind(ctx context.Context, q *request.Query) (*result.Query, error) {
	resp, err := c.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if kind := resp.Kind(); kind != q.Kind {
		return nil, nearrpc.NewInternalError("unexpected " + string(kind) + " result for " + string(q.Kind) + " query")
	}
	return resp, nil
}

// Block returns the block referenced by ref.
func (c *Client) Block(ctx context.Context, ref nearrpc.BlockReference) (*result.Block, error) {
	var resp = new(result.Block)
	if err := c.performRequest(ctx, request.MethodBlock, request.Block{BlockReference: ref}, resp, decoder(rpcerr.DecodeBlockError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// BlockChanges returns the list of accounts changed in the block.
func (c *Client) BlockChanges(ctx context.Context, ref nearrpc.BlockReference) (*result.StateChangesInBlock, error) {
	var resp = new(result.StateChangesInBlock)
	if err := c.performRequest(ctx, request.MethodChangesInBlock, request.BlockChanges{BlockReference: ref}, resp, decoder(rpcerr.DecodeStateChangesError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// Chunk returns the chunk referenced by ref.
func (c *Client) Chunk(ctx context.Context, ref request.ChunkReference) (*result.Chunk, error) {
	var resp = new(result.Chunk)
	if err := c.performRequest(ctx, request.MethodChunk, request.Chunk{ChunkReference: ref}, resp, decoder(rpcerr.DecodeChunkError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// Validators returns validators of the referenced epoch.
func (c *Client) Validators(ctx context.Context, ref request.EpochReference) (*result.EpochValidatorInfo, error) {
	var resp = new(result.EpochValidatorInfo)
	if err := c.performRequest(ctx, request.MethodValidators, request.Validators{EpochReference: ref}, resp, decoder(rpcerr.DecodeValidatorError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// ProtocolConfig returns protocol configuration at the referenced block.
func (c *Client) ProtocolConfig(ctx context.Context, ref nearrpc.BlockReference) (*result.ProtocolConfig, error) {
	var resp = new(result.ProtocolConfig)
	if err := c.performRequest(ctx, request.MethodProtocolConfig, request.ProtocolConfig{BlockReference: ref}, resp, decoder(rpcerr.DecodeProtocolConfigError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// LightClientProof returns the execution proof of a transaction or receipt.
func (c *Client) LightClientProof(ctx context.Context, r *request.LightClientProof) (*result.LightClientProof, error) {
	var resp = new(result.LightClientProof)
	if err := c.performRequest(ctx, request.MethodLightClientProof, r, resp, decoder(rpcerr.DecodeLightClientProofError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// GasPrice returns gas price at the given block, nil id means the latest
// one.
func (c *Client) GasPrice(ctx context.Context, id *nearrpc.BlockID) (*result.GasPrice, error) {
	var resp = new(result.GasPrice)
	if err := c.performRequest(ctx, request.MethodGasPrice, request.GasPrice{BlockID: id}, resp, decoder(rpcerr.DecodeGasPriceError)); err != nil {
		return nil, err
	}
	return resp, nil
}

// AccessKeyChanges returns changes of all access keys of the given accounts.
func (c *Client) AccessKeyChanges(ctx context.Context, ref nearrpc.BlockReference, ids []account.ID) (*result.StateChanges, error) {
	return c.changes(ctx, request.Changes{BlockReference: ref, ChangesType: request.AllAccessKeyChanges, AccountIDs: ids})
}

// SingleAccessKeyChanges returns changes of the given access keys.
func (c *Client) SingleAccessKeyChanges(ctx context.Context, ref nearrpc.BlockReference, keys []request.AccountWithPublicKey) (*result.StateChanges, error) {
	return c.changes(ctx, request.Changes{BlockReference: ref, ChangesType: request.SingleAccessKeyChanges, Keys: keys})
}

// AccountChanges returns changes of the given accounts.
func (c *Client) AccountChanges(ctx context.Context, ref nearrpc.BlockReference, ids []account.ID) (*result.StateChanges, error) {
	return c.changes(ctx, request.Changes{BlockReference: ref, ChangesType: request.AccountChanges, AccountIDs: ids})
}

// ContractStateChanges returns changes of contract storage items with keys
// starting with prefix.
func (c *Client) ContractStateChanges(ctx context.Context, ref nearrpc.BlockReference, ids []account.ID, prefix []byte) (*result.StateChanges, error) {
	return c.changes(ctx, request.Changes{BlockReference: ref, ChangesType: request.DataChanges, AccountIDs: ids, KeyPrefix: prefix})
}

// ContractCodeChanges returns contract code changes of the given accounts.
func (c *Client) ContractCodeChanges(ctx context.Context, ref nearrpc.BlockReference, ids []account.ID) (*result.StateChanges, error) {
	return c.changes(ctx, request.Changes{BlockReference: ref, ChangesType: request.ContractCodeChanges, AccountIDs: ids})
}

func (c *Client) changes(ctx context.Context, r request.Changes) (*result.StateChanges, error) {
	var resp = new(result.StateChanges)
	if err := c.performRequest(ctx, request.MethodChanges, r, resp, decoder(rpcerr.DecodeStateChangesError)); err != nil {
		return nil, err
	}
	return resp, nil
}
