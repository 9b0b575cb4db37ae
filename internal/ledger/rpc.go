package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/logger"
)

// RPCClient talks JSON-RPC to the remote ledger endpoint. One client holds
// one underlying connection pool shared by every request; all reads are
// expected to arrive here through the request queue.
type RPCClient struct {
	http     *resty.Client
	endpoint string
}

// NewRPCClient creates a ledger client for the given RPC endpoint.
func NewRPCClient(endpoint string) (*RPCClient, error) {
	if endpoint == "" {
		return nil, errors.NotConfigured("ledger RPC endpoint")
	}

	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "mintfeed/1.0")

	return &RPCClient{http: client, endpoint: endpoint}, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Error  *rpcError       `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Throttling codes returned by public RPC providers.
const (
	rpcCodeTooManyRequests = -32005
	rpcCodeResourceLimited = -32029
)

func (c *RPCClient) call(ctx context.Context, method string, params any, out any) error {
	var envelope rpcResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}).
		SetResult(&envelope).
		Post("")
	if err != nil {
		return fmt.Errorf("rpc %s: %w", method, err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return errors.RateLimited(fmt.Errorf("rpc %s: HTTP 429", method))
	}
	if resp.IsError() {
		return fmt.Errorf("rpc %s: HTTP %d", method, resp.StatusCode())
	}
	if envelope.Error != nil {
		if envelope.Error.Code == rpcCodeTooManyRequests || envelope.Error.Code == rpcCodeResourceLimited {
			return errors.RateLimited(fmt.Errorf("rpc %s: %s", method, envelope.Error.Message))
		}
		return fmt.Errorf("rpc %s: %s (code %d)", method, envelope.Error.Message, envelope.Error.Code)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("rpc %s: decode result: %w", method, err)
		}
	}
	return nil
}

// RecordsByCreator fetches every record minted under the given creator
// address in a single unpaginated call. The endpoint returns records with
// their metadata resolved inline, unordered.
func (c *RPCClient) RecordsByCreator(ctx context.Context, creator string, limit int) ([]ContentRecord, error) {
	var records []ContentRecord
	params := map[string]any{"creator": creator, "limit": limit}

	if err := c.call(ctx, "getRecordsByCreator", params, &records); err != nil {
		return nil, err
	}

	logger.Log.Debug("Fetched records from ledger",
		zap.String("creator", creator),
		zap.Int("count", len(records)),
	)
	return records, nil
}

// Mint creates a new record. The transaction is signed by the supplied
// identity before submission; a signing failure never reaches the wire.
func (c *RPCClient) Mint(ctx context.Context, identity Identity, params MintParams) (MintResult, error) {
	if identity == nil {
		return MintResult{}, errors.NotConfigured("mint identity")
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return MintResult{}, errors.MintFailed(errors.MintUnknown, err)
	}

	sig, err := identity.SignTransaction(payload)
	if err != nil {
		return MintResult{}, errors.MintFailed(errors.MintSigningFailed, err)
	}

	var result MintResult
	req := map[string]any{
		"payload":   json.RawMessage(payload),
		"signer":    identity.Address(),
		"signature": fmt.Sprintf("%x", sig),
	}
	if err := c.call(ctx, "mintRecord", req, &result); err != nil {
		return MintResult{}, ClassifyMintError(err)
	}
	return result, nil
}

// AttachMetadata uploads the metadata document for a freshly minted record
// and points the record's URI at it. Returns the final metadata URI.
func (c *RPCClient) AttachMetadata(ctx context.Context, identity Identity, id string, meta Metadata) (string, error) {
	if identity == nil {
		return "", errors.NotConfigured("mint identity")
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		return "", errors.MintFailed(errors.MintUnknown, err)
	}

	sig, err := identity.SignTransaction(payload)
	if err != nil {
		return "", errors.MintFailed(errors.MintSigningFailed, err)
	}

	var result struct {
		URI string `json:"uri"`
	}
	req := map[string]any{
		"id":        id,
		"metadata":  json.RawMessage(payload),
		"signer":    identity.Address(),
		"signature": fmt.Sprintf("%x", sig),
	}
	if err := c.call(ctx, "attachMetadata", req, &result); err != nil {
		return "", ClassifyMintError(err)
	}
	return result.URI, nil
}

// ClassifyMintError maps a raw submission failure onto the mint error
// taxonomy so each failure mode carries its own user-facing message.
// Already-classified mint errors pass through unchanged.
func ClassifyMintError(err error) error {
	if errors.IsCode(err, errors.ErrMintFailed) {
		return err
	}
	if errors.IsCode(err, errors.ErrRateLimited) {
		return errors.MintFailed(errors.MintNetworkCongestion, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"), strings.Contains(msg, "insufficient balance"):
		return errors.MintFailed(errors.MintInsufficientFunds, err)
	case strings.Contains(msg, "user rejected"), strings.Contains(msg, "rejected the request"):
		return errors.MintFailed(errors.MintUserRejected, err)
	case strings.Contains(msg, "blockhash"), strings.Contains(msg, "congest"), strings.Contains(msg, "timed out"):
		return errors.MintFailed(errors.MintNetworkCongestion, err)
	case strings.Contains(msg, "signature verification"), strings.Contains(msg, "signing"):
		return errors.MintFailed(errors.MintSigningFailed, err)
	default:
		return errors.MintFailed(errors.MintUnknown, err)
	}
}

var _ Client = (*RPCClient)(nil)
