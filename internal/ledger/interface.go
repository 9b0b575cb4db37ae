package ledger

import "context"

// Reader retrieves records from the remote ledger. The only server-side
// filter available is the creator address: every higher-level query is a
// full scan through this call, so it is expensive, rate limited, and
// returns records in no particular order.
//
// The interface exists so tests can substitute MockLedger for the RPC
// client without a live endpoint.
type Reader interface {
	RecordsByCreator(ctx context.Context, creator string, limit int) ([]ContentRecord, error)
}

// MintParams describes a record to be minted. The URI is empty at mint
// time; the final metadata is attached afterwards.
type MintParams struct {
	Name                 string   `json:"name"`
	URI                  string   `json:"uri"`
	SellerFeeBasisPoints int      `json:"sellerFeeBasisPoints"`
	Collection           string   `json:"collection,omitempty"`
	Creators             []string `json:"creators"`
}

// MintResult is the ledger's descriptor for a freshly minted record.
type MintResult struct {
	ID              string `json:"id"`
	MetadataAddress string `json:"metadataAddress"`
}

// Minter creates records on the ledger. Mint calls are wallet-signed
// transactions, not passive reads, so they bypass the request queue.
type Minter interface {
	Mint(ctx context.Context, identity Identity, params MintParams) (MintResult, error)
	AttachMetadata(ctx context.Context, identity Identity, id string, meta Metadata) (string, error)
}

// Client is a full ledger collaborator: reads and mints over the same
// underlying connection.
type Client interface {
	Reader
	Minter
}

// Identity is the signing capability supplied by the calling context. The
// core never manages key material; construction of a concrete identity
// fails fast with NOT_CONFIGURED instead of probing capabilities at call
// time.
type Identity interface {
	Address() string
	SignTransaction(tx []byte) ([]byte, error)
	SignAllTransactions(txs [][]byte) ([][]byte, error)
}
