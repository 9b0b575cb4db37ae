package ledger

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/mintfeed/mintfeed/internal/errors"
)

// KeypairIdentity is an ed25519-backed Identity for server-held keys (the
// seeder and the API server's own wallet). Browser wallets satisfy the same
// interface on the client side and are out of scope here.
type KeypairIdentity struct {
	priv ed25519.PrivateKey
	addr string
}

// NewKeypairIdentity builds an identity from a 32-byte ed25519 seed.
func NewKeypairIdentity(seed []byte) (*KeypairIdentity, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.NotConfigured("ledger identity keypair")
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return &KeypairIdentity{
		priv: priv,
		addr: hex.EncodeToString(pub),
	}, nil
}

// Address returns the wallet address derived from the public key.
func (k *KeypairIdentity) Address() string {
	return k.addr
}

// SignTransaction signs a single serialized transaction.
func (k *KeypairIdentity) SignTransaction(tx []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, tx), nil
}

// SignAllTransactions signs a batch in order.
func (k *KeypairIdentity) SignAllTransactions(txs [][]byte) ([][]byte, error) {
	sigs := make([][]byte, len(txs))
	for i, tx := range txs {
		sigs[i] = ed25519.Sign(k.priv, tx)
	}
	return sigs, nil
}

var _ Identity = (*KeypairIdentity)(nil)
