package ledger

// Attribute is a single key/value pair from a record's metadata attribute
// list. The ledger does not guarantee unique keys, and values arrive as
// either strings or JSON numbers.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// Metadata is the JSON document attached to a record after minting.
type Metadata struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// ContentRecord is a raw record as retrieved from the ledger, before
// classification. Records are immutable once minted; the only mutation the
// ledger supports is the one-time metadata URI attach during creation.
type ContentRecord struct {
	ID          string      `json:"id"`
	URI         string      `json:"uri"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}
