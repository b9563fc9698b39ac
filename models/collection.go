package models

const (
	StandardName = "ICRC-7"
	StandardURL  = "https://github.com/dfinity/ICRC/ICRCs/ICRC-7"
)

// CollectionConfig is the ledger configuration persisted in the config partition.
type CollectionConfig struct {
	Symbol               string   `bson:"symbol" json:"symbol" yaml:"symbol"`
	Name                 string   `bson:"name" json:"name" yaml:"name"`
	Description          *string  `bson:"description,omitempty" json:"description,omitempty" yaml:"description"`
	Logo                 *string  `bson:"logo,omitempty" json:"logo,omitempty" yaml:"logo"`
	SupplyCap            *uint64  `bson:"supply_cap,omitempty" json:"supply_cap,omitempty" yaml:"supply_cap"`
	MaxQueryBatchSize    *uint64  `bson:"max_query_batch_size,omitempty" json:"max_query_batch_size,omitempty" yaml:"max_query_batch_size"`
	MaxUpdateBatchSize   *uint64  `bson:"max_update_batch_size,omitempty" json:"max_update_batch_size,omitempty" yaml:"max_update_batch_size"`
	DefaultTakeValue     *uint64  `bson:"default_take_value,omitempty" json:"default_take_value,omitempty" yaml:"default_take_value"`
	MaxTakeValue         *uint64  `bson:"max_take_value,omitempty" json:"max_take_value,omitempty" yaml:"max_take_value"`
	MaxMemoSize          *uint64  `bson:"max_memo_size,omitempty" json:"max_memo_size,omitempty" yaml:"max_memo_size"`
	AtomicBatchTransfers *bool    `bson:"atomic_batch_transfers,omitempty" json:"atomic_batch_transfers,omitempty" yaml:"atomic_batch_transfers"`
	Royalties            *uint16  `bson:"royalties,omitempty" json:"royalties,omitempty" yaml:"royalties"`
	RoyaltyRecipient     *Account `bson:"royalty_recipient,omitempty" json:"royalty_recipient,omitempty" yaml:"royalty_recipient"`
	TxWindow             uint64   `bson:"tx_window" json:"tx_window" yaml:"tx_window"`
	PermittedDrift       uint64   `bson:"permitted_drift" json:"permitted_drift" yaml:"permitted_drift"`
	MintingAuthority     string   `bson:"minting_authority" json:"minting_authority" yaml:"minting_authority"`
	Controllers          []string `bson:"controllers" json:"controllers" yaml:"controllers"`
	BridgeContract       string   `bson:"cknft_eth_address" json:"cknft_eth_address" yaml:"cknft_eth_address"`
	SigningKeyName       string   `bson:"ecdsa_key_name" json:"ecdsa_key_name" yaml:"ecdsa_key_name"`
	MintExpirySecs       uint64   `bson:"mint_expiry_secs" json:"mint_expiry_secs" yaml:"mint_expiry_secs"`
}

func (c *CollectionConfig) IsController(principal string) bool {
	for _, controller := range c.Controllers {
		if controller == principal {
			return true
		}
	}
	return false
}

type CollectionMetadata struct {
	Symbol               string   `json:"icrc7_symbol"`
	Name                 string   `json:"icrc7_name"`
	Description          *string  `json:"icrc7_description,omitempty"`
	Logo                 *string  `json:"icrc7_logo,omitempty"`
	TotalSupply          Nat      `json:"icrc7_total_supply"`
	SupplyCap            *uint64  `json:"icrc7_supply_cap,omitempty"`
	MaxQueryBatchSize    *uint64  `json:"icrc7_max_query_batch_size,omitempty"`
	MaxUpdateBatchSize   *uint64  `json:"icrc7_max_update_batch_size,omitempty"`
	DefaultTakeValue     *uint64  `json:"icrc7_default_take_value,omitempty"`
	MaxTakeValue         *uint64  `json:"icrc7_max_take_value,omitempty"`
	MaxMemoSize          *uint64  `json:"icrc7_max_memo_size,omitempty"`
	AtomicBatchTransfers *bool    `json:"icrc7_atomic_batch_transfers,omitempty"`
	Royalties            *uint16  `json:"icrc7_royalties,omitempty"`
	RoyaltyRecipient     *Account `json:"icrc7_royalty_recipient,omitempty"`
	TxWindow             uint64   `json:"icrc7_tx_window"`
	PermittedDrift       uint64   `json:"icrc7_permitted_drift"`
}

func (c *CollectionConfig) Metadata(totalSupply Nat) CollectionMetadata {
	return CollectionMetadata{
		Symbol:               c.Symbol,
		Name:                 c.Name,
		Description:          c.Description,
		Logo:                 c.Logo,
		TotalSupply:          totalSupply,
		SupplyCap:            c.SupplyCap,
		MaxQueryBatchSize:    c.MaxQueryBatchSize,
		MaxUpdateBatchSize:   c.MaxUpdateBatchSize,
		DefaultTakeValue:     c.DefaultTakeValue,
		MaxTakeValue:         c.MaxTakeValue,
		MaxMemoSize:          c.MaxMemoSize,
		AtomicBatchTransfers: c.AtomicBatchTransfers,
		Royalties:            c.Royalties,
		RoyaltyRecipient:     c.RoyaltyRecipient,
		TxWindow:             c.TxWindow,
		PermittedDrift:       c.PermittedDrift,
	}
}

type Standard struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
