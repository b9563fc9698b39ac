package models

type PartitionID uint8

// Partition ids are persisted and must never be renumbered.
const (
	PartitionConfig        PartitionID = 1
	PartitionTokens        PartitionID = 2
	PartitionTransferLog   PartitionID = 3
	PartitionTransactionID PartitionID = 4
	PartitionTotalSupply   PartitionID = 5
	PartitionNonceMap      PartitionID = 6
	PartitionStatusMap     PartitionID = 7
	PartitionSignatureMap  PartitionID = 8
	PartitionPublicKey     PartitionID = 9
)

var Partitions = []PartitionID{
	PartitionConfig,
	PartitionTokens,
	PartitionTransferLog,
	PartitionTransactionID,
	PartitionTotalSupply,
	PartitionNonceMap,
	PartitionStatusMap,
	PartitionSignatureMap,
	PartitionPublicKey,
}

func (p PartitionID) Name() string {
	switch p {
	case PartitionConfig:
		return "config"
	case PartitionTokens:
		return "tokens"
	case PartitionTransferLog:
		return "transfer_log"
	case PartitionTransactionID:
		return "transaction_id"
	case PartitionTotalSupply:
		return "total_supply"
	case PartitionNonceMap:
		return "nonce_map"
	case PartitionStatusMap:
		return "status_map"
	case PartitionSignatureMap:
		return "signature_map"
	case PartitionPublicKey:
		return "public_key"
	default:
		return "unknown"
	}
}

type PartitionDetail struct {
	Name    string `json:"name"`
	ID      uint8  `json:"id"`
	Entries uint64 `json:"entries"`
}
