package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionHealthChecks = "healthchecks"
)

type Health struct {
	ID             *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Principal      string              `bson:"principal" json:"principal"`
	SignerAddress  string              `bson:"signer_address" json:"signer_address"`
	Hostname       string              `bson:"hostname" json:"hostname"`
	ServiceHealths []ServiceHealth     `bson:"service_healths" json:"service_healths"`
	TransactionID  string              `bson:"transaction_id" json:"transaction_id"`
	TotalSupply    string              `bson:"total_supply" json:"total_supply"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}
