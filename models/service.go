package models

import (
	"time"
)

type RunnerStatus struct {
	TransactionID string
	Processed     string
}

type ServiceHealth struct {
	Name          string    `bson:"name" json:"name"`
	LastSyncTime  time.Time `bson:"last_sync_time" json:"last_sync_time"`
	NextSyncTime  time.Time `bson:"next_sync_time" json:"next_sync_time"`
	TransactionID string    `bson:"transaction_id" json:"transaction_id"`
	Processed     string    `bson:"processed" json:"processed"`
	Healthy       bool      `bson:"healthy" json:"healthy"`
}
