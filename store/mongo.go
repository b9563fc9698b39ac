package store

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dan13ram/cknft-bridge/app"
	"github.com/dan13ram/cknft-bridge/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	CollectionSequences = "sequences"

	cellID            = "value"
	sequenceLogIndex  = "transfer_log"
	counterField      = "value"
	nonceCounterField = "next"
)

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

type nonceDocument struct {
	ID   string `bson:"_id"`
	Next int64  `bson:"next"`
}

type publicKeyDocument struct {
	ID        string `bson:"_id"`
	PublicKey string `bson:"public_key"`
}

type configDocument struct {
	ID     string                  `bson:"_id"`
	Config models.CollectionConfig `bson:"config"`
}

// MongoStore keeps one collection per partition. Counters are int64
// documents advanced with $inc.
type MongoStore struct {
	db app.Database
}

var _ Store = &MongoStore{}

func NewMongoStore(db app.Database) *MongoStore {
	return &MongoStore{db: db}
}

func collection(p models.PartitionID) string {
	return p.Name()
}

// setDocument builds a $set update from v without its immutable _id.
func setDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")
	return bson.M{"$set": fields}, nil
}

func notFound(err error) error {
	if app.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *MongoStore) GetToken(id models.Nat) (*models.Token, error) {
	var token models.Token
	err := s.db.FindOne(collection(models.PartitionTokens), bson.M{"_id": id.Key()}, &token)
	if err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

func (s *MongoStore) PutToken(token *models.Token) error {
	update, err := setDocument(cloneToken(token))
	if err != nil {
		return err
	}
	return s.db.UpsertOne(collection(models.PartitionTokens), bson.M{"_id": token.ID.Key()}, update)
}

func (s *MongoStore) HasToken(id models.Nat) (bool, error) {
	count, err := s.db.CountDocuments(collection(models.PartitionTokens), bson.M{"_id": id.Key()})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoStore) ForEachToken(fn func(token *models.Token) bool) error {
	var tokens []models.Token
	err := s.db.FindManySorted(collection(models.PartitionTokens), bson.M{}, bson.D{{Key: "_id", Value: 1}}, &tokens)
	if err != nil {
		return err
	}
	for i := range tokens {
		if !fn(&tokens[i]) {
			break
		}
	}
	return nil
}

func (s *MongoStore) nextSequence(name string) (int64, error) {
	var counter counterDocument
	err := s.db.FindOneAndIncrement(CollectionSequences, bson.M{"_id": name}, counterField, &counter)
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (s *MongoStore) AppendTransferLog(entry *models.TransferLog) (uint64, error) {
	seq, err := s.nextSequence(sequenceLogIndex)
	if err != nil {
		return 0, fmt.Errorf("error allocating transfer log index: %w", err)
	}
	stored := *entry
	stored.Index = uint64(seq - 1)
	stored.From = entry.From.Normalize()
	stored.To = entry.To.Normalize()

	if err := s.db.InsertOne(collection(models.PartitionTransferLog), stored); err != nil {
		return 0, err
	}
	return stored.Index, nil
}

func (s *MongoStore) GetTransferLog(index uint64) (*models.TransferLog, error) {
	var entry models.TransferLog
	err := s.db.FindOne(collection(models.PartitionTransferLog), bson.M{"_id": int64(index)}, &entry)
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

func (s *MongoStore) FindTransferLog(query models.TransferLogQuery) (uint64, bool, error) {
	if query.At <= query.After {
		return 0, false, nil
	}
	var candidates []models.TransferLog
	filter := bson.M{"token_id": query.ID.Key(), "at": int64(query.At)}
	err := s.db.FindManySorted(collection(models.PartitionTransferLog), filter, bson.D{{Key: "_id", Value: 1}}, &candidates)
	if err != nil {
		return 0, false, err
	}
	for i := range candidates {
		if query.Matches(&candidates[i]) {
			return candidates[i].Index, true, nil
		}
	}
	return 0, false, nil
}

func (s *MongoStore) TransferLogLength() (uint64, error) {
	count, err := s.db.CountDocuments(collection(models.PartitionTransferLog), bson.M{})
	return uint64(count), err
}

func (s *MongoStore) increment(p models.PartitionID) (models.Nat, error) {
	var counter counterDocument
	err := s.db.FindOneAndIncrement(collection(p), bson.M{"_id": cellID}, counterField, &counter)
	if err != nil {
		return models.Nat{}, err
	}
	return models.NewNat(uint64(counter.Value)), nil
}

func (s *MongoStore) read(p models.PartitionID) (models.Nat, error) {
	var counter counterDocument
	err := s.db.FindOne(collection(p), bson.M{"_id": cellID}, &counter)
	if app.IsNotFound(err) {
		return models.Nat{}, nil
	}
	if err != nil {
		return models.Nat{}, err
	}
	return models.NewNat(uint64(counter.Value)), nil
}

func (s *MongoStore) NextTransactionID() (models.Nat, error) {
	return s.increment(models.PartitionTransactionID)
}

func (s *MongoStore) TransactionID() (models.Nat, error) {
	return s.read(models.PartitionTransactionID)
}

func (s *MongoStore) IncrementTotalSupply() (models.Nat, error) {
	return s.increment(models.PartitionTotalSupply)
}

func (s *MongoStore) TotalSupply() (models.Nat, error) {
	return s.read(models.PartitionTotalSupply)
}

func (s *MongoStore) NextNonce(subaccount models.Subaccount) (uint64, error) {
	var doc nonceDocument
	err := s.db.FindOneAndIncrement(collection(models.PartitionNonceMap), bson.M{"_id": subaccount.Hex()}, nonceCounterField, &doc)
	if err != nil {
		return 0, err
	}
	return uint64(doc.Next - 1), nil
}

func (s *MongoStore) GetMintStatus(messageID models.Nat) (*models.MintStatus, error) {
	var status models.MintStatus
	err := s.db.FindOne(collection(models.PartitionStatusMap), bson.M{"_id": messageID.Key()}, &status)
	if err != nil {
		return nil, notFound(err)
	}
	return &status, nil
}

func (s *MongoStore) PutMintStatus(status *models.MintStatus) error {
	stored := *status
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	update, err := setDocument(&stored)
	if err != nil {
		return err
	}
	return s.db.UpsertOne(collection(models.PartitionStatusMap), bson.M{"_id": status.MessageID.Key()}, update)
}

func (s *MongoStore) ForEachMintStatus(fn func(status *models.MintStatus) bool) error {
	var statuses []models.MintStatus
	err := s.db.FindManySorted(collection(models.PartitionStatusMap), bson.M{}, bson.D{{Key: "_id", Value: 1}}, &statuses)
	if err != nil {
		return err
	}
	for i := range statuses {
		if !fn(&statuses[i]) {
			break
		}
	}
	return nil
}

func (s *MongoStore) GetSignature(messageID models.Nat) ([]byte, error) {
	var doc models.StoredSignature
	err := s.db.FindOne(collection(models.PartitionSignatureMap), bson.M{"_id": messageID.Key()}, &doc)
	if err != nil {
		return nil, notFound(err)
	}
	return doc.Signature, nil
}

func (s *MongoStore) PutSignature(messageID models.Nat, signature []byte) error {
	update := bson.M{"$set": bson.M{"signature": signature}}
	return s.db.UpsertOne(collection(models.PartitionSignatureMap), bson.M{"_id": messageID.Key()}, update)
}

func (s *MongoStore) GetPublicKey() ([]byte, error) {
	var doc publicKeyDocument
	err := s.db.FindOne(collection(models.PartitionPublicKey), bson.M{"_id": cellID}, &doc)
	if err != nil {
		return nil, notFound(err)
	}
	return hex.DecodeString(doc.PublicKey)
}

func (s *MongoStore) PutPublicKey(publicKey []byte) error {
	update := bson.M{"$set": bson.M{"public_key": hex.EncodeToString(publicKey)}}
	return s.db.UpsertOne(collection(models.PartitionPublicKey), bson.M{"_id": cellID}, update)
}

func (s *MongoStore) GetConfig() (*models.CollectionConfig, error) {
	var doc configDocument
	err := s.db.FindOne(collection(models.PartitionConfig), bson.M{"_id": cellID}, &doc)
	if err != nil {
		return nil, notFound(err)
	}
	return &doc.Config, nil
}

func (s *MongoStore) PutConfig(config *models.CollectionConfig) error {
	update := bson.M{"$set": bson.M{"config": config}}
	return s.db.UpsertOne(collection(models.PartitionConfig), bson.M{"_id": cellID}, update)
}

func (s *MongoStore) PartitionDetails() ([]models.PartitionDetail, error) {
	counts := make(map[models.PartitionID]uint64, len(models.Partitions))
	for _, p := range models.Partitions {
		count, err := s.db.CountDocuments(collection(p), bson.M{})
		if err != nil {
			return nil, fmt.Errorf("error counting %s: %w", p.Name(), err)
		}
		counts[p] = uint64(count)
	}
	return partitionDetails(func(p models.PartitionID) uint64 { return counts[p] }), nil
}
