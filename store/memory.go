package store

import (
	"sort"
	"sync"

	"github.com/dan13ram/cknft-bridge/models"
)

type logKey struct {
	id models.Nat
	at uint64
}

// MemoryStore keeps every partition in process memory.
type MemoryStore struct {
	mu sync.RWMutex

	config        *models.CollectionConfig
	tokens        map[models.Nat]*models.Token
	transferLog   []models.TransferLog
	logIndex      map[logKey][]uint64
	transactionID models.Nat
	totalSupply   models.Nat
	nonces        map[models.Subaccount]uint64
	statuses      map[models.Nat]*models.MintStatus
	signatures    map[models.Nat][]byte
	publicKey     []byte
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens:     make(map[models.Nat]*models.Token),
		logIndex:   make(map[logKey][]uint64),
		nonces:     make(map[models.Subaccount]uint64),
		statuses:   make(map[models.Nat]*models.MintStatus),
		signatures: make(map[models.Nat][]byte),
	}
}

func (s *MemoryStore) GetToken(id models.Nat) (*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneToken(token), nil
}

func (s *MemoryStore) PutToken(token *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token.ID] = cloneToken(token)
	return nil
}

func (s *MemoryStore) HasToken(id models.Nat) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tokens[id]
	return ok, nil
}

func (s *MemoryStore) ForEachToken(fn func(token *models.Token) bool) error {
	s.mu.RLock()
	ids := make([]models.Nat, 0, len(s.tokens))
	for id := range s.tokens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Cmp(ids[j]) < 0 })
	snapshot := make([]*models.Token, len(ids))
	for i, id := range ids {
		snapshot[i] = cloneToken(s.tokens[id])
	}
	s.mu.RUnlock()

	for _, token := range snapshot {
		if !fn(token) {
			break
		}
	}
	return nil
}

func (s *MemoryStore) AppendTransferLog(entry *models.TransferLog) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := uint64(len(s.transferLog))
	stored := *entry
	stored.Index = index
	stored.From = entry.From.Normalize()
	stored.To = entry.To.Normalize()
	if entry.Memo != nil {
		stored.Memo = append([]byte{}, entry.Memo...)
	}
	s.transferLog = append(s.transferLog, stored)

	key := logKey{id: stored.ID, at: stored.At}
	s.logIndex[key] = append(s.logIndex[key], index)
	return index, nil
}

func (s *MemoryStore) GetTransferLog(index uint64) (*models.TransferLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index >= uint64(len(s.transferLog)) {
		return nil, ErrNotFound
	}
	entry := s.transferLog[index]
	return &entry, nil
}

func (s *MemoryStore) FindTransferLog(query models.TransferLogQuery) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, index := range s.logIndex[logKey{id: query.ID, at: query.At}] {
		if query.Matches(&s.transferLog[index]) {
			return index, true, nil
		}
	}
	return 0, false, nil
}

func (s *MemoryStore) TransferLogLength() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.transferLog)), nil
}

func (s *MemoryStore) NextTransactionID() (models.Nat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.transactionID.AddUint64(1)
	if err != nil {
		return models.Nat{}, err
	}
	s.transactionID = next
	return next, nil
}

func (s *MemoryStore) TransactionID() (models.Nat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.transactionID, nil
}

func (s *MemoryStore) IncrementTotalSupply() (models.Nat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.totalSupply.AddUint64(1)
	if err != nil {
		return models.Nat{}, err
	}
	s.totalSupply = next
	return next, nil
}

func (s *MemoryStore) TotalSupply() (models.Nat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalSupply, nil
}

func (s *MemoryStore) NextNonce(subaccount models.Subaccount) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nonce := s.nonces[subaccount]
	s.nonces[subaccount] = nonce + 1
	return nonce, nil
}

func (s *MemoryStore) GetMintStatus(messageID models.Nat) (*models.MintStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.statuses[messageID]
	if !ok {
		return nil, ErrNotFound
	}
	c := *status
	return &c, nil
}

func (s *MemoryStore) PutMintStatus(status *models.MintStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *status
	s.statuses[status.MessageID] = &c
	return nil
}

func (s *MemoryStore) ForEachMintStatus(fn func(status *models.MintStatus) bool) error {
	s.mu.RLock()
	snapshot := make([]models.MintStatus, 0, len(s.statuses))
	for _, status := range s.statuses {
		snapshot = append(snapshot, *status)
	}
	s.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].MessageID.Cmp(snapshot[j].MessageID) < 0 })
	for i := range snapshot {
		if !fn(&snapshot[i]) {
			break
		}
	}
	return nil
}

func (s *MemoryStore) GetSignature(messageID models.Nat) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sig, ok := s.signatures[messageID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), sig...), nil
}

func (s *MemoryStore) PutSignature(messageID models.Nat, signature []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.signatures[messageID] = append([]byte(nil), signature...)
	return nil
}

func (s *MemoryStore) GetPublicKey() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.publicKey == nil {
		return nil, ErrNotFound
	}
	return append([]byte{}, s.publicKey...), nil
}

func (s *MemoryStore) PutPublicKey(publicKey []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publicKey = append([]byte{}, publicKey...)
	return nil
}

func (s *MemoryStore) GetConfig() (*models.CollectionConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return nil, ErrNotFound
	}
	return cloneConfig(s.config), nil
}

func (s *MemoryStore) PutConfig(config *models.CollectionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = cloneConfig(config)
	return nil
}

func (s *MemoryStore) PartitionDetails() ([]models.PartitionDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[models.PartitionID]int{
		models.PartitionConfig:        boolCount(s.config != nil),
		models.PartitionTokens:        len(s.tokens),
		models.PartitionTransferLog:   len(s.transferLog),
		models.PartitionTransactionID: 1,
		models.PartitionTotalSupply:   1,
		models.PartitionNonceMap:      len(s.nonces),
		models.PartitionStatusMap:     len(s.statuses),
		models.PartitionSignatureMap:  len(s.signatures),
		models.PartitionPublicKey:     boolCount(s.publicKey != nil),
	}
	return partitionDetails(func(p models.PartitionID) uint64 { return uint64(counts[p]) }), nil
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func partitionDetails(count func(models.PartitionID) uint64) []models.PartitionDetail {
	details := make([]models.PartitionDetail, 0, len(models.Partitions))
	for _, p := range models.Partitions {
		details = append(details, models.PartitionDetail{
			Name:    p.Name(),
			ID:      uint8(p),
			Entries: count(p),
		})
	}
	return details
}
