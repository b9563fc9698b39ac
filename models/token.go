package models

type Approval struct {
	Account   Account `bson:"account" json:"account"`
	ExpiresAt *uint64 `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

// Allows reports whether the approval is held by account and still valid at the given time.
func (a Approval) Allows(account Account, at uint64) bool {
	if !a.Account.Equal(account) {
		return false
	}
	return a.ExpiresAt == nil || *a.ExpiresAt >= at
}

type Token struct {
	ID          Nat        `bson:"_id" json:"id"`
	Owner       Account    `bson:"owner" json:"owner"`
	Name        string     `bson:"name" json:"name"`
	Description *string    `bson:"description,omitempty" json:"description,omitempty"`
	Image       []byte     `bson:"image,omitempty" json:"image,omitempty"`
	Approvals   []Approval `bson:"approvals" json:"approvals"`
}

func (t *Token) IsApproved(account Account, at uint64) bool {
	for _, approval := range t.Approvals {
		if approval.Allows(account, at) {
			return true
		}
	}
	return false
}

func (t *Token) TransferTo(to Account) {
	t.Owner = to.Normalize()
	t.Approvals = []Approval{}
}

type MetadataValue struct {
	Nat  *Nat    `json:"Nat,omitempty"`
	Text *string `json:"Text,omitempty"`
	Blob []byte  `json:"Blob,omitempty"`
}

type MetadataEntry struct {
	Key   string        `json:"key"`
	Value MetadataValue `json:"value"`
}

func (t *Token) Metadata() []MetadataEntry {
	id := t.ID
	name := t.Name
	entries := []MetadataEntry{
		{Key: "Id", Value: MetadataValue{Nat: &id}},
		{Key: "Name", Value: MetadataValue{Text: &name}},
	}
	if t.Image != nil {
		entries = append(entries, MetadataEntry{Key: "Image", Value: MetadataValue{Blob: t.Image}})
	}
	if t.Description != nil {
		description := *t.Description
		entries = append(entries, MetadataEntry{Key: "Description", Value: MetadataValue{Text: &description}})
	}
	return entries
}
