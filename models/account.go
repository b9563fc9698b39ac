package models

import (
	"encoding/hex"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const (
	SubaccountLength   = 32
	MaxPrincipalLength = 29
)

var (
	ErrInvalidSubaccount = errors.New("invalid subaccount")
	ErrInvalidPrincipal  = errors.New("invalid principal")
)

type Subaccount [SubaccountLength]byte

// SubaccountFromPrincipal encodes a principal as [len, bytes...] right padded with zeros.
func SubaccountFromPrincipal(principal string) (Subaccount, error) {
	var sub Subaccount
	if len(principal) == 0 || len(principal) > MaxPrincipalLength {
		return sub, fmt.Errorf("%w: length %d", ErrInvalidPrincipal, len(principal))
	}
	sub[0] = byte(len(principal))
	copy(sub[1:], principal)
	return sub, nil
}

func SubaccountFromHex(s string) (Subaccount, error) {
	var sub Subaccount
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != SubaccountLength {
		return sub, fmt.Errorf("%w: %q", ErrInvalidSubaccount, s)
	}
	copy(sub[:], b)
	return sub, nil
}

func (s Subaccount) IsZero() bool {
	return s == Subaccount{}
}

func (s Subaccount) Hex() string {
	return hex.EncodeToString(s[:])
}

func (s Subaccount) MarshalText() ([]byte, error) {
	return []byte(s.Hex()), nil
}

func (s *Subaccount) UnmarshalText(b []byte) error {
	v, err := SubaccountFromHex(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Subaccount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(s.Hex())
}

func (s *Subaccount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	str, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("%w: cannot decode %s", ErrInvalidSubaccount, t)
	}
	return s.UnmarshalText([]byte(str))
}

// Account is an owner principal plus an optional subaccount. A nil and an
// all-zero subaccount name the same account.
type Account struct {
	Owner      string      `bson:"owner" json:"owner"`
	Subaccount *Subaccount `bson:"subaccount,omitempty" json:"subaccount,omitempty"`
}

func NewAccount(owner string, subaccount *Subaccount) Account {
	return Account{Owner: owner, Subaccount: subaccount}.Normalize()
}

func (a Account) EffectiveSubaccount() Subaccount {
	if a.Subaccount == nil {
		return Subaccount{}
	}
	return *a.Subaccount
}

// Normalize drops an all-zero subaccount so equal accounts share one encoding.
func (a Account) Normalize() Account {
	if a.Subaccount != nil && a.Subaccount.IsZero() {
		return Account{Owner: a.Owner}
	}
	if a.Subaccount != nil {
		sub := *a.Subaccount
		return Account{Owner: a.Owner, Subaccount: &sub}
	}
	return a
}

func (a Account) Equal(o Account) bool {
	return a.Owner == o.Owner && a.EffectiveSubaccount() == o.EffectiveSubaccount()
}

// Key is a stable string identity usable as a map key.
func (a Account) Key() string {
	return a.Owner + "." + a.EffectiveSubaccount().Hex()
}

func (a Account) String() string {
	if a.Subaccount == nil || a.Subaccount.IsZero() {
		return a.Owner
	}
	return a.Owner + "." + a.Subaccount.Hex()
}
