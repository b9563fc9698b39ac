package models

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const (
	NatBits      = 128
	NatByteWidth = NatBits / 8
)

var ErrNatOverflow = errors.New("value does not fit in 128 bits")

// Nat is an unsigned integer limited to 128 bits. It is comparable and
// can be used as a map key.
type Nat uint256.Int

func NewNat(x uint64) Nat {
	return Nat(*uint256.NewInt(x))
}

func ParseNat(s string) (Nat, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Nat{}, fmt.Errorf("invalid natural number %q: %w", s, err)
	}
	if v.BitLen() > NatBits {
		return Nat{}, ErrNatOverflow
	}
	return Nat(*v), nil
}

// NatFromBytes reads a big-endian value of at most 16 bytes.
func NatFromBytes(b []byte) (Nat, error) {
	if len(b) > NatByteWidth {
		return Nat{}, ErrNatOverflow
	}
	var v uint256.Int
	v.SetBytes(b)
	return Nat(v), nil
}

func (n Nat) Int() *uint256.Int {
	v := uint256.Int(n)
	return &v
}

func (n Nat) IsZero() bool {
	return n.Int().IsZero()
}

func (n Nat) Cmp(o Nat) int {
	return n.Int().Cmp(o.Int())
}

func (n Nat) Uint64() (uint64, bool) {
	v := n.Int()
	return v.Uint64(), v.IsUint64()
}

// AddUint64 returns n + x, failing if the sum leaves the 128 bit range.
func (n Nat) AddUint64(x uint64) (Nat, error) {
	v := n.Int()
	v.AddUint64(v, x)
	if v.BitLen() > NatBits || v.Lt(n.Int()) {
		return Nat{}, ErrNatOverflow
	}
	return Nat(*v), nil
}

// Bytes16 is the big-endian 16 byte encoding.
func (n Nat) Bytes16() [NatByteWidth]byte {
	var out [NatByteWidth]byte
	b32 := n.Int().Bytes32()
	copy(out[:], b32[32-NatByteWidth:])
	return out
}

// Key is a fixed width hex encoding whose lexical order matches numeric order.
func (n Nat) Key() string {
	b := n.Bytes16()
	return hex.EncodeToString(b[:])
}

func NatFromKey(s string) (Nat, error) {
	if len(s) != 2*NatByteWidth {
		return Nat{}, fmt.Errorf("invalid nat key %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Nat{}, fmt.Errorf("invalid nat key %q: %w", s, err)
	}
	return NatFromBytes(b)
}

func (n Nat) String() string {
	return n.Int().Dec()
}

func (n Nat) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.String() + `"`), nil
}

func (n *Nat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParseNat(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n Nat) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(n.Key())
}

func (n *Nat) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("cannot decode %s into a nat", t)
	}
	v, err := NatFromKey(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}
