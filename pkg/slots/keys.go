package slots

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// KeyHasher maps a key preimage to a slot offset.
type KeyHasher func(preimage []byte) word256.Word256

func Keccak256Hasher(preimage []byte) word256.Word256 {
	return word256.FromBytes32(crypto.Keccak256Hash(preimage))
}

func SHA256Hasher(preimage []byte) word256.Word256 {
	return word256.FromBytes32(sha256.Sum256(preimage))
}

const (
	HasherKeccak256 = "keccak256"
	HasherSHA256    = "sha256"
)

func HasherFromName(name string) (KeyHasher, error) {
	switch strings.ToLower(name) {
	case "", HasherKeccak256:
		return Keccak256Hasher, nil
	case HasherSHA256:
		return SHA256Hasher, nil
	}
	return nil, errors.Errorf("unknown key hasher '%s'", name)
}

// Key is anything with a canonical byte form usable as a map key.
type Key interface {
	KeyBytes() []byte
}

type StringKey string

func (k StringKey) KeyBytes() []byte {
	return []byte(k)
}

// AddressKey keys by account address in lowercase hex, so checksummed and
// plain spellings of the same address land on the same slot.
type AddressKey common.Address

func (k AddressKey) KeyBytes() []byte {
	return []byte(strings.ToLower(common.Address(k).Hex()))
}

func AddressKeyFromHex(s string) AddressKey {
	return AddressKey(common.HexToAddress(s))
}

// WordKey keys by the decimal form of a 256 bit value.
type WordKey word256.Word256

func (k WordKey) KeyBytes() []byte {
	return []byte(word256.Word256(k).String())
}

// preimage joins key components so that distinct tuples never collide: a
// component count, then each component prefixed by its big-endian length.
func preimage(parts ...[]byte) []byte {
	size := 1
	for _, p := range parts {
		size += 4 + len(p)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, byte(len(parts)))
	for _, p := range parts {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(p)))
		buf = append(buf, p...)
	}
	return buf
}
