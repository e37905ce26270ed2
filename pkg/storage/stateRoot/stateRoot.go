package stateRoot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/wealdtech/go-merkletree/v2"
	"github.com/wealdtech/go-merkletree/v2/keccak256"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

type StateRoot string

var (
	MerkleLeafPrefix_SlotCount = []byte{0x00}
	MerkleLeafPrefix_Slot      = []byte{0x01}
)

type MerkleTreeInput struct {
	Key   storage.SlotKey
	Value storage.Slot
}

// The slot count is the first leaf so an empty ledger still has a tree and
// ledgers of different sizes never share a leaf layout.
func initializeLeaves(count uint64) [][]byte {
	leaf := make([]byte, 0, len(MerkleLeafPrefix_SlotCount)+8)
	leaf = append(leaf, MerkleLeafPrefix_SlotCount...)
	return [][]byte{binary.BigEndian.AppendUint64(leaf, count)}
}

func encodeMerkleLeaf(key storage.SlotKey, value storage.Slot) []byte {
	leaf := make([]byte, 0, len(MerkleLeafPrefix_Slot)+len(key)+len(value))
	leaf = append(leaf, MerkleLeafPrefix_Slot...)
	leaf = append(leaf, key[:]...)
	return append(leaf, value[:]...)
}

// Merkleize builds a keccak256 tree over inputs, which must be sorted by key
// and free of duplicates.
func Merkleize(inputs []*MerkleTreeInput) (*merkletree.MerkleTree, error) {
	om := orderedmap.New[string, storage.Slot]()

	for _, input := range inputs {
		key := string(input.Key[:])
		if _, found := om.Get(key); found {
			return nil, fmt.Errorf("duplicate slot %s", input.Key.Address())
		}
		om.Set(key, input.Value)

		prev := om.GetPair(key).Prev()
		if prev != nil && prev.Key > key {
			om.Delete(key)
			return nil, errors.New("slots are not in order")
		}
	}

	leaves := initializeLeaves(uint64(om.Len()))
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		var k storage.SlotKey
		copy(k[:], pair.Key)
		leaves = append(leaves, encodeMerkleLeaf(k, pair.Value))
	}
	return merkletree.NewTree(
		merkletree.WithData(leaves),
		merkletree.WithHashType(keccak256.New()),
	)
}

// GenerateStateRoot commits to every non-zero slot in the backend. Zero slots
// are indistinguishable from unset ones and are left out, so the root does
// not depend on which backend stored them or in what order.
func GenerateStateRoot(b storage.Iterable, l *zap.Logger) (StateRoot, error) {
	inputs := make([]*MerkleTreeInput, 0)
	err := b.Iterate(func(addr storage.SlotAddress, value storage.Slot) error {
		if value.IsZero() {
			return nil
		}
		inputs = append(inputs, &MerkleTreeInput{Key: addr.Key(), Value: value})
		return nil
	})
	if err != nil {
		l.Sugar().Errorw("Failed to iterate slots", zap.Error(err))
		return "", errors.Wrap(err, "failed to iterate slots")
	}

	slices.SortFunc(inputs, func(a, b *MerkleTreeInput) int {
		return bytes.Compare(a.Key[:], b.Key[:])
	})

	tree, err := Merkleize(inputs)
	if err != nil {
		l.Sugar().Errorw("Failed to create merkle tree", zap.Error(err))
		return "", err
	}
	root := StateRoot(hexutil.Encode(tree.Root()))
	l.Sugar().Debugw("Generated state root",
		zap.Int("slots", len(inputs)),
		zap.String("root", string(root)),
	)
	return root, nil
}
