package slots

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/Layr-Labs/slotledger/pkg/safeMath"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/storage/memory"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup() (*memory.MemoryBackend, *Session) {
	b := memory.NewMemoryBackend(zap.NewNop())
	return b, NewSession(b, zap.NewNop())
}

type countingBackend struct {
	storage.Backend
	gets int
	sets int
}

func (c *countingBackend) Get(pointer uint16, offset word256.Word256, def storage.Slot) (storage.Slot, error) {
	c.gets++
	return c.Backend.Get(pointer, offset, def)
}

func (c *countingBackend) Set(pointer uint16, offset word256.Word256, value storage.Slot) error {
	c.sets++
	return c.Backend.Set(pointer, offset, value)
}

func Test_ScalarSlot(t *testing.T) {
	t.Run("Should accumulate across fresh accessors", func(t *testing.T) {
		_, s := setup()

		a := NewScalarSlot(s, 7, word256.Zero, word256.Zero)
		require.Nil(t, a.Add(word256.FromU64(5)))
		require.Nil(t, a.Add(word256.FromU64(3)))

		fresh := NewScalarSlot(s, 7, word256.Zero, word256.Zero)
		v, err := fresh.Value()
		assert.Nil(t, err)
		assert.Equal(t, "8", v.String())
	})

	t.Run("Should persist to the backend across sessions", func(t *testing.T) {
		b, s := setup()
		a := NewScalarSlot(s, 7, word256.Zero, mpint.Zero)
		require.Nil(t, a.Add(mpint.FromU32(5)))
		require.Nil(t, a.Add(mpint.FromU32(3)))

		other := NewScalarSlot(NewSession(b, zap.NewNop()), 7, word256.Zero, mpint.Zero)
		v, err := other.Value()
		assert.Nil(t, err)
		assert.True(t, v.Eq(mpint.FromU32(8)))
	})

	t.Run("Should substitute the default when unset", func(t *testing.T) {
		_, s := setup()
		a := NewScalarSlot(s, 1, word256.FromU64(9), word256.FromU64(42))
		v, err := a.Value()
		assert.Nil(t, err)
		assert.Equal(t, uint64(42), v.Limbs()[0])

		gt, err := a.Gt(word256.FromU64(41))
		assert.Nil(t, err)
		assert.True(t, gt)
	})

	t.Run("Should reject overflow and underflow without writing", func(t *testing.T) {
		b, s := setup()
		a := NewScalarSlot(s, 2, word256.Zero, word256.Zero)

		err := a.Sub(word256.One)
		assert.ErrorIs(t, err, safeMath.ErrUnderflow)
		has, _ := b.Has(2, word256.Zero)
		assert.False(t, has)

		require.Nil(t, a.Set(word256.Max))
		assert.ErrorIs(t, a.Inc(), safeMath.ErrOverflow)
		assert.ErrorIs(t, a.Div(word256.Zero), safeMath.ErrDivideByZero)

		v, _ := a.Value()
		assert.True(t, v.Eq(word256.Max))
	})

	t.Run("Should skip the write when the value is unchanged", func(t *testing.T) {
		mem, _ := setup()
		cb := &countingBackend{Backend: mem}
		s := NewSession(cb, zap.NewNop())

		a := NewScalarSlot(s, 3, word256.Zero, word256.Zero)
		require.Nil(t, a.Set(word256.FromU64(10)))
		require.Nil(t, a.Set(word256.FromU64(10)))
		assert.Equal(t, 1, cb.sets)
	})

	t.Run("Should serve reads from the cache until the session resets", func(t *testing.T) {
		mem, _ := setup()
		cb := &countingBackend{Backend: mem}
		s := NewSession(cb, zap.NewNop())

		a := NewScalarSlot(s, 3, word256.Zero, word256.Zero)
		_, _ = a.Value()
		_, _ = a.Value()
		assert.Equal(t, 1, cb.gets)

		// another writer changes the slot between calls
		require.Nil(t, mem.Set(3, word256.Zero, storage.Slot{31: 4}))
		s.Reset()

		v, err := a.Value()
		assert.Nil(t, err)
		assert.Equal(t, uint64(4), v.Limbs()[0])
		assert.Equal(t, 2, cb.gets)
	})

	t.Run("Should observe writes made through another accessor", func(t *testing.T) {
		_, s := setup()
		a := NewScalarSlot(s, 4, word256.Zero, word256.Zero)
		b := NewScalarSlot(s, 4, word256.Zero, word256.Zero)

		require.Nil(t, a.Set(word256.FromU64(11)))
		eq, err := b.Eq(word256.FromU64(11))
		assert.Nil(t, err)
		assert.True(t, eq)
	})

	t.Run("Should not lose writes between two hydrated accessors", func(t *testing.T) {
		b, s := setup()
		a := NewScalarSlot(s, 4, word256.Zero, word256.Zero)
		other := NewScalarSlot(s, 4, word256.Zero, word256.Zero)
		_, _ = a.Value()
		_, _ = other.Value()

		require.Nil(t, a.Add(word256.FromU64(5)))
		v, _ := other.Value()
		assert.Equal(t, "5", v.String())

		require.Nil(t, other.Add(word256.FromU64(3)))
		v, _ = a.Value()
		assert.Equal(t, "8", v.String())

		stored, err := b.Get(4, word256.Zero, storage.Slot{})
		assert.Nil(t, err)
		assert.Equal(t, byte(8), stored[31])
	})

	t.Run("Should keep reading from the cache when other slots change", func(t *testing.T) {
		mem, _ := setup()
		cb := &countingBackend{Backend: mem}
		s := NewSession(cb, zap.NewNop())

		a := NewScalarSlot(s, 4, word256.Zero, word256.Zero)
		_, _ = a.Value()
		require.Nil(t, NewScalarSlot(s, 4, word256.One, word256.Zero).Set(word256.One))
		before := cb.gets
		_, _ = a.Value()
		assert.Equal(t, before, cb.gets)
	})

	t.Run("Should apply the remaining mutators", func(t *testing.T) {
		_, s := setup()
		a := NewScalarSlot(s, 5, word256.Zero, mpint.FromU32(3))

		require.Nil(t, a.Mul(mpint.FromU32(7)))  // 21
		require.Nil(t, a.Mod(mpint.FromU32(8)))  // 5
		require.Nil(t, a.Pow(3))                 // 125
		require.Nil(t, a.Dec())                  // 124
		require.Nil(t, a.Shr(2))                 // 31
		require.Nil(t, a.Xor(mpint.FromU32(1)))  // 30
		require.Nil(t, a.Or(mpint.FromU32(1)))   // 31
		require.Nil(t, a.And(mpint.FromU32(12))) // 12
		require.Nil(t, a.Div(mpint.FromU32(4)))  // 3
		require.Nil(t, a.Sub(mpint.FromU32(1)))  // 2

		v, _ := a.Value()
		assert.Equal(t, "2", v.String())

		lte, _ := a.Lte(mpint.FromU32(2))
		lt, _ := a.Lt(mpint.FromU32(2))
		gte, _ := a.Gte(mpint.FromU32(3))
		ne, _ := a.Ne(mpint.FromU32(3))
		assert.True(t, lte)
		assert.False(t, lt)
		assert.False(t, gte)
		assert.True(t, ne)
	})

	t.Run("Should drop bits shifted past 256", func(t *testing.T) {
		_, s := setup()
		a := NewScalarSlot(s, 6, word256.Zero, mpint.FromU32(3))
		require.Nil(t, a.Shl(255))

		v, err := a.Value()
		assert.Nil(t, err)
		assert.True(t, v.Eq(mpint.One.Lsh(255)))
	})
}

func Test_FlagSlot(t *testing.T) {
	t.Run("Should substitute the default when unset", func(t *testing.T) {
		_, s := setup()
		v, err := NewFlagSlot(s, 1, true).Value()
		assert.Nil(t, err)
		assert.True(t, v)
	})

	t.Run("Should store zero or one at subpointer zero", func(t *testing.T) {
		b, s := setup()
		f := NewFlagSlot(s, 1, true)
		require.Nil(t, f.Set(false))

		raw, _ := b.Get(1, word256.Zero, storage.Slot{31: 9})
		assert.True(t, raw.IsZero())

		v, _ := NewFlagSlot(s, 1, true).Value()
		assert.False(t, v)

		require.Nil(t, f.Set(true))
		raw, _ = b.Get(1, word256.Zero, storage.Slot{})
		assert.Equal(t, storage.Slot{31: 1}, raw)
	})

	t.Run("Should reload after another accessor writes the flag", func(t *testing.T) {
		_, s := setup()
		a := NewFlagSlot(s, 1, false)
		other := NewFlagSlot(s, 1, false)
		_, _ = a.Value()
		_, _ = other.Value()

		require.Nil(t, a.Set(true))
		v, _ := other.Value()
		assert.True(t, v)
	})
}

func Test_TextSlot(t *testing.T) {
	t.Run("Should round trip text of every boundary length", func(t *testing.T) {
		for _, n := range []int{1, 28, 29, 60, 2048} {
			_, s := setup()
			text := strings.Repeat("x", n-1) + "!"
			require.Nil(t, NewTextSlot(s, 3, word256.Zero, "").Set(text))

			s.Reset()
			v, err := NewTextSlot(s, 3, word256.Zero, "").Value()
			assert.Nil(t, err)
			assert.Equal(t, text, v, "length %d", n)
		}
	})

	t.Run("Should treat empty text as never written", func(t *testing.T) {
		b, s := setup()
		require.Nil(t, NewTextSlot(s, 3, word256.Zero, "").Set(""))
		assert.Equal(t, 0, b.Len())

		v, err := NewTextSlot(s, 3, word256.Zero, "fallback").Value()
		assert.Nil(t, err)
		assert.Equal(t, "fallback", v)
	})

	t.Run("Should reject text over the limit", func(t *testing.T) {
		_, s := setup()
		err := NewTextSlot(s, 3, word256.Zero, "").Set(strings.Repeat("y", 2049))
		assert.ErrorIs(t, err, storage.ErrValueTooLarge)
		assert.Contains(t, err.Error(), "value is too long")
	})

	t.Run("Should write the length into the top of the first slot", func(t *testing.T) {
		b, s := setup()
		require.Nil(t, NewTextSlot(s, 3, word256.Zero, "").Set("hello"))

		v, err := NewTextSlot(NewSession(b, zap.NewNop()), 3, word256.Zero, "").Value()
		assert.Nil(t, err)
		assert.Equal(t, "hello", v)

		header, _ := b.Get(3, word256.Zero, storage.Slot{})
		assert.Equal(t, uint32(5), binary.BigEndian.Uint32(header[:4]))
		assert.Equal(t, "hello", string(header[4:9]))
	})

	t.Run("Should span slots after the first 28 bytes", func(t *testing.T) {
		b, s := setup()
		text := strings.Repeat("a", 28) + strings.Repeat("b", 32) + "c"
		require.Nil(t, NewTextSlot(s, 3, word256.FromU64(100), "").Set(text))

		assert.Equal(t, 3, b.Len())
		second, _ := b.Get(3, word256.FromU64(101), storage.Slot{})
		assert.Equal(t, strings.Repeat("b", 32), string(second[:]))
		third, _ := b.Get(3, word256.FromU64(102), storage.Slot{})
		assert.Equal(t, byte('c'), third[0])
	})

	t.Run("Should reject a corrupt header", func(t *testing.T) {
		b, s := setup()
		var header storage.Slot
		binary.BigEndian.PutUint32(header[:4], 5000)
		require.Nil(t, b.Set(3, word256.Zero, header))

		_, err := NewTextSlot(s, 3, word256.Zero, "").Value()
		assert.ErrorIs(t, err, storage.ErrValueTooLarge)
	})

	t.Run("Should reload after another accessor rewrites the text", func(t *testing.T) {
		_, s := setup()
		a := NewTextSlot(s, 3, word256.Zero, "")
		other := NewTextSlot(s, 3, word256.Zero, "")
		require.Nil(t, a.Set("short"))
		v, _ := other.Value()
		assert.Equal(t, "short", v)

		long := strings.Repeat("y", 40)
		require.Nil(t, a.Set(long))
		v, _ = other.Value()
		assert.Equal(t, long, v)

		// a write to the second chunk alone is seen too
		require.Nil(t, s.Set(storage.NewSlotAddress(3, word256.One), storage.Slot{0: 'z'}))
		v, _ = a.Value()
		assert.Equal(t, strings.Repeat("y", 28)+"z"+strings.Repeat("\x00", 11), v)
	})
}

type fixedCodec struct {
	chunks int
	data   []byte
}

func (f *fixedCodec) ChunkCount() int          { return f.chunks }
func (f *fixedCodec) Encode() ([]byte, error)  { return f.data, nil }
func (f *fixedCodec) Decode(buf []byte) error { f.data = buf; return nil }

func Test_Codec(t *testing.T) {
	t.Run("Should split values into zero padded chunks", func(t *testing.T) {
		b, s := setup()
		addr := storage.NewSlotAddress(9, word256.FromU64(10))
		data := []byte(strings.Repeat("z", 40))
		require.Nil(t, Save(s, addr, &fixedCodec{chunks: 3, data: data}))
		assert.Equal(t, 3, b.Len())

		out := &fixedCodec{chunks: 3}
		require.Nil(t, Load(NewSession(b, zap.NewNop()), addr, out))
		assert.Len(t, out.data, 96)
		assert.Equal(t, data, out.data[:40])
		assert.Equal(t, make([]byte, 56), out.data[40:])
	})

	t.Run("Should refuse chunk counts over the ceiling", func(t *testing.T) {
		_, s := setup()
		addr := storage.NewSlotAddress(9, word256.Zero)
		assert.ErrorIs(t, Load(s, addr, &fixedCodec{chunks: MaxChunkCount + 1}), storage.ErrValueTooLarge)
		assert.ErrorIs(t, Save(s, addr, &fixedCodec{chunks: MaxChunkCount + 1}), storage.ErrValueTooLarge)
	})

	t.Run("Should refuse values longer than their chunk count", func(t *testing.T) {
		_, s := setup()
		err := Save(s, storage.NewSlotAddress(9, word256.Zero), &fixedCodec{chunks: 1, data: make([]byte, 33)})
		assert.ErrorIs(t, err, storage.ErrValueTooLarge)
	})

	t.Run("Should round trip a record of mixed fields", func(t *testing.T) {
		_, s := setup()
		addr := storage.NewSlotAddress(4, word256.Max)

		balance := word256.FromU64(1000)
		supply := mpint.MustFromString("123456789012345678901234567890", 10)
		frozen := true
		tag := storage.Slot{0: 0xab}
		require.Nil(t, Save(s, addr, NewRecord().Word(&balance).Int(&supply).Flag(&frozen).Raw(&tag)))

		var (
			outBalance word256.Word256
			outSupply  mpint.Int
			outFrozen  bool
			outTag     storage.Slot
		)
		s.Reset()
		require.Nil(t, Load(s, addr, NewRecord().Word(&outBalance).Int(&outSupply).Flag(&outFrozen).Raw(&outTag)))
		assert.True(t, outBalance.Eq(balance))
		assert.True(t, outSupply.Eq(supply))
		assert.True(t, outFrozen)
		assert.Equal(t, tag, outTag)
	})

	t.Run("Should refuse to encode a negative record field", func(t *testing.T) {
		_, s := setup()
		neg := mpint.NegOne
		err := Save(s, storage.NewSlotAddress(4, word256.Zero), NewRecord().Int(&neg))
		assert.ErrorIs(t, err, mpint.ErrNarrowing)
	})
}

func Test_KeyedSlotMap(t *testing.T) {
	t.Run("Should store values per key", func(t *testing.T) {
		_, s := setup()
		balances := NewKeyedSlotMap[AddressKey](s, 2, "balances", word256.Zero, nil)
		alice := AddressKeyFromHex("0x00000000000000000000000000000000000000a1")
		bob := AddressKeyFromHex("0x00000000000000000000000000000000000000b0")

		require.Nil(t, balances.Set(alice, word256.FromU64(50)))
		v, err := balances.Get(alice)
		assert.Nil(t, err)
		assert.Equal(t, uint64(50), v.Limbs()[0])

		v, err = balances.Get(bob)
		assert.Nil(t, err)
		assert.True(t, v.IsZero())

		has, _ := balances.Has(alice)
		assert.True(t, has)
		has, _ = balances.Has(bob)
		assert.False(t, has)
	})

	t.Run("Should share slots between the map and its scalar accessors", func(t *testing.T) {
		_, s := setup()
		balances := NewKeyedSlotMap[StringKey](s, 2, "balances", mpint.Zero, nil)
		require.Nil(t, balances.Slot("alice").Add(mpint.FromU32(7)))
		require.Nil(t, balances.Slot("alice").Add(mpint.FromU32(1)))

		v, _ := balances.Get("alice")
		assert.Equal(t, "8", v.String())
		assert.Equal(t, uint16(2), balances.Address("alice").Pointer)
	})

	t.Run("Should refresh a held accessor after a map write", func(t *testing.T) {
		_, s := setup()
		balances := NewKeyedSlotMap[StringKey](s, 2, "balances", mpint.Zero, nil)
		held := balances.Slot("alice")
		_, _ = held.Value()

		require.Nil(t, balances.Set("alice", mpint.FromU32(100)))
		v, err := held.Value()
		assert.Nil(t, err)
		assert.Equal(t, "100", v.String())

		require.Nil(t, held.Sub(mpint.FromU32(40)))
		v, _ = balances.Get("alice")
		assert.Equal(t, "60", v.String())
	})

	t.Run("Should separate maps by prefix and hasher", func(t *testing.T) {
		_, s := setup()
		a := NewKeyedSlotMap[StringKey](s, 1, "a", word256.Zero, nil)
		b := NewKeyedSlotMap[StringKey](s, 1, "b", word256.Zero, nil)
		c := NewKeyedSlotMap[StringKey](s, 1, "a", word256.Zero, SHA256Hasher)
		assert.NotEqual(t, a.Address("k"), b.Address("k"))
		assert.NotEqual(t, a.Address("k"), c.Address("k"))
		assert.Equal(t, a.Address("k"), NewKeyedSlotMap[StringKey](s, 1, "a", word256.One, nil).Address("k"))
	})

	t.Run("Should report deletion as not implemented", func(t *testing.T) {
		_, s := setup()
		m := NewKeyedSlotMap[StringKey](s, 1, "a", word256.Zero, nil)
		assert.ErrorIs(t, m.Delete("k"), storage.ErrNotImplemented)
		assert.ErrorIs(t, m.Clear(), storage.ErrNotImplemented)

		cm := NewCompoundKeyedSlotMap[StringKey, StringKey](s, 1, "a", word256.Zero, nil)
		assert.ErrorIs(t, cm.Delete("k", "j"), storage.ErrNotImplemented)
		assert.ErrorIs(t, cm.Clear(), storage.ErrNotImplemented)
	})

	t.Run("Should resolve hashers by name", func(t *testing.T) {
		h, err := HasherFromName("SHA256")
		assert.Nil(t, err)
		assert.Equal(t, SHA256Hasher([]byte("x")), h([]byte("x")))

		_, err = HasherFromName("md5")
		assert.NotNil(t, err)
	})

	t.Run("Should key words and addresses by canonical form", func(t *testing.T) {
		assert.Equal(t, "255", string(WordKey(word256.FromU64(255)).KeyBytes()))
		upper := AddressKeyFromHex("0x00000000000000000000000000000000000000AB")
		lower := AddressKeyFromHex("0x00000000000000000000000000000000000000ab")
		assert.Equal(t, upper.KeyBytes(), lower.KeyBytes())
	})
}

func Test_CompoundKeyedSlotMap(t *testing.T) {
	t.Run("Should keep owner and spender pairs apart", func(t *testing.T) {
		_, s := setup()
		allowances := NewCompoundKeyedSlotMap[StringKey, StringKey](s, 3, "allowances", word256.Zero, nil)

		require.Nil(t, allowances.Set("alice", "bob", word256.FromU64(10)))
		require.Nil(t, allowances.Set("bob", "alice", word256.FromU64(20)))

		v, _ := allowances.Get("alice", "bob")
		assert.Equal(t, uint64(10), v.Limbs()[0])
		v, _ = allowances.Inner("bob").Get("alice")
		assert.Equal(t, uint64(20), v.Limbs()[0])

		has, _ := allowances.Has("alice", "carol")
		assert.False(t, has)
	})

	t.Run("Should not collide when key boundaries move", func(t *testing.T) {
		_, s := setup()
		m := NewCompoundKeyedSlotMap[StringKey, StringKey](s, 3, "p", word256.Zero, nil)
		flat := NewKeyedSlotMap[StringKey](s, 3, "p", word256.Zero, nil)

		assert.NotEqual(t, m.Address("ab", "c"), m.Address("a", "bc"))
		assert.NotEqual(t, m.Address("", "abc"), flat.Address("abc"))
	})

	t.Run("Should map distinct pairs to distinct slots", func(t *testing.T) {
		_, s := setup()
		m := NewCompoundKeyedSlotMap[WordKey, WordKey](s, 3, "grid", word256.Zero, nil)

		seen := make(map[storage.SlotKey]struct{})
		for i := uint64(0); i < 64; i++ {
			for j := uint64(0); j < 64; j++ {
				k := m.Address(WordKey(word256.FromU64(i)), WordKey(word256.FromU64(j))).Key()
				_, dup := seen[k]
				require.False(t, dup, "pair %d,%d", i, j)
				seen[k] = struct{}{}
			}
		}
		assert.Len(t, seen, 64*64)
	})
}
