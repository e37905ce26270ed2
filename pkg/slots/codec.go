package slots

import (
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/pkg/errors"
)

const (
	SlotSize = 32
	// MaxChunkCount is the largest number of slots a single value may span.
	MaxChunkCount = 1<<26 - 5
)

// Codec is a value that can be laid out over consecutive slots.
type Codec interface {
	ChunkCount() int
	Encode() ([]byte, error)
	Decode(buf []byte) error
}

func checkChunkCount(n int) error {
	if n < 0 || n > MaxChunkCount {
		return errors.Wrapf(storage.ErrValueTooLarge, "%d chunks", n)
	}
	return nil
}

// Save writes c to ChunkCount consecutive slots starting at addr. The final
// chunk is zero padded and any unused trailing slots are zeroed.
func Save(s *Session, addr storage.SlotAddress, c Codec) error {
	count := c.ChunkCount()
	if err := checkChunkCount(count); err != nil {
		return err
	}
	buf, err := c.Encode()
	if err != nil {
		return err
	}
	if len(buf) > count*SlotSize {
		return errors.Wrapf(storage.ErrValueTooLarge, "%d bytes do not fit in %d chunks", len(buf), count)
	}

	for i := 0; i < count; i++ {
		var chunk storage.Slot
		if start := i * SlotSize; start < len(buf) {
			copy(chunk[:], buf[start:min(start+SlotSize, len(buf))])
		}
		if err := s.Set(addr.Offset(uint64(i)), chunk); err != nil {
			return err
		}
	}
	return nil
}

// Load reads ChunkCount consecutive slots starting at addr and decodes them
// into c. Unset slots read as zero.
func Load(s *Session, addr storage.SlotAddress, c Codec) error {
	count := c.ChunkCount()
	if err := checkChunkCount(count); err != nil {
		return err
	}
	buf := make([]byte, 0, count*SlotSize)
	for i := 0; i < count; i++ {
		chunk, err := s.Get(addr.Offset(uint64(i)), storage.Slot{})
		if err != nil {
			return err
		}
		buf = append(buf, chunk[:]...)
	}
	return c.Decode(buf)
}
