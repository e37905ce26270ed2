package slots

import (
	"encoding/binary"

	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
)

const (
	MaxTextLength = 2048

	textHeaderSize = 4
)

// TextSlot stores up to MaxTextLength bytes. The first slot holds the byte
// length big-endian in its top four bytes followed by the first 28 bytes of
// text; the rest follows in full slots.
type TextSlot struct {
	session *Session
	addr    storage.SlotAddress
	def     string
	value   string
	state   hydration
}

func NewTextSlot(s *Session, pointer uint16, subPointer word256.Word256, def string) *TextSlot {
	return &TextSlot{
		session: s,
		addr:    storage.NewSlotAddress(pointer, subPointer),
		def:     def,
	}
}

func (t *TextSlot) Address() storage.SlotAddress {
	return t.addr
}

func (t *TextSlot) Value() (string, error) {
	if t.state.stale(t.session) {
		v, span, err := t.load()
		if err != nil {
			return "", err
		}
		t.value = v
		t.state.mark(t.session, t.addr, span)
	}
	return t.value, nil
}

// Set stores v. An empty string writes nothing and so reads back as whatever
// was stored before.
func (t *TextSlot) Set(v string) error {
	if len(v) > MaxTextLength {
		return errors.Wrapf(storage.ErrValueTooLarge, "text of %d bytes", len(v))
	}
	if len(v) == 0 {
		return nil
	}
	c := &textCodec{length: len(v), value: v}
	if err := Save(t.session, t.addr, c); err != nil {
		return err
	}
	t.value = v
	t.state.mark(t.session, t.addr, c.ChunkCount())
	return nil
}

// load returns the stored text and the number of slots it spans.
func (t *TextSlot) load() (string, int, error) {
	header, err := t.session.Get(t.addr, storage.Slot{})
	if err != nil {
		return "", 0, err
	}
	if header.IsZero() {
		return t.def, 1, nil
	}

	length := int(binary.BigEndian.Uint32(header[:textHeaderSize]))
	if length > MaxTextLength {
		return "", 0, errors.Wrapf(storage.ErrValueTooLarge, "stored text claims %d bytes", length)
	}
	c := &textCodec{length: length}
	if err := Load(t.session, t.addr, c); err != nil {
		return "", 0, err
	}
	return c.value, c.ChunkCount(), nil
}

// textCodec lays a string out as a length header followed by its bytes.
type textCodec struct {
	length int
	value  string
}

func (c *textCodec) ChunkCount() int {
	return (textHeaderSize + c.length + SlotSize - 1) / SlotSize
}

func (c *textCodec) Encode() ([]byte, error) {
	buf := make([]byte, textHeaderSize+len(c.value))
	binary.BigEndian.PutUint32(buf[:textHeaderSize], uint32(len(c.value)))
	copy(buf[textHeaderSize:], c.value)
	return buf, nil
}

func (c *textCodec) Decode(buf []byte) error {
	if len(buf) < textHeaderSize {
		return errors.New("text header is truncated")
	}
	length := int(binary.BigEndian.Uint32(buf[:textHeaderSize]))
	if length != c.length || textHeaderSize+length > len(buf) {
		return errors.Errorf("text header claims %d bytes, expected %d", length, c.length)
	}
	c.value = string(buf[textHeaderSize : textHeaderSize+length])
	return nil
}
