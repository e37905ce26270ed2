package slots

import (
	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
)

type recordField struct {
	encode func() ([32]byte, error)
	decode func([32]byte)
}

// Record is a Codec over a fixed list of one-slot fields, bound to the
// variables they are read from and written to. Fields occupy consecutive
// slots in the order they were added.
//
//	var balance word256.Word256
//	var frozen bool
//	r := NewRecord().Word(&balance).Flag(&frozen)
type Record struct {
	fields []recordField
}

func NewRecord() *Record {
	return &Record{}
}

func (r *Record) Word(w *word256.Word256) *Record {
	r.fields = append(r.fields, recordField{
		encode: func() ([32]byte, error) { return w.Bytes32() },
		decode: func(b [32]byte) { *w = word256.FromBytes32(b) },
	})
	return r
}

func (r *Record) Int(x *mpint.Int) *Record {
	r.fields = append(r.fields, recordField{
		encode: func() ([32]byte, error) { return x.Bytes32() },
		decode: func(b [32]byte) { *x = mpint.FromBytes32(b) },
	})
	return r
}

func (r *Record) Flag(f *bool) *Record {
	r.fields = append(r.fields, recordField{
		encode: func() ([32]byte, error) { return flagSlot(*f), nil },
		decode: func(b [32]byte) { *f = storage.Slot(b) != storage.Slot{} },
	})
	return r
}

func (r *Record) Raw(s *storage.Slot) *Record {
	r.fields = append(r.fields, recordField{
		encode: func() ([32]byte, error) { return *s, nil },
		decode: func(b [32]byte) { *s = b },
	})
	return r
}

func (r *Record) ChunkCount() int {
	return len(r.fields)
}

func (r *Record) Encode() ([]byte, error) {
	buf := make([]byte, 0, len(r.fields)*SlotSize)
	for i, f := range r.fields {
		b, err := f.encode()
		if err != nil {
			return nil, errors.Wrapf(err, "record field %d", i)
		}
		buf = append(buf, b[:]...)
	}
	return buf, nil
}

func (r *Record) Decode(buf []byte) error {
	if len(buf) != len(r.fields)*SlotSize {
		return errors.Errorf("record expects %d bytes, got %d", len(r.fields)*SlotSize, len(buf))
	}
	for i, f := range r.fields {
		var b [32]byte
		copy(b[:], buf[i*SlotSize:])
		f.decode(b)
	}
	return nil
}
