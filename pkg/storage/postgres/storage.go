package postgres

import (
	"encoding/hex"

	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresBackend keeps one row per slot in the slots table. Offsets and
// values are stored as fixed width lowercase hex so that text ordering equals
// numeric ordering.
type PostgresBackend struct {
	Db     *gorm.DB
	Logger *zap.Logger
}

func NewPostgresBackend(db *gorm.DB, l *zap.Logger) *PostgresBackend {
	return &PostgresBackend{
		Db:     db,
		Logger: l,
	}
}

func encodeWord(w word256.Word256) string {
	b, _ := w.Bytes32()
	return hex.EncodeToString(b[:])
}

func decodeSlot(s string) (storage.Slot, error) {
	var out storage.Slot
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, errors.Wrapf(err, "failed to decode slot value '%s'", s)
	}
	if len(b) != len(out) {
		return out, errors.Errorf("slot value has %d bytes", len(b))
	}
	copy(out[:], b)
	return out, nil
}

func (s *PostgresBackend) Get(pointer uint16, offset word256.Word256, def storage.Slot) (storage.Slot, error) {
	var row storage.StoredSlot
	res := s.Db.Model(&storage.StoredSlot{}).
		Where("pointer = ? and sub_pointer = ?", pointer, encodeWord(offset)).
		Limit(1).
		Find(&row)
	if res.Error != nil {
		s.Logger.Sugar().Errorw("Failed to read slot",
			zap.Uint16("pointer", pointer),
			zap.String("offset", offset.Hex()),
			zap.Error(res.Error),
		)
		return def, errors.Wrap(res.Error, "failed to read slot")
	}
	if res.RowsAffected == 0 {
		return def, nil
	}
	return decodeSlot(row.Value)
}

func (s *PostgresBackend) Set(pointer uint16, offset word256.Word256, value storage.Slot) error {
	row := &storage.StoredSlot{
		Pointer:    pointer,
		SubPointer: encodeWord(offset),
		Value:      hex.EncodeToString(value[:]),
	}
	res := s.Db.Model(&storage.StoredSlot{}).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pointer"}, {Name: "sub_pointer"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row)
	if res.Error != nil {
		s.Logger.Sugar().Errorw("Failed to write slot",
			zap.Uint16("pointer", pointer),
			zap.String("offset", offset.Hex()),
			zap.Error(res.Error),
		)
		return errors.Wrap(res.Error, "failed to write slot")
	}
	return nil
}

func (s *PostgresBackend) Has(pointer uint16, offset word256.Word256) (bool, error) {
	var count int64
	res := s.Db.Model(&storage.StoredSlot{}).
		Where("pointer = ? and sub_pointer = ?", pointer, encodeWord(offset)).
		Count(&count)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to check slot")
	}
	return count > 0, nil
}

// Iterate visits slots ordered by pointer then subpointer.
func (s *PostgresBackend) Iterate(fn func(addr storage.SlotAddress, value storage.Slot) error) error {
	rows, err := s.Db.Model(&storage.StoredSlot{}).Order("pointer asc, sub_pointer asc").Rows()
	if err != nil {
		return errors.Wrap(err, "failed to list slots")
	}
	defer rows.Close()

	for rows.Next() {
		var row storage.StoredSlot
		if err := s.Db.ScanRows(rows, &row); err != nil {
			return errors.Wrap(err, "failed to scan slot")
		}
		sub, err := decodeSlot(row.SubPointer)
		if err != nil {
			return err
		}
		value, err := decodeSlot(row.Value)
		if err != nil {
			return err
		}
		if err := fn(storage.NewSlotAddress(row.Pointer, word256.FromBytes32(sub)), value); err != nil {
			return err
		}
	}
	return rows.Err()
}
