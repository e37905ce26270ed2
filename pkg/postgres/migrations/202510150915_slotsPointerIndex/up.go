package _202510150915_slotsPointerIndex

import (
	"database/sql"

	"gorm.io/gorm"
)

type Migration struct {
}

// Up adds a pointer-only index so whole namespaces can be scanned in order.
func (m *Migration) Up(db *sql.DB, grm *gorm.DB) error {
	query := `CREATE INDEX IF NOT EXISTS idx_slots_pointer ON slots (pointer)`
	if res := grm.Exec(query); res.Error != nil {
		return res.Error
	}
	return nil
}

func (m *Migration) GetName() string {
	return "202510150915_slotsPointerIndex"
}
