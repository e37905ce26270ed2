package _202510150900_slotsTable

import (
	"database/sql"

	"gorm.io/gorm"
)

type Migration struct {
}

func (m *Migration) Up(db *sql.DB, grm *gorm.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			pointer integer not null,
			sub_pointer varchar(64) not null,
			value varchar(64) not null,
			created_at timestamp with time zone DEFAULT current_timestamp,
			updated_at timestamp with time zone DEFAULT null,
			primary key (pointer, sub_pointer)
		)`,
	}
	for _, query := range queries {
		if res := grm.Exec(query); res.Error != nil {
			return res.Error
		}
	}
	return nil
}

func (m *Migration) GetName() string {
	return "202510150900_slotsTable"
}
