package storage

import (
	"context"
	"time"
)

// ProgramRow: запись программы для сохранения в БД
type ProgramRow struct {
	Title        string
	University   string
	Country      string
	Deadline     string
	Type         string
	Funding      string
	Year         string
	Link         string
	Description  string
	Requirements string
	PostedDate   string
	Source       string
	SequenceNum  int       // порядковый номер в выгрузке
	CheckSum     string    // SHA256 записи
	ScrapedAt    time.Time // время запуска
}

// Repository: приёмник записей. Только вставка: без дедупликации и обновлений.
type Repository interface {
	// InsertPrograms сохраняет все записи одного запуска, возвращает число вставленных строк
	InsertPrograms(ctx context.Context, rows []*ProgramRow) (int, error)

	Close() error
}
