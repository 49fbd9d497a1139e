package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"scholarship-scraper/internal/normalize"
	"scholarship-scraper/internal/observability"
	"scholarship-scraper/internal/storage"
)

// Лимиты колонок TblPrograms
const (
	maxShortChars = 500
	maxLongChars  = 4000
)

const insertQuery = `
	INSERT INTO TblPrograms
		([SequenceNum], [ScrapedAt], [Title], [University], [Country], [Deadline], [Type], [Funding],
		 [Year], [Link], [Description], [Requirements], [PostedDate], [Source], [CheckSum])
	VALUES
		(@SequenceNum, @ScrapedAt, @Title, @University, @Country, @Deadline, @Type, @Funding,
		 @Year, @Link, @Description, @Requirements, @PostedDate, @Source, @CheckSum);
`

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(dsn string, commandTimeout time.Duration, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Тестируем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger,
	}, nil
}

// InsertPrograms вставляет все записи в одной транзакции
func (r *Repository) InsertPrograms(ctx context.Context, rows []*storage.ProgramRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.Error("Failed to rollback transaction", "error", err.Error())
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	inserted := 0
	for _, row := range rows {
		if err := r.insertOne(ctx, stmt, row); err != nil {
			return 0, fmt.Errorf("failed to insert program %d: %w", row.SequenceNum, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

func (r *Repository) insertOne(ctx context.Context, stmt *sql.Stmt, row *storage.ProgramRow) error {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	_, err := stmt.ExecContext(ctx, namedArgs(row)...)
	return err
}

func namedArgs(row *storage.ProgramRow) []interface{} {
	return []interface{}{
		sql.Named("SequenceNum", row.SequenceNum),
		sql.Named("ScrapedAt", row.ScrapedAt),
		sql.Named("Title", normalize.TruncatePreview(row.Title, maxShortChars)),
		sql.Named("University", normalize.TruncatePreview(row.University, maxShortChars)),
		sql.Named("Country", normalize.TruncatePreview(row.Country, maxShortChars)),
		sql.Named("Deadline", normalize.TruncatePreview(row.Deadline, maxShortChars)),
		sql.Named("Type", row.Type),
		sql.Named("Funding", normalize.TruncatePreview(row.Funding, maxLongChars)),
		sql.Named("Year", row.Year),
		sql.Named("Link", normalize.TruncatePreview(row.Link, maxLongChars)),
		sql.Named("Description", normalize.TruncatePreview(row.Description, maxLongChars)),
		sql.Named("Requirements", normalize.TruncatePreview(row.Requirements, maxLongChars)),
		sql.Named("PostedDate", normalize.TruncatePreview(row.PostedDate, maxShortChars)),
		sql.Named("Source", row.Source),
		sql.Named("CheckSum", row.CheckSum),
	}
}

// Close закрывает соединение с БД
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
