package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"scholarship-scraper/internal/checksum"
	"scholarship-scraper/internal/observability"
	"scholarship-scraper/internal/output"
	"scholarship-scraper/internal/scraper"
	"scholarship-scraper/internal/storage"
)

// Publisher сохраняет результат запуска: JSON-файл всегда и БД, если настроена
type Publisher struct {
	writer   *output.Writer
	repo     storage.Repository
	checksum *checksum.Generator
	logger   *observability.Logger
	console  io.Writer
}

// NewPublisher: repo может быть nil, тогда только файл
func NewPublisher(w *output.Writer, repo storage.Repository, logger *observability.Logger, console io.Writer) *Publisher {
	return &Publisher{
		writer:   w,
		repo:     repo,
		checksum: checksum.NewGenerator(),
		logger:   logger,
		console:  console,
	}
}

// Publish пишет файл и печатает итоговую строку; возвращает путь к файлу
func (p *Publisher) Publish(ctx context.Context, programs []*scraper.Program, now time.Time) (string, error) {
	path, err := p.writer.Write(programs, now)
	if err != nil {
		return "", err
	}

	p.logger.Info("Programs saved", "file", path, "programs", len(programs))
	if _, err := fmt.Fprintf(p.console, "Scraped %d programs and saved to %s\n", len(programs), path); err != nil {
		p.logger.Warn("Failed to write to console", "error", err.Error())
	}

	if p.repo == nil {
		return path, nil
	}

	inserted, err := p.repo.InsertPrograms(ctx, p.toRows(programs, now))
	if err != nil {
		p.logger.Error("Failed to store programs", "error", err.Error())
		return path, fmt.Errorf("failed to store programs: %w", err)
	}
	p.logger.Info("Programs stored", "rows", inserted)

	return path, nil
}

func (p *Publisher) toRows(programs []*scraper.Program, now time.Time) []*storage.ProgramRow {
	rows := make([]*storage.ProgramRow, 0, len(programs))
	for i, program := range programs {
		rows = append(rows, &storage.ProgramRow{
			Title:        program.Title,
			University:   program.University,
			Country:      program.Country,
			Deadline:     program.Deadline,
			Type:         program.Type,
			Funding:      program.Funding,
			Year:         program.Year,
			Link:         program.Link,
			Description:  program.Description,
			Requirements: program.Requirements,
			PostedDate:   program.PostedDate,
			Source:       program.Source,
			SequenceNum:  i,
			CheckSum:     p.checksum.GenerateProgramHash(program),
			ScrapedAt:    now.UTC(),
		})
	}
	return rows
}
