package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scholarship-scraper/internal/scraper"
)

const timestampLayout = "20060102_150405"

type Writer struct {
	dir    string
	prefix string
}

func NewWriter(dir, prefix string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir, prefix: prefix}
}

// FileName строит имя вида programs_20260301_142500.json (локальное время)
func (w *Writer) FileName(now time.Time) string {
	return fmt.Sprintf("%s_%s.json", w.prefix, now.Local().Format(timestampLayout))
}

// Write сохраняет весь список записей: JSON-массив, отступ 2 пробела, UTF-8 без экранирования.
// Возвращает путь к файлу.
func (w *Writer) Write(programs []*scraper.Program, now time.Time) (string, error) {
	if programs == nil {
		programs = []*scraper.Program{}
	}

	path := filepath.Join(w.dir, w.FileName(now))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(programs); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to encode programs: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}

	return path, nil
}
