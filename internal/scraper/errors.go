package scraper

import "fmt"

// SiteUnavailableError единственный вид ошибки пайплайна. Сайт не удалось получить или разобрать.
// Такой сайт даёт ноль записей, обход продолжается.
type SiteUnavailableError struct {
	Site string
	Err  error
}

func (e *SiteUnavailableError) Error() string {
	return fmt.Sprintf("site unavailable: %s: %v", e.Site, e.Err)
}

func (e *SiteUnavailableError) Unwrap() error {
	return e.Err
}
