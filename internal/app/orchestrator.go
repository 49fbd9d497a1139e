package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"scholarship-scraper/internal/config"
	"scholarship-scraper/internal/fetcher"
	"scholarship-scraper/internal/observability"
	"scholarship-scraper/internal/scraper"
)

// SiteFetcher получает страницу сайта
type SiteFetcher interface {
	Fetch(ctx context.Context, urlStr string) (*fetcher.FetchResponse, error)
}

type Orchestrator struct {
	cfg     *config.Config
	logger  *observability.Logger
	fetcher SiteFetcher
	scraper *scraper.Scraper
	pacer   *fetcher.Pacer
	console io.Writer
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f SiteFetcher,
	s *scraper.Scraper,
	p *fetcher.Pacer,
	console io.Writer,
) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		fetcher: f,
		scraper: s,
		pacer:   p,
		console: console,
	}
}

type RunStats struct {
	TotalSites   int
	SkippedSites int
	FailedSites  int
	ScrapedSites int
	Programs     int
	Duration     time.Duration
}

// Run обходит сайты строго по очереди и собирает записи в порядке сайтов, затем элементов.
// Ошибка сайта не прерывает обход.
func (o *Orchestrator) Run(ctx context.Context) ([]*scraper.Program, *RunStats) {
	started := time.Now()
	stats := &RunStats{TotalSites: len(o.cfg.Sites)}
	programs := make([]*scraper.Program, 0)

	o.logger.Info("Starting scrape",
		"sites", len(o.cfg.Sites),
		"pause", o.pacer.Delay().String(),
	)

	for _, site := range o.cfg.Sites {
		if o.cfg.IsSkipped(site) {
			stats.SkippedSites++
			o.logger.Info("Skipping site", "site", site)
			continue
		}

		sitePrograms, err := o.scrapeSite(ctx, site)
		if err != nil {
			stats.FailedSites++
			o.reportFailure(err)
		} else {
			stats.ScrapedSites++
			programs = append(programs, sitePrograms...)
			o.logger.Info("Site processed",
				"site", site,
				"programs", len(sitePrograms),
			)
		}

		// Пауза после каждого сайта, успешного или нет
		o.pacer.Pause()
	}

	stats.Programs = len(programs)
	stats.Duration = time.Since(started)

	o.logger.Info("Scrape completed",
		"total_sites", stats.TotalSites,
		"skipped", stats.SkippedSites,
		"failed", stats.FailedSites,
		"scraped", stats.ScrapedSites,
		"programs", stats.Programs,
		"duration", stats.Duration.String(),
	)

	return programs, stats
}

// scrapeSite задаёт границу ошибок одного сайта: любая ошибка становится SiteUnavailableError
func (o *Orchestrator) scrapeSite(ctx context.Context, site string) ([]*scraper.Program, error) {
	resp, err := o.fetcher.Fetch(ctx, site)
	if err != nil {
		return nil, &scraper.SiteUnavailableError{Site: site, Err: err}
	}

	o.logger.Debug("Site fetched",
		"site", site,
		"status", resp.StatusCode,
		"bytes", len(resp.Body),
	)

	programs, err := o.scraper.ParseListing(string(resp.Body), site)
	if err != nil {
		return nil, &scraper.SiteUnavailableError{Site: site, Err: err}
	}

	return programs, nil
}

func (o *Orchestrator) reportFailure(err error) {
	var siteErr *scraper.SiteUnavailableError
	if !errors.As(err, &siteErr) {
		o.logger.Error("Unexpected error", "error", err.Error())
		return
	}

	o.logger.Error("Site unavailable",
		"site", siteErr.Site,
		"error", siteErr.Err.Error(),
	)
	if _, werr := fmt.Fprintf(o.console, "Error scraping %s: %v\n", siteErr.Site, siteErr.Err); werr != nil {
		o.logger.Warn("Failed to write to console", "error", werr.Error())
	}
}
