package config

// DefaultLogPath: JSON-логи уходят в файл, консоль остаётся за строками ошибок и итогом
const DefaultLogPath = "logs/scraper.log"

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultSites: список площадок со стипендиями и программами
var DefaultSites = []string{
	"https://opportunitiescorners.com/",
	"https://scholarshipscorner.website/",
	"https://www.youthop.com/",
	"https://opportunitiesforyouth.org/",
	"https://greatyop.com/",
	"https://www.un.org/en/",
	"https://www.levels.fyi/",
	"https://www.indeed.com/",
	"https://www.unesco.org/",
	"https://www.scholarshipportal.com/",
	"https://www.findaphd.com/",
	"https://www.educations.com/",
	"https://www.scholars4dev.com/",
	"https://www.opportunitiesforafricans.com/",
	"https://www.mladiinfo.eu/",
	"https://www.afterschoolafrica.com/",
	"https://www.european-funding-guide.eu/",
}

// DefaultSkipDomains требуют авторизации, их не трогаем
var DefaultSkipDomains = []string{"linkedin.com", "google.com"}

// Default возвращает конфигурацию, с которой скрапер работает без YAML файла
func Default() *Config {
	return &Config{
		Sites:       append([]string(nil), DefaultSites...),
		SkipDomains: append([]string(nil), DefaultSkipDomains...),
		HTTP: HttpConfig{
			UserAgent:              DefaultUserAgent,
			TotalTimeoutMS:         30000,
			AcceptLanguage:         "en-US,en;q=0.9",
			MaxIdleConnections:     10,
			IdleConnectionTimeoutS: 90,
		},
		Pause: PauseConfig{
			DelayMS: 3000,
		},
		Robots: RobotsConfig{
			Respect:       false,
			CacheTTLHours: 12,
		},
		Output: OutputConfig{
			Dir:    ".",
			Prefix: "programs",
		},
		Storage: StorageConfig{
			Driver:           "mssql",
			CommandTimeoutMS: 5000,
		},
		Observability: ObservabilityConfig{
			LogPath:  DefaultLogPath,
			LogLevel: "info",
		},
	}
}
