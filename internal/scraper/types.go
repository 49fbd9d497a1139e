package scraper

import "regexp"

// Program: одна извлечённая программа/стипендия.
// Порядок полей задаёт порядок ключей в выходном JSON.
type Program struct {
	Title        string `json:"title"`
	University   string `json:"university"`
	Country      string `json:"country"`
	Deadline     string `json:"deadline"`
	Type         string `json:"type"`
	Funding      string `json:"funding"`
	Year         string `json:"year"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	PostedDate   string `json:"posted_date"`
	Source       string `json:"source"`
}

// Имена полей, которые ищутся по классу дочернего элемента
const (
	FieldTitle        = "title"
	FieldUniversity   = "university"
	FieldCountry      = "country"
	FieldDeadline     = "deadline"
	FieldDescription  = "description"
	FieldFunding      = "funding"
	FieldRequirements = "requirements"
	FieldPostedDate   = "posted_date"
)

// FieldRule: первый потомок, чей class совпал с Pattern, даёт значение поля; иначе Default
type FieldRule struct {
	Field   string
	Pattern *regexp.Regexp
	Default string
}

// Keyword: пара (ключевое слово, категория); порядок в таблице важен
type Keyword struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

type RuleSet struct {
	Element  *regexp.Regexp
	Fields   []FieldRule
	Keywords []Keyword
}

// RulesFile: YAML представление правил (см. config.LoadRules)
type RulesFile struct {
	ElementPattern string          `yaml:"element_pattern"`
	Fields         []FieldRuleSpec `yaml:"fields"`
	Keywords       []Keyword       `yaml:"keywords"`
}

type FieldRuleSpec struct {
	Field   string  `yaml:"field"`
	Pattern string  `yaml:"pattern"`
	Default *string `yaml:"default"`
}
