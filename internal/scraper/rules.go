package scraper

import (
	"fmt"
	"regexp"
)

const (
	DefaultFunding      = "Contact institution for funding details"
	DefaultRequirements = "See program website for detailed requirements"
	DefaultPostedDate   = "Not specified"
	DefaultYear         = "Ongoing"
	DefaultCategory     = "miscellaneous"
)

const defaultElementPattern = `program|scholarship|opportunity|job|position|grant`

var defaultFieldPatterns = []struct {
	field, pattern, def string
}{
	{FieldTitle, `title|heading`, ""},
	{FieldUniversity, `university|institution|organization|company`, ""},
	{FieldCountry, `country|location`, ""},
	{FieldDeadline, `deadline|date|apply-by`, ""},
	{FieldDescription, `description|content|summary`, ""},
	{FieldFunding, `funding|scholarship|award`, DefaultFunding},
	{FieldRequirements, `requirements|eligibility`, DefaultRequirements},
	{FieldPostedDate, `posted|published|date`, DefaultPostedDate},
}

// DefaultKeywords проверяются строго по порядку, побеждает первое совпадение
var DefaultKeywords = []Keyword{
	{"competition", "competitions"},
	{"conference", "conferences"},
	{"papers", "papers_conferences"},
	{"code camp", "code_camp"},
	{"hackathon", "hackathons"},
	{"exchange", "exchange_programs"},
	{"entrepreneur", "entrepreneurial"},
	{"internship", "internships"},
	{"fellowship", "fellowships"},
	{"course", "online_courses"},
	{"leadership", "leadership"},
	{"sdg", "sdgs"},
	{"summer program", "summer_programs"},
	{"summer school", "summer_schools"},
	{"training", "training"},
	{"youth forum", "youth_forums"},
	{"united nations", "united_nations"},
	{"workshop", "workshops"},
	{"government", "gov_scholarships"},
	{"high school", "highschool"},
	{"master", "masters"},
	{"mba", "mba"},
	{"phd", "phd"},
	{"postdoc", "postdoc"},
	{"undergraduate", "undergraduate"},
}

// DefaultRules возвращает встроенную таблицу правил
func DefaultRules() *RuleSet {
	rules := &RuleSet{
		Element:  regexp.MustCompile(defaultElementPattern),
		Keywords: append([]Keyword(nil), DefaultKeywords...),
	}
	for _, f := range defaultFieldPatterns {
		rules.Fields = append(rules.Fields, FieldRule{
			Field:   f.field,
			Pattern: regexp.MustCompile(f.pattern),
			Default: f.def,
		})
	}
	return rules
}

// Compile накладывает правила из файла на встроенные:
// поля заменяются по имени, таблица ключевых слов целиком.
func (rf *RulesFile) Compile() (*RuleSet, error) {
	rules := DefaultRules()

	if rf.ElementPattern != "" {
		re, err := regexp.Compile(rf.ElementPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid element_pattern: %w", err)
		}
		rules.Element = re
	}

	for _, spec := range rf.Fields {
		idx := rules.fieldIndex(spec.Field)
		if idx < 0 {
			return nil, fmt.Errorf("unknown field: %q", spec.Field)
		}
		if spec.Pattern == "" {
			return nil, fmt.Errorf("field %q: pattern is required", spec.Field)
		}
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid pattern: %w", spec.Field, err)
		}
		rules.Fields[idx].Pattern = re
		if spec.Default != nil {
			rules.Fields[idx].Default = *spec.Default
		}
	}

	if len(rf.Keywords) > 0 {
		for i, kw := range rf.Keywords {
			if kw.Keyword == "" || kw.Category == "" {
				return nil, fmt.Errorf("keywords[%d]: keyword and category are required", i)
			}
		}
		rules.Keywords = append([]Keyword(nil), rf.Keywords...)
	}

	return rules, nil
}

func (r *RuleSet) fieldIndex(field string) int {
	for i, f := range r.Fields {
		if f.Field == field {
			return i
		}
	}
	return -1
}
