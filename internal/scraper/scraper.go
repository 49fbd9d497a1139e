package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scholarship-scraper/internal/normalize"
)

type Scraper struct {
	rules *RuleSet
}

func NewScraper(rules *RuleSet) *Scraper {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Scraper{
		rules: rules,
	}
}

// ParseListing парсит страницу сайта и возвращает программы в порядке появления в документе
func (s *Scraper) ParseListing(html string, site string) ([]*Program, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var programs []*Program
	s.SelectElements(doc.Selection).Each(func(_ int, sel *goquery.Selection) {
		programs = append(programs, s.ExtractProgram(sel, site))
	})

	return programs, nil
}

// SelectElements находит все div/article (включая вложенные), у которых class совпал с шаблоном
func (s *Scraper) SelectElements(root *goquery.Selection) *goquery.Selection {
	return root.Find("div[class], article[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return classMatches(sel, s.rules)
	})
}

// ExtractProgram собирает запись из одного найденного элемента
func (s *Scraper) ExtractProgram(sel *goquery.Selection, site string) *Program {
	program := &Program{
		Type:   s.Classify(normalize.VisibleText(sel)),
		Year:   ExtractYear(sel),
		Link:   ExtractLink(sel, site),
		Source: site,
	}

	for _, rule := range s.rules.Fields {
		value := rule.Default
		if found := findByClass(sel, rule); found.Length() > 0 {
			value = normalize.SelectionText(found)
		}
		program.set(rule.Field, value)
	}

	return program
}

// Classify возвращает категорию первого ключевого слова из таблицы, найденного в тексте
func (s *Scraper) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range s.rules.Keywords {
		if strings.Contains(lower, kw.Keyword) {
			return kw.Category
		}
	}
	return DefaultCategory
}

// findByClass: первый потомок (не сам элемент), у которого class совпал с правилом
func findByClass(sel *goquery.Selection, rule FieldRule) *goquery.Selection {
	return sel.Find("[class]").FilterFunction(func(_ int, child *goquery.Selection) bool {
		class, _ := child.Attr("class")
		return rule.Pattern.MatchString(class)
	}).First()
}

func classMatches(sel *goquery.Selection, rules *RuleSet) bool {
	class, exists := sel.Attr("class")
	return exists && rules.Element.MatchString(class)
}

func (p *Program) set(field, value string) {
	switch field {
	case FieldTitle:
		p.Title = value
	case FieldUniversity:
		p.University = value
	case FieldCountry:
		p.Country = value
	case FieldDeadline:
		p.Deadline = value
	case FieldDescription:
		p.Description = value
	case FieldFunding:
		p.Funding = value
	case FieldRequirements:
		p.Requirements = value
	case FieldPostedDate:
		p.PostedDate = value
	}
}
