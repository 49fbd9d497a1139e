package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// \d и \b в RE2 только ASCII, поэтому цифры и границы слова заданы через Unicode-классы:
// "é2025" и "٢٠٢٥" считаются так же, как в Unicode-регулярках.
var (
	fourDigitsRe = regexp.MustCompile(`\p{Nd}{4}`)
	yearRe       = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(20\p{Nd}{2})(?:[^\p{L}\p{N}_]|$)`)
)

// ExtractYear ищет первый текстовый узел с четырьмя цифрами подряд и берёт из него год 20xx.
// Узел может не относиться к дате (цена, ID) и это известное поведение.
func ExtractYear(sel *goquery.Selection) string {
	for _, node := range sel.Nodes {
		if text, ok := firstTextMatching(node, fourDigitsRe); ok {
			return YearFromText(text)
		}
	}
	return DefaultYear
}

// YearFromText возвращает первый год вида 20xx или "Ongoing"
func YearFromText(text string) string {
	if match := yearRe.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return DefaultYear
}

// firstTextMatching обходит потомков в порядке документа.
// Комментарии тоже считаются строками документа.
func firstTextMatching(n *html.Node, re *regexp.Regexp) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if (c.Type == html.TextNode || c.Type == html.CommentNode) && re.MatchString(c.Data) {
			return c.Data, true
		}
		if text, ok := firstTextMatching(c, re); ok {
			return text, true
		}
	}
	return "", false
}

// ExtractLink: href первой ссылки; относительный путь приклеивается к сайту без завершающего "/".
// Без ссылки возвращается сам сайт.
func ExtractLink(sel *goquery.Selection, site string) string {
	href, exists := sel.Find("a[href]").First().Attr("href")
	if !exists {
		return site
	}
	return ResolveLink(href, site)
}

func ResolveLink(href, site string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(site, "/") + href
}
