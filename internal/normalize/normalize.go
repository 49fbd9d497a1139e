package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Содержимое этих тегов в видимый текст не входит
var hiddenTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
}

// CleanText схлопывает любые пробельные последовательности (включая \n, \t и NBSP)
// в один пробел и обрезает края. Повторный вызов результат не меняет.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SelectionText: очищенный текст выборки goquery (пусто, если выборка пуста)
func SelectionText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return CleanText(VisibleText(sel))
}

// VisibleText склеивает текстовые узлы выборки, пропуская script, style и template.
// В отличие от Selection.Text() код скриптов и CSS в результат не попадает.
func VisibleText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeVisibleText(&b, node)
	}
	return b.String()
}

func writeVisibleText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if hiddenTags[n.DataAtom] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(b, c)
	}
}

// TruncatePreview обрезает текст до maxChars рун по последнему пробелу
func TruncatePreview(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	runes := []rune(text)
	// Оставляем место под многоточие
	truncated := string(runes[:maxChars-1])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > 0 {
		return truncated[:lastSpace] + "…"
	}

	return truncated + "…"
}
