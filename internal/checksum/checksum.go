package checksum

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"scholarship-scraper/internal/scraper"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateProgramHash генерирует SHA256 хеш записи
// Формула: SHA256(source|link|title|university|deadline|type)
func (g *Generator) GenerateProgramHash(p *scraper.Program) string {
	content := strings.Join([]string{
		p.Source,
		p.Link,
		p.Title,
		p.University,
		p.Deadline,
		p.Type,
	}, "|")

	hash := sha256.Sum256([]byte(content))

	return fmt.Sprintf("%x", hash)
}
