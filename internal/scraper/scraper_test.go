package scraper

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSite = "https://example.org/"

func mustSelection(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("body").Children().First()
}

func TestParseListingEndToEnd(t *testing.T) {
	html := `<html><body>
		<div class="scholarship-item">
			<span class="title">Physics Grant</span>
			<a href="/apply">Apply</a>
			<p>Applications close in 2026.</p>
		</div>
	</body></html>`

	programs, err := NewScraper(nil).ParseListing(html, testSite)
	require.NoError(t, err)
	require.Len(t, programs, 1)

	p := programs[0]
	assert.Equal(t, "Physics Grant", p.Title)
	assert.Equal(t, "https://example.org/apply", p.Link)
	assert.Equal(t, "2026", p.Year)
	assert.Equal(t, DefaultCategory, p.Type)
	assert.Equal(t, DefaultFunding, p.Funding)
	assert.Equal(t, DefaultRequirements, p.Requirements)
	assert.Equal(t, DefaultPostedDate, p.PostedDate)
	assert.Equal(t, testSite, p.Source)
	assert.Equal(t, "", p.University)
	assert.Equal(t, "", p.Country)
	assert.Equal(t, "", p.Deadline)
	assert.Equal(t, "", p.Description)
}

func TestProgramHasFixedKeys(t *testing.T) {
	html := `<html><body>
		<article class="job-card"><h2 class="heading">Intern</h2></article>
		<div class="grant"></div>
	</body></html>`

	programs, err := NewScraper(nil).ParseListing(html, testSite)
	require.NoError(t, err)
	require.Len(t, programs, 2)

	expectedKeys := []string{
		"title", "university", "country", "deadline", "type", "funding",
		"year", "link", "description", "requirements", "posted_date", "source",
	}

	for _, p := range programs {
		data, err := json.Marshal(p)
		require.NoError(t, err)

		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &record))
		assert.Len(t, record, len(expectedKeys))
		for _, key := range expectedKeys {
			value, ok := record[key]
			require.True(t, ok, "missing key %q", key)
			assert.IsType(t, "", value, "key %q must be a string", key)
		}
	}
}

func TestSelectElements(t *testing.T) {
	html := `<html><body>
		<div class="program-list">
			<article class="opportunity">first</article>
			<div class="Scholarship">case mismatch</div>
			<section class="grant">wrong tag</section>
			<div>no class</div>
			<div class="job-position">second</div>
		</div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	s := NewScraper(nil)
	selected := s.SelectElements(doc.Selection)

	var classes []string
	selected.Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		classes = append(classes, class)
	})

	// Вложенные элементы тоже попадают, порядок как в документе
	assert.Equal(t, []string{"program-list", "opportunity", "job-position"}, classes)
}

func TestExtractFields(t *testing.T) {
	sel := mustSelection(t, `<html><body>
		<div class="program-card">
			<h3 class="card-title">  Global
				Leaders   Fellowship </h3>
			<span class="institution-name">University of Oslo</span>
			<span class="location">Norway</span>
			<span class="deadline">1 March 2026</span>
			<div class="summary">Fully funded study.</div>
			<div class="funding-info">Full tuition</div>
			<ul class="eligibility"><li>Bachelor degree</li></ul>
			<span class="published">Jan 5</span>
		</div>
	</body></html>`)

	p := NewScraper(nil).ExtractProgram(sel, testSite)

	assert.Equal(t, "Global Leaders Fellowship", p.Title)
	assert.Equal(t, "University of Oslo", p.University)
	assert.Equal(t, "Norway", p.Country)
	assert.Equal(t, "1 March 2026", p.Deadline)
	assert.Equal(t, "Fully funded study.", p.Description)
	assert.Equal(t, "Full tuition", p.Funding)
	assert.Equal(t, "Bachelor degree", p.Requirements)
	assert.Equal(t, "Jan 5", p.PostedDate)
	assert.Equal(t, "fellowships", p.Type)
	assert.Equal(t, "2026", p.Year)
	assert.Equal(t, testSite, p.Link)
}

func TestPostedDateSharesDateClass(t *testing.T) {
	// "date" подходит и под deadline, и под posted_date, оба берут первый совпавший элемент
	sel := mustSelection(t, `<html><body>
		<div class="job"><span class="post-date">2025-01-10</span></div>
	</body></html>`)

	p := NewScraper(nil).ExtractProgram(sel, testSite)
	assert.Equal(t, "2025-01-10", p.Deadline)
	assert.Equal(t, "2025-01-10", p.PostedDate)
}

func TestFieldsIgnoreElementItself(t *testing.T) {
	// У самого элемента class содержит "scholarship", но funding ищется только среди потомков
	sel := mustSelection(t, `<html><body>
		<div class="scholarship"><p>text</p></div>
	</body></html>`)

	p := NewScraper(nil).ExtractProgram(sel, testSite)
	assert.Equal(t, DefaultFunding, p.Funding)
}

func TestScriptAndStyleTextIgnored(t *testing.T) {
	html := `<html><body>
		<div class="program-card">
			<script>var kind = "internship";</script>
			<style>.program-card .title::after { content: "fellowship" }</style>
			<h3 class="title">Water Research Award<script>track("award")</script></h3>
			<p class="summary">Open to graduates.<style>p { margin: 0 }</style></p>
		</div>
	</body></html>`

	programs, err := NewScraper(nil).ParseListing(html, testSite)
	require.NoError(t, err)
	require.Len(t, programs, 1)

	p := programs[0]
	assert.Equal(t, DefaultCategory, p.Type)
	assert.Equal(t, "Water Research Award", p.Title)
	assert.Equal(t, "Open to graduates.", p.Description)
}

func TestClassify(t *testing.T) {
	s := NewScraper(nil)

	tests := []struct {
		text     string
		expected string
	}{
		{"Fellowship opportunity for PhD students", "fellowships"},
		{"MBA and Master programs", "masters"},
		{"PhD position in Chemistry", "phd"},
		{"International Hackathon 2025", "hackathons"},
		{"Call for Papers: Conference on AI", "conferences"},
		{"United Nations Youth Forum", "youth_forums"},
		{"SDG Summer School", "sdgs"},
		{"Postdoctoral Researcher", "postdoc"},
		{"Generic opportunity", DefaultCategory},
		{"", DefaultCategory},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, s.Classify(tt.text), "Classify(%q)", tt.text)
	}
}

func TestYearFromText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Deadline: 2025-03-01", "2025"},
		{"Rolling admissions", DefaultYear},
		{"Est. 1999", DefaultYear},
		{"Posted 12 May 2024, closes 2025", "2024"},
		{"ID 120245", DefaultYear},
		{"(2025)", "2025"},
		{"2025", "2025"},
		{"é2025", DefaultYear},
		{"2025ж", DefaultYear},
		{"x_2025", DefaultYear},
		{"Срок: 2026 год", "2026"},
		{"2025x 2026", "2026"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, YearFromText(tt.input), "YearFromText(%q)", tt.input)
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "first four digit node wins",
			html:     `<div class="job"><span>Deadline: 2025-03-01</span><span>2027</span></div>`,
			expected: "2025",
		},
		{
			name:     "no digits",
			html:     `<div class="job"><span>Rolling admissions</span></div>`,
			expected: DefaultYear,
		},
		{
			name:     "digits without 20xx do not fall through to later nodes",
			html:     `<div class="job"><span>Est. 1999</span><span>2026</span></div>`,
			expected: DefaultYear,
		},
		{
			name:     "non ascii digits count as digits",
			html:     `<div class="job"><span>رقم ٢٠٢٥</span><span>2026</span></div>`,
			expected: DefaultYear,
		},
		{
			name:     "unrelated number is picked up",
			html:     `<div class="job"><span>Ref 2031</span><span class="deadline">2026</span></div>`,
			expected: "2031",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := mustSelection(t, "<html><body>"+tt.html+"</body></html>")
			assert.Equal(t, tt.expected, ExtractYear(sel))
		})
	}
}

func TestExtractLink(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "relative href",
			html:     `<div class="job"><a href="/apply/123">Apply</a></div>`,
			expected: "https://example.org/apply/123",
		},
		{
			name:     "absolute href",
			html:     `<div class="job"><a href="https://other.org/x">Apply</a></div>`,
			expected: "https://other.org/x",
		},
		{
			name:     "no anchor",
			html:     `<div class="job"><span>no link</span></div>`,
			expected: testSite,
		},
		{
			name:     "anchor without href is skipped",
			html:     `<div class="job"><a name="top">top</a><a href="/second">x</a></div>`,
			expected: "https://example.org/second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := mustSelection(t, "<html><body>"+tt.html+"</body></html>")
			assert.Equal(t, tt.expected, ExtractLink(sel, testSite))
		})
	}
}

func TestResolveLinkStripsAllTrailingSlashes(t *testing.T) {
	assert.Equal(t, "https://www.un.org/en/apply", ResolveLink("/apply", "https://www.un.org/en//"))
	assert.Equal(t, "http://plain.org", ResolveLink("http://plain.org", testSite))
}

func TestRulesFileCompile(t *testing.T) {
	emptyDefault := ""
	rf := &RulesFile{
		ElementPattern: `listing`,
		Fields: []FieldRuleSpec{
			{Field: FieldFunding, Pattern: `money`, Default: &emptyDefault},
			{Field: FieldTitle, Pattern: `name`},
		},
		Keywords: []Keyword{{Keyword: "phd", Category: "doctoral"}},
	}

	rules, err := rf.Compile()
	require.NoError(t, err)

	sel := mustSelection(t, `<html><body>
		<div class="listing"><b class="name">PhD in Maths</b><span class="title">ignored</span></div>
	</body></html>`)

	s := NewScraper(rules)
	p := s.ExtractProgram(sel, testSite)
	assert.Equal(t, "PhD in Maths", p.Title)
	assert.Equal(t, "", p.Funding)
	assert.Equal(t, DefaultRequirements, p.Requirements)
	assert.Equal(t, "doctoral", p.Type)
}

func TestRulesFileCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		rf   RulesFile
	}{
		{"bad element pattern", RulesFile{ElementPattern: `(`}},
		{"unknown field", RulesFile{Fields: []FieldRuleSpec{{Field: "salary", Pattern: "x"}}}},
		{"link is not class-matched", RulesFile{Fields: []FieldRuleSpec{{Field: "link", Pattern: "x"}}}},
		{"empty pattern", RulesFile{Fields: []FieldRuleSpec{{Field: FieldTitle}}}},
		{"bad field pattern", RulesFile{Fields: []FieldRuleSpec{{Field: FieldTitle, Pattern: `[`}}}},
		{"empty keyword", RulesFile{Keywords: []Keyword{{Keyword: "", Category: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rf.Compile()
			assert.Error(t, err)
		})
	}
}

func TestSiteUnavailableError(t *testing.T) {
	cause := errors.New("dial tcp: no such host")
	var err error = &SiteUnavailableError{Site: testSite, Err: cause}

	assert.ErrorIs(t, err, cause)

	var siteErr *SiteUnavailableError
	require.ErrorAs(t, err, &siteErr)
	assert.Equal(t, testSite, siteErr.Site)
	assert.Contains(t, err.Error(), "no such host")
}
