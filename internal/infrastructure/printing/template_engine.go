package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"maps"
	"time"

	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// TemplateEngine renders the embedded HTML documents with Indonesian
// number and date formatting.
type TemplateEngine struct {
	funcMap   template.FuncMap
	templates *template.Template
	location  *time.Location
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithLocation sets the time zone used by date helpers (default WITA, Asia/Makassar)
func WithLocation(loc *time.Location) TemplateEngineOption {
	return func(e *TemplateEngine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// NewTemplateEngine parses the embedded templates. It panics if they do not parse,
// which can only happen when the binary was built with broken templates.
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{location: defaultLocation()}
	for _, opt := range opts {
		opt(e)
	}

	p := message.NewPrinter(language.Indonesian)
	e.funcMap = template.FuncMap{
		"formatInt": func(v int) string { return p.Sprintf("%d", v) },
		"formatDecimal": func(d decimal.Decimal, places int) string {
			return p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(places)))
		},
		"formatPercent": func(part, whole int) string {
			if whole == 0 {
				return "0%"
			}
			return p.Sprintf("%.1f%%", float64(part)*100/float64(whole))
		},
		"formatDate":  e.formatDate,
		"dusunLabel":  func(d shared.Dusun) string { return d.Label() },
		"orDash":      orDash,
		"currentYear": func() int { return time.Now().In(e.location).Year() },
	}

	e.templates = template.Must(template.New("").Funcs(e.funcMap).ParseFS(templateFS, "templates/*.html"))
	return e
}

// Render executes the named template
func (e *TemplateEngine) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", &Error{Kind: KindTemplate, Op: "template " + name, Err: err}
	}
	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// formatDate renders t as "2 Januari 2006" in the engine's location
func (e *TemplateEngine) formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	t = t.In(e.location)
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Makassar")
	if err != nil {
		return time.FixedZone("WITA", 8*60*60)
	}
	return loc
}
