package printing

import (
	"context"
	"time"

	demographyapp "github.com/laiyolobaru/backend/internal/application/demography"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"go.uber.org/zap"
)

const (
	monografisTemplate = "monografis.html"
	monografisMarginMM = 15
)

const monografisFooter = `<div style="font-size:8pt;width:100%;text-align:center;color:#6b7280;">` +
	`Halaman <span class="pageNumber"></span> dari <span class="totalPages"></span></div>`

type monografisView struct {
	demography.Monografis
	PrintedAt time.Time
}

// MonografisPrinter renders the monograph to an A4 PDF
type MonografisPrinter struct {
	engine   *TemplateEngine
	renderer Renderer
	timeout  time.Duration
	logger   *zap.Logger
}

// NewMonografisPrinter creates a printer on top of the given renderer
func NewMonografisPrinter(engine *TemplateEngine, renderer Renderer, timeout time.Duration, logger *zap.Logger) *MonografisPrinter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonografisPrinter{
		engine:   engine,
		renderer: renderer,
		timeout:  timeout,
		logger:   logger,
	}
}

// RenderHTML returns the HTML document that is printed
func (p *MonografisPrinter) RenderHTML(m demography.Monografis) (string, error) {
	return p.engine.Render(monografisTemplate, monografisView{Monografis: m, PrintedAt: time.Now()})
}

// PrintMonografis renders m to PDF bytes
func (p *MonografisPrinter) PrintMonografis(ctx context.Context, m demography.Monografis) ([]byte, error) {
	html, err := p.RenderHTML(m)
	if err != nil {
		return nil, err
	}

	title := "Monografi Desa"
	if m.Profile != nil {
		title += " " + m.Profile.VillageName
	}

	doc, err := p.renderer.Render(ctx, Page{
		HTML:     html,
		Title:    title,
		MarginMM: monografisMarginMM,
		Footer:   monografisFooter,
		Timeout:  p.timeout,
	})
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Monografis printed", zap.Int("pages", doc.Pages), zap.Duration("duration", doc.Took))
	return doc.PDF, nil
}

// DisabledPrinter is used when PDF rendering is switched off
type DisabledPrinter struct{}

// PrintMonografis always fails with ErrRenderingDisabled
func (DisabledPrinter) PrintMonografis(context.Context, demography.Monografis) ([]byte, error) {
	return nil, ErrRenderingDisabled
}

var (
	_ demographyapp.Printer = (*MonografisPrinter)(nil)
	_ demographyapp.Printer = DisabledPrinter{}
)
