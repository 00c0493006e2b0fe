package printing

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultChromeTimeout = 30 * time.Second

var errEmptyPage = errors.New("page has no HTML")

var documentShell = template.Must(template.New("document").Parse(
	`<!DOCTYPE html><html lang="id"><head><meta charset="UTF-8">` +
		`{{with .Title}}<title>{{.}}</title>{{end}}</head><body>{{.Body}}</body></html>`))

// ChromeOptions selects the browser used for printing
type ChromeOptions struct {
	// RemoteURL is the DevTools websocket of a running Chrome. Empty launches
	// a local headless browser.
	RemoteURL string
	// NoSandbox is needed when Chrome runs as root inside a container
	NoSandbox bool
	Timeout   time.Duration
}

// Chrome prints pages with headless Chrome over the DevTools protocol. Every
// render opens its own tab; the browser starts with the first one.
type Chrome struct {
	timeout time.Duration
	logger  *zap.Logger
	alloc   context.Context
	cancel  context.CancelFunc
}

// NewChrome prepares the browser allocator
func NewChrome(opts ChromeOptions, logger *zap.Logger) *Chrome {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Chrome{
		timeout: cmp.Or(opts.Timeout, defaultChromeTimeout),
		logger:  logger,
	}
	if opts.RemoteURL != "" {
		c.alloc, c.cancel = chromedp.NewRemoteAllocator(context.Background(), opts.RemoteURL)
	} else {
		c.alloc, c.cancel = chromedp.NewExecAllocator(context.Background(), allocatorOptions(opts.NoSandbox)...)
	}
	return c
}

func allocatorOptions(noSandbox bool) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for _, flag := range []string{
		"disable-gpu", "disable-extensions", "disable-dev-shm-usage",
		"disable-background-networking", "disable-sync", "no-first-run",
	} {
		opts = append(opts, chromedp.Flag(flag, true))
	}
	opts = append(opts, chromedp.Flag("font-render-hinting", "none"))
	if noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// Render prints p. Deadlines from ctx and p.Timeout close the tab.
func (c *Chrome) Render(ctx context.Context, p Page) (*Document, error) {
	if strings.TrimSpace(p.HTML) == "" {
		return nil, &Error{Kind: KindEmpty, Op: "render", Err: errEmptyPage}
	}
	doc, err := document(p)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, cmp.Or(p.Timeout, c.timeout))
	defer cancel()

	tab, closeTab := chromedp.NewContext(c.alloc, chromedp.WithLogf(c.logger.Sugar().Debugf))
	defer closeTab()
	// tabs derive from the allocator, not from ctx
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	var pdf []byte
	err = chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		setContent(doc),
		printTo(&pdf, printParams(p)),
	)
	switch {
	case ctx.Err() != nil:
		return nil, &Error{Kind: KindTimeout, Op: "render", Err: ctx.Err()}
	case err != nil:
		c.logger.Error("Chrome failed to print page", zap.String("title", p.Title), zap.Error(err))
		return nil, &Error{Kind: KindBrowser, Op: "render", Err: err}
	case len(pdf) == 0:
		return nil, &Error{Kind: KindBrowser, Op: "render", Err: errors.New("chrome returned an empty PDF")}
	}

	out := &Document{PDF: pdf, Pages: countPages(pdf), Took: time.Since(start)}
	c.logger.Info("PDF rendered",
		zap.String("title", p.Title),
		zap.Int("bytes", len(pdf)),
		zap.Int("pages", out.Pages),
		zap.Duration("duration", out.Took))
	return out, nil
}

// Close stops the browser
func (c *Chrome) Close() error {
	c.cancel()
	return nil
}

func setContent(doc string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
	}
}

func printTo(out *[]byte, params *page.PrintToPDFParams) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		data, _, err := params.Do(ctx)
		*out = data
		return err
	}
}

// printParams converts p to Chrome's print settings, which are in inches
func printParams(p Page) *page.PrintToPDFParams {
	margin := mmToInches(p.MarginMM)
	bottom := margin
	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(mmToInches(a4WidthMM)).
		WithPaperHeight(mmToInches(a4HeightMM)).
		WithMarginTop(margin).
		WithMarginRight(margin).
		WithMarginLeft(margin).
		WithLandscape(p.Landscape)
	if p.Footer != "" {
		bottom = max(bottom, mmToInches(minFooterMarginMM))
		params = params.
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(p.Footer)
	}
	return params.WithMarginBottom(bottom)
}

// document returns p.HTML as a complete HTML document
func document(p Page) (string, error) {
	head := strings.ToLower(p.HTML[:min(len(p.HTML), 512)])
	if strings.Contains(head, "<!doctype") || strings.Contains(head, "<html") {
		return p.HTML, nil
	}
	var buf strings.Builder
	err := documentShell.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{p.Title, template.HTML(p.HTML)})
	if err != nil {
		return "", &Error{Kind: KindTemplate, Op: "document shell", Err: err}
	}
	return buf.String(), nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// countPages counts page objects in the PDF. "/Type /Page" also matches
// "/Type /Pages".
func countPages(pdf []byte) int {
	n := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	return max(n, 1)
}

var _ Renderer = (*Chrome)(nil)
