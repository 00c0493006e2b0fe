package printing

import (
	"context"
	"time"

	demographyapp "github.com/laiyolobaru/backend/internal/application/demography"
)

// ErrRenderingDisabled is returned by the disabled printer
var ErrRenderingDisabled = demographyapp.ErrPDFRenderingDisabled

// A4 paper in millimetres
const (
	a4WidthMM  = 210.0
	a4HeightMM = 297.0

	// Chrome needs room below the body for the footer template
	minFooterMarginMM = 10.0
)

// Page is one HTML document printed on A4
type Page struct {
	// HTML is a full document or a body fragment
	HTML      string
	Title     string
	Landscape bool
	// MarginMM applies to every side
	MarginMM float64
	// Footer is a Chrome footer template printed on every page. It may use
	// the pageNumber and totalPages classes.
	Footer string
	// Timeout overrides the renderer default when positive
	Timeout time.Duration
}

// Document is a printed PDF
type Document struct {
	PDF   []byte
	Pages int
	Took  time.Duration
}

// Renderer prints pages to PDF
type Renderer interface {
	Render(ctx context.Context, p Page) (*Document, error)
	Close() error
}

// Kind classifies printing failures
type Kind string

const (
	KindEmpty    Kind = "empty_page"
	KindTemplate Kind = "template"
	KindTimeout  Kind = "timeout"
	KindBrowser  Kind = "browser"
)

// Error is returned by the template engine and the renderers
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := "printing: " + e.Op
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err,
// &Error{Kind: KindTimeout}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Op == "" && t.Err == nil && t.Kind == e.Kind
}
