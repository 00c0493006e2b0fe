// Package printing renders the village monograph to PDF.
//
// The monograph is rendered to HTML with html/template and printed to A4 by
// headless Chrome over the DevTools protocol:
//
//	chrome := NewChrome(ChromeOptions{NoSandbox: true}, logger)
//	defer chrome.Close()
//	printer := NewMonografisPrinter(NewTemplateEngine(), chrome, 30*time.Second, logger)
//	pdf, err := printer.PrintMonografis(ctx, monografis)
package printing
