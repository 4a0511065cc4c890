package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"vitrine-catalogo/models"
)

// itemsPerPage is the card count per printed catalog sheet.
const itemsPerPage = 9

// ExportService renders the filtered catalog as a printable HTML sheet and
// snapshots it to PDF or PNG with headless Chrome. The browser navigates
// back to this server's /catalog/render endpoint, so baseURL must be
// reachable from the Chrome process.
type ExportService struct {
	presenter *PresenterService
	baseURL   string
}

// NewExportService creates a new ExportService.
func NewExportService(presenter *PresenterService, baseURL string) *ExportService {
	return &ExportService{
		presenter: presenter,
		baseURL:   baseURL,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// RenderHTML renders the catalog sheet for the given filter, paginated
// into blocks of nine cards.
func (s *ExportService) RenderHTML(term, category string) (string, error) {
	cards := s.presenter.Cards(term, category)
	pages := paginateCards(cards)

	templateData := struct {
		Mode  string
		Pages [][]models.Card
	}{
		Mode:  s.presenter.catalog.Mode(),
		Pages: pages,
	}

	templatePath := filepath.Join("templates", "catalog.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// paginateCards splits cards into pages of itemsPerPage each.
func paginateCards(cards []models.Card) [][]models.Card {
	var pages [][]models.Card
	for i := 0; i < len(cards); i += itemsPerPage {
		end := i + itemsPerPage
		if end > len(cards) {
			end = len(cards)
		}
		pages = append(pages, cards[i:end])
	}
	return pages
}

// renderURL builds the URL Chrome navigates to for a snapshot.
func (s *ExportService) renderURL(term, category string) string {
	q := url.Values{}
	if term != "" {
		q.Set("term", term)
	}
	if category != "" {
		q.Set("category", category)
	}
	u := s.baseURL + "/catalog/render"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// newChromeContext builds the chromedp allocator/context pair, honoring a
// detected Chrome binary when one exists.
func newChromeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)

	cancel := func() {
		chromedpCancel()
		allocCancel()
	}
	return chromedpCtx, cancel
}

// GeneratePDF snapshots the rendered catalog sheet to a PDF. Page breaks
// come from the CSS in the template.
func (s *ExportService) GeneratePDF(ctx context.Context, term, category string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	chromedpCtx, chromeCancel := newChromeContext(ctx)
	defer chromeCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(s.renderURL(term, category)),
		chromedp.WaitReady("body"),
		chromedp.Sleep(1500), // Wait for images to settle
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// GeneratePNG snapshots the rendered catalog sheet to a single full-page
// PNG.
func (s *ExportService) GeneratePNG(ctx context.Context, term, category string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	chromedpCtx, chromeCancel := newChromeContext(ctx)
	defer chromeCancel()

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(s.renderURL(term, category)),
		chromedp.WaitReady("body"),
		chromedp.Sleep(1500),
		chromedp.FullScreenshot(&buf, 90),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	return buf, nil
}
