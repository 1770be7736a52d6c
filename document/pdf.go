package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Printer turns rendered HTML into a PDF.
type Printer interface {
	Print(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePrinter prints with headless Chrome on A4 paper.
type ChromePrinter struct {
	Timeout time.Duration
}

func NewChromePrinter() *ChromePrinter {
	return &ChromePrinter{Timeout: 60 * time.Second}
}

func (p *ChromePrinter) Print(ctx context.Context, html []byte) ([]byte, error) {
	// Chrome loads the page from a temp file
	tmp, err := os.CreateTemp("", "ra_bill_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	abs, err := filepath.Abs(tmp.Name())
	if err != nil {
		return nil, err
	}

	var pdf []byte
	err = chromedp.Run(cctx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.7).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdf, nil
}
