// Package pdf renders a page of the running site to a paginated PDF using
// headless Chrome.
package pdf

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	apperrors "github.com/stonefield/sitegate/internal/errors"
)

// Renderer turns a URL into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, pageURL string) ([]byte, error)
}

// navigationTimeout caps a whole render, navigation included.
const navigationTimeout = 30 * time.Second

// ChromeRenderer launches an isolated headless Chrome instance per call and
// tears it down on every exit path, success or not.
type ChromeRenderer struct {
	timeout time.Duration
}

var _ Renderer = (*ChromeRenderer)(nil)

func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{timeout: navigationTimeout}
}

// Render prints pageURL to a Letter-size PDF with 0.75in margins on all
// sides, background graphics included and no header/footer chrome. It waits
// for the document and its fonts to finish loading before printing.
func (r *ChromeRenderer) Render(ctx context.Context, pageURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			buf, _, printErr = page.PrintToPDF().
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0.75).
				WithMarginBottom(0.75).
				WithMarginLeft(0.75).
				WithMarginRight(0.75).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		log.Err(err).Str("url", pageURL).Msg("pdf render failed")
		return nil, apperrors.Wrapf(apperrors.ErrRenderFailed, "chromedp run: %v", err)
	}
	return buf, nil
}
