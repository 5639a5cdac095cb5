package browser

import (
	"fmt"
	"path/filepath"

	"github.com/playwright-community/playwright-go"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/page"
)

// pwProcess wraps one playwright driver + browser + context triple.
type pwProcess struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
}

// launchPlaywright starts the playwright driver and a browser process per the
// run configuration. The executable must already be installed ("vine init"
// documents `playwright install`); a missing executable surfaces here.
func launchPlaywright(cfg *config.Config) (Process, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	var bt playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		bt = pw.Firefox
	case config.BrowserWebKit:
		bt = pw.WebKit
	default:
		bt = pw.Chromium
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching %s: %w", cfg.Browser, err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	}
	if cfg.Video != config.VideoOff {
		ctxOpts.RecordVideo = &playwright.RecordVideo{
			Dir: filepath.Join("reports", "videos"),
		}
	}

	bctx, err := b.NewContext(ctxOpts)
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("creating browser context: %w", err)
	}

	return &pwProcess{pw: pw, browser: b, ctx: bctx}, nil
}

func (p *pwProcess) NewPage() (page.Driver, error) {
	return p.ctx.NewPage()
}

func (p *pwProcess) Close() error {
	var errs []error
	if err := p.ctx.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := p.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := p.pw.Stop(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing playwright: %v", errs)
	}
	return nil
}
