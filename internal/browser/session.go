// File: internal/browser/session.go
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/config"
)

// Session is one browser tab. It implements schemas.Page.
type Session struct {
	id      string
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     config.BrowserConfig
	logger  *zap.Logger
	onClose func()
}

// ID returns the session's registry key.
func (s *Session) ID() string { return s.id }

// run executes chromedp actions on the session's target while honoring the
// caller's cancellation. Actions must run on the session context to reach the
// right tab, so the caller's ctx is relayed into a derived context instead.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Navigate loads the URL, waits for the document to become ready, and then
// idles for the configured post-load window so client-side form renderers
// (Workday, Greenhouse, Lever all hydrate after load) have settled.
func (s *Session) Navigate(ctx context.Context, url string) error {
	timeout := s.cfg.NavigationTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}

	if wait := s.cfg.PostLoadWait; wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.logger.Debug("Navigation complete.", zap.String("url", url))
	return nil
}

// Frames enumerates the page's frame tree, main frame first.
func (s *Session) Frames(ctx context.Context) ([]schemas.FrameInfo, error) {
	var frames []schemas.FrameInfo
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := cdppage.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		frames = flattenFrameTree(tree, true)
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate frames: %w", err)
	}
	return frames, nil
}

func flattenFrameTree(tree *cdppage.FrameTree, main bool) []schemas.FrameInfo {
	if tree == nil || tree.Frame == nil {
		return nil
	}
	frames := []schemas.FrameInfo{{
		ID:   tree.Frame.ID.String(),
		URL:  tree.Frame.URL,
		Name: tree.Frame.Name,
		Main: main,
	}}
	for _, child := range tree.ChildFrames {
		frames = append(frames, flattenFrameTree(child, false)...)
	}
	return frames
}

// EvaluateInFrame runs the script inside the frame's own execution context.
// An empty frame id targets the main document. Subframes are evaluated
// through an isolated world so page scripts cannot tamper with the result.
func (s *Session) EvaluateInFrame(ctx context.Context, frameID string, script string) (json.RawMessage, error) {
	var result json.RawMessage
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		eval := runtime.Evaluate(script).WithReturnByValue(true)

		if frameID != "" {
			worldID, err := cdppage.CreateIsolatedWorld(cdp.FrameID(frameID)).
				WithWorldName("autopilot_scan").
				Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to create isolated world: %w", err)
			}
			eval = eval.WithContextID(worldID)
		}

		remote, exception, err := eval.Do(ctx)
		if err != nil {
			return err
		}
		if exception != nil {
			return fmt.Errorf("script threw: %s", exception.Error())
		}
		if remote != nil {
			result = json.RawMessage(remote.Value)
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// jsSetValue writes through the native value setter so framework-controlled
// inputs (React, Vue) observe the change, then dispatches the events their
// state handlers listen for.
const jsSetValue = `(() => {
	const el = document.querySelector(%q);
	if (!el) return "not found";
	const value = %q;
	if (el.isContentEditable) {
		el.textContent = value;
	} else {
		const proto = el.tagName === "TEXTAREA" ? HTMLTextAreaElement.prototype : HTMLInputElement.prototype;
		const desc = Object.getOwnPropertyDescriptor(proto, "value");
		if (desc && desc.set) {
			desc.set.call(el, value);
		} else {
			el.value = value;
		}
	}
	el.dispatchEvent(new Event("input", { bubbles: true }));
	el.dispatchEvent(new Event("change", { bubbles: true }));
	return "ok";
})()`

// Fill sets a text-like control's value.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	return s.runStatusScript(ctx, selector, fmt.Sprintf(jsSetValue, selector, value))
}

const jsSelectByLabel = `(() => {
	const el = document.querySelector(%q);
	if (!el) return "not found";
	if (el.tagName !== "SELECT") return "not a select";
	const want = %q.trim().toLowerCase();
	for (const opt of el.options) {
		if (opt.label.trim().toLowerCase() === want || opt.value.trim().toLowerCase() === want) {
			el.value = opt.value;
			el.dispatchEvent(new Event("input", { bubbles: true }));
			el.dispatchEvent(new Event("change", { bubbles: true }));
			return "ok";
		}
	}
	return "option not found";
})()`

// SelectByLabel chooses a select option whose visible label (or value)
// matches, case-insensitively.
func (s *Session) SelectByLabel(ctx context.Context, selector, label string) error {
	return s.runStatusScript(ctx, selector, fmt.Sprintf(jsSelectByLabel, selector, label))
}

const jsSetChecked = `(() => {
	const el = document.querySelector(%q);
	if (!el) return "not found";
	if (el.checked !== %t) {
		el.click();
	}
	return el.checked === %t ? "ok" : "state unchanged";
})()`

// SetChecked toggles a checkbox or radio via a real click so associated
// handlers fire.
func (s *Session) SetChecked(ctx context.Context, selector string, checked bool) error {
	return s.runStatusScript(ctx, selector, fmt.Sprintf(jsSetChecked, selector, checked, checked))
}

// Click clicks the first visible element matching the selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("click %q failed: %w", selector, err)
	}
	return nil
}

// Screenshot captures the viewport into the configured directory and returns
// the written path.
func (s *Session) Screenshot(ctx context.Context, name string) (string, error) {
	var buf []byte
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		shot, err := cdppage.CaptureScreenshot().Do(ctx)
		if err != nil {
			return err
		}
		buf = shot
		return nil
	}))
	if err != nil {
		return "", fmt.Errorf("screenshot failed: %w", err)
	}

	dir := s.cfg.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}

// Close tears down the tab and removes it from the manager's registry.
func (s *Session) Close() {
	s.cancel()
	if s.onClose != nil {
		s.onClose()
	}
	s.logger.Debug("Browser session closed.")
}

// runStatusScript evaluates a script that reports "ok" on success and a short
// failure reason otherwise.
func (s *Session) runStatusScript(ctx context.Context, selector, script string) error {
	var status string
	if err := s.run(ctx, chromedp.Evaluate(script, &status)); err != nil {
		return fmt.Errorf("script against %q failed: %w", selector, err)
	}
	if status != "ok" {
		return fmt.Errorf("%s: %q", status, selector)
	}
	return nil
}
