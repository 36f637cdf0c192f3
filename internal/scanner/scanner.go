// File: internal/scanner/scanner.go
package scanner

import (
	"context"
	"fmt"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/config"
)

// Scanner walks every navigable frame of a loaded page and produces the
// ordered, deduplicated FieldDescriptor sequence the rest of the engine
// consumes.
type Scanner struct {
	cfg    config.ScannerConfig
	logger *zap.Logger
}

// New creates a scanner. Zero or negative caps fall back to the defaults.
func New(cfg config.ScannerConfig, logger *zap.Logger) *Scanner {
	if cfg.MaxFields <= 0 {
		cfg.MaxFields = 300
	}
	if cfg.MaxPerFrame <= 0 {
		cfg.MaxPerFrame = 80
	}
	if cfg.FrameConcurrency <= 0 {
		cfg.FrameConcurrency = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{cfg: cfg, logger: logger.Named("scanner")}
}

// Scan discovers fillable controls across all frames of the page. Frames are
// evaluated concurrently (they share no mutable state) and results are merged
// preserving frame order. A frame that fails to evaluate is logged and
// skipped; it never aborts the scan. If every per-frame scan comes back empty
// on a multi-frame page, the main frame is scanned once more on its own.
func (s *Scanner) Scan(ctx context.Context, page schemas.Page) ([]schemas.FieldDescriptor, error) {
	frames, err := page.Frames(ctx)
	if err != nil || len(frames) == 0 {
		if err != nil {
			s.logger.Warn("Frame enumeration failed; scanning main frame only.", zap.Error(err))
		}
		// Empty frame id targets the main document.
		frames = []schemas.FrameInfo{{Main: true}}
	}

	results := make([][]schemas.FieldDescriptor, len(frames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.FrameConcurrency)

	for i, frame := range frames {
		g.Go(func() error {
			fields, err := s.scanFrame(gctx, page, frame)
			if err != nil {
				// Per-frame failure is recoverable: cross-origin frames and
				// mid-scan navigations are everyday events on ATS pages.
				s.logger.Warn("Frame scan failed; skipping frame.",
					zap.String("frame_url", frame.URL),
					zap.String("frame_name", frame.Name),
					zap.Error(err))
				return nil
			}
			results[i] = fields
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := s.merge(results)

	if len(merged) == 0 && len(frames) > 1 {
		s.logger.Debug("All frame scans empty; retrying main frame only.")
		fields, err := s.scanFrame(ctx, page, mainFrame(frames))
		if err != nil {
			return []schemas.FieldDescriptor{}, nil
		}
		merged = s.merge([][]schemas.FieldDescriptor{fields})
	}

	s.logger.Info("Field scan complete.",
		zap.Int("frames", len(frames)),
		zap.Int("fields", len(merged)))
	return merged, nil
}

// scanFrame runs the extraction script inside one frame and builds the
// descriptors for its surviving controls.
func (s *Scanner) scanFrame(ctx context.Context, page schemas.Page, frame schemas.FrameInfo) ([]schemas.FieldDescriptor, error) {
	script := fmt.Sprintf(fieldScanScript, s.cfg.MaxPerFrame)
	raw, err := page.EvaluateInFrame(ctx, frame.ID, script)
	if err != nil {
		return nil, fmt.Errorf("frame evaluation failed: %w", err)
	}

	var controls []rawControl
	if err := json.Unmarshal(raw, &controls); err != nil {
		return nil, fmt.Errorf("failed to decode scan payload: %w", err)
	}

	fields := make([]schemas.FieldDescriptor, 0, len(controls))
	for i, ctrl := range controls {
		fields = append(fields, buildDescriptor(ctrl, frame, i))
	}
	return fields, nil
}

// merge flattens per-frame results preserving frame order, deduplicates on
// field id across frames (multi-step forms often repeat identical controls in
// nested frames), and applies the total cap.
func (s *Scanner) merge(results [][]schemas.FieldDescriptor) []schemas.FieldDescriptor {
	merged := make([]schemas.FieldDescriptor, 0, s.cfg.MaxFields)
	seen := make(map[string]bool)
	for _, frameFields := range results {
		for _, f := range frameFields {
			if len(merged) >= s.cfg.MaxFields {
				s.logger.Warn("Field cap reached; truncating scan results.",
					zap.Int("max_fields", s.cfg.MaxFields))
				return merged
			}
			if seen[f.FieldID] {
				continue
			}
			seen[f.FieldID] = true
			merged = append(merged, f)
		}
	}
	return merged
}

func mainFrame(frames []schemas.FrameInfo) schemas.FrameInfo {
	for _, f := range frames {
		if f.Main {
			return f
		}
	}
	return frames[0]
}
