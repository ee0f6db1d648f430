// Package pipeline runs one complete icon font build.
//
// A run moves through the states CollectingInputs, AssemblingFont,
// TranscodingFont, EmittingStylesheet and Done. Any failure ends the run
// in Failed; nothing is retried and every run rebuilds the whole font.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/iconfont/internal/collector"
	"github.com/conneroisu/iconfont/internal/config"
	"github.com/conneroisu/iconfont/internal/errors"
	"github.com/conneroisu/iconfont/internal/fingerprint"
	"github.com/conneroisu/iconfont/internal/glyph"
	"github.com/conneroisu/iconfont/internal/logging"
	"github.com/conneroisu/iconfont/internal/manifest"
	"github.com/conneroisu/iconfont/internal/stylesheet"
	"github.com/conneroisu/iconfont/internal/svgfont"
	"github.com/conneroisu/iconfont/internal/transcode"
)

// State is a step of a run.
type State int

const (
	StateCollectingInputs State = iota
	StateAssemblingFont
	StateTranscodingFont
	StateEmittingStylesheet
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCollectingInputs:
		return "collecting_inputs"
	case StateAssemblingFont:
		return "assembling_font"
	case StateTranscodingFont:
		return "transcoding_font"
	case StateEmittingStylesheet:
		return "emitting_stylesheet"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) (bool, error)

// Options configure a run.
type Options struct {
	Config *config.Config
	// Confirm is asked before existing output is overwritten. A nil
	// Confirm declines.
	Confirm ConfirmFunc
	Logger  logging.Logger
	// OnState, if set, is called on every state change.
	OnState func(State)
}

// Result describes a successful run.
type Result struct {
	Glyphs      []glyph.Glyph
	Fingerprint fingerprint.Digest
	// Files lists the written files in write order.
	Files    []string
	Duration time.Duration
}

type run struct {
	opts   Options
	cfg    *config.Config
	logger logging.Logger
	result *Result
}

// Run builds the font described by opts.Config.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := &run{
		opts:   opts,
		cfg:    cfg,
		logger: logger.WithComponent("pipeline").With("font", cfg.Font.Name),
		result: &Result{},
	}

	start := time.Now()
	if err := r.execute(ctx); err != nil {
		r.enter(StateFailed)
		return nil, err
	}
	r.result.Duration = time.Since(start)
	r.enter(StateDone)

	r.logger.Info(ctx, "Icon font generated",
		"glyphs", len(r.result.Glyphs),
		"fingerprint", string(r.result.Fingerprint),
		"duration_ms", r.result.Duration.Milliseconds(),
	)
	return r.result, nil
}

func (r *run) enter(s State) {
	r.logger.Debug(context.Background(), "Pipeline state", "state", s.String())
	if r.opts.OnState != nil {
		r.opts.OnState(s)
	}
}

func (r *run) execute(ctx context.Context) error {
	r.enter(StateCollectingInputs)
	icons, err := r.collect(ctx)
	if err != nil {
		return err
	}

	glyphs, err := glyph.Assign(icons, glyph.CollisionPolicy(r.cfg.Font.Collisions))
	if err != nil {
		return err
	}
	r.result.Glyphs = glyphs

	if err := r.confirmOverwrite(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.cfg.Output.Dir, 0o755); err != nil {
		return errors.NewIOError(errors.ErrCodeWriteOutput, "failed to create output directory", err).
			WithFile(r.cfg.Output.Dir)
	}

	r.enter(StateAssemblingFont)
	perf := logging.StartOperation(r.logger, "assemble")
	assembler := &svgfont.Assembler{
		FontName: r.cfg.Font.Name,
		EmHeight: r.cfg.Font.EmHeight,
		Descent:  r.cfg.Font.Descent,
		Logger:   r.logger.WithComponent("assembler"),
	}
	doc, err := assembler.Assemble(ctx, glyphs)
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}
	perf.End(ctx, "bytes", len(doc))

	r.enter(StateTranscodingFont)
	perf = logging.StartOperation(r.logger, "transcode")
	fonts, err := transcode.Transcode(doc)
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}
	perf.End(ctx, "otf_bytes", len(fonts.OpenType.Data), "woff2_bytes", len(fonts.WOFF2.Data))
	if err := r.write(r.cfg.FontFile(), fonts.WOFF2.Data); err != nil {
		return err
	}

	r.enter(StateEmittingStylesheet)
	css, err := stylesheet.Render(stylesheet.Options{
		FontFamily: r.cfg.Font.Name,
		FontFile:   r.cfg.FontFile(),
		Format:     fonts.WOFF2.Format,
		Prefix:     r.cfg.Font.Prefix,
	}, glyphs)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeWriteOutput, "failed to render stylesheet", err)
	}
	if err := r.write(r.cfg.StylesheetFile(), []byte(css)); err != nil {
		return err
	}

	if r.cfg.Output.OTF {
		if err := r.write(r.cfg.OTFFile(), fonts.OpenType.Data); err != nil {
			return err
		}
	}
	if r.cfg.Output.Manifest {
		if err := r.writeManifest(); err != nil {
			return err
		}
	}

	return nil
}

func (r *run) collect(ctx context.Context) ([]*collector.SourceIcon, error) {
	paths, err := collector.Collect(r.cfg.Input.Dir)
	if err != nil {
		return nil, err
	}
	icons, err := collector.Read(paths)
	if err != nil {
		return nil, err
	}

	r.result.Fingerprint = fingerprint.Compute(icons)
	r.logger.Info(ctx, "Collected icons",
		"input", r.cfg.Input.Dir,
		"count", len(icons),
		"fingerprint", string(r.result.Fingerprint),
	)
	return icons, nil
}

// confirmOverwrite asks before replacing an existing font or stylesheet.
func (r *run) confirmOverwrite() error {
	if r.cfg.Output.Force {
		return nil
	}

	var existing []string
	for _, name := range []string{r.cfg.FontFile(), r.cfg.StylesheetFile()} {
		path := filepath.Join(r.cfg.Output.Dir, name)
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if r.opts.Confirm == nil {
		return errors.NewUserAbortedError("output exists and overwriting was not confirmed").
			WithFile(existing[0])
	}

	prompt := fmt.Sprintf("%s already exists. Overwrite?", existing[0])
	if len(existing) > 1 {
		prompt = fmt.Sprintf("%s and %d more file(s) already exist. Overwrite?", existing[0], len(existing)-1)
	}
	ok, err := r.opts.Confirm(prompt)
	if err != nil {
		aborted := errors.NewUserAbortedError("confirmation failed")
		aborted.Cause = err
		return aborted
	}
	if !ok {
		return errors.NewUserAbortedError("overwrite declined").WithFile(existing[0])
	}
	return nil
}

func (r *run) write(name string, data []byte) error {
	path := filepath.Join(r.cfg.Output.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIOError(errors.ErrCodeWriteOutput, "failed to write output", err).WithFile(path)
	}
	r.result.Files = append(r.result.Files, path)
	r.logger.Debug(context.Background(), "Wrote file", "path", path, "bytes", len(data))
	return nil
}

func (r *run) writeManifest() error {
	m := manifest.New(r.cfg.Font.Name, r.cfg.Font.Prefix, r.cfg.FontFile(), r.cfg.StylesheetFile(),
		r.result.Fingerprint, r.result.Glyphs)

	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		return errors.NewIOError(errors.ErrCodeWriteOutput, "failed to encode manifest", err)
	}
	return r.write(r.cfg.ManifestFile(), buf.Bytes())
}
