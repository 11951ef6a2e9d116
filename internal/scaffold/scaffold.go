// Package scaffold generates the boilerplate files for a new check and
// splices its entry into the module's build manifest and registration
// source.
package scaffold

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/checkgen/internal/history"
	"github.com/mesh-intelligence/checkgen/internal/paths"
	"github.com/mesh-intelligence/checkgen/internal/textpatch"
	"github.com/mesh-intelligence/checkgen/pkg/types"
)

// Scaffolder runs the end-to-end scaffold for one check. Log and History
// are optional; a nil Log is replaced by a no-op logger and a nil History
// skips recording.
type Scaffolder struct {
	Layout  paths.Layout
	Log     *zap.Logger
	History *history.Log
}

// Result reports what one Run did. Written lists the artifact paths in
// commit order; it is empty when AlreadyExists is true.
type Result struct {
	AlreadyExists bool
	Written       []string
}

// New builds a Scaffolder from a Config. The config is validated here so
// every caller goes through the same check before touching artifacts. Log
// and hist may be nil.
func New(cfg types.Config, log *zap.Logger, hist *history.Log) (*Scaffolder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scaffolder{
		Layout:  paths.Layout{SourceRoot: cfg.SourceRoot},
		Log:     log,
		History: hist,
	}, nil
}

// stagedWrite is one artifact's fully computed content, pending commit.
type stagedWrite struct {
	path    string
	content string
}

// manifestRegion matches the build manifest's source-file list: the run of
// lines ending in the implementation suffix.
var manifestRegion = textpatch.ListRegion{
	Member: func(trimmed string) bool { return strings.HasSuffix(trimmed, ".cpp") },
}

// Run scaffolds the check identified by id.
//
// The build manifest is consulted first: if the check's implementation file
// is already listed, Run returns AlreadyExists and writes nothing anywhere.
// Otherwise every artifact's new content is computed in memory and committed
// in one final loop, so an IO failure can only interrupt the write sequence,
// never interleave reads with partial writes. Cross-artifact atomicity is
// still not guaranteed; an interrupt mid-commit leaves earlier artifacts
// updated.
func (s *Scaffolder) Run(id types.CheckID) (Result, error) {
	if err := id.Validate(); err != nil {
		return Result{}, err
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	manifest, err := textpatch.Load(s.Layout.Manifest(id))
	if err != nil {
		return Result{}, fmt.Errorf("load build manifest: %w", err)
	}
	dec := manifestRegion.Decide(manifest.Lines, id.SourceFile())
	if dec.AlreadyPresent {
		log.Debug("check already listed in manifest, nothing to do",
			zap.String("check", id.DashedName()))
		return Result{AlreadyExists: true}, nil
	}
	manifest.InsertAt(dec.InsertAt, "  "+id.SourceFile())

	module, err := textpatch.Load(s.Layout.ModuleFile(id))
	if err != nil {
		return Result{}, fmt.Errorf("load module source: %w", err)
	}
	module.Lines = textpatch.PatchModule(module.Lines, id)

	// The fixture directory may not exist yet in a fresh checkout.
	if err := os.MkdirAll(s.Layout.TestFixtureDir(id), 0o755); err != nil {
		return Result{}, fmt.Errorf("create fixture dir: %w", err)
	}

	// Header and implementation are written unconditionally: once the
	// manifest check passes these are freshly authored files, and
	// overwriting a stray leftover is the intended scaffolding behavior.
	writes := []stagedWrite{
		{manifest.Path, manifest.Content()},
		{s.Layout.Header(id), Header(id)},
		{s.Layout.Source(id), Implementation(id)},
		{module.Path, module.Content()},
		{s.Layout.TestFixture(id), TestFixture(id)},
	}

	var res Result
	for _, w := range writes {
		if err := os.WriteFile(w.path, []byte(w.content), 0o644); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", w.path, err)
		}
		log.Debug("wrote artifact", zap.String("path", w.path))
		res.Written = append(res.Written, w.path)
	}

	if s.History != nil {
		entry := history.Entry{
			Module:    id.Module,
			Check:     id.Name,
			Symbol:    id.SymbolName(),
			CreatedAt: time.Now().UTC(),
			Files:     res.Written,
		}
		// The artifact writes are the contract; the history log is advisory.
		if err := s.History.Record(entry); err != nil {
			log.Warn("failed to record scaffold history", zap.Error(err))
		}
	}

	return res, nil
}
