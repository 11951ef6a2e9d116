package scaffold

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/checkgen/internal/history"
	"github.com/mesh-intelligence/checkgen/internal/paths"
	"github.com/mesh-intelligence/checkgen/pkg/types"
)

const fixtureManifest = `set(LLVM_LINK_COMPONENTS support)

add_clang_library(clangTidyMiscModule
  ArgumentCommentCheck.cpp
  BoolPointerImplicitConversionCheck.cpp
  MiscTidyModule.cpp
  )

target_link_libraries(clangTidyMiscModule clangTidy)
`

const fixtureModule = `//===--- MiscTidyModule.cpp - clang-tidy ----------------------------------===//

#include "../ClangTidy.h"
#include "../ClangTidyModule.h"
#include "../ClangTidyModuleRegistry.h"
#include "ArgumentCommentCheck.h"
#include "BoolPointerImplicitConversionCheck.h"

namespace clang {
namespace tidy {

class MiscModule : public ClangTidyModule {
public:
  void addCheckFactories(ClangTidyCheckFactories &CheckFactories) override {
    CheckFactories.registerCheck<ArgumentCommentCheck>(
        "misc-argument-comment");
    CheckFactories.registerCheck<BoolPointerImplicitConversionCheck>(
        "misc-bool-pointer-implicit-conversion");
  }
};

} // namespace tidy
} // namespace clang
`

// setupTree lays out a minimal clang-tidy source tree in a temp dir:
// <root>/clang-tidy/misc with the manifest and module source, and the
// sibling <root>/test/clang-tidy fixture directory.
func setupTree(t *testing.T) paths.Layout {
	t.Helper()
	root := t.TempDir()
	miscDir := filepath.Join(root, "clang-tidy", "misc")
	testDir := filepath.Join(root, "test", "clang-tidy")
	require.NoError(t, os.MkdirAll(miscDir, 0o755))
	require.NoError(t, os.MkdirAll(testDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(miscDir, "CMakeLists.txt"), []byte(fixtureManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(miscDir, "MiscTidyModule.cpp"), []byte(fixtureModule), 0o644))

	return paths.Layout{SourceRoot: filepath.Join(root, "clang-tidy")}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// snapshot captures every artifact the scaffolder may touch for id.
func snapshot(t *testing.T, l paths.Layout, id types.CheckID) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, p := range []string{
		l.Manifest(id), l.ModuleFile(id), l.Header(id), l.Source(id), l.TestFixture(id),
	} {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		out[p] = string(data)
	}
	return out
}

func TestRunScaffoldsAllArtifacts(t *testing.T) {
	layout := setupTree(t)
	id := types.CheckID{Module: "misc", Name: "awesome-functions"}

	s := &Scaffolder{Layout: layout}
	res, err := s.Run(id)
	require.NoError(t, err)
	assert.False(t, res.AlreadyExists)
	require.Len(t, res.Written, 5)

	manifest := readFile(t, layout.Manifest(id))
	assert.Contains(t, manifest, "  ArgumentCommentCheck.cpp\n  AwesomeFunctionsCheck.cpp\n  BoolPointerImplicitConversionCheck.cpp\n")

	module := readFile(t, layout.ModuleFile(id))
	assert.Contains(t, module, `#include "AwesomeFunctionsCheck.h"`)
	assert.Contains(t, module, "    CheckFactories.registerCheck<AwesomeFunctionsCheck>(\n        \"misc-awesome-functions\");\n")

	header := readFile(t, layout.Header(id))
	assert.Contains(t, header, "class AwesomeFunctionsCheck : public ClangTidyCheck {")

	impl := readFile(t, layout.Source(id))
	assert.Contains(t, impl, `#include "AwesomeFunctionsCheck.h"`)

	fixture := readFile(t, layout.TestFixture(id))
	assert.Contains(t, fixture, "misc-awesome-functions")
}

// Only one new line per list; everything else stays byte-identical.
func TestRunNonInterference(t *testing.T) {
	layout := setupTree(t)
	id := types.CheckID{Module: "misc", Name: "awesome-functions"}

	beforeManifest := strings.Split(fixtureManifest, "\n")
	beforeModule := strings.Split(fixtureModule, "\n")

	s := &Scaffolder{Layout: layout}
	_, err := s.Run(id)
	require.NoError(t, err)

	afterManifest := strings.Split(readFile(t, layout.Manifest(id)), "\n")
	assert.Len(t, afterManifest, len(beforeManifest)+1)
	assert.Equal(t, beforeManifest, deleteLine(afterManifest, "  AwesomeFunctionsCheck.cpp"))

	afterModule := strings.Split(readFile(t, layout.ModuleFile(id)), "\n")
	assert.Len(t, afterModule, len(beforeModule)+3)
	stripped := deleteLine(afterModule, `#include "AwesomeFunctionsCheck.h"`)
	stripped = deleteLine(stripped, "    CheckFactories.registerCheck<AwesomeFunctionsCheck>(")
	stripped = deleteLine(stripped, `        "misc-awesome-functions");`)
	assert.Equal(t, beforeModule, stripped)
}

// deleteLine removes the first occurrence of line.
func deleteLine(lines []string, line string) []string {
	out := make([]string, 0, len(lines))
	deleted := false
	for _, l := range lines {
		if !deleted && l == line {
			deleted = true
			continue
		}
		out = append(out, l)
	}
	return out
}

func TestRunIdempotent(t *testing.T) {
	layout := setupTree(t)
	id := types.CheckID{Module: "misc", Name: "awesome-functions"}
	s := &Scaffolder{Layout: layout}

	_, err := s.Run(id)
	require.NoError(t, err)
	before := snapshot(t, layout, id)

	res, err := s.Run(id)
	require.NoError(t, err)
	assert.True(t, res.AlreadyExists)
	assert.Empty(t, res.Written)

	assert.Equal(t, before, snapshot(t, layout, id), "second run must not change any artifact")
}

func TestRunAlreadyListedWritesNothing(t *testing.T) {
	layout := setupTree(t)
	// Already present in the pristine fixture manifest.
	id := types.CheckID{Module: "misc", Name: "argument-comment"}
	s := &Scaffolder{Layout: layout}

	res, err := s.Run(id)
	require.NoError(t, err)
	assert.True(t, res.AlreadyExists)

	assert.Equal(t, fixtureManifest, readFile(t, layout.Manifest(id)))
	assert.Equal(t, fixtureModule, readFile(t, layout.ModuleFile(id)))
	assert.NoFileExists(t, layout.Header(id))
	assert.NoFileExists(t, layout.Source(id))
	assert.NoFileExists(t, layout.TestFixture(id))
}

var registerCallRe = regexp.MustCompile(`registerCheck<(.*)>`)

// Inserting several checks in arbitrary order keeps all three lists sorted
// and duplicate-free.
func TestRunSortInvariant(t *testing.T) {
	layout := setupTree(t)
	s := &Scaffolder{Layout: layout}

	names := []string{"zebra-stripes", "awesome-functions", "dangling-handle", "banana", "calm-down"}
	for _, name := range names {
		_, err := s.Run(types.CheckID{Module: "misc", Name: name})
		require.NoError(t, err)
	}

	id := types.CheckID{Module: "misc", Name: names[0]}

	var sources []string
	for _, line := range strings.Split(readFile(t, layout.Manifest(id)), "\n") {
		if trimmed := strings.TrimSpace(line); strings.HasSuffix(trimmed, ".cpp") {
			sources = append(sources, trimmed)
		}
	}
	assert.Len(t, sources, 3+len(names))
	assert.True(t, sort.StringsAreSorted(sources), "manifest not sorted: %v", sources)

	module := readFile(t, layout.ModuleFile(id))
	var includes, symbols []string
	for _, line := range strings.Split(module, "\n") {
		if strings.HasPrefix(line, `#include "`) && !strings.HasPrefix(line, `#include "../`) {
			includes = append(includes, line)
		}
		if m := registerCallRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, m[1])
		}
	}
	assert.Len(t, includes, 2+len(names))
	assert.True(t, sort.StringsAreSorted(includes), "includes not sorted: %v", includes)
	assert.Len(t, symbols, 2+len(names))
	assert.True(t, sort.StringsAreSorted(symbols), "registrations not sorted: %v", symbols)
}

func TestRunRecordsHistory(t *testing.T) {
	layout := setupTree(t)
	log, err := history.Open(t.TempDir())
	require.NoError(t, err)
	defer log.Close()

	s := &Scaffolder{Layout: layout, History: log}
	id := types.CheckID{Module: "misc", Name: "awesome-functions"}
	res, err := s.Run(id)
	require.NoError(t, err)

	entries, err := log.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "misc", entries[0].Module)
	assert.Equal(t, "awesome-functions", entries[0].Check)
	assert.Equal(t, "AwesomeFunctionsCheck", entries[0].Symbol)
	assert.Equal(t, res.Written, entries[0].Files)

	// The designed no-op path records nothing.
	_, err = s.Run(id)
	require.NoError(t, err)
	entries, err = log.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNew(t *testing.T) {
	t.Run("valid config scaffolds", func(t *testing.T) {
		layout := setupTree(t)
		cfg := types.Config{SourceRoot: layout.SourceRoot, DataDir: t.TempDir(), History: true}

		s, err := New(cfg, nil, nil)
		require.NoError(t, err)

		id := types.CheckID{Module: "misc", Name: "awesome-functions"}
		res, err := s.Run(id)
		require.NoError(t, err)
		assert.Len(t, res.Written, 5)
	})

	t.Run("rejects empty source root", func(t *testing.T) {
		_, err := New(types.Config{}, nil, nil)
		assert.ErrorIs(t, err, types.ErrSourceRootEmpty)
	})
}

// A fresh checkout may not carry the test fixture directory yet; Run creates
// it instead of failing the commit.
func TestRunCreatesFixtureDir(t *testing.T) {
	layout := setupTree(t)
	id := types.CheckID{Module: "misc", Name: "awesome-functions"}
	require.NoError(t, os.RemoveAll(layout.TestFixtureDir(id)))

	s := &Scaffolder{Layout: layout}
	res, err := s.Run(id)
	require.NoError(t, err)
	assert.Len(t, res.Written, 5)
	assert.FileExists(t, layout.TestFixture(id))
}

func TestRunMissingManifest(t *testing.T) {
	layout := paths.Layout{SourceRoot: t.TempDir()}
	s := &Scaffolder{Layout: layout}

	_, err := s.Run(types.CheckID{Module: "misc", Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build manifest")
}

func TestRunInvalidID(t *testing.T) {
	s := &Scaffolder{Layout: paths.Layout{SourceRoot: t.TempDir()}}
	_, err := s.Run(types.CheckID{Module: "", Name: "x"})
	assert.ErrorIs(t, err, types.ErrModuleEmpty)
}
