package scaffold

import (
	"strings"

	"github.com/mesh-intelligence/checkgen/pkg/types"
)

// Banner widths for the generated file headers. The dash run pads the
// filename out to a fixed column, clamped at zero for long names.
const (
	headerBannerWidth = 43
	implBannerWidth   = 52
)

// Substitution tokens used in the templates below. The generated C++ and
// test-runner text contains literal percent runs, so substitution is done
// with a Replacer rather than printf-style formatting.
const (
	tokGuard  = "@GUARD@"
	tokSymbol = "@SYMBOL@"
	tokDashed = "@DASHED@"
)

const headerTemplate = `//
//                     The LLVM Compiler Infrastructure
//
// This file is distributed under the University of Illinois Open Source
// License. See LICENSE.TXT for details.
//
//===----------------------------------------------------------------------===//

#ifndef @GUARD@
#define @GUARD@

#include "../ClangTidy.h"

namespace clang {
namespace tidy {

class @SYMBOL@ : public ClangTidyCheck {
public:
  @SYMBOL@(StringRef Name, ClangTidyContext *Context)
      : ClangTidyCheck(Name, Context) {}
  void registerMatchers(ast_matchers::MatchFinder *Finder) override;
  void check(const ast_matchers::MatchFinder::MatchResult &Result) override;
};

} // namespace tidy
} // namespace clang

#endif // @GUARD@

`

const implTemplate = `//
//                     The LLVM Compiler Infrastructure
//
// This file is distributed under the University of Illinois Open Source
// License. See LICENSE.TXT for details.
//
//===----------------------------------------------------------------------===//

#include "@SYMBOL@.h"
#include "clang/AST/ASTContext.h"
#include "clang/ASTMatchers/ASTMatchFinder.h"

using namespace clang::ast_matchers;

namespace clang {
namespace tidy {

void @SYMBOL@::registerMatchers(MatchFinder *Finder) {
  // FIXME: Add matchers.
  Finder->addMatcher(functionDecl().bind("x"), this);
}

void @SYMBOL@::check(const MatchFinder::MatchResult &Result) {
  // FIXME: Add callback implementation.
  const auto *MatchedDecl = Result.Nodes.getNodeAs<FunctionDecl>("x");
  if (MatchedDecl->getName().startswith("awesome_"))
    return;
  diag(MatchedDecl->getLocation(), "function '%0' is insufficiently awesome")
      << MatchedDecl->getName()
      << FixItHint::CreateInsertion(MatchedDecl->getLocation(), "awesome_");
}

} // namespace tidy
} // namespace clang

`

const testFixtureTemplate = `// RUN: $(dirname %s)/check_clang_tidy.sh %s @DASHED@ %t
// REQUIRES: shell

// FIXME: Add something that triggers the check here.
void f();
// CHECK-MESSAGES: :[[@LINE-1]]:6: warning: function 'f' is insufficiently awesome [@DASHED@]

// FIXME: Verify the applied fix.
//   * Make the CHECK patterns specific enough and try to make verified lines
//     unique to avoid incorrect matches.
//   * Use {{}} for regular expressions.
// CHECK-FIXES: {{^}}void awesome_f();{{$}}

// FIXME: Add something that doesn't trigger the check here.
void awesome_f2();
`

// banner renders the top line of a generated file, dash-padded to width.
func banner(filename string, width int, trailer string) string {
	pad := max(0, width-len(filename))
	return "//===--- " + filename + " - clang-tidy" + strings.Repeat("-", pad) + trailer
}

func replacer(id types.CheckID) *strings.Replacer {
	return strings.NewReplacer(
		tokGuard, id.GuardToken(),
		tokSymbol, id.SymbolName(),
		tokDashed, id.DashedName(),
	)
}

// Header generates the check's header file content.
func Header(id types.CheckID) string {
	return banner(id.HeaderFile(), headerBannerWidth, "*- C++ -*-===//") + "\n" +
		replacer(id).Replace(headerTemplate)
}

// Implementation generates the check's implementation file content.
func Implementation(id types.CheckID) string {
	return banner(id.SourceFile(), implBannerWidth, "-===//") + "\n" +
		replacer(id).Replace(implTemplate)
}

// TestFixture generates the declarative test script consumed by the external
// check runner. It is data, not something this tool executes.
func TestFixture(id types.CheckID) string {
	return replacer(id).Replace(testFixtureTemplate)
}
