// Package declscan extracts catalog identifiers from Go source without
// running it, by locating calls to fixturecheck.NewEntry and
// fixturecheck.EntriesFor.
package declscan

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/types"
	"strings"

	"github.com/goatx/fixturecheck/internal/load"
)

const (
	newEntryFunction   = "NewEntry"
	entriesForFunction = "EntriesFor"
)

// Declaration is one identifier found in source.
type Declaration struct {
	ID       string
	Position string
}

// Analyze loads the package at packagePath and returns its declarations.
func Analyze(packagePath string) ([]Declaration, error) {
	pkg, err := load.Load(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package with types: %w", err)
	}
	return Declarations(pkg)
}

// Declarations returns identifiers in source order. Identifiers that are
// not compile-time string constants, or that are declared twice, are
// reported together in one error.
func Declarations(pkg *load.PackageInfo) ([]Declaration, error) {
	var decls []Declaration
	var problems []string
	seen := make(map[string]string)

	record := func(arg ast.Expr, info *types.Info) {
		pos := pkg.Fset.Position(arg.Pos()).String()
		id, ok := stringConstant(arg, info)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: fixture identifier is not a string constant", pos))
			return
		}
		if prev, dup := seen[id]; dup {
			problems = append(problems, fmt.Sprintf("%s: fixture identifier %q already declared at %s", pos, id, prev))
			return
		}
		seen[id] = pos
		decls = append(decls, Declaration{ID: id, Position: pos})
	}

	for _, file := range pkg.Files {
		ast.Inspect(file.Syntax, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			switch calledFunction(call, file.TypesInfo) {
			case newEntryFunction:
				if len(call.Args) > 0 {
					record(call.Args[0], file.TypesInfo)
				}
			case entriesForFunction:
				if len(call.Args) == 0 {
					return true
				}
				if call.Ellipsis.IsValid() {
					pos := pkg.Fset.Position(call.Ellipsis).String()
					problems = append(problems, fmt.Sprintf("%s: identifiers passed as a slice cannot be resolved statically", pos))
					return true
				}
				for _, arg := range call.Args[1:] {
					record(arg, file.TypesInfo)
				}
			}
			return true
		})
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid catalog declarations:\n%s", strings.Join(problems, "\n"))
	}
	return decls, nil
}

// IDs returns the identifiers of decls.
func IDs(decls []Declaration) []string {
	ids := make([]string, len(decls))
	for i, d := range decls {
		ids[i] = d.ID
	}
	return ids
}

// calledFunction returns the name of the fixturecheck function call
// invokes, or "" when it calls something else.
func calledFunction(call *ast.CallExpr, info *types.Info) string {
	var ident *ast.Ident
	switch fun := call.Fun.(type) {
	case *ast.SelectorExpr:
		ident = fun.Sel
	case *ast.Ident:
		ident = fun
	default:
		return ""
	}

	fn, ok := info.Uses[ident].(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != load.FixturecheckPackageFullPath {
		return ""
	}
	switch fn.Name() {
	case newEntryFunction, entriesForFunction:
		return fn.Name()
	}
	return ""
}

func stringConstant(expr ast.Expr, info *types.Info) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(tv.Value), true
}
