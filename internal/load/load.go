package load

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const (
	FixturecheckPackageFullPath = "github.com/goatx/fixturecheck"
)

// File is one parsed source file together with the type information of the
// package it was checked in.
type File struct {
	Syntax    *ast.File
	TypesInfo *types.Info
}

type PackageInfo struct {
	Fset  *token.FileSet
	Files []File
}

// Load parses and type-checks the package in packagePath including its
// _test.go files. A file compiled into several package variants (plain and
// test) is returned once.
func Load(packagePath string) (*PackageInfo, error) {
	abs, err := filepath.Abs(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package path %s: %w", packagePath, err)
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedModule | packages.NeedDeps,
		Dir:   abs,
		Tests: true,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", abs, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found in %s", abs)
	}

	var b strings.Builder
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(pkgErr.Error())
		}
	}
	if b.Len() > 0 {
		return nil, fmt.Errorf("failed to load package in %s: %s", abs, b.String())
	}

	// Visit the largest variants first so test files keep the type
	// information of the package that includes them.
	sort.SliceStable(pkgs, func(i, j int) bool { return len(pkgs[i].Syntax) > len(pkgs[j].Syntax) })

	info := &PackageInfo{Fset: pkgs[0].Fset}
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		// The synthesized test main has nothing declared by the user.
		if strings.HasSuffix(pkg.ID, ".test") {
			continue
		}
		if pkg.TypesInfo == nil {
			return nil, fmt.Errorf("failed to obtain type information for package %s", pkg.ID)
		}
		for _, file := range pkg.Syntax {
			name := pkg.Fset.Position(file.Pos()).Filename
			if seen[name] {
				continue
			}
			seen[name] = true
			info.Files = append(info.Files, File{Syntax: file, TypesInfo: pkg.TypesInfo})
		}
	}
	if len(info.Files) == 0 {
		return nil, fmt.Errorf("no Go files found in %s", abs)
	}

	sort.Slice(info.Files, func(i, j int) bool {
		return info.Fset.Position(info.Files[i].Syntax.Pos()).Filename < info.Fset.Position(info.Files[j].Syntax.Pos()).Filename
	})
	return info, nil
}
