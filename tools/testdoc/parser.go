package main

import (
	"cmp"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// TestFunc is a parsed test function.
type TestFunc struct {
	Name     string // e.g. "TestSnapshot_DryRun"
	Summary  string // first doc comment paragraph
	Scenario string // text after "Scenario:", if present
	Expected string // text after "Expected:", if present
	Line     int    // line number in source file
	IsTable  bool   // has a range loop calling t.Run
}

// TestFile is a parsed test file.
type TestFile struct {
	Name  string
	Path  string
	Tests []TestFunc
}

// TestPackage is a collection of test files in one directory.
type TestPackage struct {
	Name       string // directory relative to root
	Files      []TestFile
	TotalTests int
}

// ParseTestFiles walks root and parses all *_test.go files. With
// integrationOnly, only *_integration_test.go files are included.
// Vendor and hidden directories are skipped.
func ParseTestFiles(root string, integrationOnly bool) ([]TestPackage, error) {
	packageMap := make(map[string]*TestPackage)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}

		suffix := "_test.go"
		if integrationOnly {
			suffix = "_integration_test.go"
		}
		if !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}

		testFile, err := parseTestFile(path)
		if err != nil {
			return err
		}
		if len(testFile.Tests) == 0 {
			return nil
		}

		pkgPath, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || pkgPath == "." {
			pkgPath = filepath.Base(root)
		}

		pkg, ok := packageMap[pkgPath]
		if !ok {
			pkg = &TestPackage{Name: filepath.ToSlash(pkgPath)}
			packageMap[pkgPath] = pkg
		}
		pkg.Files = append(pkg.Files, *testFile)
		pkg.TotalTests += len(testFile.Tests)
		return nil
	})
	if err != nil {
		return nil, err
	}

	packages := make([]TestPackage, 0, len(packageMap))
	for _, pkg := range packageMap {
		slices.SortFunc(pkg.Files, func(a, b TestFile) int { return cmp.Compare(a.Name, b.Name) })
		packages = append(packages, *pkg)
	}
	slices.SortFunc(packages, func(a, b TestPackage) int { return cmp.Compare(a.Name, b.Name) })

	return packages, nil
}

// parseTestFile extracts the test functions of a single file.
func parseTestFile(path string) (*TestFile, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	testFile := &TestFile{Name: filepath.Base(path), Path: path}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || !isTestFunction(fn) {
			continue
		}

		tf := TestFunc{
			Name:    fn.Name.Name,
			Line:    fset.Position(fn.Pos()).Line,
			IsTable: detectTableDriven(fn),
		}
		if fn.Doc != nil {
			tf.Summary, tf.Scenario, tf.Expected = splitDoc(fn.Doc.Text(), fn.Name.Name)
		}
		testFile.Tests = append(testFile.Tests, tf)
	}

	return testFile, nil
}

// splitDoc separates a test comment into its summary paragraph and the
// Scenario/Expected lines. A leading test name is dropped from the summary.
func splitDoc(doc, testName string) (summary, scenario, expected string) {
	var (
		parts       []string
		summaryDone bool
	)
	for line := range strings.Lines(doc) {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Scenario:"):
			scenario = strings.TrimSpace(strings.TrimPrefix(line, "Scenario:"))
		case strings.HasPrefix(line, "Expected:"):
			expected = strings.TrimSpace(strings.TrimPrefix(line, "Expected:"))
		case line == "":
			summaryDone = len(parts) > 0
		case !summaryDone:
			parts = append(parts, line)
		}
	}

	summary = strings.TrimPrefix(strings.Join(parts, " "), testName+" ")
	if summary != "" {
		summary = strings.ToUpper(summary[:1]) + summary[1:]
	}
	return summary, scenario, expected
}

// isTestFunction reports whether fn takes a single *testing.T or *testing.B.
func isTestFunction(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
		return false
	}

	starExpr, ok := fn.Type.Params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	selExpr, ok := starExpr.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := selExpr.X.(*ast.Ident)
	if !ok {
		return false
	}

	return ident.Name == "testing" && (selExpr.Sel.Name == "T" || selExpr.Sel.Name == "B")
}

// detectTableDriven reports whether fn has a range loop that calls Run.
func detectTableDriven(fn *ast.FuncDecl) bool {
	if fn.Body == nil {
		return false
	}

	isTable := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		rangeStmt, ok := n.(*ast.RangeStmt)
		if !ok {
			return !isTable
		}

		ast.Inspect(rangeStmt.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if sel, ok := call.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Run" {
				isTable = true
				return false
			}
			return true
		})
		return !isTable
	})

	return isTable
}
