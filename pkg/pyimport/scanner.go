// Package pyimport lists the modules a python source file imports.
package pyimport

import (
	"context"
	"strings"

	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// tree-sitter python node types
const (
	nodeImport         = "import_statement"
	nodeImportFrom     = "import_from_statement"
	nodeFutureImport   = "future_import_statement"
	nodeDottedName     = "dotted_name"
	nodeAliasedImport  = "aliased_import"
	nodeRelativeImport = "relative_import"
	nodeImportPrefix   = "import_prefix"
	keywordImport      = "import"
)

const futureModule = "__future__"

type scanner struct{}

// New returns an ImportScanner backed by tree-sitter.
func New() core.ImportScanner {
	return &scanner{}
}

// Imports returns the fully qualified names imported by source, in breadth
// first order of the syntax tree. Relative imports are resolved against
// prefix (e.g. "ansible_collections.amazon.aws.plugins.") and subdir, the
// plugins sub package source lives in.
func (s *scanner) Imports(ctx context.Context, prefix, subdir string, source []byte) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, errs.ErrSyntax
	}

	imports := make([]string, 0)
	queue := []*sitter.Node{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		switch node.Type() {
		case nodeImport:
			if name := firstImportedName(node, source); name != "" {
				imports = append(imports, name)
			}
		case nodeImportFrom:
			imports = append(imports, fromImports(node, source, prefix, subdir)...)
		case nodeFutureImport:
			imports = append(imports, futureModule)
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			queue = append(queue, node.Child(i))
		}
	}
	return imports, nil
}

// firstImportedName handles `import a.b as c, d`, only a.b is reported.
func firstImportedName(node *sitter.Node, source []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case nodeDottedName:
			return dotted(child, source)
		case nodeAliasedImport:
			if name := child.ChildByFieldName("name"); name != nil {
				return dotted(name, source)
			}
		}
	}
	return ""
}

// fromImports handles `from X import a, b` statements.
func fromImports(node *sitter.Node, source []byte, prefix, subdir string) []string {
	var (
		module    string
		level     int
		names     []string
		sawImport bool
	)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case keywordImport:
			sawImport = true
		case nodeRelativeImport:
			level, module = relative(child, source)
		case nodeDottedName:
			if sawImport {
				names = append(names, dotted(child, source))
			} else {
				module = dotted(child, source)
			}
		case nodeAliasedImport:
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, dotted(name, source))
			}
		}
	}

	var currentPrefix string
	switch level {
	case 1:
		currentPrefix = prefix + subdir + "."
	case 2:
		currentPrefix = prefix
	}

	if module != "" {
		return []string{currentPrefix + module}
	}
	// `from . import x`: every imported name is a module of the package
	imports := make([]string, 0, len(names))
	for _, name := range names {
		imports = append(imports, currentPrefix+name)
	}
	return imports
}

func relative(node *sitter.Node, source []byte) (level int, module string) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case nodeImportPrefix:
			level = strings.Count(child.Content(source), ".")
		case nodeDottedName:
			module = dotted(child, source)
		}
	}
	return level, module
}

func dotted(node *sitter.Node, source []byte) string {
	return strings.Join(strings.Fields(node.Content(source)), "")
}
