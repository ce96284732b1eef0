package core

import "context"

// UtilChange is a changed utility file and its fully qualified python name.
type UtilChange struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// ChangeSet classifies the changed files of a collection.
type ChangeSet struct {
	Files       []string     `json:"-"`
	Modules     []string     `json:"modules"`
	Inventory   []string     `json:"inventory"`
	Connection  []string     `json:"connection"`
	Lookup      []string     `json:"lookup"`
	ModuleUtils []UtilChange `json:"module_utils"`
	PluginUtils []UtilChange `json:"plugin_utils"`
	Targets     []string     `json:"targets"`
	Roles       []string     `json:"roles"`
}

// Differ lists the files changed in dir since baseRef.
type Differ interface {
	ChangedFiles(ctx context.Context, dir, baseRef string) ([]string, error)
}

// ImportScanner lists the fully qualified python imports of a source file.
type ImportScanner interface {
	Imports(ctx context.Context, prefix, subdir string, source []byte) ([]string, error)
}

// GraphBuilder builds the import dependency graph of a collection.
type GraphBuilder interface {
	Build(ctx context.Context, root, collectionName string, allCollectionNames []string) (*DependencyGraph, error)
}
