package core

// ImportMap maps a python module name to the ordered, duplicate free list of
// names it imports. Unknown keys read as an empty list.
type ImportMap struct {
	keys    []string
	imports map[string][]string
}

// NewImportMap returns an empty ImportMap.
func NewImportMap() *ImportMap {
	return &ImportMap{imports: make(map[string][]string)}
}

// Get returns the imports recorded for key.
func (m *ImportMap) Get(key string) []string {
	if m == nil {
		return nil
	}
	return m.imports[key]
}

// Has reports whether key has been initialized.
func (m *ImportMap) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.imports[key]
	return ok
}

// Init creates key with no imports if it does not exist yet.
func (m *ImportMap) Init(key string) {
	if _, ok := m.imports[key]; !ok {
		m.keys = append(m.keys, key)
		m.imports[key] = []string{}
	}
}

// Append records name under key. It returns false when name was already there.
func (m *ImportMap) Append(key, name string) bool {
	m.Init(key)
	for _, existing := range m.imports[key] {
		if existing == name {
			return false
		}
	}
	m.imports[key] = append(m.imports[key], name)
	return true
}

// Contains reports whether key imports name.
func (m *ImportMap) Contains(key, name string) bool {
	for _, existing := range m.Get(key) {
		if existing == name {
			return true
		}
	}
	return false
}

// Keys returns the keys in insertion order.
func (m *ImportMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *ImportMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// DependencyGraph holds the python import dependencies of a collection.
type DependencyGraph struct {
	// ModuleImports maps a module name (file stem) to the collection utilities it imports.
	ModuleImports *ImportMap
	// UtilityImports maps a utility to the utilities of the same collection it imports.
	UtilityImports *ImportMap
}

// NewDependencyGraph returns an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{ModuleImports: NewImportMap(), UtilityImports: NewImportMap()}
}
