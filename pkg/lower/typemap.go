package lower

// TypeMap maps declared C type names onto a target language's spelling.
// Names outside the table resolve to the fallback.
type TypeMap struct {
	names    map[string]string
	fallback string
}

// NewTypeMap copies names so later changes to the argument are not observed.
func NewTypeMap(fallback string, names map[string]string) *TypeMap {
	m := &TypeMap{names: make(map[string]string, len(names)), fallback: fallback}
	for k, v := range names {
		m.names[k] = v
	}
	return m
}

// Lookup returns the mapped name and true, or the fallback and false.
func (m *TypeMap) Lookup(name string) (string, bool) {
	if v, ok := m.names[name]; ok {
		return v, true
	}
	return m.fallback, false
}

// Fallback is the "untyped object" spelling.
func (m *TypeMap) Fallback() string { return m.fallback }

// With returns a copy of m with extra entries layered on top.
func (m *TypeMap) With(extra map[string]string) *TypeMap {
	out := NewTypeMap(m.fallback, m.names)
	for k, v := range extra {
		out.names[k] = v
	}
	return out
}

var javaTypes = map[string]string{
	"int":    "int",
	"float":  "float",
	"double": "double",
	"char":   "char",
	"void":   "void",
	"_Bool":  "boolean",
	"bool":   "boolean",
}

var pythonTypes = map[string]string{
	"int":    "int",
	"float":  "float",
	"double": "float",
	"char":   "str",
	"void":   "None",
	"_Bool":  "bool",
	"bool":   "bool",
}
