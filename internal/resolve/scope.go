package resolve

// Scope is a layered variable lookup. Earlier layers shadow later ones.
type Scope struct {
	layers []map[string]string
}

// NewScope builds a scope from the most specific layer to the least.
func NewScope(layers ...map[string]string) Scope {
	return Scope{layers: layers}
}

// Lookup returns the value bound to name in the first layer defining it.
func (s Scope) Lookup(name string) (string, bool) {
	for _, layer := range s.layers {
		if v, ok := layer[name]; ok {
			return v, true
		}
	}
	return "", false
}
