package section

import "fmt"

// Registry is the §4.1 Section Registry: a named collection plus a
// parallel ordered sequence. The name map always points at the first
// ("head") section declared under a name; fragment-literal siblings
// are appended to the ordered sequence without ever displacing the
// head in the map (Design Notes bullet 3). An explicit SECTION FRAGMENT
// redeclaration adds no sibling: it merges into the existing section.
type Registry struct {
	byName  map[string]int // name -> index of the head section in ordered
	ordered []*Section
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Find returns the head section declared under name, if any.
func (r *Registry) Find(name string) (*Section, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.ordered[idx], true
}

// add appends a brand-new section (the first declaration under its
// name) to the ordered sequence and indexes it.
func (r *Registry) add(s *Section) {
	s.siblingIndex = len(r.ordered)
	r.ordered = append(r.ordered, s)
	if _, exists := r.byName[s.Name]; !exists {
		r.byName[s.Name] = s.siblingIndex
	}
}

// addSibling appends a fragment-literal sibling: same name as an
// existing head, new identity, never touching the name map (the name
// already resolves to the head).
func (r *Registry) addSibling(s *Section) {
	s.siblingIndex = len(r.ordered)
	r.ordered = append(r.ordered, s)
}

// Siblings returns every section sharing name, in declaration order,
// by walking the ordered sequence (Design Notes bullet 3:
// "(head, next_sibling_index) chained through the ordered sequence").
func (r *Registry) Siblings(name string) []*Section {
	var out []*Section
	for _, s := range r.ordered {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// ForEach visits every section in stable declaration order, the order
// the object-file writer relies on (§6: "the object-file writer later
// iterates sections via forEach").
func (r *Registry) ForEach(fn func(*Section)) {
	for _, s := range r.ordered {
		fn(s)
	}
}

// Count returns the total number of sections, including fragment-
// literal siblings.
func (r *Registry) Count() int { return len(r.ordered) }

// CheckSizes reports every section whose accumulated Size exceeds its
// type's maximum (§4.1), returning one formatted message per
// offender. Non-goal: it does not resolve or fix anything; the caller
// (Engine.Finish) decides severity.
func (r *Registry) CheckSizes() []string {
	var msgs []string
	for _, s := range r.ordered {
		if s.Size > s.Type.MaxSize() {
			msgs = append(msgs, fmt.Sprintf("section %q (%s) is %d bytes, exceeding the maximum of %d", s.Name, s.Type, s.Size, s.Type.MaxSize()))
		}
	}
	return msgs
}
