package clone

// IdentityMap correlates template-side identifiers with their target-side
// counterparts. It is built once per clone run and read-only afterwards, so
// concurrent readers need no synchronization.
type IdentityMap map[string]string

func (m IdentityMap) Resolve(templateID string) (string, bool) {
	id, ok := m[templateID]
	return id, ok
}

// ResolveOrZero returns the mapped identifier, or the empty string for
// template nodes that found no match during correlation.
func (m IdentityMap) ResolveOrZero(templateID string) string {
	return m[templateID]
}
