package wildcard

// Manager stores the text captured by wildcards during one rule evaluation,
// keyed by global capture index.
//
// A Manager is not safe for concurrent use. Each compiled traversal owns
// one, and clears it before every candidate so captures never leak from one
// candidate to the next.
type Manager struct {
	values []string
	set    []bool
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Capture records value for index, replacing any earlier value. Indices
// below 1 are ignored.
func (m *Manager) Capture(index int, value string) {
	if index < 1 {
		return
	}
	if index >= len(m.values) {
		n := index + 1
		if n < 2*len(m.values) {
			n = 2 * len(m.values)
		}
		values := make([]string, n)
		set := make([]bool, n)
		copy(values, m.values)
		copy(set, m.set)
		m.values, m.set = values, set
	}
	m.values[index] = value
	m.set[index] = true
}

// Resolve returns the value captured at index and whether one was recorded.
func (m *Manager) Resolve(index int) (string, bool) {
	if index < 1 || index >= len(m.values) || !m.set[index] {
		return "", false
	}
	return m.values[index], true
}

// Reset forgets every capture.
func (m *Manager) Reset() {
	for i := range m.set {
		m.set[i] = false
		m.values[i] = ""
	}
}

// CopyFrom replaces the captures of m with those of src.
func (m *Manager) CopyFrom(src *Manager) {
	m.values = append(m.values[:0], src.values...)
	m.set = append(m.set[:0], src.set...)
}

// Len returns the number of recorded captures.
func (m *Manager) Len() int {
	n := 0
	for _, ok := range m.set {
		if ok {
			n++
		}
	}
	return n
}
