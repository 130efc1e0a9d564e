package classpool

// Pool is the set of classes considered in one run.
//
// A Pool supports exact-name lookup in O(1) and a full scan in insertion
// order. Every class also has a dense index in [0, Len()), which lets
// traversals keep visited sets without hashing names.
//
// Example:
//
//	pool := classpool.NewPool(
//	    &classpool.Class{Name: "com/example/A"},
//	    &classpool.Class{Name: "com/example/B", SuperName: "com/example/A"},
//	)
//	b := pool.Lookup("com/example/B")
//	fmt.Println(pool.Index(b.Name)) // Output: 1
type Pool struct {
	classes []*Class
	index   map[string]int
}

// NewPool builds a pool from classes. When two classes share a name the
// first one wins and later ones are dropped.
func NewPool(classes ...*Class) *Pool {
	p := &Pool{
		classes: make([]*Class, 0, len(classes)),
		index:   make(map[string]int, len(classes)),
	}
	for _, c := range classes {
		p.Add(c)
	}
	return p
}

// Add appends c to the pool. It reports false, leaving the pool unchanged,
// when c is nil or a class with the same name is already present.
func (p *Pool) Add(c *Class) bool {
	if c == nil {
		return false
	}
	if _, dup := p.index[c.Name]; dup {
		return false
	}
	p.index[c.Name] = len(p.classes)
	p.classes = append(p.classes, c)
	return true
}

// Len returns the number of classes.
func (p *Pool) Len() int {
	return len(p.classes)
}

// Lookup returns the class named name, or nil.
func (p *Pool) Lookup(name string) *Class {
	if i, ok := p.index[name]; ok {
		return p.classes[i]
	}
	return nil
}

// Index returns the dense index of the class named name, or -1.
func (p *Pool) Index(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	return -1
}

// Classes returns the classes in insertion order. The slice is owned by the
// pool and must not be modified.
func (p *Pool) Classes() []*Class {
	return p.classes
}

// Each calls f for every class in insertion order.
func (p *Pool) Each(f func(*Class)) {
	for _, c := range p.classes {
		f(c)
	}
}
