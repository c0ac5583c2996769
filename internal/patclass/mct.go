package patclass

// MCT is a multi-case tree. The variant set is closed: *Leaf, *Fault and
// *Node. Leaf and Fault are terminal.
type MCT[T any] interface {
	isMCT()
}

// Terminal is a terminal MCT node: a class of clause indices.
type Terminal[T any] interface {
	MCT[T]
	Classed
	isTerminal()
}

// Leaf lists the clauses that survive once no column can be split.
type Leaf[T any] struct {
	Clauses []int
}

// Fault is a terminal node whose split failed. Problem is the diagnostic.
type Fault[T any] struct {
	Clauses []int
	Problem error
}

// Node is an interior split on Type with one child per resulting class, in
// the order the classifier produced them.
type Node[T any] struct {
	Type     T
	Children []MCT[T]
}

func (*Leaf[T]) isMCT()  {}
func (*Fault[T]) isMCT() {}
func (*Node[T]) isMCT()  {}

func (*Leaf[T]) isTerminal()  {}
func (*Fault[T]) isTerminal() {}

func (l *Leaf[T]) Cls() []int  { return l.Clauses }
func (f *Fault[T]) Cls() []int { return f.Clauses }

// Propagate rewrites every terminal of tree into a Fault carrying f's
// problem. Only tree is affected, so siblings of the poisoned subtree keep
// their classes.
func (f *Fault[T]) Propagate(tree MCT[T]) MCT[T] {
	return Map(tree, func(t Terminal[T]) Terminal[T] {
		return &Fault[T]{Clauses: t.Cls(), Problem: f.Problem}
	})
}

// SplitFunc tries to split the leading column of tele. It reports false
// when it has no opinion, for example when every row binds a variable there.
type SplitFunc[A, P, T any] func(tele []A, rows []Row[P]) (MCT[T], bool)

// Build asks split for a tree on the leading column and, while split has
// no opinion, drops that column from the telescope and from every row. A
// telescope exhausted without any split yields a Leaf of the surviving rows.
func Build[A, P, T any](tele []A, rows []Row[P], split SplitFunc[A, P, T]) MCT[T] {
	for len(tele) > 0 {
		if tree, ok := split(tele, rows); ok {
			return tree
		}
		tele = tele[1:]
		rows = DropAll(rows)
	}
	return &Leaf[T]{Clauses: Indices(rows)}
}

// Flatten collects the terminal classes of tree breadth-first.
func Flatten[T any](tree MCT[T]) []Terminal[T] {
	var out []Terminal[T]
	queue := []MCT[T]{tree}
	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]
		switch n := head.(type) {
		case *Node[T]:
			queue = append(queue, n.Children...)
		case Terminal[T]:
			out = append(out, n)
		}
	}
	return out
}

// Map rewrites the terminals of tree with f. Interior nodes keep their
// split term and child order.
func Map[T any](tree MCT[T], f func(Terminal[T]) Terminal[T]) MCT[T] {
	switch n := tree.(type) {
	case *Node[T]:
		children := make([]MCT[T], len(n.Children))
		for i, c := range n.Children {
			children[i] = Map(c, f)
		}
		return &Node[T]{Type: n.Type, Children: children}
	case Terminal[T]:
		return f(n)
	}
	return tree
}

// Depth returns the number of Nodes on the longest root-to-terminal path.
func Depth[T any](tree MCT[T]) int {
	type item struct {
		tree  MCT[T]
		depth int
	}
	best := 0
	queue := []item{{tree, 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		n, ok := it.tree.(*Node[T])
		if !ok {
			best = max(best, it.depth)
			continue
		}
		for _, c := range n.Children {
			queue = append(queue, item{c, it.depth + 1})
		}
	}
	return best
}

// Faults returns the Fault terminals of tree in breadth-first order.
func Faults[T any](tree MCT[T]) []*Fault[T] {
	var out []*Fault[T]
	for _, t := range Flatten[T](tree) {
		if f, ok := t.(*Fault[T]); ok {
			out = append(out, f)
		}
	}
	return out
}

// Size returns the number of nodes in tree, terminals included.
func Size[T any](tree MCT[T]) int {
	n, ok := tree.(*Node[T])
	if !ok {
		return 1
	}
	total := 1
	for _, c := range n.Children {
		total += Size[T](c)
	}
	return total
}
