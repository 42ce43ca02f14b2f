package domain

// DecompositionTree is the full recursive breakdown of an element into its
// recipe components. Nodes live in an arena indexed by insertion order; the
// root is index 0. Every non-leaf node has exactly two children and every
// leaf is a primitive element.
type DecompositionTree struct {
	nodes []treeNode
}

type treeNode struct {
	handle   ElementHandle
	children [2]int // indexes into the arena; -1 when the node is a leaf
}

// NewDecompositionTree creates a single-node tree rooted at root.
func NewDecompositionTree(root ElementHandle) *DecompositionTree {
	return &DecompositionTree{
		nodes: []treeNode{{handle: root, children: [2]int{-1, -1}}},
	}
}

// Root returns the element the tree decomposes.
func (t *DecompositionTree) Root() ElementHandle {
	return t.nodes[0].handle
}

// Len returns the total node count, root included.
func (t *DecompositionTree) Len() int {
	return len(t.nodes)
}

// Node returns the element at arena index idx.
func (t *DecompositionTree) Node(idx int) ElementHandle {
	return t.nodes[idx].handle
}

// AppendChildren attaches the two recipe components of the node at parent and
// returns the arena indexes of the new children.
func (t *DecompositionTree) AppendChildren(parent int, dec Decomposition) (int, int) {
	a := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{handle: dec.A, children: [2]int{-1, -1}})
	b := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{handle: dec.B, children: [2]int{-1, -1}})
	t.nodes[parent].children = [2]int{a, b}
	return a, b
}

// IsLeaf reports whether the node at idx has no children.
func (t *DecompositionTree) IsLeaf(idx int) bool {
	return t.nodes[idx].children[0] == -1
}

// Leaves counts each leaf element's occurrences across the tree.
func (t *DecompositionTree) Leaves() map[ElementHandle]int {
	out := make(map[ElementHandle]int)
	for i := range t.nodes {
		if t.IsLeaf(i) {
			out[t.nodes[i].handle]++
		}
	}
	return out
}
