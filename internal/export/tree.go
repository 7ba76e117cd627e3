package export

import "strconv"

// TreeNode is an argument with its ordered children
type TreeNode struct {
	ArgumentRecord
	Children []*TreeNode
}

// Forest is the result of BuildTree
type Forest struct {
	Roots []*TreeNode

	// Promoted lists the IDs of arguments that were lifted to the top level
	// because their parent chain loops back on itself and never reaches a root.
	Promoted []string
}

// Count returns the number of nodes in the forest, descendants included
func (f Forest) Count() int {
	n := 0
	var walk func(nodes []*TreeNode)
	walk = func(nodes []*TreeNode) {
		for _, node := range nodes {
			n++
			walk(node.Children)
		}
	}
	walk(f.Roots)
	return n
}

// Walk visits every node in pre-order together with its counter and depth
func (f Forest) Walk(fn func(node *TreeNode, counter string, depth int)) {
	for i, root := range f.Roots {
		walkNode(root, strconv.Itoa(i+1), 0, fn)
	}
}

func walkNode(node *TreeNode, counter string, depth int, fn func(*TreeNode, string, int)) {
	fn(node, counter, depth)
	for i, child := range node.Children {
		walkNode(child, counter+"."+strconv.Itoa(i+1), depth+1, fn)
	}
}

// BuildTree links a flat, parent-referencing list of arguments into a forest.
//
// Roots and children keep the relative order of the input. A record whose
// parent is missing or is the record itself becomes a root. Records caught in
// a parent cycle are reattached below one promoted root per cycle, so every
// input record appears exactly once in the result.
func BuildTree(records []ArgumentRecord) Forest {
	nodes := make([]*TreeNode, len(records))
	index := make(map[string]*TreeNode, len(records))

	// First pass: allocate every node before resolving any parent
	for i, rec := range records {
		node := &TreeNode{ArgumentRecord: rec, Children: []*TreeNode{}}
		nodes[i] = node
		if _, exists := index[rec.ID]; !exists {
			index[rec.ID] = node
		}
	}

	// Second pass: attach to parents in input order
	parents := make(map[*TreeNode]*TreeNode, len(records))
	var roots []*TreeNode
	for _, node := range nodes {
		parent := resolveParent(node, index)
		if parent == nil {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
		parents[node] = parent
	}

	forest := Forest{Roots: roots}
	if forest.Count() == len(nodes) {
		return forest
	}

	// Third pass: break parent cycles that no root can reach
	reachable := make(map[*TreeNode]bool, len(nodes))
	for _, root := range roots {
		markReachable(root, reachable)
	}
	for _, node := range nodes {
		if reachable[node] {
			continue
		}
		entry := cycleEntry(node, parents)
		detach(entry, parents[entry])
		delete(parents, entry)
		forest.Roots = append(forest.Roots, entry)
		forest.Promoted = append(forest.Promoted, entry.ID)
		markReachable(entry, reachable)
	}

	return forest
}

func resolveParent(node *TreeNode, index map[string]*TreeNode) *TreeNode {
	if node.ParentID == nil || *node.ParentID == "" {
		return nil
	}
	parent, ok := index[*node.ParentID]
	if !ok || parent == node {
		return nil
	}
	return parent
}

// cycleEntry climbs parent links from node until a node repeats; that node
// lies on the cycle the unreachable group hangs from.
func cycleEntry(node *TreeNode, parents map[*TreeNode]*TreeNode) *TreeNode {
	seen := make(map[*TreeNode]bool)
	current := node
	for !seen[current] {
		seen[current] = true
		parent, ok := parents[current]
		if !ok {
			return current
		}
		current = parent
	}
	return current
}

func detach(node, parent *TreeNode) {
	if parent == nil {
		return
	}
	for i, child := range parent.Children {
		if child == node {
			parent.Children = append(parent.Children[:i:i], parent.Children[i+1:]...)
			return
		}
	}
}

func markReachable(node *TreeNode, reachable map[*TreeNode]bool) {
	if reachable[node] {
		return
	}
	reachable[node] = true
	for _, child := range node.Children {
		markReachable(child, reachable)
	}
}
