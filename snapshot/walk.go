package snapshot

// DefaultMaxDepth is the traversal ceiling applied when a caller does
// not set one. Twenty levels is deeper than almost any hand-written
// page; generated DOM beyond that contributes noise, not structure.
const DefaultMaxDepth = 20

// Visitor is invoked once per visited node. depth is 0 at the root.
type Visitor func(n *Node, depth int)

// Walk traverses the tree in pre-order (parent before children, children
// in document order) using an explicit stack, visiting every node whose
// depth is at most maxDepth. maxDepth <= 0 selects DefaultMaxDepth.
//
// The return value reports whether any branch was cut off at the ceiling.
// The bound also guarantees termination on malformed input that links a
// node back into its own ancestry. A nil root visits nothing.
func Walk(root *Node, maxDepth int, visit Visitor) (truncated bool) {
	if root == nil {
		return false
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	type frame struct {
		node  *Node
		depth int
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{root, 0})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node == nil {
			continue
		}
		visit(f.node, f.depth)

		if f.depth >= maxDepth {
			if len(f.node.Children) > 0 {
				truncated = true
			}
			continue
		}
		// Push in reverse so the first child is popped first.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}
	return truncated
}

// Count returns the number of nodes Walk would visit under maxDepth.
func Count(root *Node, maxDepth int) int {
	total := 0
	Walk(root, maxDepth, func(*Node, int) { total++ })
	return total
}
