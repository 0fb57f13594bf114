package ranking

// Tree is a binary search tree keyed by a float64 score. It does no
// rebalancing and keeps duplicates: keys equal to a node's key descend into
// the left subtree. Watchlists are tens of symbols, so worst-case O(n) depth
// is acceptable and keeps tie behavior predictable.
type Tree[T any] struct {
	root *treeNode[T]
	size int
}

type treeNode[T any] struct {
	key     float64
	payload T
	left    *treeNode[T]
	right   *treeNode[T]
}

func NewTree[T any]() *Tree[T] {
	return &Tree[T]{}
}

// Insert adds a node. Strictly greater keys go right, everything else left.
func (t *Tree[T]) Insert(key float64, payload T) {
	t.root = insertNode(t.root, key, payload)
	t.size++
}

func insertNode[T any](node *treeNode[T], key float64, payload T) *treeNode[T] {
	if node == nil {
		return &treeNode[T]{key: key, payload: payload}
	}
	if key > node.key {
		node.right = insertNode(node.right, key, payload)
	} else {
		node.left = insertNode(node.left, key, payload)
	}
	return node
}

func (t *Tree[T]) Len() int {
	return t.size
}

// DescendingEntries returns every payload in non-increasing key order,
// via reverse inorder traversal (right, node, left).
func (t *Tree[T]) DescendingEntries() []T {
	out := make([]T, 0, t.size)
	reverseInorder(t.root, &out)
	return out
}

func reverseInorder[T any](node *treeNode[T], out *[]T) {
	if node == nil {
		return
	}
	reverseInorder(node.right, out)
	*out = append(*out, node.payload)
	reverseInorder(node.left, out)
}

// CountBelow counts nodes with key strictly less than threshold. Duplicates
// can sit on either side of an equal key, so this walks the whole tree.
func (t *Tree[T]) CountBelow(threshold float64) int {
	return countBelow(t.root, threshold)
}

func countBelow[T any](node *treeNode[T], threshold float64) int {
	if node == nil {
		return 0
	}
	count := 0
	if node.key < threshold {
		count = 1
	}
	return count + countBelow(node.left, threshold) + countBelow(node.right, threshold)
}

// Max returns the rightmost node's key and payload. The third return is
// false when the tree is empty.
func (t *Tree[T]) Max() (float64, T, bool) {
	if t.root == nil {
		var zero T
		return 0, zero, false
	}
	node := t.root
	for node.right != nil {
		node = node.right
	}
	return node.key, node.payload, true
}
