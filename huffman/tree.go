package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// nodeKind tags the two variants of a tree node.
type nodeKind byte

const (
	leafNode nodeKind = iota
	internalNode
)

// nodeID is an index into tree.nodes.  IDs are handed out in insertion
// order, which doubles as the heap's tie breaker.
type nodeID int32

// node is either a leaf {symbol, freq} or an internal node
// {left, right, freq}.  Fields belonging to the other variant are unused.
type node struct {
	kind   nodeKind
	symbol Symbol
	left   nodeID
	right  nodeID
	freq   uint64
}

// tree is a Huffman tree stored as an arena.  Every internal node owns its
// two children, and every node but the root has exactly one parent.
type tree struct {
	nodes []node
	root  nodeID
}

// buildTree constructs the Huffman tree for the given symbols, which must
// already be sorted by symbol.  It returns a tree with no nodes if leaves is
// empty.
func buildTree(leaves []symbolAndFreq) tree {
	numLeaves := len(leaves)
	if numLeaves == 0 {
		return tree{root: -1}
	}

	// Step 1: one leaf per symbol, then a minheap over all of them.

	t := tree{nodes: make([]node, 0, 2*numLeaves-1)}
	h := freqHeap{nodes: &t.nodes, list: make([]nodeID, 0, numLeaves)}
	for _, leaf := range leaves {
		id := t.push(node{kind: leafNode, symbol: leaf.symbol, freq: leaf.freq})
		h.list = append(h.list, id)
	}
	h.Init()

	// Step 2: pop the two lightest nodes, merge them under a new internal
	// node, and push that back until a single root remains.

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeID)
		b := heap.Pop(&h).(nodeID)

		freqSum := t.nodes[a].freq + t.nodes[b].freq
		assert.Assertf(freqSum >= t.nodes[a].freq, "frequency overflow merging nodes %d and %d", a, b)

		id := t.push(node{kind: internalNode, left: a, right: b, freq: freqSum})
		heap.Push(&h, id)
	}

	t.root = heap.Pop(&h).(nodeID)
	return t
}

func (t *tree) push(n node) nodeID {
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

// assignCodes walks the tree from the root and calls fn once per leaf with
// the path taken to reach it: "0" for every left step, "1" for every right
// step.  A root that is itself a leaf is given the code "0".
func (t *tree) assignCodes(fn func(Symbol, Code)) {
	if len(t.nodes) == 0 {
		return
	}

	if root := &t.nodes[t.root]; root.kind == leafNode {
		fn(root.symbol, MakeCode(1, 0))
		return
	}

	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// stackItem.code is the path from the root to stackItem.id.

	type stackItem struct {
		id   nodeID
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, log2ceil(len(t.nodes)))

	processChild := func(child nodeID, code Code) {
		n := &t.nodes[child]
		switch n.kind {
		case leafNode:
			fn(n.symbol, code)
		case internalNode:
			stack = append(stack, stackItem{id: child, code: code})
		}
	}

	stack = append(stack, stackItem{id: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		n := &t.nodes[top.id]
		switch x {
		case 0:
			processChild(n.left, top.code.Append(0))
		case 1:
			processChild(n.right, top.code.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
}

// type freqHeap {{{

type freqHeap struct {
	nodes *[]node
	list  []nodeID
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	nodes := *h.nodes
	if fa, fb := nodes[a].freq, nodes[b].freq; fa != fb {
		return fa < fb
	}
	return a < b
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeID))
}

func (h *freqHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
