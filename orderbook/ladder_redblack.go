package orderbook

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"bookengine/domain"
)

// RedBlackLadder backs SideLadder with an ordered-map dependency
// (github.com/emirpasic/gods/v2/trees/redblacktree).
// Where the array ladder trades a rare O(k) deep insert for O(1)
// top-of-book, this trades O(1) top-of-book for O(log n) on every
// operation — a reasonable substitution if workloads shift to
// heavy-tail updates deep in the book.
type RedBlackLadder struct {
	tree  *rbt.Tree[domain.Price, Handle]
	isBid bool
}

// NewRedBlackLadder constructs a tree-backed ladder for one side. isBid
// orders the tree so the best price is always the extreme the side reads:
// descending for bids (best = smallest key = highest price), ascending for
// asks (best = smallest key = lowest price).
func NewRedBlackLadder(isBid bool) *RedBlackLadder {
	var cmp func(a, b domain.Price) int
	if isBid {
		cmp = func(a, b domain.Price) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			default:
				return 0
			}
		}
	} else {
		cmp = func(a, b domain.Price) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	}
	return &RedBlackLadder{tree: rbt.NewWith[domain.Price, Handle](cmp), isBid: isBid}
}

func (l *RedBlackLadder) FindOrInsert(store *PriceLevelStore, price domain.Price, side domain.Side) (Handle, bool) {
	if h, found := l.tree.Get(price); found {
		return h, false
	}
	h := store.Insert(PriceLevel{Price: price, Side: side})
	l.tree.Put(price, h)
	return h, true
}

func (l *RedBlackLadder) Remove(handle Handle) {
	it := l.tree.Iterator()
	for it.Next() {
		if it.Value() == handle {
			l.tree.Remove(it.Key())
			return
		}
	}
}

func (l *RedBlackLadder) Best() (domain.Price, Handle, bool) {
	node := l.tree.Left()
	if node == nil {
		return 0, Handle{}, false
	}
	return node.Key, node.Value, true
}

func (l *RedBlackLadder) Len() int {
	return l.tree.Size()
}
