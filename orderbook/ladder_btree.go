package orderbook

import (
	"github.com/google/btree"

	"bookengine/domain"
)

const btreeDegree = 32

// priceLevelItem wraps a (price, handle) pair for btree.Item, the same
// wrapper shape the retrieved pack's B-tree order book uses
// (orderbook_btree.go's priceLevelItem).
type priceLevelItem struct {
	price  domain.Price
	handle Handle
}

func (a *priceLevelItem) Less(b btree.Item) bool {
	return a.price < b.(*priceLevelItem).price
}

// BTreeLadder backs SideLadder with github.com/google/btree, a fourth
// point of comparison for the benchmark harness alongside the array,
// red-black-tree, and skip-list backings. O(log n) operations, efficient
// range iteration via Ascend/Descend.
type BTreeLadder struct {
	tree  *btree.BTree
	isBid bool
}

// NewBTreeLadder constructs a B-tree-backed ladder for one side. isBid
// selects whether Best reads Max (bids, highest price) or Min (asks,
// lowest price).
func NewBTreeLadder(isBid bool) *BTreeLadder {
	return &BTreeLadder{tree: btree.New(btreeDegree), isBid: isBid}
}

func (l *BTreeLadder) FindOrInsert(store *PriceLevelStore, price domain.Price, side domain.Side) (Handle, bool) {
	if item := l.tree.Get(&priceLevelItem{price: price}); item != nil {
		return item.(*priceLevelItem).handle, false
	}
	h := store.Insert(PriceLevel{Price: price, Side: side})
	l.tree.ReplaceOrInsert(&priceLevelItem{price: price, handle: h})
	return h, true
}

func (l *BTreeLadder) Remove(handle Handle) {
	var target *priceLevelItem
	l.tree.Ascend(func(item btree.Item) bool {
		pli := item.(*priceLevelItem)
		if pli.handle == handle {
			target = pli
			return false
		}
		return true
	})
	if target != nil {
		l.tree.Delete(target)
	}
}

func (l *BTreeLadder) Best() (domain.Price, Handle, bool) {
	var item btree.Item
	if l.isBid {
		item = l.tree.Max()
	} else {
		item = l.tree.Min()
	}
	if item == nil {
		return 0, Handle{}, false
	}
	pli := item.(*priceLevelItem)
	return pli.price, pli.handle, true
}

func (l *BTreeLadder) Len() int {
	return l.tree.Len()
}
