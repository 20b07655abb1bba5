package orderbook

import (
	"github.com/huandu/skiplist"

	"bookengine/domain"
)

// priceComparable orders domain.Price keys ascending or descending for the
// skip list, the same Comparable contract huandu/skiplist.New expects
// (seen wired the same way in the retrieved pack's skiplist-backed order
// book, orderbook_v2.go's priceKeyAsc/priceKeyDesc).
type priceComparable struct{ descending bool }

func (c priceComparable) Compare(lhs, rhs interface{}) int {
	l, r := lhs.(domain.Price), rhs.(domain.Price)
	switch {
	case l == r:
		return 0
	case (l < r) != c.descending:
		return -1
	default:
		return 1
	}
}

func (c priceComparable) CalcScore(key interface{}) float64 {
	p := float64(key.(domain.Price))
	if c.descending {
		return -p
	}
	return p
}

// SkipListLadder backs SideLadder with github.com/huandu/skiplist, a
// skip-list substituted behind the same SideLadder contract as the other
// backings. O(log n) average insert/remove/lookup, O(1) top-of-book via
// Front().
type SkipListLadder struct {
	list *skiplist.SkipList
}

// NewSkipListLadder constructs a skip-list-backed ladder. isBid orders the
// list descending (best bid = highest price = Front()); asks order
// ascending (best ask = lowest price = Front()).
func NewSkipListLadder(isBid bool) *SkipListLadder {
	return &SkipListLadder{list: skiplist.New(priceComparable{descending: isBid})}
}

func (l *SkipListLadder) FindOrInsert(store *PriceLevelStore, price domain.Price, side domain.Side) (Handle, bool) {
	if elem := l.list.Get(price); elem != nil {
		return elem.Value.(Handle), false
	}
	h := store.Insert(PriceLevel{Price: price, Side: side})
	l.list.Set(price, h)
	return h, true
}

func (l *SkipListLadder) Remove(handle Handle) {
	for elem := l.list.Front(); elem != nil; elem = elem.Next() {
		if elem.Value.(Handle) == handle {
			l.list.Remove(elem.Key())
			return
		}
	}
}

func (l *SkipListLadder) Best() (domain.Price, Handle, bool) {
	front := l.list.Front()
	if front == nil {
		return 0, Handle{}, false
	}
	return front.Key().(domain.Price), front.Value.(Handle), true
}

func (l *SkipListLadder) Len() int {
	return l.list.Len()
}
