package pushpull

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// orderedSet keeps items in insertion order with logarithmic removal.
// Each item is stamped with a sequence number; the tree orders the stamps and
// the index finds an item's stamp without scanning.
type orderedSet struct {
	seq   uint64
	index map[any]uint64
	order *treemap.Map // seq -> item
}

func newOrderedSet() *orderedSet {
	return &orderedSet{
		index: map[any]uint64{},
		order: treemap.NewWith(utils.UInt64Comparator),
	}
}

// Add appends item unless it is already present, in which case its position
// is kept.
func (s *orderedSet) Add(item any) {
	if _, ok := s.index[item]; ok {
		return
	}
	s.seq++
	s.index[item] = s.seq
	s.order.Put(s.seq, item)
}

func (s *orderedSet) Remove(item any) {
	seq, ok := s.index[item]
	if !ok {
		return
	}
	delete(s.index, item)
	s.order.Remove(seq)
}

func (s *orderedSet) Contains(item any) bool {
	_, ok := s.index[item]
	return ok
}

// Values returns a snapshot in insertion order, safe to iterate while the set
// is modified.
func (s *orderedSet) Values() []any {
	return s.order.Values()
}

func (s *orderedSet) Size() int {
	return len(s.index)
}

func (s *orderedSet) Empty() bool {
	return len(s.index) == 0
}

func (s *orderedSet) Clear() {
	clear(s.index)
	s.order.Clear()
}
