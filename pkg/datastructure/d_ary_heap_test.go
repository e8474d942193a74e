package datastructure

import "testing"

func TestMinHeapExtractOrder(t *testing.T) {
	testCases := []struct {
		name string
		d    int
	}{
		{name: "binary heap", d: 2},
		{name: "four-ary heap", d: 4},
	}

	ranks := []float64{9, 3, 7, 1, 5, 8, 2, 6, 4, 0}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap[Index](tt.d)
			for i, r := range ranks {
				h.Insert(NewPriorityQueueNode(r, Index(i)))
			}
			if h.Size() != len(ranks) {
				t.Fatalf("Size() = %d, want %d", h.Size(), len(ranks))
			}

			prev := -1.0
			for !h.IsEmpty() {
				node, err := h.ExtractMin()
				if err != nil {
					t.Fatalf("ExtractMin: %v", err)
				}
				if node.GetRank() < prev {
					t.Errorf("extracted rank %v after %v", node.GetRank(), prev)
				}
				if node.GetPos() != -1 {
					t.Errorf("extracted node keeps position %d", node.GetPos())
				}
				prev = node.GetRank()
			}
		})
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[Index]()

	nodes := make([]*PriorityQueueNode[Index], 5)
	for i := range nodes {
		nodes[i] = NewPriorityQueueNode(float64(10+i), Index(i))
		h.Insert(nodes[i])
	}

	if err := h.DecreaseKey(nodes[4], 1.0); err != nil {
		t.Fatalf("DecreaseKey: %v", err)
	}
	min, err := h.GetMin()
	if err != nil {
		t.Fatalf("GetMin: %v", err)
	}
	if min.GetItem() != 4 {
		t.Errorf("min item = %d, want 4", min.GetItem())
	}

	// increasing a rank is rejected
	if err := h.DecreaseKey(nodes[0], 100.0); err == nil {
		t.Error("expected error when increasing a rank")
	}
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewBinaryHeap[Index]()
	if !h.IsEmpty() {
		t.Error("new heap is not empty")
	}
	if _, err := h.ExtractMin(); err == nil {
		t.Error("expected error extracting from empty heap")
	}
	if _, err := h.GetMin(); err == nil {
		t.Error("expected error reading min of empty heap")
	}
	if h.GetMinrank() <= 0 {
		t.Errorf("empty heap min rank = %v, want a sentinel above any real rank", h.GetMinrank())
	}
}
