package registry

import "github.com/opengavel/roomserver/internal/v1/types"

// ageEntry is one room's position in the time-ordered secondary index.
// The order key is (nanos, sequence): §9's Open Question notes that the
// original stores creation time at second precision, so same-second
// collisions need a tiebreaker for a deterministic eviction victim. nanos
// is derived from the room's creation second (the externally-visible
// ordering key spec.md defines), and sequence is a monotonically
// increasing counter assigned at insertion, breaking ties by insertion
// order exactly as §4.1 prescribes.
type ageEntry struct {
	code     types.RoomCode
	nanos    int64
	sequence uint64
	index    int // maintained by ageHeap for O(log n) Remove
}

// ageHeap is a container/heap min-heap ordered by (nanos, sequence),
// giving the registry O(log n) insertion, removal, and oldest-peek.
type ageHeap []*ageEntry

func (h ageHeap) Len() int { return len(h) }

func (h ageHeap) Less(i, j int) bool {
	if h[i].nanos != h[j].nanos {
		return h[i].nanos < h[j].nanos
	}
	return h[i].sequence < h[j].sequence
}

func (h ageHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *ageHeap) Push(x any) {
	entry := x.(*ageEntry)
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *ageHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}
