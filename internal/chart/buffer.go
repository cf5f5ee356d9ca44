// Package chart holds the rolling price buffer behind the dashboard chart and
// builds the Chart.js configurations drawn by the browser.
package chart

// Sample is the latest value of one asset, in rank order.
type Sample struct {
	ID    string
	Label string
	Value float64
}

// Series is the history of one asset inside the window. A nil entry is a gap:
// the asset was not tracked when that label was appended.
type Series struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Color string     `json:"color"`
	Data  []*float64 `json:"data"`
}

// Buffer is a sliding window of labels with one series per tracked asset.
//
// Series are keyed by asset ID, so a change in rank order never moves a value
// into another asset's line. Every series always has exactly as many entries
// as there are labels. Buffer is not safe for concurrent use.
type Buffer struct {
	capacity int
	tracked  int
	labels   []string
	series   []*Series
	byID     map[string]*Series
	palette  Palette
}

// NewBuffer returns a buffer keeping at most capacity labels and following the
// first tracked samples of every push.
func NewBuffer(capacity, tracked int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	if tracked < 1 {
		tracked = 1
	}
	return &Buffer{
		capacity: capacity,
		tracked:  tracked,
		labels:   make([]string, 0, capacity),
		byID:     make(map[string]*Series),
	}
}

// Push appends label and one value per tracked asset. When the window is full
// the oldest label and the oldest entry of every series are evicted first.
//
// An asset entering the tracked set gets a new series padded with gaps; an
// asset leaving it receives gaps until its last real value slides out of the
// window, at which point its series is dropped.
func (b *Buffer) Push(label string, samples []Sample) {
	if len(b.labels) >= b.capacity {
		b.evict()
	}
	b.labels = append(b.labels, label)
	n := len(b.labels)

	seen := make(map[string]bool, b.tracked)
	for _, s := range samples {
		if len(seen) == b.tracked {
			break
		}
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true

		ser, ok := b.byID[s.ID]
		if !ok {
			ser = &Series{
				ID:    s.ID,
				Color: b.palette.Next(),
				Data:  make([]*float64, n-1, b.capacity),
			}
			b.series = append(b.series, ser)
			b.byID[s.ID] = ser
		}
		ser.Label = s.Label
		v := s.Value
		ser.Data = append(ser.Data, &v)
	}

	for _, ser := range b.series {
		if !seen[ser.ID] {
			ser.Data = append(ser.Data, nil)
		}
	}
	b.retire()
}

// Len is the number of labels in the window.
func (b *Buffer) Len() int { return len(b.labels) }

// Capacity is the maximum number of labels.
func (b *Buffer) Capacity() int { return b.capacity }

// Labels returns a copy of the labels, oldest first.
func (b *Buffer) Labels() []string {
	return append([]string(nil), b.labels...)
}

// Series returns a copy of every live series in creation order.
func (b *Buffer) Series() []Series {
	out := make([]Series, 0, len(b.series))
	for _, s := range b.series {
		cp := *s
		cp.Data = append([]*float64(nil), s.Data...)
		out = append(out, cp)
	}
	return out
}

func (b *Buffer) evict() {
	b.labels = append(b.labels[:0], b.labels[1:]...)
	for _, s := range b.series {
		s.Data = append(s.Data[:0], s.Data[1:]...)
	}
}

func (b *Buffer) retire() {
	live := b.series[:0]
	for _, s := range b.series {
		if hasValue(s.Data) {
			live = append(live, s)
			continue
		}
		delete(b.byID, s.ID)
	}
	for i := len(live); i < len(b.series); i++ {
		b.series[i] = nil
	}
	b.series = live
}

func hasValue(data []*float64) bool {
	for _, v := range data {
		if v != nil {
			return true
		}
	}
	return false
}
