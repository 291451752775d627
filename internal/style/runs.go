package style

import "sort"

// Entry is one modifier anchored at a grapheme index.
type Entry struct {
	At       int
	Modifier Modifier
}

// Runs is a sparse, sorted list of modifiers keyed by grapheme index.
// The zero value is empty and ready to use.
type Runs struct {
	entries []Entry
}

// NewRuns creates runs from entries in any order. Entries at the same index
// are merged in the order given.
func NewRuns(entries ...Entry) *Runs {
	r := &Runs{}
	for _, e := range entries {
		r.SetModifier(e.At, e.Modifier)
	}
	return r
}

// Len returns the number of entries.
func (r *Runs) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns a copy of the entries in index order.
func (r *Runs) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Clone returns an independent copy.
func (r *Runs) Clone() *Runs {
	return &Runs{entries: r.Entries()}
}

// search returns the position of the first entry with At >= index.
func (r *Runs) search(index int) int {
	return sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].At >= index
	})
}

// ResolveAt returns the style of the grapheme at index.
func (r *Runs) ResolveAt(index int) Style {
	var s Style
	if r == nil {
		return s
	}
	for _, e := range r.entries {
		if e.At > index {
			break
		}
		s = s.Apply(e.Modifier)
	}
	return s
}

// SetModifier adds m at index, merging with any modifier already there.
func (r *Runs) SetModifier(index int, m Modifier) {
	if index < 0 || m.IsEmpty() {
		return
	}
	i := r.search(index)
	if i < len(r.entries) && r.entries[i].At == index {
		r.entries[i].Modifier = r.entries[i].Modifier.Merge(m)
		return
	}
	r.entries = append(r.entries, Entry{})
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = Entry{At: index, Modifier: m}
}

// SplitAt removes every entry at or after index and returns them as new
// runs rebased to start at zero. The returned runs begin with the style in
// effect at index so the tail renders exactly as before.
func (r *Runs) SplitAt(index int) *Runs {
	tail := &Runs{}
	if index < 0 {
		index = 0
	}
	base := r.ResolveAt(index)
	i := r.search(index)

	var moved []Entry
	if i < len(r.entries) {
		moved = append(moved, r.entries[i:]...)
		r.entries = r.entries[:i]
	}

	if !base.Equal(Style{}) {
		tail.entries = append(tail.entries, Entry{At: 0, Modifier: base.Explicit()})
	}
	for _, e := range moved {
		if e.At == index {
			continue // already folded into base
		}
		tail.entries = append(tail.entries, Entry{At: e.At - index, Modifier: e.Modifier})
	}
	return tail
}

// Join appends tail so that its index zero lands at offset. Styles of the
// graphemes before offset are unchanged and the tail renders as it did alone.
func (r *Runs) Join(tail *Runs, offset int) {
	if offset < 0 {
		offset = 0
	}
	// Entries at or past offset would leak into the tail.
	r.entries = r.entries[:r.search(offset)]

	tailBase := tail.ResolveAt(0)
	if offset == 0 {
		r.entries = r.entries[:0]
	} else if !r.ResolveAt(offset - 1).Equal(tailBase) {
		r.entries = append(r.entries, Entry{At: offset, Modifier: tailBase.Explicit()})
	}
	for _, e := range tail.Entries() {
		if e.At == 0 {
			if offset == 0 {
				r.entries = append(r.entries, e)
			}
			continue
		}
		r.entries = append(r.entries, Entry{At: e.At + offset, Modifier: e.Modifier})
	}
}

// UpdateDueToGraphemeInsertion shifts entries at or after index by count.
func (r *Runs) UpdateDueToGraphemeInsertion(index, count int) {
	if count <= 0 {
		return
	}
	for i := r.search(index); i < len(r.entries); i++ {
		r.entries[i].At += count
	}
}

// UpdateDueToGraphemeDeletion removes count graphemes starting at index.
// Modifiers inside the deleted span are folded into one entry at index so
// the graphemes after the span keep their style.
func (r *Runs) UpdateDueToGraphemeDeletion(index, count int) {
	if count <= 0 {
		return
	}
	end := index + count
	out := r.entries[:0:0]
	var folded Modifier
	haveFolded := false
	for _, e := range r.entries {
		switch {
		case e.At < index:
			out = append(out, e)
		case e.At <= end:
			folded = folded.Merge(e.Modifier)
			haveFolded = true
		default:
			if haveFolded {
				out = append(out, Entry{At: index, Modifier: folded})
				haveFolded = false
			}
			out = append(out, Entry{At: e.At - count, Modifier: e.Modifier})
		}
	}
	if haveFolded {
		out = append(out, Entry{At: index, Modifier: folded})
	}
	r.entries = out
}

// Truncate drops entries at or beyond length.
func (r *Runs) Truncate(length int) {
	r.entries = r.entries[:r.search(length)]
}
