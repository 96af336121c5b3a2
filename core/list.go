package core

// RefList is a fixed-capacity ordered sequence of references to caller-owned
// records. The backing array is allocated once at construction and never
// grows; mutation past capacity is silently dropped.
//
// RefList tracks addresses only. It never copies or releases the referenced
// records, so the caller must keep each record's storage alive for as long
// as its reference is held here.
type RefList[T any] struct {
	refs  []*T
	count int
}

// NewRefList returns an empty list with room for capacity references.
func NewRefList[T any](capacity int) *RefList[T] {
	return &RefList[T]{refs: make([]*T, capacity)}
}

// Add appends ref at the end if the list has room, otherwise does nothing.
// It returns the resulting count either way; on a full list the returned
// count equals capacity whether or not the append happened, so callers that
// care must check IsFull first.
func (l *RefList[T]) Add(ref *T) int {
	if l.count < len(l.refs) {
		l.refs[l.count] = ref
		l.count++
	}
	return l.count
}

// InsertAt shifts every entry at or after index one slot toward the end and
// writes ref at index. A full list drops the insert silently.
func (l *RefList[T]) InsertAt(index int, ref *T) {
	if l.count < len(l.refs) {
		for i := l.count; i > index; i-- {
			l.refs[i] = l.refs[i-1]
		}
		l.refs[index] = ref
		l.count++
	}
}

// RemoveAt deletes the entry at index, shifting later entries toward the
// front. The count only changes when index < Count(), so removal at the
// one-past-end position is a no-op.
func (l *RefList[T]) RemoveAt(index int) {
	for i := index; i < l.count-1; i++ {
		l.refs[i] = l.refs[i+1]
	}
	if index < l.count {
		l.count--
	}
}

// Swap exchanges the entries at i and j. No bounds checking.
func (l *RefList[T]) Swap(i, j int) {
	l.refs[i], l.refs[j] = l.refs[j], l.refs[i]
}

// At returns the entry at index. No bounds checking.
func (l *RefList[T]) At(index int) *T {
	return l.refs[index]
}

// Set overwrites the entry at index. No bounds checking.
func (l *RefList[T]) Set(index int, ref *T) {
	l.refs[index] = ref
}

// Count returns the number of entries currently held.
func (l *RefList[T]) Count() int {
	return l.count
}

// IsFull reports whether the list has reached capacity.
func (l *RefList[T]) IsFull() bool {
	return l.count == len(l.refs)
}
