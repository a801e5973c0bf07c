package ring

import (
	"fmt"
	"strings"
)

// String renders the occupied values oldest to newest, for example
// "CircularBuffer(1, 2, 3)" or "CircularBuffer(<empty>)".
func (b *Buffer[T]) String() string {
	return b.render("%v")
}

// GoString renders values with %#v followed by the raw cursor state.
func (b *Buffer[T]) GoString() string {
	return fmt.Sprintf("%s w: %d, r: %d, size: %d, full: %t", b.render("%#v"), b.w, b.r, b.size, b.full)
}

func (b *Buffer[T]) render(verb string) string {
	if b.Len() == 0 {
		return "CircularBuffer(<empty>)"
	}
	var sb strings.Builder
	sb.WriteString("CircularBuffer(")
	first := true
	for _, s := range b.spans() {
		for _, value := range b.items[s.start:s.end] {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&sb, verb, value)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
