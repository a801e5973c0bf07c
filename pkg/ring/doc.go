// Package ring provides a fixed-capacity ring buffer that never grows and
// never blocks.
//
// A Buffer is created once with a capacity and allocates its storage exactly
// once. Push always succeeds: when the buffer is full the oldest value is
// finalized and overwritten. Values leave the buffer through two consuming
// paths:
//
//   - Next (and All, its range-over-func form) pulls one value at a time in
//     FIFO order.
//   - Fill and FastFill drain as many values as the spare capacity of a
//     caller-owned slice allows. The slice is never grown, so a consumer that
//     reuses one preallocated sink drains without allocating.
//
// Fill moves values one by one, FastFill copies the occupied region as at
// most two contiguous ranges. Both produce identical results.
//
// Clone and CloneFunc duplicate a buffer with independent storage. A clone
// keeps the drop hook and logger but starts without an observer. A Buffer
// must not be copied by value; go vet reports such copies.
//
// Release ends the life of a buffer: every value still held is finalized
// once and the storage is dropped.
//
// A Buffer is a plain sequential data structure. It holds no locks and is
// not safe for concurrent use; callers sharing a buffer between goroutines
// must serialize every call themselves, for example with a single
// sync.Mutex guarding all operations.
//
// Example usage:
//
//	b := ring.New[int](3)
//	b.Push(1)
//	b.Push(2)
//	b.Push(3)
//	b.Push(4) // overwrites 1
//
//	sink := make([]int, 0, 8)
//	b.FastFill(&sink) // sink == [2 3 4]
package ring
