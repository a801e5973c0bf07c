package ring

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fillFunc func(b *Buffer[int], sink *[]int) int

var fillPaths = []struct {
	name string
	fill fillFunc
}{
	{name: "fill", fill: (*Buffer[int]).Fill},
	{name: "fast_fill", fill: (*Buffer[int]).FastFill},
}

func TestSpans(t *testing.T) {
	cases := []struct {
		name   string
		w, r   int
		full   bool
		expect [2]span
	}{
		{name: "empty", w: 2, r: 2, expect: [2]span{}},
		{name: "contiguous", w: 3, r: 1, expect: [2]span{{1, 3}, {}}},
		{name: "full at zero", w: 0, r: 0, full: true, expect: [2]span{{0, 4}, {0, 0}}},
		{name: "full wrapped", w: 2, r: 2, full: true, expect: [2]span{{2, 4}, {0, 2}}},
		{name: "wrapped", w: 1, r: 3, expect: [2]span{{3, 4}, {0, 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New[int](4)
			b.w, b.r, b.full = tc.w, tc.r, tc.full
			require.Equal(t, tc.expect, b.spans())

			total := 0
			for _, s := range b.spans() {
				total += s.len()
			}
			require.Equal(t, b.Len(), total)
		})
	}
}

func TestNext_FIFO(t *testing.T) {
	b := New[int](3)
	b.Push(1)
	b.Push(2)
	b.Push(3)
	require.Equal(t, 3, b.Remaining())

	for want := 1; want <= 3; want++ {
		v, ok := b.Next()
		require.True(t, ok)
		require.Equal(t, want, v)
		require.Equal(t, 3-want, b.Remaining())
		require.False(t, b.Full())
	}
	_, ok := b.Next()
	require.False(t, ok)
}

func TestNext_ClearsVacatedSlot(t *testing.T) {
	b := New[*int](3)
	one, two := 1, 2
	b.Push(&one)
	b.Push(&two)

	v, ok := b.Next()
	require.True(t, ok)
	require.Same(t, &one, v)
	require.Nil(t, b.items[0])
}

func TestAll_ConsumesBuffer(t *testing.T) {
	b := New[int](3)
	b.Push(1)
	b.Push(2)
	b.Push(3)

	sum := 0
	for v := range b.All() {
		sum += v
	}
	require.Equal(t, 6, sum)
	require.Equal(t, 0, b.Len())
}

func TestAll_BreakKeepsTheRest(t *testing.T) {
	b := New[int](4)
	for i := 1; i <= 4; i++ {
		b.Push(i)
	}

	for v := range b.All() {
		if v == 2 {
			break
		}
	}
	require.Equal(t, 2, b.Len())
	v, ok := b.Next()
	require.True(t, ok)
	require.Equal(t, 3, v)
}

func TestFill_Scenarios(t *testing.T) {
	for _, path := range fillPaths {
		t.Run(path.name, func(t *testing.T) {
			t.Run("single element", func(t *testing.T) {
				b := New[int](8)
				b.Push(10)
				sink := make([]int, 0, 8)
				require.Equal(t, 1, path.fill(b, &sink))
				require.Equal(t, []int{10}, sink)
				require.Equal(t, 0, b.Len())
			})

			t.Run("sink without room", func(t *testing.T) {
				b := New[int](8)
				b.Push(10)
				sink := make([]int, 0)
				require.Equal(t, 0, path.fill(b, &sink))
				require.Empty(t, sink)
				require.Equal(t, 0, cap(sink))
				require.Equal(t, 1, b.Len())
			})

			t.Run("empty buffer", func(t *testing.T) {
				b := New[int](4)
				sink := make([]int, 0, 4)
				require.Equal(t, 0, path.fill(b, &sink))
				require.Empty(t, sink)
			})

			t.Run("nil sink", func(t *testing.T) {
				b := New[int](4)
				b.Push(1)
				require.Equal(t, 0, path.fill(b, nil))
				require.Equal(t, 1, b.Len())
			})

			t.Run("more room than values", func(t *testing.T) {
				b := New[int](2)
				b.Push(1)
				b.Push(2)
				b.Push(3)
				sink := make([]int, 0, 4)
				require.Equal(t, 2, path.fill(b, &sink))
				require.Equal(t, []int{2, 3}, sink)
				require.Equal(t, 0, b.Len())

				require.Equal(t, 1, b.Push(4))
				require.Equal(t, 1, b.Len())
			})

			t.Run("partial then wrapped", func(t *testing.T) {
				b := New[int](4)
				for _, v := range []int{1, 2, 3, 4} {
					b.Push(v)
				}
				sink := make([]int, 0, 1)
				require.Equal(t, 1, path.fill(b, &sink))
				require.Equal(t, []int{1}, sink)

				b.Push(5)
				sink = make([]int, 0, 4)
				require.Equal(t, 4, path.fill(b, &sink))
				require.Equal(t, []int{2, 3, 4, 5}, sink)
			})

			t.Run("size one", func(t *testing.T) {
				b := New[int](1)
				b.Push(1)
				sink := make([]int, 0, 1)
				path.fill(b, &sink)
				require.Equal(t, []int{1}, sink)

				b.Push(2)
				sink = make([]int, 0, 1)
				path.fill(b, &sink)
				require.Equal(t, []int{2}, sink)
			})

			t.Run("appends after existing values", func(t *testing.T) {
				b := New[int](5)
				for i := 1; i <= 5; i++ {
					b.Push(i)
				}
				sink := make([]int, 0, 3)
				path.fill(b, &sink)
				require.Equal(t, []int{1, 2, 3}, sink)
				require.Equal(t, 2, b.Len())

				b.Push(6)
				b.Push(7)
				b.Push(8)
				sink = append(sink[:0], sink[1:]...)
				require.Equal(t, 1, path.fill(b, &sink))
				require.Equal(t, []int{2, 3, 4}, sink)
				require.Equal(t, 4, b.Len())
			})
		})
	}
}

func TestFill_NeverGrowsSink(t *testing.T) {
	for _, path := range fillPaths {
		t.Run(path.name, func(t *testing.T) {
			b := New[int](16)
			for i := range 16 {
				b.Push(i)
			}
			sink := make([]int, 2, 7)
			backing := &sink[:cap(sink)][0]

			moved := path.fill(b, &sink)
			require.Equal(t, 5, moved)
			require.Len(t, sink, 7)
			require.Equal(t, 7, cap(sink))
			require.Same(t, backing, &sink[0])
			require.Equal(t, []int{0, 0, 0, 1, 2, 3, 4}, sink)
			require.Equal(t, 11, b.Len())
		})
	}
}

func TestFastFill_ClearsDrainedSlots(t *testing.T) {
	b := New[*int](4)
	values := []int{1, 2, 3, 4, 5, 6}
	for i := range values {
		b.Push(&values[i])
	}
	sink := make([]*int, 0, 3)
	require.Equal(t, 3, b.FastFill(&sink))

	live := map[int]bool{}
	for _, s := range b.spans() {
		for i := s.start; i < s.end; i++ {
			live[i] = true
		}
	}
	for i, item := range b.items {
		if !live[i] {
			assert.Nil(t, item, "slot %d", i)
		}
	}
}

// step is one round of a randomized script: push every value, then drain
// into a sink with room for drain values.
type step struct {
	push  []int
	drain int
}

func randomScript(rng *rand.Rand) []step {
	steps := make([]step, rng.IntN(100))
	for i := range steps {
		push := make([]int, rng.IntN(100))
		for j := range push {
			push[j] = rng.IntN(1000)
		}
		steps[i] = step{push: push, drain: rng.IntN(100)}
	}
	return steps
}

func TestFill_TracksLen(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for _, path := range fillPaths {
		t.Run(path.name, func(t *testing.T) {
			for range 50 {
				size := 1 + rng.IntN(99)
				b := New[int](size)
				counted := 0
				for _, st := range randomScript(rng) {
					for _, v := range st.push {
						b.Push(v)
						counted = min(size, counted+1)
						require.Equal(t, counted, b.Len())
					}
					sink := make([]int, 0, st.drain)
					removed := path.fill(b, &sink)
					require.Equal(t, min(counted, st.drain), removed)
					counted -= removed
					require.Equal(t, counted, b.Len())
				}
			}
		})
	}
}

func TestFill_TracksValues(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for _, path := range fillPaths {
		t.Run(path.name, func(t *testing.T) {
			for range 50 {
				size := 1 + rng.IntN(99)
				b := New[int](size)
				var model []int
				for _, st := range randomScript(rng) {
					for _, v := range st.push {
						b.Push(v)
						model = append(model, v)
					}
					if len(model) > size {
						model = model[len(model)-size:]
					}

					n := min(st.drain, len(model))
					want := append([]int(nil), model[:n]...)
					model = model[n:]

					sink := make([]int, 0, st.drain)
					path.fill(b, &sink)
					if diff := cmp.Diff(want, sink, cmpopts.EquateEmpty()); diff != "" {
						t.Fatalf("drain mismatch (-want +got):\n%s", diff)
					}
				}
			}
		})
	}
}

func TestFastFill_MatchesFill(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for range 100 {
		size := 1 + rng.IntN(99)
		a := New[int](size)
		b := New[int](size)
		for _, st := range randomScript(rng) {
			for _, v := range st.push {
				require.Equal(t, a.Push(v), b.Push(v))
			}
			sinkA := make([]int, 0, st.drain)
			sinkB := make([]int, 0, st.drain)
			require.Equal(t, a.Fill(&sinkA), b.FastFill(&sinkB))
			if diff := cmp.Diff(sinkA, sinkB); diff != "" {
				t.Fatalf("fill paths diverged (-fill +fast):\n%s", diff)
			}
			require.Equal(t, a.Len(), b.Len())
			require.Equal(t, a.GoString(), b.GoString())
		}
	}
}
