package interval

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// tenBlocks returns {[0,9], [20,29], ..., [180,189]}.
func tenBlocks() *Set[int64] {
	s := set()
	for i := int64(0); i < 10; i++ {
		s.Union(iv(i*20, i*20+9))
	}
	return s
}

func TestImpose(t *testing.T) {
	cases := map[string]struct {
		set   *Set[int64]
		query Interval[int64]
		want  Interval[int64]
	}{
		"EndTouchesRemoved": {
			set:   set(iv(40, 60)),
			query: iv(30, 40),
			want:  iv(30, 39),
		},
		"AcrossSeveralGaps": {
			set:   tenBlocks(),
			query: iv(45, 95),
			want:  iv(20, 45),
		},
		"FullyRemoved": {
			set:   set(iv(10, 100)),
			query: iv(50, 60),
			want:  Empty[int64](),
		},
		"StartsInsideRemoved": {
			set:   set(iv(0, 3)),
			query: iv(0, 5),
			want:  iv(0, 1),
		},
		"AfterEverything": {
			set:   tenBlocks(),
			query: iv(200, 209),
			want:  iv(100, 109),
		},
		"BeforeEverything": {
			set:   set(iv(100, 200)),
			query: iv(-50, 50),
			want:  iv(-50, 50),
		},
		"EmptySet": {
			set:   set(),
			query: iv(3, 8),
			want:  iv(3, 8),
		},
		"EmptyQuery": {
			set:   tenBlocks(),
			query: Empty[int64](),
			want:  Empty[int64](),
		},
		"Negative": {
			set:   set(iv(-20, -11)),
			query: iv(-30, 0),
			want:  iv(-30, -10),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.set.Impose(tc.query)
			assert.True(t, tc.want.Equal(got), "Impose(%s) over %s = %s, want %s", tc.query, tc.set, got, tc.want)
		})
	}
}

func TestImposeDisjointKeepsLength(t *testing.T) {
	s := tenBlocks()
	for i := int64(0); i < 10; i++ {
		r := iv(i*20+10, i*20+19)
		got := s.Impose(r)
		assert.Equal(t, r.Len(), got.Len(), "gap %s", r)
		assert.Equal(t, i*10, got.Start)
	}
}

func TestImposeFullRemovalIsEmpty(t *testing.T) {
	s := tenBlocks()
	for i := int64(9); i >= 0; i-- {
		assert.True(t, s.Impose(iv(i*20+2, i*20+7)).IsEmpty())
	}
}

func TestImposeNeverGrows(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := randomSet(rng, 80)
	for range 500 {
		start := rng.Int64N(4000)
		r := iv(start, start+rng.Int64N(200))
		got := s.Impose(r)
		if got.Len() > r.Len() {
			t.Fatalf("Impose(%s) = %s grew the range", r, got)
		}
	}
}

func TestImposeCacheTransparency(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 99))
	s := randomSet(rng, 100)

	queries := make([]Interval[int64], 0, 400)
	for range 200 {
		start := rng.Int64N(5000)
		queries = append(queries, iv(start, start+rng.Int64N(300)))
	}
	// Ascending runs exercise the cursor, the shuffled tail exercises the
	// fallback after regressions.
	for i := int64(0); i < 200; i++ {
		queries = append(queries, iv(i*25, i*25+40))
	}

	for _, q := range queries {
		cached := s.Impose(q)
		fresh := s.Copy().Impose(q)
		s.ResetCursor()
		reset := s.Impose(q)
		if !cached.Equal(fresh) || !cached.Equal(reset) {
			t.Fatalf("Impose(%s): cached %s, fresh %s, reset %s", q, cached, fresh, reset)
		}
		if want := bruteImpose(s, q); !want.Equal(cached) {
			t.Fatalf("Impose(%s) over %s = %s, brute force says %s", q, s, cached, want)
		}
	}
}

func TestImposeAfterMutation(t *testing.T) {
	s := tenBlocks()
	assert.Equal(t, iv(100, 109), s.Impose(iv(200, 209)))
	s.Exclude(iv(180, 189))
	assert.Equal(t, iv(110, 119), s.Impose(iv(200, 209)))
	s.Union(iv(190, 199))
	assert.Equal(t, iv(100, 109), s.Impose(iv(200, 209)))
}

func TestImposePoint(t *testing.T) {
	s := set(iv(10, 19), iv(30, 39))
	cases := map[int64]int64{
		0:  0,
		9:  9,
		10: 10,
		15: 10,
		20: 10,
		29: 19,
		35: 20,
		40: 20,
		50: 30,
	}
	for in, want := range cases {
		assert.Equal(t, want, s.ImposePoint(in), "ImposePoint(%d)", in)
	}
}

func TestOverlayInvertsImpose(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 8))
	s := randomSet(rng, 60)
	for p := int64(-10); p < 4000; p++ {
		if s.ContainsPoint(p) {
			continue
		}
		imposed := s.ImposePoint(p)
		if back := s.OverlayPoint(imposed); back != p {
			t.Fatalf("OverlayPoint(ImposePoint(%d)) = %d (imposed %d)", p, back, imposed)
		}
	}
}

func TestOverlay(t *testing.T) {
	s := set(iv(5, 9))
	assert.Equal(t, int64(4), s.OverlayPoint(4))
	assert.Equal(t, int64(10), s.OverlayPoint(5))
	assert.Equal(t, iv(0, 14), s.Overlay(iv(0, 9)))
	assert.True(t, s.Overlay(Empty[int64]()).IsEmpty())

	blocks := tenBlocks()
	assert.Equal(t, iv(50, 95), blocks.Overlay(iv(20, 45)))
	assert.Equal(t, iv(20, 45), blocks.Impose(iv(50, 95)))
}

func randomSet(rng *rand.Rand, n int) *Set[int64] {
	s := set()
	for range n {
		start := rng.Int64N(4000)
		s.Union(iv(start, start+rng.Int64N(40)))
	}
	return s
}

// bruteImpose compacts q point by point.
func bruteImpose(s *Set[int64], q Interval[int64]) Interval[int64] {
	out := Empty[int64]()
	for p := q.Start; p <= q.End; p++ {
		if s.ContainsPoint(p) {
			continue
		}
		var removed int64
		for _, r := range s.Ranges() {
			if r.End < p {
				removed += r.Len()
			}
		}
		mapped := p - removed
		if out.IsEmpty() {
			out = iv(mapped, mapped)
		} else {
			out.End = mapped
		}
	}
	return out
}
