package primes

import (
	"slices"
	"testing"

	"github.com/hupe1980/primes/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSieve(t *testing.T) {
	t.Run("Limit1000", func(t *testing.T) {
		s, err := New(1000)
		require.NoError(t, err)
		assert.False(t, s.Done())

		s.Run()
		assert.True(t, s.Done())
		assert.Equal(t, 168, s.CountPrimes())
	})

	t.Run("Limit30", func(t *testing.T) {
		s, err := New(30)
		require.NoError(t, err)
		s.Run()

		var flagged []int
		for n := 3; n < 30; n++ {
			if s.IsFlagged(n) {
				flagged = append(flagged, n)
			}
		}
		assert.Equal(t, []int{3, 5, 7, 11, 13, 17, 19, 23, 29}, flagged)
		assert.Equal(t, 10, s.CountPrimes())
	})

	t.Run("RunTwice", func(t *testing.T) {
		s, err := New(100)
		require.NoError(t, err)
		s.Run()
		s.Run()
		assert.Equal(t, 25, s.CountPrimes())
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		_, err := New(-1)
		require.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("UnknownStorage", func(t *testing.T) {
		_, err := New(10, WithStorage(storage.Kind(200)))
		require.ErrorIs(t, err, storage.ErrUnknownKind)
	})
}

func TestSieve_KnownCounts(t *testing.T) {
	v := DefaultValidator()

	for _, kind := range storage.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			for _, size := range v.Sizes() {
				if size > 1000000 && testing.Short() {
					continue
				}
				s, err := New(size, WithStorage(kind))
				require.NoError(t, err)
				s.Run()

				assert.Equal(t, VerdictPass, v.Verdict(size, s.CountPrimes()), "limit %d", size)
			}
		})
	}
}

func TestSieve_SmallLimits(t *testing.T) {
	tests := []struct {
		limit int
		want  []int
	}{
		{0, nil},
		{1, nil},
		{2, []int{2}},
		{3, []int{2, 3}},
		{4, []int{2, 3}},
		{9, []int{2, 3, 5, 7}},
		{25, []int{2, 3, 5, 7, 11, 13, 17, 19, 23}},
		{49, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}},
	}

	for _, kind := range storage.Kinds() {
		for _, tt := range tests {
			s, err := New(tt.limit, WithStorage(kind))
			require.NoError(t, err)
			s.Run()

			got := slices.Collect(s.Primes())
			assert.Equal(t, tt.want, got, "%s limit %d", kind, tt.limit)
			assert.Equal(t, len(tt.want), s.CountPrimes(), "%s limit %d", kind, tt.limit)
		}
	}
}

func TestSieve_PrimeLimitIsCounted(t *testing.T) {
	s, err := New(997)
	require.NoError(t, err)
	s.Run()
	assert.Equal(t, 168, s.CountPrimes())
	assert.True(t, s.IsFlagged(997))
}

func TestSieve_IsFlagged(t *testing.T) {
	s, err := New(50)
	require.NoError(t, err)
	s.Run()

	assert.True(t, s.IsFlagged(1))
	assert.False(t, s.IsFlagged(2))
	assert.False(t, s.IsFlagged(9))
	assert.False(t, s.IsFlagged(49))
	assert.True(t, s.IsFlagged(47))
	assert.False(t, s.IsFlagged(-3))
	assert.False(t, s.IsFlagged(1001))
}

func TestSieve_PrimesStopsEarly(t *testing.T) {
	s, err := New(100)
	require.NoError(t, err)
	s.Run()

	var got []int
	for p := range s.Primes() {
		if p > 10 {
			break
		}
		got = append(got, p)
	}
	assert.Equal(t, []int{2, 3, 5, 7}, got)
}

func TestSieve_Accessors(t *testing.T) {
	s, err := New(1234, WithStorage(storage.BitsStriped))
	require.NoError(t, err)
	assert.Equal(t, 1234, s.Limit())
	assert.Equal(t, storage.BitsStriped, s.Kind())

	d, err := New(10)
	require.NoError(t, err)
	assert.Equal(t, DefaultStorage, d.Kind())
}

func TestSieve_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	for range 3 {
		s, err := New(10000, WithMetricsCollector(metrics), WithLogger(nil))
		require.NoError(t, err)
		s.Run()
		s.Run()
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.RunCount)
	assert.GreaterOrEqual(t, stats.RunAvgNanos, int64(0))
}

func TestIsqrt(t *testing.T) {
	tests := map[int]int{
		0: 0, 1: 1, 2: 1, 3: 1, 4: 2, 8: 2, 9: 3, 960: 30, 961: 31, 1000: 31,
		999999: 999, 1000000: 1000, 1<<62 - 1: 1<<31 - 1,
	}
	for n, want := range tests {
		assert.Equal(t, want, isqrt(n), "isqrt(%d)", n)
	}
}

func BenchmarkSieve(b *testing.B) {
	for _, kind := range storage.Kinds() {
		b.Run(kind.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				s, err := New(1000000, WithStorage(kind))
				if err != nil {
					b.Fatal(err)
				}
				s.Run()
			}
		})
	}
}
