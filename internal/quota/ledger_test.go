package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	counts map[int64]int64
	err    error
}

func (f *fakeCounter) CountDescriptions(ctx context.Context, accountID int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[accountID], nil
}

func TestLedger_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("free plan under limit", func(t *testing.T) {
		for used := 0; used < FreeLimit; used++ {
			l := NewLedger(&fakeCounter{counts: map[int64]int64{1: int64(used)}})

			r, err := l.Check(ctx, 1, PlanFree)
			require.NoError(t, err)
			assert.True(t, r.Allowed, "used=%d", used)
			assert.Equal(t, used, r.Used)
			assert.Equal(t, FreeLimit-used, r.Remaining)
			assert.Equal(t, FreeLimit, r.Limit)
		}
	})

	t.Run("free plan at limit", func(t *testing.T) {
		l := NewLedger(&fakeCounter{counts: map[int64]int64{1: 5}})

		r, err := l.Check(ctx, 1, PlanFree)
		require.NoError(t, err)
		assert.False(t, r.Allowed)
		assert.Equal(t, 0, r.Remaining)
		assert.False(t, r.IsUnlimited())
	})

	t.Run("free plan over limit never goes negative", func(t *testing.T) {
		l := NewLedger(&fakeCounter{counts: map[int64]int64{1: 9}})

		r, err := l.Check(ctx, 1, PlanFree)
		require.NoError(t, err)
		assert.False(t, r.Allowed)
		assert.Equal(t, 0, r.Remaining)
	})

	t.Run("paid plans are always allowed", func(t *testing.T) {
		for _, plan := range []Plan{PlanPro, PlanEnterprise} {
			for _, used := range []int64{0, 5, 1000} {
				l := NewLedger(&fakeCounter{counts: map[int64]int64{7: used}})

				r, err := l.Check(ctx, 7, plan)
				require.NoError(t, err)
				assert.True(t, r.Allowed)
				assert.True(t, r.IsUnlimited())
				assert.Equal(t, Unlimited, r.Remaining)
				assert.Equal(t, int(used), r.Used)
			}
		}
	})

	t.Run("counter error", func(t *testing.T) {
		l := NewLedger(&fakeCounter{err: errors.New("disk gone")})

		_, err := l.Check(ctx, 1, PlanFree)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "count descriptions")
	})
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		in      string
		want    Plan
		wantErr bool
	}{
		{"free", PlanFree, false},
		{"PRO", PlanPro, false},
		{" enterprise ", PlanEnterprise, false},
		{"gold", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlan(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
