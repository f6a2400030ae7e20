package scoring

import (
	"testing"

	"github.com/pkgwatch/pkgwatch/pkg/signal"
)

func TestMaturityFactor(t *testing.T) {
	tests := []struct {
		name string
		snap *signal.Snapshot
		want float64
	}{
		{
			name: "unknown package gets nothing",
			snap: &signal.Snapshot{},
			want: 0,
		},
		{
			name: "huge adoption, near-dormant: capped at 0.7",
			// download ramp (log10(5e6)-5)/1.7 = 1.0, dependent ramp past 1;
			// deficit 1-2/10 = 0.8; 1.0*0.8 = 0.8 → cap 0.7
			snap: &signal.Snapshot{WeeklyDownloads: 5_000_000, DependentsCount: 10_000, Commits90d: 2},
			want: 0.7,
		},
		{
			name: "a million downloads alone, fully dormant",
			// ramp (log10(1e6+1)-5)/1.7 = 0.58824; deficit 1.0
			snap: &signal.Snapshot{WeeklyDownloads: 1_000_000},
			want: 0.58824,
		},
		{
			name: "same adoption, half the deficit",
			// five commits: deficit 0.5; 0.58824*0.5 = 0.29412
			snap: &signal.Snapshot{WeeklyDownloads: 1_000_000, Commits90d: 5},
			want: 0.29412,
		},
		{
			name: "ten commits a quarter means no deficit",
			snap: &signal.Snapshot{WeeklyDownloads: 5_000_000, Commits90d: 10},
			want: 0,
		},
		{
			name: "below both ramp floors",
			// 50K downloads is under the 100K floor, 99 dependents under 100
			snap: &signal.Snapshot{WeeklyDownloads: 50_000, DependentsCount: 99},
			want: 0,
		},
		{
			name: "dependents ramp carries the factor alone",
			// (log10(1001)-2)/2 = 0.50022; deficit 1.0
			snap: &signal.Snapshot{DependentsCount: 1000},
			want: 0.50022,
		},
		{
			name: "the stronger ramp wins",
			// download ramp 0.58824 beats dependent ramp 0.50022
			snap: &signal.Snapshot{WeeklyDownloads: 1_000_000, DependentsCount: 1000},
			want: 0.58824,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := maturityFactor(tc.snap)
			if !almostEqual(got, tc.want, 0.0001) {
				t.Errorf("maturityFactor = %.5f, want %.5f", got, tc.want)
			}
		})
	}
}

func TestMaturityFactor_NeverExceedsCap(t *testing.T) {
	extreme := &signal.Snapshot{WeeklyDownloads: 1 << 50, DependentsCount: 1 << 40}
	if got := maturityFactor(extreme); got > maturityCap {
		t.Errorf("maturityFactor = %.4f, exceeds cap %.1f", got, maturityCap)
	}
}
