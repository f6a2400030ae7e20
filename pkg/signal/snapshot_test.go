package signal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullPayload(t *testing.T) {
	payload := `{
		"days_since_last_commit": 7,
		"active_contributors_90d": 5,
		"true_bus_factor": 3,
		"weekly_downloads": 1000000,
		"dependents_count": 5000,
		"stars": 20000,
		"commits_90d": 42,
		"total_contributors": 120,
		"last_published": "2024-05-01T00:00:00Z",
		"openssf_score": 7.5,
		"openssf_checks": [{"name": "Security-Policy", "score": 10}],
		"advisories": [{"severity": "HIGH"}, {"severity": "LOW"}],
		"is_deprecated": false,
		"archived": false,
		"created_at": "2018-01-01T00:00:00Z",
		"last_updated": "2024-05-02T12:00:00Z"
	}`

	s, err := Parse([]byte(payload))
	require.NoError(t, err)

	require.NotNil(t, s.DaysSinceLastCommit)
	assert.Equal(t, 7, *s.DaysSinceLastCommit)
	require.NotNil(t, s.ActiveContributors90d)
	assert.Equal(t, 5, *s.ActiveContributors90d)
	assert.Equal(t, 3, s.TrueBusFactor)
	assert.Equal(t, int64(1000000), s.WeeklyDownloads)
	assert.Equal(t, int64(5000), s.DependentsCount)
	assert.Equal(t, int64(20000), s.Stars)
	assert.Equal(t, 42, s.Commits90d)
	assert.Equal(t, 120, s.TotalContributors)
	assert.False(t, s.LastPublished.IsZero())
	require.NotNil(t, s.OpenSSFScore)
	assert.Equal(t, 7.5, *s.OpenSSFScore)
	assert.Len(t, s.Advisories, 2)
	assert.False(t, s.CreatedAt.IsZero())
	assert.False(t, s.LastUpdated.IsZero())
}

func TestParse_EmptyObjectDefaults(t *testing.T) {
	s, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Nil(t, s.DaysSinceLastCommit)
	assert.Nil(t, s.ActiveContributors90d)
	assert.Nil(t, s.OpenSSFScore)
	assert.Equal(t, DefaultCommitGapDays, s.CommitGapDays())
	assert.Equal(t, DefaultActiveContributors, s.EffectiveContributors())
	assert.Equal(t, 1, s.ContributorCount())
	assert.True(t, s.LastPublished.IsZero())
	assert.True(t, s.CreatedAt.IsZero())
}

func TestParse_MalformedTimestampDegrades(t *testing.T) {
	s, err := Parse([]byte(`{"last_published": "whenever", "created_at": 123}`))
	require.NoError(t, err, "bad timestamp values must not fail the whole snapshot")
	assert.True(t, s.LastPublished.IsZero())
	assert.True(t, s.CreatedAt.IsZero())
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"weekly_downloads": `))
	assert.Error(t, err)
}

func TestSnapshot_CommitGapDays(t *testing.T) {
	tests := []struct {
		name string
		days *int
		want int
	}{
		{"missing uses default", nil, DefaultCommitGapDays},
		{"zero means today", intPtr(0), 0},
		{"positive passes through", intPtr(42), 42},
		{"negative clamps to zero", intPtr(-10), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &Snapshot{DaysSinceLastCommit: tc.days}
			assert.Equal(t, tc.want, s.CommitGapDays())
		})
	}
}

func TestSnapshot_EffectiveContributors(t *testing.T) {
	tests := []struct {
		name   string
		snap   Snapshot
		want   int
		reason string
	}{
		{
			name:   "true bus factor wins",
			snap:   Snapshot{TrueBusFactor: 2, ActiveContributors90d: intPtr(10)},
			want:   2,
			reason: "a measured bus factor overrides the raw contributor count",
		},
		{
			name: "zero bus factor falls back",
			snap: Snapshot{TrueBusFactor: 0, ActiveContributors90d: intPtr(10)},
			want: 10,
		},
		{
			name: "explicit zero contributors stays zero",
			snap: Snapshot{ActiveContributors90d: intPtr(0)},
			want: 0,
		},
		{
			name: "negative contributors clamps",
			snap: Snapshot{ActiveContributors90d: intPtr(-3)},
			want: 0,
		},
		{
			name: "nothing known defaults to one",
			snap: Snapshot{},
			want: DefaultActiveContributors,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.snap.EffectiveContributors(), tc.reason)
		})
	}
}

func TestSnapshot_ContributorCount(t *testing.T) {
	assert.Equal(t, 1, (&Snapshot{}).ContributorCount())
	assert.Equal(t, 1, (&Snapshot{TotalContributors: 0}).ContributorCount())
	assert.Equal(t, 1, (&Snapshot{TotalContributors: -5}).ContributorCount())
	assert.Equal(t, 50, (&Snapshot{TotalContributors: 50}).ContributorCount())
}

func TestSnapshot_CheckScore(t *testing.T) {
	s := &Snapshot{OpenSSFChecks: []Check{
		{Name: "Maintained", Score: 8},
		{Name: "Security-Policy", Score: 10},
	}}

	score, ok := s.CheckScore("Security-Policy")
	require.True(t, ok)
	assert.Equal(t, 10.0, score)

	_, ok = s.CheckScore("Fuzzing")
	assert.False(t, ok)
}

func TestSnapshot_AdvisoryCounts(t *testing.T) {
	s := &Snapshot{Advisories: []Advisory{
		{Severity: SeverityCritical},
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityLow},
	}}

	counts := s.AdvisoryCounts()
	assert.Equal(t, 1, counts[SeverityCritical])
	assert.Equal(t, 2, counts[SeverityHigh])
	assert.Equal(t, 0, counts[SeverityMedium])
	assert.Equal(t, 1, counts[SeverityLow])
}

func TestLoadSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	content := `{
		"react": {"weekly_downloads": 20000000, "days_since_last_commit": 2},
		"left-pad": {"is_deprecated": true}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	set, err := LoadSet(path)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, int64(20000000), set["react"].WeeklyDownloads)
	assert.True(t, set["left-pad"].IsDeprecated)
}

func TestLoadSet_MissingFile(t *testing.T) {
	_, err := LoadSet(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func intPtr(v int) *int { return &v }
