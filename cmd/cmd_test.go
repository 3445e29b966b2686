package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/golfdrills/internal/session"
)

// run executes the command tree with args against a fresh database in a
// temp dir and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--db", db))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "golfdrills.db")
}

func TestSkillList(t *testing.T) {
	out, err := run(t, tempDB(t), "skill", "list", "--category", "putting")
	require.NoError(t, err)
	assert.Contains(t, out, "green_reading")
	assert.Contains(t, out, "4 skills")
	assert.NotContains(t, out, "bunker")
}

func TestSkillList_UnknownCategory(t *testing.T) {
	_, err := run(t, tempDB(t), "skill", "list", "--category", "driving_range")
	assert.Error(t, err)
}

func TestDrillList_BySkill(t *testing.T) {
	out, err := run(t, tempDB(t), "drill", "list", "--skill", "bunker")
	require.NoError(t, err)
	assert.Contains(t, out, "line_in_sand")
	assert.Contains(t, out, "bunker_ladder")
	assert.Contains(t, out, "2 drills")
}

func TestDrillShow(t *testing.T) {
	out, err := run(t, tempDB(t), "drill", "show", "gate_drill")
	require.NoError(t, err)
	assert.Contains(t, out, "gate_drill")
	assert.Contains(t, out, "15 min")
	assert.Contains(t, out, "made/attempts")

	_, err = run(t, tempDB(t), "drill", "show", "nope")
	assert.Error(t, err)
}

func TestRecommend_FitsBudget(t *testing.T) {
	out, err := run(t, tempDB(t), "recommend", "--skills", "pace,green_reading", "--hours", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "ladder_lag")
	assert.Contains(t, out, "of 30 min")
}

func TestRecommend_NoBudgetFallsBack(t *testing.T) {
	out, err := run(t, tempDB(t), "recommend", "--skills", "distance_control", "--hours", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "top 4")
}

func TestRecommend_TinyBudgetIsNotUnbudgeted(t *testing.T) {
	out, err := run(t, tempDB(t), "recommend", "--skills", "pace,green_reading", "--hours", "0.005")
	require.NoError(t, err)
	assert.NotContains(t, out, "no time budget")
}

func TestRecommend_NoMatches(t *testing.T) {
	out, err := run(t, tempDB(t), "recommend", "--skills", "not_a_skill")
	require.NoError(t, err)
	assert.Contains(t, out, "No drills match")
}

func TestRecommend_RequiresSkills(t *testing.T) {
	_, err := run(t, tempDB(t), "recommend")
	assert.Error(t, err)
}

func TestLogAndHistory(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, db, "log",
		"--skills", "start_line",
		"--drill", "gate_drill=7/10;pushed two",
		"--drill", "ghost_drill=5",
		"--date", "2026-05-01",
		"--location", "Home Course")
	require.NoError(t, err)
	assert.Contains(t, out, "1 drills on 2026-05-01 at Home Course")

	_, err = run(t, db, "log", "--drill", "coin_roll", "--date", "2026-05-03")
	require.NoError(t, err)

	out, err = run(t, db, "history", "--json")
	require.NoError(t, err)

	var records []session.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2026-05-03", records[0].Date)
	assert.Equal(t, "unspecified", records[0].Location)

	first := records[1]
	require.Len(t, first.Drills, 1)
	assert.Equal(t, "gate_drill", first.Drills[0].DrillID)
	assert.Equal(t, "7/10", first.Drills[0].Score.String())
	assert.Equal(t, "pushed two", first.Drills[0].Notes)
	require.NotNil(t, first.Drills[0].Rate)
	assert.InDelta(t, 0.7, *first.Drills[0].Rate, 1e-9)

	out, err = run(t, db, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-05-03")
	assert.NotContains(t, out, "2026-05-01")
}

func TestLog_NoDrills(t *testing.T) {
	_, err := run(t, tempDB(t), "log", "--skills", "pace", "--date", "not-a-date")
	assert.True(t, errors.Is(err, session.ErrNoDrillsSelected), "err = %v", err)
}

func TestLog_InvalidDate(t *testing.T) {
	_, err := run(t, tempDB(t), "log", "--drill", "gate_drill", "--date", "05/01/2026")
	assert.True(t, errors.Is(err, session.ErrInvalidDate), "err = %v", err)
}

func TestHistory_Empty(t *testing.T) {
	out, err := run(t, tempDB(t), "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions logged yet.")
}

func TestStats(t *testing.T) {
	db := tempDB(t)
	for _, args := range [][]string{
		{"log", "--skills", "pace", "--drill", "ladder_lag", "--location", "Range"},
		{"log", "--skills", "pace,green_reading", "--drill", "ladder_lag", "--drill", "clock_drill", "--location", "Range"},
	} {
		_, err := run(t, db, args...)
		require.NoError(t, err)
	}

	out, err := run(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Sessions:   2")
	assert.Contains(t, out, "Drills run: 3")
	lines := strings.Split(out, "\n")
	var drillLines []string
	for i, l := range lines {
		if l == "Most practiced drills" {
			drillLines = lines[i+1 : i+3]
		}
	}
	require.Len(t, drillLines, 2)
	assert.Contains(t, drillLines[0], "2")
}

func TestMetricsTextfile(t *testing.T) {
	prom := filepath.Join(t.TempDir(), "golfdrills.prom")
	t.Setenv("GOLFDRILLS_METRICS_FILE", prom)

	_, err := run(t, tempDB(t), "log", "--drill", "gate_drill")
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "golfdrills_sessions_saved_total 1")
}

func TestMemoryDB(t *testing.T) {
	out, err := run(t, memoryDSN, "log", "--drill", "gate_drill")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged session")
}

func TestVersion(t *testing.T) {
	out, err := run(t, tempDB(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "golfdrills (devel)\n", out)
}

func TestParseDrillFlag(t *testing.T) {
	tests := []struct {
		value            string
		id, score, notes string
		wantErr          bool
	}{
		{"gate_drill", "gate_drill", "", "", false},
		{"gate_drill=7/10", "gate_drill", "7/10", "", false},
		{"gate_drill=7/10;left edge", "gate_drill", "7/10", "left edge", false},
		{"gate_drill=;just notes", "gate_drill", "", "just notes", false},
		{" gate_drill = 8 ", "gate_drill", " 8 ", "", false},
		{"=5", "", "", "", true},
	}
	for _, tt := range tests {
		id, score, notes, err := parseDrillFlag(tt.value)
		if tt.wantErr {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.id, id, tt.value)
		assert.Equal(t, tt.score, score, tt.value)
		assert.Equal(t, tt.notes, notes, tt.value)
	}
}
