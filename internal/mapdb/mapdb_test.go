package mapdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "mapmesh_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestInsertAndListBuildRuns(t *testing.T) {
	db := openTestDB(t)

	run := &BuildRun{
		SourceName:    "town.xodr",
		Format:        "opendrive",
		RoadCount:     3,
		VertexCount:   1200,
		TriangleCount: 1100,
		MarkMeshCount: 9,
		BuildMillis:   42,
	}
	require.NoError(t, db.InsertBuildRun(run))
	assert.NotEmpty(t, run.RunID, "insert should assign a run ID")
	assert.NotZero(t, run.CreatedUnixNanos)

	second := &BuildRun{SourceName: "other.xodr", Format: "opendrive", CreatedUnixNanos: run.CreatedUnixNanos + 1}
	require.NoError(t, db.InsertBuildRun(second))

	runs, err := db.ListRecentBuildRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].RunID, "most recent first")
	assert.Equal(t, run.RunID, runs[1].RunID)
	assert.Equal(t, 1200, runs[1].VertexCount)
}

func TestRoadStatsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	run := &BuildRun{SourceName: "town.xodr", Format: "opendrive"}
	require.NoError(t, db.InsertBuildRun(run))

	stats := []RoadMeshStat{
		{RunID: run.RunID, RoadID: "1", SurfaceVertices: 42, SurfaceTriangles: 40, MarkMeshCount: 2, MarkVertices: 200},
		{RunID: run.RunID, RoadID: "2", SurfaceVertices: 84, SurfaceTriangles: 80},
	}
	require.NoError(t, db.InsertRoadMeshStats(stats))

	got, err := db.RoadStatsForRun(run.RunID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].RoadID)
	assert.Equal(t, 40, got[0].SurfaceTriangles)
	assert.Equal(t, 80, got[1].SurfaceTriangles)
}

func TestSummarizeRun(t *testing.T) {
	db := openTestDB(t)

	run := &BuildRun{SourceName: "town.xodr", Format: "opendrive"}
	require.NoError(t, db.InsertBuildRun(run))
	require.NoError(t, db.InsertRoadMeshStats([]RoadMeshStat{
		{RunID: run.RunID, RoadID: "1", SurfaceTriangles: 40},
		{RunID: run.RunID, RoadID: "2", SurfaceTriangles: 80},
	}))

	summary, err := db.SummarizeRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.RoadCount)
	assert.Equal(t, 120, summary.TriangleTotal)
	assert.InDelta(t, 60.0, summary.TriangleMean, 1e-9)
}

func TestSummarizeEmptyRun(t *testing.T) {
	db := openTestDB(t)

	summary, err := db.SummarizeRun("missing")
	require.NoError(t, err)
	assert.Zero(t, summary.RoadCount)
	assert.Zero(t, summary.TriangleTotal)
}
