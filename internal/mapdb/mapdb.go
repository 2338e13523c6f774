// Package mapdb persists map build runs and per-road mesh statistics in a
// sqlite database. The core builders never touch this package; the CLI
// records results here after a build completes.
package mapdb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	db := &DB{sqlDB}
	if err := db.MigrateUp(MigrationsFS()); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// BuildRun is one recorded invocation of the mesh pipeline.
type BuildRun struct {
	RunID          string
	SourceName     string
	Format         string
	RoadCount      int
	VertexCount    int
	TriangleCount  int
	MarkMeshCount  int
	BuildMillis    int64
	CreatedUnixNanos int64
}

// RoadMeshStat is the per-road breakdown of one build run.
type RoadMeshStat struct {
	RunID            string
	RoadID           string
	SurfaceVertices  int
	SurfaceTriangles int
	MarkMeshCount    int
	MarkVertices     int
}

// InsertBuildRun persists a build run. An empty RunID gets a fresh UUID and
// a zero CreatedUnixNanos gets the current time; both are written back.
func (db *DB) InsertBuildRun(run *BuildRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedUnixNanos == 0 {
		run.CreatedUnixNanos = time.Now().UnixNano()
	}

	return retryOnBusy(func() error {
		_, err := db.Exec(`
			INSERT INTO map_build_runs (
				run_id, source_name, format, road_count,
				vertex_count, triangle_count, mark_mesh_count,
				build_ms, created_unix_nanos
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.SourceName, run.Format, run.RoadCount,
			run.VertexCount, run.TriangleCount, run.MarkMeshCount,
			run.BuildMillis, run.CreatedUnixNanos,
		)
		return err
	})
}

// InsertRoadMeshStats persists the per-road rows of a run.
func (db *DB) InsertRoadMeshStats(stats []RoadMeshStat) error {
	return retryOnBusy(func() error {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		stmt, err := tx.Prepare(`
			INSERT INTO road_mesh_stats (
				run_id, road_id, surface_vertices, surface_triangles,
				mark_mesh_count, mark_vertices
			) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range stats {
			s := &stats[i]
			if _, err := stmt.Exec(s.RunID, s.RoadID, s.SurfaceVertices,
				s.SurfaceTriangles, s.MarkMeshCount, s.MarkVertices); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// ListRecentBuildRuns returns the last limit runs, most recent first.
func (db *DB) ListRecentBuildRuns(limit int) ([]*BuildRun, error) {
	rows, err := db.Query(`
		SELECT run_id, source_name, format, road_count,
		       vertex_count, triangle_count, mark_mesh_count,
		       build_ms, created_unix_nanos
		FROM map_build_runs
		ORDER BY created_unix_nanos DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query build runs: %w", err)
	}
	defer rows.Close()

	var runs []*BuildRun
	for rows.Next() {
		var r BuildRun
		if err := rows.Scan(&r.RunID, &r.SourceName, &r.Format, &r.RoadCount,
			&r.VertexCount, &r.TriangleCount, &r.MarkMeshCount,
			&r.BuildMillis, &r.CreatedUnixNanos); err != nil {
			return nil, fmt.Errorf("scan build run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// RoadStatsForRun returns the per-road rows of one run.
func (db *DB) RoadStatsForRun(runID string) ([]*RoadMeshStat, error) {
	rows, err := db.Query(`
		SELECT run_id, road_id, surface_vertices, surface_triangles,
		       mark_mesh_count, mark_vertices
		FROM road_mesh_stats WHERE run_id = ? ORDER BY road_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query road stats: %w", err)
	}
	defer rows.Close()

	var stats []*RoadMeshStat
	for rows.Next() {
		var s RoadMeshStat
		if err := rows.Scan(&s.RunID, &s.RoadID, &s.SurfaceVertices,
			&s.SurfaceTriangles, &s.MarkMeshCount, &s.MarkVertices); err != nil {
			return nil, fmt.Errorf("scan road stat: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

// RunSummary aggregates the per-road triangle counts of one run.
type RunSummary struct {
	RoadCount        int
	TriangleMean     float64
	TriangleStdDev   float64
	TriangleTotal    int
}

// SummarizeRun computes summary statistics over the per-road rows of a run.
func (db *DB) SummarizeRun(runID string) (*RunSummary, error) {
	stats, err := db.RoadStatsForRun(runID)
	if err != nil {
		return nil, err
	}
	summary := &RunSummary{RoadCount: len(stats)}
	if len(stats) == 0 {
		return summary, nil
	}

	triangles := make([]float64, len(stats))
	for i, s := range stats {
		triangles[i] = float64(s.SurfaceTriangles)
		summary.TriangleTotal += s.SurfaceTriangles
	}
	summary.TriangleMean = stat.Mean(triangles, nil)
	if len(triangles) > 1 {
		summary.TriangleStdDev = stat.StdDev(triangles, nil)
	}
	return summary, nil
}

// retryOnBusy retries a sqlite operation a few times when the database is
// locked by a concurrent writer.
func retryOnBusy(op func() error) error {
	const maxAttempts = 5
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = op()
		if err == nil || !isBusy(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return err
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
