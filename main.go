// Command mapmesh converts an OpenDRIVE map file into triangulated meshes,
// prints build statistics, and optionally records the run in a sqlite
// database or renders a plan-view preview.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/mapmesh/internal/config"
	"github.com/banshee-data/mapmesh/internal/mapbundle"
	"github.com/banshee-data/mapmesh/internal/mapdb"
	"github.com/banshee-data/mapmesh/internal/monitor"
	"github.com/banshee-data/mapmesh/internal/odr/mesh"
)

var (
	inFile     = flag.String("in", "", "Input map file (.xodr or Apollo .bin)")
	dbFile     = flag.String("db", "", "Optional sqlite database to record the build run in")
	configFile = flag.String("config", "", "Optional tuning config JSON (see config/tuning.defaults.json)")
	plotFile   = flag.String("plot", "", "Optional plan-view image output (.png/.svg/.pdf)")
	htmlFile   = flag.String("html", "", "Optional interactive HTML preview output")
	laneStep   = flag.Float64("lane-step", 0, "Lane sample step in metres (overrides config)")
	markStep   = flag.Float64("mark-step", 0, "Road-mark sample step in metres (overrides config)")
	listRuns   = flag.Int("list-runs", 0, "List the N most recent build runs from -db and exit")
)

func main() {
	flag.Parse()

	if *listRuns > 0 {
		if *dbFile == "" {
			log.Fatal("-list-runs requires -db")
		}
		if err := printRecentRuns(*dbFile, *listRuns); err != nil {
			log.Fatalf("list runs: %v", err)
		}
		return
	}

	if *inFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	data, err := os.ReadFile(*inFile)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var bundle mapbundle.Bundle
	bundle.Add(filepath.Base(*inFile), data)

	format, err := bundle.DetectFormat()
	if err != nil {
		return fmt.Errorf("detect format of %q: %w", *inFile, err)
	}

	if format == mapbundle.FormatApollo {
		info, err := bundle.LoadApolloInfo()
		if err != nil {
			return err
		}
		fmt.Printf("apollo map: version=%q date=%q projection=%q\n", info.Version, info.Date, info.Projection)
		fmt.Printf("  lanes=%d roads=%d junctions=%d signals=%d\n",
			info.LaneCount, info.RoadCount, info.JunctionCount, info.SignalCount)
		return nil
	}

	m, err := bundle.LoadOpenDrive()
	if err != nil {
		return err
	}

	tuning := loadTuning()
	laneSampleStep := tuning.LaneStep(mesh.DefaultLaneSampleStep)
	markSampleStep := tuning.MarkStep(mesh.DefaultMarkSampleStep)
	if *laneStep > 0 {
		laneSampleStep = *laneStep
	}
	if *markStep > 0 {
		markSampleStep = *markStep
	}

	start := time.Now()
	built := mesh.BuildMap(m, laneSampleStep, markSampleStep)
	buildTime := time.Since(start)

	var totalVertices, totalTriangles, totalMarks int
	roadStats := make([]mapdb.RoadMeshStat, 0, len(built))
	for _, rm := range built {
		markVertices := 0
		for _, mk := range rm.Marks {
			markVertices += mk.Mesh.VertexCount()
		}
		totalVertices += rm.Surface.VertexCount() + markVertices
		totalTriangles += rm.Surface.TriangleCount()
		totalMarks += len(rm.Marks)
		roadStats = append(roadStats, mapdb.RoadMeshStat{
			RoadID:           rm.RoadID,
			SurfaceVertices:  rm.Surface.VertexCount(),
			SurfaceTriangles: rm.Surface.TriangleCount(),
			MarkMeshCount:    len(rm.Marks),
			MarkVertices:     markVertices,
		})
	}

	fmt.Printf("built %d roads in %s: %d vertices, %d surface triangles, %d mark meshes\n",
		len(built), buildTime.Round(time.Millisecond), totalVertices, totalTriangles, totalMarks)

	if *dbFile != "" {
		if err := recordRun(built, roadStats, totalVertices, totalTriangles, totalMarks, buildTime); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	if *plotFile != "" {
		if err := monitor.SavePlanView(m, laneSampleStep, 20*vg.Centimeter, 20*vg.Centimeter, *plotFile); err != nil {
			return err
		}
		fmt.Printf("plan view written to %s\n", *plotFile)
	}

	if *htmlFile != "" {
		f, err := os.Create(*htmlFile)
		if err != nil {
			return fmt.Errorf("create preview: %w", err)
		}
		defer f.Close()
		if err := monitor.NetworkHTML(m, laneSampleStep, 8000, f); err != nil {
			return err
		}
		fmt.Printf("preview written to %s\n", *htmlFile)
	}

	return nil
}

// loadTuning reads -config when given, otherwise the defaults file when it
// exists; absent both, every tunable falls back to its builder default.
func loadTuning() *config.MeshTuning {
	path := *configFile
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigPath); err != nil {
			return config.EmptyMeshTuning()
		}
		path = config.DefaultConfigPath
	}
	cfg, err := config.LoadMeshTuning(path)
	if err != nil {
		log.Printf("tuning config %q unusable, using defaults: %v", path, err)
		return config.EmptyMeshTuning()
	}
	return cfg
}

func recordRun(built []mesh.RoadMeshes, roadStats []mapdb.RoadMeshStat, vertices, triangles, marks int, buildTime time.Duration) error {
	db, err := mapdb.Open(*dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &mapdb.BuildRun{
		SourceName:    filepath.Base(*inFile),
		Format:        mapbundle.FormatOpenDrive.String(),
		RoadCount:     len(built),
		VertexCount:   vertices,
		TriangleCount: triangles,
		MarkMeshCount: marks,
		BuildMillis:   buildTime.Milliseconds(),
	}
	if err := db.InsertBuildRun(run); err != nil {
		return err
	}
	for i := range roadStats {
		roadStats[i].RunID = run.RunID
	}
	if err := db.InsertRoadMeshStats(roadStats); err != nil {
		return err
	}
	fmt.Printf("recorded run %s\n", run.RunID)
	return nil
}

func printRecentRuns(path string, limit int) error {
	db, err := mapdb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRecentBuildRuns(limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %-24s %-10s roads=%-4d vertices=%-8d triangles=%-8d %dms\n",
			time.Unix(0, r.CreatedUnixNanos).Format(time.RFC3339),
			r.SourceName, r.Format, r.RoadCount, r.VertexCount, r.TriangleCount, r.BuildMillis)
	}
	return nil
}
