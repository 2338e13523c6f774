// Command xodr-preview renders an interactive HTML preview of an OpenDRIVE
// file's road network without building any meshes.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/mapmesh/internal/mapbundle"
	"github.com/banshee-data/mapmesh/internal/monitor"
)

var (
	inFile  = flag.String("in", "", "Input OpenDRIVE file (.xodr)")
	outFile = flag.String("out", "preview.html", "Output HTML file")
	step    = flag.Float64("step", 1.0, "Reference line sample step in metres")
	maxPts  = flag.Int("max-points", 8000, "Downsample to about this many points (up to one extra per road)")
)

func main() {
	flag.Parse()
	if *inFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*inFile)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	var bundle mapbundle.Bundle
	bundle.Add(filepath.Base(*inFile), data)

	m, err := bundle.LoadOpenDrive()
	if err != nil {
		log.Fatalf("parse: %v", err)
	}

	f, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()

	if err := monitor.NetworkHTML(m, *step, *maxPts, f); err != nil {
		log.Fatalf("render: %v", err)
	}
	log.Printf("wrote %s (%d roads)", *outFile, len(m.Roads))
}
