package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"maskmeta/internal/models"
	"maskmeta/pkg/config"
	"maskmeta/pkg/logging"
	"maskmeta/pkg/meta"
	"maskmeta/pkg/visualization"
)

// assignments collects repeated -opt name=value flags.
type assignments []string

func (a *assignments) String() string     { return strings.Join(*a, ",") }
func (a *assignments) Set(v string) error { *a = append(*a, v); return nil }

// shortcutFlags maps option shortcut flags to their option names.
var shortcutFlags = map[string]string{
	"radius":     meta.OptRadius,
	"adjacency":  meta.OptBuildAdjacency,
	"accelerate": meta.OptAccelerate,
	"metric":     meta.OptMetric,
}

// flagOptions returns name/value pairs for the shortcut flags set on the
// command line. -opt assignments are applied after them.
func flagOptions() []string {
	var pairs []string
	flag.Visit(func(f *flag.Flag) {
		if name, ok := shortcutFlags[f.Name]; ok {
			pairs = append(pairs, name, f.Value.String())
		}
	})
	return pairs
}

// checkAccelerate rejects an -accelerate flag that an explicit strategy
// would override.
func checkAccelerate(fs *flag.FlagSet, opts meta.Options) error {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "accelerate" {
			set = true
		}
	})
	if !set || opts.Strategy == "" {
		return nil
	}
	return meta.InvalidOption(meta.OptAccelerate,
		fmt.Sprintf("%t (strategy %q is set explicitly)", opts.Accelerate, opts.Strategy))
}

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "maskmeta.yaml", "Configuration file (.yaml or .toml)")
	maskPath := flag.String("mask", "", "Raw little-endian label volume in x-fastest order")
	dimsFlag := flag.String("dims", "", "Mask dimensions as X,Y,Z")
	dtype := flag.String("dtype", "uint8", "Mask value type: uint8, uint16 or int32")
	synthetic := flag.Bool("synthetic", false, "Use a synthetic two-region mask instead of -mask")
	slicesDir := flag.String("slices-dir", "", "Directory to save neighbor-count slices along all axes")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Int("radius", meta.DefaultRadius, "Neighborhood radius in voxels")
	flag.Bool("adjacency", meta.DefaultBuildAdjacency, "Assemble the adjacency matrix (radius 1 only)")
	flag.Bool("accelerate", meta.DefaultAccelerate, "Use the parallel neighbor finder when available")
	flag.String("metric", meta.DefaultMetric.String(), "Distance metric: chebyshev or euclidean")
	var opts assignments
	flag.Var(&opts, "opt", "Option override name=value (radius, buildAdjacency, accelerate, metric, workers, strategy); repeatable")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if *slicesDir != "" {
		cfg.Output.SlicesDir = *slicesDir
	}

	logger := logging.New(cfg.Log)
	defer logger.Close()

	buildOpts, err := cfg.Options(logger)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	pairs, err := config.SplitAssignments(opts)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	pairs = append(flagOptions(), pairs...)
	if err := config.ApplyOptions(&buildOpts, pairs...); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := checkAccelerate(flag.CommandLine, buildOpts); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Load the mask
	var mask *models.Mask
	switch {
	case *synthetic:
		dims := models.Dims{X: 64, Y: 64, Z: 64}
		if *dimsFlag != "" {
			if dims, err = parseDims(*dimsFlag); err != nil {
				log.Fatalf("Invalid dims: %v", err)
			}
		}
		mask = syntheticMask(dims)
	case *maskPath != "":
		dims, err := parseDims(*dimsFlag)
		if err != nil {
			log.Fatalf("Invalid dims: %v", err)
		}
		if mask, err = loadRawMask(*maskPath, dims, *dtype); err != nil {
			log.Fatalf("Failed to load mask: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("MASK META STRUCTURE")
	fmt.Println("================================")

	startTime := time.Now()
	m, err := meta.Build(mask, buildOpts)
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}
	elapsed := time.Since(startTime)

	s := m.Summary()
	fmt.Printf("Volume:             %s (%s voxels)\n", s.Dims, humanize.Comma(int64(s.Voxels)))
	fmt.Printf("Selected voxels:    %s\n", humanize.Comma(int64(s.Selected)))
	fmt.Printf("Regions:            %d\n", s.ROIs)
	fmt.Printf("Radius / metric:    %d / %s\n", m.Radius(), m.Metric())
	fmt.Printf("Strategy:           %s\n", s.Strategy)
	fmt.Printf("Neighbor pairs:     %s (max %d per voxel)\n", humanize.Comma(int64(s.Pairs)), s.MaxNeighbors)
	if adj := m.Adjacency(); adj != nil {
		fmt.Printf("Adjacency entries:  %s\n", humanize.Comma(int64(s.AdjacencyNNZ)))
		fmt.Printf("Components:         %d\n", len(adj.Components()))
	}
	fmt.Printf("Memory:             %s\n", humanize.Bytes(s.Bytes))
	fmt.Printf("Build time:         %.3f seconds\n", elapsed.Seconds())

	groups := m.ROIs()
	for i, id := range groups.IDs {
		fmt.Printf("  region %-6d %s voxels\n", id, humanize.Comma(int64(len(groups.Columns[i]))))
	}

	for _, w := range m.Warnings() {
		fmt.Printf("Warning: %s\n", w)
	}

	// Save neighbor-count slices if requested
	if cfg.Output.SlicesDir != "" {
		counts := make([]float64, m.M())
		for col := range counts {
			counts[col] = float64(m.NeighborCount(col))
		}
		volume, err := m.Project(counts, math.NaN())
		if err != nil {
			log.Fatalf("Projection failed: %v", err)
		}
		viewer, err := visualization.NewViewer(volume, m.Dims())
		if err != nil {
			log.Fatalf("Viewer failed: %v", err)
		}
		for _, axis := range []string{"x", "y", "z"} {
			axisDir := filepath.Join(cfg.Output.SlicesDir, axis)
			fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)
			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}
	}
}
