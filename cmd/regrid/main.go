// Package main provides the regrid command-line exporter. It reads a reduced
// Gaussian field from a NetCDF file, resamples it onto a regular
// latitude/longitude grid and writes the result to a new NetCDF file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"go.ngs.io/regrid/internal/adapter/fieldio"
	"go.ngs.io/regrid/internal/config"
	"go.ngs.io/regrid/internal/domain"
	"go.ngs.io/regrid/internal/usecase"
)

const version = "0.1.0"

func main() {
	input := flag.String("input", "", "Input NetCDF file (required)")
	output := flag.String("output", "", "Output NetCDF file (required)")
	varName := flag.String("var", "values", "Field variable name in the input file")
	variant := flag.String("variant", "", "Source grid variant, e.g. o1280 (overrides -domain/-grid)")
	domainName := flag.String("domain", "EcmwfEcpdsDomain", "Registry domain name")
	gridName := flag.String("grid", "ifs", "Registry grid name within the domain")
	gridsFile := flag.String("grids", "", "Grid registry JSON file (default: built-in registry)")
	dlat := flag.Float64("dlat", 0.25, "Target latitude resolution in degrees")
	dlon := flag.Float64("dlon", 0.25, "Target longitude resolution in degrees")
	latMin := flag.Float64("lat-min", math.NaN(), "Target minimum latitude (default: grid's southernmost line)")
	latMax := flag.Float64("lat-max", math.NaN(), "Target maximum latitude (default: grid's northernmost line)")
	lonMin := flag.Float64("lon-min", -180, "Target minimum longitude")
	lonMax := flag.Float64("lon-max", 180, "Target maximum longitude")
	method := flag.String("method", "linear", "Interpolation method: nearest, linear or cubic")
	fill := flag.Float64("fill", math.NaN(), "Fill value for unreachable target points")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("regrid version %s\n", version)
		return
	}
	if *input == "" || *output == "" {
		flag.Usage()
		os.Exit(2)
	}

	sourceVariant, err := resolveVariant(*variant, *domainName, *gridName, *gridsFile)
	if err != nil {
		log.Fatalf("Failed to resolve source grid: %v", err)
	}
	log.Printf("Source grid: %s (%d points)", sourceVariant, sourceVariant.Count())

	log.Printf("Reading %s from %s", *varName, *input)
	field, err := fieldio.ReadField(*input, *varName)
	if err != nil {
		log.Fatalf("Failed to read field: %v", err)
	}
	log.Printf("Field: %d values, %d time steps", len(field.Values), field.Steps)

	req := usecase.ResampleRequest{
		Variant:    string(sourceVariant),
		Resolution: [2]float64{*dlat, *dlon},
		LonRange:   &[2]float64{*lonMin, *lonMax},
		Method:     *method,
		Fill:       *fill,
	}
	if !math.IsNaN(*latMin) || !math.IsNaN(*latMax) {
		lo, hi := sourceVariant.LatBounds()
		if !math.IsNaN(*latMin) {
			lo = *latMin
		}
		if !math.IsNaN(*latMax) {
			hi = *latMax
		}
		req.LatRange = &[2]float64{lo, hi}
	}

	start := time.Now()
	uc := usecase.NewExportUseCase()
	result, err := uc.Execute(req, field)
	if err != nil {
		log.Fatalf("Resampling failed: %v", err)
	}
	ny, nx, steps := result.Shape()
	log.Printf("Resampled to %dx%d grid (%d steps) in %s", ny, nx, steps, time.Since(start).Round(time.Millisecond))

	outFill := *fill
	if math.IsNaN(outFill) {
		outFill = -9999
	}
	if err := fieldio.WriteRegular(*output, result, outFill); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Wrote %s", *output)
}

// resolveVariant determines the source grid variant from either the explicit
// -variant flag or a registry domain/grid pair. The registry entry must be a
// reduced Gaussian grid.
func resolveVariant(variant, domainName, gridName, gridsFile string) (domain.Variant, error) {
	if variant != "" {
		return domain.ParseVariant(variant)
	}

	registry := config.DefaultRegistry()
	if gridsFile != "" {
		var err error
		registry, err = config.LoadRegistry(gridsFile)
		if err != nil {
			return "", err
		}
	}

	grid, err := registry.Build(domainName, gridName)
	if err != nil {
		return "", err
	}
	gg, ok := grid.(domain.GaussianGrid)
	if !ok {
		return "", errors.New("registry grid is not a reduced Gaussian grid; use -variant instead")
	}
	return gg.Type, nil
}
