// Command shp2regions converts a Natural Earth admin-0 shapefile into the
// slim regions GeoJSON the map server loads.
package main

import (
	"flag"
	"log"
)

func main() {
	inputPath := flag.String("input", "", "Path to input .shp file")
	outputPath := flag.String("output", "data/regions.geojson", "Path to output .geojson file")
	tolerance := flag.Float64("tolerance", 0.01, "Douglas-Peucker tolerance in degrees (0 keeps every vertex)")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		log.Fatal("Input path is required")
	}

	n, err := run(*inputPath, *outputPath, *tolerance)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d regions to %s", n, *outputPath)
}
