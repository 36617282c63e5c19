// prepare-cities filters a raw simplemaps uscities.csv dump down to the
// city_state,lat,lng table the frostwatch server loads at startup.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/frostwatch/frostwatch/internal/cities"
)

func main() {
	in := flag.String("in", "data-raw/uscities.csv", "raw city list to read")
	out := flag.String("out", "data/cities.csv", "processed city table to write")
	minPop := flag.Int("min-population", 9999, "drop cities with population at or below this")
	flag.Parse()

	rawFile, err := os.Open(*in)
	if err != nil {
		log.Fatalf("open raw city list: %v", err)
	}
	defer rawFile.Close()

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create city table: %v", err)
	}

	n, err := cities.ProcessRaw(rawFile, outFile, *minPop)
	if err != nil {
		outFile.Close()
		log.Fatalf("process city list: %v", err)
	}
	if err := outFile.Close(); err != nil {
		log.Fatalf("close city table: %v", err)
	}

	log.Printf("wrote %d cities to %s", n, *out)
}
