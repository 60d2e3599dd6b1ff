// Command create-model generates the classifier weight file with
// seeded random parameters. Run once before starting the service; for
// real predictions replace the file with trained weights in the same
// format.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/classifier"
)

func main() {
	var (
		path = flag.String("out", "model/solar_model.bin", "output path for the weight file")
		seed = flag.Int64("seed", 1, "seed for the random parameter initialization")
	)
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create model directory: %v\n", err)
		os.Exit(1)
	}

	model := classifier.NewRandom(*seed)
	if err := model.Save(*path); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save model: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to stat model file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Note: this is a placeholder model with random weights, for demo use only.")
	fmt.Printf("Model saved to %s (%.2f KB)\n", *path, float64(info.Size())/1024)
}
