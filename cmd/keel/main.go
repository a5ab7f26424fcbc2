// Package main provides the Keel CLI.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/keel-ml/keel/backend/cpu"
	"github.com/keel-ml/keel/detect"
	"github.com/keel-ml/keel/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Keel %s\n", version)
			return
		case "detect":
			if err := runDetect(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "keel detect: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Keel - Detection Backbones for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                  Show version")
	fmt.Println("  detect <pred-file>       Run non-max suppression over a prediction matrix")
	fmt.Println("")
	fmt.Println("Coming soon: bench, export")
}

// runDetect reads a whitespace-separated prediction matrix (one candidate
// per line: cx cy w h objectness class-scores...) and prints the surviving
// boxes after non-max suppression.
func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	conf := fs.Float64("conf", 0.3, "Confidence threshold")
	iou := fs.Float64("iou", 0.6, "IoU threshold for suppression")
	classes := fs.String("classes", "", "Comma-separated class IDs to keep (empty = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: keel detect [-conf 0.3] [-iou 0.6] [-classes 0,2] <pred-file>")
	}

	rows, width, err := readPredictions(fs.Arg(0))
	if err != nil {
		return err
	}

	backend := cpu.New()
	pred, err := tensor.FromSlice(rows, tensor.Shape{len(rows) / width, width}, backend)
	if err != nil {
		return err
	}

	cfg := detect.Config{
		ConfThreshold: float32(*conf),
		IoUThreshold:  float32(*iou),
	}
	if *classes != "" {
		for _, field := range strings.Split(*classes, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("invalid class ID %q", field)
			}
			cfg.Classes = append(cfg.Classes, id)
		}
	}

	boxes := detect.NonMaxSuppression(pred, cfg)
	fmt.Printf("%d candidates -> %d boxes\n", len(rows)/width, len(boxes))
	for _, box := range boxes {
		fmt.Printf("class %d  conf %.3f  (%.1f, %.1f) - (%.1f, %.1f)\n",
			box.ClassID, box.Confidence, box.XMin, box.YMin, box.XMax, box.YMax)
	}
	return nil
}

// readPredictions parses the matrix file, requiring every row to carry the
// same number of columns (at least 6: box, objectness, one class score).
func readPredictions(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var rows []float32
	width := 0

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if width == 0 {
			if len(fields) < 6 {
				return nil, 0, fmt.Errorf("line %d: need at least 6 columns, got %d", line, len(fields))
			}
			width = len(fields)
		} else if len(fields) != width {
			return nil, 0, fmt.Errorf("line %d: got %d columns, want %d", line, len(fields), width)
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: invalid number %q", line, field)
			}
			rows = append(rows, float32(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	if width == 0 {
		return nil, 0, fmt.Errorf("no predictions in %s", path)
	}
	return rows, width, nil
}
