// Package detect post-processes raw detection-head output into boxes: it
// decodes candidate rows, applies confidence filtering and per-class
// non-maximum suppression, and converts images into input tensors.
package detect

import (
	"fmt"
	"sort"

	"github.com/keel-ml/keel/internal/tensor"
)

// Detection is a single suppressed box in corner form, in the coordinate
// space of the prediction (model input pixels).
type Detection struct {
	XMin       float32
	YMin       float32
	XMax       float32
	YMax       float32
	Confidence float32
	ClassID    int
}

// Config controls suppression. The zero value is NOT usable; start from
// DefaultConfig.
type Config struct {
	// ConfThreshold drops candidates whose objectness * class score falls
	// below it.
	ConfThreshold float32

	// IoUThreshold suppresses a lower-scored box when its overlap with an
	// already kept box of the same class exceeds it.
	IoUThreshold float32

	// Classes, when non-nil, keeps only detections of the listed class IDs.
	Classes []int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		ConfThreshold: 0.3,
		IoUThreshold:  0.6,
	}
}

// NonMaxSuppression reduces one image's raw head output to final detections.
//
// pred has shape (boxes, 5+classes): center-x, center-y, width, height,
// objectness, then one score per class. Candidates score objectness * best
// class score; survivors are kept greedily by descending score, suppressing
// same-class boxes that overlap a kept box beyond the IoU threshold.
func NonMaxSuppression[B tensor.Backend](pred *tensor.Tensor[float32, B], cfg Config) []Detection {
	shape := pred.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("nms: expected 2D predictions (boxes, 5+classes), got %dD", len(shape)))
	}
	if shape[1] < 6 {
		panic(fmt.Sprintf("nms: row width %d too small, need at least 5+1", shape[1]))
	}

	var classFilter map[int]bool
	if cfg.Classes != nil {
		classFilter = make(map[int]bool, len(cfg.Classes))
		for _, c := range cfg.Classes {
			classFilter[c] = true
		}
	}

	row := shape[1]
	numClasses := row - 5
	data := pred.Data()

	candidates := make([]Detection, 0, 64)
	for i := 0; i < shape[0]; i++ {
		p := data[i*row : (i+1)*row]

		obj := p[4]
		if obj < cfg.ConfThreshold {
			continue
		}

		bestClass, bestScore := 0, float32(-1)
		for c := 0; c < numClasses; c++ {
			if p[5+c] > bestScore {
				bestClass, bestScore = c, p[5+c]
			}
		}
		conf := obj * bestScore
		if conf < cfg.ConfThreshold {
			continue
		}
		if classFilter != nil && !classFilter[bestClass] {
			continue
		}

		cx, cy, w, h := p[0], p[1], p[2], p[3]
		candidates = append(candidates, Detection{
			XMin:       cx - w/2,
			YMin:       cy - h/2,
			XMax:       cx + w/2,
			YMax:       cy + h/2,
			Confidence: conf,
			ClassID:    bestClass,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	kept := make([]Detection, 0, len(candidates))
	for _, cand := range candidates {
		suppressed := false
		for _, k := range kept {
			if k.ClassID == cand.ClassID && iou(k, cand) > cfg.IoUThreshold {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, cand)
		}
	}
	return kept
}

// iou computes intersection over union of two corner-form boxes.
func iou(a, b Detection) float32 {
	ix := min(a.XMax, b.XMax) - max(a.XMin, b.XMin)
	iy := min(a.YMax, b.YMax) - max(a.YMin, b.YMin)
	if ix <= 0 || iy <= 0 {
		return 0
	}
	inter := ix * iy
	areaA := (a.XMax - a.XMin) * (a.YMax - a.YMin)
	areaB := (b.XMax - b.XMin) * (b.YMax - b.YMin)
	return inter / (areaA + areaB - inter)
}
