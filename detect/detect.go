// Copyright 2025 Keel ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package detect provides post-processing for detection model outputs and
// image-to-tensor ingestion.
//
// # Overview
//
// A detection head emits a prediction matrix with one row per candidate box:
// center x, center y, width, height, objectness, then one score per class.
// NonMaxSuppression turns that matrix into a final list of boxes.
//
// Example:
//
//	import (
//	    "github.com/keel-ml/keel/backend/cpu"
//	    "github.com/keel-ml/keel/detect"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    input, _ := detect.FromImage(img, 640, 640, backend)
//
//	    pred := model.Forward(input)
//	    boxes := detect.NonMaxSuppression(pred, detect.DefaultConfig())
//	    for _, box := range boxes {
//	        fmt.Printf("class %d at (%.0f, %.0f) conf %.2f\n",
//	            box.ClassID, box.XMin, box.YMin, box.Confidence)
//	    }
//	}
package detect

import (
	"image"

	"github.com/keel-ml/keel/internal/detect"
	"github.com/keel-ml/keel/tensor"
)

// Detection is one final box in corner coordinates with its confidence
// and class.
type Detection = detect.Detection

// Config holds the thresholds and class filter for non-max suppression.
type Config = detect.Config

// DefaultConfig returns the standard thresholds: confidence 0.3, IoU 0.6,
// no class filter.
func DefaultConfig() Config {
	return detect.DefaultConfig()
}

// NonMaxSuppression filters a prediction matrix of shape (rows, 5+classes)
// into a list of boxes. Candidates below the confidence threshold are
// dropped; of two same-class boxes overlapping above the IoU threshold,
// only the more confident survives.
func NonMaxSuppression[B tensor.Backend](pred *tensor.Tensor[float32, B], cfg Config) []Detection {
	return detect.NonMaxSuppression(pred, cfg)
}

// FromImage resizes an image to width x height with bilinear interpolation
// and converts it to a normalized (1, 3, height, width) float32 tensor in
// RGB channel order.
func FromImage[B tensor.Backend](img image.Image, width, height int, backend B) (*tensor.Tensor[float32, B], error) {
	return detect.FromImage(img, width, height, backend)
}
