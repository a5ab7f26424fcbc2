package detect

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/keel-ml/keel/internal/tensor"
)

// FromImage resizes an image to the model input size with bilinear filtering
// and converts it into a (1, 3, height, width) float32 tensor with RGB
// channels scaled to [0, 1].
func FromImage[B tensor.Backend](img image.Image, width, height int, backend B) (*tensor.Tensor[float32, B], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("detect: invalid input size %dx%d", width, height)
	}

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)

	// RGBA interleaved -> planar CHW, [0, 255] -> [0, 1]
	plane := width * height
	data := make([]float32, 3*plane)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := (y*width + x) * 4
			idx := y*width + x
			data[idx] = float32(resized.Pix[offset]) / 255.0
			data[plane+idx] = float32(resized.Pix[offset+1]) / 255.0
			data[2*plane+idx] = float32(resized.Pix[offset+2]) / 255.0
		}
	}

	return tensor.FromSlice[float32](data, tensor.Shape{1, 3, height, width}, backend)
}
