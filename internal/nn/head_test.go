package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlatten tests the batch-preserving collapse.
func TestFlatten(t *testing.T) {
	backend := cpu.New()

	flatten := NewFlatten[*cpu.CPUBackend]()
	input := tensor.Randn[float32](tensor.Shape{2, 3, 4, 5}, backend)
	output := flatten.Forward(input)

	expected := tensor.Shape{2, 60}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
	assert.Nil(t, flatten.Parameters())
}

// TestClassify_ForwardShape tests the single-map head.
func TestClassify_ForwardShape(t *testing.T) {
	backend := cpu.New()

	head := NewClassify(8, 10, 1, 1, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 8, 5, 7}, backend)
	output := head.Forward(input)

	expected := tensor.Shape{2, 10}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestClassify_PooledValues tests the pooling + projection arithmetic: with
// a ones input each pooled descriptor is exactly 1, and with a ones weight
// each score is exactly the input channel count.
func TestClassify_PooledValues(t *testing.T) {
	backend := cpu.New()

	head := NewClassify(8, 3, 1, 1, backend)
	weight := head.conv.weight.Tensor().Raw().AsFloat32()
	for i := range weight {
		weight[i] = 1
	}

	input := tensor.Ones[float32](tensor.Shape{2, 8, 4, 4}, backend)
	output := head.ForwardList([]*tensor.Tensor[float32, *cpu.CPUBackend]{input})

	require.True(t, output.Shape().Equal(tensor.Shape{2, 3}))
	for i, v := range output.Data() {
		assert.Equal(t, float32(8), v, "score[%d]", i)
	}
}

// TestClassify_MultiInput tests pooling several maps of different spatial
// sizes into one score vector.
func TestClassify_MultiInput(t *testing.T) {
	backend := cpu.New()

	// 8 + 4 pooled channels feed the projection.
	head := NewClassify(12, 5, 1, 1, backend)

	a := tensor.Randn[float32](tensor.Shape{2, 8, 6, 6}, backend)
	b := tensor.Randn[float32](tensor.Shape{2, 4, 3, 9}, backend)
	output := head.ForwardList([]*tensor.Tensor[float32, *cpu.CPUBackend]{a, b})

	expected := tensor.Shape{2, 5}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestClassify_NoInputsPanics tests the non-empty contract.
func TestClassify_NoInputsPanics(t *testing.T) {
	backend := cpu.New()

	head := NewClassify(8, 3, 1, 1, backend)
	assert.Panics(t, func() { head.ForwardList(nil) })
}

// TestConcat_ForwardList tests the junction block.
func TestConcat_ForwardList(t *testing.T) {
	backend := cpu.New()

	concat := NewConcat[*cpu.CPUBackend](1)

	a := tensor.Randn[float32](tensor.Shape{1, 3, 4, 4}, backend)
	b := tensor.Randn[float32](tensor.Shape{1, 5, 4, 4}, backend)
	output := concat.ForwardList([]*tensor.Tensor[float32, *cpu.CPUBackend]{a, b})

	expected := tensor.Shape{1, 8, 4, 4}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())

	// Single input passes through untouched.
	assert.Same(t, a, concat.ForwardList([]*tensor.Tensor[float32, *cpu.CPUBackend]{a}))
}
