package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertGate checks that every gate value is a valid sigmoid output.
func assertGate(t *testing.T, gate *tensor.Tensor[float32, *cpu.CPUBackend]) {
	t.Helper()
	for i, v := range gate.Data() {
		require.Greater(t, v, float32(0), "gate[%d]", i)
		require.Less(t, v, float32(1), "gate[%d]", i)
	}
}

// TestChannelAttention_GateShape tests the per-channel gate contract.
func TestChannelAttention_GateShape(t *testing.T) {
	backend := cpu.New()

	ca := NewChannelAttention(32, 16, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 32, 5, 7}, backend)
	gate := ca.Forward(input)

	expected := tensor.Shape{2, 32, 1, 1}
	assert.True(t, gate.Shape().Equal(expected),
		"expected %v, got %v", expected, gate.Shape())
	assertGate(t, gate)
}

// TestChannelAttention_ZeroExcitation tests that zeroed projections yield a
// neutral gate of exactly sigmoid(0) = 0.5.
func TestChannelAttention_ZeroExcitation(t *testing.T) {
	backend := cpu.New()

	ca := NewChannelAttention(16, 16, backend)
	zeroWeight(ca.fc1)
	zeroWeight(ca.fc2)

	input := tensor.Randn[float32](tensor.Shape{1, 16, 4, 4}, backend)
	gate := ca.Forward(input)

	for i, v := range gate.Data() {
		assert.Equal(t, float32(0.5), v, "gate[%d]", i)
	}
}

// TestChannelAttention_CollapsePanics tests the squeeze-width contract.
func TestChannelAttention_CollapsePanics(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() { NewChannelAttention(8, 16, backend) })
}

// TestSpatialAttention_GateShape tests the per-position gate contract.
func TestSpatialAttention_GateShape(t *testing.T) {
	backend := cpu.New()

	sa := NewSpatialAttention[*cpu.CPUBackend](7, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 8, 9, 11}, backend)
	gate := sa.Forward(input)

	expected := tensor.Shape{2, 1, 9, 11}
	assert.True(t, gate.Shape().Equal(expected),
		"expected %v, got %v", expected, gate.Shape())
	assertGate(t, gate)
}

// TestSpatialAttention_EvenKernelPanics tests the odd-kernel contract.
func TestSpatialAttention_EvenKernelPanics(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() { NewSpatialAttention[*cpu.CPUBackend](4, backend) })
}

// TestCBAM_PreservesShape tests the gated output shape.
func TestCBAM_PreservesShape(t *testing.T) {
	backend := cpu.New()

	cbam := NewCBAM(32, 16, 7, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 32, 8, 8}, backend)
	output := cbam.Forward(input)

	assert.True(t, output.Shape().Equal(input.Shape()))
}

// TestCBAM_NeutralGatesQuarter tests the composition of the two gates: with
// all gate weights zeroed each gate is exactly 0.5, so the block scales its
// input by exactly 0.25.
func TestCBAM_NeutralGatesQuarter(t *testing.T) {
	backend := cpu.New()

	cbam := NewCBAM(16, 16, 7, backend)
	zeroWeight(cbam.ca.fc1)
	zeroWeight(cbam.ca.fc2)
	zeroWeight(cbam.sa.conv)

	input := tensor.Randn[float32](tensor.Shape{1, 16, 4, 4}, backend)
	want := append([]float32(nil), input.Data()...)

	output := cbam.Forward(input)

	got := output.Data()
	for i := range want {
		assert.Equal(t, want[i]*0.25, got[i], "output[%d]", i)
	}
}
