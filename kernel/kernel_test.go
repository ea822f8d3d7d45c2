package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		k    Kernel
		want string
	}{
		{Constant(1.5), "Constant(1.5)"},
		{RBF(1), "RBF(length_scale=1)"},
		{RBFARD([]float64{1, 2.5}), "RBF(length_scale=[1, 2.5])"},
		{Matern(0.5, 1.5), "Matern(length_scale=0.5, nu=1.5)"},
		{Matern(1, NuInf), "Matern(length_scale=1, nu=+Inf)"},
		{RationalQuadratic(1, 0.5), "RationalQuadratic(length_scale=1, alpha=0.5)"},
		{ExpSineSquared(1, 3), "ExpSineSquared(length_scale=1, periodicity=3)"},
		{DotProduct(2), "DotProduct(sigma_0=2)"},
		{Pairwise("cosine"), "PairwiseKernel(metric=cosine)"},
		{White(0.1), "WhiteKernel(noise_level=0.1)"},
		{Sum(Constant(2), RBF(1)), "Constant(2) + RBF(length_scale=1)"},
		{Product(Constant(2), RBF(1)), "Constant(2) * RBF(length_scale=1)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.k.String())
	}
}

func TestStationary(t *testing.T) {
	assert.True(t, Constant(1).Stationary())
	assert.True(t, RBF(1).Stationary())
	assert.True(t, Matern(1, 1.5).Stationary())
	assert.True(t, RationalQuadratic(1, 1).Stationary())
	assert.True(t, ExpSineSquared(1, 1).Stationary())
	assert.True(t, White(1).Stationary())
	assert.False(t, DotProduct(1).Stationary())
	assert.False(t, Pairwise("cosine").Stationary())

	// composites are stationary only when both children are
	assert.True(t, Sum(RBF(1), White(0.1)).Stationary())
	assert.False(t, Sum(RBF(1), DotProduct(1)).Stationary())
	assert.False(t, Product(DotProduct(1), Constant(2)).Stationary())
}

func TestConstructorsCopyScales(t *testing.T) {
	scales := []float64{1, 2}
	k := RBFARD(scales)
	scales[0] = 99
	assert.Equal(t, []float64{1, 2}, k.LengthScale)

	m := MaternARD([]float64{3, 4}, 2.5)
	assert.Equal(t, []float64{3, 4}, m.LengthScale)
	assert.Equal(t, 2.5, m.Nu)
}
