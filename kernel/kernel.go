// Package kernel defines the covariance-kernel expression tree consumed by
// the covgraph compiler: a closed set of elementary kernels plus additive
// and multiplicative composition, all immutable after construction.
//
// The compiler dispatches on the exact concrete type of each node. A custom
// type implementing Kernel is therefore rejected as an unsupported
// construct rather than silently treated like a structurally similar
// built-in.
package kernel

import (
	"fmt"
	"math"
	"strings"
)

// Kernel is a node of a covariance-kernel expression tree. Leaf kernels
// carry only scalar (or small fixed-size) numeric parameters, never tensors.
type Kernel interface {
	fmt.Stringer

	// Stationary reports whether the kernel depends only on point
	// differences, not absolute positions.
	Stationary() bool
}

// SumKernel is the elementwise sum of two sub-kernels.
type SumKernel struct {
	K1, K2 Kernel
}

// ProductKernel is the elementwise product of two sub-kernels.
type ProductKernel struct {
	K1, K2 Kernel
}

// ConstantKernel evaluates to a fixed value for every pair of points.
type ConstantKernel struct {
	Value float64
}

// RBFKernel is the squared-exponential kernel exp(-d²/2) over points scaled
// by the length-scale. LengthScale holds one entry for an isotropic kernel
// or one entry per feature (ARD).
type RBFKernel struct {
	LengthScale []float64
}

// MaternKernel generalizes RBF with a smoothness parameter Nu. Only
// ν ∈ {0.5, 1.5, 2.5, +Inf} have closed forms the compiler supports.
type MaternKernel struct {
	LengthScale []float64
	Nu          float64
}

// RationalQuadraticKernel is a scale mixture of RBF kernels:
// (1 + d²/(2αℓ²))^(-α).
type RationalQuadraticKernel struct {
	LengthScale float64
	Alpha       float64
}

// ExpSineSquaredKernel models periodic functions:
// exp(-2 (sin(π d / p) / ℓ)²).
type ExpSineSquaredKernel struct {
	LengthScale float64
	Periodicity float64
}

// DotProductKernel is the non-stationary kernel X·Yᵗ + σ0².
type DotProductKernel struct {
	Sigma0 float64
}

// PairwiseKernel wraps a generic pairwise metric. Only the "cosine" metric
// is compilable; the remaining parameters exist for the metrics that carry
// them and are ignored by cosine.
type PairwiseKernel struct {
	Metric string
	Gamma  float64
	Degree int
	Coef0  float64
}

// WhiteKernel models independent noise: noise_level on the diagonal when a
// point set is paired with itself, zero between distinct sets.
type WhiteKernel struct {
	NoiseLevel float64
}

// Sum combines two kernels additively.
func Sum(k1, k2 Kernel) *SumKernel { return &SumKernel{K1: k1, K2: k2} }

// Product combines two kernels multiplicatively.
func Product(k1, k2 Kernel) *ProductKernel { return &ProductKernel{K1: k1, K2: k2} }

// Constant returns a constant kernel with the given value.
func Constant(value float64) *ConstantKernel { return &ConstantKernel{Value: value} }

// RBF returns an isotropic RBF kernel.
func RBF(lengthScale float64) *RBFKernel {
	return &RBFKernel{LengthScale: []float64{lengthScale}}
}

// RBFARD returns an RBF kernel with one length-scale per feature.
func RBFARD(lengthScales []float64) *RBFKernel {
	return &RBFKernel{LengthScale: append([]float64(nil), lengthScales...)}
}

// Matern returns an isotropic Matérn kernel with smoothness nu.
func Matern(lengthScale, nu float64) *MaternKernel {
	return &MaternKernel{LengthScale: []float64{lengthScale}, Nu: nu}
}

// MaternARD returns a Matérn kernel with one length-scale per feature.
func MaternARD(lengthScales []float64, nu float64) *MaternKernel {
	return &MaternKernel{LengthScale: append([]float64(nil), lengthScales...), Nu: nu}
}

// RationalQuadratic returns a rational-quadratic kernel.
func RationalQuadratic(lengthScale, alpha float64) *RationalQuadraticKernel {
	return &RationalQuadraticKernel{LengthScale: lengthScale, Alpha: alpha}
}

// ExpSineSquared returns a periodic kernel.
func ExpSineSquared(lengthScale, periodicity float64) *ExpSineSquaredKernel {
	return &ExpSineSquaredKernel{LengthScale: lengthScale, Periodicity: periodicity}
}

// DotProduct returns a dot-product kernel with inhomogeneity sigma0.
func DotProduct(sigma0 float64) *DotProductKernel { return &DotProductKernel{Sigma0: sigma0} }

// Pairwise returns a generic pairwise-metric kernel.
func Pairwise(metric string) *PairwiseKernel { return &PairwiseKernel{Metric: metric} }

// White returns a white-noise kernel.
func White(noiseLevel float64) *WhiteKernel { return &WhiteKernel{NoiseLevel: noiseLevel} }

func (k *SumKernel) String() string     { return fmt.Sprintf("%s + %s", k.K1, k.K2) }
func (k *ProductKernel) String() string { return fmt.Sprintf("%s * %s", k.K1, k.K2) }

func (k *ConstantKernel) String() string {
	return fmt.Sprintf("Constant(%g)", k.Value)
}

func (k *RBFKernel) String() string {
	return fmt.Sprintf("RBF(length_scale=%s)", formatScales(k.LengthScale))
}

func (k *MaternKernel) String() string {
	return fmt.Sprintf("Matern(length_scale=%s, nu=%g)", formatScales(k.LengthScale), k.Nu)
}

func (k *RationalQuadraticKernel) String() string {
	return fmt.Sprintf("RationalQuadratic(length_scale=%g, alpha=%g)", k.LengthScale, k.Alpha)
}

func (k *ExpSineSquaredKernel) String() string {
	return fmt.Sprintf("ExpSineSquared(length_scale=%g, periodicity=%g)", k.LengthScale, k.Periodicity)
}

func (k *DotProductKernel) String() string {
	return fmt.Sprintf("DotProduct(sigma_0=%g)", k.Sigma0)
}

func (k *PairwiseKernel) String() string {
	return fmt.Sprintf("PairwiseKernel(metric=%s)", k.Metric)
}

func (k *WhiteKernel) String() string {
	return fmt.Sprintf("WhiteKernel(noise_level=%g)", k.NoiseLevel)
}

func (k *SumKernel) Stationary() bool     { return k.K1.Stationary() && k.K2.Stationary() }
func (k *ProductKernel) Stationary() bool { return k.K1.Stationary() && k.K2.Stationary() }

func (k *ConstantKernel) Stationary() bool          { return true }
func (k *RBFKernel) Stationary() bool               { return true }
func (k *MaternKernel) Stationary() bool            { return true }
func (k *RationalQuadraticKernel) Stationary() bool { return true }
func (k *ExpSineSquaredKernel) Stationary() bool    { return true }
func (k *DotProductKernel) Stationary() bool        { return false }
func (k *PairwiseKernel) Stationary() bool          { return false }
func (k *WhiteKernel) Stationary() bool             { return true }

// NuInf is the Matérn smoothness value that reduces the kernel to RBF.
var NuInf = math.Inf(1)

func formatScales(scales []float64) string {
	if len(scales) == 1 {
		return fmt.Sprintf("%g", scales[0])
	}
	parts := make([]string, len(scales))
	for i, s := range scales {
		parts[i] = fmt.Sprintf("%g", s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
