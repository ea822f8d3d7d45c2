package graph

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/covgraph-ml/covgraph/internal/tensor"
)

// CustomDomain is the domain tag for ops outside the core vocabulary,
// currently only the fused pairwise-distance primitive.
const CustomDomain = "ai.covgraph"

// Value is an opaque handle to a named value produced by a graph input,
// an initializer, or a node output. Values are never mutated after creation.
type Value struct {
	name  string
	dtype tensor.DataType
	dims  []int64 // nil when unknown at compile time
}

// Name returns the value's graph-wide unique name.
func (v *Value) Name() string { return v.name }

// DType returns the value's element type.
func (v *Value) DType() tensor.DataType { return v.dtype }

// Dims returns the value's dimensions if known, nil otherwise.
// A dimension of -1 is dynamic.
func (v *Value) Dims() []int64 { return v.dims }

// Builder constructs a Graph by appending nodes. It owns the value-name
// space: generated names never collide, and caller-chosen names must be
// reserved up front. Builders are not safe for concurrent use; independent
// compilations should each use their own.
type Builder struct {
	g        *Graph
	used     map[string]bool
	reserved map[string]bool
	seq      map[string]int
	err      error
}

// NewBuilder creates a Builder targeting the given operation-set version.
// A zero or negative version is a configuration error.
func NewBuilder(name string, opset int) (*Builder, error) {
	if opset <= 0 {
		return nil, errors.Errorf("operation-set version must be a positive integer, got %d", opset)
	}
	return &Builder{
		g:        &Graph{Name: name, Opset: opset},
		used:     make(map[string]bool),
		reserved: make(map[string]bool),
		seq:      make(map[string]int),
	}, nil
}

// Opset returns the operation-set version every emitted node is tagged with.
func (b *Builder) Opset() int { return b.g.Opset }

// Err returns the first name-collision error recorded during emission.
// A builder with a non-nil Err holds a partial graph and must be discarded.
func (b *Builder) Err() error { return b.err }

// Graph returns the built graph.
func (b *Builder) Graph() *Graph { return b.g }

// Input declares a graph input with the given element type and dimensions
// (-1 for dynamic).
func (b *Builder) Input(name string, dtype tensor.DataType, dims []int64) (*Value, error) {
	if err := b.claim(name); err != nil {
		return nil, err
	}
	b.g.Inputs = append(b.g.Inputs, ValueInfo{Name: name, DataType: dtype, Dims: dims})
	return &Value{name: name, dtype: dtype, dims: dims}, nil
}

// Constant registers t as a named initializer and returns its handle.
func (b *Builder) Constant(t *tensor.RawTensor) *Value {
	name := b.fresh("const")
	b.g.Initializers = append(b.g.Initializers, Tensor{Name: name, Value: t})
	dims := make([]int64, len(t.Shape()))
	for i, d := range t.Shape() {
		dims[i] = int64(d)
	}
	return &Value{name: name, dtype: t.DType(), dims: dims}
}

// Reserve sets a name aside for a later explicitly-named node output.
func (b *Builder) Reserve(name string) error {
	if err := b.claim(name); err != nil {
		return err
	}
	b.reserved[name] = true
	return nil
}

// MarkOutput declares v as a graph output.
func (b *Builder) MarkOutput(v *Value) {
	b.g.Outputs = append(b.g.Outputs, ValueInfo{Name: v.name, DataType: v.dtype, Dims: v.dims})
}

func (b *Builder) claim(name string) error {
	if name == "" {
		return errors.New("value name must not be empty")
	}
	if b.used[name] {
		return errors.Errorf("value name %q already in use", name)
	}
	b.used[name] = true
	return nil
}

func (b *Builder) fresh(prefix string) string {
	for {
		n := b.seq[prefix]
		b.seq[prefix]++
		name := fmt.Sprintf("%s_%d", prefix, n)
		if !b.used[name] {
			b.used[name] = true
			return name
		}
	}
}

// emit appends a single-output node. An explicit output name must have been
// reserved beforehand; a collision poisons the builder (see Err).
func (b *Builder) emit(opType, domain string, inputs []*Value, attrs []Attribute, dtype tensor.DataType, name []string) *Value {
	var out string
	switch {
	case len(name) > 0 && name[0] != "":
		out = name[0]
		if b.reserved[out] {
			delete(b.reserved, out)
		} else if b.used[out] {
			if b.err == nil {
				b.err = errors.Errorf("output name %q collides with an existing value", out)
			}
		} else {
			b.used[out] = true
		}
	default:
		out = b.fresh(strings.ToLower(opType))
	}

	inNames := make([]string, len(inputs))
	for i, in := range inputs {
		inNames[i] = in.name
	}
	b.g.Nodes = append(b.g.Nodes, Node{
		Name:       out,
		OpType:     opType,
		Domain:     domain,
		Inputs:     inNames,
		Outputs:    []string{out},
		Attributes: attrs,
		Opset:      b.g.Opset,
	})
	return &Value{name: out, dtype: dtype}
}

// Elementwise arithmetic.

// Add emits an elementwise addition node.
func (b *Builder) Add(x, y *Value, name ...string) *Value {
	return b.emit("Add", "", []*Value{x, y}, nil, x.dtype, name)
}

// Sub emits an elementwise subtraction node.
func (b *Builder) Sub(x, y *Value, name ...string) *Value {
	return b.emit("Sub", "", []*Value{x, y}, nil, x.dtype, name)
}

// Mul emits an elementwise multiplication node.
func (b *Builder) Mul(x, y *Value, name ...string) *Value {
	return b.emit("Mul", "", []*Value{x, y}, nil, x.dtype, name)
}

// Div emits an elementwise division node.
func (b *Builder) Div(x, y *Value, name ...string) *Value {
	return b.emit("Div", "", []*Value{x, y}, nil, x.dtype, name)
}

// Pow emits an elementwise power node.
func (b *Builder) Pow(x, y *Value, name ...string) *Value {
	return b.emit("Pow", "", []*Value{x, y}, nil, x.dtype, name)
}

// Neg emits an elementwise negation node.
func (b *Builder) Neg(x *Value, name ...string) *Value {
	return b.emit("Neg", "", []*Value{x}, nil, x.dtype, name)
}

// Exp emits an elementwise exponential node.
func (b *Builder) Exp(x *Value, name ...string) *Value {
	return b.emit("Exp", "", []*Value{x}, nil, x.dtype, name)
}

// Sin emits an elementwise sine node.
func (b *Builder) Sin(x *Value, name ...string) *Value {
	return b.emit("Sin", "", []*Value{x}, nil, x.dtype, name)
}

// Sqrt emits an elementwise square-root node.
func (b *Builder) Sqrt(x *Value, name ...string) *Value {
	return b.emit("Sqrt", "", []*Value{x}, nil, x.dtype, name)
}

// Relu emits an elementwise max(x, 0) node.
func (b *Builder) Relu(x *Value, name ...string) *Value {
	return b.emit("Relu", "", []*Value{x}, nil, x.dtype, name)
}

// Matrix and reduction ops.

// MatMul emits a 2-D matrix multiplication node.
func (b *Builder) MatMul(x, y *Value, name ...string) *Value {
	return b.emit("MatMul", "", []*Value{x, y}, nil, x.dtype, name)
}

// Transpose emits a dimension-permutation node.
func (b *Builder) Transpose(x *Value, perm []int64, name ...string) *Value {
	attrs := []Attribute{{Name: "perm", Type: AttrInts, Ints: perm}}
	return b.emit("Transpose", "", []*Value{x}, attrs, x.dtype, name)
}

// ReduceSumSquare emits a sum-of-squares reduction along the given axes.
func (b *Builder) ReduceSumSquare(x *Value, axes []int64, keepdims bool, name ...string) *Value {
	attrs := []Attribute{
		{Name: "axes", Type: AttrInts, Ints: axes},
		{Name: "keepdims", Type: AttrInt, I: boolToInt(keepdims)},
	}
	return b.emit("ReduceSumSquare", "", []*Value{x}, attrs, x.dtype, name)
}

// ReduceL2 emits an L2-norm reduction along the given axes.
func (b *Builder) ReduceL2(x *Value, axes []int64, keepdims bool, name ...string) *Value {
	attrs := []Attribute{
		{Name: "axes", Type: AttrInts, Ints: axes},
		{Name: "keepdims", Type: AttrInt, I: boolToInt(keepdims)},
	}
	return b.emit("ReduceL2", "", []*Value{x}, attrs, x.dtype, name)
}

// Squeeze emits a node removing the given size-1 axes.
func (b *Builder) Squeeze(x *Value, axes []int64, name ...string) *Value {
	attrs := []Attribute{{Name: "axes", Type: AttrInts, Ints: axes}}
	return b.emit("Squeeze", "", []*Value{x}, attrs, x.dtype, name)
}

// Shape-driven constant construction.

// Shape emits a runtime shape-query node producing a 1-D int64 tensor.
func (b *Builder) Shape(x *Value, name ...string) *Value {
	return b.emit("Shape", "", []*Value{x}, nil, tensor.Int64, name)
}

// Gather emits a node selecting entries of x by int64 indices.
func (b *Builder) Gather(x, indices *Value, name ...string) *Value {
	attrs := []Attribute{{Name: "axis", Type: AttrInt, I: 0}}
	return b.emit("Gather", "", []*Value{x, indices}, attrs, x.dtype, name)
}

// Concat emits a node concatenating 1-D values along axis 0.
func (b *Builder) Concat(inputs []*Value, name ...string) *Value {
	attrs := []Attribute{{Name: "axis", Type: AttrInt, I: 0}}
	return b.emit("Concat", "", inputs, attrs, inputs[0].dtype, name)
}

// ConstantOfShape emits a node building a tensor of the runtime shape held
// by shape, filled with value's single element.
func (b *Builder) ConstantOfShape(shape *Value, value *tensor.RawTensor, name ...string) *Value {
	attrs := []Attribute{{Name: "value", Type: AttrTensor, T: value}}
	return b.emit("ConstantOfShape", "", []*Value{shape}, attrs, value.DType(), name)
}

// EyeLike emits a node producing an identity matrix shaped like x.
func (b *Builder) EyeLike(x *Value, name ...string) *Value {
	return b.emit("EyeLike", "", []*Value{x}, nil, x.dtype, name)
}

// Identity emits a pass-through node, used to attach a caller-chosen name
// to an existing value.
func (b *Builder) Identity(x *Value, name ...string) *Value {
	return b.emit("Identity", "", []*Value{x}, nil, x.dtype, name)
}

// CDist emits the fused pairwise-distance primitive for runtimes that
// support it. Metric is "euclidean" or "sqeuclidean".
func (b *Builder) CDist(x, y *Value, metric string, name ...string) *Value {
	attrs := []Attribute{{Name: "metric", Type: AttrString, S: metric}}
	return b.emit("CDist", CustomDomain, []*Value{x, y}, attrs, x.dtype, name)
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
