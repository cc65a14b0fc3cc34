package shrink

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Distance orders shrink candidates by simplicity.
//
// Components are compared lexicographically. A component missing from the
// shorter of two distances counts as zero, so Of(3) and Of(3, 0) are equal.
// Additions saturate at math.MaxUint64.
type Distance struct {
	dims []uint64
}

// Of creates a distance with the given components.
func Of(dims ...uint64) Distance {
	if len(dims) == 0 {
		return Distance{}
	}
	out := make([]uint64, len(dims))
	copy(out, dims)
	return Distance{dims: out}
}

// Zero is the distance of a terminal value.
func Zero() Distance {
	return Distance{}
}

// FromBig converts a non-negative magnitude to a single component distance.
func FromBig(magnitude *big.Int) Distance {
	return Of(saturate(magnitude))
}

// ForCollection is the distance of a collection: its size first, then the
// component-wise sum of its element distances.
func ForCollection(size int, elements []Distance) Distance {
	return Of(uint64(size)).Append(Sum(elements...))
}

// Sum adds distances component by component.
func Sum(distances ...Distance) Distance {
	out := Distance{}
	for _, d := range distances {
		out = out.Plus(d)
	}
	return out
}

// Dims returns a copy of the components.
func (d Distance) Dims() []uint64 {
	out := make([]uint64, len(d.dims))
	copy(out, d.dims)
	return out
}

// Len returns the number of components.
func (d Distance) Len() int {
	return len(d.dims)
}

// Compare returns -1, 0 or 1 if d is smaller, equal or larger than other.
func (d Distance) Compare(other Distance) int {
	n := len(d.dims)
	if len(other.dims) > n {
		n = len(other.dims)
	}
	for i := 0; i < n; i++ {
		a, b := d.at(i), other.at(i)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// LessOrEqual reports whether d does not exceed other.
func (d Distance) LessOrEqual(other Distance) bool {
	return d.Compare(other) <= 0
}

// Less reports whether d is strictly smaller than other.
func (d Distance) Less(other Distance) bool {
	return d.Compare(other) < 0
}

// IsZero reports whether every component is zero.
func (d Distance) IsZero() bool {
	for _, v := range d.dims {
		if v != 0 {
			return false
		}
	}
	return true
}

// Plus adds other component by component.
func (d Distance) Plus(other Distance) Distance {
	n := len(d.dims)
	if len(other.dims) > n {
		n = len(other.dims)
	}
	if n == 0 {
		return Distance{}
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = saturatingAdd(d.at(i), other.at(i))
	}
	return Distance{dims: out}
}

// Append concatenates the components of other after the components of d.
func (d Distance) Append(other Distance) Distance {
	out := make([]uint64, 0, len(d.dims)+len(other.dims))
	out = append(out, d.dims...)
	out = append(out, other.dims...)
	return Distance{dims: out}
}

func (d Distance) String() string {
	parts := make([]string, len(d.dims))
	for i, v := range d.dims {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (d Distance) at(i int) uint64 {
	if i < len(d.dims) {
		return d.dims[i]
	}
	return 0
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func saturate(v *big.Int) uint64 {
	if v.Sign() <= 0 {
		return 0
	}
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}
