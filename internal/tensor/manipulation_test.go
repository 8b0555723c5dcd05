package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arange(n int) []float32 {
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i)
	}
	return data
}

func TestReshapeContiguousIsZeroCopy(t *testing.T) {
	x, err := FromSlice(arange(24), Shape{2, 3, 4})
	require.NoError(t, err)

	y, err := x.Reshape(Shape{6, 4})
	require.NoError(t, err)

	assert.True(t, x.SharesBuffer(y), "reshape of a contiguous tensor must be a view")
	assert.True(t, y.Shape().Equal(Shape{6, 4}))
	assert.Equal(t, x.ToSlice(), y.ToSlice())
	assert.Equal(t, float32(23), y.At(5, 3))
}

func TestReshapeStridedCopies(t *testing.T) {
	x, err := FromSlice(arange(6), Shape{2, 3})
	require.NoError(t, err)
	xt, err := x.Transpose(0, 1) // [3, 2]
	require.NoError(t, err)
	require.False(t, xt.IsContiguous())

	y, err := xt.Reshape(Shape{6})
	require.NoError(t, err)

	assert.False(t, y.SharesBuffer(x), "reshape of a strided view must copy")
	assert.True(t, y.IsContiguous())
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 5}, y.ToSlice())

	// Isolated: mutating the copy leaves the source alone.
	y.Set(99, 0)
	assert.Equal(t, float32(0), x.At(0, 0))
	assert.Equal(t, float32(0), xt.At(0, 0))
}

func TestReshapeElementCountMismatch(t *testing.T) {
	x, err := New[float32](Shape{2, 3})
	require.NoError(t, err)

	_, err = x.Reshape(Shape{4, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrElementCount))
}

func TestTransposeView(t *testing.T) {
	x, err := FromSlice(arange(6), Shape{2, 3})
	require.NoError(t, err)

	xt, err := x.Transpose(-1, -2)
	require.NoError(t, err)

	assert.True(t, xt.Shape().Equal(Shape{3, 2}))
	assert.True(t, xt.SharesBuffer(x))
	assert.Equal(t, []int{1, 3}, xt.Strides())
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 5}, xt.ToSlice())
	assert.Equal(t, x.At(1, 2), xt.At(2, 1))

	_, err = x.Transpose(0, 2)
	assert.Error(t, err)
}

func TestTransposeSetDoesNotLeak(t *testing.T) {
	x, err := FromSlice(arange(6), Shape{2, 3})
	require.NoError(t, err)
	xt, err := x.Transpose(0, 1)
	require.NoError(t, err)

	xt.Set(-1, 2, 1)

	assert.Equal(t, float32(-1), xt.At(2, 1))
	assert.Equal(t, float32(5), x.At(1, 2))
}

func TestContiguous(t *testing.T) {
	x, err := FromSlice(arange(6), Shape{2, 3})
	require.NoError(t, err)

	same := x.Contiguous()
	assert.True(t, same.SharesBuffer(x))

	xt, err := x.Transpose(0, 1)
	require.NoError(t, err)
	c := xt.Contiguous()
	assert.False(t, c.SharesBuffer(x))
	assert.True(t, c.IsContiguous())
	assert.Equal(t, xt.ToSlice(), c.Data())
}

func TestIsContiguousIgnoresUnitAxes(t *testing.T) {
	x, err := FromSlice(arange(3), Shape{1, 3})
	require.NoError(t, err)

	// [1, 3] -> [3, 1]: the unit axis stride does not matter.
	xt, err := x.Transpose(0, 1)
	require.NoError(t, err)
	assert.True(t, xt.IsContiguous())

	y, err := xt.Reshape(Shape{3})
	require.NoError(t, err)
	assert.True(t, y.SharesBuffer(x))
	assert.Equal(t, []float32{0, 1, 2}, y.ToSlice())
}
