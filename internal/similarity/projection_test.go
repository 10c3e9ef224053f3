package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVector(dim, index int) []float32 {
	v := make([]float32, dim)
	v[index] = 1
	return v
}

func TestProject2DEmptyNeighbors(t *testing.T) {
	query2D, neighbors2D, err := Project2D(unitVector(Dimensions, 0), nil)

	require.NoError(t, err)
	assert.Empty(t, query2D)
	assert.Empty(t, neighbors2D)
}

func TestProject2DShapes(t *testing.T) {
	query := unitVector(Dimensions, 0)
	neighbors := [][]float32{
		unitVector(Dimensions, 1),
		unitVector(Dimensions, 2),
		unitVector(Dimensions, 3),
	}

	query2D, neighbors2D, err := Project2D(query, neighbors)
	require.NoError(t, err)

	assert.Len(t, query2D, 2)
	require.Len(t, neighbors2D, 3)

	for _, point := range neighbors2D {
		assert.Len(t, point, 2)
	}
}

// identical input vectors must land on the same 2-D point: the projection is a
// single linear map over the joint matrix
func TestProject2DIdenticalVectorsCoincide(t *testing.T) {
	query := unitVector(Dimensions, 0)
	neighbors := [][]float32{
		unitVector(Dimensions, 0), // same as the query
		unitVector(Dimensions, 5),
	}

	query2D, neighbors2D, err := Project2D(query, neighbors)
	require.NoError(t, err)
	require.Len(t, neighbors2D, 2)

	assert.InDelta(t, query2D[0], neighbors2D[0][0], 1e-9)
	assert.InDelta(t, query2D[1], neighbors2D[0][1], 1e-9)
}

func TestProject2DDimensionMismatch(t *testing.T) {
	query := unitVector(Dimensions, 0)
	neighbors := [][]float32{unitVector(10, 1)}

	_, _, err := Project2D(query, neighbors)
	assert.Error(t, err)
}
