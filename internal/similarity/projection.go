package similarity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const projectionComponents = 2

// Project2D fits one principal-component transform over the query embedding
// and its retrieved neighbors jointly, then splits the result: the first
// return value is the query's 2-D coordinate, the second holds the neighbors'
// coordinates in the same subspace. Fitting once over all rows keeps the query
// and its neighbors comparable in a single coordinate frame.
//
// With no neighbors there is nothing to project against and both results are
// empty.
func Project2D(query []float32, neighbors [][]float32) ([]float64, [][]float64, error) {
	if len(neighbors) == 0 {
		return nil, nil, nil
	}

	rows := len(neighbors) + 1
	dims := len(query)

	data := mat.NewDense(rows, dims, nil)
	setRow(data, 0, query)

	for i, neighbor := range neighbors {
		if len(neighbor) != dims {
			return nil, nil, fmt.Errorf("embedding %d has %d dimensions, want %d", i, len(neighbor), dims)
		}

		setRow(data, i+1, neighbor)
	}

	centerColumns(data)

	var svd mat.SVD
	if ok := svd.Factorize(data, mat.SVDThin); !ok {
		return nil, nil, fmt.Errorf("svd factorization failed")
	}

	var v mat.Dense
	svd.VTo(&v)

	// principal axes are the leading right singular vectors
	components := v.Slice(0, dims, 0, projectionComponents)

	var projected mat.Dense
	projected.Mul(data, components)

	query2D := mat.Row(nil, 0, &projected)

	neighbors2D := make([][]float64, len(neighbors))
	for i := range neighbors {
		neighbors2D[i] = mat.Row(nil, i+1, &projected)
	}

	return query2D, neighbors2D, nil
}

func setRow(m *mat.Dense, row int, values []float32) {
	for col, v := range values {
		m.Set(row, col, float64(v))
	}
}

// subtracts the column mean from every entry so the SVD yields principal
// components rather than raw singular vectors
func centerColumns(m *mat.Dense) {
	rows, cols := m.Dims()

	for col := 0; col < cols; col++ {
		var sum float64
		for row := 0; row < rows; row++ {
			sum += m.At(row, col)
		}

		mean := sum / float64(rows)

		for row := 0; row < rows; row++ {
			m.Set(row, col, m.At(row, col)-mean)
		}
	}
}
