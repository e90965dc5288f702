package core

// MatrixC128 allocates a rows-by-cols complex matrix backed by a single
// contiguous slab, so the whole matrix stays cache-friendly in hot loops.
func MatrixC128(rows, cols int) [][]complex128 {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	slab := make([]complex128, rows*cols)
	out := make([][]complex128, rows)

	for i := range out {
		out[i] = slab[i*cols : (i+1)*cols : (i+1)*cols]
	}

	return out
}

// CubeC128 allocates an a-by-b-by-c complex array backed by a single slab.
func CubeC128(a, b, c int) [][][]complex128 {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil
	}

	slab := make([]complex128, a*b*c)
	out := make([][][]complex128, a)

	for i := range out {
		out[i] = make([][]complex128, b)
		for j := range out[i] {
			base := (i*b + j) * c
			out[i][j] = slab[base : base+c : base+c]
		}
	}

	return out
}

// MatrixShape reports the row and column counts of m and whether all rows
// share the same length. An empty matrix reports (0, 0, true).
func MatrixShape(m [][]complex128) (rows, cols int, uniform bool) {
	rows = len(m)
	if rows == 0 {
		return 0, 0, true
	}

	cols = len(m[0])
	for _, row := range m[1:] {
		if len(row) != cols {
			return rows, cols, false
		}
	}

	return rows, cols, true
}
