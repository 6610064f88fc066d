package universe

type Cell bool

//fixed field dimensions
const (
	Cols = 50          //cells per row
	Rows = 32          //rows
	Size = Cols * Rows //total cells
)

//Grid is one generation of the field stored row by row in a flat array
//x is the column, y is the row, the cell (x, y) lives at y*Cols+x
//Grid is a value: assigning or passing it copies the whole generation
type Grid [Size]Cell

//Index returns the linear position of the cell x, y
func Index(x int, y int) int {
	return y*Cols + x
}

//Coords returns x, y coordinates of the linear position i
func Coords(i int) (x int, y int) {
	return i % Cols, i / Cols
}

//InBounds reports whether x, y points inside the field
func InBounds(x int, y int) bool {
	return x >= 0 && y >= 0 && x < Cols && y < Rows
}

//At returns the cell state at x, y
//any position outside the field is dead
func (g *Grid) At(x int, y int) Cell {
	if !InBounds(x, y) {
		return false
	}
	return g[y*Cols+x]
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() int {
	n := 0
	for _, c := range g {
		if c {
			n++
		}
	}
	return n
}

//Row returns the cells of the row y
func (g *Grid) Row(y int) []Cell {
	return g[y*Cols : (y+1)*Cols : (y+1)*Cols]
}

//FromCoordinates creates the grid with live cells at the given x,y coordinates
//coordinates outside the field are skipped
func FromCoordinates(vc [][2]int) (g Grid) {
	for _, v := range vc {
		if !InBounds(v[0], v[1]) {
			continue
		}
		g[Index(v[0], v[1])] = true
	}
	return
}
