package universe

//Step calculates the next generation
//the field is bounded: neighbours outside the field are dead, there is no wraparound
//g is passed by value, the caller's generation is never touched
func Step(g Grid) (next Grid) {
	for i := range g {
		x, y := Coords(i)
		next[i] = cellNextState(g[i], neighbourCount(&g, x, y))
	}
	return
}

//neighbourCount counts the live cells among 8 neighbours of x, y
func neighbourCount(g *Grid, x int, y int) int {
	n := 0
	for dy := -1; dy < 2; dy++ {
		for dx := -1; dx < 2; dx++ {
			//skip my position
			if dx == 0 && dy == 0 {
				continue
			}
			if g.At(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

//cellNextState applies the rules to the single cell
func cellNextState(alive Cell, neighbours int) Cell {
	if alive {
		//death by solitude
		if neighbours <= 1 {
			return false
		}
		//death by overpopulation
		if neighbours >= 4 {
			return false
		}
		return true
	}
	//birth
	return neighbours == 3
}
