package universe

import "sync"

/*
	Multithreaded engine
	the field is splitted into bands of rows each of which is computed by individual goroutine
	every goroutine reads the same input generation and writes its own rows of the output
*/

const (
	DefWorkers          = 4 //default workers
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

//band describes the rows [y1, y2] calculated by one worker
type band struct {
	y1 int
	y2 int
}

//splitBands splits the field rows between workers
func splitBands(workers int) []band {
	if workers < 1 {
		workers = 1
	}
	rowsPerWorker := Rows / workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	} else if rowsPerWorker*workers < Rows {
		rowsPerWorker++
	}
	bands := make([]band, 0, workers)
	for y1 := 0; y1 < Rows; y1 += rowsPerWorker {
		y2 := y1 + rowsPerWorker - 1
		if y2 > Rows-1 {
			y2 = Rows - 1
		}
		bands = append(bands, band{y1, y2})
	}
	return bands
}

//StepBanded calculates the next generation the same way as Step using several goroutines
func StepBanded(g Grid, workers int) Grid {
	next := new(Grid)
	var waitGroup sync.WaitGroup
	for _, b := range splitBands(workers) {
		waitGroup.Add(1)
		go func(b band) {
			defer waitGroup.Done()
			calcBand(&g, next, b)
		}(b)
	}
	waitGroup.Wait()
	return *next
}

//calcBand calculates new states for the cells inside the band
//bands never overlap, so the writes to next don't race
func calcBand(g *Grid, next *Grid, b band) {
	for y := b.y1; y <= b.y2; y++ {
		for x := 0; x < Cols; x++ {
			i := Index(x, y)
			next[i] = cellNextState(g[i], neighbourCount(g, x, y))
		}
	}
}
