package universe

import (
	"sort"
	"strconv"
	"testing"
	"time"
)

var (
	engines = map[string]func(g Grid) Grid{
		EngineSerial: Step,
		EngineBanded: func(g Grid) Grid { return StepBanded(g, DefWorkers) },
	}
)

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func Benchmark_Step(b *testing.B) {
	seed := GenerateSeed(NewRand(1))
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			step := engines[e]
			g := seed
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g = step(g)
			}
		})
	}
}

func Benchmark_StepBandedWorkers(b *testing.B) {
	seed := GenerateSeed(NewRand(1))
	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(strconv.Itoa(workers), func(b *testing.B) {
			g := seed
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				g = StepBanded(g, workers)
			}
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			o := DefaultUniverseOptions
			o.RunOnStart = false
			o.Interval = time.Hour
			o.Engine = e
			u := NewLifeUniverse(&o, nil)
			defer u.Close()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Step()
			}
			u.sync()
		})
	}
}
