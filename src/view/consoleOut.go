package view

import (
	"fmt"
	"lifeclock/src/universe"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

//ConsoleOut is the headless viewer, it writes the progress to the logger
type ConsoleOut struct {
	u         universe.Universe
	logger    log.Logger
	every     int
	startTime time.Time
	logged    int
}

//NewConsoleOut creates the viewer which logs every n-th generation
func NewConsoleOut(logger log.Logger, every int) *ConsoleOut {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{logger: log.With(logger, "component", "console"), every: every, logged: -1}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	switch st.RunningMode {
	case universe.RunningStateFinished:
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		level.Info(c.logger).Log("msg", "finished", "generation", st.Generation, "total_time", totalTime, "live_cells", st.LiveCells)
	case universe.RunningStateRunning:
		if st.Generation%c.every == 0 && st.Generation != c.logged {
			c.logged = st.Generation
			level.Info(c.logger).Log("msg", "progress", "generation", st.Generation, "live_cells", st.LiveCells, "iteration_time", st.IterationTime)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	level.Info(c.logger).Log(
		"msg", "configuration",
		"dimension", fmt.Sprintf("%dx%d", universe.Cols, universe.Rows),
		"interval", o.Interval,
		"max_generations", o.MaxGenerations,
		"engine", o.Engine,
	)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	level.Info(c.logger).Log("msg", "simulation started")
}
