package universe

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

//Options represents the Universe's configurable options
type Options struct {
	Interval       time.Duration   //tick interval
	Speeds         []time.Duration //intervals switched by CycleSpeed
	RunOnStart     bool
	MaxGenerations int   //0 - unlimited
	Seed           int64 //0 - seed from the wall clock
	Engine         string
	Workers        int //workers of the banded engine
	Logger         log.Logger
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Interval      time.Duration
	Changed       bool //the last step changed the grid
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string   //template name
	Descr       string   //template descr
	Coordinates [][2]int //array of [x,y] coordinates
}

//The universe running status at the concrete moment
type RunningState int

const (
	RunningStateStopped RunningState = iota
	RunningStateRunning
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateStopped:
		return "stopped"
	case RunningStateRunning:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

//engines
const (
	EngineSerial = "serial"
	EngineBanded = "banded"
)

//default options
const (
	DefInterval       = time.Millisecond * 400
	DefMaxGenerations = 0
)

var DefaultUniverseOptions = Options{
	Interval:       DefInterval,
	Speeds:         []time.Duration{time.Second, time.Millisecond * 500, time.Millisecond * 250},
	RunOnStart:     true,
	MaxGenerations: DefMaxGenerations,
	Engine:         EngineSerial,
	Workers:        DefWorkers,
}

//BuiltinTemplates are added to every new universe
var BuiltinTemplates = []Template{
	{"block", "2x2 still life", [][2]int{{24, 15}, {25, 15}, {24, 16}, {25, 16}}},
	{"blinker", "period 2 oscillator", [][2]int{{24, 15}, {25, 15}, {26, 15}}},
	{"glider", "moves to the bottom right corner and dies there", [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
}

//LifeUniverse is the universe's engine
//implements Universe interface
//every state change is done by the main loop goroutine, so the generations are calculated strictly one after another
type LifeUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	grid struct {
		Grid
		sync.Mutex
	}
	views struct {
		list []Viewer
		sync.Mutex
	}
	templates struct {
		byName map[string]Template
		names  []string
		sync.Mutex
	}
	stateCh   chan Status
	engine    func(g Grid) Grid
	rng       *rand.Rand
	clock     *Clock
	logger    log.Logger
	controlCh chan func()
	quit      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
}

//NewLifeUniverse creates the LifeUniverse instance settled with a random seed
//stateCh is optional, when it is set the consumer must read it
func NewLifeUniverse(o *Options, stateCh chan Status) *LifeUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	u := LifeUniverse{
		options:   *o,
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		quit:      make(chan struct{}),
		loopDone:  make(chan struct{}),
	}
	u.options.Speeds = append([]time.Duration(nil), o.Speeds...)
	if u.options.Interval <= 0 {
		u.options.Interval = DefInterval
	}
	u.logger = u.options.Logger
	if u.logger == nil {
		u.logger = log.NewNopLogger()
	}
	u.logger = log.With(u.logger, "component", "universe")

	switch u.options.Engine {
	case EngineBanded:
		workers := u.options.Workers
		u.engine = func(g Grid) Grid { return StepBanded(g, workers) }
	default:
		u.options.Engine = EngineSerial
		u.engine = Step
	}

	u.templates.byName = map[string]Template{}
	for _, tmpl := range BuiltinTemplates {
		u.AddTemplate(tmpl)
	}

	u.rng = NewRand(u.options.Seed)
	u.grid.Grid = GenerateSeed(u.rng)
	u.state.LiveCells = u.grid.LiveCells()
	u.clock = NewClock(u.options.Interval, u.onTick)

	go u.mainLoop()
	if u.options.RunOnStart {
		u.Run()
	}
	return &u
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *LifeUniverse) AddTemplate(tmpl Template) {
	u.templates.Lock()
	defer u.templates.Unlock()
	if _, ok := u.templates.byName[tmpl.Name]; !ok {
		u.templates.names = append(u.templates.names, tmpl.Name)
	}
	u.templates.byName[tmpl.Name] = tmpl
}

//Templates returns the names of the known templates in the order they were added
func (u *LifeUniverse) Templates() []string {
	u.templates.Lock()
	defer u.templates.Unlock()
	return append([]string(nil), u.templates.names...)
}

//SettleTemplate replaces the current generation with the seeding template
func (u *LifeUniverse) SettleTemplate(name string) {
	u.send(func() {
		u.templates.Lock()
		tmpl, ok := u.templates.byName[name]
		u.templates.Unlock()
		if !ok {
			level.Warn(u.logger).Log("msg", "unknown template", "template", name)
			return
		}
		u.replace(FromCoordinates(tmpl.Coordinates))
		level.Debug(u.logger).Log("msg", "settled", "template", name)
	})
}

//Reset replaces the current generation with a new random seed
func (u *LifeUniverse) Reset() {
	u.send(func() {
		u.replace(GenerateSeed(u.rng))
		level.Debug(u.logger).Log("msg", "reseeded", "live", u.Status().LiveCells)
	})
}

//InverseCell inverses the cell state at point x, y
func (u *LifeUniverse) InverseCell(x int, y int) {
	if !InBounds(x, y) {
		return
	}
	u.send(func() {
		u.grid.Lock()
		i := Index(x, y)
		u.grid.Grid[i] = !u.grid.Grid[i]
		live := u.grid.LiveCells()
		u.grid.Unlock()
		u.state.Lock()
		u.state.LiveCells = live
		u.state.Unlock()
		u.publish()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
//the viewer gets the universe before its first Refresh
func (u *LifeUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	u.views.Lock()
	u.views.list = append(u.views.list, v)
	u.views.Unlock()
}

//StateCh returns the channel with the universe's status updates
func (u *LifeUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *LifeUniverse) Status() Status {
	u.state.Lock()
	st := u.state.Status
	u.state.Unlock()
	st.Interval = u.clock.Interval()
	return st
}

//Options returns current universe configuration represented by Options struct
func (u *LifeUniverse) Options() Options {
	o := u.options
	o.Interval = u.clock.Interval()
	return o
}

//Grid returns the copy of the current generation
func (u *LifeUniverse) Grid() Grid {
	u.grid.Lock()
	defer u.grid.Unlock()
	return u.grid.Grid
}

//Run starts the clock, returns immediately
func (u *LifeUniverse) Run() {
	u.send(u.run)
}

//Stop stops the clock, returns immediately
//the ticks which are not handled yet are dropped
func (u *LifeUniverse) Stop() {
	u.send(u.stop)
}

//Toggle stops the running universe or runs the stopped one, returns immediately
func (u *LifeUniverse) Toggle() {
	u.send(func() {
		if u.Status().RunningMode == RunningStateRunning {
			u.stop()
		} else {
			u.run()
		}
	})
}

//Step does one simulation step, returns immediately
func (u *LifeUniverse) Step() {
	u.send(u.step)
}

//CycleSpeed switches the clock to the next interval of Options.Speeds, returns immediately
func (u *LifeUniverse) CycleSpeed() {
	u.send(func() {
		speeds := u.options.Speeds
		if len(speeds) == 0 {
			return
		}
		cur := u.clock.Interval()
		next := speeds[0]
		for i, s := range speeds {
			if s == cur {
				next = speeds[(i+1)%len(speeds)]
				break
			}
		}
		u.clock.SetInterval(next)
		level.Debug(u.logger).Log("msg", "speed changed", "interval", next)
		u.publish()
	})
}

//Close stops the clock and the main loop
func (u *LifeUniverse) Close() {
	u.closeOnce.Do(func() {
		u.clock.Stop()
		close(u.quit)
	})
	<-u.loopDone
}

//send passes the command to the main loop
//the command is dropped if the universe is closed
func (u *LifeUniverse) send(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.quit:
	}
}

//sync waits until the commands sent before are executed
func (u *LifeUniverse) sync() {
	done := make(chan struct{})
	u.send(func() { close(done) })
	select {
	case <-done:
	case <-u.quit:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *LifeUniverse) mainLoop() {
	defer close(u.loopDone)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.quit:
			return
		}
	}
}

//onTick is called by the clock goroutine
//it hands the step over to the main loop and waits for it
func (u *LifeUniverse) onTick(ctx context.Context) {
	done := make(chan struct{})
	cmd := func() {
		defer close(done)
		//the clock was stopped after this tick had been queued
		if ctx.Err() != nil {
			return
		}
		u.step()
	}
	select {
	case u.controlCh <- cmd:
	case <-ctx.Done():
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
}

//switchRunningState switch the state of the universe to RunningState
func (u *LifeUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	u.state.Unlock()
	u.publish()
}

//publish writes the status to the stateCh to signal upper control software and refreshes the views
func (u *LifeUniverse) publish() {
	st := u.Status()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.quit:
		}
	}
	u.refreshView()
}

//run starts the clock
func (u *LifeUniverse) run() {
	if u.Status().RunningMode == RunningStateFinished {
		return
	}
	u.clock.Start()
	u.switchRunningState(RunningStateRunning)
}

//stop stops the clock
func (u *LifeUniverse) stop() {
	u.clock.Stop()
	if u.Status().RunningMode == RunningStateRunning {
		u.switchRunningState(RunningStateStopped)
	}
}

//step calculates the next generation from the current one and stores it
func (u *LifeUniverse) step() {
	if u.Status().RunningMode == RunningStateFinished {
		return
	}
	start := time.Now()
	u.grid.Lock()
	prev := u.grid.Grid
	next := u.engine(prev)
	u.grid.Grid = next
	u.grid.Unlock()

	u.state.Lock()
	u.state.Generation++
	u.state.LiveCells = next.LiveCells()
	u.state.IterationTime = time.Since(start)
	u.state.Changed = next != prev
	gen := u.state.Generation
	u.state.Unlock()

	if limit := u.options.MaxGenerations; limit != 0 && gen >= limit {
		u.clock.Stop()
		level.Info(u.logger).Log("msg", "finished", "generation", gen)
		u.switchRunningState(RunningStateFinished)
		return
	}
	u.publish()
}

//replace stores g as the current generation and resets the counters
func (u *LifeUniverse) replace(g Grid) {
	u.grid.Lock()
	u.grid.Grid = g
	u.grid.Unlock()

	u.state.Lock()
	u.state.Generation = 0
	u.state.LiveCells = g.LiveCells()
	u.state.IterationTime = 0
	u.state.Changed = true
	if u.state.RunningMode == RunningStateFinished {
		u.state.RunningMode = RunningStateStopped
	}
	u.state.Unlock()
	u.publish()
}

//refreshView calls Refresh event for all registered views
func (u *LifeUniverse) refreshView() {
	u.views.Lock()
	views := append([]Viewer(nil), u.views.list...)
	u.views.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
