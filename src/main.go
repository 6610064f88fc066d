package main

import (
	"context"
	"fmt"
	"lifeclock/src/universe"
	"lifeclock/src/view"
	"os"
	"os/signal"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/integrii/flaggy"
)

var engines = []string{universe.EngineSerial, universe.EngineBanded}

type EnvOptions struct {
	interactive bool
	paused      bool
	template    string
	debug       bool
}

func main() {
	eo, uo := initOptions()
	logger := newLogger(eo.debug)
	uo.Logger = logger

	if eo.interactive {
		runInteractive(eo, uo, logger)
		return
	}
	runHeadless(eo, uo, logger)
}

func newLogger(debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

func runInteractive(eo *EnvOptions, uo *universe.Options, logger log.Logger) {
	//the terminal belongs to the UI, only errors are logged
	uo.Logger = level.NewFilter(logger, level.AllowError())
	uo.RunOnStart = !eo.paused && eo.template == ""

	v, err := view.NewViewTerminal()
	if err != nil {
		level.Error(logger).Log("msg", "can't start terminal ui", "err", err)
		os.Exit(1)
	}
	u := universe.NewLifeUniverse(uo, nil)
	if eo.template != "" {
		u.SettleTemplate(eo.template)
		if !eo.paused {
			u.Run()
		}
	}
	u.RegisterViewer(v)
	v.Start()
	//no Refresh may reach the terminal after it is closed
	u.Close()
	v.Close()
}

func runHeadless(eo *EnvOptions, uo *universe.Options, logger log.Logger) {
	uo.RunOnStart = false
	stateCh := make(chan universe.Status, 10) //the buffered channel to getting the universe status
	u := universe.NewLifeUniverse(uo, stateCh)
	defer u.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if eo.template != "" {
		u.SettleTemplate(eo.template)
	}
	out := view.NewConsoleOut(logger, 10)
	u.RegisterViewer(out)
	out.Start()
	u.Run()

	for {
		select {
		case <-ctx.Done():
			level.Info(logger).Log("msg", "interrupted", "generation", u.Status().Generation)
			return
		case st := <-stateCh:
			if st.RunningMode == universe.RunningStateFinished {
				return
			}
		}
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	uo = &universe.DefaultUniverseOptions
	eo = &EnvOptions{}
	flaggy.SetName("lifeclock")
	flaggy.SetDescription("\"The Life\" game on the fixed " + fmt.Sprintf("%dx%d", universe.Cols, universe.Rows) + " field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 250ms")
	flaggy.Int(&uo.MaxGenerations, "s", "maxGenerations", "Limit the simulation to maxGenerations, 0 is unlimited")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed of the random source, 0 means the current time")
	flaggy.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(engines, "|")+"]")
	flaggy.Int(&uo.Workers, "w", "workers", "Workers of the banded engine")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.paused, "p", "paused", "Don't start the clock on start (interactive mode only)")
	flaggy.String(&eo.template, "t", "template", "Settle with the template instead of random data [block|blinker|glider]")
	flaggy.Bool(&eo.debug, "d", "debug", "Log debug messages")

	flaggy.Parse()

	if !validEngine(uo.Engine) {
		flaggy.ShowHelpAndExit("unknown engine")
	}
	if uo.Interval <= 0 {
		flaggy.ShowHelpAndExit("interval should be positive")
	}
	if !eo.interactive && uo.MaxGenerations <= 0 {
		uo.MaxGenerations = defHeadlessGenerations
	}

	return
}

//defHeadlessGenerations limits the headless run when no limit is given
const defHeadlessGenerations = 100

func validEngine(name string) bool {
	for _, e := range engines {
		if e == name {
			return true
		}
	}
	return false
}
