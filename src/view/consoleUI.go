package view

import (
	"bytes"
	"fmt"
	"lifeclock/src/universe"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	u            universe.Universe
	g            *gocui.Gui
	k            []keyBindings
	liveFiller   string
	deadFiller   string
	nextTemplate int
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateStopped:  aurora.Colorize("paused", aurora.BlueFg).String(),
		universe.RunningStateRunning:  aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the interactive terminal view
//the error is returned when the terminal can't be initialized
func NewViewTerminal() (*ConsoleUI, error) {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC,
			"^C",
			"Exit",
			t.cmdQuit,
			""},
		{gocui.KeySpace,
			"SPACE",
			"Pause/Resume",
			t.cmdToggle,
			""},
		{'r',
			"R",
			"Reseed",
			t.cmdReset,
			""},
		{'n',
			"N",
			"Next step",
			t.cmdNextRound,
			""},
		{'f',
			"F",
			"Speed",
			t.cmdCycleSpeed,
			""},
		{'c',
			"C",
			"Template",
			t.cmdSettleTemplate,
			""},
		{gocui.MouseLeft,
			"MOUSE",
			"Inverse the cell",
			t.cmdMouseClick,
			"battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("key binding %s: %w", kb.name, err)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

//Start runs the terminal main loop until the user quits
//the terminal stays initialized until Close, so the universe should be closed before it
func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		t.g.Close()
		panic(err)
	}
}

//Close restores the terminal
func (t *ConsoleUI) Close() {
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderHeader()
	t.renderField(t.u.Grid())
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField(grid universe.Grid) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return e
		}
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, fieldText(&grid, maxW, maxH, t.liveFiller, t.deadFiller))
		return nil
	})
}

//fieldText draws the grid row by row, universe.Cols cells per line
//the rows which don't fit into maxW x maxH are cropped
func fieldText(grid *universe.Grid, maxW int, maxH int, liveFiller string, deadFiller string) string {
	crop := universe.Cols > maxW || universe.Rows > maxH
	//the warning takes the last drawn row
	lastRow := min(maxH, universe.Rows) - 1

	var b bytes.Buffer
	for y := 0; y <= lastRow; y++ {
		//line feed char
		if y != 0 {
			b.WriteByte(10)
		}
		if crop && y == lastRow {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for x, alive := range grid.Row(y) {
			if x >= maxW {
				break
			}
			if alive {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

//transitionDuration is the time the cell takes to fade in or out at the given tick interval
func transitionDuration(interval time.Duration) time.Duration {
	return (interval * 3 / 4).Truncate(time.Millisecond)
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", universe.Cols, universe.Rows))
			_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, renderProp("Transition", "%v", transitionDuration(c.Interval)))
			_, _ = fmt.Fprintln(v, renderProp("Engine", "%v", c.Engine))
			if c.MaxGenerations != 0 {
				_, _ = fmt.Fprintln(v, renderProp("Generations", "%v max", c.MaxGenerations))
			}
		}
		return nil
	})
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//view names
const (
	headerView = "header"
	configView = "configuration"
	statusView = "status"
	fieldView  = "battlefield"
	keysView   = "help"
)

const (
	sideWidth    = 28 //width of the configuration and status panels
	headerHeight = 2
	keysHeight   = 2
)

//rect is the view position in gocui coordinates, x1,y1 are inclusive frame positions
type rect struct {
	x0, y0, x1, y1 int
}

//screenLayout calculates the view positions for the terminal of maxX x maxY
//the field view is not larger than the grid itself
//ok is false when the terminal can't hold the panels
func screenLayout(maxX int, maxY int) (views map[string]rect, ok bool) {
	top := headerHeight
	bottom := maxY - keysHeight - 1
	if bottom-top < 8 || maxX < sideWidth+4 {
		return nil, false
	}
	fieldX1 := sideWidth + 1 + universe.Cols + 1
	if fieldX1 > maxX-1 {
		fieldX1 = maxX - 1
	}
	fieldY1 := top + universe.Rows + 1
	if fieldY1 > bottom {
		fieldY1 = bottom
	}
	middle := top + (bottom-top)/2
	return map[string]rect{
		configView: {0, top, sideWidth, middle},
		statusView: {0, middle + 1, sideWidth, bottom},
		fieldView:  {sideWidth + 1, top, fieldX1, fieldY1},
		keysView:   {-1, bottom + 1, maxX, maxY},
	}, true
}

//headerText is the one-line summary shown above the panels
func headerText(st universe.Status, width int) string {
	text := fmt.Sprintf("The Life %dx%d | %s | every %v | generation %d",
		universe.Cols, universe.Rows, st.RunningMode, st.Interval, st.Generation)
	if len(text) >= width {
		return text[:max(width, 0)]
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	header, err := g.SetView(headerView, -1, -1, maxX, headerHeight-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	header.Frame = false
	header.BgColor = gocui.ColorCyan
	header.FgColor = gocui.ColorBlack

	views, ok := screenLayout(maxX, maxY)
	if !ok {
		for _, name := range []string{configView, statusView, fieldView, keysView} {
			_ = g.DeleteView(name)
		}
		header.Clear()
		_, _ = fmt.Fprint(header, "Terminal is too small")
		return nil
	}

	titles := map[string]string{configView: "Configuration", statusView: "Status", fieldView: "Field"}
	created := false
	for _, name := range []string{configView, statusView, fieldView, keysView} {
		r := views[name]
		v, err := g.SetView(name, r.x0, r.y0, r.x1, r.y1)
		if err == nil {
			continue
		}
		if err != gocui.ErrUnknownView {
			return err
		}
		created = true
		v.Title = titles[name]
		v.Frame = name != keysView
		if name == keysView {
			v.Wrap = true
			_, _ = fmt.Fprint(v, keysText(t.k))
		}
	}
	//the views are filled by Refresh later on, only new views need the first render here
	if created {
		t.Refresh()
	}
	return nil
}

func (t *ConsoleUI) renderHeader() {
	st := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View(headerView); e == nil {
			w, _ := v.Size()
			v.Clear()
			_, _ = fmt.Fprint(v, headerText(st, w))
		}
		return nil
	})
}

//keysText lists the key bindings in one line
func keysText(k []keyBindings) string {
	parts := make([]string, 0, len(k))
	for _, kb := range k {
		parts = append(parts, aurora.Green(kb.name).String()+" "+kb.descr)
	}
	return " " + strings.Join(parts, " · ")
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdToggle(_ *gocui.View) error {
	t.u.Toggle()
	return nil
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	t.u.Reset()
	return nil
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdCycleSpeed(_ *gocui.View) error {
	t.u.CycleSpeed()
	return nil
}

func (t *ConsoleUI) cmdSettleTemplate(_ *gocui.View) error {
	names := t.u.Templates()
	if len(names) == 0 {
		return nil
	}
	t.u.SettleTemplate(names[t.nextTemplate%len(names)])
	t.nextTemplate++
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	t.u.InverseCell(cx+ox, cy+oy)
	return nil
}
