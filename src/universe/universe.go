package universe

//Universe holds the latest generation and drives it with the clock
//all control methods return immediately, the commands are executed in order by the universe's loop
type Universe interface {
	Status() Status
	Options() Options
	Grid() Grid
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []string
	SettleTemplate(name string)
	Reset()
	InverseCell(x int, y int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Toggle()
	Step()
	CycleSpeed()
	Close()
}
