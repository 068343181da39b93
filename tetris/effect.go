package tetris

// Effect is something the game asks the outside world to do.
// Effects are returned by the game and never performed by it.
type Effect string

const (
	Start     Effect = "start"     // A new session started.
	LineClear Effect = "lineclear" // A row was cleared. Emitted once per row.
	GameOver  Effect = "gameover"  // The stack reached the spawn row.
	Bonus     Effect = "bonus"     // First game over of the process.
)

type Dispatcher interface {
	Dispatch(Effect)
}

type DispatcherFunc func(Effect)

func (f DispatcherFunc) Dispatch(e Effect) { f(e) }

// Dispatchers fans every effect out to all of its members in order.
type Dispatchers []Dispatcher

func (d Dispatchers) Dispatch(e Effect) {
	for _, v := range d {
		v.Dispatch(e)
	}
}
