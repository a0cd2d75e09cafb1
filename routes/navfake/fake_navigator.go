package navfake

import (
	"sync"

	"github.com/lawbridge/go-session-core/routes"
)

var _ routes.Navigator = (*FakeNavigator)(nil)

// Move records one Navigate call.
type Move struct {
	Path    string
	Replace bool
}

// FakeNavigator records navigations for tests.
type FakeNavigator struct {
	current string
	moves   []Move
	lock    sync.Mutex
}

func New(current string) *FakeNavigator {
	return &FakeNavigator{current: current}
}

func (fn *FakeNavigator) Current() string {
	fn.lock.Lock()
	defer fn.lock.Unlock()

	return fn.current
}

func (fn *FakeNavigator) Navigate(path string, replace bool) {
	fn.lock.Lock()
	defer fn.lock.Unlock()

	fn.current = path
	fn.moves = append(fn.moves, Move{Path: path, Replace: replace})
}

// Moves returns every recorded navigation in order.
func (fn *FakeNavigator) Moves() []Move {
	fn.lock.Lock()
	defer fn.lock.Unlock()

	out := make([]Move, len(fn.moves))
	copy(out, fn.moves)
	return out
}

// Last returns the most recent navigation, if any.
func (fn *FakeNavigator) Last() (Move, bool) {
	fn.lock.Lock()
	defer fn.lock.Unlock()

	if len(fn.moves) == 0 {
		return Move{}, false
	}
	return fn.moves[len(fn.moves)-1], true
}
