package game

// Snapshot captures the simulation state for rendering and for
// determinism checks in tests. The body slice is a copy; the renderer
// may hold it across ticks.
type Snapshot struct {
	Cols, Rows int
	Snake      []Point // head first
	Food       Point
	Dir        Direction
	Score      int
	FoodEaten  int
	Over       bool
}

// Snapshot returns a copy of the current simulation state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Cols:      g.cols,
		Rows:      g.rows,
		Snake:     append([]Point(nil), g.snake...),
		Food:      g.food,
		Dir:       g.direction,
		Score:     g.score,
		FoodEaten: g.eaten,
		Over:      g.over,
	}
}
