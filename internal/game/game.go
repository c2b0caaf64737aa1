// Package game implements the deterministic grid snake simulation:
// movement, collisions, scoring, food placement, and the score-driven
// speed policy. It knows nothing about cameras, terminals, or clocks;
// the session layer decides when Advance runs.
package game

import (
	"math/rand"
	"time"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the 180° reverse of the direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

// Offset returns the unit grid offset for the direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	default:
		return 0, 1
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Point represents a 2D grid coordinate.
type Point struct {
	X, Y int
}

// SpeedConfig is the variable-timestep policy: the interval between
// advances shrinks linearly with score and never drops below the floor.
type SpeedConfig struct {
	BaseInterval time.Duration // interval at score 0
	MinInterval  time.Duration // hard floor
	Decrement    time.Duration // speed-up per point
}

// DefaultSpeedConfig returns the tuned speed policy.
func DefaultSpeedConfig() SpeedConfig {
	return SpeedConfig{
		BaseInterval: 220 * time.Millisecond,
		MinInterval:  60 * time.Millisecond,
		Decrement:    8 * time.Millisecond,
	}
}

// ConfigureGrid derives grid dimensions from the viewport size, leaving
// room for the HUD line and the border. Pure so tests can call it
// without a display. Minimums keep the game playable in tiny terminals.
func ConfigureGrid(screenW, screenH int) (cols, rows int) {
	cols = screenW - 2  // border columns
	rows = screenH - 4  // HUD + separator + border rows
	if cols < 10 {
		cols = 10
	}
	if rows < 8 {
		rows = 8
	}
	return cols, rows
}

// Game holds one run's simulation state. The snake is head-first
// (index 0); food never coincides with a snake segment.
type Game struct {
	rng   *rand.Rand
	speed SpeedConfig

	cols, rows int
	snake      []Point
	food       Point
	direction  Direction
	score      int
	eaten      int
	over       bool
}

// New creates a simulation on a cols×rows grid, seeded for deterministic
// food placement.
func New(cols, rows int, seed int64, speed SpeedConfig) *Game {
	g := &Game{
		rng:   rand.New(rand.NewSource(seed)),
		speed: speed,
		cols:  cols,
		rows:  rows,
	}
	g.reset()
	return g
}

// reset places the initial single-segment snake heading right at
// mid-grid and spawns the first food. Length stays 1 + food eaten for
// the whole run.
func (g *Game) reset() {
	startX := g.cols / 4
	startY := g.rows / 2
	if startX < 1 {
		startX = 1
	}

	g.snake = []Point{{X: startX, Y: startY}}
	g.direction = DirRight
	g.score = 0
	g.eaten = 0
	g.over = false
	g.spawnFood()
}

// Restart re-initializes snake, food, direction, and score for a replay
// on the same grid. The RNG stream continues; food placement stays
// deterministic under a fixed seed.
func (g *Game) Restart() {
	g.reset()
}

// SetDirection sets the direction the next Advance will use. Reversal
// filtering is the arbiter's job; the simulation applies what it is
// given.
func (g *Game) SetDirection(d Direction) {
	g.direction = d
}

// Direction returns the current movement direction.
func (g *Game) Direction() Direction {
	return g.direction
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// FoodEaten returns how many food items were eaten this run.
func (g *Game) FoodEaten() int {
	return g.eaten
}

// Over reports whether the run has ended in a collision.
func (g *Game) Over() bool {
	return g.over
}

// Size returns the grid dimensions.
func (g *Game) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Snake returns the body, head first. The slice is owned by the game;
// callers must not mutate it.
func (g *Game) Snake() []Point {
	return g.snake
}

// Head returns the head position.
func (g *Game) Head() Point {
	return g.snake[0]
}

// Food returns the current food position.
func (g *Game) Food() Point {
	return g.food
}

// Interval returns the current wait between advances under the speed
// policy: max(MinInterval, BaseInterval - score × Decrement).
func (g *Game) Interval() time.Duration {
	iv := g.speed.BaseInterval - time.Duration(g.score)*g.speed.Decrement
	if iv < g.speed.MinInterval {
		iv = g.speed.MinInterval
	}
	return iv
}

// Advance moves the snake one cell in the current direction and returns
// true if the run continues, false on a wall or self collision. Eating
// food scores one point, grows the snake by keeping the tail, and
// respawns food immediately. Calling Advance on a finished run is a
// no-op returning false.
func (g *Game) Advance() bool {
	if g.over {
		return false
	}

	head := g.snake[0]
	dx, dy := g.direction.Offset()
	newHead := Point{X: head.X + dx, Y: head.Y + dy}

	// Wall collision
	if newHead.X < 0 || newHead.X >= g.cols || newHead.Y < 0 || newHead.Y >= g.rows {
		g.over = true
		return false
	}

	// Self collision. The tail cell is excluded unless this move grows:
	// it vacates in the same step the head arrives.
	checkLen := len(g.snake)
	if newHead != g.food && checkLen > 0 {
		checkLen--
	}
	for i := 0; i < checkLen; i++ {
		if g.snake[i] == newHead {
			g.over = true
			return false
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score++
		g.eaten++
		g.spawnFood()
		// Tail retained: growth
	} else if len(g.snake) > 1 {
		g.snake = g.snake[:len(g.snake)-1]
	}

	return true
}

// spawnFood places food uniformly on a free interior cell, never on the
// snake and never on the boundary ring. Exhausting the interior parks
// the food off-board; the run ends on the next wall or self collision
// anyway.
func (g *Game) spawnFood() {
	var empty []Point
	for y := 1; y < g.rows-1; y++ {
		for x := 1; x < g.cols-1; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}

	if len(empty) == 0 {
		g.food = Point{X: -1, Y: -1}
		return
	}

	g.food = empty[g.rng.Intn(len(empty))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// SetFood overrides the food position. Test hook for scripted scenarios.
func (g *Game) SetFood(p Point) {
	g.food = p
}

// SetSnake overrides the body (head first). Test hook for scripted
// scenarios.
func (g *Game) SetSnake(body []Point) {
	g.snake = append([]Point(nil), body...)
}
