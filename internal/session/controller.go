// Package session owns the run lifecycle: the idle → countdown →
// playing → game-over state machine, the per-tick bridge from camera
// frames through the motion pipeline into the simulation, and the
// once-per-game-over leaderboard write. It is single-threaded by
// design: every mutation happens inside Tick or an explicit transition
// call, driven by the platform's frame callback. The one exception is
// the commentary link status, which arrives from the client's
// background goroutine and carries its own lock.
package session

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/motion-snake/internal/control"
	"github.com/vovakirdan/motion-snake/internal/game"
	"github.com/vovakirdan/motion-snake/internal/leaderboard"
	"github.com/vovakirdan/motion-snake/internal/vision"
)

// State is the run controller's lifecycle state.
type State int

const (
	StateIdle State = iota // menu, accepting a player name
	StateCountdown
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// CountdownDuration is the pre-roll before the snake starts moving,
// giving the player time to get in frame.
const CountdownDuration = 3 * time.Second

// snapshotInterval throttles the commentary feed to roughly two
// snapshots per second.
const snapshotInterval = 500 * time.Millisecond

// ErrEmptyName rejects a start with no player name.
var ErrEmptyName = errors.New("session: player name is empty")

// ErrRunInFlight rejects a start while a run is active.
var ErrRunInFlight = errors.New("session: a run is already in flight")

// Persister saves the leaderboard. Satisfied by *leaderboard.Store.
type Persister interface {
	Save(leaderboard.Board) error
}

// SnapshotSink receives throttled camera snapshots. Satisfied by
// *commentary.Client. Implementations must not block.
type SnapshotSink interface {
	SendSnapshot(img image.Image)
}

// Options configures a controller. Store and Sink may be nil; the
// controller degrades to no persistence and no commentary.
type Options struct {
	Cols, Rows int
	Seed       int64
	Speed      game.SpeedConfig
	Extractor  vision.ExtractorConfig
	Arbiter    control.ArbiterConfig
	Board      leaderboard.Board
	Store      Persister
	Sink       SnapshotSink
	Logger     *log.Logger
}

// Controller is the run controller.
type Controller struct {
	extractor *vision.Extractor
	arbiter   *control.Arbiter
	game      *game.Game
	board     leaderboard.Board
	store     Persister
	sink      SnapshotSink
	logger    *log.Logger

	state      State
	playerName string

	countdownEnd time.Time
	lastAdvance  time.Time
	lastSnapshot time.Time
	rawVector    vision.MotionVector
	saved        bool
	stopped      bool

	linkMu     sync.Mutex
	linkStatus string
}

// NewController creates a controller in StateIdle.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		extractor: vision.NewExtractor(opts.Extractor),
		arbiter:   control.NewArbiter(opts.Arbiter),
		game:      game.New(opts.Cols, opts.Rows, opts.Seed, opts.Speed),
		board:     opts.Board,
		store:     opts.Store,
		sink:      opts.Sink,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// PlayerName returns the name set by the last successful Start.
func (c *Controller) PlayerName() string {
	return c.playerName
}

// Board returns the current leaderboard.
func (c *Controller) Board() leaderboard.Board {
	return c.board
}

// Game exposes the simulation snapshot for rendering.
func (c *Controller) Game() game.Snapshot {
	return c.game.Snapshot()
}

// RawVector returns the last extracted motion vector (debug HUD).
func (c *Controller) RawVector() vision.MotionVector {
	return c.rawVector
}

// SmoothedVector returns the arbiter's smoothed state (debug HUD).
func (c *Controller) SmoothedVector() vision.MotionVector {
	return c.arbiter.Smoothed()
}

// LinkStatus returns the commentary link status text for the HUD.
func (c *Controller) LinkStatus() string {
	c.linkMu.Lock()
	defer c.linkMu.Unlock()
	return c.linkStatus
}

// SetLinkStatus records a commentary status change. Display only; the
// controller never acts on it. Called from the commentary client's
// goroutine, concurrently with the tick loop.
func (c *Controller) SetLinkStatus(status string) {
	c.linkMu.Lock()
	defer c.linkMu.Unlock()
	c.linkStatus = status
}

// CountdownRemaining returns how much pre-roll is left, clamped at 0.
func (c *Controller) CountdownRemaining(now time.Time) time.Duration {
	if c.state != StateCountdown {
		return 0
	}
	if rem := c.countdownEnd.Sub(now); rem > 0 {
		return rem
	}
	return 0
}

// Start begins a run from idle. The guard rejects an empty name and a
// run already in flight, so two start actions cannot race a second
// simulation into existence.
func (c *Controller) Start(name string, now time.Time) error {
	if name == "" {
		return ErrEmptyName
	}
	if c.state == StateCountdown || c.state == StatePlaying {
		return ErrRunInFlight
	}
	c.playerName = name
	c.beginRun(now)
	return nil
}

// Replay restarts after a game over, keeping the player name and the
// loaded leaderboard. No-op in any other state.
func (c *Controller) Replay(now time.Time) {
	if c.state != StateGameOver {
		return
	}
	c.beginRun(now)
}

// beginRun re-initializes all start-of-run state: snake, food,
// direction, score, smoothed vector, frame history.
func (c *Controller) beginRun(now time.Time) {
	c.game.Restart()
	c.arbiter.Reset()
	c.extractor.Reset()
	c.rawVector = vision.MotionVector{}
	c.saved = false
	c.state = StateCountdown
	c.countdownEnd = now.Add(CountdownDuration)
}

// Stop tears the controller down. Every later Tick is a no-op, so no
// pending advance can fire after teardown.
func (c *Controller) Stop() {
	c.stopped = true
}

// Stopped reports whether Stop was called.
func (c *Controller) Stopped() bool {
	return c.stopped
}

// Tick processes one frame callback. The motion pipeline runs every
// tick while playing; the simulation advances only when the elapsed
// time since the last advance exceeds the current speed interval. The
// frame may be nil (camera hiccup): the tick then counts as motionless.
func (c *Controller) Tick(now time.Time, frame *vision.Frame) {
	if c.stopped {
		return
	}

	switch c.state {
	case StateCountdown:
		// Warm the frame history through the pre-roll so the first
		// playing tick diffs against a real frame.
		c.extractor.Extract(frame)
		if !now.Before(c.countdownEnd) {
			c.state = StatePlaying
			c.lastAdvance = now
		}
	case StatePlaying:
		c.tickPlaying(now, frame)
	default:
		// Idle and game over: nothing moves
	}
}

func (c *Controller) tickPlaying(now time.Time, frame *vision.Frame) {
	c.rawVector = c.extractor.Extract(frame)
	dir := c.arbiter.Arbitrate(c.rawVector, c.game.Direction())
	c.game.SetDirection(dir)

	if now.Sub(c.lastAdvance) >= c.game.Interval() {
		c.lastAdvance = now
		if !c.game.Advance() {
			c.enterGameOver()
			return
		}
	}

	c.offerSnapshot(now, frame)
}

// enterGameOver freezes the simulation and persists the score exactly
// once. Persistence failures are logged and ignored: the leaderboard
// write must never take the game down.
func (c *Controller) enterGameOver() {
	c.state = StateGameOver
	if c.saved {
		return
	}
	c.saved = true

	c.board.Add(leaderboard.Entry{
		Name:  c.playerName,
		Score: c.game.Score(),
		When:  time.Now(),
	})
	if c.store != nil {
		if err := c.store.Save(c.board); err != nil {
			c.logger.Warn("session: leaderboard save failed", "error", err)
		}
	}
}

// offerSnapshot forwards the camera frame to the commentary sink at
// most every snapshotInterval. Fire and forget.
func (c *Controller) offerSnapshot(now time.Time, frame *vision.Frame) {
	if c.sink == nil || frame == nil {
		return
	}
	if now.Sub(c.lastSnapshot) < snapshotInterval {
		return
	}
	c.lastSnapshot = now
	c.sink.SendSnapshot(frame.Image())
}
