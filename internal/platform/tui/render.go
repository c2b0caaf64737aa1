package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/motion-snake/internal/core"
	"github.com/vovakirdan/motion-snake/internal/game"
	"github.com/vovakirdan/motion-snake/internal/session"
	"github.com/vovakirdan/motion-snake/internal/vision"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape
// sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hudHeight is the number of rows above the board border.
const hudHeight = 2

// drawHUD draws the top status line and separator.
func drawHUD(dst *core.Screen, ctrl *session.Controller) {
	snap := ctrl.Game()
	hud := fmt.Sprintf(" %s - Score: %d  Best: %d", ctrl.PlayerName(), snap.Score, ctrl.Board().Best())
	dst.DrawText(0, 0, hud, core.ColorBrightWhite)

	right := fmt.Sprintf("%s  %s ", vectorGauge(ctrl.SmoothedVector()), linkLabel(ctrl.LinkStatus()))
	dst.DrawText(dst.Width()-len([]rune(right)), 0, right, core.ColorGray)

	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 1, '─')
	}
}

// vectorGauge renders the smoothed motion vector as a compact debug
// readout, e.g. "mx:+0.42 my:-0.07".
func vectorGauge(v vision.MotionVector) string {
	return fmt.Sprintf("mx:%+.2f my:%+.2f", v.X, v.Y)
}

func linkLabel(status string) string {
	if status == "" {
		return "cam"
	}
	return "ai:" + status
}

// drawBoard draws the bordered grid, snake, and food. The board is
// centered horizontally below the HUD.
func drawBoard(dst *core.Screen, snap game.Snapshot) (offX, offY int) {
	offX = core.Max(0, (dst.Width()-snap.Cols-2)/2)
	offY = hudHeight

	border := core.NewRect(offX, offY, snap.Cols+2, snap.Rows+2)
	dst.DrawBox(border, core.ColorGray)

	for i, seg := range snap.Snake {
		r, c := 'o', core.ColorGreen
		if i == 0 {
			r, c = 'O', core.ColorBrightGreen
		}
		dst.SetCell(offX+1+seg.X, offY+1+seg.Y, r, c)
	}

	// Food parked off-board (full grid) simply isn't drawn.
	grid := core.NewRect(0, 0, snap.Cols, snap.Rows)
	if grid.Contains(snap.Food.X, snap.Food.Y) {
		dst.SetCell(offX+1+snap.Food.X, offY+1+snap.Food.Y, '*', core.ColorBrightRed)
	}
	return offX, offY
}

// drawOverlay draws a centered two-line message box over the board.
func drawOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	box := core.NewRect((w-maxLen-4)/2, (h-5)/2, maxLen+4, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}

// drawLeaderboard draws the top-10 table centered under a heading.
func drawLeaderboard(dst *core.Screen, ctrl *session.Controller, y int) {
	entries := ctrl.Board().Entries()
	if len(entries) == 0 {
		dst.DrawTextCentered(y, "No scores yet - be the first!", core.ColorGray)
		return
	}

	dst.DrawTextCentered(y, "── Top 10 ──", core.ColorBrightCyan)
	for i, e := range entries {
		line := fmt.Sprintf("%2d. %-12s %5d", i+1, e.Name, e.Score)
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextCentered(y+1+i, line, c)
	}
}
