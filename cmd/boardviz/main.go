// Command boardviz is a terminal board renderer for debugging a map
// file and, optionally, stepping a locally-created game through its
// registers while watching positions update - a headless-server
// stand-in for the rendering the core's Non-goals explicitly exclude
// (spec.md §1: "rendering" is out of scope for the simulation itself,
// but a developer tool to look at one is not the simulation).
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/mvolfik/roborally-sub000/internal/cards"
	"github.com/mvolfik/roborally-sub000/internal/engine"
	"github.com/mvolfik/roborally-sub000/internal/grid"
	"github.com/mvolfik/roborally-sub000/internal/mapfile"
)

func main() {
	mapPath := flag.String("map", "", "Path to a map file to render")
	players := flag.Int("players", 1, "Number of players to spawn for stepping")
	sound := flag.Bool("sound", true, "Play a tone whenever a step emits any animation")
	flag.Parse()

	if *mapPath == "" {
		fmt.Println("Usage: boardviz --map=<file> [--players=N] [--sound=false]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading map file: %v\n", err)
		os.Exit(1)
	}
	m, err := mapfile.Parse(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing map: %v\n", err)
		os.Exit(1)
	}

	g, err := engine.NewGame(m, m.SpawnPoints[:min(*players, len(m.SpawnPoints))], cards.NewRandShuffler(time.Now().UnixNano()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating game: %v\n", err)
		os.Exit(1)
	}

	var chime beep.Streamer
	if *sound {
		sr := beep.SampleRate(44100)
		if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: speaker init failed: %v\n", err)
		} else {
			chime = newTone(880, 120*time.Millisecond, sr)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	eventChan := make(chan tcell.Event, 4)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	draw(screen, g)

	running := false
	for {
		select {
		case ev := <-eventChan:
			switch e := ev.(type) {
			case *tcell.EventKey:
				switch e.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return
				case tcell.KeyRune:
					if e.Rune() == 'q' {
						return
					}
					if e.Rune() == ' ' && !running {
						running = true
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-time.After(50 * time.Millisecond):
			if running {
				if !stepOnce(g) {
					running = false
				}
				if chime != nil && len(g.DrainAnimations()) > 0 {
					speaker.Play(chime)
				}
				draw(screen, g)
			}
		}
	}
}

// stepOnce advances the game by one sub-phase if it's mid-register,
// or programs an all-Move1 round to get it started otherwise - this
// tool is for watching the board move, not exercising real clients.
func stepOnce(g *engine.Game) bool {
	if g.Phase.Kind != engine.PhaseRunning {
		allMove1 := [5]cards.Card{cards.Move1, cards.Move1, cards.Move1, cards.Move1, cards.Move1}
		for _, p := range g.Players {
			if p.Prepared == nil {
				// Deal the five Move1 cards into the hand so Program's
				// hand check accepts them.
				p.Deck.Hand = append(p.Deck.Hand, allMove1[:]...)
				p.Program(allMove1)
			}
		}
		if err := g.StartRunning(); err != nil {
			return false
		}
	}
	return g.RunSubPhase()
}

func draw(screen tcell.Screen, g *engine.Game) {
	screen.Clear()
	size := g.Map.Grid.Size()

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			tile, _ := g.Map.Grid.Get(grid.Position{X: x, Y: y})
			screen.SetContent(x, y, tileRune(tile), nil, tileStyle(tile))
		}
	}

	for i, p := range g.Players {
		if p.Public.IsHidden {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
		screen.SetContent(p.Public.Position.X, p.Public.Position.Y, playerRune(i), nil, style)
	}

	screen.Show()
}

func tileRune(t grid.Tile) rune {
	switch t.Kind {
	case grid.Void:
		return ' '
	case grid.Floor:
		return '.'
	case grid.Belt:
		return '>'
	case grid.PushPanel:
		return 'P'
	case grid.Rotation:
		return 'R'
	default:
		return '?'
	}
}

func tileStyle(t grid.Tile) tcell.Style {
	switch t.Kind {
	case grid.Belt:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case grid.PushPanel:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case grid.Rotation:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	default:
		return tcell.StyleDefault
	}
}

func playerRune(i int) rune {
	return rune('A' + i)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// tone is a minimal sine-wave beep.Streamer, the same generator shape
// as an oscillator: a fixed-duration sample source that reports ok=false
// once exhausted.
type tone struct {
	freq     float64
	phase    float64
	rate     beep.SampleRate
	position int
	duration int
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, rate: rate, duration: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, false
		}
		v := math.Sin(2 * math.Pi * t.phase)
		samples[i][0], samples[i][1] = v, v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
