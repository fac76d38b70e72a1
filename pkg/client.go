package pkg

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/weetris/pkg/config"
	"github.com/qnkhuat/weetris/pkg/gui"
	"github.com/qnkhuat/weetris/pkg/tetris"
)

// Client is the terminal front end of one player.
type Client struct {
	App    *tview.Application
	Board  *tview.TextView
	Help   *tview.TextView
	Layout *tview.Grid
	Player *Player

	logger *log.Logger

	// redraw holds at most one pending board refresh. The drawer waits for
	// started so nothing is queued before the application loop runs.
	redraw    chan struct{}
	started   chan struct{}
	startOnce sync.Once

	mu        sync.Mutex
	cfg       *config.Config
	colors    int
	theme     gui.Theme
	lastFrame *Frame
}

func NewClient(name string, cfg *config.Config, scores tetris.BestStore, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	app := tview.NewApplication()

	board := tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)

	board.SetDynamicColors(true)

	help := tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false)

	layout := tview.NewGrid().
		SetRows(2, -1).
		SetColumns(-1).
		AddItem(help, 0, 0, 1, 1, 0, 0, false).
		AddItem(board, 1, 0, 1, 1, 0, 0, true)

	cl := &Client{
		App:     app,
		Board:   board,
		Help:    help,
		Layout:  layout,
		logger:  logger,
		redraw:  make(chan struct{}, 1),
		started: make(chan struct{}),
		cfg:     cfg,
		colors:  8,
	}

	session := tetris.NewSession(tetris.NewRandomizer(0), scores)
	cl.Player = NewPlayer(name, session, logger, cl.draw)

	cl.applyConfig()

	app.SetInputCapture(cl.handleKey)
	app.SetBeforeDrawFunc(func(s tcell.Screen) bool {
		cl.startOnce.Do(func() { close(cl.started) })
		cl.setColors(s.Colors())
		return false
	})

	return cl
}

func helpText(name string, keyDownSlow bool) string {
	slow, fast := "down", "ctrl-down"
	if !keyDownSlow {
		slow, fast = fast, slow
	}
	return fmt.Sprintf(" WeeTris - %s\n up: rotate  left/right: move  %s: slow down  %s: drop  alt-n: new game  alt-p: pause  q: quit",
		name, slow, fast)
}

// applyConfig resolves the theme and help text for the current settings. The
// caller must not hold mu.
func (cl *Client) applyConfig() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	t, err := cl.cfg.ResolveTheme(cl.colors)
	if err != nil {
		cl.logger.Error("failed to load theme, using default", "err", err)
		t = gui.DefaultTheme(cl.colors)
	}
	cl.theme = t
	cl.Help.SetText(helpText(cl.Player.Name, cl.cfg.Game.KeyDownSlow))
}

func (cl *Client) setColors(colors int) {
	cl.mu.Lock()
	changed := colors != cl.colors
	cl.colors = colors
	cl.mu.Unlock()

	if changed {
		cl.logger.Debug("terminal colors", "colors", colors)
		cl.applyConfig()
		cl.Board.SetText(cl.render())
	}
}

// Reload swaps in a new configuration and redraws the last frame with it.
func (cl *Client) Reload(cfg *config.Config) {
	cl.mu.Lock()
	cl.cfg = cfg
	cl.mu.Unlock()

	cl.applyConfig()
	cl.requestRedraw()
	cl.logger.Info("config reloaded", "display_next_piece", cfg.Game.DisplayNextPiece, "key_down_slow", cfg.Game.KeyDownSlow)
}

// render draws the last frame. It runs on the application goroutine.
func (cl *Client) render() string {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.lastFrame == nil {
		return ""
	}

	return gui.Render(&gui.GameState{
		Snapshot:         cl.lastFrame.Snapshot,
		Theme:            cl.theme,
		Elapsed:          cl.lastFrame.Elapsed,
		DisplayNextPiece: cl.cfg.Game.DisplayNextPiece,
	})
}

func (cl *Client) draw(f Frame) {
	cl.mu.Lock()
	cl.lastFrame = &f
	cl.mu.Unlock()

	cl.requestRedraw()
}

func (cl *Client) requestRedraw() {
	select {
	case cl.redraw <- struct{}{}:
	default:
	}
}

// drawLoop hands redraw requests to the application goroutine until ctx is
// done.
func (cl *Client) drawLoop(ctx context.Context) {
	select {
	case <-cl.started:
	case <-ctx.Done():
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-cl.redraw:
			cl.App.QueueUpdateDraw(func() {
				cl.Board.SetText(cl.render())
			})
		}
	}
}

func (cl *Client) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	cl.mu.Lock()
	keyDownSlow := cl.cfg.Game.KeyDownSlow
	cl.mu.Unlock()

	a, ok := gui.KeyAction(ev, keyDownSlow)
	if !ok {
		return ev
	}

	select {
	case cl.Player.In <- a:
	default:
		cl.logger.Warn("action queue full, dropping action", "action", a)
	}
	return nil
}

// Run shows the game until the player quits or ctx is done.
func (cl *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go cl.drawLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		err := cl.Player.Run(ctx)
		cl.App.Stop()
		errc <- err
	}()

	if err := cl.App.SetRoot(cl.Layout, true).Run(); err != nil {
		cancel()
		<-errc
		return fmt.Errorf("run application: %w", err)
	}

	cancel()
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
