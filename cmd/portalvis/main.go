// portalvis - Terminal portal visibility viewer
// Fly through a portal world and watch the culling work.
//
// Controls:
//
//	Mouse drag  - Look around
//	W/S         - Move forward/backward
//	A/D         - Strafe left/right
//	Space/C     - Move up/down
//	P           - Toggle portal culling
//	L           - Lock/unlock the traversal start area
//	O           - Toggle scissor rectangle overlay
//	V           - Toggle traversal path overlay
//	G           - Toggle reference grid
//	+/-         - Adjust max portal depth
//	R           - Reset camera
//	?           - Toggle HUD overlay (stats, depth, toggles)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/portalvis/pkg/math3d"
	"github.com/taigrr/portalvis/pkg/render"
	"github.com/taigrr/portalvis/pkg/vis"
	"github.com/taigrr/portalvis/pkg/worldio"
)

var (
	targetFPS = flag.Int("fps", 60, "Target FPS")
	maxDepth  = flag.Int("depth", vis.DefaultMaxDepth, "Max portal recursion depth")
	bgColor   = flag.String("bg", "20,20,30", "Background color (R,G,B)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "portalvis - Terminal portal visibility viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: portalvis [options] [world.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the built-in demo world when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Look around\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Move\n")
		fmt.Fprintf(os.Stderr, "  Space/C     - Up/down\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle portal culling\n")
		fmt.Fprintf(os.Stderr, "  L           - Lock start area\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle scissor overlay\n")
		fmt.Fprintf(os.Stderr, "  V           - Toggle traversal path\n")
		fmt.Fprintf(os.Stderr, "  G           - Toggle grid\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Max portal depth\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// MoveAxis tracks velocity along one movement axis with spring decay,
// so motion eases out instead of stopping dead.
type MoveAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// NewMoveAxis creates an axis critically damped toward zero velocity.
func NewMoveAxis(fps int) MoveAxis {
	return MoveAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update decays velocity toward zero and returns the distance covered
// this frame.
func (a *MoveAxis) Update() float64 {
	d := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return d
}

// MoveState holds the three movement axes of the fly camera.
type MoveState struct {
	Forward, Strafe, Vertical MoveAxis
	fps                       int
}

func NewMoveState(fps int) *MoveState {
	return &MoveState{
		Forward:  NewMoveAxis(fps),
		Strafe:   NewMoveAxis(fps),
		Vertical: NewMoveAxis(fps),
		fps:      fps,
	}
}

func (m *MoveState) ApplyImpulse(forward, strafe, vertical float64) {
	m.Forward.Velocity += forward
	m.Strafe.Velocity += strafe
	m.Vertical.Velocity += vertical
}

func (m *MoveState) Reset() {
	m.Forward = NewMoveAxis(m.fps)
	m.Strafe = NewMoveAxis(m.fps)
	m.Vertical = NewMoveAxis(m.fps)
}

// ViewState holds the overlay toggles (UI state, not library code).
type ViewState struct {
	ShowScissors bool
	ShowPath     bool
	ShowGrid     bool
	ShowHUD      bool
}

// HUD renders a text overlay with visibility statistics.
type HUD struct {
	worldName string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(worldName string) *HUD {
	return &HUD{worldName: worldName, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal.
func (h *HUD) Render(width, height int, w *vis.World, q *vis.Query, viewState *ViewState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !viewState.ShowHUD {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.worldName)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.worldName, reset)

	stats := w.Stats().String()
	statsCol := max(width-len(stats)-2, 1)
	fmt.Printf("%s%s%s %s %s", moveTo(1, statsCol), bgBlack, fgCyan, stats, reset)

	checkCull := "[ ]"
	if w.UsePortals {
		checkCull = "[✓]"
	}
	checkLock := "[ ]"
	if w.LockArea {
		checkLock = "[✓]"
	}
	fmt.Printf("%s%s%s %s Culling  %s Lock  depth %d/%d %s",
		moveTo(height, 1), bgBlack, fgWhite, checkCull, checkLock,
		q.Stats.MaxDepth, w.MaxDepth, reset)

	hint := fmt.Sprintf("%s%s P:cull L:lock O:scissors %s", bgBlack, fgYellow, reset)
	hintCol := max(width-28, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}

func loadWorld(path string) (*worldio.World, string, error) {
	if path == "" {
		return worldio.DemoWorld(), "demo world", nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".glb" && ext != ".gltf" {
		return nil, "", fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
	world, err := worldio.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load world: %w", err)
	}
	return world, filepath.Base(path), nil
}

func run(worldPath string) error {
	var bgR, bgG, bgB uint8 = 20, 20, 30
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	world, worldName, err := loadWorld(worldPath)
	if err != nil {
		return err
	}
	w := world.Vis
	w.MaxDepth = *maxDepth

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	camera := render.NewCamera()
	camera.AspectRatio = float64(fbWidth) / float64(fbHeight)
	resetCamera := func() {
		start := w.Area(0)
		if start != nil {
			camera.Position = start.Center
		} else {
			camera.Position = math3d.V3(0, 5, 0)
		}
		camera.Pitch = 0
		camera.Yaw = -math.Pi / 2
	}
	resetCamera()

	move := NewMoveState(*targetFPS)
	viewState := &ViewState{ShowHUD: true}
	hud := NewHUD(worldName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Held-key impulse, decayed each frame since key release events
	// are unreliable in terminals.
	inputMove := struct{ forward, strafe, vertical float64 }{}
	const moveStrength = 30.0

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				camera.AspectRatio = float64(fbWidth) / float64(fbHeight)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					inputMove.forward = moveStrength
				case ev.MatchString("s", "down"):
					inputMove.forward = -moveStrength
				case ev.MatchString("a", "left"):
					inputMove.strafe = -moveStrength
				case ev.MatchString("d", "right"):
					inputMove.strafe = moveStrength
				case ev.MatchString("space"):
					inputMove.vertical = moveStrength
				case ev.MatchString("c"):
					inputMove.vertical = -moveStrength
				case ev.MatchString("p"):
					w.UsePortals = !w.UsePortals
				case ev.MatchString("l"):
					w.LockArea = !w.LockArea
				case ev.MatchString("o"):
					viewState.ShowScissors = !viewState.ShowScissors
				case ev.MatchString("v"):
					viewState.ShowPath = !viewState.ShowPath
				case ev.MatchString("g"):
					viewState.ShowGrid = !viewState.ShowGrid
				case ev.MatchString("+", "="):
					if w.MaxDepth < vis.MaxPortalDepth {
						w.MaxDepth++
					}
				case ev.MatchString("-", "_"):
					if w.MaxDepth > 1 {
						w.MaxDepth--
					}
				case ev.MatchString("r"):
					move.Reset()
					resetCamera()
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					viewState.ShowHUD = !viewState.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputMove.forward = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputMove.strafe = 0
				case ev.MatchString("space"), ev.MatchString("c"):
					inputMove.vertical = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					camera.Rotate(float64(-dy)*0.03, float64(-dx)*0.03)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		move.ApplyImpulse(
			inputMove.forward*dt,
			inputMove.strafe*dt,
			inputMove.vertical*dt,
		)
		inputMove.forward *= 0.9
		inputMove.strafe *= 0.9
		inputMove.vertical *= 0.9

		camera.MoveForward(move.Forward.Update())
		camera.MoveRight(move.Strafe.Update())
		camera.MoveUp(move.Vertical.Update())

		// Visibility pass
		view := camera.View(fbWidth, fbHeight)
		q := w.NewQuery(view)
		w.FindVisibleAreas(q)

		// Render
		fb.Clear(render.RGB(bgR, bgG, bgB))
		debug := render.NewDebug(fb, view)
		if viewState.ShowGrid {
			debug.DrawGrid(200, 10, render.ColorDimGray)
			debug.DrawAxes(5)
		}
		debug.DrawWorld(world, q)
		if viewState.ShowPath {
			debug.DrawPath(world, q, render.ColorMagenta)
		}
		if viewState.ShowScissors {
			debug.DrawScissors(q)
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, w, q, viewState)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
