package playtime

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// boldTextSize is the size at which DrawText switches to the bold face.
const boldTextSize = 40

// EbitenSurface draws onto an ebiten image. The target is set each frame by
// Game.Draw.
type EbitenSurface struct {
	target *ebiten.Image
	width  float64
	height float64

	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	images  map[image.Image]*ebiten.Image
	path    vector.Path
}

// NewEbitenSurface loads the Go fonts and returns a surface of the given
// logical size.
func NewEbitenSurface(width, height float64) (*EbitenSurface, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &EbitenSurface{
		width:   width,
		height:  height,
		regular: regular,
		bold:    bold,
		images:  make(map[image.Image]*ebiten.Image),
	}, nil
}

// SetTarget sets the image subsequent draws go to.
func (e *EbitenSurface) SetTarget(img *ebiten.Image) { e.target = img }

func (e *EbitenSurface) Size() (float64, float64) { return e.width, e.height }

func (e *EbitenSurface) Clear() {
	if e.target != nil {
		e.target.Clear()
	}
}

func (e *EbitenSurface) FillRect(x, y, w, h float64, c Color) {
	if e.target == nil || c.A <= 0 {
		return
	}
	vector.FillRect(e.target, float32(x), float32(y), float32(w), float32(h), c.NRGBA(), false)
}

func (e *EbitenSurface) FillCircle(cx, cy, r float64, c Color) {
	if e.target == nil || c.A <= 0 || r <= 0 {
		return
	}
	vector.FillCircle(e.target, float32(cx), float32(cy), float32(r), c.NRGBA(), true)
}

func (e *EbitenSurface) StrokeCircle(cx, cy, r, width float64, c Color) {
	if e.target == nil || c.A <= 0 || r <= 0 {
		return
	}
	vector.StrokeCircle(e.target, float32(cx), float32(cy), float32(r), float32(width), c.NRGBA(), true)
}

func (e *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	if e.target == nil || c.A <= 0 {
		return
	}
	vector.StrokeLine(e.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), true)
}

func (e *EbitenSurface) FillPath(points []Vec2, c Color) {
	if e.target == nil || c.A <= 0 || len(points) < 3 {
		return
	}
	e.path.Reset()
	e.path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		e.path.LineTo(float32(p.X), float32(p.Y))
	}
	e.path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c.NRGBA())
	vector.FillPath(e.target, &e.path, &vector.FillOptions{}, op)
}

// DrawText draws s with its baseline at y. Large sizes use the bold face.
func (e *EbitenSurface) DrawText(s string, x, y, size float64, align TextAlign, c Color) {
	if e.target == nil || s == "" || size <= 0 || c.A <= 0 {
		return
	}
	src := e.regular
	if size >= boldTextSize {
		src = e.bold
	}
	face := &text.GoTextFace{Source: src, Size: size}
	op := &text.DrawOptions{}
	switch align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c.NRGBA())
	text.Draw(e.target, s, face, op)
}

// DrawImage draws img scaled into the rectangle (x, y, w, h). Converted
// images are cached by identity, so pass the same image.Image each frame.
func (e *EbitenSurface) DrawImage(img image.Image, x, y, w, h, alpha float64) {
	if e.target == nil || img == nil || alpha <= 0 {
		return
	}
	eimg, ok := e.images[img]
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
		e.images[img] = eimg
	}
	b := eimg.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	e.target.DrawImage(eimg, op)
}

// RunConfig configures the window.
type RunConfig struct {
	Title         string
	Width, Height int
	Fullscreen    bool
	// ShowFPS draws the FPSMeter in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string
}

// Game adapts a ScreenManager and Loop to ebiten.Game. Input is read in
// Update; the Loop ticks in Draw so dt follows the display's frame rate.
type Game struct {
	// KeyHook sees every pressed key before the screens. Returning true
	// consumes the key.
	KeyHook func(k ebiten.Key) bool

	manager *ScreenManager
	loop    *Loop
	cfg     RunConfig
	surface *EbitenSurface
	fps     *FPSMeter

	injectQueue     []syntheticEvent
	runner          *TestRunner
	screenshotQueue []string

	keyBuf   []ebiten.Key
	touchBuf []ebiten.TouchID
}

// NewGame creates a Game. Zero window dimensions use the manager's logical
// resolution.
func NewGame(m *ScreenManager, loop *Loop, cfg RunConfig) (*Game, error) {
	c := m.Context().Config
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = int(c.Width), int(c.Height)
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	surface, err := NewEbitenSurface(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	g := &Game{
		manager: m,
		loop:    loop,
		cfg:     cfg,
		surface: surface,
	}
	if cfg.ShowFPS || c.Debug {
		g.fps = NewFPSMeter(loop.Governor())
	}
	return g, nil
}

// Manager returns the game's screen manager.
func (g *Game) Manager() *ScreenManager { return g.manager }

// Loop returns the game's loop.
func (g *Game) Loop() *Loop { return g.loop }

// Update implements ebiten.Game. It runs the test runner and delivers
// injected or real input.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.step(g)
	}
	if !g.processInjectedInput() {
		g.pollInput()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	dt := g.loop.Tick(time.Now(), g.surface)
	if g.fps != nil {
		g.fps.Update(dt)
		g.fps.Render(g.surface)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical resolution is fixed; ebiten
// scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	c := g.manager.Context().Config
	return int(c.Width), int(c.Height)
}

// Run opens the window and blocks until it closes.
func Run(g *Game) error {
	title := g.cfg.Title
	if title == "" {
		title = "playtime"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(g.cfg.Fullscreen)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
