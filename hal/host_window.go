//go:build !tinygo && cgo

package hal

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"trail/internal/buildinfo"
)

// WindowConfig controls the desktop simulator.
type WindowConfig struct {
	Host  HostConfig
	Scale int
}

// RunWindow opens a desktop window showing the exhibit panel. Arrow keys
// deflect the joystick while held. run executes on its own goroutine; the
// window closes when it returns, and run's context is canceled when the
// window closes. It blocks until both are done.
func RunWindow(ctx context.Context, run Runner, cfg WindowConfig) error {
	cfg.Host.Buzzer = true
	h := newHost(cfg.Host)
	defer h.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, h)
		cancel()
	}()

	scale := cfg.Scale
	if scale <= 0 {
		scale = 4
	}
	g := &hostGame{h: h, ctx: ctx, canvas: NewCanvas(PanelWidth, PanelHeight)}
	ebiten.SetWindowTitle("Trail (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(PanelWidth*scale, PanelHeight*scale)
	ebiten.SetTPS(60)
	winErr := ebiten.RunGame(g)

	cancel()
	h.clk.stop()
	runErr := <-done
	if winErr != nil {
		return winErr
	}
	if runErr == context.Canceled {
		return nil
	}
	return runErr
}

type hostGame struct {
	h      *hostHAL
	ctx    context.Context
	canvas *Canvas
	drawn  uint64
	fresh  bool
	img    *ebiten.Image
	pix    []byte
}

func (g *hostGame) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	pollStick(g.h.stick)
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(PanelWidth, PanelHeight)
		g.pix = make([]byte, PanelWidth*PanelHeight*4)
	}
	s := g.h.panel.State()
	if !g.fresh || s.Version != g.drawn {
		RenderPanel(g.canvas, s)
		g.canvas.RGBA(g.pix)
		g.img.WritePixels(g.pix)
		g.drawn = s.Version
		g.fresh = true
	}
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return PanelWidth, PanelHeight
}
