package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/replay"
)

const (
	minSpeed = 0.25
	maxSpeed = 16
)

// Player shows a replay on a screen
type Player struct {
	screen tcell.Screen
	replay *replay.Replay
	raster Raster
	buf    *Buffer

	frame  int
	paused bool
	speed  float64
}

// NewPlayer prepares r for playback; the screen must already be initialized
func NewPlayer(screen tcell.Screen, r *replay.Replay) *Player {
	return &Player{
		screen: screen,
		replay: r,
		raster: DefaultRaster(),
		buf:    NewBuffer(0, 0),
		speed:  1,
	}
}

// Frame returns the index of the displayed frame
func (p *Player) Frame() int { return p.frame }

func (p *Player) Paused() bool { return p.paused }

func (p *Player) Speed() float64 { return p.speed }

func (p *Player) atEnd() bool { return p.frame >= len(p.replay.Frames)-1 }

// interval is the wall time between recorded frames at the current speed
func (p *Player) interval() time.Duration {
	every := max(p.replay.Every, 1)
	return time.Duration(float64(time.Second) * parameter.DeltaTime * float64(every) / p.speed)
}

// Draw renders the current frame and shows it
func (p *Player) Draw() {
	if len(p.replay.Frames) == 0 {
		return
	}
	w, h := p.screen.Size()
	if bw, bh := p.buf.Size(); bw != w || bh != h {
		p.buf.Resize(w, h)
	} else {
		p.buf.Clear()
	}

	status := fmt.Sprintf("[%d/%d] x%g", p.frame+1, len(p.replay.Frames), p.speed)
	if p.paused {
		status += " paused"
	}
	p.raster.DrawFrame(p.buf, p.replay.GridAt(p.frame), p.replay.Frames[p.frame], status)
	p.buf.Flush(p.screen)
	p.screen.Show()
}

// HandleKey applies one key press; it returns false when the viewer should close
func (p *Player) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		p.paused = true
		p.frame = min(p.frame+1, len(p.replay.Frames)-1)
	case tcell.KeyLeft:
		p.paused = true
		p.frame = max(p.frame-1, 0)
	case tcell.KeyHome:
		p.frame = 0
	case tcell.KeyEnd:
		p.frame = max(len(p.replay.Frames)-1, 0)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			p.paused = !p.paused
		case '+', '=':
			p.speed = min(p.speed*2, maxSpeed)
		case '-':
			p.speed = max(p.speed/2, minSpeed)
		}
	}
	return true
}

// Run plays until the user quits or ctx is done
// The caller owns the screen and finalizes it afterwards, which also stops the event reader
func (p *Player) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	core.Go(func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	speed := p.speed
	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()
	p.Draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !p.HandleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
			if p.speed != speed {
				speed = p.speed
				ticker.Reset(p.interval())
			}
			p.Draw()

		case <-ticker.C:
			if p.paused || p.atEnd() {
				continue
			}
			p.frame++
			p.Draw()
		}
	}
}
