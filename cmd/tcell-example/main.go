// Example: driving a tcell screen with chordbind.
//
// Run with: go run main.go
package main

import (
	"fmt"
	"log/slog"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kungfusheep/chordbind"
)

type mode int

const (
	modeNormal mode = iota
)

type action struct {
	label string
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		panic(err)
	}
	if err := screen.Init(); err != nil {
		panic(err)
	}
	defer screen.Fini()

	opts, err := chordbind.LoadEngineOptions(chordbind.ConfigPath())
	if err != nil {
		slog.Warn("loading chordbind config, falling back to defaults", "error", err)
		opts = chordbind.DefaultEngineOptions()
	}

	engine := chordbind.NewEngineWithOptions[action, mode](opts)
	bind(engine, "j", action{"move down"})
	bind(engine, "k", action{"move up"})
	bind(engine, "gg", action{"go to top"})
	bind(engine, "<c-w><c-w>", action{"cycle window"})
	bind(engine, "q", action{"quit"})

	status := "ready"
	quit := make(chan struct{})

	driver := chordbind.NewDriverWithOptions(engine, opts, func(e chordbind.Effect[action]) {
		if e.Kind != chordbind.EffectExecute {
			return
		}
		status = e.Payload.label
		slog.Info("binding fired", "action", status)
		draw(screen, status)
		if status == "quit" {
			close(quit)
		}
	})

	draw(screen, status)

	go func() {
		for {
			ev := screen.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventKey:
				driver.KeyDown(modeNormal, toKeyEvent(ev))
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	<-quit
}

func bind(e *chordbind.Engine[action, mode], pattern string, a action) {
	seq, err := chordbind.Parse(pattern, chordbind.DefaultResolver)
	if err != nil {
		panic(err)
	}
	if _, err := e.AddBinding(seq, nil, a); err != nil {
		panic(err)
	}
}

// toKeyEvent converts a tcell key event into the KeyEvent shape produced by
// chordbind.DefaultResolver, so bindings parsed from binding strings match
// keys reported by the screen.
func toKeyEvent(ev *tcell.EventKey) chordbind.KeyEvent {
	mods := chordbind.Modifiers{
		Shift:   ev.Modifiers()&tcell.ModShift != 0,
		Control: ev.Modifiers()&tcell.ModCtrl != 0,
		Alt:     ev.Modifiers()&tcell.ModAlt != 0,
		Meta:    ev.Modifiers()&tcell.ModMeta != 0,
	}

	var sym chordbind.KeySymbol
	switch ev.Key() {
	case tcell.KeyRune:
		sym = chordbind.KeySymbol{Kind: chordbind.KindRune, Rune: unicode.ToLower(ev.Rune())}
	case tcell.KeyUp:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedUp}
	case tcell.KeyDown:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedDown}
	case tcell.KeyLeft:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedLeft}
	case tcell.KeyRight:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedRight}
	case tcell.KeyEnter:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedReturn}
	case tcell.KeyTab:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedTab}
	case tcell.KeyEscape:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedEscape}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		sym = chordbind.KeySymbol{Kind: chordbind.KindNamed, Named: chordbind.NamedBackspace}
	default:
		if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
			sym = chordbind.KeySymbol{Kind: chordbind.KindFunction, Function: int(ev.Key()-tcell.KeyF1) + 1}
		} else if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
			sym = chordbind.KeySymbol{Kind: chordbind.KindRune, Rune: rune('a' + int(ev.Key()-tcell.KeyCtrlA))}
			mods.Control = true
		}
	}

	kc, okKC := chordbind.DefaultResolver.Keycode(sym)
	sc, okSC := chordbind.DefaultResolver.Scancode(sym)
	out := chordbind.KeyEvent{Modifiers: mods}
	if okKC {
		out.Keycode = kc
	}
	if okSC {
		out.Scancode = sc
	}
	return out
}

func draw(screen tcell.Screen, status string) {
	screen.Clear()
	text := fmt.Sprintf("chordbind + tcell -- %s", status)
	for i, r := range text {
		screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}
