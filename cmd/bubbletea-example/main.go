// Example: driving a Bubble Tea program with chordbind.
//
// Run with: go run main.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kungfusheep/chordbind"
	"github.com/kungfusheep/chordbind/termio"
)

type moveCmd int
type deleteCmd struct{}

type mode int

const (
	modeNormal mode = iota
	modeInsert
)

func main() {
	raw, err := termio.MakeRaw(termio.Stdin())
	if err != nil {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal:", err)
		os.Exit(1)
	}
	defer raw.Restore()

	p := tea.NewProgram(newModel(), tea.WithInput(nil), tea.WithAltScreen())

	opts, err := chordbind.LoadEngineOptions(chordbind.ConfigPath())
	if err != nil {
		slog.Warn("loading chordbind config, falling back to defaults", "error", err)
		opts = chordbind.DefaultEngineOptions()
	}

	engine := chordbind.NewEngineWithOptions[tea.Msg, mode](opts)
	bind(engine, "j", func(m mode) bool { return m == modeNormal }, moveCmd(1))
	bind(engine, "k", func(m mode) bool { return m == modeNormal }, moveCmd(-1))
	bind(engine, "gg", func(m mode) bool { return m == modeNormal }, moveCmd(-1000))
	bind(engine, "<s-g>", func(m mode) bool { return m == modeNormal }, moveCmd(1000))
	bindRemap(engine, "d d", func(m mode) bool { return m == modeNormal }, "x")
	bind(engine, "x", func(m mode) bool { return m == modeNormal }, deleteCmd{})
	bind(engine, "q", func(m mode) bool { return m == modeNormal }, tea.Quit())

	driver := chordbind.NewDriverWithOptions(engine, opts, func(e chordbind.Effect[tea.Msg]) {
		if e.Kind == chordbind.EffectExecute {
			p.Send(e.Payload)
		}
	})

	go readLoop(driver)

	p.Run()
}

func bind(e *chordbind.Engine[tea.Msg, mode], pattern string, enabled func(mode) bool, payload tea.Msg) {
	seq, err := chordbind.Parse(pattern, chordbind.DefaultResolver)
	if err != nil {
		panic(err)
	}
	if _, err := e.AddBinding(seq, enabled, payload); err != nil {
		panic(err)
	}
}

func bindRemap(e *chordbind.Engine[tea.Msg, mode], pattern string, enabled func(mode) bool, remapTo string) {
	seq, err := chordbind.Parse(pattern, chordbind.DefaultResolver)
	if err != nil {
		panic(err)
	}
	target, err := chordbind.Parse(remapTo, chordbind.DefaultResolver)
	if err != nil {
		panic(err)
	}
	keys := make([]chordbind.KeyEvent, len(target))
	for i, dm := range target {
		keys[i] = chordbind.KeyEvent{Keycode: dm.Matcher.Code, Modifiers: dm.Matcher.Mods}
	}
	if _, err := e.AddMapping(seq, enabled, keys); err != nil {
		panic(err)
	}
}

func readLoop(d *chordbind.Driver[tea.Msg, mode]) {
	r := termio.NewReader(os.Stdin, 50*time.Millisecond)
	for {
		ev, err := r.ReadKey()
		if err != nil {
			slog.Error("reading key from stdin", "error", err)
			return
		}
		d.KeyDown(modeNormal, ev)
	}
}

type model struct {
	items  []string
	cursor int
}

func newModel() model {
	return model{items: []string{
		"Learn chordbind", "Build a TUI", "Add modal bindings",
		"Multi-key sequences (gg, dd)", "Remap a chord to another", "Profit!",
	}}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case moveCmd:
		m.cursor = max(0, min(m.cursor+int(msg), len(m.items)-1))
	case deleteCmd:
		if len(m.items) > 0 {
			m.items = append(m.items[:m.cursor], m.items[m.cursor+1:]...)
			m.cursor = min(m.cursor, len(m.items)-1)
		}
	case tea.QuitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString("\n  chordbind + Bubble Tea\n  ───────────────────────\n\n")
	for i, item := range m.items {
		cursor := "   "
		if i == m.cursor {
			cursor = " ▸ "
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", cursor, item))
	}
	sb.WriteString("\n  j/k: move  gg/G: ends  dd: delete (remapped to x)  q: quit\n")
	return sb.String()
}
