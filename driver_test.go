package chordbind

import (
	"testing"
	"time"
)

func TestDriverFlushesOnTimeout(t *testing.T) {
	e := NewEngine[string, struct{}]()
	if _, err := e.AddBinding(mustParse(t, "ab"), alwaysEnabled, "P1"); err != nil {
		t.Fatal(err)
	}

	effects := make(chan Effect[string], 4)
	d := NewDriver(e, 20*time.Millisecond, func(eff Effect[string]) {
		effects <- eff
	})

	d.KeyDown(struct{}{}, keyRune('a'))

	select {
	case got := <-effects:
		t.Fatalf("received effect %+v before timeout elapsed", got)
	case <-time.After(10 * time.Millisecond):
	}

	select {
	case got := <-effects:
		want := unhandledEffect(keyRune('a'))
		if got != want {
			t.Errorf("timed-out flush effect = %+v, want %+v", got, want)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for driver to flush")
	}
}

func TestDriverCancelsTimerOnExtend(t *testing.T) {
	e := NewEngine[string, struct{}]()
	if _, err := e.AddBinding(mustParse(t, "ab"), alwaysEnabled, "P1"); err != nil {
		t.Fatal(err)
	}

	effects := make(chan Effect[string], 4)
	d := NewDriver(e, 20*time.Millisecond, func(eff Effect[string]) {
		effects <- eff
	})

	d.KeyDown(struct{}{}, keyRune('a'))
	time.Sleep(10 * time.Millisecond)
	d.KeyDown(struct{}{}, keyRune('b'))

	select {
	case got := <-effects:
		want := execEffect("P1")
		if got != want {
			t.Errorf("effect = %+v, want %+v", got, want)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for driver to dispatch")
	}

	select {
	case got := <-effects:
		t.Fatalf("received unexpected extra effect %+v (stale timer fired?)", got)
	case <-time.After(50 * time.Millisecond):
	}
}
