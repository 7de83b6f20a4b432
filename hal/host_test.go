//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHostLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &hostLogger{w: &buf}
	l.WriteLineString("a")
	l.WriteLineBytes([]byte("b"))
	if got := buf.String(); got != "a\nb\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRunHeadlessFeedsScript(t *testing.T) {
	script, err := ParseScript("7{bs}{click 5,6}")
	if err != nil {
		t.Fatal(err)
	}

	var keys []KeyEvent
	var ptrs []PointerEvent
	newApp := func(h HAL) func() error {
		kbd := h.Input().Keyboard().Events()
		ptr := h.Input().Pointer().Events()
		return func() error {
			for {
				select {
				case ev := <-kbd:
					keys = append(keys, ev)
				case ev := <-ptr:
					ptrs = append(ptrs, ev)
				default:
					return nil
				}
			}
		}
	}

	snap := filepath.Join(t.TempDir(), "out.png")
	cfg := HeadlessConfig{Hz: 1000, Ticks: 20, Script: script, Snapshot: snap, Log: &bytes.Buffer{}}
	if err := RunHeadless(context.Background(), newApp, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	if len(keys) != 3 || keys[0].Rune != '7' || keys[1].Code != KeyBackspace || keys[2].Press {
		t.Fatalf("unexpected key events %+v", keys)
	}
	if len(ptrs) != 2 || ptrs[0] != (PointerEvent{X: 5, Y: 6, Press: true}) {
		t.Fatalf("unexpected pointer events %+v", ptrs)
	}
	if st, err := os.Stat(snap); err != nil || st.Size() == 0 {
		t.Fatalf("snapshot not written: %v", err)
	}
}

func TestRunHeadlessRejectsBadHz(t *testing.T) {
	err := RunHeadless(context.Background(), func(HAL) func() error { return nil }, HeadlessConfig{Hz: 2000000000})
	if err == nil {
		t.Fatal("expected error for hz beyond nanosecond resolution")
	}
}

func TestHostClockCarriesRemainder(t *testing.T) {
	c := newHostClock()
	t0 := time.Unix(100, 0)
	c.advance(t0)
	c.advance(t0.Add(1500 * time.Microsecond))
	c.advance(t0.Add(2200 * time.Microsecond))

	var got []uint64
	for len(c.ch) > 0 {
		got = append(got, <-c.ch)
	}
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("got ticks %v, want [1 2 3]", got)
	}
}
