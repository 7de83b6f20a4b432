//go:build js && wasm

// calcwasm binds the calculator to the web page that hosts it.
package main

import (
	"strings"
	"syscall/js"

	"sparkcalc/sparkos/calc"
)

// pageSink renders calculator output into the page's display field and history list.
type pageSink struct {
	doc     js.Value
	display js.Value
	history js.Value
}

func (s pageSink) SetDisplay(text string) {
	if s.display.IsNull() {
		return
	}
	s.display.Set("value", text)
}

func (s pageSink) PrependRecord(r calc.Record) {
	if s.history.IsNull() {
		return
	}
	li := s.doc.Call("createElement", "li")
	li.Set("textContent", r.String())
	s.history.Call("prepend", li)
}

func (s pageSink) EvictOldest() {
	if s.history.IsNull() {
		return
	}
	if last := s.history.Get("lastElementChild"); !last.IsNull() {
		s.history.Call("removeChild", last)
	}
}

func bindButtons(doc js.Value, c *calc.Calculator) {
	buttons := doc.Call("querySelectorAll", ".btn")
	for i := 0; i < buttons.Length(); i++ {
		btn := buttons.Index(i)
		class := calc.ButtonClassFromTags(strings.Fields(btn.Get("className").String()))
		label := strings.TrimSpace(btn.Get("textContent").String())
		in, ok := calc.ButtonIntent(class, label)
		if !ok {
			continue
		}
		btn.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
			c.Dispatch(in)
			return nil
		}))
	}
}

func bindKeys(doc js.Value, c *calc.Calculator) {
	doc.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		ev := args[0]
		key := ev.Get("key").String()
		in, ok := calc.KeyIntent(key)
		if !ok {
			return nil
		}
		if in.Kind == calc.IntentEquals {
			ev.Call("preventDefault")
		}
		c.Dispatch(in)
		return nil
	}))
}

func main() {
	doc := js.Global().Get("document")
	sink := pageSink{
		doc:     doc,
		display: doc.Call("querySelector", ".display"),
		history: doc.Call("getElementById", "history-list"),
	}
	c := calc.New(sink)
	sink.SetDisplay(c.Display())

	bindButtons(doc, c)
	bindKeys(doc, c)

	// Block forever for the browser event loop.
	select {}
}
