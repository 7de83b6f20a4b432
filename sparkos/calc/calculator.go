package calc

// Sink receives everything the calculator shows to the user.
type Sink interface {
	// SetDisplay replaces the display text. text is never empty.
	SetDisplay(text string)
	// PrependRecord adds a record at the top of the history list.
	PrependRecord(r Record)
	// EvictOldest removes the last (oldest) history entry.
	EvictOldest()
}

type nopSink struct{}

func (nopSink) SetDisplay(string)    {}
func (nopSink) PrependRecord(Record) {}
func (nopSink) EvictOldest()         {}

// Calculator owns a State and a History and reports changes to a Sink.
//
// It is not safe for concurrent use; front ends feed it from a single input loop.
type Calculator struct {
	state   State
	history History
	sink    Sink
}

// New returns a cleared calculator. A nil sink discards output.
func New(sink Sink) *Calculator {
	if sink == nil {
		sink = nopSink{}
	}
	return &Calculator{state: NewState(), sink: sink}
}

// Dispatch applies one intent and returns its effect.
func (c *Calculator) Dispatch(in Intent) Effect {
	next, eff := Step(c.state, in)
	c.state = next

	if eff.Record != nil {
		evicted := c.history.Push(*eff.Record)
		c.sink.PrependRecord(*eff.Record)
		if evicted {
			c.sink.EvictOldest()
		}
	}
	if eff.Wrote {
		c.sink.SetDisplay(c.state.Display)
	}
	return eff
}

// Clear resets the entry state and shows "0". History is kept.
func (c *Calculator) Clear() { c.Dispatch(Clear()) }

// Backspace drops the last typed character.
func (c *Calculator) Backspace() { c.Dispatch(Backspace()) }

// InputDigit types a digit or the decimal point.
func (c *Calculator) InputDigit(tok byte) { c.Dispatch(Digit(tok)) }

// InputOperator selects op, calculating first when an operation is pending.
func (c *Calculator) InputOperator(op Op) { c.Dispatch(Operator(op)) }

// Calculate applies the pending operation.
func (c *Calculator) Calculate() { c.Dispatch(Equals()) }

// Display returns the text last written to the sink.
func (c *Calculator) Display() string { return c.state.Display }

// State returns a copy of the entry state.
func (c *Calculator) State() State { return c.state }

// History returns the records, newest first.
func (c *Calculator) History() []Record { return c.history.Records() }

// HistoryLen returns the number of records.
func (c *Calculator) HistoryLen() int { return c.history.Len() }
