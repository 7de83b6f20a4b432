package calc

import "testing"

type recordingSink struct {
	displays  []string
	records   []Record
	evictions int
}

func (s *recordingSink) SetDisplay(text string) { s.displays = append(s.displays, text) }
func (s *recordingSink) PrependRecord(r Record) { s.records = append(s.records, r) }
func (s *recordingSink) EvictOldest()           { s.evictions++ }

// press feeds keys through the keyboard mapping, one character per key.
func press(t *testing.T, c *Calculator, keys string) {
	t.Helper()
	for i := 0; i < len(keys); i++ {
		in, ok := KeyIntent(keys[i : i+1])
		if !ok {
			t.Fatalf("no intent for key %q", keys[i])
		}
		c.Dispatch(in)
	}
}

func TestDigitEntryNormalization(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{keys: "123", want: "123"},
		{keys: "0", want: "0"},
		{keys: "005", want: "5"},
		{keys: ".", want: "0."},
		{keys: "0.", want: "0."},
		{keys: ".5", want: "0.5"},
		{keys: "0.0", want: "0.0"},
		{keys: "1.2.3", want: "1.23"},
		{keys: "..", want: "0."},
		{keys: "123456789012", want: "123456789012"},
		{keys: "1234567890123", want: "123456789012"},
		{keys: "1.23456789012345", want: "1.23456789012"},
		{keys: "123456789012.", want: "123456789012"},
	}
	for _, tt := range tests {
		c := New(nil)
		press(t, c, tt.keys)
		if got := c.State().Buffer; got != tt.want {
			t.Fatalf("keys %q: buffer=%q want %q", tt.keys, got, tt.want)
		}
		if got := c.Display(); got != tt.want {
			t.Fatalf("keys %q: display=%q want %q", tt.keys, got, tt.want)
		}
	}
}

func TestRejectedDigitDoesNotWriteDisplay(t *testing.T) {
	sink := &recordingSink{}
	c := New(sink)
	press(t, c, "1.")
	n := len(sink.displays)

	eff := c.Dispatch(Digit('.'))
	if eff.Wrote {
		t.Fatalf("second point should not write the display")
	}
	if len(sink.displays) != n {
		t.Fatalf("sink got %d writes, want %d", len(sink.displays), n)
	}
}

func TestBackspace(t *testing.T) {
	sink := &recordingSink{}
	c := New(sink)

	eff := c.Dispatch(Backspace())
	if eff.Wrote || len(sink.displays) != 0 {
		t.Fatalf("backspace on empty buffer should be a no-op")
	}
	if c.Display() != "0" {
		t.Fatalf("display=%q want %q", c.Display(), "0")
	}

	press(t, c, "12")
	c.Backspace()
	if c.Display() != "1" {
		t.Fatalf("display=%q want %q", c.Display(), "1")
	}
	c.Backspace()
	if c.Display() != "0" || c.State().Buffer != "" {
		t.Fatalf("display=%q buffer=%q, want \"0\" and empty", c.Display(), c.State().Buffer)
	}
}

func TestDivideRoundsToTenDigits(t *testing.T) {
	c := New(nil)
	press(t, c, "1/3=")
	if c.Display() != "0.3333333333" {
		t.Fatalf("display=%q want %q", c.Display(), "0.3333333333")
	}
}

func TestFloatNoiseIsRounded(t *testing.T) {
	c := New(nil)
	press(t, c, "0.1+0.2=")
	if c.Display() != "0.3" {
		t.Fatalf("display=%q want %q", c.Display(), "0.3")
	}
}

func TestChainingCalculatesBeforeNextOperator(t *testing.T) {
	c := New(nil)
	press(t, c, "2+3*")
	if c.Display() != "5" {
		t.Fatalf("display after chaining=%q want %q", c.Display(), "5")
	}
	if st := c.State(); st.Pending != "5" || st.Operator != OpMultiply || st.Buffer != "" || !st.JustCalculated {
		t.Fatalf("unexpected state after chaining: %+v", st)
	}

	press(t, c, "4=")
	if c.Display() != "20" {
		t.Fatalf("display=%q want %q", c.Display(), "20")
	}

	hist := c.History()
	if len(hist) != 2 {
		t.Fatalf("history len=%d want 2", len(hist))
	}
	if hist[0].String() != "5 * 4 = 20" || hist[1].String() != "2 + 3 = 5" {
		t.Fatalf("history=%v", hist)
	}
}

// An operator right after a chained calculation takes the empty buffer as its operand,
// so the chain is dropped rather than calculated again.
func TestOperatorAfterChainDropsPending(t *testing.T) {
	c := New(nil)
	press(t, c, "2+3*-")
	if st := c.State(); st.Pending != "" || st.Buffer != "" || st.Operator != OpMultiply || st.JustCalculated {
		t.Fatalf("unexpected state: %+v", st)
	}

	press(t, c, "1=")
	if c.Display() != "1" {
		t.Fatalf("display=%q want %q", c.Display(), "1")
	}
	hist := c.History()
	if len(hist) != 1 || hist[0].String() != "2 + 3 = 5" {
		t.Fatalf("history=%v", hist)
	}
}

func TestOperatorReplacedBeforeRightOperand(t *testing.T) {
	c := New(nil)
	press(t, c, "3+-4=")
	if c.Display() != "-1" {
		t.Fatalf("display=%q want %q", c.Display(), "-1")
	}
	if got := c.History()[0].Expr; got != "3 - 4" {
		t.Fatalf("expr=%q want %q", got, "3 - 4")
	}
}

func TestOperatorWithoutOperandIsIgnored(t *testing.T) {
	c := New(nil)
	before := c.State()
	c.InputOperator(OpAdd)
	if c.State() != before {
		t.Fatalf("state changed: %+v", c.State())
	}

	press(t, c, "5=")
	if c.Display() != "5" || c.HistoryLen() != 0 {
		t.Fatalf("equals without operator should be ignored: display=%q history=%d", c.Display(), c.HistoryLen())
	}
}

func TestDigitAfterResultStartsNewNumber(t *testing.T) {
	c := New(nil)
	press(t, c, "2+3=7")
	if c.Display() != "7" {
		t.Fatalf("display=%q want %q", c.Display(), "7")
	}
	press(t, c, "+1=")
	if c.Display() != "8" {
		t.Fatalf("display=%q want %q", c.Display(), "8")
	}
}

func TestResultBecomesLeftOperand(t *testing.T) {
	c := New(nil)
	press(t, c, "2+3=*2=")
	if c.Display() != "10" {
		t.Fatalf("display=%q want %q", c.Display(), "10")
	}
	if got := c.History()[0].Expr; got != "5 * 2" {
		t.Fatalf("expr=%q want %q", got, "5 * 2")
	}
}

func TestDivisionByZero(t *testing.T) {
	sink := &recordingSink{}
	c := New(sink)
	press(t, c, "5/0=")

	if c.Display() != ErrorText {
		t.Fatalf("display=%q want %q", c.Display(), ErrorText)
	}
	if st := c.State(); st != (State{Display: ErrorText}) {
		t.Fatalf("state not reset: %+v", st)
	}
	if c.HistoryLen() != 0 || len(sink.records) != 0 {
		t.Fatalf("division by zero must not record history")
	}

	eff := c.Dispatch(Equals())
	if eff.Wrote || c.Display() != ErrorText {
		t.Fatalf("second calculate should be a no-op, display=%q", c.Display())
	}

	c.Clear()
	if c.Display() != "0" {
		t.Fatalf("display after clear=%q want %q", c.Display(), "0")
	}
	if sink.displays[len(sink.displays)-1] != "0" {
		t.Fatalf("sink did not receive cleared display")
	}
}

func TestDivisionByZeroWhileChaining(t *testing.T) {
	c := New(nil)
	press(t, c, "5/0+")
	if c.Display() != ErrorText {
		t.Fatalf("display=%q want %q", c.Display(), ErrorText)
	}
	if st := c.State(); st.Operator != OpNone || st.Pending != "" {
		t.Fatalf("operator must not be stored after error: %+v", st)
	}

	press(t, c, "3=")
	if c.Display() != "3" || c.HistoryLen() != 0 {
		t.Fatalf("display=%q history=%d", c.Display(), c.HistoryLen())
	}
}

func TestMalformedOperandIsIgnored(t *testing.T) {
	c := New(nil)
	press(t, c, "2-5=")
	if c.Display() != "-3" {
		t.Fatalf("display=%q want %q", c.Display(), "-3")
	}

	c.Backspace() // leaves "-"
	press(t, c, "+4")
	before := c.State()
	if before.Pending != "-" {
		t.Fatalf("pending=%q want %q", before.Pending, "-")
	}

	eff := c.Dispatch(Equals())
	if eff.Wrote || eff.Record != nil {
		t.Fatalf("malformed operand should be silently ignored")
	}
	if c.State() != before {
		t.Fatalf("state changed: %+v -> %+v", before, c.State())
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	sink := &recordingSink{}
	c := New(sink)
	press(t, c, "1+1=")
	for i := 0; i < 10; i++ {
		press(t, c, "+1=")
	}

	hist := c.History()
	if len(hist) != HistoryLimit {
		t.Fatalf("history len=%d want %d", len(hist), HistoryLimit)
	}
	if hist[0].String() != "11 + 1 = 12" {
		t.Fatalf("newest=%q", hist[0].String())
	}
	if hist[len(hist)-1].String() != "2 + 1 = 3" {
		t.Fatalf("oldest=%q", hist[len(hist)-1].String())
	}
	if len(sink.records) != 11 || sink.evictions != 1 {
		t.Fatalf("sink records=%d evictions=%d, want 11 and 1", len(sink.records), sink.evictions)
	}
}

func TestClearKeepsHistory(t *testing.T) {
	c := New(nil)
	press(t, c, "2*2=")
	c.Clear()
	if c.HistoryLen() != 1 {
		t.Fatalf("history len=%d want 1", c.HistoryLen())
	}
	if st := c.State(); st != NewState() {
		t.Fatalf("state not cleared: %+v", st)
	}
}

func TestModes(t *testing.T) {
	c := New(nil)
	steps := []struct {
		in   Intent
		want Mode
	}{
		{Digit('7'), ModeEntering},
		{Operator(OpAdd), ModeAwaitingOperand},
		{Digit('2'), ModeEntering},
		{Equals(), ModeIdle},
		{Operator(OpSubtract), ModeAwaitingOperand},
		{Clear(), ModeIdle},
	}
	if got := c.State().Mode(); got != ModeIdle {
		t.Fatalf("initial mode=%s", got)
	}
	for i, s := range steps {
		c.Dispatch(s.in)
		if got := c.State().Mode(); got != s.want {
			t.Fatalf("step %d (%s): mode=%s want %s", i, s.in, got, s.want)
		}
	}
}

func TestStepIgnoresUnknownIntent(t *testing.T) {
	s := NewState()
	next, eff := Step(s, Intent{})
	if next != s || eff.Wrote || eff.Record != nil {
		t.Fatalf("unknown intent changed state")
	}
	next, eff = Step(s, Digit('x'))
	if next != s || eff.Wrote {
		t.Fatalf("invalid digit token changed state")
	}
	next, eff = Step(s, Operator(OpNone))
	if next != s || eff.Wrote {
		t.Fatalf("empty operator changed state")
	}
}

func TestDivideRoundsHalfAwayFromZero(t *testing.T) {
	c := New(nil)
	press(t, c, "1/2048=")
	if c.Display() != "0.0004882813" {
		t.Fatalf("display=%q want %q", c.Display(), "0.0004882813")
	}
	press(t, c, "0-1=/2048=")
	if c.Display() != "-0.0004882813" {
		t.Fatalf("display=%q want %q", c.Display(), "-0.0004882813")
	}
}

func TestCalculatorMethods(t *testing.T) {
	sink := &recordingSink{}
	c := New(sink)
	c.InputDigit('8')
	c.InputDigit('4')
	c.Backspace()
	c.InputOperator(OpDivide)
	c.InputDigit('2')
	c.Calculate()
	if c.Display() != "4" || c.HistoryLen() != 1 || c.History()[0].String() != "8 / 2 = 4" {
		t.Fatalf("display=%q history=%v", c.Display(), c.History())
	}
	c.Clear()
	if c.Display() != "0" || c.State().Mode() != ModeIdle || len(sink.records) != 1 {
		t.Fatalf("after clear: display=%q state=%+v", c.Display(), c.State())
	}
}
