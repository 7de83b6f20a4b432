package calc

import "strings"

// MaxDigits is the maximum number of characters (decimal point excluded) in the entry buffer.
const MaxDigits = 12

// ErrorText is written to the display after a division by zero.
const ErrorText = "Error"

// Mode is the entry state derived from a State.
type Mode uint8

const (
	// ModeIdle: no operator pending; the buffer is empty or holds a result.
	ModeIdle Mode = iota
	// ModeAwaitingOperand: an operator was accepted and the right operand is still empty.
	ModeAwaitingOperand
	// ModeEntering: the buffer is being typed.
	ModeEntering
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeAwaitingOperand:
		return "awaiting_operand"
	case ModeEntering:
		return "entering"
	default:
		return "unknown"
	}
}

// State is the complete calculator entry state. The zero value is not ready for use; start
// from NewState.
type State struct {
	Buffer         string
	Pending        string
	Operator       Op
	JustCalculated bool
	Display        string
}

// NewState returns the cleared state.
func NewState() State {
	return State{Display: "0"}
}

// Mode reports which entry state s is in.
func (s State) Mode() Mode {
	switch {
	case s.Operator != OpNone && s.Buffer == "":
		return ModeAwaitingOperand
	case s.Buffer != "" && !s.JustCalculated:
		return ModeEntering
	default:
		return ModeIdle
	}
}

// Effect describes what a Step did besides changing state.
type Effect struct {
	// Wrote is set when the display was written (possibly with unchanged text).
	Wrote bool
	// Record is the history record produced by a successful calculation.
	Record *Record
	// DivByZero is set when a division by zero reset the state.
	DivByZero bool
}

type outcome uint8

const (
	outcomeIgnored outcome = iota
	outcomeOK
	outcomeDivByZero
)

// Step applies in to s and returns the next state.
func Step(s State, in Intent) (State, Effect) {
	switch in.Kind {
	case IntentClear:
		return NewState(), Effect{Wrote: true}
	case IntentBackspace:
		return backspace(s)
	case IntentDigit:
		return inputDigit(s, in.Token)
	case IntentOperator:
		return inputOperator(s, in.Op)
	case IntentEquals:
		next, eff, _ := calculate(s)
		return next, eff
	default:
		return s, Effect{}
	}
}

func backspace(s State) (State, Effect) {
	if s.Buffer == "" {
		return s, Effect{}
	}
	s.Buffer = s.Buffer[:len(s.Buffer)-1]
	s.Display = displayText(s.Buffer)
	return s, Effect{Wrote: true}
}

func inputDigit(s State, tok byte) (State, Effect) {
	if !isDigitToken(tok) {
		return s, Effect{}
	}
	if s.JustCalculated {
		s.Buffer = ""
		s.JustCalculated = false
	}

	if tok == '.' && strings.IndexByte(s.Buffer, '.') >= 0 {
		return s, Effect{}
	}
	if digitCount(s.Buffer) >= MaxDigits {
		return s, Effect{}
	}

	switch {
	case tok == '.' && (s.Buffer == "" || s.Buffer == "0"):
		s.Buffer = "0."
	case s.Buffer == "0" && tok != '.':
		s.Buffer = string(tok)
	default:
		s.Buffer += string(tok)
	}

	s.Display = s.Buffer
	return s, Effect{Wrote: true}
}

func inputOperator(s State, op Op) (State, Effect) {
	if op == OpNone || op.Symbol() == "" {
		return s, Effect{}
	}

	if s.JustCalculated {
		s.Pending = s.Buffer
		s.Buffer = ""
		s.JustCalculated = false
	}

	if s.Buffer == "" && s.Pending == "" {
		return s, Effect{}
	}
	if s.Buffer == "" {
		s.Operator = op
		return s, Effect{}
	}

	var eff Effect
	if s.Pending != "" {
		var out outcome
		s, eff, out = calculate(s)
		if out == outcomeDivByZero {
			return s, eff
		}
	}

	s.Operator = op
	s.Pending = s.Buffer
	s.Buffer = ""
	return s, eff
}

func calculate(s State) (State, Effect, outcome) {
	left, ok := ParseOperand(s.Pending)
	if !ok {
		return s, Effect{}, outcomeIgnored
	}
	right, ok := ParseOperand(s.Buffer)
	if !ok {
		return s, Effect{}, outcomeIgnored
	}

	var result float64
	switch s.Operator {
	case OpAdd:
		result = left + right
	case OpSubtract:
		result = left - right
	case OpMultiply:
		result = left * right
	case OpDivide:
		if right == 0 {
			return State{Display: ErrorText}, Effect{Wrote: true, DivByZero: true}, outcomeDivByZero
		}
		result = left / right
	default:
		return s, Effect{}, outcomeIgnored
	}

	result = Round10(result)
	rec := Record{
		Expr:   s.Pending + " " + s.Operator.Symbol() + " " + s.Buffer,
		Result: result,
	}

	s.Buffer = FormatNumber(result)
	s.Operator = OpNone
	s.Pending = ""
	s.Display = s.Buffer
	s.JustCalculated = true
	return s, Effect{Wrote: true, Record: &rec}, outcomeOK
}

func digitCount(buf string) int {
	return len(strings.Replace(buf, ".", "", 1))
}

func displayText(buf string) string {
	if buf == "" {
		return "0"
	}
	return buf
}
