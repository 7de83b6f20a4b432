package calc

// Op is an arithmetic operator.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the operator text used in history expressions.
func (o Op) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return ""
	}
}

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "unknown"
	}
}

// ParseOp maps an operator symbol to an Op.
func ParseOp(sym string) (Op, bool) {
	switch sym {
	case "+":
		return OpAdd, true
	case "-":
		return OpSubtract, true
	case "*":
		return OpMultiply, true
	case "/":
		return OpDivide, true
	default:
		return OpNone, false
	}
}

// IntentKind identifies one of the five things a user can ask the calculator to do.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentDigit
	IntentOperator
	IntentEquals
	IntentBackspace
	IntentClear
)

func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentDigit:
		return "digit"
	case IntentOperator:
		return "operator"
	case IntentEquals:
		return "equals"
	case IntentBackspace:
		return "backspace"
	case IntentClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Intent is a single user action.
//
// Token is set for IntentDigit ('0'..'9' or '.'), Op for IntentOperator.
type Intent struct {
	Kind  IntentKind
	Token byte
	Op    Op
}

func Digit(token byte) Intent { return Intent{Kind: IntentDigit, Token: token} }
func Operator(op Op) Intent   { return Intent{Kind: IntentOperator, Op: op} }
func Equals() Intent          { return Intent{Kind: IntentEquals} }
func Backspace() Intent       { return Intent{Kind: IntentBackspace} }
func Clear() Intent           { return Intent{Kind: IntentClear} }

func (in Intent) String() string {
	switch in.Kind {
	case IntentDigit:
		return "digit(" + string(in.Token) + ")"
	case IntentOperator:
		return "operator(" + in.Op.Symbol() + ")"
	default:
		return in.Kind.String()
	}
}

func isDigitToken(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.'
}
