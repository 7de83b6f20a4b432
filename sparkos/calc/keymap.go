package calc

// KeyIntent maps a keyboard key name to an intent.
//
// Key names follow the web KeyboardEvent.key convention: single characters for printable
// keys, "Enter", "Backspace" and "Escape" for the rest. Unmapped keys return false.
func KeyIntent(key string) (Intent, bool) {
	switch key {
	case "Enter", "=":
		return Equals(), true
	case "Backspace":
		return Backspace(), true
	case "Escape":
		return Clear(), true
	}
	if len(key) != 1 {
		return Intent{}, false
	}
	if isDigitToken(key[0]) {
		return Digit(key[0]), true
	}
	if op, ok := ParseOp(key); ok {
		return Operator(op), true
	}
	return Intent{}, false
}

// ButtonClass tags an on-screen button with the kind of intent it produces.
type ButtonClass uint8

const (
	// ButtonDigit buttons use their label as a digit or point token.
	ButtonDigit ButtonClass = iota
	ButtonClear
	ButtonBackspace
	ButtonOperator
	ButtonEqual
)

func (c ButtonClass) String() string {
	switch c {
	case ButtonDigit:
		return "digit"
	case ButtonClear:
		return "clear"
	case ButtonBackspace:
		return "backspace"
	case ButtonOperator:
		return "operator"
	case ButtonEqual:
		return "equal"
	default:
		return "unknown"
	}
}

// ButtonClassFromTags picks the button class from a list of style tags
// ("btn-clear", "btn-backspace", "btn-operator", "btn-equal"). Untagged buttons are digits.
func ButtonClassFromTags(tags []string) ButtonClass {
	for _, t := range tags {
		switch t {
		case "btn-clear":
			return ButtonClear
		case "btn-backspace":
			return ButtonBackspace
		case "btn-operator":
			return ButtonOperator
		case "btn-equal":
			return ButtonEqual
		}
	}
	return ButtonDigit
}

// ButtonIntent maps a tagged button and its label to an intent.
func ButtonIntent(class ButtonClass, label string) (Intent, bool) {
	switch class {
	case ButtonClear:
		return Clear(), true
	case ButtonBackspace:
		return Backspace(), true
	case ButtonEqual:
		return Equals(), true
	case ButtonOperator:
		op, ok := ParseOp(label)
		if !ok {
			return Intent{}, false
		}
		return Operator(op), true
	case ButtonDigit:
		if len(label) != 1 || !isDigitToken(label[0]) {
			return Intent{}, false
		}
		return Digit(label[0]), true
	default:
		return Intent{}, false
	}
}
