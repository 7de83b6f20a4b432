// Package calc implements the four-function calculator core: digit entry, two-operand
// arithmetic with last-operator-wins chaining, 10-digit rounding and a bounded history.
//
// The core is a pure transition function (Step) over a State value. Calculator wraps it as a
// state holder that forwards display writes and history changes to a Sink. Front ends (the
// framebuffer task, the web page adapter) translate their input into Intents with KeyIntent
// and ButtonIntent and never touch State directly.
package calc
