//go:build tinygo

package kernel

// TinyGo has no goroutine stack dumps.
func captureStack() []byte { return nil }
