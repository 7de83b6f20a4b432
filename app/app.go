package app

import (
	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/services/logger"
	"sparkcalc/sparkos/services/pointer"
	"sparkcalc/sparkos/services/termkbd"
	"sparkcalc/sparkos/tasks/calculator"
)

type system struct {
	k *kernel.Kernel

	logEP  kernel.Capability
	calcEP kernel.Capability
}

type Config struct {
	Theme calculator.Theme

	// OnResult, when set, is called for every calculation, off the calculator task.
	OnResult func(expr, result string)
}

func DefaultConfig() Config {
	return Config{Theme: calculator.DefaultTheme()}
}

// New initializes and starts the calculator with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the calculator and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)

	k := kernel.New()
	s := &system{
		k:      k,
		logEP:  k.NewEndpoint(kernel.RightSend | kernel.RightRecv),
		calcEP: k.NewEndpoint(kernel.RightSend | kernel.RightRecv),
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString("sparkcalc " + buildinfo.Short())
	}

	k.AddTask(logger.New(h.Logger(), s.logEP.Restrict(kernel.RightRecv)))

	calcIn := s.calcEP.Restrict(kernel.RightSend)
	if in := h.Input(); in != nil {
		k.AddTask(termkbd.New(in, calcIn))
		k.AddTask(pointer.New(in, calcIn))
	}
	calcCfg := calculator.Config{Theme: cfg.Theme}
	if cfg.OnResult != nil {
		resultsEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		k.AddTask(&resultTask{
			ep:     resultsEP.Restrict(kernel.RightRecv),
			logCap: s.logEP.Restrict(kernel.RightSend),
			fn:     cfg.OnResult,
		})
		calcCfg.Observer = resultsEP.Restrict(kernel.RightSend)
	}
	k.AddTask(calculator.New(
		h.Display(),
		s.calcEP.Restrict(kernel.RightRecv),
		s.logEP.Restrict(kernel.RightSend),
		calcCfg,
	))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}
