package app

import (
	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// resultTask hands calculator results to a host callback.
type resultTask struct {
	ep     kernel.Capability
	logCap kernel.Capability
	fn     func(expr, result string)
}

func (t *resultTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgCalcResult {
			continue
		}
		expr, result, ok := proto.DecodeCalcResultPayload(msg.Payload())
		if !ok {
			logclient.Logf(ctx, t.logCap, "results: bad payload (%d bytes)", msg.Len)
			continue
		}
		t.fn(expr, result)
	}
}
