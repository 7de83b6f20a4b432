package pointer

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// sendRetryTicks bounds how long a click waits for room in the consumer queue.
const sendRetryTicks = 50

// Service forwards pointer events as MsgPointer messages.
type Service struct {
	in     hal.Input
	outCap kernel.Capability
}

func New(in hal.Input, outCap kernel.Capability) *Service {
	return &Service{in: in, outCap: outCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil || s.in == nil || !s.outCap.Valid() {
		return
	}
	ptr := s.in.Pointer()
	if ptr == nil {
		return
	}
	events := ptr.Events()
	if events == nil {
		return
	}

	for ev := range events {
		ctx.SendToRetry(s.outCap, uint16(proto.MsgPointer), proto.PointerPayload(ev.X, ev.Y, ev.Press), sendRetryTicks)
	}
}
