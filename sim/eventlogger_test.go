package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type idleTicker struct{}

func (idleTicker) Tick(_ VTime) bool { return false }

var _ = Describe("EventLogger", func() {
	It("should log events handled by components", func() {
		buf := new(bytes.Buffer)
		engine := NewSerialEngine()
		engine.AcceptHook(NewEventLogger(log.New(buf, "", 0)))

		comp := NewTickingComponent("Comp", engine, idleTicker{})
		comp.TickAt(3)

		Expect(engine.Run()).To(Succeed())
		Expect(buf.String()).To(Equal(
			"3 (cycle 1, rise), sim.TickEvent -> Comp\n"))
	})

	It("should ignore hooks that are not before events", func() {
		buf := new(bytes.Buffer)
		logger := NewEventLogger(log.New(buf, "", 0))

		logger.Func(HookCtx{Pos: HookPosAfterEvent, Item: 1})

		Expect(buf.String()).To(BeEmpty())
	})
})
