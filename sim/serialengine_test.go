package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type endRecorder struct {
	calledAt []VTime
}

func (r *endRecorder) Handle(now VTime) {
	r.calledAt = append(r.calledAt, now)
}

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run events in time order", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := NewEventBase(4, handler)
		evt2 := NewEventBase(2, handler)
		evt3 := NewEventBase(3, handler)

		var order []VTime
		handler.EXPECT().Handle(gomock.Any()).
			DoAndReturn(func(e Event) error {
				order = append(order, engine.CurrentTime())
				if e == Event(evt2) {
					engine.Schedule(evt3)
				}
				return nil
			}).Times(3)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		Expect(engine.Run()).To(Succeed())
		Expect(order).To(Equal([]VTime{2, 3, 4}))
	})

	It("should keep scheduling order for same-time events", func() {
		handler := NewMockHandler(mockCtrl)
		evts := []*EventBase{
			NewEventBase(5, handler),
			NewEventBase(5, handler),
			NewEventBase(5, handler),
		}

		var handled []*EventBase
		handler.EXPECT().Handle(gomock.Any()).
			DoAndReturn(func(e Event) error {
				handled = append(handled, e.(*EventBase))
				return nil
			}).Times(3)

		for _, e := range evts {
			engine.Schedule(e)
		}

		Expect(engine.Run()).To(Succeed())
		Expect(handled).To(Equal(evts))
	})

	It("should stop at the first handler error", func() {
		handler := NewMockHandler(mockCtrl)
		engine.Schedule(NewEventBase(1, handler))
		engine.Schedule(NewEventBase(2, handler))

		handler.EXPECT().Handle(gomock.Any()).Return(errors.New("boom"))

		Expect(engine.Run()).To(MatchError("boom"))
		Expect(engine.CurrentTime()).To(Equal(VTime(1)))
	})

	It("should invoke hooks around each event", func() {
		handler := NewMockHandler(mockCtrl)
		hook := NewMockHook(mockCtrl)
		engine.AcceptHook(hook)
		evt := NewEventBase(1, handler)
		engine.Schedule(evt)

		before := hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosBeforeEvent))
			Expect(ctx.Item).To(BeIdenticalTo(evt))
		})
		handle := handler.EXPECT().Handle(evt).After(before)
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosAfterEvent))
		}).After(handle)

		Expect(engine.Run()).To(Succeed())
	})

	It("should panic when scheduling into the past", func() {
		handler := NewMockHandler(mockCtrl)
		handler.EXPECT().Handle(gomock.Any()).Return(nil)
		engine.Schedule(NewEventBase(10, handler))
		Expect(engine.Run()).To(Succeed())

		Expect(func() { engine.Schedule(NewEventBase(3, handler)) }).To(Panic())
	})

	It("should call end handlers when finished", func() {
		rec := &endRecorder{}
		engine.RegisterSimulationEndHandler(rec)

		engine.Finished()

		Expect(rec.calledAt).To(Equal([]VTime{0}))
	})

	It("should pause and continue", func() {
		handler := NewMockHandler(mockCtrl)
		handler.EXPECT().Handle(gomock.Any()).Return(nil)
		engine.Schedule(NewEventBase(1, handler))

		engine.Pause()
		engine.Pause()

		done := make(chan error)
		go func() { done <- engine.Run() }()

		Consistently(done).ShouldNot(Receive())

		engine.Continue()
		Eventually(done).Should(Receive(BeNil()))
	})
})
