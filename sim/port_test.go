package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

type sampleMsg struct {
	MsgMeta
}

func (m *sampleMsg) Meta() *MsgMeta {
	return &m.MsgMeta
}

var _ = Describe("Port", func() {
	var (
		mockCtrl *gomock.Controller
		comp     *MockComponent
		conn     *MockConnection
		port     Port
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		comp = NewMockComponent(mockCtrl)
		conn = NewMockConnection(mockCtrl)
		conn.EXPECT().Name().Return("Conn").AnyTimes()

		port = NewPort(comp, 4, 4, "Comp.Port")
		port.SetConnection(conn)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should send and notify the connection", func() {
		msg := &sampleMsg{}
		msg.Src = port.AsRemote()
		msg.Dst = "Comp2.Port"

		conn.EXPECT().NotifySend()

		err := port.Send(msg)

		Expect(err).To(BeNil())
		Expect(port.PeekOutgoing()).To(BeIdenticalTo(msg))
	})

	It("should fail to send when the outgoing buffer is full", func() {
		conn.EXPECT().NotifySend()

		for i := 0; i < 4; i++ {
			msg := &sampleMsg{}
			msg.Src = port.AsRemote()
			msg.Dst = "Comp2.Port"
			port.Send(msg)
		}

		msg := &sampleMsg{}
		msg.Src = port.AsRemote()
		msg.Dst = "Comp2.Port"

		err := port.Send(msg)

		Expect(err).NotTo(BeNil())
	})

	It("should deliver and notify the component", func() {
		msg := &sampleMsg{}
		msg.Src = "Comp2.Port"
		msg.Dst = port.AsRemote()

		comp.EXPECT().NotifyRecv(port)

		err := port.Deliver(msg)

		Expect(err).To(BeNil())
		Expect(port.PeekIncoming()).To(BeIdenticalTo(msg))
	})

	It("should notify the connection when the incoming buffer frees up",
		func() {
			comp.EXPECT().NotifyRecv(port)
			for i := 0; i < 4; i++ {
				msg := &sampleMsg{}
				msg.Src = "Comp2.Port"
				msg.Dst = port.AsRemote()
				port.Deliver(msg)
			}

			conn.EXPECT().NotifyAvailable(port)

			msg := port.RetrieveIncoming()

			Expect(msg).NotTo(BeNil())
		})

	It("should panic if the sender is not the message source", func() {
		msg := &sampleMsg{}
		msg.Src = "SomeOtherPort"
		msg.Dst = "Comp2.Port"

		Expect(func() { port.Send(msg) }).To(Panic())
	})
})
