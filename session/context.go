package session

import "github.com/sanju-subash/Cloudnest-rag/messages"

// Service modes
const (
	ModeDineIn   = "dine_in"
	ModeDelivery = "delivery"
)

// Stages governing which input the dialogue expects next
const (
	StageChooseMode   = "choose_mode"
	StageAwaitSlot    = "await_slot"
	StageOrdering     = "ordering"
	StageAwaitAddress = "await_address"
)

// ServiceContext tracks how the session's order will be served.
// An empty mode always implies stage choose_mode; await_slot only occurs
// with dine_in and await_address only with delivery.
type ServiceContext struct {
	Mode    string
	Stage   string
	Slot    string
	Address string
}

// NewServiceContext returns the default context for a fresh session
func NewServiceContext() ServiceContext {
	return ServiceContext{Stage: StageChooseMode}
}

// Reset reverts the context to session defaults
func (c *ServiceContext) Reset() {
	*c = NewServiceContext()
}

// State snapshots the context fields echoed on responses
func (c *ServiceContext) State() messages.State {
	return messages.State{Mode: c.Mode, Stage: c.Stage, Slot: c.Slot}
}
