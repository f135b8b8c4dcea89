package messages

// Response kinds
const (
	KindMessage         = "message"
	KindMenu            = "menu"
	KindHours           = "hours"
	KindPolicy          = "policy"
	KindModeRequired    = "mode_required"
	KindModeSelected    = "mode_selected"
	KindSlotRequired    = "slot_required"
	KindSlotConfirmed   = "slot_confirmed"
	KindAddressRequired = "address_required"
	KindPendingOrder    = "pending_order"
	KindOrderCancelled  = "order_cancelled"
	KindBill            = "bill"
)

// State is a snapshot of the session's service context echoed on every response
type State struct {
	Mode  string
	Stage string
	Slot  string
}

// Response is the structured result of one utterance
type Response struct {
	Answer       string `json:"answer"`
	Kind         string `json:"kind"`
	OrderPending bool   `json:"order_pending"`
	Total        int    `json:"total"`
	BillID       string `json:"bill_id"`
	ServiceMode  string `json:"service_mode"`
	ServiceStage string `json:"service_stage"`
	ServiceSlot  string `json:"service_slot"`
}

// NewMessage creates a plain conversational response
func NewMessage(answer string, st State) Response {
	return New(answer, KindMessage, st)
}

// New creates a response of the given kind
func New(answer, kind string, st State) Response {
	return Response{
		Answer:       answer,
		Kind:         kind,
		ServiceMode:  st.Mode,
		ServiceStage: st.Stage,
		ServiceSlot:  st.Slot,
	}
}

// NewPending creates a response of the given kind with order_pending set
func NewPending(answer, kind string, total int, st State) Response {
	resp := New(answer, kind, st)
	resp.OrderPending = true
	resp.Total = total
	return resp
}

// NewBill creates a finalized-bill response
func NewBill(answer string, total int, billID string, st State) Response {
	resp := New(answer, KindBill, st)
	resp.Total = total
	resp.BillID = billID
	return resp
}
