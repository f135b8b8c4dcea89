// Package dialogue implements the ordering conversation state machine.
// Each utterance runs through a fixed rule priority: service-mode phrases,
// slot collection, address collection, the order flow, then the static
// knowledge routes. An empty answer means no rule fired and the caller
// falls back to retrieval or generation.
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sanju-subash/Cloudnest-rag/billing"
	"github.com/sanju-subash/Cloudnest-rag/gemini"
	"github.com/sanju-subash/Cloudnest-rag/knowledge"
	"github.com/sanju-subash/Cloudnest-rag/messages"
	"github.com/sanju-subash/Cloudnest-rag/retrieval"
	"github.com/sanju-subash/Cloudnest-rag/session"
)

// Context lines used for degraded answers when the model is unreachable
const degradedTopK = 8

// Engine answers user utterances against the knowledge store and per-session
// state, deferring to the GenAI fallback only when no rule produces a reply.
type Engine struct {
	kb         *knowledge.Store
	store      *session.Store
	fallback   *gemini.Fallback
	topK       int
	genTimeout time.Duration
}

// NewEngine wires the dialogue engine
func NewEngine(kb *knowledge.Store, store *session.Store, fallback *gemini.Fallback, topK int, genTimeout time.Duration) *Engine {
	return &Engine{
		kb:         kb,
		store:      store,
		fallback:   fallback,
		topK:       topK,
		genTimeout: genTimeout,
	}
}

// Ask processes one utterance for a session and returns the structured
// response. State mutation happens under the session lock; the knowledge
// re-read runs before it and the generation call after it, so neither holds
// the lock.
func (e *Engine) Ask(ctx context.Context, question, sessionID string) messages.Response {
	question = strings.TrimSpace(question)
	lines, loadErr := e.kb.Lines()

	sess := e.store.Get(ctx, sessionID)
	sess.Lock()
	sess.Touch()
	st := sess.Context.State()

	if question == "" {
		sess.Unlock()
		return messages.NewMessage("Please enter a valid question.", st)
	}
	if loadErr != "" {
		sess.Unlock()
		return messages.NewMessage(loadErr, st)
	}

	resp := e.ruleBased(question, sess, lines)
	st = sess.Context.State()
	sess.Unlock()

	if resp.Kind == messages.KindBill {
		e.store.RecordBill(ctx, sessionID, billing.Bill{BillID: resp.BillID})
	}
	if resp.Answer != "" {
		return resp
	}

	return e.fallbackAnswer(ctx, question, lines, st)
}

// fallbackAnswer serves the question from retrieval context or the model
func (e *Engine) fallbackAnswer(ctx context.Context, question string, lines []string, st messages.State) messages.Response {
	if !e.fallback.Available() {
		contextText := retrieval.Context(lines, question, degradedTopK)
		if initErr := e.fallback.InitError(); initErr != "" {
			return messages.NewMessage(fmt.Sprintf("I could not use the model right now (%s).\n%s", initErr, contextText), st)
		}
		return messages.NewMessage(contextText, st)
	}

	contextText := retrieval.Context(lines, question, e.topK)
	prompt := "You are a restaurant assistant. " +
		"Answer only from the provided context. " +
		"If answer is missing, say: I could not find that in the restaurant data.\n\n" +
		"Context:\n" + contextText + "\n\n" +
		"Question: " + question

	genCtx, cancel := context.WithTimeout(ctx, e.genTimeout)
	defer cancel()

	result := e.fallback.Generate(genCtx, prompt)
	switch result.Status {
	case gemini.StatusAnswered:
		return messages.NewMessage(result.Answer, st)
	case gemini.StatusQuotaExceeded:
		return messages.NewMessage("Model quota exceeded.\n"+retrieval.Context(lines, question, degradedTopK), st)
	case gemini.StatusUnavailable:
		return messages.NewMessage("Model is unavailable.\n"+retrieval.Context(lines, question, degradedTopK), st)
	default:
		return messages.NewMessage("I could not find that in the restaurant data.", st)
	}
}

// ruleBased runs the priority-ordered rules. Caller holds the session lock.
func (e *Engine) ruleBased(query string, sess *session.Session, lines []string) messages.Response {
	tokens := retrieval.TokenSet(query)
	menuItems := knowledge.MenuItems(lines)
	sctx := &sess.Context

	// 1. Service-mode phrases. Switching mode with items pending discards
	// the pending order: in-progress items don't survive a mode change.
	if mode := DetectServiceMode(query); mode != "" {
		if !sess.Order.Empty() && mode != sctx.Mode {
			sess.Order.Clear()
		}

		if mode == session.ModeDineIn {
			sctx.Mode = session.ModeDineIn
			sctx.Stage = session.StageAwaitSlot
			sctx.Address = ""
			return messages.New(
				"Dine-In selected. Please share your preferred time slot (example: 7:30 PM, 8 PM, Dinner).",
				messages.KindModeSelected, sctx.State())
		}

		sctx.Mode = session.ModeDelivery
		sctx.Stage = session.StageOrdering
		sctx.Slot = ""
		return messages.New(
			"Online Delivery selected. Now choose Veg/Non-Veg, add items, and confirm. I will ask delivery address at the end.",
			messages.KindModeSelected, sctx.State())
	}

	// 2. Slot collection
	if sctx.Stage == session.StageAwaitSlot {
		if slot := ExtractSlot(query); slot != "" {
			sctx.Slot = slot
			sctx.Stage = session.StageOrdering
			return messages.New(
				fmt.Sprintf("Dine-In slot confirmed: %s. Now choose Veg/Non-Veg and add items from menu.", slot),
				messages.KindSlotConfirmed, sctx.State())
		}
		return messages.New(
			"Please share a valid time slot (example: 7:30 PM, 8 PM, Dinner).",
			messages.KindSlotRequired, sctx.State())
	}

	// 3. Opportunistic slot update while a dine-in customer keeps ordering
	if sctx.Mode == session.ModeDineIn && sctx.Stage == session.StageOrdering {
		if slot := ExtractSlot(query); slot != "" {
			sctx.Slot = slot
			return messages.New(
				fmt.Sprintf("Dine-In slot updated: %s. You can continue ordering.", slot),
				messages.KindSlotConfirmed, sctx.State())
		}
	}

	// 4. Address collection; a valid address is the last missing datum for
	// delivery checkout, so it finalizes immediately when items are pending.
	if sctx.Stage == session.StageAwaitAddress {
		if hasAny(tokens, cancelKeywords) {
			sess.Order.Clear()
			sctx.Stage = session.StageOrdering
			sctx.Address = ""
			return messages.New("Pending order cancelled.", messages.KindOrderCancelled, sctx.State())
		}

		if LooksLikeAddress(query) {
			sctx.Address = strings.TrimSpace(query)
			sctx.Stage = session.StageOrdering

			if !sess.Order.Empty() {
				return e.finalize(sess, menuItems)
			}
			return messages.NewMessage("Address saved. You can continue ordering.", sctx.State())
		}

		return messages.New(
			"Please provide complete delivery address (house/flat, area, city, pincode).",
			messages.KindAddressRequired, sctx.State())
	}

	// 5. Nothing proceeds until a service mode is chosen
	if sctx.Mode == "" {
		if hasAny(tokens, greetingKeywords) || hasAny(tokens, orderKeywords) ||
			hasAny(tokens, menuKeywords) || hasAny(tokens, confirmKeywords) ||
			hasAny(tokens, cancelKeywords) {
			return messages.New("Is this for Dine-In or Online Delivery?",
				messages.KindModeRequired, sctx.State())
		}
	}

	// 6. Greetings
	if hasAny(tokens, greetingKeywords) {
		if sctx.Mode == "" {
			return messages.NewMessage("Hello. Is this for Dine-In or Online Delivery?", sctx.State())
		}
		return messages.NewMessage("Hello. You can now choose Veg/Non-Veg and place your order.", sctx.State())
	}

	// 7. Order flow wins whenever it has something to say
	if resp := e.orderFlow(query, tokens, sess, menuItems); resp.Answer != "" {
		return resp
	}

	// 8. Static knowledge routes
	if hasAny(tokens, menuKeywords) {
		return messages.New(formatMenuList(menuItems), messages.KindMenu, sctx.State())
	}

	if hasAny(tokens, hoursKeywords) {
		if hours := knowledge.Section(lines, "Opening Hours:", "Menu:", "Policies:"); len(hours) > 0 {
			return messages.New(strings.Join(hours, "\n"), messages.KindHours, sctx.State())
		}
	}

	if hasAny(tokens, policyKeywords) {
		if policies := knowledge.Section(lines, "Policies:"); len(policies) > 0 {
			return messages.New(strings.Join(policies, "\n"), messages.KindPolicy, sctx.State())
		}
	}

	// 9. No rule fired; the caller falls back to retrieval/generation
	return messages.NewMessage("", sctx.State())
}

// orderFlow handles cancel, confirm and item parsing. Caller holds the lock.
func (e *Engine) orderFlow(query string, tokens map[string]struct{}, sess *session.Session, menuItems []knowledge.MenuItem) messages.Response {
	sctx := &sess.Context

	if hasAny(tokens, cancelKeywords) {
		if !sess.Order.Empty() {
			sess.Order.Clear()
			if sctx.Mode == session.ModeDelivery && sctx.Stage == session.StageAwaitAddress {
				sctx.Stage = session.StageOrdering
			}
			return messages.New("Pending order cancelled.", messages.KindOrderCancelled, sctx.State())
		}
		return messages.NewMessage("No pending order to cancel.", sctx.State())
	}

	if hasAny(tokens, confirmKeywords) {
		if sess.Order.Empty() {
			return messages.NewMessage("No pending order found. Add items first, then type confirm.", sctx.State())
		}

		if sctx.Mode == "" {
			sctx.Stage = session.StageChooseMode
			return messages.NewPending(
				"Before placing order, please tell me: Dine-In or Online Delivery?",
				messages.KindModeRequired, 0, sctx.State())
		}

		if sctx.Mode == session.ModeDineIn && sctx.Slot == "" {
			sctx.Stage = session.StageAwaitSlot
			return messages.NewPending(
				"Please share your preferred dine-in slot (example: 7:30 PM, Dinner, 8 PM).",
				messages.KindSlotRequired, 0, sctx.State())
		}

		if sctx.Mode == session.ModeDelivery && sctx.Address == "" {
			sctx.Stage = session.StageAwaitAddress
			summary, subtotal := orderSummary(sess.Order, menuItems, sctx)
			return messages.NewPending(
				summary+"\nPlease share complete delivery address to generate final bill.",
				messages.KindAddressRequired, subtotal, sctx.State())
		}

		return e.finalize(sess, menuItems)
	}

	aliases := knowledge.BuildAliases(menuItems)
	parsed := ParseOrder(query, aliases)

	if len(parsed) == 0 {
		if hasAny(tokens, orderKeywords) && !sess.Order.Empty() {
			summary, subtotal := orderSummary(sess.Order, menuItems, sctx)
			return messages.NewPending(summary, messages.KindPendingOrder, subtotal, sctx.State())
		}
		if hasAny(tokens, orderKeywords) {
			return messages.NewMessage(
				"Add items with quantity, for example: 2 Margherita Pizza and 1 Veg Salad.", sctx.State())
		}
		return messages.NewMessage("", sctx.State())
	}

	if sctx.Mode == "" {
		sctx.Stage = session.StageChooseMode
		return messages.New(
			"Before adding items, tell me your order type: Dine-In or Online Delivery?",
			messages.KindModeRequired, sctx.State())
	}

	if sctx.Mode == session.ModeDineIn && sctx.Slot == "" {
		sctx.Stage = session.StageAwaitSlot
		return messages.New(
			"Please confirm your dine-in slot first (example: 7:30 PM or Dinner).",
			messages.KindSlotRequired, sctx.State())
	}

	// "add" merges into the basket; any other item-bearing message replaces
	// it outright. Intentional set-not-add semantics.
	_, additive := tokens["add"]
	if additive && !sess.Order.Empty() {
		for _, item := range parsed {
			sess.Order.Add(item.Name, item.Quantity)
		}
	} else {
		sess.Order.Clear()
		for _, item := range parsed {
			sess.Order.Set(item.Name, item.Quantity)
		}
	}

	sctx.Stage = session.StageOrdering
	summary, subtotal := orderSummary(sess.Order, menuItems, sctx)
	return messages.NewPending(summary, messages.KindPendingOrder, subtotal, sctx.State())
}

// finalize turns the pending order into the session's latest bill and
// resets the conversation. Caller holds the lock.
func (e *Engine) finalize(sess *session.Session, menuItems []knowledge.MenuItem) messages.Response {
	sctx := &sess.Context
	bill := billing.Compute(sess.Order.Items(), knowledge.ByName(menuItems), sctx.Mode, sctx.Slot, sctx.Address)

	sess.Order.Clear()
	sess.LatestBill = &bill
	sctx.Reset()

	return messages.NewBill(billText(bill), bill.Total, bill.BillID, sctx.State())
}
