package workflow

// cascadeRule maps a trigger (entity kind + event) to the deal status the
// linked deal should move to. Event is either EventCreated or the trigger
// entity's new status. When from is set the rule only applies while the deal
// is in that status.
type cascadeRule struct {
	trigger EntityKind
	event   string
	from    DealStatus
	target  DealStatus
}

var cascadeRules = []cascadeRule{
	// A quote issued against a deal marks the deal as quoted.
	{trigger: EntityQuote, event: EventCreated, target: DealQuoted},
	// Quote acceptance re-asserts QUOTED rather than advancing the deal.
	// Documented behavior, kept pending product clarification.
	{trigger: EntityQuote, event: string(QuoteAccepted), target: DealQuoted},

	{trigger: EntityCustomerPO, event: string(POAcknowledged), target: DealPOReceived},
	{trigger: EntityCustomerPO, event: string(POInProgress), from: DealPOReceived, target: DealOrdered},
	{trigger: EntityCustomerPO, event: string(POInProgress), from: DealOrdered, target: DealInProduction},
	{trigger: EntityCustomerPO, event: string(POFulfilled), from: DealInProduction, target: DealShipped},
	{trigger: EntityCustomerPO, event: string(POFulfilled), from: DealShipped, target: DealDelivered},
}

// CascadeTarget computes the deal status a trigger event cascades to, given
// the linked deal's current status. The second return is false when no rule
// matches or the computed target is not a legal transition from the current
// status; such cascades are skipped silently, never errored. Cascades apply
// at most one hop: a deal transition never triggers further cascades.
func CascadeTarget(trigger EntityKind, event string, dealStatus DealStatus) (DealStatus, bool) {
	for _, r := range cascadeRules {
		if r.trigger != trigger || r.event != event {
			continue
		}
		if r.from != "" && r.from != dealStatus {
			continue
		}
		if !CanTransition(EntityDeal, string(dealStatus), string(r.target)) {
			continue
		}
		return r.target, true
	}
	return "", false
}
