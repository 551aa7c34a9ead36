package workflow

// Transition tables. A status missing from its table, or mapped to an empty
// list, is terminal.

var dealTransitions = map[DealStatus][]DealStatus{
	DealRFQReceived:  {DealSourcing, DealQuoted, DealCancelled},
	DealSourcing:     {DealQuoted, DealCancelled},
	DealQuoted:       {DealPOReceived, DealSourcing, DealCancelled},
	DealPOReceived:   {DealOrdered, DealCancelled},
	DealOrdered:      {DealInProduction, DealCancelled},
	DealInProduction: {DealShipped, DealCancelled},
	DealShipped:      {DealDelivered, DealCancelled},
	DealDelivered:    {DealInvoiced, DealCancelled},
	DealInvoiced:     {DealPaid, DealCancelled},
	DealPaid:         {DealClosed},
	DealClosed:       {},
	DealCancelled:    {},
}

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteDraft:    {QuoteSent, QuoteExpired},
	QuoteSent:     {QuoteAccepted, QuoteRejected, QuoteRevised, QuoteExpired},
	QuoteAccepted: {},
	QuoteRejected: {QuoteRevised},
	QuoteExpired:  {QuoteRevised},
	QuoteRevised:  {QuoteSent},
}

var customerPOTransitions = map[CustomerPOStatus][]CustomerPOStatus{
	POReceived:     {POAcknowledged, POCancelled},
	POAcknowledged: {POInProgress, POCancelled},
	POInProgress:   {POFulfilled, POCancelled},
	POFulfilled:    {},
	POCancelled:    {},
}

var transitions = map[EntityKind]map[string][]string{
	EntityDeal:       statusTable(dealTransitions),
	EntityQuote:      statusTable(quoteTransitions),
	EntityCustomerPO: statusTable(customerPOTransitions),
}

func statusTable[S ~string](table map[S][]S) map[string][]string {
	out := make(map[string][]string, len(table))
	for from, tos := range table {
		edges := make([]string, 0, len(tos))
		for _, to := range tos {
			edges = append(edges, string(to))
		}
		out[string(from)] = edges
	}
	return out
}

// Validate checks whether requested is a legal next status for the entity
// kind. It returns nil on success and an *InvalidTransitionError otherwise.
// A rejected transition must cause no mutation and no audit write.
func Validate(kind EntityKind, current, requested string) error {
	if CanTransition(kind, current, requested) {
		return nil
	}
	return &InvalidTransitionError{Entity: kind, Current: current, Requested: requested}
}

// CanTransition reports whether current -> requested is a legal edge.
func CanTransition(kind EntityKind, current, requested string) bool {
	for _, next := range transitions[kind][current] {
		if next == requested {
			return true
		}
	}
	return false
}

// OutgoingStatuses returns the legal next statuses for the given status.
func OutgoingStatuses(kind EntityKind, current string) []string {
	edges := transitions[kind][current]
	out := make([]string, len(edges))
	copy(out, edges)
	return out
}

// IsTerminal reports whether a status has no outgoing edges.
func IsTerminal(kind EntityKind, status string) bool {
	return len(transitions[kind][status]) == 0
}

// KnownStatus reports whether the status belongs to the entity's enum.
func KnownStatus(kind EntityKind, status string) bool {
	_, ok := transitions[kind][status]
	return ok
}
