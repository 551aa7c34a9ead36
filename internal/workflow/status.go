package workflow

// DealStatus is the lifecycle stage of a deal, from RFQ to close.
type DealStatus string

const (
	DealRFQReceived  DealStatus = "rfq_received"
	DealSourcing     DealStatus = "sourcing"
	DealQuoted       DealStatus = "quoted"
	DealPOReceived   DealStatus = "po_received"
	DealOrdered      DealStatus = "ordered"
	DealInProduction DealStatus = "in_production"
	DealShipped      DealStatus = "shipped"
	DealDelivered    DealStatus = "delivered"
	DealInvoiced     DealStatus = "invoiced"
	DealPaid         DealStatus = "paid"
	DealClosed       DealStatus = "closed"
	DealCancelled    DealStatus = "cancelled"
)

// QuoteStatus is the lifecycle stage of a customer-facing quote.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
	QuoteRevised  QuoteStatus = "revised"
)

// CustomerPOStatus is the lifecycle stage of a received purchase order.
type CustomerPOStatus string

const (
	POReceived     CustomerPOStatus = "received"
	POAcknowledged CustomerPOStatus = "acknowledged"
	POInProgress   CustomerPOStatus = "in_progress"
	POFulfilled    CustomerPOStatus = "fulfilled"
	POCancelled    CustomerPOStatus = "cancelled"
)
