// Package workflow implements the deal pipeline engine: per-entity status
// state machines, the cascade rules that keep linked documents in sync, and
// the field-level change diffing recorded in the activity trail.
package workflow

// EntityKind identifies the business document a workflow operation targets.
type EntityKind string

const (
	EntityDeal       EntityKind = "deal"
	EntityQuote      EntityKind = "quote"
	EntityCustomerPO EntityKind = "customer_po"
	EntityCustomer   EntityKind = "customer"
)

// Activity actions recorded in the audit trail.
const (
	ActionCreated           = "created"
	ActionUpdated           = "updated"
	ActionStatusChanged     = "status_changed"
	ActionDeleted           = "deleted"
	ActionAutoStatusChanged = "auto_status_changed"
)

// EventCreated is the cascade trigger event for entity creation, as opposed
// to a status-change trigger which uses the new status value itself.
const EventCreated = "created"

// KnownEntity reports whether kind names one of the audited document types.
func KnownEntity(kind string) bool {
	switch EntityKind(kind) {
	case EntityDeal, EntityQuote, EntityCustomerPO, EntityCustomer:
		return true
	}
	return false
}

// TenantContext carries the company scope and acting identity for every
// engine call. The engine trusts it; it is derived by the auth layer.
type TenantContext struct {
	CompanyID uint
	Actor     Actor
}
