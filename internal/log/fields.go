package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldOwner         = "owner"
	FieldTransactionID = "transaction_id"
	FieldKind          = "kind"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldOccurredOn    = "occurred_on"
	FieldRangeStart    = "range_start"
	FieldRangeEnd      = "range_end"
	FieldCount         = "count"
	FieldCurrencyCode  = "currency_code"
	FieldRate          = "conversion_rate"
	FieldBackend       = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStore   = "store"
	ComponentPrefs   = "prefs"
	ComponentAudit   = "audit"
	ComponentNotify  = "notify"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpFetch    = "fetch"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpRemove   = "remove"
	OpAudit    = "audit"
	OpCurrency = "currency_change"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
