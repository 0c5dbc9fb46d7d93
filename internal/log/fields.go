package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldBackend       = "backend"
	FieldRowCount      = "row_count"
	FieldDonorID       = "donor_id"
	FieldAmountCents   = "amount_cents"
	FieldDonatedOn     = "donated_on"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldSheetsRef     = "sheets_ref"
	FieldQueue         = "queue"
	FieldExchange      = "exchange"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentAnalytics = "analytics"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentImport    = "import"
	ComponentReport    = "report"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names
const (
	OpRead      = "read"
	OpAppend    = "append"
	OpNormalize = "normalize"
	OpAnalyze   = "analyze"
	OpImport    = "import"
	OpPublish   = "publish"
	OpConsume   = "consume"
	OpValidate  = "validate"
	OpShutdown  = "shutdown"
	OpStartup   = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRequestID adds request ID field
func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithDonation adds donation-related fields
func (f LogFields) WithDonation(donorID string, amountCents int64, donatedOn string) LogFields {
	f[FieldDonorID] = donorID
	f[FieldAmountCents] = amountCents
	f[FieldDonatedOn] = donatedOn
	return f
}

// WithRowCount adds the ledger row count field
func (f LogFields) WithRowCount(n int) LogFields {
	f[FieldRowCount] = n
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
