package logging

// Standardized field names for structured logging.
const (
	FieldComponent     = "component"
	FieldTransactionID = "transaction_id"
	FieldDescription   = "description"
	FieldCategory      = "category"
	FieldConfidence    = "confidence"
	FieldSource        = "source"
	FieldReason        = "reason"
	FieldIntent        = "intent"
	FieldRequestID     = "request_id"
	FieldModel         = "model"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldWorkers       = "workers"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)
