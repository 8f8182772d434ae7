package logging

// Standardized field names for structured logging. Keeping these in one place
// makes log output consistent and greppable across packages.
const (
	FieldOperation     = "operation"
	FieldBackend       = "backend"
	FieldSource        = "source"
	FieldCategory      = "category"
	FieldConfidence    = "confidence"
	FieldCount         = "count"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
	FieldModelDir      = "model_dir"
	FieldPromptSize    = "prompt_size"
	FieldTransactionID = "transaction_id"
	FieldDuration      = "duration_ms"
)
