package logging

// Standardized field names for structured logging.
const (
	FieldFile           = "file_path"
	FieldRunID          = "run_id"
	FieldReason         = "reason"
	FieldOperation      = "operation"
	FieldStatus         = "status"
	FieldError          = "error"
	FieldDuration       = "duration_ms"
	FieldCount          = "count"
	FieldDelimiter      = "delimiter"
	FieldInputFile      = "input_file"
	FieldOutputFile     = "output_file"
	FieldFormat         = "format"
	FieldYear           = "year"
	FieldReferenceMonth = "reference_month"
	FieldField          = "field"
	FieldLine           = "line"
	FieldWarnings       = "warnings"
	FieldBackend        = "backend"
	FieldPages          = "pages"
	FieldWorkers        = "workers"
)
