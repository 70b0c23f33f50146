package logger

// Standard field names for structured logging.
const (
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldCompName  = "comp_name"
	FieldTagName   = "tag_name"
	FieldFramework = "framework"
	FieldTemplate  = "template"
	FieldFolder    = "folder"
	FieldIndex     = "index"
	FieldFile      = "file"
	FieldCount     = "count"
	FieldError     = "error"

	FieldDurationMS = "duration_ms"
)
