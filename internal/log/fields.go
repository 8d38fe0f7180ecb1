package log

// Canonical field names for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldEvent     = "event"

	FieldWizard    = "wizard"
	FieldSession   = "session"
	FieldPage      = "page"
	FieldPageTitle = "page_title"
	FieldLastPage  = "last_page"
	FieldNewPage   = "new_page"
	FieldField     = "field"

	FieldBindings    = "bindings"
	FieldValidators  = "validators"
	FieldDisposables = "disposables"
	FieldFailures    = "failures"
	FieldUpdated     = "updated"

	FieldOldState = "old_state"
	FieldNewState = "new_state"
	FieldPath     = "path"
	FieldFormat   = "format"
	FieldLocale   = "locale"
	FieldAction   = "action"
)
