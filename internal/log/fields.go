package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldUserID      = "user_id"
	FieldDisplayName = "display_name"
	FieldEntryID     = "entry_id"
	FieldAmountCents = "amount_cents"
	FieldBalance     = "balance_cents"
	FieldCategory    = "category"
	FieldEntryDate   = "entry_date"
	FieldOperation   = "operation"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldBackend     = "backend"
	FieldDBPath      = "db_path"
	FieldDeleted     = "deleted"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentAuth    = "auth"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
	ComponentShell   = "shell"
)

// Operations defines standard operation names
const (
	OpRegister     = "register"
	OpAuthenticate = "authenticate"
	OpRecord       = "record_expense"
	OpAddFunds     = "add_funds"
	OpListHistory  = "list_history"
	OpClearHistory = "clear_history"
	OpStartup      = "startup"
	OpShutdown     = "shutdown"
)
