package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldBackend    = "backend"
	FieldMonthIndex = "month_index"
	FieldDateKey    = "date_key"
	FieldDay        = "day"
	FieldHours      = "hours"
	FieldYear       = "year"
	FieldCursor     = "cursor"
	FieldSeedURL    = "seed_url"
	FieldSeedFile   = "seed_file"
	FieldSeedStatus = "seed_status"
	FieldDBPath     = "db_path"
	FieldPort       = "port"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentTracker = "tracker"
	ComponentStorage = "storage"
	ComponentSeed    = "seed"
	ComponentBackend = "backend"
)
