package driven

// ConfigStore is a flat key/value view of the settings file. Keys are
// dotted ("scheduler.work_start"); the typed getters return the zero value
// for missing or unconvertible entries.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set writes a value. File-backed stores persist it before returning.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is where the settings live, or ":memory:".
	Path() string
}
