package dialect

// Dialect names understood by the code generator and the driver wrapper.
const (
	SQLite = "sqlite"
	// SQLite3 is the name registered by cgo based drivers.
	SQLite3 = "sqlite3"
)
