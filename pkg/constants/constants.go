// Package constants provides shared constants used throughout the
// reconcile codebase: file permissions, limits, and time formats that
// should stay consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0o755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0o644
)

// Limit constants define various limits and capacities
const (
	// MaxSnapshotBytes is the maximum accepted size of a snapshot file (50 MB)
	MaxSnapshotBytes = 50 * 1024 * 1024

	// MaxGroupFields is the maximum number of field definitions per data config group
	MaxGroupFields = 256
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format used for record timestamps
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatDate is the calendar date format used for assignment dates
	TimeFormatDate = "2006-01-02"

	// TimeFormatFilename is the format used in generated snapshot filenames
	TimeFormatFilename = "20060102-150405"
)

// Path constants
const (
	// DefaultConfigName is the name of the CLI configuration file
	DefaultConfigName = ".reconcile"
)
