package httpapi

import "sync/atomic"

// rescanTimeout bounds how long a POST /rescan may run. Zero disables the
// extra timeout beyond server/connection timeouts.
var rescanTimeout atomic.Int64 // seconds

// SetRescanTimeoutSeconds sets the rescan timeout in seconds (0 disables).
func SetRescanTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	rescanTimeout.Store(sec)
}

func rescanTimeoutSeconds() int64 { return rescanTimeout.Load() }

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
