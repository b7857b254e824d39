package httpserver

import "time"

// ShutdownTimeout bounds graceful shutdown. Generous enough for an in-flight
// upload to finish storing; past it the process exits with requests cut off.
var ShutdownTimeout = 15 * time.Second
