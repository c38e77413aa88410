package launcher

// Launcher starts programs without waiting for them.
type Launcher interface {
	// StartDetached starts executable with args and returns once the
	// process exists. The child is never waited on or tracked.
	StartDetached(executable string, args []string) error
}
