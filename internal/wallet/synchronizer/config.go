package synchronizer

const (
	DefaultMaxReorgDepth        = 10
	DefaultConfirmationsToTrust = 6
	notifierBuffer              = 16
)

// Config tunes a Synchronizer. Zero values take the defaults.
type Config struct {
	// MaxReorgDepth is the number of checkpoint rollbacks tolerated in one run.
	MaxReorgDepth int
	// ConfirmationsToTrust is the confirmation count at which an operation becomes trusted.
	ConfirmationsToTrust uint64
}

func (c Config) withDefaults() Config {
	if c.MaxReorgDepth <= 0 {
		c.MaxReorgDepth = DefaultMaxReorgDepth
	}
	if c.ConfirmationsToTrust == 0 {
		c.ConfirmationsToTrust = DefaultConfirmationsToTrust
	}
	return c
}
