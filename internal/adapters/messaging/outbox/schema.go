package outbox

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Messages []messageSchema `toml:"messages"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported outbox schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type messageSchema struct {
	ID       string `toml:"id"`
	To       string `toml:"to"`
	Body     string `toml:"body"`
	QueuedAt string `toml:"queued_at"`
}
