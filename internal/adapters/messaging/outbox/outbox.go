// Package outbox queues outgoing messages in a local TOML file. It stands in
// for a real SMS gateway and backs up the command messenger when it fails.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/drivefocus/internal/domain"
	"github.com/bnema/drivefocus/internal/ports"
)

const (
	outboxFileMode  = 0o600
	outboxDirMode   = 0o700
	tempFilePattern = ".outbox-*.toml.tmp"
)

type Message struct {
	ID       string
	To       string
	Body     string
	QueuedAt time.Time
}

type Outbox struct {
	path  string
	mu    *sync.RWMutex
	clock ports.Clock
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.Messenger = (*Outbox)(nil)

func NewOutbox(path string) (*Outbox, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("outbox path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve outbox path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Outbox{path: absPath, mu: lockForPath(absPath), clock: ports.SystemClock{}}, nil
}

func (o *Outbox) Path() string {
	return o.path
}

// Send appends a message to the outbox.
func (o *Outbox) Send(ctx context.Context, to string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return domain.ErrEmptyRecipient
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	file, err := o.readSchema()
	if err != nil {
		return err
	}

	file.Messages = append(file.Messages, messageSchema{
		ID:       uuid.NewString(),
		To:       to,
		Body:     body,
		QueuedAt: o.clock.Now().UTC().Format(time.RFC3339Nano),
	})

	if err := ctx.Err(); err != nil {
		return err
	}

	return o.writeSchema(file)
}

// List returns queued messages oldest first.
func (o *Outbox) List(ctx context.Context) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	file, err := o.readSchema()
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(file.Messages))
	for _, entry := range file.Messages {
		queuedAt, err := time.Parse(time.RFC3339Nano, entry.QueuedAt)
		if err != nil {
			return nil, fmt.Errorf("decode outbox message %s: %w", entry.ID, err)
		}
		messages = append(messages, Message{
			ID:       entry.ID,
			To:       entry.To,
			Body:     entry.Body,
			QueuedAt: queuedAt,
		})
	}

	return messages, nil
}

// Clear drops every queued message and reports how many were removed.
func (o *Outbox) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	file, err := o.readSchema()
	if err != nil {
		return 0, err
	}
	removed := len(file.Messages)
	if removed == 0 {
		return 0, nil
	}

	file.Messages = nil
	if err := o.writeSchema(file); err != nil {
		return 0, err
	}

	return removed, nil
}

func (o *Outbox) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(o.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read outbox file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode outbox file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (o *Outbox) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(o.path), outboxDirMode); err != nil {
		return fmt.Errorf("create outbox directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode outbox file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(o.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp outbox file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp outbox file: %w", err)
	}
	if err := tempFile.Chmod(outboxFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp outbox file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp outbox file: %w", err)
	}

	if err := os.Rename(tempName, o.path); err != nil {
		return fmt.Errorf("replace outbox file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
