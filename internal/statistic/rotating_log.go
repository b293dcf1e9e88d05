package statistic

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"shoutd/internal/models"
	"shoutd/internal/providers"
	"shoutd/internal/structures"
	"sync"
)

const maxLineBytes = 1 << 20

// RotatingLog appends encoded events to one live file and shifts it into
// numbered backups (path.1 newest … path.N oldest) once it reaches maxBytes.
type RotatingLog struct {
	mu         sync.RWMutex
	path       string
	maxBytes   int64
	maxFiles   int
	codec      models.Codec
	file       *os.File
	size       int64
	generation uint64
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
}

func NewRotatingLog(path string, maxBytes int64, maxFiles int, codec models.Codec, metrics providers.MetricsProviderInterface, logger providers.Logger) (*RotatingLog, error) {
	l := &RotatingLog{
		path:     path,
		maxBytes: maxBytes,
		maxFiles: maxFiles,
		codec:    codec,
		metrics:  metrics,
		logger:   logger,
	}
	if err := l.Refresh(); err != nil {
		return nil, err
	}
	return l, nil
}

func NewRotatingLogFromConfig(conf *structures.Config, metrics providers.MetricsProviderInterface, logger providers.Logger) (*RotatingLog, error) {
	format, err := models.ParseLogFormat(conf.Log.Format)
	if err != nil {
		return nil, err
	}
	loc, err := conf.Log.Location()
	if err != nil {
		return nil, err
	}
	codec, err := models.NewCodec(format, loc)
	if err != nil {
		return nil, err
	}
	return NewRotatingLog(conf.Log.Path, conf.Log.RotationBytes(), conf.Log.MaxLogFiles, codec, metrics, logger)
}

func (l *RotatingLog) Path() string {
	return l.path
}

func (l *RotatingLog) Codec() models.Codec {
	return l.codec
}

// BackupPath returns the name of backup i (1 = most recently rotated).
func (l *RotatingLog) BackupPath(i int) string {
	return fmt.Sprintf("%s.%d", l.path, i)
}

// Size is the tracked size of the live file in bytes.
func (l *RotatingLog) Size() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Generation changes whenever the live file's content changes.
func (l *RotatingLog) Generation() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.generation
}

// Refresh re-reads the live file size from disk.
func (l *RotatingLog) Refresh() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	switch {
	case err == nil:
		l.size = info.Size()
	case errors.Is(err, os.ErrNotExist):
		l.size = 0
	default:
		return fmt.Errorf("stat %s: %w", l.path, err)
	}
	l.generation++
	return nil
}

// Append writes e as one line. When the live file has already reached the
// threshold it is rotated first, so the line always lands whole in the new file.
func (l *RotatingLog) Append(e models.Event) error {
	line, err := l.codec.Encode(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size >= l.maxBytes {
		if err := l.rotate(); err != nil {
			return fmt.Errorf("rotate %s: %w", l.path, err)
		}
	}

	if l.file == nil {
		if err := l.open(); err != nil {
			return err
		}
	}

	n, err := l.file.Write(line)
	l.size += int64(n)
	if n > 0 {
		l.generation++
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", l.path, err)
	}
	return nil
}

// open must be called under l.mu.Lock().
func (l *RotatingLog) open() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", l.path, err)
	}
	l.file = file
	return nil
}

// rotate drops the oldest backup, shifts the rest up by one in descending
// order and moves the live file to backup 1. Must be called under l.mu.Lock().
func (l *RotatingLog) rotate() error {
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			return err
		}
		l.file = nil
	}

	if l.maxFiles < 1 {
		if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else {
		if err := os.Remove(l.BackupPath(l.maxFiles)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		for i := l.maxFiles - 1; i >= 1; i-- {
			if err := renameIfExists(l.BackupPath(i), l.BackupPath(i+1)); err != nil {
				return err
			}
		}
		if err := renameIfExists(l.path, l.BackupPath(1)); err != nil {
			return err
		}
	}

	l.size = 0
	l.generation++
	l.metrics.IncRotations()
	l.logger.Infof(providers.TypeSubmit, "Rotated shoutout log %s", l.path)
	return nil
}

func renameIfExists(from, to string) error {
	if _, err := os.Stat(from); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.Rename(from, to)
}

// ReadTail returns the last n non-empty lines of the live file, oldest first.
// Backups are never consulted. A missing live file yields no lines, and lines
// longer than maxLineBytes are skipped.
func (l *RotatingLog) ReadTail(n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	file, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer file.Close()

	tail := models.NewRing[string](n)
	reader := bufio.NewReaderSize(file, 64*1024)
	var line []byte
	oversized, dropped := false, 0
	for {
		chunk, err := reader.ReadSlice('\n')
		if !oversized {
			if len(line)+len(chunk) > maxLineBytes+1 {
				oversized, line = true, line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", l.path, err)
		}

		if oversized {
			dropped++
		} else if text := trimEOL(line); text != "" {
			tail.Push(text)
		}
		line, oversized = line[:0], false

		if err != nil {
			break
		}
	}
	if dropped > 0 {
		l.logger.Warnf(providers.TypeRead, "Skipped %d log line(s) over %d bytes in %s", dropped, maxLineBytes, l.path)
	}
	return tail.Items(), nil
}

func trimEOL(line []byte) string {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return string(bytes.TrimSuffix(line, []byte("\r")))
}

func (l *RotatingLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
