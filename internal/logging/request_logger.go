package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RequestLog defines the JSON structure for a log entry. The rankings API
// is read-heavy, so the query string carries most of the signal; request
// bodies and credentials are never recorded.
type RequestLog struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Query      string    `json:"query,omitempty"`
	RemoteAddr string    `json:"remote_addr"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
}

// RequestLogger implements asynchronous, buffered JSONL logging with size
// based rotation and periodic flush.
type RequestLogger struct {
	fileTemplate  string // e.g. "/var/log/model-rankings/requests-%s.jsonl"
	maxSize       int64
	maxFiles      int
	flushInterval time.Duration

	mu          sync.Mutex
	currentFile string
	file        *os.File
	writer      *bufio.Writer
	currentSize int64
	closed      bool

	logCh  chan RequestLog
	doneCh chan struct{}
	wg     sync.WaitGroup
}

// NewRequestLogger creates a RequestLogger and starts its writer goroutine.
// bufferSize bounds how many entries can be queued; beyond that, entries
// are dropped rather than blocking the request path.
func NewRequestLogger(fileTemplate string, maxSize int64, maxFiles, bufferSize int, flushInterval time.Duration) (*RequestLogger, error) {
	logger := &RequestLogger{
		fileTemplate:  fileTemplate,
		maxSize:       maxSize,
		maxFiles:      maxFiles,
		flushInterval: flushInterval,
		logCh:         make(chan RequestLog, bufferSize),
		doneCh:        make(chan struct{}),
	}

	if err := logger.openFile(); err != nil {
		return nil, err
	}

	logger.wg.Add(1)
	go logger.run()

	return logger, nil
}

// Record queues one served request for logging. Returns the assigned
// request id. If the queue is full the entry is dropped.
func (logger *RequestLogger) Record(r *http.Request, status int, duration time.Duration) string {
	entry := RequestLog{
		Timestamp:  time.Now(),
		RequestID:  uuid.NewString(),
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.RawQuery,
		RemoteAddr: r.RemoteAddr,
		Status:     status,
		DurationMs: duration.Milliseconds(),
	}

	select {
	case logger.logCh <- entry:
	default:
		// Queue full; dropping log entry.
	}
	return entry.RequestID
}

// Shutdown flushes the buffer and closes the file. Call it from the
// application's graceful shutdown handler.
func (logger *RequestLogger) Shutdown() {
	logger.mu.Lock()
	if logger.closed {
		logger.mu.Unlock()
		return
	}
	logger.closed = true
	logger.mu.Unlock()

	close(logger.doneCh)
	logger.wg.Wait()
}

// newFileName applies the current timestamp to the file template.
func (logger *RequestLogger) newFileName() string {
	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf(logger.fileTemplate, timestamp)
}

// openFile opens (or creates) the active log file and prepares the
// buffered writer, creating the directory if needed.
func (logger *RequestLogger) openFile() error {
	logger.currentFile = logger.newFileName()
	dir := filepath.Dir(logger.currentFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(logger.currentFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	logger.currentSize = fi.Size()
	logger.file = file
	logger.writer = bufio.NewWriter(file)
	return nil
}

// rotateIfNeeded rotates to a new file once adding n bytes would exceed
// the max file size.
func (logger *RequestLogger) rotateIfNeeded(n int) error {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	if logger.currentSize+int64(n) < logger.maxSize {
		return nil
	}

	if err := logger.writer.Flush(); err != nil {
		return err
	}
	if err := logger.file.Close(); err != nil {
		return err
	}
	return logger.openFile()
}

// cleanupOldFiles removes the oldest rotated files beyond maxFiles.
func (logger *RequestLogger) cleanupOldFiles() error {
	pattern := fmt.Sprintf(logger.fileTemplate, "*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	sort.Slice(matches, func(i, j int) bool {
		fi, err1 := os.Stat(matches[i])
		fj, err2 := os.Stat(matches[j])
		if err1 != nil || err2 != nil {
			return false
		}
		return fi.ModTime().Before(fj.ModTime())
	})

	excess := len(matches) - logger.maxFiles
	for i := 0; i < excess; i++ {
		_ = os.Remove(matches[i])
	}
	return nil
}

// run listens for entries and writes them, flushing on a ticker and
// draining the channel on shutdown.
func (logger *RequestLogger) run() {
	defer logger.wg.Done()
	ticker := time.NewTicker(logger.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry := <-logger.logCh:
			logger.writeEntry(entry)
		case <-ticker.C:
			logger.mu.Lock()
			_ = logger.writer.Flush()
			logger.mu.Unlock()
		case <-logger.doneCh:
			for {
				select {
				case entry := <-logger.logCh:
					logger.writeEntry(entry)
				default:
					logger.mu.Lock()
					_ = logger.writer.Flush()
					_ = logger.file.Close()
					logger.mu.Unlock()
					return
				}
			}
		}
	}
}

// writeEntry serializes an entry and writes it, rotating if needed.
func (logger *RequestLogger) writeEntry(entry RequestLog) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	line := string(data) + "\n"
	n := len(line)

	_ = logger.rotateIfNeeded(n)

	logger.mu.Lock()
	_, _ = logger.writer.WriteString(line)
	logger.currentSize += int64(n)
	logger.mu.Unlock()

	_ = logger.cleanupOldFiles()
}
