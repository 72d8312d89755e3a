package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"transferScope/internal/model"
)

// JsonlSink writes classified batches as JSON lines, one file per output
// kind.
type JsonlSink struct {
	tokensPath    string
	transfersPath string
	errorsPath    string
	mu            sync.Mutex
}

func NewJsonlSink(tokensPath, transfersPath, errorsPath string) *JsonlSink {
	return &JsonlSink{
		tokensPath:    tokensPath,
		transfersPath: transfersPath,
		errorsPath:    errorsPath,
	}
}

// PutTokenBatch appends token descriptors to the tokens file.
func (s *JsonlSink) PutTokenBatch(tokens []model.Token) error {
	lines := make([]interface{}, len(tokens))
	for i, token := range tokens {
		lines[i] = token
	}
	return s.appendLines(s.tokensPath, lines)
}

// PutTransferBatch appends transfers to the transfers file.
func (s *JsonlSink) PutTransferBatch(transfers []model.TokenTransfer) error {
	lines := make([]interface{}, len(transfers))
	for i, tr := range transfers {
		lines[i] = tr
	}
	return s.appendLines(s.transfersPath, lines)
}

// PutErrorBatch appends classification failures to the errors file.
func (s *JsonlSink) PutErrorBatch(errs []model.ClassifyError) error {
	lines := make([]interface{}, len(errs))
	for i, e := range errs {
		lines[i] = e
	}
	return s.appendLines(s.errorsPath, lines)
}

func (s *JsonlSink) appendLines(path string, lines []interface{}) error {
	if len(lines) == 0 || path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range lines {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
