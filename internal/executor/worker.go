package executor

import (
	"context"
	"fmt"

	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
	"github.com/vk/textembed/internal/fsutil"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// process resolves options before reading, so excluded files are never opened.
func (e *Executor) process(ctx context.Context, res fsutil.Resource) Result {
	logger := ctxlog.FromContext(ctx)
	result := Result{Path: res.Path}

	opts := engine.Resolve(e.global, res.Metadata)
	if !opts.Included {
		logger.Debug("Resource excluded by options.")
		return result
	}

	content, err := e.readFile(res.Path)
	if err != nil {
		logger.Error("Failed to read resource.", "error", err)
		result.Err = fmt.Errorf("failed to read %s: %w", res.Path, err)
		return result
	}

	text, err := decodeText(content)
	if err != nil {
		logger.Error("Failed to decode resource.", "error", err)
		result.Err = fmt.Errorf("failed to decode %s: %w", res.Path, err)
		return result
	}

	unit, err := engine.Generate(engine.Resource{Path: res.Path, Content: text}, opts)
	if err != nil {
		logger.Warn("Resource produced a diagnostic.", "error", err)
		result.Err = err
		return result
	}
	logger.Debug("Generated unit.", "key", unit.Key().String(), "bytes", len(content))
	result.Unit = unit
	return result
}

// decodeText reads content as UTF-8 unless a byte order mark selects UTF-16.
// The mark itself is not part of the text.
func decodeText(content []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
