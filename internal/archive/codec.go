package archive

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"daily-diet/internal/model"
)

// Encode renders meals as a gzip-compressed JSON-lines snapshot.
func Encode(meals []model.Meal) ([]byte, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)

	enc := json.NewEncoder(gzipWriter)
	enc.SetEscapeHTML(false)
	for i := range meals {
		if err := enc.Encode(&meals[i]); err != nil {
			return nil, fmt.Errorf("failed to encode meal %s: %w", meals[i].ID, err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish snapshot: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode reads a snapshot produced by Encode. Blank lines are skipped.
func Decode(ctx context.Context, r io.Reader) ([]model.Meal, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	// Lines are unbounded; a single meal description can exceed any fixed buffer.
	reader := bufio.NewReader(gzipReader)

	var meals []model.Meal
	lineCount := 0
	for {
		raw, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("error reading snapshot: %w", readErr)
		}
		if readErr == io.EOF && len(raw) == 0 {
			break
		}

		// Check context cancellation periodically
		if lineCount%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		lineCount++

		line := bytes.TrimSpace(raw)
		if len(line) > 0 {
			var m model.Meal
			if err := json.Unmarshal(line, &m); err != nil {
				return nil, fmt.Errorf("invalid snapshot line %d: %w", lineCount, err)
			}
			meals = append(meals, m)
		}

		if readErr == io.EOF {
			break
		}
	}

	return meals, nil
}
