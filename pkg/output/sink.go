// Package output writes rendered frames to local files, S3 buckets and thumbnails.
package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Sink receives finished frames
type Sink interface {
	WriteFrame(ctx context.Context, name string, img image.Image) error
}

// encodePNG encodes img into memory
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// FileSink writes frames as PNG files into Dir
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink writing into dir. The directory is created on first write.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// WriteFrame encodes img and writes it to Dir/name
func (s *FileSink) WriteFrame(ctx context.Context, name string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := encodePNG(img)
	if err != nil {
		return err
	}

	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// MultiSink writes every frame to each of its sinks in order
type MultiSink []Sink

// WriteFrame stops at the first failing sink
func (m MultiSink) WriteFrame(ctx context.Context, name string, img image.Image) error {
	for _, sink := range m {
		if err := sink.WriteFrame(ctx, name, img); err != nil {
			return err
		}
	}
	return nil
}
