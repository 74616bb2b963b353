package compile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// WriteDocument persists a fully assembled document to outputPath, creating
// intermediate directories as needed. The write is a single WriteFile of the
// complete text; a failure is returned to the caller and never retried.
func WriteDocument(outputPath string, doc Document, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Failed to create output directory", zap.String("path", dir), zap.Error(err))
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(doc.Text), 0o644); err != nil {
		logger.Error("Failed to write context document", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("write context document %s: %w", outputPath, err)
	}

	logger.Debug("Wrote context document",
		zap.String("file", outputPath),
		zap.Int("files", doc.FileCount),
		zap.Int("bytes", len(doc.Text)))
	return nil
}
