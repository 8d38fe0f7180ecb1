package main

import (
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// writeOutput writes data to path atomically, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte, logger zerolog.Logger) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending output file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending output file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}
