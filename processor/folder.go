package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"parttrack/logger"
	"parttrack/models"
	"parttrack/services"
	"parttrack/spreadsheet"
)

const (
	unprocessedDir = "unprocessed"
	processedDir   = "processed"
	failedDir      = "failed"
)

type Summary struct {
	Imported int
	Failed   int
}

// ProcessFolder imports every .csv and .xlsx in dir/unprocessed. A file
// named DESIGN_* is a design BOM, anything else an order BOM.
func ProcessFolder(ctx context.Context, boms *services.BomService, dir string, log *logger.Logger) (Summary, error) {
	var summary Summary
	for _, sub := range []string{unprocessedDir, processedDir, failedDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), os.ModePerm); err != nil {
			return summary, err
		}
	}

	entries, err := os.ReadDir(filepath.Join(dir, unprocessedDir))
	if err != nil {
		return summary, err
	}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".csv" && ext != ".xlsx") {
			continue
		}
		path := filepath.Join(dir, unprocessedDir, entry.Name())

		target := processedDir
		if err := importFile(ctx, boms, path); err != nil {
			log.Error("BOM file rejected", "file", entry.Name(), "error", err)
			target = failedDir
			summary.Failed++
		} else {
			log.Info("BOM file imported", "file", entry.Name())
			summary.Imported++
		}

		if err := moveFile(path, filepath.Join(dir, target, entry.Name())); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func bomTypeFor(name string) models.BomType {
	if strings.HasPrefix(strings.ToUpper(filepath.Base(name)), "DESIGN_") {
		return models.BomTypeDesign
	}
	return models.BomTypeOrder
}

func importFile(ctx context.Context, boms *services.BomService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	rows, err := spreadsheet.ReadRows(path, f)
	// close before the move; some platforms refuse to rename open files
	f.Close()
	if err != nil {
		return err
	}

	_, err = boms.ImportBom(ctx, services.ImportRequest{
		Rows:       rows,
		Type:       bomTypeFor(path),
		Confirmed:  true,
		ImportedBy: "processor",
	})
	return err
}

// moveFile renames src to dst, falling back to copy and delete across
// volumes.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	in.Close()
	return os.Remove(src)
}
