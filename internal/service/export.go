package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"hvac_monitor/internal/logger"
	"hvac_monitor/internal/models"
	"hvac_monitor/internal/repository"
)

const (
	DefaultExportFilename = "saved_data.csv"
	csvExt                = ".csv"
	downloadPathPrefix    = "/download_custom/"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFilename = errors.New("invalid filename")
)

// LogSource is the CSV log being exported.
type LogSource interface {
	Path() string
	CopyTo(dst io.Writer) (int64, error)
}

// Archiver stores exported files off the host.
type Archiver interface {
	Upload(ctx context.Context, name string, body io.Reader) (string, error)
}

// ExportService copies the CSV log next to itself under a user-chosen name.
type ExportService struct {
	src     LogSource
	dir     string
	events  repository.EventRepo
	archive Archiver
	log     *logger.Logger
}

func NewExportService(src LogSource, events repository.EventRepo, archive Archiver, log *logger.Logger) *ExportService {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportService{
		src:     src,
		dir:     filepath.Dir(src.Path()),
		events:  events,
		archive: archive,
		log:     log,
	}
}

// NormalizeFilename keeps only the final path element and appends ".csv"
// when the name does not already end with it. Empty names get the default.
func NormalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultExportFilename, nil
	}
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", ErrInvalidFilename
	}
	if !strings.HasSuffix(name, csvExt) {
		name += csvExt
	}
	return name, nil
}

// PrepareDownload copies the log to newFilename (default saved_data.csv),
// overwriting any previous copy, and uploads it when an archive is configured.
func (s *ExportService) PrepareDownload(ctx context.Context, newFilename string) (ExportResult, error) {
	name, err := NormalizeFilename(newFilename)
	if err != nil {
		return ExportResult{}, err
	}
	dst := filepath.Join(s.dir, name)
	if samePath(dst, s.src.Path()) {
		return ExportResult{}, fmt.Errorf("%w: %q is the live log", ErrInvalidFilename, name)
	}

	if err := s.copyLog(dst); err != nil {
		return ExportResult{}, err
	}
	res := ExportResult{
		Filename:    name,
		DownloadURL: downloadPathPrefix + url.PathEscape(name),
	}

	if s.archive != nil {
		key, err := s.upload(ctx, dst, name)
		if err != nil {
			return ExportResult{}, err
		}
		res.ArchiveKey = key
	}

	recordEvent(ctx, s.events, s.log, models.EventExport, "csv exported", map[string]any{
		"file":        name,
		"archive_key": res.ArchiveKey,
	})
	s.log.Infow("csv_exported", "file", dst, "archive_key", res.ArchiveKey)
	return res, nil
}

// copyLog writes through a temp file so a failed copy never leaves a
// truncated export behind.
func (s *ExportService) copyLog(dst string) error {
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := s.src.CopyTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copy csv log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

func (s *ExportService) upload(ctx context.Context, path, name string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return s.archive.Upload(ctx, name, f)
}

// Resolve returns the on-disk path of a previously exported file.
func (s *ExportService) Resolve(filename string) (string, error) {
	name := filepath.Base(filepath.Clean(strings.TrimSpace(filename)))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", ErrFileNotFound
	}
	p := filepath.Join(s.dir, name)
	fi, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	if fi.IsDir() {
		return "", ErrFileNotFound
	}
	return p, nil
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
