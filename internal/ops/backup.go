// Package ops holds the operational helpers behind the loot-ops CLI:
// snapshots of a tables directory, restores and archive verification.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/HadleysDad/loot-api/internal/table"
)

// SnapshotTables archives a tables directory into a .tar.gz and returns
// how many JSON documents went in. Symlinks are skipped so a snapshot
// restores the same way everywhere.
func SnapshotTables(srcDir, archivePath string) (int, error) {
	srcDir = filepath.Clean(strings.TrimSpace(srcDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if srcDir == "" || archivePath == "" {
		return 0, fmt.Errorf("srcDir and archivePath are required")
	}
	info, err := os.Stat(srcDir)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("source is not a directory: %s", srcDir)
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	tables := 0
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if info.IsDir() && !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(rel, ".json") {
			tables++
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		if _, err := io.Copy(tw, src); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return tables, nil
}

// RestoreTables unpacks a snapshot into targetDir and returns how many
// JSON documents came out. Entry paths are sanitized; an archive that
// tries to escape the target directory fails the whole restore.
func RestoreTables(archivePath, targetDir string) (int, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return 0, fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return 0, err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer gz.Close()

	tables := 0
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		rel, err := sanitizeArchiveRelPath(hdr.Name)
		if err != nil {
			return 0, err
		}
		outPath := filepath.Join(targetDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(outPath, os.FileMode(hdr.Mode)); err != nil {
				return 0, err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return 0, err
			}
			dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return 0, err
			}
			if _, err := io.Copy(dst, tr); err != nil {
				_ = dst.Close()
				return 0, err
			}
			if err := dst.Close(); err != nil {
				return 0, err
			}
			if strings.HasSuffix(rel, ".json") {
				tables++
			}
		default:
			// Ignore unsupported entry types.
		}
	}

	return tables, nil
}

// TableCheck is the verification outcome for one JSON document.
type TableCheck struct {
	Path     string `json:"path"`
	Valid    bool   `json:"valid"`
	Items    int    `json:"items"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Reason   string `json:"reason,omitempty"`
}

// VerifyTables validates every JSON document under dir and reports one
// check per file, sorted by path. A file that fails to parse or fails
// validation makes its check invalid but never stops the walk.
func VerifyTables(dir string) ([]TableCheck, error) {
	dir = filepath.Clean(strings.TrimSpace(dir))
	checks := []TableCheck{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		checks = append(checks, checkTableFile(filepath.ToSlash(rel), path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checks, nil
}

func checkTableFile(rel, path string) TableCheck {
	doc, err := table.LoadFile(path)
	if err != nil {
		return TableCheck{Path: rel, Reason: fmt.Sprintf("not a JSON document: %v", err)}
	}
	res := table.Validate(doc)
	check := TableCheck{
		Path:     rel,
		Valid:    res.Valid,
		Items:    res.Summary.TotalItems,
		Errors:   len(res.Errors),
		Warnings: len(res.Warnings),
	}
	if !res.Valid && len(res.Errors) > 0 {
		check.Reason = res.Errors[0].Message
	}
	return check
}

func sanitizeArchiveRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid absolute archive entry path: %s", name)
	}
	if strings.HasPrefix(name, ".."+string(filepath.Separator)) || name == ".." {
		return "", fmt.Errorf("invalid archive entry path traversal: %s", name)
	}
	return name, nil
}
