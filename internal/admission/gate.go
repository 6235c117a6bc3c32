// Package admission validates, extracts and translates uploaded application
// packages into <root>/<hostId>/<packageId>.
package admission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/devghori1264/aerophoenix/osplugin/internal/metrics"
	"github.com/devghori1264/aerophoenix/osplugin/internal/translator"
)

var (
	ErrInvalidPackageID = errors.New("invalid package id")
	ErrAlreadyExists    = errors.New("package already exists")
	ErrPackageNotFound  = errors.New("package not found")
	ErrBadArchive       = errors.New("unreadable package archive")
	ErrUnsafePath       = errors.New("archive entry escapes package root")
	ErrTooLarge         = errors.New("package exceeds extracted size limit")
	ErrTranslation      = errors.New("package translation failed")
)

var packageIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// Translator converts an extracted package into a deployable template and returns its path.
type Translator interface {
	Translate(ctx context.Context, dir string) (string, error)
}

// Gate is the package admission pipeline.
type Gate struct {
	fs           afero.Fs
	root         string
	translator   Translator
	maxExtracted int64
	log          *zap.Logger
}

// NewGate creates the package root if needed. maxExtracted <= 0 disables the size cap.
func NewGate(fsys afero.Fs, root string, tr Translator, maxExtracted int64, log *zap.Logger) (*Gate, error) {
	if err := fsys.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create package root: %w", err)
	}
	return &Gate{
		fs:           fsys,
		root:         root,
		translator:   tr,
		maxExtracted: maxExtracted,
		log:          log.Named("admission"),
	}, nil
}

// ValidPackageID reports whether id can name a package directory.
func ValidPackageID(id string) bool {
	return packageIDPattern.MatchString(id)
}

func (g *Gate) dir(hostID, packageID string) string {
	return filepath.Join(g.root, hostID, packageID)
}

// Admit extracts archive into the package directory and translates it.
// The directory is claimed with an exclusive mkdir so concurrent uploads of
// the same package have a single winner; on any later failure it is removed.
func (g *Gate) Admit(ctx context.Context, hostID, packageID string, archive io.ReaderAt, size int64) (err error) {
	defer func() {
		result := "ok"
		switch {
		case errors.Is(err, ErrAlreadyExists):
			result = "conflict"
		case err != nil:
			result = "error"
		}
		metrics.RecordAdmission(result)
	}()

	if !ValidPackageID(packageID) {
		return ErrInvalidPackageID
	}
	if err := g.fs.MkdirAll(filepath.Join(g.root, hostID), 0o750); err != nil {
		return err
	}
	dir := g.dir(hostID, packageID)
	if err := g.fs.Mkdir(dir, 0o750); err != nil {
		if errors.Is(err, fs.ErrExist) || os.IsExist(err) {
			return ErrAlreadyExists
		}
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if rmErr := g.fs.RemoveAll(dir); rmErr != nil {
			g.log.Error("rollback failed", zap.String("dir", dir), zap.Error(rmErr))
		}
	}()

	if err := g.extract(ctx, dir, archive, size); err != nil {
		return err
	}
	tpl, err := g.translator.Translate(ctx, dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTranslation, err)
	}
	g.log.Info("package admitted",
		zap.String("host", hostID),
		zap.String("package", packageID),
		zap.String("template", tpl))
	return nil
}

func (g *Gate) extract(ctx context.Context, dir string, archive io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(archive, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	budget := g.maxExtracted
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := safeJoin(dir, f.Name)
		if err != nil {
			return err
		}
		mode := f.Mode()
		switch {
		case mode&fs.ModeSymlink != 0:
			return fmt.Errorf("%w: symlink %q", ErrUnsafePath, f.Name)
		case f.FileInfo().IsDir():
			if err := g.fs.MkdirAll(target, 0o750); err != nil {
				return err
			}
			continue
		}
		n, err := g.writeEntry(f, target, budget)
		if err != nil {
			return err
		}
		if budget > 0 {
			budget -= n
		}
	}
	return nil
}

// writeEntry copies one archive file to target, never reading more than budget bytes when budget > 0.
func (g *Gate) writeEntry(f *zip.File, target string, budget int64) (int64, error) {
	if err := g.fs.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return 0, err
	}
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	defer rc.Close()

	out, err := g.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	var src io.Reader = rc
	if g.maxExtracted > 0 {
		src = io.LimitReader(rc, budget+1)
	}
	n, err := io.Copy(out, src)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	if g.maxExtracted > 0 && n > budget {
		return n, ErrTooLarge
	}
	return n, nil
}

// safeJoin resolves an archive entry name under root and rejects anything
// that would land outside it.
func safeJoin(root, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	target := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return target, nil
}

// Remove deletes a package. A missing package is not an error.
func (g *Gate) Remove(hostID, packageID string) error {
	if !ValidPackageID(packageID) {
		return ErrInvalidPackageID
	}
	return g.fs.RemoveAll(g.dir(hostID, packageID))
}

// TemplatePath returns the translated template of an admitted package.
func (g *Gate) TemplatePath(hostID, packageID string) (string, error) {
	if !ValidPackageID(packageID) {
		return "", ErrInvalidPackageID
	}
	p := filepath.Join(g.dir(hostID, packageID), translator.TemplateFile)
	fi, err := g.fs.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return "", ErrPackageNotFound
		}
		return "", err
	}
	if fi.IsDir() {
		return "", ErrPackageNotFound
	}
	return p, nil
}

// ReadTemplate returns the translated template contents of an admitted package.
func (g *Gate) ReadTemplate(hostID, packageID string) ([]byte, error) {
	p, err := g.TemplatePath(hostID, packageID)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(g.fs, p)
}
