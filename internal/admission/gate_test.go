package admission

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devghori1264/aerophoenix/osplugin/internal/translator"
)

const host = "10.0.0.1"

const hotDescriptor = "heat_template_version: 2016-10-14\nresources: {}\n"

type zipEntry struct {
	name string
	body string
	mode fs.FileMode
}

func buildZip(t *testing.T, entries ...zipEntry) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if e.mode != 0 {
			hdr.SetMode(e.mode)
		}
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func validPackage(t *testing.T) *bytes.Reader {
	return buildZip(t,
		zipEntry{name: "Definitions/"},
		zipEntry{name: "Definitions/app.yaml", body: hotDescriptor},
		zipEntry{name: "Artifacts/readme.txt", body: "docs"},
	)
}

func newGate(t *testing.T, tr Translator, max int64) (*Gate, afero.Fs, string) {
	t.Helper()
	root := t.TempDir()
	fsys := afero.NewOsFs()
	if tr == nil {
		tr = translator.New(fsys)
	}
	g, err := NewGate(fsys, root, tr, max, zap.NewNop())
	require.NoError(t, err)
	return g, fsys, root
}

func TestAdmitExtractsAndTranslates(t *testing.T) {
	g, fsys, root := newGate(t, nil, 0)
	archive := validPackage(t)

	require.NoError(t, g.Admit(context.Background(), host, "pkg-1", archive, archive.Size()))

	body, err := afero.ReadFile(fsys, filepath.Join(root, host, "pkg-1", "Artifacts", "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, "docs", string(body))

	p, err := g.TemplatePath(host, "pkg-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, host, "pkg-1", translator.TemplateFile), p)

	tpl, err := g.ReadTemplate(host, "pkg-1")
	require.NoError(t, err)
	assert.Equal(t, hotDescriptor, string(tpl))
}

func TestAdmitRejectsDuplicate(t *testing.T) {
	g, fsys, root := newGate(t, nil, 0)
	ctx := context.Background()
	archive := validPackage(t)
	require.NoError(t, g.Admit(ctx, host, "pkg-1", archive, archive.Size()))

	err := g.Admit(ctx, host, "pkg-1", archive, archive.Size())
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// the existing package is untouched
	exists, err := afero.Exists(fsys, filepath.Join(root, host, "pkg-1", translator.TemplateFile))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAdmitConcurrentDuplicateUploads(t *testing.T) {
	g, fsys, root := newGate(t, nil, 0)
	archive := validPackage(t)
	raw := make([]byte, archive.Size())
	_, err := archive.ReadAt(raw, 0)
	require.NoError(t, err)

	const uploads = 8
	errs := make([]error, uploads)
	var wg sync.WaitGroup
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := bytes.NewReader(raw)
			errs[i] = g.Admit(context.Background(), host, "same", r, r.Size())
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyExists):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, uploads-1, conflicts)

	entries, err := afero.ReadDir(fsys, filepath.Join(root, host))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "same", entries[0].Name())
	_, err = g.TemplatePath(host, "same")
	assert.NoError(t, err)
}

func TestAdmitRejectsPathTraversal(t *testing.T) {
	tests := []struct {
		name  string
		entry zipEntry
	}{
		{"parent traversal", zipEntry{name: "../../escape.txt", body: "x"}},
		{"nested traversal", zipEntry{name: "Definitions/../../escape.txt", body: "x"}},
		{"absolute", zipEntry{name: "/tmp/escape.txt", body: "x"}},
		{"backslash", zipEntry{name: `..\escape.txt`, body: "x"}},
		{"symlink", zipEntry{name: "link", body: "/etc/passwd", mode: fs.ModeSymlink | 0o777}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, fsys, root := newGate(t, nil, 0)
			archive := buildZip(t,
				zipEntry{name: "Definitions/app.yaml", body: hotDescriptor},
				tt.entry,
			)
			err := g.Admit(context.Background(), host, "evil", archive, archive.Size())
			require.ErrorIs(t, err, ErrUnsafePath)

			exists, _ := afero.DirExists(fsys, filepath.Join(root, host, "evil"))
			assert.False(t, exists, "package dir must be rolled back")
			exists, _ = afero.Exists(fsys, filepath.Join(root, "escape.txt"))
			assert.False(t, exists)
			exists, _ = afero.Exists(fsys, filepath.Join(filepath.Dir(root), "escape.txt"))
			assert.False(t, exists)
		})
	}
}

type failingTranslator struct{}

func (failingTranslator) Translate(context.Context, string) (string, error) {
	return "", errors.New("no descriptor")
}

func TestAdmitRollsBackOnTranslationFailure(t *testing.T) {
	g, fsys, root := newGate(t, failingTranslator{}, 0)
	archive := validPackage(t)

	err := g.Admit(context.Background(), host, "pkg-1", archive, archive.Size())
	require.ErrorIs(t, err, ErrTranslation)

	exists, err := afero.DirExists(fsys, filepath.Join(root, host, "pkg-1"))
	require.NoError(t, err)
	assert.False(t, exists)

	// the id is free again
	g.translator = translator.New(fsys)
	archive = validPackage(t)
	assert.NoError(t, g.Admit(context.Background(), host, "pkg-1", archive, archive.Size()))
}

func TestAdmitRejectsBadInput(t *testing.T) {
	g, fsys, root := newGate(t, nil, 16)
	ctx := context.Background()

	archive := validPackage(t)
	for _, id := range []string{"", "..", "../x", "a/b", ".hidden"} {
		assert.ErrorIs(t, g.Admit(ctx, host, id, archive, archive.Size()), ErrInvalidPackageID, id)
	}

	garbage := bytes.NewReader([]byte("not a zip"))
	assert.ErrorIs(t, g.Admit(ctx, host, "garbage", garbage, garbage.Size()), ErrBadArchive)

	big := buildZip(t, zipEntry{name: "Definitions/app.yaml", body: hotDescriptor})
	assert.ErrorIs(t, g.Admit(ctx, host, "big", big, big.Size()), ErrTooLarge)

	for _, id := range []string{"garbage", "big"} {
		_, err := fsys.Stat(filepath.Join(root, host, id))
		assert.True(t, os.IsNotExist(err), id)
	}
}

func TestRemoveAndTemplatePath(t *testing.T) {
	g, _, _ := newGate(t, nil, 0)
	archive := validPackage(t)
	require.NoError(t, g.Admit(context.Background(), host, "pkg-1", archive, archive.Size()))

	require.NoError(t, g.Remove(host, "pkg-1"))
	_, err := g.TemplatePath(host, "pkg-1")
	assert.ErrorIs(t, err, ErrPackageNotFound)

	assert.NoError(t, g.Remove(host, "pkg-1"), "removing twice is fine")
	assert.ErrorIs(t, g.Remove(host, "../x"), ErrInvalidPackageID)
}
