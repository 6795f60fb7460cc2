package loader

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-transformer/internal/diagnostic"
	"idea-transformer/internal/parser"
	"idea-transformer/internal/schema"
)

func setupTestFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	fsys := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
	}

	return fsys
}

func TestLoadResolvesRelativeToCwd(t *testing.T) {
	fsys := setupTestFS(t, map[string]string{
		"/project/schema/app.yml": "model:\n  User:\n    columns:\n      - name: id\n",
	})

	l := New(Config{FS: fsys, Cwd: "/project"})

	table, err := l.Load(context.Background(), "schema/app.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, table.Model.Keys())
}

func TestLoadMissingInputFile(t *testing.T) {
	l := New(Config{FS: memfs.New(), Cwd: "/project"})

	_, err := l.Load(context.Background(), "missing.idea")
	require.Error(t, err)

	var missing *MissingInputFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "/project/missing.idea", missing.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, diagnostic.CodeMissingInputFile, diagnostic.CodeOf(err))
	assert.Equal(t, "input file /project/missing.idea does not exist", err.Error())
}

func TestLoadMergesImports(t *testing.T) {
	fsys := setupTestFS(t, map[string]string{
		"/project/schema.yml": `
use:
  - ./shared/first.yml
  - ./shared/second.yml
enum:
  Roles:
    ADMIN: Admin
model:
  Profile:
    columns:
      - name: id
`,
		"/project/shared/first.yml": `
use: ../common.yml
enum:
  Roles:
    GUEST: Guest
  Status:
    ACTIVE: Active
model:
  Auth:
    columns:
      - name: username
`,
		"/project/shared/second.yml": `
enum:
  Status:
    INACTIVE: Inactive
model:
  Connection: {}
`,
		"/project/common.yml": `
prop:
  Config:
    placeholder: Enter
`,
	})

	l := New(Config{FS: fsys, Cwd: "/project"})

	table, err := l.Load(context.Background(), "schema.yml")
	require.NoError(t, err)

	assert.Equal(t, []string{"./shared/first.yml", "./shared/second.yml"}, table.Use)
	assert.Equal(t, []string{"Profile", "Auth", "Connection"}, table.Model.Keys())
	assert.Equal(t, []string{"Roles", "Status"}, table.Enum.Keys())
	assert.True(t, table.Prop.Has("Config"))

	roles, _ := table.Enum.Get("Roles")
	assert.Equal(t, []string{"ADMIN"}, roles.Keys(), "root entries win over imports")

	status, _ := table.Enum.Get("Status")
	assert.Equal(t, []string{"ACTIVE"}, status.Keys(), "earlier imports win over later ones")
}

func TestLoadImportCycle(t *testing.T) {
	fsys := setupTestFS(t, map[string]string{
		"/a.yml": "use: ./b.yml\nmodel:\n  A: {}\n",
		"/b.yml": "use: ./a.yml\nmodel:\n  B: {}\n",
	})

	table, err := New(Config{FS: fsys, Cwd: "/"}).Load(context.Background(), "a.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Model.Keys())
}

func TestLoadMissingImport(t *testing.T) {
	fsys := setupTestFS(t, map[string]string{
		"/project/schema.yml": "use: ./gone.yml\n",
	})

	_, err := New(Config{FS: fsys, Cwd: "/project"}).Load(context.Background(), "schema.yml")

	var missing *MissingInputFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "/project/gone.yml", missing.Path)
}

func TestLoadParseError(t *testing.T) {
	fsys := setupTestFS(t, map[string]string{
		"/schema.yml": "model: [",
	})

	_, err := New(Config{FS: fsys}).Load(context.Background(), "/schema.yml")
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "/schema.yml", parseErr.Path)
	assert.Equal(t, diagnostic.CodeParseFailed, diagnostic.CodeOf(err))
}

func TestParseErrorNamesFile(t *testing.T) {
	fsys := setupTestFS(t, map[string]string{"/schema.idea": "anything"})

	p := parser.Func(func(context.Context, string, []byte) (*schema.Table, error) {
		return nil, errors.New("unexpected token")
	})

	_, err := New(Config{FS: fsys, Parser: p}).Load(context.Background(), "/schema.idea")
	assert.EqualError(t, err, "/schema.idea: unexpected token")

	// Built-in parsers already name the file.
	builtin := &ParseError{Path: "/schema.yml", Err: errors.New("failed to parse schema YAML /schema.yml: boom")}
	assert.EqualError(t, builtin, "failed to parse schema YAML /schema.yml: boom")
}

func TestLoadDirectory(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll("/project", 0o755))

	_, err := New(Config{FS: fsys}).Load(context.Background(), "/project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadUsesConfiguredParser(t *testing.T) {
	fsys := setupTestFS(t, map[string]string{"/schema.idea": "anything"})

	var calls int

	p := parser.Func(func(_ context.Context, path string, data []byte) (*schema.Table, error) {
		calls++

		assert.Equal(t, "/schema.idea", path)
		assert.Equal(t, "anything", string(data))

		return schema.NewTable(), nil
	})

	_, err := New(Config{FS: fsys, Parser: p}).Load(context.Background(), "/schema.idea")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{FS: memfs.New()}).Load(ctx, "/schema.yml")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, "/work/schema.idea", Abs("/work", "schema.idea"))
	assert.Equal(t, "/other/schema.idea", Abs("/work", "/other/../other/schema.idea"))
	assert.Equal(t, "/schema.idea", Abs("/work", "../schema.idea"))
}
