package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/blast/internal/platform"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform records clipboard and open calls.
type fakePlatform struct {
	copied  []string
	opened  []string
	copyErr error
	openErr error
}

func (f *fakePlatform) Copy(text string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copied = append(f.copied, text)
	return nil
}

func (f *fakePlatform) Open(target string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, target)
	return nil
}

// testEnv is an isolated database and config directory.
type testEnv struct {
	t        *testing.T
	dbPath   string
	platform *fakePlatform
}

type result struct {
	stdout string
	stderr string
	code   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("BLAST_DB", "")
	return &testEnv{
		t:        t,
		dbPath:   filepath.Join(dir, "blast_db.json"),
		platform: &fakePlatform{},
	}
}

// run executes blast with --db pointing at the test database.
func (e *testEnv) run(stdin string, args ...string) result {
	e.t.Helper()
	a := newApp(e.platform)
	root := a.newRootCmd()

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--db", e.dbPath}, args...))

	code := a.execute(root)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// mustRun runs blast and fails the test on a non-zero exit.
func (e *testEnv) mustRun(args ...string) result {
	e.t.Helper()
	r := e.run("", args...)
	require.Equal(e.t, ExitSuccess, r.code, "blast %v\nstdout: %s\nstderr: %s", args, r.stdout, r.stderr)
	return r
}

func (e *testEnv) seed() {
	e.t.Helper()
	for _, k := range []string{"a", "b", "k.a", "k.b", "k2.a"} {
		e.mustRun("set", k, "value of "+k)
	}
}

func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "blast")
	require.NoError(e.t, os.MkdirAll(dir, 0755))
	require.NoError(e.t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0644))
}

func TestSetGet(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("set", "борщ.матрёшка", "A string with russian словами")
	r := env.mustRun("get", "борщ.матрёшка")

	assert.Equal(t, "A string with russian словами\n", r.stdout)
	assert.Equal(t, []string{"A string with russian словами"}, env.platform.copied)
}

func TestSet_FromStdin(t *testing.T) {
	env := newTestEnv(t)

	r := env.run("line one\nline two\n", "set", "notes.multi")
	require.Equal(t, ExitSuccess, r.code, r.stderr)

	r = env.mustRun("echo", "notes.multi")
	assert.Equal(t, "line one\nline two\n\n", r.stdout)
}

func TestSet_InvalidKey(t *testing.T) {
	env := newTestEnv(t)

	r := env.run("", "set", "a.b.c", "v")

	assert.Equal(t, ExitInvalidKey, r.code)
	assert.Contains(t, r.stderr, "invalid key `a.b.c`")
	assert.Contains(t, r.stderr, "<word1>[.<word2>]")
	assert.Equal(t, 1, strings.Count(r.stderr, "\n"), "error should be a single line")

	_, err := os.Stat(env.dbPath)
	assert.True(t, os.IsNotExist(err), "invalid key must not touch the database")
}

func TestGet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	r := env.run("", "get", "missing")

	assert.Equal(t, ExitSuccess, r.code)
	assert.Equal(t, "error: key not found: missing\n", r.stderr)
	assert.Empty(t, r.stdout)
	assert.Empty(t, env.platform.copied)
}

func TestGet_NoCopy(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("set", "a", "v")

	env.mustRun("get", "a", "--no-copy")
	env.mustRun("echo", "a")
	assert.Empty(t, env.platform.copied)

	env.writeConfig("copy_on_get: false\n")
	env.mustRun("get", "a")
	assert.Empty(t, env.platform.copied)
}

func TestGet_ClipboardUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.platform.copyErr = platform.ErrClipboardUnavailable
	env.mustRun("set", "a", "v")

	r := env.mustRun("get", "a")

	assert.Equal(t, "v\n", r.stdout)
	assert.Contains(t, r.stderr, "warning: clipboard unavailable")
}

func TestGet_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("set", "a", "v")

	r := env.mustRun("--json", "get", "a")

	var resp ValueResponse
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &resp))
	assert.Equal(t, ValueResponse{Key: "a", Value: "v", Copied: true}, resp)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("set", "a", "v")

	env.mustRun("delete", "a")
	r := env.run("", "get", "a")
	assert.Equal(t, ExitSuccess, r.code)
	assert.Contains(t, r.stderr, "key not found: a")

	r = env.run("", "delete", "a")
	assert.Equal(t, ExitSuccess, r.code)
	assert.Contains(t, r.stderr, "key not found: a")
}

func TestList_Golden(t *testing.T) {
	env := newTestEnv(t)
	g := goldie.New(t)

	r := env.mustRun("list")
	g.Assert(t, "list_empty", []byte(r.stdout))

	env.seed()

	r = env.mustRun("list")
	g.Assert(t, "list_all", []byte(r.stdout))

	r = env.mustRun("list", "k")
	g.Assert(t, "list_namespace", []byte(r.stdout))

	r = env.mustRun("list", "k.a")
	g.Assert(t, "list_empty", []byte(r.stdout))
}

func TestList_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	r := env.mustRun("--json", "list", "a")

	var resp ListResponse
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &resp))
	assert.Equal(t, "a", resp.Namespace)
	assert.Equal(t, []string{}, resp.Keys)
}

func TestList_InvalidKey(t *testing.T) {
	env := newTestEnv(t)

	r := env.run("", "list", "word1 word2")
	assert.Equal(t, ExitInvalidKey, r.code)
}

func TestClear(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	r := env.mustRun("clear", "k")
	assert.Equal(t, "Cleared 2 entries\n", r.stdout)

	r = env.mustRun("list")
	assert.Equal(t, "a\nb\nk2.a\n", r.stdout)

	r = env.mustRun("clear", "nope")
	assert.Equal(t, "Cleared 0 entries\n", r.stdout)

	r = env.mustRun("clear")
	assert.Equal(t, "Cleared 3 entries\n", r.stdout)

	r = env.mustRun("list")
	assert.Equal(t, "no entries\n", r.stdout)
}

func TestMove(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("set", "a", "old a")

	env.mustRun("move", "a", "b")

	r := env.mustRun("echo", "b")
	assert.Equal(t, "old a\n", r.stdout)

	r = env.run("", "echo", "a")
	assert.Contains(t, r.stderr, "key not found: a")
}

func TestMove_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("set", "a", "v")

	r := env.run("", "move", "missing", "b")
	assert.Equal(t, ExitNotFound, r.code)
	assert.Equal(t, "error: key not found: missing\n", r.stderr)

	r = env.run("", "move", "a", "b.c.d")
	assert.Equal(t, ExitInvalidKey, r.code)

	r = env.mustRun("echo", "a")
	assert.Equal(t, "v\n", r.stdout)
}

func TestOpen(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("set", "docs", "https://example.com/docs")

	env.mustRun("open", "docs")
	assert.Equal(t, []string{"https://example.com/docs"}, env.platform.opened)

	env.platform.openErr = errors.New("no launcher")
	r := env.run("", "open", "docs")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "no launcher")
}

func TestCorruptDatabase(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.dbPath, []byte("{broken"), 0644))

	r := env.run("", "set", "a", "v")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "error: loading")

	data, err := os.ReadFile(env.dbPath)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("copy_on_get: [oops\n")

	r := env.run("", "list")
	assert.Equal(t, ExitConfigError, r.code)
	assert.Contains(t, r.stderr, "parsing global config")
}

func TestSQLiteDatabase(t *testing.T) {
	env := newTestEnv(t)
	env.dbPath = filepath.Join(t.TempDir(), "blast.db")

	env.mustRun("set", "k.a", "sqlite value")
	r := env.mustRun("echo", "k.a")
	assert.Equal(t, "sqlite value\n", r.stdout)

	r = env.mustRun("--json", "config")
	var resp ConfigResponse
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &resp))
	assert.Equal(t, "sqlite", resp.Backend)
	assert.Equal(t, 1, resp.Entries)
	assert.True(t, resp.Exists)
}

func TestConfig_DoesNotCreateDatabase(t *testing.T) {
	env := newTestEnv(t)

	r := env.mustRun("config")
	assert.Contains(t, r.stdout, "not created yet")
	assert.Contains(t, r.stdout, "(flag)")

	_, err := os.Stat(env.dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestConfig_LeavesDatabaseUntouched(t *testing.T) {
	env := newTestEnv(t)
	compact := `{"a":"1","b":"2"}`
	require.NoError(t, os.WriteFile(env.dbPath, []byte(compact), 0644))

	r := env.mustRun("config")
	assert.Contains(t, r.stdout, "entries:      2\n")

	data, err := os.ReadFile(env.dbPath)
	require.NoError(t, err)
	assert.Equal(t, compact, string(data))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "0 entries", pluralize(0))
	assert.Equal(t, "1 entry", pluralize(1))
	assert.Equal(t, "5 entries", pluralize(5))
}
