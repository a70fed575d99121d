package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	types "github.com/praskarnam/DSynth/pkg/api/types"
	"github.com/praskarnam/DSynth/pkg/config"
	"github.com/praskarnam/DSynth/pkg/faker"
	"github.com/praskarnam/DSynth/pkg/logging"
	"github.com/praskarnam/DSynth/pkg/registry"
	"github.com/praskarnam/DSynth/pkg/schema"
	"github.com/praskarnam/DSynth/pkg/store"
	"github.com/praskarnam/DSynth/pkg/store/file"
)

const usersSchema = `
name: users
fields:
  - name: id
    dataType: uuid
  - name: age
    dataType: integer
    minValue: 18
    maxValue: 30
  - name: tier
    dataType: tier
seedCount: 4
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Listen = "127.0.0.1:0"
	return cfg
}

// execute runs the root command. Flags keep their values between runs, so
// callers pass every flag their assertions depend on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunGenerate_Stdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.yaml", usersSchema)
	cfg := testConfig(t)

	var out bytes.Buffer
	opts := generateOptions{format: "json", seed: 42, seedSet: true}
	require.NoError(t, runGenerate(context.Background(), &out, cfg, logging.Nop(), opts, []string{path}))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 4, "count defaults to seedCount")
	for _, r := range records {
		assert.GreaterOrEqual(t, r["age"], 18.0)
		assert.LessOrEqual(t, r["age"], 30.0)
		assert.Equal(t, "default_value", r["tier"], "unregistered custom type falls back")
	}

	var again bytes.Buffer
	require.NoError(t, runGenerate(context.Background(), &again, cfg, logging.Nop(), opts, []string{path}))
	assert.Equal(t, out.String(), again.String(), "seeded runs are reproducible")
}

func TestRunGenerate_TypesFileAndStore(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.yaml", usersSchema)
	typesPath := writeFile(t, dir, "types.yaml", "- name: tier\n  expression: \"'gold'\"\n")
	cfg := testConfig(t)

	var out bytes.Buffer
	opts := generateOptions{format: "yaml", count: 2}
	opts.types = append(opts.types, typesPath)
	require.NoError(t, runGenerate(context.Background(), &out, cfg, logging.Nop(), opts, []string{path}))

	var records []map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "gold", records[0]["tier"])

	st := file.New(store.Config{DataDir: cfg.DataDir})
	require.NoError(t, st.Open(context.Background()))
	require.NoError(t, st.CustomTypes().Save(context.Background(), &store.CustomType{Name: "tier", Expression: "'silver'", IsActive: true}))

	out.Reset()
	opts = generateOptions{format: "json", count: 1, withStore: true}
	require.NoError(t, runGenerate(context.Background(), &out, cfg, logging.Nop(), opts, []string{path}))
	assert.Contains(t, out.String(), `"tier": "silver"`)
}

func TestRunGenerate_GlobToDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schemas/users.yaml", usersSchema)
	writeFile(t, dir, "schemas/nested/orders.json", `{"name": "orders", "fields": [{"name": "total", "dataType": "float"}]}`)
	outDir := filepath.Join(t.TempDir(), "out")
	cfg := testConfig(t)

	opts := generateOptions{format: "xml", count: 3, output: outDir}
	pattern := filepath.Join(dir, "schemas", "**", "*.{yaml,json}")
	require.NoError(t, runGenerate(context.Background(), &bytes.Buffer{}, cfg, logging.Nop(), opts, []string{pattern}))

	for _, name := range []string{"users.xml", "orders.xml"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), `<records count="3">`)
	}
}

func TestRunGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	users := writeFile(t, dir, "users.yaml", usersSchema)
	other := writeFile(t, dir, "other.yaml", usersSchema)
	cfg := testConfig(t)
	ctx := context.Background()
	run := func(opts generateOptions, args ...string) error {
		return runGenerate(ctx, &bytes.Buffer{}, cfg, logging.Nop(), opts, args)
	}

	assert.ErrorIs(t, run(generateOptions{format: "json"}, users, other), ErrMultipleToStdout)
	assert.ErrorIs(t, run(generateOptions{format: "json"}, filepath.Join(dir, "*.nothing")), ErrNoSchemas)
	assert.Error(t, run(generateOptions{format: "csv"}, users))
	assert.ErrorIs(t, run(generateOptions{format: "json"}, filepath.Join(dir, "missing.yaml")), config.ErrFileNotFound)

	cfg.Generator.MaxCount = 2
	assert.ErrorContains(t, run(generateOptions{format: "json"}, users), "exceeds maxCount")
}

func TestRunGenerate_SingleFileOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.yaml", usersSchema)
	target := filepath.Join(t.TempDir(), "nested", "users.msgpack")

	opts := generateOptions{format: "msgpack", output: target}
	require.NoError(t, runGenerate(context.Background(), &bytes.Buffer{}, testConfig(t), logging.Nop(), opts, []string{path}))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "")
	b := writeFile(t, dir, "deep/b.yaml", "")

	paths, err := expandPatterns([]string{filepath.Join(dir, "**", "*.yaml"), a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)

	paths, err = expandPatterns([]string{"literal.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"literal.yaml"}, paths)
}

func TestRunTestType(t *testing.T) {
	jsonOutput = false
	var out bytes.Buffer
	seed := int64(42)
	def := registry.Definition{Name: "die", Expression: "random.int(1, 6)"}
	require.NoError(t, runTestType(&out, def, 3, &seed))

	var again bytes.Buffer
	require.NoError(t, runTestType(&again, def, 3, &seed))
	assert.Equal(t, out.String(), again.String())
	assert.Len(t, bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n")), 3)

	err := runTestType(&bytes.Buffer{}, registry.Definition{Expression: "random.int(9, 1)"}, 1, nil)
	assert.ErrorContains(t, err, "failed")
	assert.ErrorIs(t, runTestType(&bytes.Buffer{}, registry.Definition{Expression: " "}, 1, nil), ErrExpressionRequired)
}

func TestRunTestType_JSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var out bytes.Buffer
	require.NoError(t, runTestType(&out, registry.Definition{Expression: "'fixed'"}, 1, nil))
	var res types.TestResultResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "fixed", res.SampleData)
}

func TestPrintCatalog(t *testing.T) {
	jsonOutput = false
	var out bytes.Buffer
	require.NoError(t, printCatalog(&out))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "ip_address")

	jsonOutput = true
	defer func() { jsonOutput = false }()
	out.Reset()
	require.NoError(t, printCatalog(&out))
	var catalog []schema.TypeInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &catalog))
	assert.Equal(t, schema.Catalog(), catalog)
}

func TestPrintMethods(t *testing.T) {
	jsonOutput = false
	var out bytes.Buffer
	require.NoError(t, printMethods(&out))
	assert.Contains(t, out.String(), "faker.email\n")

	jsonOutput = true
	defer func() { jsonOutput = false }()
	out.Reset()
	require.NoError(t, printMethods(&out))
	var methods []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &methods))
	assert.Equal(t, faker.Methods(), methods)
}

func TestStartServer_WatchReloadsTypes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Watch = true
	srv, err := startServer(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	defer func() { require.NoError(t, srv.shutdown()) }()

	resp, err := http.Get("http://" + srv.api.Addr() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	writeFile(t, cfg.DataDir, store.CustomTypesFile, `[{"id": "1", "name": "tier", "expression": "'gold'"}]`)
	assert.Eventually(t, func() bool {
		names := srv.gen.TypeNames()
		return len(names) == 1 && names[0] == "tier"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	var out bytes.Buffer
	go func() { errCh <- runServe(ctx, &out, cfg, logging.Nop()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--json=true")
	require.NoError(t, err)
	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Go)

	out, err = execute(t, "version", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "dsynth ")
}

func TestDataCommands(t *testing.T) {
	dir := t.TempDir()
	st := file.New(store.Config{DataDir: dir})
	require.NoError(t, st.Open(context.Background()))
	require.NoError(t, st.Schemas().Save(context.Background(), &schema.Schema{Name: "users"}))

	backupDir := t.TempDir()
	out, err := execute(t, "data", "backup", backupDir, "--data-dir", dir, "--json=true")
	require.NoError(t, err)
	var snap store.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.FileExists(t, snap.SchemasPath)

	_, err = execute(t, "data", "clear", "--data-dir", dir, "--yes=false")
	assert.ErrorIs(t, err, ErrClearNotConfirmed)

	_, err = execute(t, "data", "clear", "--data-dir", dir, "--yes=true", "--json=false")
	require.NoError(t, err)

	_, err = execute(t, "data", "restore", "--data-dir", dir, "--schemas", snap.SchemasPath, "--types", snap.CustomTypesPath)
	require.NoError(t, err)

	out, err = execute(t, "data", "export", "--data-dir", dir, "--json=true")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	data, err := os.ReadFile(snap.SchemasPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"users"`)
	assert.Equal(t, filepath.Join(dir, "exports"), filepath.Dir(snap.SchemasPath))

	out, err = execute(t, "types", "--custom", "--data-dir", dir, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "No custom types")
}

func TestGenerateCommand_LogFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.yaml", usersSchema)
	logPath := filepath.Join(dir, "logs", "dsynth.log")
	t.Cleanup(func() {
		closeLogSink()
		_ = rootCmd.PersistentFlags().Set("log-file", "")
	})

	out, err := execute(t, "generate", path, "--count", "2", "--data-dir", dir, "--log-file", logPath, "--log-level", "info")
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 2)

	closeLogSink()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"generated records"`)
	assert.Contains(t, string(data), `"schema":"users"`)
}

func TestResolveVersion(t *testing.T) {
	base := VersionOutput{Version: "dev", Commit: "none", Date: "unknown"}

	v := resolveVersion(base, nil)
	assert.Equal(t, "dev", v.Version)
	assert.NotEmpty(t, v.Go)

	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2024-03-10T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	v = resolveVersion(base, info)
	assert.Equal(t, "v1.2.3", v.Version)
	assert.Equal(t, "abc123-dirty", v.Commit)
	assert.Equal(t, "2024-03-10T12:00:00Z", v.Date)

	v = resolveVersion(VersionOutput{Version: "0.9.0", Commit: "fixed", Date: "today"}, info)
	assert.Equal(t, "fixed-dirty", v.Commit)
	assert.Equal(t, "today", v.Date)
	assert.Contains(t, v.String(), "dsynth v0.9.0 (fixed-dirty, today)")
}
