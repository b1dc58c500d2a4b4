package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/wpapi/apierr"
	"github.com/GriffinCanCode/wpapi/client"
	"github.com/GriffinCanCode/wpapi/internal/config"
	"github.com/GriffinCanCode/wpapi/internal/testutil"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return nil, err
	}

	var result map[string]any
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &result))
	return result, nil
}

func serverArgs(srv *testutil.Server, args ...string) []string {
	base := []string{
		"--url", srv.BaseURL(),
		"--key", testutil.ConsumerKey,
		"--secret", testutil.ConsumerSecret,
		"--log-level", "error",
	}
	return append(base, args...)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "wpcall METHOD URI [ITEM ...]", cmd.Use)

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "version")

	for _, flag := range []string{"config", "url", "key", "secret", "success-level", "log-level", "log-output", "dev", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wpcall dev")
}

func TestRootCommand_RequiresMethodAndURI(t *testing.T) {
	_, err := runCommand(t, "GET")
	require.Error(t, err)
}

func TestRootCommand_Get(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	result, err := runCommand(t, serverArgs(srv, "get", "echo?status=any", "page=2")...)
	require.NoError(t, err)

	assert.Equal(t, "GET", result["method"])
	assert.Equal(t, map[string]any{"status": "any", "page": "2"}, result["query"])
}

func TestRootCommand_PostJSON(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	result, err := runCommand(t, serverArgs(srv, "POST", "echo", "name=Hoodie", "stock:=12", "tags:=[\"a\",\"b\"]")...)
	require.NoError(t, err)

	assert.Equal(t, "POST", result["method"])
	assert.Equal(t, map[string]any{
		"name":  "Hoodie",
		"stock": float64(12),
		"tags":  []any{"a", "b"},
	}, result["json"])
}

func TestRootCommand_Upload(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	result, err := runCommand(t, serverArgs(srv, "POST", "echo", "title=Notes", "media@"+path)...)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"title": "Notes"}, result["fields"])
	files, ok := result["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 1)
	file := files[0].(map[string]any)
	assert.Equal(t, "file", file["field"])
	assert.Equal(t, "notes.txt", file["filename"])
}

func TestRootCommand_NotFound(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	_, err := runCommand(t, serverArgs(srv, "GET", "missing")...)
	require.Error(t, err)
	assert.True(t, apierr.IsNotFound(err))
	assert.Equal(t, ExitNotFound, ExitCode(err))
}

func TestRootCommand_Failure(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	_, err := runCommand(t, serverArgs(srv, "GET", "wp-error")...)
	require.Error(t, err)
	assert.Equal(t, apierr.KindProtocol, apierr.KindOf(err))
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestRootCommand_MissingURL(t *testing.T) {
	t.Setenv("WPAPI_URL", "")

	_, err := runCommand(t, "GET", "echo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api url required")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "wpapi.yaml")
	contents := "api:\n" +
		"  url: " + srv.BaseURL() + "\n" +
		"  consumer_key: " + testutil.ConsumerKey + "\n" +
		"  consumer_secret: " + testutil.ConsumerSecret + "\n" +
		"logging:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	result, err := runCommand(t, "--config", path, "DELETE", "echo", "force=true")
	require.NoError(t, err)

	assert.Equal(t, "DELETE", result["method"])
	assert.Equal(t, map[string]any{"force": "true"}, result["query"])
}

func TestRootCommand_LogOutput(t *testing.T) {
	srv := testutil.NewServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "wpcall.log")
	_, err := runCommand(t, serverArgs(srv, "--log-level", "info", "--log-output", path, "GET", "echo")...)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `[API] Call \"GET echo\"`)
	assert.Contains(t, string(raw), `"severity":"info"`)
}

func TestLoggerConfig(t *testing.T) {
	lc := config.LogConfig{Level: "warning", Output: []string{"stdout"}}

	cfg := loggerConfig(lc, false)
	assert.Equal(t, "warning", cfg.Level)
	assert.False(t, cfg.Development)
	assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)

	dev := loggerConfig(lc, true)
	assert.True(t, dev.Development)
	assert.Equal(t, "warning", dev.Level)
	assert.Equal(t, []string{"stdout"}, dev.OutputPaths)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitNotFound, ExitCode(&apierr.NotFoundError{Method: "GET", URI: "x"}))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}

func TestParseItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	t.Run("query for GET", func(t *testing.T) {
		data, query, err := parseItems("GET", []string{"per_page=10", "email=a@b.com"})
		require.NoError(t, err)
		assert.Empty(t, data)
		assert.Equal(t, client.Query{"per_page": "10", "email": "a@b.com"}, query)
	})

	t.Run("body for POST", func(t *testing.T) {
		data, query, err := parseItems("POST", []string{"name=x", "price:=9.5", "on_sale:=true"})
		require.NoError(t, err)
		assert.Empty(t, query)
		assert.Equal(t, client.Data{"name": "x", "price": 9.5, "on_sale": true}, data)
	})

	t.Run("file", func(t *testing.T) {
		data, _, err := parseItems("POST", []string{"image@" + path})
		require.NoError(t, err)
		file, ok := data["image"].(*client.File)
		require.True(t, ok)
		assert.Equal(t, "a.png", file.Name())
	})

	t.Run("errors", func(t *testing.T) {
		cases := [][]string{
			{"novalue"},
			{"=value"},
			{":=1"},
			{"bad:={"},
			{"image@/does/not/exist"},
		}
		for _, items := range cases {
			_, _, err := parseItems("POST", items)
			assert.Error(t, err, items)
		}
	})

	t.Run("GET with body", func(t *testing.T) {
		_, _, err := parseItems("GET", []string{"n:=1"})
		assert.Error(t, err)
	})
}
