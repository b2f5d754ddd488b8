package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/listbench/internal/cliconfig"
)

// syncBuffer lets the test read what a running command writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"CONTAINER", "REPORT", "LOG_LEVEL", "LOG_FORMAT", "WATCH", "DEBOUNCE"} {
		t.Setenv(cliconfig.EnvPrefix+k, "")
	}
}

func runCommand(ctx context.Context, args ...string) (stdout, stderr *syncBuffer, err error) {
	stdout, stderr = &syncBuffer{}, &syncBuffer{}
	cmd := newRootCommand(&app{cfg: cliconfig.DefaultConfig()})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err = execute(ctx, cmd, args)
	return stdout, stderr, err
}

func TestRoot_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantParse bool
	}{
		{name: "A build and sum", args: []string{"5", "1"}},
		{name: "B build only", args: []string{"5", "0"}},
		{name: "C empty with sum", args: []string{"0", "1"}},
		{name: "D non numeric", args: []string{"abc", "1"}, wantParse: true},
		{name: "E missing flag", args: []string{"5"}, wantParse: true},
		{name: "negative n builds empty", args: []string{"-3", "1"}},
		{name: "negative sum flag sums", args: []string{"5", "-1"}},
		{name: "both negative", args: []string{"-3", "-1"}},
		{name: "negative after separator", args: []string{"--", "-3", "1"}},
		{name: "flags after negative n", args: []string{"-3", "1", "--container", "map"}},
		{name: "map workload", args: []string{"--container", "map", "5", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			stdout, stderr, err := runCommand(context.Background(), tt.args...)

			if tt.wantParse {
				var perr *cliconfig.ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("error = %v, want *cliconfig.ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stdout.String() != "" {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
			if stderr.String() != "" {
				t.Errorf("stderr = %q, want empty at default log level", stderr.String())
			}
		})
	}
}

func TestRoot_Report(t *testing.T) {
	isolate(t)
	_, stderr, err := runCommand(context.Background(), "--report", "--log-level", "info", "--log-format", "json", "5", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stderr.String()
	if !strings.Contains(out, `"sum":10`) {
		t.Errorf("report %q should contain the sum", out)
	}
	if !strings.Contains(out, `"container":"list"`) {
		t.Errorf("report %q should name the container", out)
	}
}

func TestRoot_ReportAtDefaultLevel(t *testing.T) {
	isolate(t)
	_, stderr, err := runCommand(context.Background(), "--report", "--log-format", "json", "5", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), `"sum":10`) {
		t.Errorf("stderr = %q, want the report without --log-level", stderr.String())
	}

	_, stderr, err = runCommand(context.Background(), "--report", "--log-level", "error", "5", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr.String() != "" {
		t.Errorf("stderr = %q, want an explicit error level to silence the report", stderr.String())
	}
}

func TestRoot_NegativeArgsReport(t *testing.T) {
	isolate(t)
	_, stderr, err := runCommand(context.Background(), "-3", "-1", "--report", "--log-format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stderr.String()
	if !strings.Contains(out, `"len":0`) || !strings.Contains(out, `"sum":0`) {
		t.Errorf("stderr = %q, want an empty summed list", out)
	}
}

func TestRoot_InvalidContainer(t *testing.T) {
	isolate(t)
	_, _, err := runCommand(context.Background(), "--container", "tree", "5", "1")
	if !errors.Is(err, cliconfig.ErrUnknownContainer) {
		t.Errorf("error = %v, want ErrUnknownContainer", err)
	}
}

func TestRoot_ConfigFileAndEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "container = \"map\"\nreport = true\nlog_level = \"info\"\nlog_format = \"json\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, stderr, err := runCommand(context.Background(), "--config", path, "4", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), `"container":"map"`) || !strings.Contains(stderr.String(), `"sum":10`) {
		t.Errorf("stderr = %q, want a map report summing to 10", stderr.String())
	}

	t.Setenv("LISTBENCH_CONTAINER", "list")
	_, stderr, err = runCommand(context.Background(), "--config", path, "4", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), `"container":"list"`) || !strings.Contains(stderr.String(), `"sum":6`) {
		t.Errorf("stderr = %q, want env to switch the run to list", stderr.String())
	}
}

func TestRoot_ParseErrorBeforeConfig(t *testing.T) {
	isolate(t)
	_, _, err := runCommand(context.Background(), "--config", "/nonexistent/config.toml", "x", "1")
	var perr *cliconfig.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *cliconfig.ParseError", err)
	}
}

func TestRoot_WatchRequiresConfigFile(t *testing.T) {
	isolate(t)
	_, _, err := runCommand(context.Background(), "--watch", "--config", filepath.Join(t.TempDir(), "none.toml"), "1", "1")
	if err == nil {
		t.Fatal("expected an error when watching a missing config file")
	}
}

func TestRoot_WatchReruns(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	write("report = true\nlog_level = \"info\"\nlog_format = \"json\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stderr := &syncBuffer{}
	cmd := newRootCommand(&app{cfg: cliconfig.DefaultConfig()})
	cmd.SetOut(&syncBuffer{})
	cmd.SetErr(stderr)
	args := []string{"--watch", "--debounce", "20ms", "--config", path, "4", "1"}

	done := make(chan error, 1)
	go func() { done <- execute(ctx, cmd, args) }()

	waitFor := func(substr string) {
		t.Helper()
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			if strings.Contains(stderr.String(), substr) {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("stderr never contained %q: %s", substr, stderr.String())
	}

	waitFor("watching for changes")
	write("container = \"map\"\nreport = true\nlog_level = \"info\"\nlog_format = \"json\"\n")
	waitFor(`"container":"map"`)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v, want nil after cancel", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
