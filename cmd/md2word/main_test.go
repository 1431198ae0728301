package main

// Notes:
// - Commands run through run() with an injected Environment: buffers for
//   stdio and a map for environment lookups, so tests never touch the
//   process environment and can run in parallel.
// - main() itself is not tested; it only wires maxprocs, signals and os.Exit.

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"testing"
)

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an Environment reading stdin from the given string and
// resolving variables from vars only.
func newTestEnv(stdin string, vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: stderr,
			Getenv: func(k string) string { return vars[k] },
			Environ: func() []string {
				list := make([]string, 0, len(vars))
				for k, v := range vars {
					list = append(list, k+"="+v)
				}
				sort.Strings(list)
				return list
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func runCLI(t *testing.T, env *testEnv, args ...string) int {
	t.Helper()
	return run(context.Background(), append([]string{"md2word"}, args...), env.Environment)
}

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command",
			args:       nil,
			wantCode:   ExitUsage,
			wantStderr: "Usage: md2word <command>",
		},
		{
			name:       "version",
			args:       []string{"version"},
			wantCode:   ExitSuccess,
			wantStdout: "md2word " + Version,
		},
		{
			name:       "version flag",
			args:       []string{"--version"},
			wantCode:   ExitSuccess,
			wantStdout: "md2word ",
		},
		{
			name:       "help",
			args:       []string{"help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "help convert",
			args:       []string{"help", "convert"},
			wantCode:   ExitSuccess,
			wantStdout: "--highlight[=style]",
		},
		{
			name:       "help serve",
			args:       []string{"help", "serve"},
			wantCode:   ExitSuccess,
			wantStdout: "--base-path",
		},
		{
			name:       "help unknown",
			args:       []string{"help", "nope"},
			wantCode:   ExitSuccess,
			wantStderr: "Unknown command: nope",
		},
		{
			name:       "unknown command",
			args:       []string{"render"},
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: render",
		},
		{
			name:       "convert -h",
			args:       []string{"convert", "-h"},
			wantCode:   ExitSuccess,
			wantStderr: "Usage: md2word convert",
		},
		{
			name:       "bad flag",
			args:       []string{"convert", "--bogus"},
			wantCode:   ExitUsage,
			wantStderr: "invalid usage",
		},
		{
			name:       "serve with argument",
			args:       []string{"serve", "extra"},
			wantCode:   ExitUsage,
			wantStderr: "serve takes no arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv("", nil)

			code := runCLI(t, env, tt.args...)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, env.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, env.stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, env.stderr)
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"md2word", "convert", "-v"}, true},
		{[]string{"md2word", "serve", "--verbose"}, true},
		{[]string{"md2word", "convert", "a.md"}, false},
		{[]string{"md2word", "convert", "--", "-v"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()
			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestRunConfig(t *testing.T) {
	t.Parallel()

	t.Run("prints effective config with env overrides", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv("", map[string]string{
			"MD2WORD_ADDR":      "0.0.0.0:9999",
			"MD2WORD_HIGHLIGHT": "monokai",
		})

		if code := runCLI(t, env, "config"); code != ExitSuccess {
			t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
		}
		out := env.stdout.String()
		for _, want := range []string{"0.0.0.0:9999", "monokai", "highlight: true"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("warns about unknown variables", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv("", map[string]string{"MD2WORD_ADRESS": "x"})

		runCLI(t, env, "config")

		if !strings.Contains(env.stderr.String(), "unknown environment variable MD2WORD_ADRESS") {
			t.Errorf("stderr = %q", env.stderr)
		}
	})

	t.Run("missing config has hint", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv("", nil)

		code := runCLI(t, env, "config", "-c", "md2word-missing-config-name")

		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(env.stderr.String(), "hint:") {
			t.Errorf("stderr missing hint: %s", env.stderr)
		}
	})

	t.Run("init writes loadable file", func(t *testing.T) {
		t.Parallel()
		path := t.TempDir() + "/md2word.yaml"
		env := newTestEnv("", nil)

		if code := runCLI(t, env, "config", "--init", path); code != ExitSuccess {
			t.Fatalf("init exit code = %d\nstderr: %s", code, env.stderr)
		}

		env2 := newTestEnv("", nil)
		if code := runCLI(t, env2, "config", "-c", path); code != ExitSuccess {
			t.Fatalf("load exit code = %d\nstderr: %s", code, env2.stderr)
		}
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv("", map[string]string{"MD2WORD_LOG_LEVEL": "loud"})

		if code := runCLI(t, env, "config"); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

// Compile-time check that buffers satisfy the writer fields.
var _ io.Writer = (*bytes.Buffer)(nil)
