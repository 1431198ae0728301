package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  string
	}{
		{"", "Commands:"},
		{"convert", "--highlight[=style]"},
		{"serve", "--base-path"},
		{"config", "--init"},
		{"doctor", "--json"},
		{"completion", "Supported shells:"},
		{"version", "Usage: md2word version"},
		{"help", "Usage: md2word help"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv("", nil)
			args := []string{"help"}
			if tt.topic != "" {
				args = append(args, tt.topic)
			}
			if code := runCLI(t, env, args...); code != ExitSuccess {
				t.Errorf("exit code = %d", code)
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("help %q missing %q:\n%s", tt.topic, tt.want, env.stdout)
			}
		})
	}
}

func TestCommandHelpFlag(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"convert", "serve", "config", "doctor"} {
		t.Run(cmd, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv("", nil)
			if code := runCLI(t, env, cmd, "--help"); code != ExitSuccess {
				t.Errorf("exit code = %d, want %d", code, ExitSuccess)
			}
			if !strings.Contains(env.stderr.String(), "Usage: md2word "+cmd) {
				t.Errorf("stderr missing usage:\n%s", env.stderr)
			}
		})
	}
}
