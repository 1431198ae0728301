package main

// Notes:
// - Tests go through runDoctorCmd() and inspect the JSON report.
// - MD2WORD_ADDR is pinned to 127.0.0.1:0 so the listen check does not
//   depend on which ports are busy on the machine.

import (
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func runDoctorJSON(t *testing.T, vars map[string]string, args ...string) (*doctorResult, int, *testEnv) {
	t.Helper()
	if vars == nil {
		vars = map[string]string{}
	}
	if _, ok := vars["MD2WORD_ADDR"]; !ok {
		vars["MD2WORD_ADDR"] = "127.0.0.1:0"
	}
	env := newTestEnv("", vars)
	code := runDoctorCmd(context.Background(), append([]string{"--json"}, args...), env.Environment)

	var result doctorResult
	if err := json.Unmarshal(env.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, env.stdout)
	}
	return &result, code, env
}

func TestRunDoctorCmd_Ready(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	result, code, _ := runDoctorJSON(t, map[string]string{"MD2WORD_OUTPUT_DIR": dir})

	if code != ExitSuccess || result.Status != statusReady {
		t.Fatalf("status = %q code = %d, errors = %v warnings = %v", result.Status, code, result.Errors, result.Warnings)
	}
	if !result.Config.Valid || result.Config.Source != "defaults" {
		t.Errorf("Config = %+v", result.Config)
	}
	if !result.Render.Working {
		t.Error("sample conversion should pass")
	}
	if !result.Server.AddrAvailable || result.Server.Assets != "embedded" {
		t.Errorf("Server = %+v", result.Server)
	}
	if result.Output == nil || !result.Output.Writable {
		t.Errorf("Output = %+v", result.Output)
	}
	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("Env = %+v", result.Env)
	}
}

func TestRunDoctorCmd_Problems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		vars       map[string]string
		wantStatus string
		wantCode   int
		wantMsg    string
	}{
		{
			name:       "raw html warns",
			vars:       map[string]string{"MD2WORD_RAW_HTML": "true"},
			wantStatus: statusWarnings,
			wantCode:   ExitSuccess,
			wantMsg:    "raw HTML",
		},
		{
			name:       "unknown style",
			vars:       map[string]string{"MD2WORD_HIGHLIGHT": "no-such-style"},
			wantStatus: statusErrors,
			wantCode:   ExitGeneral,
			wantMsg:    "highlight",
		},
		{
			name:       "missing config",
			vars:       map[string]string{"MD2WORD_CONFIG": "does-not-exist"},
			wantStatus: statusErrors,
			wantCode:   ExitGeneral,
			wantMsg:    "config",
		},
		{
			name:       "invalid config value",
			vars:       map[string]string{"MD2WORD_LOG_LEVEL": "chatty"},
			wantStatus: statusErrors,
			wantCode:   ExitGeneral,
			wantMsg:    "invalid configuration",
		},
		{
			name:       "missing asset dir",
			vars:       map[string]string{"MD2WORD_ASSET_PATH": "/nonexistent/md2word-assets"},
			wantStatus: statusErrors,
			wantCode:   ExitGeneral,
			wantMsg:    "web assets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, code, _ := runDoctorJSON(t, tt.vars)
			if result.Status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("status = %q code = %d, want %q %d", result.Status, code, tt.wantStatus, tt.wantCode)
			}
			all := strings.ToLower(strings.Join(append(result.Errors, result.Warnings...), "\n"))
			if !strings.Contains(all, strings.ToLower(tt.wantMsg)) {
				t.Errorf("messages %q, want mention of %q", all, tt.wantMsg)
			}
		})
	}
}

func TestRunDoctorCmd_CI(t *testing.T) {
	t.Parallel()

	result, _, _ := runDoctorJSON(t, map[string]string{"GITHUB_ACTIONS": "true", "container": "podman"})
	if !result.Env.CI || !result.Env.Container {
		t.Errorf("Env = %+v, want CI and container detected", result.Env)
	}
}

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	env := newTestEnv("", map[string]string{"MD2WORD_ADDR": "127.0.0.1:0"})
	code := runCLI(t, env, "doctor")

	if code != ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, env.stdout)
	}
	for _, want := range []string{"md2word doctor", "Configuration", "Rendering", "Sample conversion: passed", "Status: Ready"} {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, env.stdout)
		}
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv("", nil)
	if code := runCLI(t, env, "doctor", "--nope"); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}
