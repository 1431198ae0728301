package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2word"
	"github.com/alnah/go-md2word/internal/assets"
	"github.com/alnah/go-md2word/internal/config"
	"github.com/alnah/go-md2word/internal/hints"
)

// Doctor statuses, from best to worst.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorSample is converted once to prove the pipeline works end to end.
const doctorSample = "# Check\n\nSome **bold** text.\n\n```go\nfunc main() {}\n```"

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Config   configInfo  `json:"config"`
	Render   renderInfo  `json:"render"`
	Server   serverInfo  `json:"server"`
	Env      envInfo     `json:"environment"`
	Output   *outputInfo `json:"output,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type configInfo struct {
	Source string `json:"source"` // config name, or "defaults"
	Valid  bool   `json:"valid"`
}

type renderInfo struct {
	Highlight      bool   `json:"highlight"`
	HighlightStyle string `json:"highlight_style,omitempty"`
	RawHTML        bool   `json:"raw_html"`
	Working        bool   `json:"working"`
}

type serverInfo struct {
	Addr          string `json:"addr"`
	AddrAvailable bool   `json:"addr_available"`
	Assets        string `json:"assets"` // custom path, or "embedded"
}

type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

type outputInfo struct {
	Dir      string `json:"dir"`
	Writable bool   `json:"writable"`
}

// registerDoctorFlags adds the doctor command flags to fs.
func registerDoctorFlags(fs *flag.FlagSet, f *doctorFlags) {
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addCommonFlags(fs, &f.common)
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", stderr, printDoctorUsage)
	registerDoctorFlags(fs, f)

	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: doctor takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Warnings still exit 0; errors exit 1.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(ctx, flags, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, flags *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Env: envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}
	checkEnvironment(result, env)

	if cfg := checkConfig(result, flags, env); cfg != nil {
		checkRender(ctx, result, cfg)
		checkServer(result, cfg)
		checkOutput(result, cfg)
	}

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	default:
		result.Status = statusReady
	}
	return result
}

// checkConfig loads and validates the effective configuration.
// Returns nil when later checks cannot run.
func checkConfig(result *doctorResult, flags *doctorFlags, env *Environment) *config.Config {
	result.Config.Source = flags.common.config
	if result.Config.Source == "" {
		result.Config.Source = env.Getenv("MD2WORD_CONFIG")
	}
	if result.Config.Source == "" {
		result.Config.Source = "defaults"
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return nil
	}
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, "invalid configuration: "+err.Error())
		return nil
	}
	result.Config.Valid = true
	return cfg
}

// checkRender builds the converter and runs a sample through it.
func checkRender(ctx context.Context, result *doctorResult, cfg *config.Config) {
	result.Render.Highlight = cfg.Render.Highlight
	result.Render.RawHTML = cfg.Render.RawHTML
	if cfg.Render.Highlight {
		result.Render.HighlightStyle = cfg.Render.HighlightStyle
	}

	conv, err := newConverter(cfg)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	if _, err := conv.Convert(ctx, md2word.Input{Markdown: doctorSample}); err != nil {
		result.Errors = append(result.Errors, "sample conversion failed: "+err.Error())
		return
	}
	result.Render.Working = true

	if cfg.Render.RawHTML {
		result.Warnings = append(result.Warnings, "raw HTML passthrough is on; only enable it for trusted input")
	}
}

// checkServer verifies the listen address and the web assets.
func checkServer(result *doctorResult, cfg *config.Config) {
	result.Server.Addr = cfg.Server.Addr
	result.Server.Assets = "embedded"

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("cannot listen on %s: %v", cfg.Server.Addr, err))
	} else {
		_ = ln.Close()
		result.Server.AddrAvailable = true
	}

	if cfg.Assets.BasePath == "" {
		return
	}
	result.Server.Assets = cfg.Assets.BasePath
	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, "web assets: "+err.Error())
		return
	}
	if _, err := assets.RenderPage(resolver, assets.IndexPage, assets.PageData{Version: Version}); err != nil {
		result.Errors = append(result.Errors, "web assets: "+err.Error())
	}
}

// checkOutput verifies the default output directory accepts files.
func checkOutput(result *doctorResult, cfg *config.Config) {
	dir := cfg.Output.DefaultDir
	if dir == "" {
		return
	}
	result.Output = &outputInfo{Dir: dir}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("output directory %s: %v", dir, err))
		return
	}
	f, err := os.CreateTemp(dir, ".md2word-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("output directory %s is not writable", dir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.Output.Writable = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container = hints.IsInContainer() ||
		env.Getenv("container") != "" ||
		env.Getenv("KUBERNETES_SERVICE_HOST") != ""

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2word doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	if r.Config.Valid {
		fmt.Fprintln(w, "Rendering")
		if r.Render.Highlight {
			fmt.Fprintf(w, "  [OK] Highlighting: %s\n", r.Render.HighlightStyle)
		} else {
			fmt.Fprintln(w, "  [OK] Highlighting: off")
		}
		if r.Render.Working {
			fmt.Fprintln(w, "  [OK] Sample conversion: passed")
		} else {
			fmt.Fprintln(w, "  [ERROR] Sample conversion: failed")
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Server")
		if r.Server.AddrAvailable {
			fmt.Fprintf(w, "  [OK] Address %s: available\n", r.Server.Addr)
		} else {
			fmt.Fprintf(w, "  [WARN] Address %s: unavailable\n", r.Server.Addr)
		}
		fmt.Fprintf(w, "  [OK] Web assets: %s\n", r.Server.Assets)
		fmt.Fprintln(w)

		if r.Output != nil {
			fmt.Fprintln(w, "Output")
			if r.Output.Writable {
				fmt.Fprintf(w, "  [OK] %s: writable\n", r.Output.Dir)
			} else {
				fmt.Fprintf(w, "  [ERROR] %s: not writable\n", r.Output.Dir)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2word doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the configuration, renderer, listen address and output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}
