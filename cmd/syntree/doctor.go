package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	syntree "github.com/alnah/go-syntree"
	"github.com/alnah/go-syntree/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// versionProbeTimeout bounds "<renderer> --version".
const versionProbeTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"`
	Renderer rendererInfo `json:"renderer"`
	Chrome   chromeInfo   `json:"chrome"`
	Output   outputInfo   `json:"output"`
	Env      envInfo      `json:"environment"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// rendererInfo holds external renderer detection results.
type rendererInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results. Chrome is only
// needed for PDF export.
type chromeInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// outputInfo holds renderer output directory checks.
type outputInfo struct {
	Dir      string `json:"dir"`
	Writable bool   `json:"writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print the report as JSON")
	var common commonFlags
	var rf rendererFlags
	fs.StringVarP(&common.config, "config", "c", "", "config file name or path")
	fs.StringVar(&rf.command, "renderer", "", "renderer binary name or path")
	fs.StringVar(&rf.outputDir, "output-dir", "", "base directory for renderer output")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	cfg, err := loadSettings(common, rf)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	result := runDoctor(env, cfg.Renderer.Command, cfg.Renderer.OutputDir)

	if *jsonOutput {
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
func runDoctor(env *Environment, command, outputDir string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkRenderer(env, result, command)
	checkChrome(result)
	checkOutputDir(result, outputDir)
	checkEnvironment(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkRenderer locates the renderer and asks it for its version.
func checkRenderer(env *Environment, result *doctorResult, command string) {
	result.Renderer.Command = command

	lookPath := env.LookPath
	if lookPath == nil {
		lookPath = execLookPath
	}
	path, err := lookPath(command)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Renderer %q not found. Install it with: gem install rsyntaxtree", command))
		return
	}
	result.Renderer.Found = true
	result.Renderer.Path = path

	runner := env.Runner
	if runner == nil {
		runner = &syntree.ExecRunner{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), versionProbeTimeout)
	defer cancel()

	stdout, _, err := runner.Run(ctx, path, "--version")
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get renderer version: %v", err))
		return
	}
	result.Renderer.Version = strings.TrimSpace(stdout)
}

// checkChrome detects Chrome/Chromium. Missing Chrome only disables PDF.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; --pdf will download one on first use or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
}

// checkOutputDir verifies the renderer can write its per-request directories.
func checkOutputDir(result *doctorResult, dir string) {
	result.Output.Dir = dir
	if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil || !fileutil.DirWritable(dir) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory not writable: %s", dir))
		return
	}
	result.Output.Writable = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --pdf")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("SYNTREE_CONTAINER") == "1" {
		return true, "SYNTREE_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// doctorStyles colors report markers. Colors are dropped when w is not a
// terminal.
type doctorStyles struct {
	heading lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

func newDoctorStyles(w io.Writer) doctorStyles {
	r := lipgloss.NewRenderer(w)
	return doctorStyles{
		heading: r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	s := newDoctorStyles(w)
	ok := s.ok.Render("[OK]")
	warn := s.warn.Render("[WARN]")
	bad := s.err.Render("[ERROR]")

	fmt.Fprintln(w, s.heading.Render("syntree doctor"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.heading.Render("Renderer"))
	if r.Renderer.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Renderer.Path)
		if r.Renderer.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", ok, r.Renderer.Version)
		}
	} else {
		fmt.Fprintf(w, "  %s %s not found\n", bad, r.Renderer.Command)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.heading.Render("Chrome/Chromium (PDF only)"))
	if r.Chrome.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Chrome.Path)
	} else {
		fmt.Fprintf(w, "  %s Not found\n", warn)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.heading.Render("Environment"))
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	if r.Output.Writable {
		fmt.Fprintf(w, "  %s Output directory: %s\n", ok, r.Output.Dir)
	} else {
		fmt.Fprintf(w, "  %s Output directory not writable: %s\n", bad, r.Output.Dir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, s.heading.Render("Warnings:"))
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, msg)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, s.heading.Render("Errors:"))
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", bad, msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
