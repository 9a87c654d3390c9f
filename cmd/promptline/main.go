package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Hanaasagi/promptline/cmd"
	"github.com/Hanaasagi/promptline/internal/logger"
	"github.com/Hanaasagi/promptline/internal/measure"
	"github.com/Hanaasagi/promptline/internal/prompt"
	"github.com/Hanaasagi/promptline/internal/session"
	"github.com/Hanaasagi/promptline/internal/shell"
	"github.com/Hanaasagi/promptline/pkg/promptparser"
	"github.com/Hanaasagi/promptline/pkg/ps1parser"
)

const appName = "promptline"

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var appDir = filepath.Join(xdg.StateHome, appName)

// app holds the state shared by all commands of one invocation.
type app struct {
	lookupEnv  func(string) (string, bool)
	executable func() (string, error)
	configPath string
	logPath    string
	// session carries the directory, home and hostname overrides; shell
	// state is filled in from flags.
	session session.Options

	shellName   string
	status      int
	jobs        string
	showVersion bool

	config   *Config
	closeLog func() error
}

func newApp() *app {
	return &app{
		lookupEnv:  os.LookupEnv,
		executable: os.Executable,
		configPath: filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		logPath:    filepath.Join(appDir, appName+".log"),
		closeLog:   func() error { return nil },
	}
}

// setup loads the configuration and starts logging. A broken log file only
// disables logging; the prompt still renders.
func (a *app) setup(c *cobra.Command, _ []string) error {
	config, err := LoadConfig(c.Context(), a.configPath, envconfig.LookuperFunc(a.lookupEnv))
	if err != nil {
		return fmt.Errorf("loading config %s: %w", a.configPath, err)
	}
	a.config = config

	closeLog, err := logger.InitLogger(a.logPath, config.Log.Level)
	a.closeLog = closeLog
	if err != nil {
		fmt.Fprintf(c.ErrOrStderr(), "%s: logging disabled: %v\n", appName, err)
		return nil
	}
	slog.Debug("Loaded config", "path", a.configPath, "shell", config.Shell)
	return nil
}

func (a *app) close() {
	_ = a.closeLog() // nolint: errcheck
}

// shellKind returns the --shell flag, falling back to the configured shell.
func (a *app) shellKind() (shell.Kind, error) {
	name := a.shellName
	if name == "" {
		name = a.config.Shell
	}
	return shell.ParseKind(name)
}

// template picks the template argument over the configured one.
func (a *app) template(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if a.config.Template != "" {
		return a.config.Template
	}
	return promptparser.DefaultTemplate
}

func (a *app) newSession(c *cobra.Command, kind shell.Kind) *session.Session {
	opts := a.session
	opts.Shell = kind
	opts.LastExitStatus = a.status
	if c.Flags().Changed("jobs") {
		jobs := a.jobs
		opts.Jobs = &jobs
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = a.lookupEnv
	}
	return session.New(opts)
}

func (a *app) render(c *cobra.Command, template string, kind shell.Kind) (string, error) {
	out, err := prompt.Render(template, a.newSession(c, kind))
	if err != nil {
		return "", fmt.Errorf("rendering %q: %w", template, err)
	}
	slog.Debug("Rendered prompt", "shell", kind, "template", template)
	return out, nil
}

func (a *app) runRender(c *cobra.Command, args []string) error {
	if a.showVersion {
		fmt.Fprintf(c.OutOrStdout(), "%s version: %s\n", appName, FullVersion)
		return nil
	}

	kind, err := a.shellKind()
	if err != nil {
		return err
	}

	out, err := a.render(c, a.template(args), kind)
	if err != nil {
		return err
	}
	fmt.Fprint(c.OutOrStdout(), out)
	return nil
}

func (a *app) runInit(c *cobra.Command, args []string) error {
	kind, err := shell.ParseKind(args[0])
	if err != nil {
		return err
	}

	exe, err := a.executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	template := ""
	if len(args) > 1 {
		if err := promptparser.Validate(args[1]); err != nil {
			return err
		}
		template = args[1]
	}

	script, err := shell.InitScript(kind, exe, template)
	if err != nil {
		return err
	}
	fmt.Fprint(c.OutOrStdout(), script)
	return nil
}

func (a *app) runPreview(c *cobra.Command, args []string) error {
	out, err := a.render(c, a.template(args), shell.NoWrap)
	if err != nil {
		return err
	}

	width, err := measure.Width(out, shell.NoWrap)
	if err != nil {
		return err
	}

	w := c.OutOrStdout()
	if !isTerminal(w) {
		if out, err = measure.Visible(out, shell.NoWrap); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, out)
	fmt.Fprintf(w, "width: %d\n", width)
	return nil
}

func (a *app) runCheck(c *cobra.Command, args []string) error {
	tokens, err := promptparser.Parse(a.template(args))
	if err != nil {
		return err
	}
	printTokens(c.OutOrStdout(), tokens, 0)
	return nil
}

func runConvert(c *cobra.Command, args []string) error {
	conversion, err := ps1parser.Convert(args[0])
	if err != nil {
		return err
	}
	for _, warning := range conversion.Warnings {
		fmt.Fprintf(c.ErrOrStderr(), "warning: %s\n", warning)
	}
	fmt.Fprintln(c.OutOrStdout(), conversion.Template)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printTokens writes one line per token, indenting conditional branches.
func printTokens(w io.Writer, tokens []promptparser.Token, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, token := range tokens {
		switch token.Type {
		case promptparser.TokenLiteral:
			fmt.Fprintf(w, "%s%s %q\n", indent, token.Type, token.Content)
		case promptparser.TokenStyle:
			fmt.Fprintf(w, "%s%s %s\n", indent, token.Type, token.Style)
		case promptparser.TokenComponent:
			fmt.Fprintf(w, "%s%s %s\n", indent, token.Type, strings.Trim(token.String(), "{}"))
		case promptparser.TokenConditional:
			fmt.Fprintf(w, "%s%s if %s\n", indent, token.Type, token.Condition)
			fmt.Fprintf(w, "%s  then:\n", indent)
			printTokens(w, token.Then, depth+2)
			if token.Else != nil {
				fmt.Fprintf(w, "%s  else:\n", indent)
				printTokens(w, token.Else, depth+2)
			}
		}
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName + " [template]",
		Short: "Render a shell prompt from a template",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Render a shell prompt from a template. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Example:           `  promptline --shell zsh --status $? '{cwd style=short} {green}{git_branch}{reset} $ '`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runRender,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", a.configPath, "Path to the config file")
	rootCmd.PersistentFlags().StringVarP(&a.shellName, "shell", "s", "", "Target shell: zsh, bash or no_wrap (default from config)")
	rootCmd.PersistentFlags().IntVar(&a.status, "status", 0, "Exit status of the last command")
	rootCmd.PersistentFlags().StringVarP(&a.jobs, "jobs", "j", "", "Background job indicator")
	rootCmd.Flags().BoolVarP(&a.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "init <shell> [template]",
			Short: "Print the shell snippet that installs promptline",
			Args:  cobra.RangeArgs(1, 2),
			RunE:  a.runInit,
		},
		&cobra.Command{
			Use:   "preview [template]",
			Short: "Render a template for the terminal and show its width",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runPreview,
		},
		&cobra.Command{
			Use:   "check [template]",
			Short: "Parse a template and print its tokens",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runCheck,
		},
		&cobra.Command{
			Use:   "convert <ps1>",
			Short: "Convert a zsh PS1 string to a template",
			Args:  cobra.ExactArgs(1),
			RunE:  runConvert,
		},
	)

	cmd.SetColorHelp(rootCmd)
	return rootCmd
}

// reportCrashes sends fatal runtime errors to a file next to the log.
func reportCrashes() {
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return
	}
	if f, err := os.Create(filepath.Join(appDir, "crash")); err == nil {
		_ = debug.SetCrashOutput(f, debug.CrashOptions{})
	}
}

func main() {
	// The process renders one prompt and exits.
	debug.SetGCPercent(-1)
	reportCrashes()

	a := newApp()
	err := newRootCmd(a).ExecuteContext(context.Background())
	if err != nil {
		slog.Error("Error executing command", "error", err)
	}
	a.close()

	if err != nil {
		os.Exit(1)
	}
}
