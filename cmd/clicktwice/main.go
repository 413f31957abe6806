package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/quantmind-br/clicktwice-go/internal/app"
	"github.com/quantmind-br/clicktwice-go/internal/config"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/manifest"
	"github.com/quantmind-br/clicktwice-go/internal/profile"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
	"github.com/quantmind-br/clicktwice-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	verbose bool

	// Dependencies for testing
	execLookPath = exec.LookPath
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clicktwice",
	Short: "Publish ClickOnce applications with pluggable pre and post steps",
	Long: `clicktwice builds and publishes a ClickOnce project, resolves the
application manifest from the project's assembly attributes and/or the
published deployment descriptor, and runs handlers before and after the build
(cleanup, zip packaging, copy deployment, git tagging, release info).`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			utils.SetGlobalLevel("debug")
		}
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish [project]",
	Short: "Build, publish and run the configured handlers",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPublish,
}

var manifestCmd = &cobra.Command{
	Use:   "manifest [project]",
	Short: "Resolve and print the application manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManifest,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <deploy-dir>",
	Short: "Print the manifest describing a published deployment",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var historyCmd = &cobra.Command{
	Use:   "history [project]",
	Short: "List recorded publish runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.clicktwice/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (pretty, json)")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Publish flags
	addPublishFlags(publishCmd)
	pf := publishCmd.Flags()
	_ = viper.BindPFlag("build.platform", pf.Lookup("platform"))
	_ = viper.BindPFlag("build.configuration", pf.Lookup("configuration"))
	_ = viper.BindPFlag("build.tool", pf.Lookup("tool"))
	_ = viper.BindPFlag("build.timeout", pf.Lookup("timeout"))
	_ = viper.BindPFlag("policy.stop_on_error", pf.Lookup("stop-on-error"))

	// Manifest flags
	mf := manifestCmd.Flags()
	mf.StringP("descriptor", "d", "", "Deployment descriptor file or directory")
	mf.StringP("source", "s", "", "Manifest source (assemblyinfo, appmanifest, both, none)")
	mf.Bool("persist", false, "Write the manifest sidecar")
	mf.StringP("format", "f", "yaml", "Output format (yaml, json)")

	inspectCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")

	historyCmd.Flags().IntP("limit", "n", 10, "Number of runs to show (0 = all)")
	historyCmd.Flags().Bool("clear", false, "Delete all recorded runs")

	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func addPublishFlags(cmd *cobra.Command) {
	pf := cmd.Flags()
	pf.StringP("profile", "p", "", "Publish profile (YAML or JSON)")
	pf.StringP("descriptor", "d", "", "Deployment descriptor file or directory")
	pf.StringP("source", "s", "", "Manifest source (assemblyinfo, appmanifest, both, none)")
	pf.String("platform", "", "Build platform (default AnyCPU)")
	pf.StringP("configuration", "c", "", "Build configuration (default Release)")
	pf.String("tool", "", "Build tool command (default msbuild)")
	pf.Duration("timeout", 0, "Build timeout")
	pf.String("publish-dir", "", "Publish output directory")
	pf.Bool("force", false, "Rebuild before publishing and retry a failed build once")
	pf.Bool("clean", false, "Clean build output after the output handlers ran")
	pf.String("version", "", "Application version to publish")
	pf.Bool("fail-on-error", false, "Fail the run when any handler fails")
	pf.Bool("stop-on-error", false, "Skip the remaining handlers of a phase after a failure")
	pf.Bool("progress", false, "Show a progress bar")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log *utils.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// loadProfile reads the --profile file, or starts from an empty profile,
// and applies the command line on top.
func loadProfile(cmd *cobra.Command, args []string) (*profile.Profile, error) {
	prof := &profile.Profile{}
	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		loaded, err := profile.NewLoader().Load(path)
		if err != nil {
			return nil, err
		}
		prof = loaded
	}
	if len(args) > 0 {
		prof.Project = absPath(args[0])
	}

	flags := cmd.Flags()
	if flags.Changed("descriptor") {
		v, _ := flags.GetString("descriptor")
		prof.Descriptor = absPath(v)
	}
	if flags.Changed("source") {
		prof.Source, _ = flags.GetString("source")
	}
	if flags.Changed("platform") {
		prof.Platform, _ = flags.GetString("platform")
	}
	if flags.Changed("configuration") {
		prof.Configuration, _ = flags.GetString("configuration")
	}
	if flags.Changed("publish-dir") {
		v, _ := flags.GetString("publish-dir")
		prof.PublishDir = absPath(v)
	}
	if flags.Changed("force") {
		prof.ForceRebuild, _ = flags.GetBool("force")
	}
	if flags.Changed("clean") {
		prof.CleanAfterBuild, _ = flags.GetBool("clean")
	}
	if flags.Changed("version") {
		prof.Version, _ = flags.GetString("version")
	}
	if fail, _ := flags.GetBool("fail-on-error"); fail {
		prof.Policy.OnHandlerError = "fail"
	}
	if progress, _ := flags.GetBool("progress"); progress && !contains(prof.Loggers, profile.LoggerProgress) {
		if len(prof.Loggers) == 0 {
			prof.Loggers = []string{profile.LoggerLog}
		}
		prof.Loggers = append(prof.Loggers, profile.LoggerProgress)
	}

	if prof.Project == "" {
		project, err := findProject(".")
		if err != nil {
			return nil, err
		}
		prof.Project = project
	}
	return prof, nil
}

// findProject returns the single project file in dir.
func findProject(dir string) (string, error) {
	var found []string
	for _, pattern := range []string{"*.csproj", "*.vbproj"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", err
		}
		found = append(found, matches...)
	}
	switch len(found) {
	case 0:
		return "", app.ErrNoProject
	case 1:
		return absPath(found[0]), nil
	default:
		return "", fmt.Errorf("several project files in %s, name one explicitly", dir)
	}
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := app.NewLogger(cfg, verbose)

	prof, err := loadProfile(cmd, args)
	if err != nil {
		return err
	}

	publisher, err := app.NewPublisher(cfg, prof, app.Options{Verbose: verbose, Logger: log})
	if err != nil {
		return fmt.Errorf("failed to create publisher: %w", err)
	}
	defer publisher.Close()

	ctx, cancel := signalContext(log)
	defer cancel()

	outcome, err := publisher.Run(ctx)
	printOutcome(cmd.OutOrStdout(), outcome)
	return err
}

func printOutcome(w io.Writer, o *domain.PublishOutcome) {
	if o == nil {
		return
	}
	for _, r := range o.Results {
		fmt.Fprintf(w, "  %-8s %-7s %-10s %s\n", r.Outcome, r.Phase, r.Handler, r.Message)
	}
	if o.SidecarPath != "" {
		fmt.Fprintf(w, "manifest: %s\n", o.SidecarPath)
	}
	fmt.Fprintf(w, "%s in %s (run %s)\n", o.State, o.Duration.Round(time.Millisecond), o.RunID)
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := app.NewLogger(cfg, verbose)

	project := ""
	if len(args) > 0 {
		project = absPath(args[0])
	}
	descriptor, _ := cmd.Flags().GetString("descriptor")

	source := cfg.InformationSource()
	if cmd.Flags().Changed("source") {
		name, _ := cmd.Flags().GetString("source")
		if source, err = domain.ParseInformationSource(name); err != nil {
			return err
		}
	}
	if source.NeedsProject() && project == "" {
		if project, err = findProject("."); err != nil {
			return err
		}
	}

	resolver := manifest.NewResolver(manifest.ResolverOptions{
		ProjectPath:    project,
		DescriptorPath: absPath(descriptor),
		Logger:         log,
	})
	m, err := resolver.Resolve(commandContext(cmd), source)
	if err != nil {
		return err
	}

	if persist, _ := cmd.Flags().GetBool("persist"); persist {
		path, err := resolver.PersistWithExt(m, cfg.Manifest.SidecarExt)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Manifest sidecar written")
	}

	format, _ := cmd.Flags().GetString("format")
	return writeManifest(cmd.OutOrStdout(), m, format)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := utils.NewDefaultLogger()
	if verbose {
		log = utils.NewVerboseLogger()
	}

	m, err := manifest.ForDeployment(commandContext(cmd), absPath(args[0]), log)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return writeManifest(cmd.OutOrStdout(), m, format)
}

func writeManifest(w io.Writer, m domain.AppManifest, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := app.OpenHistory(cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	}

	project := ""
	if len(args) > 0 {
		project = absPath(args[0])
	}
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := store.List(commandContext(cmd), project, limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	for _, e := range entries {
		v := "-"
		if e.Manifest != nil && e.Manifest.AppVersion != nil {
			v = e.Manifest.AppVersion.String()
		}
		fmt.Fprintf(out, "%s  %-9s %-12s %d/%d failed  %s  %s\n",
			e.StartedAt.Local().Format(time.DateTime), e.State, v,
			e.Failed(), len(e.Results), e.RunID, e.ProjectPath)
	}
	return nil
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  "Verifies that the build tool is installed and the configuration and history store are usable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking system dependencies...")
		allPassed := true

		// Check 1: Config file
		fmt.Fprint(out, "  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			cfg = config.Default()
			allPassed = false
		} else {
			fmt.Fprintln(out, "OK")
		}

		// Check 2: Config directory
		fmt.Fprint(out, "  Config directory: ")
		if err := config.EnsureConfigDir(); err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintf(out, "OK (%s)\n", config.ConfigDir())
		}

		// Check 3: Build tool
		fmt.Fprint(out, "  Build tool: ")
		if path := checkBuildTool(cfg.Build.Tool); path != "" {
			fmt.Fprintf(out, "OK (%s)\n", path)
		} else {
			fmt.Fprintf(out, "NOT FOUND (%s)\n", cfg.Build.Tool)
			allPassed = false
		}

		// Check 4: History directory
		fmt.Fprint(out, "  History directory: ")
		dir := utils.ExpandPath(cfg.History.Directory)
		if checkWritableDir(dir) {
			fmt.Fprintf(out, "OK (%s)\n", dir)
		} else {
			fmt.Fprintln(out, "WARN (will be created on first use)")
		}

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All critical checks passed!")
		} else {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkBuildTool returns the resolved path of the build tool's executable
func checkBuildTool(tool string) string {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		return ""
	}
	path, err := execLookPath(fields[0])
	if err != nil {
		return ""
	}
	return path
}

// checkWritableDir checks that dir exists and accepts new files
func checkWritableDir(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	f, err := os.CreateTemp(dir, ".clicktwice_write_*")
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(f.Name())
	return true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	path = utils.ExpandPath(path)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
