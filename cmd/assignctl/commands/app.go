package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/m04kA/SMC-AssignmentService/internal/config"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/assignmentapi"
	"github.com/m04kA/SMC-AssignmentService/pkg/logger"
)

// AppContext зависимости команд assignctl
type AppContext struct {
	Ctx    context.Context
	Cfg    *config.Config
	Client *assignmentapi.Client
	Logger *logger.Logger
	Out    io.Writer
	ErrOut io.Writer

	configPath string
	apiURL     string
	timeout    int
	output     string
	logLevel   string
}

// NewAppContext создает контекст; зависимости заполняются перед запуском команды
func NewAppContext(out, errOut io.Writer) *AppContext {
	return &AppContext{
		Ctx:    context.Background(),
		Out:    out,
		ErrOut: errOut,
	}
}

// NewRootCmd корневая команда со всеми подкомандами
func NewRootCmd(app *AppContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "assignctl",
		Short:         "SiteMedic assignment CLI",
		Long:          "Auto-assign medics, check conflicts and inspect the weekly schedule board of the assignment service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "config.toml", "Path to service config (optional)")
	flags.StringVar(&app.apiURL, "api-url", "", "Assignment service base URL (overrides config)")
	flags.IntVar(&app.timeout, "timeout", 0, "Request timeout in seconds (overrides config)")
	flags.StringVarP(&app.output, "output", "o", FormatYAML, "Output format: yaml or json")
	flags.StringVar(&app.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(AutoAssignCmd(app))
	rootCmd.AddCommand(CheckConflictsCmd(app))
	rootCmd.AddCommand(AssignCmd(app))
	rootCmd.AddCommand(BoardCmd(app))

	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.ErrOut)

	return rootCmd
}

// init загружает конфигурацию (если файл есть), логгер и клиент API
func (app *AppContext) init() error {
	if app.output != FormatYAML && app.output != FormatJSON {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, app.output)
	}

	cfg, err := config.Load(app.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	case err != nil:
		return err
	}
	app.Cfg = cfg

	app.Logger, err = newStderrLogger(app.ErrOut, app.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	baseURL := app.apiURL
	if baseURL == "" {
		baseURL = cfg.AssignmentAPI.URL
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.HTTPPort)
	}

	timeout := app.timeout
	if timeout <= 0 {
		timeout = cfg.AssignmentAPI.Timeout
	}

	app.Client = assignmentapi.NewClient(baseURL, time.Duration(timeout)*time.Second, app.Logger)
	app.Logger.Debug("assignctl: api=%s timeout=%ds", baseURL, timeout)

	return nil
}

// render печатает результат команды в выбранном формате
func (app *AppContext) render(v interface{}) error {
	return render(app.Out, app.output, v)
}

// newStderrLogger логгер CLI пишет в stderr, чтобы не смешиваться с выводом команд
func newStderrLogger(w io.Writer, level string) (*logger.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return logger.NewWithCore(core), nil
}
