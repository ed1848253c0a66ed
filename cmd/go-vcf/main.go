package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/tartampluch/go-vcf/internal/config"
	"github.com/tartampluch/go-vcf/internal/export"
	"github.com/tartampluch/go-vcf/internal/i18n"
	"github.com/tartampluch/go-vcf/internal/store"
	"github.com/tartampluch/go-vcf/internal/vcard"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	cmd := &cli.Command{
		Name:  config.AppCommand,
		Usage: config.AppUsage,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: config.FlagVersion, Usage: config.FlagDescVersion},
			&cli.BoolFlag{Name: config.FlagDebug, Usage: config.FlagDescDebug},
			&cli.StringFlag{Name: config.FlagConfig, Usage: config.FlagDescConfig, Value: config.DefaultSettingsFile},
			&cli.StringFlag{Name: config.FlagLang, Usage: config.FlagDescLang},
		},
		Commands: []*cli.Command{
			{Name: config.CmdValidate, Usage: config.CmdDescValidate, ArgsUsage: config.ArgFile, Action: cmdValidate},
			{Name: config.CmdShow, Usage: config.CmdDescShow, ArgsUsage: config.ArgFile, Action: cmdShow},
			{
				Name: config.CmdWrite, Usage: config.CmdDescWrite, ArgsUsage: config.ArgFile,
				Flags:  []cli.Flag{&cli.StringFlag{Name: config.FlagOutput, Usage: config.FlagDescOutput}},
				Action: cmdWrite,
			},
			{
				Name: config.CmdExport, Usage: config.CmdDescExport,
				Flags:  []cli.Flag{&cli.StringFlag{Name: config.FlagOutput, Usage: config.FlagDescOutput}},
				Action: cmdExport,
			},
			{Name: config.CmdIndex, Usage: config.CmdDescIndex, Action: cmdIndex},
			{Name: config.CmdList, Usage: config.CmdDescList, Action: cmdList},
			{
				Name: config.CmdBorn, Usage: config.CmdDescBorn,
				Flags:  []cli.Flag{&cli.IntFlag{Name: config.FlagMonth, Usage: config.FlagDescMonth, Required: true}},
				Action: cmdBorn,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool(config.FlagVersion) {
				printVersion()
				return nil
			}
			return cli.ShowAppHelp(cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// setup performs the per-command initialization shared by every subcommand:
// logging, settings, and the message translator.
func setup(cmd *cli.Command) (*config.Settings, *i18n.Translator, io.Closer, error) {
	logCloser := setupLogging(cmd.Bool(config.FlagDebug))
	logStartupInfo()

	settings := config.DefaultSettings()
	if err := config.LoadSettings(cmd.String(config.FlagConfig), settings); err != nil {
		return nil, nil, logCloser, err
	}

	lang := settings.Language
	if override := cmd.String(config.FlagLang); override != "" {
		lang = override
	}

	translator, err := i18n.New(lang)
	if err != nil {
		return nil, nil, logCloser, err
	}
	return settings, translator, logCloser, nil
}

func closeLog(c io.Closer) {
	if c != nil {
		_ = c.Close() // Best effort close
	}
}

// -----------------------------------------------------------------------------
// Commands: single-card operations
// -----------------------------------------------------------------------------

func cmdValidate(ctx context.Context, cmd *cli.Command) error {
	_, translator, logCloser, err := setup(cmd)
	defer closeLog(logCloser)
	if err != nil {
		return err
	}

	card, err := loadCard(cmd)
	if err == nil {
		err = vcard.ValidateCard(card)
	}
	if err == nil {
		slog.Info(config.MsgCardValid,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, cmd.Args().First(),
		)
	}

	fmt.Println(translator.Describe(err))
	return err
}

func cmdShow(ctx context.Context, cmd *cli.Command) error {
	_, translator, logCloser, err := setup(cmd)
	defer closeLog(logCloser)
	if err != nil {
		return err
	}

	card, err := loadCard(cmd)
	if err == nil {
		err = vcard.ValidateCard(card)
	}
	if err != nil {
		fmt.Println(translator.Describe(err))
		return err
	}

	fmt.Print(card.String())
	return nil
}

func cmdWrite(ctx context.Context, cmd *cli.Command) error {
	_, translator, logCloser, err := setup(cmd)
	defer closeLog(logCloser)
	if err != nil {
		return err
	}

	card, err := loadCard(cmd)
	if err == nil {
		err = vcard.ValidateCard(card)
	}
	if err != nil {
		fmt.Println(translator.Describe(err))
		return err
	}

	if output := cmd.String(config.FlagOutput); output != "" {
		if err := vcard.WriteFile(output, card); err != nil {
			return err
		}
		slog.Info(config.MsgCardWritten,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, output,
		)
		return nil
	}
	return vcard.WriteCard(os.Stdout, card)
}

// loadCard resolves the file argument, checks its extension, and parses it.
func loadCard(cmd *cli.Command) (*vcard.Card, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, fmt.Errorf("%w: %s", vcard.ErrInvalidSource, config.ErrMissFile)
	}
	if !hasCardExtension(path) {
		return nil, fmt.Errorf("%w: %s", vcard.ErrInvalidSource, config.ErrBadExtension)
	}
	return vcard.ParseFile(path)
}

// hasCardExtension reports whether the path carries a recognized card
// extension. The check is case-insensitive and requires a non-empty basename.
func hasCardExtension(path string) bool {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	if ext != config.ExtVCF && ext != config.ExtVCard {
		return false
	}
	return len(base) > len(ext)
}

// -----------------------------------------------------------------------------
// Commands: cards directory & index
// -----------------------------------------------------------------------------

func cmdExport(ctx context.Context, cmd *cli.Command) error {
	settings, _, logCloser, err := setup(cmd)
	defer closeLog(logCloser)
	if err != nil {
		return err
	}

	cards, err := collectCards(settings.CardsDir)
	if err != nil {
		return err
	}

	gen := &export.Generator{
		Clock:           export.RealClock{},
		ReminderTrigger: settings.ReminderTrigger,
	}
	icsData, today, err := gen.BuildCalendar(cards)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, config.FormatTodayCount, today)

	if output := cmd.String(config.FlagOutput); output != "" {
		return os.WriteFile(output, icsData, config.FilePermUserRW)
	}
	_, err = os.Stdout.Write(icsData)
	return err
}

func cmdIndex(ctx context.Context, cmd *cli.Command) error {
	settings, _, logCloser, err := setup(cmd)
	defer closeLog(logCloser)
	if err != nil {
		return err
	}

	db, err := store.Open(settings.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	slog.Info(config.MsgIndexStarted,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyFile, settings.CardsDir,
	)

	if err := walkCards(settings.CardsDir, func(path string, info fs.FileInfo, card *vcard.Card) error {
		return db.IndexCard(filepath.Base(path), info.ModTime(), card)
	}); err != nil {
		return err
	}

	files, contacts, err := db.Counts()
	if err != nil {
		return err
	}

	slog.Info(config.MsgIndexDone,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyCount, contacts,
	)
	fmt.Printf(config.FormatIndexDone, files, contacts)
	return nil
}

func cmdList(ctx context.Context, cmd *cli.Command) error {
	settings, _, logCloser, err := setup(cmd)
	defer closeLog(logCloser)
	if err != nil {
		return err
	}

	db, err := store.Open(settings.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	contacts, err := db.AllContacts()
	if err != nil {
		return err
	}
	printContacts(contacts)
	return nil
}

func cmdBorn(ctx context.Context, cmd *cli.Command) error {
	settings, _, logCloser, err := setup(cmd)
	defer closeLog(logCloser)
	if err != nil {
		return err
	}

	month := int(cmd.Int(config.FlagMonth))

	db, err := store.Open(settings.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	contacts, err := db.BornInMonth(month)
	if err != nil {
		return err
	}

	slog.Info(config.MsgIndexDone,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyMonth, month,
		config.LogKeyCount, len(contacts),
	)
	printContacts(contacts)
	return nil
}

func printContacts(contacts []store.ContactRow) {
	for _, c := range contacts {
		fmt.Printf(config.FormatContactRow, c.Name, c.Birthday, c.Anniversary, c.FileName)
	}
}

// collectCards parses and validates every card file under dir. Invalid files
// are skipped with a warning rather than aborting the run.
func collectCards(dir string) ([]*vcard.Card, error) {
	var cards []*vcard.Card
	err := walkCards(dir, func(path string, info fs.FileInfo, card *vcard.Card) error {
		cards = append(cards, card)
		return nil
	})
	return cards, err
}

// walkCards visits every .vcf/.vcard file under dir, calling fn with each
// parsed and validated card.
func walkCards(dir string, fn func(path string, info fs.FileInfo, card *vcard.Card) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", vcard.ErrInvalidSource, err)
		}
		if d.IsDir() || !hasCardExtension(path) {
			return nil
		}

		card, err := vcard.ParseFile(path)
		if err == nil {
			err = vcard.ValidateCard(card)
		}
		if err != nil {
			slog.Warn(config.MsgSkippedFile,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyFile, path,
				config.LogKeyError, err,
			)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("%w: %v", vcard.ErrInvalidSource, err)
		}
		return fn(path, info, card)
	})
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stderr so command output stays clean on Stdout.
	writers = append(writers, os.Stderr)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		// Use centralized permission constants for security.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
