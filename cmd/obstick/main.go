package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/dori/obstick/internal/app"
	"github.com/dori/obstick/internal/config"
	"github.com/dori/obstick/internal/format"
	"github.com/dori/obstick/internal/journal"
	"github.com/dori/obstick/internal/keys"
	"github.com/dori/obstick/internal/timer"
	"github.com/dori/obstick/internal/ui"
	"github.com/dori/obstick/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "history":
			handleHistory(os.Args[2:])
			return
		case "version":
			fmt.Printf("obstick v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `obstick - countdown/count-up timer writing a text file for OBS

Usage:
  obstick [flags]           Run a timer (prompts when -m/-t are absent)
  obstick history [n]       Show the n most recent sessions (default 10)
  obstick version           Show version
  obstick help              Show this help

Flags:
  -m, --mode <0|1|2>    Timer mode: 0=countdown to time, 1=countdown
                        duration, 2=count up (requires --time)
  -t, --time <spec>     Time value: ss, mm:ss or hh:mm:ss (requires --mode)
  -d, --date <spec>     Date for mode 0: mm/dd or yyyy/mm/dd (empty = today)
  -f, --format <0|1|2>  Display format: 0=shortest, 1=short padded, 2=full
  -o, --output <path>   Output file (default OUTPUT.txt)
      --config <path>   Settings file location
      --theme <name>    Display theme (nord, dracula)
      --plain           Skip the full-screen view
      --no-journal      Do not record sessions

Keys while running:
  r    Restart (asks y/n)
  p    Pause/resume (modes 1 and 2; mode 0 deadlines are absolute)
  q    Quit (asks y/n)

The output file is rewritten in full on every change, so point an OBS
text source at it. Settings live in config.yaml under your user config
directory; flags win over the file.`

	fmt.Println(help)
}

func run(args []string) error {
	flags := pflag.NewFlagSet("obstick", pflag.ContinueOnError)
	modeFlag := flags.IntP("mode", "m", 0, "timer mode: 0=countdown to time, 1=countdown duration, 2=count up")
	timeFlag := flags.StringP("time", "t", "", "time value (ss, mm:ss, or hh:mm:ss)")
	dateFlag := flags.StringP("date", "d", "", "date for mode 0 (mm/dd or yyyy/mm/dd)")
	formatFlag := flags.IntP("format", "f", 0, "display format: 0=shortest, 1=short padded, 2=full")
	outputFlag := flags.StringP("output", "o", "", "output file path")
	configFlag := flags.String("config", "", "settings file path")
	themeFlag := flags.String("theme", "", "theme name (nord, dracula)")
	plainFlag := flags.Bool("plain", false, "run without the full-screen view")
	noJournalFlag := flags.Bool("no-journal", false, "disable the session journal")

	if err := flags.Parse(args); err != nil {
		return err
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags override the settings file.
	if *outputFlag != "" {
		settings.Output = *outputFlag
	}
	if flags.Changed("format") {
		settings.DisplayFormat = *formatFlag
	}
	if *themeFlag != "" {
		settings.Theme = *themeFlag
	}
	if *noJournalFlag {
		settings.Journal = false
	}

	if t, ok := theme.ByName(settings.Theme); ok {
		theme.SetTheme(t)
	}

	style, ok := format.ParseStyle(settings.DisplayFormat)
	if !ok {
		return fmt.Errorf("invalid display format %d (want 0, 1 or 2)", settings.DisplayFormat)
	}

	// Both --mode and --time, or neither. One without the other is a
	// configuration conflict.
	haveMode, haveTime := flags.Changed("mode"), flags.Changed("time")
	if haveMode != haveTime {
		return errors.New("both --mode and --time are required for CLI mode")
	}

	var cfg *timer.Config
	if haveMode {
		mode, ok := timer.ParseMode(*modeFlag)
		if !ok {
			return fmt.Errorf("invalid mode %d (want 0, 1 or 2)", *modeFlag)
		}
		cfg = &timer.Config{
			Mode:     mode,
			TimeSpec: *timeFlag,
			DateSpec: *dateFlag,
			Style:    style,
		}
	}

	interactive := !*plainFlag &&
		term.IsTerminal(int(os.Stdout.Fd())) &&
		term.IsTerminal(int(os.Stdin.Fd()))

	if interactive {
		return runTUI(settings, cfg)
	}
	if cfg == nil {
		return errors.New("both --mode and --time are required without a terminal (or with --plain)")
	}
	return runPlain(settings, *cfg)
}

// runTUI runs the timer inside the full-screen bubbletea program.
func runTUI(settings config.Settings, cfg *timer.Config) error {
	application, err := app.New(settings)
	if err != nil {
		return err
	}
	defer application.Close()

	var model ui.RootModel
	if cfg != nil {
		model = ui.NewRootModelWithConfig(application, *cfg)
	} else {
		model = ui.NewRootModel(application)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if root, ok := final.(ui.RootModel); ok {
		return root.Err()
	}
	return nil
}

// runPlain runs the headless tick loop, with raw-mode key input when
// stdin is a terminal and none otherwise.
func runPlain(settings config.Settings, cfg timer.Config) error {
	application, err := app.New(settings)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eol := "\n"
	var keyCh <-chan rune
	if keys.Available() {
		reader, err := keys.Start()
		if err != nil {
			return err
		}
		defer reader.Stop()
		// Raw mode disables output post-processing; emit explicit
		// carriage returns.
		eol = "\r\n"

		ch := make(chan rune)
		keyCh = ch
		go func() {
			defer close(ch)
			for r := range reader.Keys() {
				if r == 0x03 { // ctrl+c
					stop()
					return
				}
				select {
				case ch <- r:
				case <-ctx.Done():
					return
				}
			}
		}()

		fmt.Printf("Keys: [r]estart, [p]ause, [q]uit%s", eol)
	} else {
		fmt.Fprintf(os.Stderr, "No terminal on stdin, keyboard controls disabled\n")
	}

	var sessionID string
	runner := &timer.Runner{
		Engine:   timer.New(cfg),
		Sink:     application.Sink,
		Interval: settings.TickInterval,
		Keys:     keyCh,
		Echo: func(out string) {
			fmt.Printf("\r%s    ", out)
		},
		Notes: func(note timer.Note) {
			if msg := noteText(note); msg != "" {
				fmt.Printf("%s%s%s", eol, msg, eol)
			}
		},
		OnCycleStart: func(started time.Time) {
			fmt.Printf("Timer started (%s)%s", cfg.Mode, eol)
			if application.Journal != nil {
				if id, err := application.Journal.StartSession(cfg, started); err == nil {
					sessionID = id
				}
			}
		},
		OnCycleEnd: func(ended time.Time, paused time.Duration, outcome timer.Outcome) {
			if application.Journal != nil && sessionID != "" {
				application.Journal.EndSession(sessionID, ended, paused, outcome)
				sessionID = ""
			}
			if outcome == timer.OutcomeCompleted {
				fmt.Printf("%sTime's up!%s", eol, eol)
				application.Notifier.SendTimeUp(fmt.Sprintf("%s timer finished", cfg.Mode))
			}
		},
	}

	err = runner.Run(ctx)
	fmt.Printf("%sTimer stopped.%s", eol, eol)
	return err
}

func noteText(note timer.Note) string {
	switch note {
	case timer.NotePaused:
		return "Paused"
	case timer.NoteResumed:
		return "Resumed"
	case timer.NoteConfirmRestart:
		return "Restart? (y/n): "
	case timer.NoteConfirmQuit:
		return "Quit? (y/n): "
	case timer.NoteCancelled:
		return "Cancelled."
	case timer.NoteRestartRequested:
		return "Restarting..."
	case timer.NoteQuitRequested:
		return "Exiting..."
	}
	return ""
}

func handleHistory(args []string) {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintln(os.Stderr, "Usage: obstick history [n]")
			os.Exit(1)
		}
		limit = n
	}

	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path := settings.JournalPath
	if path == "" {
		path = journal.DefaultPath()
	}

	j, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		os.Exit(1)
	}
	defer j.Close()

	sessions, err := j.Recent(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("%-16s  %-10s  %-10s  %-9s  %-7s  %s\n",
		"STARTED", "MODE", "TIME", "RAN", "PAUSED", "OUTCOME")
	for _, s := range sessions {
		ran := "-"
		if s.EndedAt != nil {
			ran = s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
		}
		outcome := s.Outcome
		if outcome == "" {
			outcome = "open"
		}
		fmt.Printf("%-16s  %-10s  %-10s  %-9s  %-7s  %s\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			s.Mode,
			s.TimeSpec,
			ran,
			(time.Duration(s.PausedSeconds) * time.Second).String(),
			outcome,
		)
	}
}
