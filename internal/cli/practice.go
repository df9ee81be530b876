package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/practice"
	"github.com/spf13/cobra"
)

type practiceFlags struct {
	demo  bool
	width int
	color string
}

func newPracticeRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var flags practiceFlags

	cmd := &cobra.Command{
		Use:   "kaiwa",
		Short: "kaiwa — English conversation practice in the terminal",
		Long:  "kaiwa walks through scripted role-play scenarios and gives keyword based feedback on each answer.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup("warn")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := practiceOptions(cfg.Practice, flags, out)
			if err != nil {
				return err
			}
			app := practice.New(in, out, opts)
			if flags.demo {
				app.RunDemo()
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return app.Run(ctx)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.kaiwa/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default warn)")
	cmd.Flags().BoolVar(&flags.demo, "demo", false, "play the first scenario automatically and exit")
	cmd.Flags().IntVar(&flags.width, "width", 0, "wrap output at this many columns")
	cmd.Flags().StringVar(&flags.color, "color", "", "color output (auto, always, never)")

	cmd.AddCommand(newVersionCmd("kaiwa"))

	return cmd
}

// practiceOptions merges flags over the practice config section.
func practiceOptions(pc config.PracticeConfig, flags practiceFlags, out io.Writer) (practice.Options, error) {
	width := pc.Width
	if flags.width != 0 {
		width = flags.width
	}
	if width != 0 && width < 20 {
		return practice.Options{}, fmt.Errorf("width must be at least 20, got %d", width)
	}

	mode := pc.Color
	if flags.color != "" {
		mode = flags.color
	}
	var colored bool
	switch mode {
	case "", "auto":
		colored = isTerminal(out)
	case "always":
		colored = true
	case "never":
		colored = false
	default:
		return practice.Options{}, fmt.Errorf("color must be auto, always or never, got %q", mode)
	}

	return practice.Options{Width: width, Color: colored, Log: log}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ExecutePractice runs the kaiwa root command on the process's terminal.
// It returns practice.ErrInterrupted when the learner presses Ctrl-C.
func ExecutePractice() error {
	return newPracticeRootCmd(os.Stdin, os.Stdout).Execute()
}
