package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MrSnakeDoc/index/internal/timer"
)

func newTimerCmd() *cobra.Command {
	var tick time.Duration
	cmd := &cobra.Command{
		Use:   "timer <duration>",
		Short: "Count down in the terminal",
		Example: `  index timer 25m
  index timer 1h2m3s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[0], err)
			}
			if tick <= 0 {
				return errors.New("--tick must be positive")
			}
			c, err := timer.New(d, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			display := newCountdownDisplay(out, d)
			err = c.Run(ctx, tick, display.update)
			display.finish()

			if errors.Is(err, context.Canceled) {
				fmt.Fprintf(out, "stopped with %s left\n", formatRemaining(c.Remaining()))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "time's up")
			return nil
		},
	}
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "refresh interval")
	return cmd
}

// countdownDisplay draws a progress bar on a terminal and rewrites a single
// line anywhere else.
type countdownDisplay struct {
	out   io.Writer
	total time.Duration
	bar   *progressbar.ProgressBar
}

func newCountdownDisplay(out io.Writer, total time.Duration) *countdownDisplay {
	cd := &countdownDisplay{out: out, total: total}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cd.bar = progressbar.NewOptions64(total.Milliseconds(),
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	return cd
}

func (cd *countdownDisplay) update(left time.Duration) {
	if cd.bar == nil {
		fmt.Fprintf(cd.out, "\r%s ", formatRemaining(left))
		return
	}
	cd.bar.Describe(formatRemaining(left))
	_ = cd.bar.Set64((cd.total - left).Milliseconds())
}

func (cd *countdownDisplay) finish() {
	if cd.bar != nil {
		_ = cd.bar.Finish()
	}
	fmt.Fprintln(cd.out)
}

// formatRemaining renders d as HH:MM:SS, rounding up so the display reads
// 00:00:00 only once the countdown is over.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
