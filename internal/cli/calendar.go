package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/index/internal/calendar"
)

func newCalendarCmd() *cobra.Command {
	var (
		first, last string
		asJSON      bool
		output      string
	)
	cmd := &cobra.Command{
		Use:   "calendar <schedule.xlsx>",
		Short: "Convert a Workday schedule export to an iCalendar file",
		Example: `  index calendar View_My_Courses.xlsx --first 2025-01-13 --last 2025-05-02 -o spring.ics
  index calendar View_My_Courses.xlsx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			courses, err := calendar.ParseWorkbook(in)
			if err != nil {
				return err
			}
			if asJSON {
				var buf bytes.Buffer
				if err := printJSON(&buf, map[string]any{"courses": courses}); err != nil {
					return err
				}
				return writeOutput(cmd, output, buf.Bytes())
			}

			sem, err := calendar.ParseSemester(first, last)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := calendar.EmitICS(&buf, courses, sem); err != nil {
				return err
			}
			return writeOutput(cmd, output, buf.Bytes())
		},
	}

	f := cmd.Flags()
	f.StringVar(&first, "first", os.Getenv("INDEX_SEMESTER_START"), "first day of classes (YYYY-MM-DD)")
	f.StringVar(&last, "last", os.Getenv("INDEX_SEMESTER_END"), "last day of classes (YYYY-MM-DD)")
	f.BoolVar(&asJSON, "json", false, "print the parsed courses instead of a calendar")
	f.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
