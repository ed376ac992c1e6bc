package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/index/internal/qr"
)

func newQRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Encode and decode QR codes",
	}

	var (
		size   int
		output string
	)
	encode := &cobra.Command{
		Use:     "encode <text>",
		Short:   "Render text as a QR code PNG",
		Example: `  index qr encode https://example.com -o example.png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := qr.Encode(args[0], size)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, png)
		},
	}
	encode.Flags().IntVarP(&size, "size", "s", qr.DefaultSize, "image width and height in pixels")
	encode.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	decode := &cobra.Command{
		Use:   "decode <image|->",
		Short: "Print the text of the QR code in a PNG, JPEG or GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			text, err := qr.Decode(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.AddCommand(encode, decode)
	return cmd
}
