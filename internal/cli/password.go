package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MrSnakeDoc/index/internal/password"
)

func newPasswordCmd() *cobra.Command {
	var (
		in     password.Input
		list   bool
		prompt bool
	)
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Derive the password for a site from seed material",
		Long: `Derive the password for a site. The same inputs always give the same
password; nothing is stored. The seed defaults to $INDEX_PASSWORD_SEED, or
is asked for with --prompt, so it does not have to appear in shell history.`,
		Example: `  index password --site github.com --email me@example.com
  index password --site bank --length 24 --algorithm sha512`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(password.Algorithms(), "\n"))
				return nil
			}
			if prompt {
				seed, err := readSecret(cmd, "Seed: ")
				if err != nil {
					return fmt.Errorf("failed to read seed: %w", err)
				}
				in.Seed = seed
			}
			pw, err := password.Derive(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Seed, "seed", os.Getenv("INDEX_PASSWORD_SEED"), "secret seed")
	f.StringVar(&in.Salt, "salt", "", "salt")
	f.StringVar(&in.Email, "email", "", "account email")
	f.StringVar(&in.Site, "site", "", "site name")
	f.StringVar(&in.Charset, "charset", password.DefaultCharset, "characters the body is drawn from")
	f.IntVarP(&in.Length, "length", "l", password.DefaultLength, "body length, the separator is added on top")
	f.StringVarP(&in.Algorithm, "algorithm", "a", password.DefaultAlgorithm, "hash algorithm")
	f.BoolVarP(&prompt, "prompt", "p", false, "read the seed from the terminal without echo")
	f.BoolVar(&list, "list-algorithms", false, "list supported algorithms and exit")
	return cmd
}

// readSecret reads one line without echo when stdin is a terminal, and a
// plain line from the command's input otherwise.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
