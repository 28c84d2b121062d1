package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm prompts the user before a destructive action. --yes answers
// it without prompting.
func confirm(opts *options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.yes {
		return true, nil
	}
	fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes", nil
}
