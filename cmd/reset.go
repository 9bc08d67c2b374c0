package main

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// Reset clears the persisted application state after confirmation.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		r.writePlain("This clears your credits, unlocked filters, and video library.\n")
		r.writePlain("Type 'yes' to continue: ")

		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	st, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	st.Reset()
	r.logger.Info("application state cleared", "path", r.config.Store.Path)
	r.writePlain("✓ State cleared\n")
	return nil
}
