package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

type validation struct {
	Valid  bool   `json:"valid"`
	Blocks int    `json:"blocks"`
	Error  string `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Ask the node to validate its chain.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := validateRun(os.Stdout); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(w io.Writer) error {
	var val validation
	if err := get(fmt.Sprintf("%s/v1/chain/validate", url), &val); err != nil {
		return err
	}

	printValidation(w, val)

	return nil
}

func printValidation(w io.Writer, val validation) {
	if val.Valid {
		fmt.Fprintf(w, "chain valid: %d blocks\n", val.Blocks)
		return
	}
	fmt.Fprintf(w, "chain NOT valid: %d blocks: %s\n", val.Blocks, val.Error)
}
