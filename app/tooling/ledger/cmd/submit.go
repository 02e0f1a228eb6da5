package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type pending struct {
	Status string `json:"status"`
	Entry  struct {
		ID        string `json:"id"`
		Data      string `json:"data"`
		TimeStamp uint64 `json:"timestamp"`
	} `json:"entry"`
}

var submitCmd = &cobra.Command{
	Use:   "submit <data>",
	Short: "Queue data for the node to mine in the background.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := submitRun(os.Stdout, strings.Join(args, " ")); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func submitRun(w io.Writer, data string) error {
	body, err := json.Marshal(struct {
		Data string `json:"data"`
	}{
		Data: data,
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/data/submit", url), "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var p pending
	if err := decodeResponse(resp, &p); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s\n", p.Status, p.Entry.ID)

	return nil
}
