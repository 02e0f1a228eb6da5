package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

type block struct {
	Hash         string `json:"hash"`
	Index        uint64 `json:"index"`
	TimeStamp    string `json:"timestamp"`
	Data         string `json:"data"`
	Proof        int64  `json:"proof"`
	PreviousHash string `json:"previous_hash"`
}

type chain struct {
	LatestBlock string  `json:"latest_block"`
	Pending     int     `json:"pending"`
	Blocks      []block `json:"blocks"`
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the chain held by the node.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := blocksRun(os.Stdout); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}

func blocksRun(w io.Writer) error {
	var ch chain
	if err := get(fmt.Sprintf("%s/v1/blocks/list", url), &ch); err != nil {
		return err
	}

	fmt.Fprintf(w, "Latest Block: %s\n", ch.LatestBlock)
	fmt.Fprintf(w, "Pending     : %d\n", ch.Pending)
	for _, blk := range ch.Blocks {
		fmt.Fprintf(w, "\nBlock %d\n", blk.Index)
		fmt.Fprintf(w, "  Hash    : %s\n", blk.Hash)
		fmt.Fprintf(w, "  Prev    : %s\n", blk.PreviousHash)
		fmt.Fprintf(w, "  Time    : %s\n", blk.TimeStamp)
		fmt.Fprintf(w, "  Proof   : %d\n", blk.Proof)
		fmt.Fprintf(w, "  Data    : %s\n", blk.Data)
	}

	return nil
}

// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
}

func get(url string, dataRecv any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, dataRecv)
}

func decodeResponse(resp *http.Response, dataRecv any) error {
	if resp.StatusCode >= http.StatusBadRequest {
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, er.Error)
	}

	return json.NewDecoder(resp.Body).Decode(dataRecv)
}
