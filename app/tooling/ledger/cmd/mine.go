package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/spf13/cobra"
)

var (
	difficulty  uint
	hashName    string
	maxAttempts uint64
	verbose     bool
)

var mineCmd = &cobra.Command{
	Use:   "mine [data...]",
	Short: "Mine data into a fresh in-memory chain and print it.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := mineRun(cmd.Context(), os.Stdout, args); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().UintVarP(&difficulty, "difficulty", "d", genesis.Difficulty, "Leading zeros required in a solved digest.")
	mineCmd.Flags().StringVar(&hashName, "hash", digest.AlgorithmSHA256, "Hash algorithm: sha256 or keccak256.")
	mineCmd.Flags().Uint64VarP(&maxAttempts, "max-attempts", "m", 0, "Nonces to try per block, 0 is unbounded.")
	mineCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print mining events.")
}

func mineRun(ctx context.Context, w io.Writer, data []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var ev state.EventHandler
	if verbose {
		ev = func(v string, args ...any) {
			fmt.Fprintf(w, v+"\n", args...)
		}
	}

	st, err := state.New(state.Config{
		Difficulty:    difficulty,
		MaxAttempts:   maxAttempts,
		HashAlgorithm: hashName,
		EvHandler:     ev,
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	for _, d := range data {
		if _, err := st.MineNewBlock(ctx, d); err != nil {
			return fmt.Errorf("mining %q: %w", d, err)
		}
	}

	blocks := st.RetrieveBlocks()
	out := make([]block, len(blocks))
	for i, blk := range blocks {
		out[i] = block{
			Hash:         st.BlockHash(blk),
			Index:        blk.Index,
			TimeStamp:    blk.TimeStamp,
			Data:         blk.Data,
			Proof:        blk.Proof,
			PreviousHash: blk.PreviousHash,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	val := validation{Valid: true, Blocks: len(blocks)}
	if err := st.Validate(); err != nil {
		val.Valid = false
		val.Error = err.Error()
	}
	printValidation(w, val)

	return nil
}
