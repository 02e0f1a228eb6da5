package state_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func ifErrFailNow(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
}

// =============================================================================

func TestGenesis(t *testing.T) {
	st, err := state.New(state.Config{})
	ifErrFailNow(t, err)

	t.Log("Given the need to start a chain with a genesis block.")
	{
		t.Logf("\tTest 0:\tWhen constructing a new ledger.")
		{
			blocks := st.RetrieveBlocks()
			if len(blocks) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould have exactly one block, got %d.", failed, len(blocks))
			}
			t.Logf("\t%s\tTest 0:\tShould have exactly one block.", success)

			gen := blocks[0]
			if gen.Index != 1 || gen.PreviousHash != "0" || gen.Data != "I am the beginning and the end" || gen.Proof != genesis.Proof {
				t.Fatalf("\t%s\tTest 0:\tShould have the fixed genesis fields: %+v", failed, gen)
			}
			t.Logf("\t%s\tTest 0:\tShould have the fixed genesis fields.", success)

			if !st.IsValid() {
				t.Fatalf("\t%s\tTest 0:\tShould be a valid chain: %v", failed, st.Validate())
			}
			t.Logf("\t%s\tTest 0:\tShould be a valid chain.", success)

			if st.RetrievePuzzle().Difficulty() != 4 {
				t.Fatalf("\t%s\tTest 0:\tShould default to a difficulty of 4.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould default to a difficulty of 4.", success)
		}
	}
}

func TestMineTwoBlocks(t *testing.T) {
	st, err := state.New(state.Config{})
	ifErrFailNow(t, err)

	t.Log("Given the need to mine blocks on a fresh chain.")
	{
		t.Logf("\tTest 0:\tWhen mining \"a\" then \"b\".")
		{
			for i, data := range []string{"a", "b"} {
				before := st.RetrieveLatestBlock()
				count := len(st.RetrieveBlocks())

				block, err := st.MineNewBlock(context.Background(), data)
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to mine block %d: %v", failed, i, err)
				}
				t.Logf("\t%s\tTest 0:\tShould be able to mine block %d.", success, i)

				if got := len(st.RetrieveBlocks()); got != count+1 {
					t.Fatalf("\t%s\tTest 0:\tShould grow the chain by one, got %d.", failed, got)
				}
				t.Logf("\t%s\tTest 0:\tShould grow the chain by one.", success)

				if block.Index != uint64(count+1) {
					t.Fatalf("\t%s\tTest 0:\tShould get index %d, got %d.", failed, count+1, block.Index)
				}
				t.Logf("\t%s\tTest 0:\tShould get the next index.", success)

				if block.PreviousHash != before.Hash(digest.SHA256) {
					t.Fatalf("\t%s\tTest 0:\tShould link to the previous latest block.", failed)
				}
				t.Logf("\t%s\tTest 0:\tShould link to the previous latest block.", success)
			}

			blocks := st.RetrieveBlocks()
			if len(blocks) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould have a 3 block chain, got %d.", failed, len(blocks))
			}
			t.Logf("\t%s\tTest 0:\tShould have a 3 block chain.", success)

			if blocks[2].PreviousHash != st.BlockHash(blocks[1]) || blocks[1].PreviousHash != st.BlockHash(blocks[0]) {
				t.Fatalf("\t%s\tTest 0:\tShould have every block linked to its parent.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have every block linked to its parent.", success)

			for i := 1; i < len(blocks); i++ {
				input := database.DigestInput(blocks[i].Proof, blocks[i-1].Proof, blocks[i].Index, blocks[i].Data)
				if hash := digest.Hex(digest.SHA256, input); !strings.HasPrefix(hash, "0000") {
					t.Fatalf("\t%s\tTest 0:\tShould have proof %d solve the puzzle: %s", failed, blocks[i].Proof, hash)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould have every proof solve the puzzle.", success)

			for i := 0; i < 3; i++ {
				if err := st.Validate(); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould validate the chain: %v", failed, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould validate the chain on repeated calls.", success)
		}
	}
}

func TestMineConcurrent(t *testing.T) {
	st, err := state.New(state.Config{Difficulty: 2})
	ifErrFailNow(t, err)

	const miners = 8

	t.Log("Given the need to mine from many goroutines at once.")
	{
		t.Logf("\tTest 0:\tWhen %d goroutines mine at the same time.", miners)
		{
			var wg sync.WaitGroup
			wg.Add(miners)

			errs := make(chan error, miners)
			for i := 0; i < miners; i++ {
				go func() {
					defer wg.Done()
					if _, err := st.MineNewBlock(context.Background(), "data"); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine.", success)

			if n := len(st.RetrieveBlocks()); n != miners+1 {
				t.Fatalf("\t%s\tTest 0:\tShould have %d blocks, got %d.", failed, miners+1, n)
			}
			t.Logf("\t%s\tTest 0:\tShould have every block appended.", success)

			if err := st.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate the chain.", success)
		}
	}
}

func TestMineStops(t *testing.T) {
	t.Log("Given the need to stop mining that can't finish.")
	{
		t.Logf("\tTest 0:\tWhen the search budget is spent.")
		{
			st, err := state.New(state.Config{Difficulty: 64, MaxAttempts: 100})
			ifErrFailNow(t, err)

			if _, err := st.MineNewBlock(context.Background(), "a"); !errors.Is(err, database.ErrNoProofFound) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrNoProofFound: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrNoProofFound.", success)

			if n := len(st.RetrieveBlocks()); n != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain untouched, got %d blocks.", failed, n)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain untouched.", success)
		}

		t.Logf("\tTest 1:\tWhen the context is already cancelled.")
		{
			st, err := state.New(state.Config{})
			ifErrFailNow(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := st.MineNewBlock(ctx, "a"); !errors.Is(err, context.Canceled) {
				t.Fatalf("\t%s\tTest 1:\tShould get context.Canceled: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get context.Canceled.", success)
		}
	}
}

func TestPending(t *testing.T) {
	st, err := state.New(state.Config{Difficulty: 2})
	ifErrFailNow(t, err)

	t.Log("Given the need to mine submitted data in order.")
	{
		t.Logf("\tTest 0:\tWhen submitting two payloads without a worker.")
		{
			if _, err := st.MinePendingBlock(context.Background()); !errors.Is(err, state.ErrNoPendingData) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrNoPendingData: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrNoPendingData on an empty mempool.", success)

			st.SubmitData("first")
			st.SubmitData("second")
			if st.QueryMempoolLength() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have 2 pending entries.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have 2 pending entries.", success)

			for _, exp := range []string{"first", "second"} {
				block, err := st.MinePendingBlock(context.Background())
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould mine the pending entry: %v", failed, err)
				}
				if block.Data != exp {
					t.Fatalf("\t%s\tTest 0:\tShould mine %q, got %q.", failed, exp, block.Data)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould mine the entries in submission order.", success)

			if st.QueryMempoolLength() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have an empty mempool.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have an empty mempool.", success)
		}

		t.Logf("\tTest 1:\tWhen a pending payload can't be solved within budget.")
		{
			st, err := state.New(state.Config{Difficulty: 64, MaxAttempts: 10})
			ifErrFailNow(t, err)

			st.SubmitData("never")
			if _, err := st.MinePendingBlock(context.Background()); !errors.Is(err, database.ErrNoProofFound) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrNoProofFound: %v", failed, err)
			}
			if st.QueryMempoolLength() != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould drop the entry.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould drop the entry.", success)
		}

		t.Logf("\tTest 2:\tWhen two callers race for a single pending payload.")
		{
			st, err := state.New(state.Config{Difficulty: 2})
			ifErrFailNow(t, err)

			st.SubmitData("only")

			errs := make(chan error, 2)
			var wg sync.WaitGroup
			for i := 0; i < 2; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := st.MinePendingBlock(context.Background())
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			var mined, empty int
			for err := range errs {
				switch {
				case err == nil:
					mined++
				case errors.Is(err, state.ErrNoPendingData):
					empty++
				}
			}

			if mined != 1 || empty != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould mine the entry once, mined[%d] empty[%d].", failed, mined, empty)
			}
			t.Logf("\t%s\tTest 2:\tShould mine the entry once.", success)

			if n := len(st.RetrieveBlocks()); n != 2 {
				t.Fatalf("\t%s\tTest 2:\tShould have 2 blocks, got %d.", failed, n)
			}
			t.Logf("\t%s\tTest 2:\tShould have 2 blocks.", success)
		}
	}
}

func TestConfig(t *testing.T) {
	t.Log("Given the need to reject bad configuration.")
	{
		t.Logf("\tTest 0:\tWhen using an unknown hash algorithm.")
		{
			if _, err := state.New(state.Config{HashAlgorithm: "md5"}); !errors.Is(err, digest.ErrUnknownHasher) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrUnknownHasher: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrUnknownHasher.", success)
		}

		t.Logf("\tTest 1:\tWhen using keccak256.")
		{
			st, err := state.New(state.Config{Difficulty: 2, HashAlgorithm: digest.AlgorithmKeccak256})
			ifErrFailNow(t, err)

			block, err := st.MineNewBlock(context.Background(), "a")
			ifErrFailNow(t, err)

			gen, _ := st.QueryBlock(1)
			if block.PreviousHash != gen.Hash(digest.Keccak256) {
				t.Fatalf("\t%s\tTest 1:\tShould link blocks with keccak256.", failed)
			}
			if !st.IsValid() {
				t.Fatalf("\t%s\tTest 1:\tShould validate the chain: %v", failed, st.Validate())
			}
			t.Logf("\t%s\tTest 1:\tShould mine and validate with keccak256.", success)
		}
	}
}
