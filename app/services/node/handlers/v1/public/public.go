// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/powledger/business/sys/validate"
	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting to receive events and send them to the client.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis block and the puzzle parameters.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()

	blk, err := h.State.QueryBlock(gen.Index)
	if err != nil {
		return err
	}

	info := genesisInfo{
		Block:         h.toBlock(blk),
		Difficulty:    h.State.RetrievePuzzle().Difficulty(),
		MaxAttempts:   h.State.RetrievePuzzle().MaxAttempts(),
		HashAlgorithm: gen.HashAlgorithm,
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}

// Blocks returns every block in the chain in order.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dbBlocks := h.State.RetrieveBlocks()

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = h.toBlock(blk)
	}

	ci := chainInfo{
		LatestBlock: blocks[len(blocks)-1].Hash,
		Pending:     h.State.QueryMempoolLength(),
		Blocks:      blocks,
	}

	return web.Respond(ctx, w, ci, http.StatusOK)
}

// BlockByIndex returns the block at the specified index.
func (h Handlers) BlockByIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid index: %w", err), http.StatusBadRequest)
	}

	blk, err := h.State.QueryBlock(index)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, h.toBlock(blk), http.StatusOK)
}

// Mine mines the posted data into a new block before responding. The search
// is abandoned if the client goes away.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nd newData
	if err := web.Decode(r, &nd); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(nd); err != nil {
		return err
	}

	h.Log.Infow("mine block", "traceid", v.TraceID, "data", nd.Data)

	blk, err := h.State.MineNewBlock(ctx, nd.Data)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNoProofFound):
			return errs.NewTrusted(err, http.StatusUnprocessableEntity)
		case ctx.Err() != nil:
			return errs.NewTrusted(err, http.StatusRequestTimeout)
		}
		return err
	}

	return web.Respond(ctx, w, h.toBlock(blk), http.StatusCreated)
}

// SubmitData queues the posted data to be mined in the background.
func (h Handlers) SubmitData(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nd newData
	if err := web.Decode(r, &nd); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(nd); err != nil {
		return err
	}

	entry := h.State.SubmitData(nd.Data)
	h.Log.Infow("submit data", "traceid", v.TraceID, "entry", entry.ID)

	resp := pending{
		Status: "data added to mempool",
		Entry:  entry,
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// Mempool returns the data waiting to be mined.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// Validate walks the chain and reports whether it is intact.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	val := validation{
		Valid:  true,
		Blocks: len(h.State.RetrieveBlocks()),
	}

	if err := h.State.Validate(); err != nil {
		val.Valid = false
		val.Error = err.Error()
	}

	return web.Respond(ctx, w, val, http.StatusOK)
}

// =============================================================================

func (h Handlers) toBlock(blk database.Block) block {
	return block{
		Hash:  h.State.BlockHash(blk),
		Block: blk,
	}
}
