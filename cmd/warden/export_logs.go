// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/standby-warden/warden/logdb"
)

// exportedLog is one line of the export, either an event or a transfer.
type exportedLog struct {
	Kind     string          `json:"kind"`
	Event    *logdb.Event    `json:"event,omitempty"`
	Transfer *logdb.Transfer `json:"transfer,omitempty"`
}

func exportLogsAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := inspectGenesis(ctx)
	instanceDir := existingInstanceDir(ctx, gene)

	path := filepath.Join(instanceDir, "logs.db")
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "open log database")
	}
	logDB := openLogDB(instanceDir)
	defer logDB.Close()

	var w io.Writer = os.Stdout
	if out := ctx.String(outputFlag.Name); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	exitSignal := handleExitSignal()
	lastSeq, err := logDB.LastSeq(exitSignal)
	if err != nil {
		return err
	}

	bar := pb.New64(int64(lastSeq)).
		Set64(0).
		SetMaxWidth(90)
	bar.Output = os.Stderr
	bar.Start()
	defer bar.Finish()

	n, err := exportLogs(exitSignal, logDB, w, lastSeq, ctx.Uint64(batchSizeFlag.Name), func(seq uint64) {
		bar.Set64(int64(seq))
	})
	if err != nil {
		return err
	}
	logger.Info("logs exported", "count", n, "lastSeq", lastSeq)
	return nil
}

// exportLogs writes the events and transfers of operations [1, lastSeq] to w, step operations at a time.
// The records of one operation keep their emission order, events first.
func exportLogs(
	ctx context.Context,
	db *logdb.LogDB,
	w io.Writer,
	lastSeq uint64,
	step uint64,
	progress func(seq uint64),
) (int, error) {
	if step == 0 {
		step = 1
	}

	var (
		enc   = json.NewEncoder(w)
		count = 0
	)
	for from := uint64(1); from <= lastSeq; from += step {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		r := &logdb.Range{From: from, To: from + step - 1}
		if r.To > lastSeq {
			r.To = lastSeq
		}

		events, err := db.FilterEvents(ctx, &logdb.EventFilter{Range: r})
		if err != nil {
			return count, errors.Wrap(err, "filter events")
		}
		transfers, err := db.FilterTransfers(ctx, &logdb.TransferFilter{Range: r})
		if err != nil {
			return count, errors.Wrap(err, "filter transfers")
		}

		// both lists are ordered by seq, merge them operation by operation
		i, j := 0, 0
		for seq := r.From; seq <= r.To; seq++ {
			for ; i < len(events) && events[i].Seq == seq; i++ {
				if err := enc.Encode(&exportedLog{Kind: "event", Event: events[i]}); err != nil {
					return count, err
				}
				count++
			}
			for ; j < len(transfers) && transfers[j].Seq == seq; j++ {
				if err := enc.Encode(&exportedLog{Kind: "transfer", Transfer: transfers[j]}); err != nil {
					return count, err
				}
				count++
			}
		}
		if progress != nil {
			progress(r.To)
		}
	}
	return count, nil
}
