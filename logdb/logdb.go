// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb stores the events and native transfers of committed operations in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/warden"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the sqlite library in use.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// LastSeq returns the greatest operation sequence number stored, 0 if none.
func (db *LogDB) LastSeq(ctx context.Context) (uint64, error) {
	var seq sql.NullInt64
	row := db.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM (SELECT seq FROM event UNION ALL SELECT seq FROM transfer)")
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	return uint64(seq.Int64), nil
}

// NewBatch starts collecting the records of the operation numbered seq.
func (db *LogDB) NewBatch(seq, time uint64, op string, caller warden.Address) *Batch {
	return &Batch{
		db:     db.db,
		seq:    seq,
		time:   time,
		op:     op,
		caller: caller,
	}
}

func rangeClause(r *Range, stmt string, args []any) (string, []any) {
	if r == nil {
		return stmt, args
	}
	stmt += " AND seq >= ?"
	args = append(args, r.From)
	if r.To >= r.From {
		stmt += " AND seq <= ?"
		args = append(args, r.To)
	}
	return stmt, args
}

func tailClause(order Order, opts *Options, indexColumn, stmt string, args []any) (string, []any) {
	if order == DESC {
		stmt += " ORDER BY seq DESC, " + indexColumn + " DESC"
	} else {
		stmt += " ORDER BY seq ASC, " + indexColumn + " ASC"
	}
	if opts != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, opts.Offset, opts.Limit)
	}
	return stmt, args
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, eventIndex, time, op, caller, address, name, topic0, topic1, topic2, topic3, data FROM event WHERE 1"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC, eventIndex ASC")
	}
	metricQueries().AddWithLabel(1, map[string]string{"table": "event"})

	stmt, args := rangeClause(filter.Range, query, nil)
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ?"
		}
		if criteria.Name != "" {
			args = append(args, criteria.Name)
			stmt += " AND name = ?"
		}
		for j, topic := range criteria.Topics {
			if topic != nil {
				args = append(args, topic.Bytes())
				stmt += fmt.Sprintf(" AND topic%d = ?", j)
			}
		}
		stmt += " )"
		if i == len(filter.CriteriaSet)-1 {
			stmt += " )"
		}
	}
	stmt, args = tailClause(filter.Order, filter.Options, "eventIndex", stmt, args)
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	const query = "SELECT seq, transferIndex, time, caller, sender, recipient, amount FROM transfer WHERE 1"
	if filter == nil {
		return db.queryTransfers(ctx, query+" ORDER BY seq ASC, transferIndex ASC")
	}
	metricQueries().AddWithLabel(1, map[string]string{"table": "transfer"})

	stmt, args := rangeClause(filter.Range, query, nil)
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Caller != nil {
			args = append(args, criteria.Caller.Bytes())
			stmt += " AND caller = ?"
		}
		if criteria.Sender != nil {
			args = append(args, criteria.Sender.Bytes())
			stmt += " AND sender = ?"
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			stmt += " AND recipient = ?"
		}
		stmt += " )"
		if i == len(filter.CriteriaSet)-1 {
			stmt += " )"
		}
	}
	stmt, args = tailClause(filter.Order, filter.Options, "transferIndex", stmt, args)
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ev              Event
			caller, address []byte
			topics          [4][]byte
			data            []byte
		)
		if err := rows.Scan(
			&ev.Seq,
			&ev.Index,
			&ev.Time,
			&ev.Op,
			&caller,
			&address,
			&ev.Name,
			&topics[0],
			&topics[1],
			&topics[2],
			&topics[3],
			&data,
		); err != nil {
			return nil, err
		}
		ev.Caller = warden.BytesToAddress(caller)
		ev.Address = warden.BytesToAddress(address)
		ev.Data = data
		for i, topic := range topics {
			if len(topic) > 0 {
				h := warden.BytesToBytes32(topic)
				ev.Topics[i] = &h
			}
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...any) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			tr                        Transfer
			caller, sender, recipient []byte
			amount                    []byte
		)
		if err := rows.Scan(
			&tr.Seq,
			&tr.Index,
			&tr.Time,
			&caller,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		tr.Caller = warden.BytesToAddress(caller)
		tr.Sender = warden.BytesToAddress(sender)
		tr.Recipient = warden.BytesToAddress(recipient)
		tr.Amount = new(big.Int).SetBytes(amount)
		transfers = append(transfers, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

func topicValue(topic *warden.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}

// Batch collects the records of one operation and writes them in one sql transaction.
type Batch struct {
	db        *sql.DB
	seq       uint64
	time      uint64
	op        string
	caller    warden.Address
	events    []*Event
	transfers []*Transfer
}

// InsertEvent appends a contract event. Topics beyond the fourth are dropped.
func (b *Batch) InsertEvent(address warden.Address, name string, topics []warden.Bytes32, data []byte) *Batch {
	ev := &Event{
		Seq:     b.seq,
		Index:   uint32(len(b.events)),
		Time:    b.time,
		Op:      b.op,
		Caller:  b.caller,
		Address: address,
		Name:    name,
		Data:    data,
	}
	for i := 0; i < len(topics) && i < len(ev.Topics); i++ {
		topic := topics[i]
		ev.Topics[i] = &topic
	}
	b.events = append(b.events, ev)
	return b
}

// InsertTransfer appends a native value movement.
func (b *Batch) InsertTransfer(sender, recipient warden.Address, amount *big.Int) *Batch {
	b.transfers = append(b.transfers, &Transfer{
		Seq:       b.seq,
		Index:     uint32(len(b.transfers)),
		Time:      b.time,
		Caller:    b.caller,
		Sender:    sender,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
	})
	return b
}

// Len returns the number of collected records.
func (b *Batch) Len() int {
	return len(b.events) + len(b.transfers)
}

func (b *Batch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (b *Batch) Commit() error {
	if b.Len() == 0 {
		return nil
	}
	return b.execInTx(func(tx *sql.Tx) error {
		for _, ev := range b.events {
			if _, err := tx.Exec("INSERT OR REPLACE INTO event(seq, eventIndex, time, op, caller, address, name, topic0, topic1, topic2, topic3, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				ev.Seq,
				ev.Index,
				ev.Time,
				ev.Op,
				ev.Caller.Bytes(),
				ev.Address.Bytes(),
				ev.Name,
				topicValue(ev.Topics[0]),
				topicValue(ev.Topics[1]),
				topicValue(ev.Topics[2]),
				topicValue(ev.Topics[3]),
				[]byte(ev.Data),
			); err != nil {
				return errors.Wrap(err, "insert event")
			}
		}
		for _, tr := range b.transfers {
			if _, err := tx.Exec("INSERT OR REPLACE INTO transfer(seq, transferIndex, time, caller, sender, recipient, amount) VALUES (?, ?, ?, ?, ?, ?, ?);",
				tr.Seq,
				tr.Index,
				tr.Time,
				tr.Caller.Bytes(),
				tr.Sender.Bytes(),
				tr.Recipient.Bytes(),
				tr.Amount.Bytes(),
			); err != nil {
				return errors.Wrap(err, "insert transfer")
			}
		}
		metricRecords().AddWithLabel(int64(len(b.events)), map[string]string{"table": "event"})
		metricRecords().AddWithLabel(int64(len(b.transfers)), map[string]string{"table": "transfer"})
		return nil
	})
}
