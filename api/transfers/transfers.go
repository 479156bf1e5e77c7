// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/logdb"
)

type Transfers struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Transfers {
	return &Transfers{
		db,
		logsLimit,
	}
}

// Filter query logs with option
func (t *Transfers) filter(ctx context.Context, filter *TransferFilter) ([]*FilteredTransfer, error) {
	rng, err := utils.ConvertRange(filter.Range)
	if err != nil {
		return nil, utils.BadRequest(err)
	}
	opts, err := utils.ConvertOptions(filter.Options, t.limit)
	if err != nil {
		return nil, utils.Forbidden(err)
	}
	order, err := utils.ConvertOrder(filter.Order)
	if err != nil {
		return nil, utils.BadRequest(err)
	}
	criteriaSet := make([]*logdb.TransferCriteria, 0, len(filter.CriteriaSet))
	for _, c := range filter.CriteriaSet {
		criteriaSet = append(criteriaSet, &logdb.TransferCriteria{
			Caller:    c.Caller,
			Sender:    c.Sender,
			Recipient: c.Recipient,
		})
	}

	transfers, err := t.db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: criteriaSet,
		Range:       rng,
		Options:     opts,
		Order:       order,
	})
	if err != nil {
		return nil, err
	}
	tLogs := make([]*FilteredTransfer, len(transfers))
	for i, trans := range transfers {
		tLogs[i] = convertTransfer(trans)
	}
	return tLogs, nil
}

func (t *Transfers) handleFilterTransferLogs(w http.ResponseWriter, req *http.Request) error {
	var filter TransferFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	tLogs, err := t.filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, tLogs)
}

func (t *Transfers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /logs/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleFilterTransferLogs))
}
