// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/logdb"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

// Filter query events with option
func (e *Events) filter(ctx context.Context, filter *EventFilter) ([]*FilteredEvent, error) {
	rng, err := utils.ConvertRange(filter.Range)
	if err != nil {
		return nil, utils.BadRequest(err)
	}
	opts, err := utils.ConvertOptions(filter.Options, e.limit)
	if err != nil {
		return nil, utils.Forbidden(err)
	}
	order, err := utils.ConvertOrder(filter.Order)
	if err != nil {
		return nil, utils.BadRequest(err)
	}
	criteriaSet := make([]*logdb.EventCriteria, 0, len(filter.CriteriaSet))
	for _, c := range filter.CriteriaSet {
		criteriaSet = append(criteriaSet, convertCriteria(c))
	}

	events, err := e.db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: criteriaSet,
		Range:       rng,
		Options:     opts,
		Order:       order,
	})
	if err != nil {
		return nil, err
	}
	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = convertEvent(ev)
	}
	return fes, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	fes, err := e.filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /logs/event").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
