// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/warden"
)

type Node struct {
	rt      *runtime.Runtime
	version string
}

func New(rt *runtime.Runtime, version string) *Node {
	return &Node{rt, version}
}

type Status struct {
	Version   string         `json:"version"`
	GenesisID warden.Bytes32 `json:"genesisId"`
	Seq       uint64         `json:"seq"`
}

func (n *Node) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	id, err := n.rt.GenesisID()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Status{
		Version:   n.version,
		GenesisID: id,
		Seq:       n.rt.Seq(),
	})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("GET /node/status").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetStatus))
}
