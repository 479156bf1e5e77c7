// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/standby-warden/warden/warden"
)

// addPayee appends node to the payee list, unless it is already listed.
func (r *Rewards) addPayee(node warden.Address) error {
	entry, err := r.payees.Get(node)
	if err != nil {
		return err
	}
	if entry.Listed {
		return nil
	}
	entry.Listed = true
	if err := r.payees.Set(node, entry); err != nil {
		return err
	}

	tail, err := r.payeeTail.Get()
	if err != nil {
		return err
	}
	if tail.IsZero() {
		r.payeeHead.Set(&node)
	} else {
		tailEntry, err := r.payees.Get(tail)
		if err != nil {
			return err
		}
		tailEntry.Next = &node
		if err := r.payees.Set(tail, tailEntry); err != nil {
			return err
		}
	}
	r.payeeTail.Set(&node)
	return nil
}

// Payees returns the nodes holding a pending balance, in the order they started to hold one.
func (r *Rewards) Payees() ([]warden.Address, error) {
	head, err := r.payeeHead.Get()
	if err != nil {
		return nil, err
	}
	var list []warden.Address
	ptr := &head
	if head.IsZero() {
		ptr = nil
	}
	for ptr != nil {
		list = append(list, *ptr)
		entry, err := r.payees.Get(*ptr)
		if err != nil {
			return nil, err
		}
		ptr = entry.Next
	}
	return list, nil
}

// clearPayees unlinks every entry of the payee list.
func (r *Rewards) clearPayees(list []warden.Address) {
	for _, node := range list {
		r.payees.Delete(node)
	}
	r.payeeHead.Set(nil)
	r.payeeTail.Set(nil)
}
