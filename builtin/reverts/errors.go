// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

// Reverts shared by the native contracts. Compare with errors.Is.
var (
	ErrNotWhitelisted      = NewRequireError("Not whitelisted")
	ErrNotContractOwner    = NewRequireError("Ownable: caller is not the owner")
	ErrNotOwner            = NewRequireError("Not an owner")
	ErrInvalidEpoch        = NewRequireError("Invalid epoch")
	ErrTransactionNotFound = NewRequireError("Transaction does not exist")
	ErrAlreadyConfirmed    = NewRequireError("Transaction already confirmed by owner")
	ErrAlreadyExecuted     = NewRequireError("Transaction already executed")
	ErrInsufficientFunds   = NewRequireError("Insufficient balance")
	ErrAlreadyInitialized  = NewRequireError("Initializable: contract is already initialized")
	ErrNotInitialized      = NewRequireError("Initializable: contract is not initialized")
	ErrTreasuryNotSet      = NewRequireError("Treasury address not set")
	ErrInvalidArgument     = NewRequireError("Invalid argument")
	ErrBuiltinCaller       = NewRequireError("Caller is a builtin contract")
)

// IsUnauthorized reports whether err is one of the access control reverts.
func IsUnauthorized(err error) bool {
	ve, ok := AsRevert(err)
	if !ok {
		return false
	}
	switch ve {
	case ErrNotWhitelisted, ErrNotContractOwner, ErrNotOwner, ErrBuiltinCaller:
		return true
	}
	return false
}
