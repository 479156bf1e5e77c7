// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

// recoveryGrace is how many epochs past the slash window a miss keeps weighing.
// A miss at epoch m holds the node slashed through epoch m+Size+1.
const recoveryGrace = 2

// Window is the participation record of a standby node. Size is the configured
// slash window; the ring tracks the last Size+recoveryGrace outcomes.
// Bit i of Bits is set when the outcome stored at position i was a miss.
type Window struct {
	Size      uint64
	Bits      []byte
	Head      uint64 // position the next outcome is written to
	Misses    uint64 // number of set bits
	LastEpoch uint64
}

// NewWindow returns a clean window that has recorded everything up to lastEpoch.
func NewWindow(size, lastEpoch uint64) *Window {
	return &Window{
		Size:      size,
		Bits:      make([]byte, (size+recoveryGrace+7)/8),
		LastEpoch: lastEpoch,
	}
}

// span is the number of trailing epochs a miss can still be found in.
func (w *Window) span() uint64 { return w.Size + recoveryGrace }

// isMiss treats positions past Bits as clean, so windows stored with a shorter ring still decode.
func (w *Window) isMiss(pos uint64) bool {
	if pos/8 >= uint64(len(w.Bits)) {
		return false
	}
	return w.Bits[pos/8]&(1<<(pos%8)) != 0
}

func (w *Window) push(miss bool) {
	if need := (w.span() + 7) / 8; uint64(len(w.Bits)) < need {
		w.Bits = append(w.Bits, make([]byte, need-uint64(len(w.Bits)))...)
	}
	pos := w.Head
	if w.isMiss(pos) {
		w.Misses--
		w.Bits[pos/8] &^= 1 << (pos % 8)
	}
	if miss {
		w.Misses++
		w.Bits[pos/8] |= 1 << (pos % 8)
	}
	w.Head = (pos + 1) % w.span()
}

// Record stores the outcome of epoch. Epochs between the last recorded one and epoch were
// not evaluated for the node and count as misses. Epochs not after LastEpoch are ignored.
func (w *Window) Record(epoch uint64, participated bool) {
	if epoch <= w.LastEpoch {
		return
	}
	gap := epoch - w.LastEpoch - 1
	if gap > w.span() {
		gap = w.span()
	}
	for i := uint64(0); i < gap; i++ {
		w.push(true)
	}
	w.push(!participated)
	w.LastEpoch = epoch
}

// Slashed reports whether any of the last Size+recoveryGrace recorded epochs is a miss.
func (w *Window) Slashed() bool {
	return w.Misses > 0
}

// CleanStreak returns how many epochs in a row, ending at LastEpoch, were clean.
// It never exceeds Size+recoveryGrace.
func (w *Window) CleanStreak() uint64 {
	var n uint64
	span := w.span()
	pos := w.Head
	for n < span {
		pos = (pos + span - 1) % span
		if w.isMiss(pos) {
			break
		}
		n++
	}
	return n
}
