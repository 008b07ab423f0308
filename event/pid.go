// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

// three times the charge of fundamental particles, indexed by |PDG-ID|.
var fundCharge3 = [...]int{
	0,
	-1, 2, -1, 2, -1, 2, -1, 2, // quarks (incl. 4th generation)
	0, 0,
	-3, 0, -3, 0, -3, 0, -3, 0, // leptons (incl. 4th generation)
	0, 0,
	0, 0, 0, 3, 0, 0, 0, 0, 0, 0, // gauge bosons, higgs
	0, 0, 0, 3, 0, 0, 3, // extra bosons (W', H+)
}

// quark charges (x3), indexed by quark flavour.
var quarkCharge3 = [...]int{0, -1, 2, -1, 2, -1, 2, -1, 2}

// Charge3 returns three times the electric charge of the particle
// identified by the PDG code pid.
//
// Hadron charges are derived from their quark content.
// Nuclei (10LZZZAAAI) return three times their proton number.
func Charge3(pid int64) int {
	aid := pid
	if aid < 0 {
		aid = -aid
	}

	var q int
	switch {
	case aid < int64(len(fundCharge3)):
		q = fundCharge3[aid]
	case aid >= 1000000000:
		// nucleus.
		q = 3 * int((aid/10000)%1000)
	case aid >= 1000000:
		// susy, excited and technicolor states are neutral
		// as far as the trigger detectors are concerned.
		return 0
	default:
		var (
			nq1 = (aid / 1000) % 10
			nq2 = (aid / 100) % 10
			nq3 = (aid / 10) % 10
		)
		if nq2 == 0 || nq3 == 0 || int(nq3) >= len(quarkCharge3) || int(nq2) >= len(quarkCharge3) {
			return 0
		}
		switch nq1 {
		case 0:
			// meson: the heavier quark is the first digit, and down-type
			// quarks carry the anti-quark in the positive code.
			if nq2 == 3 || nq2 == 5 || nq2 == 7 {
				q = quarkCharge3[nq3] - quarkCharge3[nq2]
			} else {
				q = quarkCharge3[nq2] - quarkCharge3[nq3]
			}
		default:
			if int(nq1) >= len(quarkCharge3) {
				return 0
			}
			q = quarkCharge3[nq1] + quarkCharge3[nq2] + quarkCharge3[nq3]
		}
	}

	if pid < 0 {
		return -q
	}
	return q
}
