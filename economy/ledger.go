package economy

import "math"

// Ledger accumulates fractional production and credits whole units. The
// fractional carry per kind stays in [0,1) after every credit step, so the
// externally visible totals only ever move by integer amounts regardless of
// how small the rates are. Consumers read Total; the carry is internal.
type Ledger struct {
	totals [NumKinds]uint64
	carry  [NumKinds]float64
}

// Accrue folds one tick's rates into the ledger and returns the units
// credited this tick per kind. Negative or non-finite rates contribute
// nothing, and a non-positive dt credits nothing, so the carry can never
// leave [0,1).
func (l *Ledger) Accrue(rates Rates, dt float64) [NumKinds]uint64 {
	var credited [NumKinds]uint64

	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return credited
	}

	for k := range l.carry {
		r := rates[k]
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		l.carry[k] += r * dt
		if l.carry[k] >= 1 {
			whole := math.Floor(l.carry[k])
			l.carry[k] -= whole
			l.totals[k] += uint64(whole)
			credited[k] = uint64(whole)
		}
	}

	return credited
}

// Total returns the credited whole-unit total for a kind. This is the only
// economy-facing read; fractional carry is never exposed to the game.
func (l *Ledger) Total(k Kind) uint64 {
	return l.totals[int(k)]
}

// Totals returns a copy of all credited totals.
func (l *Ledger) Totals() [NumKinds]uint64 {
	return l.totals
}
