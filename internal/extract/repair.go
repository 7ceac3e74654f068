package extract

import "math"

// RateTable holds the statutory payroll tax rates used to validate and repair
// W-2 box pairs. The rates are legally variable per tax year, so they are a
// value the caller can override rather than package constants.
type RateTable struct {
	SocialSecurity float64
	Medicare       float64
}

// DefaultRates returns the current statutory rates.
func DefaultRates() RateTable {
	return RateTable{SocialSecurity: 0.062, Medicare: 0.0145}
}

// Implied-rate bands used to decide which box a pair really came from. The
// bands are deliberately wide to absorb rounding and additional-medicare
// noise.
const (
	ssBandLow        = 0.055
	ssBandHigh       = 0.070
	medicareBandLow  = 0.012
	medicareBandHigh = 0.018
)

// WagePair is a nominally-labeled wages/withholding pair from adjacent form
// boxes.
type WagePair struct {
	Wages float64
	Tax   float64
}

func (p WagePair) rate() float64 {
	if p.Wages <= 0 {
		return 0
	}
	return p.Tax / p.Wages
}

func (p WagePair) populated() bool {
	return p.Wages > 0 && p.Tax > 0
}

func (p WagePair) inSSBand() bool {
	r := p.rate()
	return r > ssBandLow && r < ssBandHigh
}

func (p WagePair) inMedicareBand() bool {
	r := p.rate()
	return r > medicareBandLow && r < medicareBandHigh
}

func (p WagePair) equals(other WagePair) bool {
	return math.Abs(p.Wages-other.Wages) < 0.01 && math.Abs(p.Tax-other.Tax) < 0.01
}

// RepairW2Pairs detects and corrects transposed or collided Social Security
// and Medicare box pairs using the implied tax rate of each pair. federal is
// the box 1/2 wages/withholding pair, used to detect the case where the
// generic Medicare pattern matched the wrong box entirely.
//
// The repair is best-effort: pairs already consistent with their expected
// rate band are never touched, and running the repair twice is a no-op.
func (rt RateTable) RepairW2Pairs(ss, medicare, federal WagePair) (WagePair, WagePair) {
	// The SS-labeled pair carrying a Medicare-band rate means the labels are
	// wrong somewhere.
	if ss.populated() && ss.inMedicareBand() {
		switch {
		case medicare.populated() && medicare.inSSBand():
			// Both pairs landed in each other's band: a clean transposition.
			ss, medicare = medicare, ss
		default:
			// Only the SS pair is mislabeled. Its values are really the
			// Medicare pair; synthesize SS tax from the statutory rate,
			// since SS wages usually equal Medicare wages under the base.
			medicare = ss
			ss.Tax = round2(ss.Wages * rt.SocialSecurity)
		}
		return ss, medicare
	}

	// The generic Medicare pattern can collide with box 1/2, or miss
	// entirely when box 1/2 also came back empty. Either way the pairs are
	// equal; rebuild Medicare from the SS wages figure when the SS pair is
	// usable.
	if medicare.equals(federal) && ss.populated() {
		switch {
		case ss.inMedicareBand():
			medicare = ss
			ss.Tax = round2(ss.Wages * rt.SocialSecurity)
		case ss.inSSBand():
			medicare = WagePair{
				Wages: ss.Wages,
				Tax:   round2(ss.Wages * rt.Medicare),
			}
		}
	}

	return ss, medicare
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
