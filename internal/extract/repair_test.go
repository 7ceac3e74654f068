package extract

import (
	"testing"
)

func TestRepairW2PairsConsistentUntouched(t *testing.T) {
	rt := DefaultRates()
	ss := WagePair{Wages: 100000, Tax: 6200}
	medicare := WagePair{Wages: 100000, Tax: 1450}
	federal := WagePair{Wages: 100000, Tax: 18000}

	gotSS, gotMed := rt.RepairW2Pairs(ss, medicare, federal)

	if !gotSS.equals(ss) || !gotMed.equals(medicare) {
		t.Errorf("Consistent pairs changed: ss=%+v medicare=%+v", gotSS, gotMed)
	}
}

func TestRepairW2PairsFullSwap(t *testing.T) {
	rt := DefaultRates()
	// Both pairs landed in each other's rate band.
	ss := WagePair{Wages: 100000, Tax: 1450}
	medicare := WagePair{Wages: 100000, Tax: 6200}

	gotSS, gotMed := rt.RepairW2Pairs(ss, medicare, WagePair{})

	if gotSS.Tax != 6200 {
		t.Errorf("Expected SS tax 6200 after swap, got %f", gotSS.Tax)
	}
	if gotMed.Tax != 1450 {
		t.Errorf("Expected Medicare tax 1450 after swap, got %f", gotMed.Tax)
	}
}

func TestRepairW2PairsSynthesizeSS(t *testing.T) {
	rt := DefaultRates()
	// SS-labeled pair holds Medicare numbers; the Medicare pair is empty.
	ss := WagePair{Wages: 80000, Tax: 1160}

	gotSS, gotMed := rt.RepairW2Pairs(ss, WagePair{}, WagePair{})

	if gotMed.Wages != 80000 || gotMed.Tax != 1160 {
		t.Errorf("Expected Medicare pair to take the mislabeled values, got %+v", gotMed)
	}
	if gotSS.Tax != 4960 {
		t.Errorf("Expected synthesized SS tax 4960, got %f", gotSS.Tax)
	}
}

func TestRepairW2PairsCollisionBackfill(t *testing.T) {
	rt := DefaultRates()
	// The generic Medicare pattern matched box 1/2 instead.
	federal := WagePair{Wages: 95000, Tax: 14000}
	medicare := federal
	ss := WagePair{Wages: 90000, Tax: 5580}

	gotSS, gotMed := rt.RepairW2Pairs(ss, medicare, federal)

	if !gotSS.equals(ss) {
		t.Errorf("SS pair should be untouched, got %+v", gotSS)
	}
	if gotMed.Wages != 90000 {
		t.Errorf("Expected Medicare wages backfilled from SS wages, got %f", gotMed.Wages)
	}
	if gotMed.Tax != 1305 {
		t.Errorf("Expected Medicare tax 1305.00, got %f", gotMed.Tax)
	}
}

func TestRepairW2PairsBackfillEmptyMedicare(t *testing.T) {
	rt := DefaultRates()
	// Boxes 5/6 and 1/2 both failed to extract; the SS pair is good.
	ss := WagePair{Wages: 90000, Tax: 5580}

	gotSS, gotMed := rt.RepairW2Pairs(ss, WagePair{}, WagePair{})

	if !gotSS.equals(ss) {
		t.Errorf("SS pair should be untouched, got %+v", gotSS)
	}
	if gotMed.Wages != 90000 {
		t.Errorf("Expected Medicare wages backfilled from SS wages, got %f", gotMed.Wages)
	}
	if gotMed.Tax != 1305 {
		t.Errorf("Expected Medicare tax 1305.00, got %f", gotMed.Tax)
	}

	// A second pass must leave the rebuilt pair alone.
	ss2, med2 := rt.RepairW2Pairs(gotSS, gotMed, WagePair{})
	if !ss2.equals(gotSS) || !med2.equals(gotMed) {
		t.Errorf("Backfill not idempotent: (%+v, %+v)", ss2, med2)
	}
}

func TestRepairW2PairsIdempotent(t *testing.T) {
	rt := DefaultRates()
	ss := WagePair{Wages: 80000, Tax: 1160}

	ss1, med1 := rt.RepairW2Pairs(ss, WagePair{}, WagePair{})
	ss2, med2 := rt.RepairW2Pairs(ss1, med1, WagePair{})

	if !ss1.equals(ss2) || !med1.equals(med2) {
		t.Errorf("Repair not idempotent: first (%+v, %+v), second (%+v, %+v)", ss1, med1, ss2, med2)
	}
}

func TestRepairW2PairsCustomRates(t *testing.T) {
	rt := RateTable{SocialSecurity: 0.058, Medicare: 0.0140}
	ss := WagePair{Wages: 100000, Tax: 1400}

	gotSS, _ := rt.RepairW2Pairs(ss, WagePair{}, WagePair{})

	if gotSS.Tax != 5800 {
		t.Errorf("Expected synthesis at the configured rate, got %f", gotSS.Tax)
	}
}
