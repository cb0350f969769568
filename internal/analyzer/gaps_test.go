package analyzer

import (
	"slices"
	"testing"
	"time"
)

var gapTestNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestDetectGapsNoExperienceSection(t *testing.T) {
	got := DetectGaps(Segment("Summary\nJust a summary"), gapTestNow)
	if got.HasGaps {
		t.Error("expected no gaps without an experience section")
	}
	if got.Details != "No experience section found" {
		t.Errorf("details = %q", got.Details)
	}
}

func TestDetectGapsNoDates(t *testing.T) {
	text := "Experience\nDeveloper at Acme, long ago"
	got := DetectGaps(Segment(text), gapTestNow)
	if got.HasGaps || got.Details != "No date ranges detected" {
		t.Errorf("got %+v, want no-dates details", got)
	}
}

func TestDetectGapsContiguous(t *testing.T) {
	text := "Experience\nAcme, 2016 - 2020\nBeta, 2020 - present"
	got := DetectGaps(Segment(text), gapTestNow)
	if got.HasGaps {
		t.Errorf("contiguous ranges flagged: %+v", got)
	}
}

func TestDetectGapsRealGap(t *testing.T) {
	text := "Experience\nAcme, 2014 - 2016\nBeta, 2019 - 2021"
	got := DetectGaps(Segment(text), gapTestNow)

	if !got.HasGaps {
		t.Fatal("expected a gap between 2016 and 2019")
	}
	if !slices.Contains(got.Gaps, "2016 - 2019") {
		t.Errorf("gaps = %v, want 2016 - 2019", got.Gaps)
	}
}

func TestDetectGapsPotentialGap(t *testing.T) {
	text := "Experience\nAcme, 2015 - 2018\nBeta, 2019 - 2022"
	got := DetectGaps(Segment(text), gapTestNow)

	if !got.HasGaps {
		t.Fatal("expected a potential gap")
	}
	if !slices.Contains(got.Gaps, "2018 - 2019 (potential gap)") {
		t.Errorf("gaps = %v, want potential gap marker", got.Gaps)
	}
}

func TestDetectGapsPresentResolvesToClock(t *testing.T) {
	text := "Experience\nAcme, 2010 - present\nBeta, 2012 - 2014"
	got := DetectGaps(Segment(text), gapTestNow)

	// The open-ended range runs to 2026, covering everything after 2012.
	if got.HasGaps {
		t.Errorf("open-ended range should absorb later positions: %+v", got)
	}
}

func TestDetectGapsMonthYearFormat(t *testing.T) {
	text := "Experience\nAcme, Jan 2015 - Mar 2016\nBeta, Jun 2020 - present"
	got := DetectGaps(Segment(text), gapTestNow)

	if !got.HasGaps {
		t.Fatal("expected gap between 2016 and 2020")
	}
	if !slices.Contains(got.Gaps, "2016 - 2020") {
		t.Errorf("gaps = %v, want 2016 - 2020", got.Gaps)
	}
}
