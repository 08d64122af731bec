package mandi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agri-assist-be/pkg/llm"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, s.err
}

// Records spanning two states: state A has districts X and Y, state B has Z.
func tierRecords() []Record {
	return []Record{
		{State: "StateA", District: "DistrictX", Market: "Market1", Commodity: "Onion", ArrivalDate: "28/08/2026", MinPrice: 1000, MaxPrice: 1500, ModalPrice: 1200},
		{State: "StateA", District: "DistrictX", Market: "Market2", Commodity: "Onion", ArrivalDate: "28/08/2026", MinPrice: 900, MaxPrice: 1400, ModalPrice: 1100},
		{State: "StateA", District: "DistrictY", Market: "Market3", Commodity: "Onion", ArrivalDate: "28/08/2026", MinPrice: 2000, MaxPrice: 2500, ModalPrice: 2200},
		{State: "StateB", District: "DistrictZ", Market: "Market4", Commodity: "Onion", ArrivalDate: "28/08/2026", MinPrice: 500, MaxPrice: 800, ModalPrice: 600},
	}
}

func newTierResolver() *Resolver {
	return NewResolver(nil, nil, log.Default())
}

func TestFormatResponseDistrictTier(t *testing.T) {
	r := newTierResolver()
	got := r.formatResponse("StateA", "DistrictX", "onion", tierRecords())

	if !strings.Contains(got, "Found onion prices for DistrictX, StateA") {
		t.Errorf("missing district tier header: %q", got)
	}
	// Verbatim records, both DistrictX markets present.
	if !strings.Contains(got, "Market1") || !strings.Contains(got, "Market2") {
		t.Errorf("district tier should list every matching record: %q", got)
	}
	// No aggregation and no other districts.
	if strings.Contains(got, "DistrictY") || strings.Contains(got, "StateB") {
		t.Errorf("district tier leaked lower tiers: %q", got)
	}
}

func TestFormatResponseStateTier(t *testing.T) {
	r := newTierResolver()
	got := r.formatResponse("StateA", "DistrictMissing", "onion", tierRecords())

	if !strings.Contains(got, "No data for DistrictMissing, StateA") {
		t.Errorf("missing state tier header: %q", got)
	}
	// Per-district aggregated ranges, sorted: DistrictX before DistrictY.
	xIdx := strings.Index(got, "DistrictX: ₹900 - ₹1500")
	yIdx := strings.Index(got, "DistrictY: ₹2000 - ₹2500")
	if xIdx == -1 || yIdx == -1 {
		t.Fatalf("missing aggregated district ranges: %q", got)
	}
	if xIdx > yIdx {
		t.Errorf("districts not sorted: %q", got)
	}
	if strings.Contains(got, "StateB") {
		t.Errorf("state tier leaked national tier: %q", got)
	}
}

func TestFormatResponseNationalTier(t *testing.T) {
	r := newTierResolver()
	got := r.formatResponse("StateMissing", "DistrictMissing", "onion", tierRecords())

	if !strings.Contains(got, "No data for onion in StateMissing") {
		t.Errorf("missing national tier header: %q", got)
	}
	aIdx := strings.Index(got, "StateA: ₹900 - ₹2500")
	bIdx := strings.Index(got, "StateB: ₹500 - ₹800")
	if aIdx == -1 || bIdx == -1 {
		t.Fatalf("missing aggregated state ranges: %q", got)
	}
	if aIdx > bIdx {
		t.Errorf("states not sorted: %q", got)
	}
}

func TestFormatResponseCaseInsensitiveMatching(t *testing.T) {
	r := newTierResolver()
	got := r.formatResponse("stateA", "districtx", "onion", tierRecords())

	if !strings.Contains(got, "Found onion prices") {
		t.Errorf("district match should ignore case: %q", got)
	}
}

func TestSearchEmptyInputs(t *testing.T) {
	r := newTierResolver()

	got := r.Search(context.Background(), "", "onion")
	if !strings.Contains(got, "city or district") {
		t.Errorf("empty city answer = %q", got)
	}

	got = r.Search(context.Background(), "Nashik", "")
	if !strings.Contains(got, "which crop") {
		t.Errorf("empty crop answer = %q", got)
	}
}

func TestSearchUnknownLocationStops(t *testing.T) {
	// A failing model resolves to Unknown/Unknown; the price provider must
	// never be called, so a nil client is safe here.
	locator := NewLocator(&stubLLM{err: errors.New("model down")}, log.Default())
	r := NewResolver(nil, locator, log.Default())

	got := r.Search(context.Background(), "Atlantis", "onion")
	if !strings.Contains(got, "Could not determine state/district for 'Atlantis'") {
		t.Errorf("unknown location answer = %q", got)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		err          error
		wantState    string
		wantDistrict string
	}{
		{
			name:         "clean json",
			response:     `{"state": "Maharashtra", "district": "Nashik"}`,
			wantState:    "Maharashtra",
			wantDistrict: "Nashik",
		},
		{
			name:         "json in prose",
			response:     "Sure!\n{\"state\": \"Punjab\", \"district\": \"Ludhiana\"}\nHope this helps.",
			wantState:    "Punjab",
			wantDistrict: "Ludhiana",
		},
		{
			name:         "missing fields default to unknown",
			response:     `{}`,
			wantState:    LocationUnknown,
			wantDistrict: LocationUnknown,
		},
		{
			name:         "unparsable output",
			response:     "I do not know that city.",
			wantState:    LocationUnknown,
			wantDistrict: LocationUnknown,
		},
		{
			name:         "model error",
			err:          errors.New("timeout"),
			wantState:    LocationUnknown,
			wantDistrict: LocationUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocator(&stubLLM{response: tt.response, err: tt.err}, log.Default())
			state, district := l.Locate(context.Background(), "somewhere")
			if state != tt.wantState || district != tt.wantDistrict {
				t.Errorf("Locate() = (%q, %q), want (%q, %q)", state, district, tt.wantState, tt.wantDistrict)
			}
		})
	}
}

func nashikLocator() *Locator {
	return NewLocator(&stubLLM{response: `{"state": "Maharashtra", "district": "Nashik"}`}, log.Default())
}

func TestSearchProviderTransportFailureRecovered(t *testing.T) {
	// A refused connection must resolve to answer text, not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient("test-key", log.Default())
	c.baseURL = srv.URL
	r := NewResolver(c, nashikLocator(), log.Default())

	got := r.Search(context.Background(), "Nashik", "onion")
	if got != InternalErrorAnswer {
		t.Errorf("Search() = %q, want %q", got, InternalErrorAnswer)
	}
}

func TestSearchCropListingFailureRecovered(t *testing.T) {
	// The crop fetch finds nothing, and the follow-up commodity listing
	// returns a body that does not decode.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filters[commodity]") != "" {
			fmt.Fprint(w, `{"records": []}`)
			return
		}
		fmt.Fprint(w, "<html>gateway timeout</html>")
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", log.Default())
	c.baseURL = srv.URL
	r := NewResolver(c, nashikLocator(), log.Default())

	got := r.Search(context.Background(), "Nashik", "onion")
	if !strings.Contains(got, "Unable to fetch the crop list") {
		t.Errorf("Search() = %q, want the crop list fallback", got)
	}
}
