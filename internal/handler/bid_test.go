package handler

import (
	"encoding/json"
	"testing"
	"time"

	"loadboard/internal/domain"
)

// The eligibility verdict frozen on a bid must reach the wire: shippers
// rely on it to know which bids can be accepted.
func TestBidResponseCarriesEligibilityVerdict(t *testing.T) {
	t.Parallel()

	now := time.Now()
	bid := &domain.Bid{
		ID:              "bid-1",
		LoadID:          "load-1",
		TruckerID:       "trucker-1",
		Amount:          250,
		Status:          domain.BidStatusPending,
		TruckerEligible: true,
		ExpiresAt:       now.Add(domain.BidExpiry),
		CreatedAt:       now,
	}

	resp := toBidResponse(bid)
	if !resp.TruckerEligible {
		t.Error("expected eligibility verdict on the response")
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	v, ok := wire["truckerEligible"]
	if !ok {
		t.Fatal("truckerEligible missing from the wire representation")
	}
	if v != true {
		t.Errorf("truckerEligible = %v, want true", v)
	}

	// The field is present even when false, so clients can rely on it.
	bid.TruckerEligible = false
	data, err = json.Marshal(toBidResponse(bid))
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}
	wire = map[string]any{}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if v, ok := wire["truckerEligible"]; !ok || v != false {
		t.Errorf("truckerEligible = %v (present=%t), want false and present", v, ok)
	}
}
