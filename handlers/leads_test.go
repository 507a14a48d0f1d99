// ABOUTME: Tests for lead tool handlers over the MCP protocol
// ABOUTME: Validates lead capture, matching, viewing booking, and lead listing
package handlers

import (
	"strings"
	"testing"
)

func TestCaptureLeadTool(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "capture_lead", map[string]any{
		"full_name":    "Test Buyer",
		"email":        "test.buyer@example.com",
		"mobile":       "+44 7700 999999",
		"role":         "buyer",
		"stage":        "hot",
		"budget_max":   100000,
		"min_bedrooms": 2,
	})
	if result.IsError {
		t.Fatalf("capture_lead returned error: %s", narrativeText(t, result))
	}

	var out CaptureLeadOutput
	structured(t, result, &out)
	// Fixture already holds C0001 and C0002.
	if out.Client.ClientID != "C0003" {
		t.Errorf("expected C0003, got %s", out.Client.ClientID)
	}
	if out.Client.BudgetMax == nil || *out.Client.BudgetMax != 100000 {
		t.Errorf("budget not stored: %+v", out.Client)
	}
	if out.Client.CreatedAt == "" {
		t.Error("created_at not stamped")
	}
}

func TestCaptureLeadSellerValidation(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "capture_lead", map[string]any{
		"full_name":           "Test Seller",
		"role":                "seller",
		"selling_property_id": "P2",
	})
	if !result.IsError {
		t.Fatal("seller without asking_price should fail")
	}

	result = callTool(t, session, "capture_lead", map[string]any{
		"full_name":           "Test Seller",
		"role":                "seller",
		"selling_property_id": "P2",
		"asking_price":        180000,
	})
	if result.IsError {
		t.Fatalf("valid seller failed: %s", narrativeText(t, result))
	}

	var out CaptureLeadOutput
	structured(t, result, &out)
	if out.Client.SellingPropertyID != "P2" {
		t.Errorf("selling_property_id mismatch: %q", out.Client.SellingPropertyID)
	}
	if out.Client.AskingPrice == nil || *out.Client.AskingPrice != 180000 {
		t.Errorf("asking_price mismatch: %+v", out.Client.AskingPrice)
	}
}

func TestCaptureLeadBadRole(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "capture_lead", map[string]any{
		"full_name": "X",
		"role":      "landlord",
	})
	if !result.IsError {
		t.Fatal("unknown role should fail")
	}
}

func TestMatchClientTool(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "match_client", map[string]any{"client_id": "C0001"})
	if result.IsError {
		t.Fatalf("match_client returned error: %s", narrativeText(t, result))
	}

	var out MatchClientOutput
	structured(t, result, &out)
	if out.FiltersApplied.ClientName != "Sarah Mitchell" {
		t.Errorf("unexpected client name: %q", out.FiltersApplied.ClientName)
	}
	// Budget 100k, min 2 beds: only P1 qualifies (P2 too dear, P3 sold).
	if out.TotalResults != 1 {
		t.Fatalf("expected 1 match, got %d", out.TotalResults)
	}
	if out.Properties[0].PropertyID != "P1" {
		t.Errorf("expected P1, got %s", out.Properties[0].PropertyID)
	}
	for _, p := range out.Properties {
		if p.Price() > 100000 || p.Bedrooms < 2 || p.Sold() {
			t.Errorf("listing violates buyer preferences: %+v", p)
		}
	}
}

func TestMatchClientSellerRejected(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "match_client", map[string]any{"client_id": "C0002"})
	if !result.IsError {
		t.Fatal("matching a seller should fail")
	}
	if msg := narrativeText(t, result); !strings.Contains(msg, "buyer") {
		t.Errorf("error should mention role requirement: %q", msg)
	}
}

func TestMatchClientUnknown(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "match_client", map[string]any{"client_id": "C9999"})
	if !result.IsError {
		t.Fatal("unknown client should fail")
	}
}

func TestScheduleViewingTool(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "schedule_viewing", map[string]any{
		"property_id":     "P1",
		"buyer_client_id": "C0001",
		"datetime_iso":    "2025-11-25T15:00:00Z",
		"notes":           "First viewing",
	})
	if result.IsError {
		t.Fatalf("schedule_viewing returned error: %s", narrativeText(t, result))
	}

	var out ScheduleViewingOutput
	structured(t, result, &out)
	if out.ViewingID != "V1001" {
		t.Errorf("expected V1001, got %s", out.ViewingID)
	}
	if out.Buyer != "Sarah Mitchell" {
		t.Errorf("unexpected buyer: %q", out.Buyer)
	}
	if out.Datetime != "2025-11-25T15:00:00Z" {
		t.Errorf("datetime not echoed verbatim: %q", out.Datetime)
	}
	if out.Status != "booked" {
		t.Errorf("expected booked, got %q", out.Status)
	}

	// Conflicting slot 30 minutes later.
	result = callTool(t, session, "schedule_viewing", map[string]any{
		"property_id":     "P1",
		"buyer_client_id": "C0001",
		"datetime_iso":    "2025-11-25T15:30:00Z",
	})
	if !result.IsError {
		t.Fatal("30-minute gap should conflict")
	}

	// Two hours later is fine.
	result = callTool(t, session, "schedule_viewing", map[string]any{
		"property_id":     "P1",
		"buyer_client_id": "C0001",
		"datetime_iso":    "2025-11-25T17:00:00Z",
	})
	if result.IsError {
		t.Fatalf("2-hour gap should book: %s", narrativeText(t, result))
	}
}

func TestScheduleViewingSoldProperty(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "schedule_viewing", map[string]any{
		"property_id":     "P3",
		"buyer_client_id": "C0001",
		"datetime_iso":    "2025-11-26T10:00:00Z",
	})
	if !result.IsError {
		t.Fatal("sold property should be unavailable")
	}
	if msg := narrativeText(t, result); !strings.Contains(msg, "not available") {
		t.Errorf("unexpected error text: %q", msg)
	}
}

func TestScheduleViewingBadDatetime(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "schedule_viewing", map[string]any{
		"property_id":     "P1",
		"buyer_client_id": "C0001",
		"datetime_iso":    "next tuesday",
	})
	if !result.IsError {
		t.Fatal("unparseable datetime should fail")
	}
}

func TestViewLeadsTool(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "view_leads", map[string]any{})
	if result.IsError {
		t.Fatalf("view_leads returned error: %s", narrativeText(t, result))
	}

	var out ViewLeadsOutput
	structured(t, result, &out)
	if out.TotalResults != 2 {
		t.Errorf("expected 2 leads, got %d", out.TotalResults)
	}
	// Newest first.
	if out.Leads[0].ClientID != "C0002" {
		t.Errorf("expected C0002 first, got %s", out.Leads[0].ClientID)
	}
	if out.Summary.Buyers != 1 || out.Summary.Sellers != 1 || out.Summary.HotLeads != 1 {
		t.Errorf("unexpected summary: %+v", out.Summary)
	}
}

func TestViewLeadsFilteredSummaryUnfiltered(t *testing.T) {
	session := testSession(t)

	result := callTool(t, session, "view_leads", map[string]any{"role": "buyer"})
	var out ViewLeadsOutput
	structured(t, result, &out)
	if out.TotalResults != 1 {
		t.Errorf("expected 1 buyer, got %d", out.TotalResults)
	}
	// Summary still reflects the whole book.
	if out.Summary.TotalClients != 2 {
		t.Errorf("summary must be unfiltered: %+v", out.Summary)
	}
}
