package meeting

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harshit001122/Tracking-system/internal/shared/idgen"

	"github.com/gofiber/fiber/v2"
)

func newMeetingApp() *fiber.App {
	svc := NewService(NewStore(idgen.NewSequence("meeting"), idgen.NewSequence("history")), nil)
	app := fiber.New()
	RegisterRoutes(app.Group("/api/meetings"), svc)
	RegisterHistoryRoutes(app.Group("/api/meeting-history"), svc)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestMeetingHandlers(t *testing.T) {
	app := newMeetingApp()

	resp := send(t, app, http.MethodPost, "/api/meetings/", `{"employeeId":"e1","location":{"lat":28.6,"lng":77.2,"address":"Connaught Place"},"clientName":"Acme","leadId":""}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %d", resp.StatusCode)
	}
	var created map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&created)
	if created["id"] != "meeting_001" || created["status"] != StatusInProgress {
		t.Fatalf("unexpected meeting: %v", created)
	}
	if _, ok := created["leadId"]; ok {
		t.Fatalf("blank leadId should be omitted")
	}

	resp = send(t, app, http.MethodPost, "/api/meetings/", `{"employeeId":"e1"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}

	resp = send(t, app, http.MethodPut, "/api/meetings/meeting_001", `{"status":"completed","meetingDetails":{"discussion":" "}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for blank discussion, got %d", resp.StatusCode)
	}

	resp = send(t, app, http.MethodPut, "/api/meetings/meeting_001", `{"status":"completed","meetingDetails":{"discussion":"Pricing","customers":[{"customerName":"Acme","customerEmployeeName":"Ravi"}]}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %d", resp.StatusCode)
	}
	var updated Meeting
	_ = json.NewDecoder(resp.Body).Decode(&updated)
	if updated.EndTime == nil || updated.MeetingDetails == nil {
		t.Fatalf("expected completed meeting with details: %+v", updated)
	}

	resp = send(t, app, http.MethodGet, "/api/meetings?employeeId=e1&status=completed", "")
	var list ListResponse
	_ = json.NewDecoder(resp.Body).Decode(&list)
	if resp.StatusCode != http.StatusOK || list.Total != 1 {
		t.Fatalf("unexpected list: %d %+v", resp.StatusCode, list)
	}

	resp = send(t, app, http.MethodGet, "/api/meetings?startDate=yesterday", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for invalid date, got %d", resp.StatusCode)
	}

	resp = send(t, app, http.MethodGet, "/api/meetings/meeting_001", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %d", resp.StatusCode)
	}

	resp = send(t, app, http.MethodDelete, "/api/meetings/meeting_001", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %d", resp.StatusCode)
	}

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp = send(t, app, method, "/api/meetings/meeting_001", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s expected not found, got %d", method, resp.StatusCode)
		}
	}
	resp = send(t, app, http.MethodPut, "/api/meetings/meeting_001", `{"notes":"late"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update expected not found, got %d", resp.StatusCode)
	}
}

func TestMeetingHistoryHandlers(t *testing.T) {
	app := newMeetingApp()

	resp := send(t, app, http.MethodPost, "/api/meeting-history/", `{"sessionId":"session_001","employeeId":"e1","meetingDetails":{"discussion":"Renewal","customerName":"Acme","customerEmployeeName":"Ravi"},"leadInfo":{"stage":"won"}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create history status: %d", resp.StatusCode)
	}
	var entry HistoryEntry
	_ = json.NewDecoder(resp.Body).Decode(&entry)
	if entry.ID != "history_001" || len(entry.MeetingDetails.Customers) != 1 || entry.LeadInfo["stage"] != "won" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	resp = send(t, app, http.MethodPost, "/api/meeting-history/", `{"sessionId":"session_001","employeeId":"e1","meetingDetails":{"discussion":"Renewal"}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request without customers, got %d", resp.StatusCode)
	}

	resp = send(t, app, http.MethodGet, "/api/meeting-history?employeeId=e1", "")
	var page HistoryPage
	_ = json.NewDecoder(resp.Body).Decode(&page)
	if resp.StatusCode != http.StatusOK || page.Total != 1 || page.Page != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected page: %d %+v", resp.StatusCode, page)
	}

	for _, query := range []string{"page=0", "page=x", "limit=-5"} {
		resp = send(t, app, http.MethodGet, "/api/meeting-history?"+query, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected bad request for %s, got %d", query, resp.StatusCode)
		}
	}
}
