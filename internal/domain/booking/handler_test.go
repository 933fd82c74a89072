package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(windows ...*AvailabilityWindow) (*Handler, *echo.Echo, *mockRepo) {
	svc, repo := newTestService(windows...)
	return NewHandler(svc), echo.New(), repo
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestHandler_AvailableSlots(t *testing.T) {
	h, e, _ := newTestHandler(window("09:00", "13:00"))

	q := "doctor_id=" + testDoctor.String() + "&location_id=" + testLocation.String() + "&date=2025-03-10"
	req := httptest.NewRequest(http.MethodGet, "/?"+q, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AvailableSlots(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp availableSlotsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Date != "2025-03-10" {
		t.Errorf("date = %q, want 2025-03-10", resp.Date)
	}
	if len(resp.Slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(resp.Slots))
	}
	if resp.RemainingSlotsForDay != 8 {
		t.Errorf("remaining_slots_for_day = %d, want 8", resp.RemainingSlotsForDay)
	}
	first := resp.Slots[0]
	if first.Time != "09:00" || first.Display != "09:00 AM" || !first.IsAvailable {
		t.Errorf("first slot = %+v, want available 09:00 / 09:00 AM", first)
	}
}

func TestHandler_AvailableSlots_BadInput(t *testing.T) {
	cases := map[string]string{
		"missing doctor": "location_id=" + testLocation.String() + "&date=2025-03-10",
		"bad location":   "doctor_id=" + testDoctor.String() + "&location_id=abc&date=2025-03-10",
		"bad date":       "doctor_id=" + testDoctor.String() + "&location_id=" + testLocation.String() + "&date=10-03-2025",
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			h, e, _ := newTestHandler(window("09:00", "13:00"))
			req := httptest.NewRequest(http.MethodGet, "/?"+q, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.AvailableSlots(c)
			if code := httpStatus(t, err); code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", code)
			}
		})
	}
}

func bookBody(timeOfDay string) string {
	return `{"doctor_id":"` + testDoctor.String() + `","location_id":"` + testLocation.String() +
		`","date":"2025-03-10","time":"` + timeOfDay + `","patient_name":"Asha Verma","age":34,"mobile":"9876543210"}`
}

func postBook(h *Handler, e *echo.Echo, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h.Book(c)
}

func TestHandler_Book(t *testing.T) {
	h, e, repo := newTestHandler(window("09:00", "13:00"))

	rec, err := postBook(h, e, bookBody("09:30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp bookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.ReferenceNumber == "" {
		t.Errorf("response = %+v, want success with a reference number", resp)
	}
	if resp.RemainingSlotsForDay != 7 {
		t.Errorf("remaining_slots_for_day = %d, want 7", resp.RemainingSlotsForDay)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestHandler_Book_Validation(t *testing.T) {
	h, e, _ := newTestHandler(window("09:00", "13:00"))

	body := `{"doctor_id":"` + testDoctor.String() + `","location_id":"` + testLocation.String() +
		`","date":"2025-03-10","time":"09:30"}`
	_, err := postBook(h, e, body)
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing patient fields, got %d", code)
	}
}

func TestHandler_Book_SlotNotOffered(t *testing.T) {
	h, e, _ := newTestHandler(window("09:00", "13:00"))

	_, err := postBook(h, e, bookBody("14:00"))
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404 for a time outside the schedule, got %d", code)
	}
}

func TestHandler_Book_SlotTaken(t *testing.T) {
	h, e, _ := newTestHandler(window("09:00", "13:00"))

	if _, err := postBook(h, e, bookBody("09:30")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := postBook(h, e, bookBody("09:30"))
	if code := httpStatus(t, err); code != http.StatusConflict {
		t.Errorf("expected 409 for an already taken slot, got %d", code)
	}
}

func TestHandler_Book_RepoFailure(t *testing.T) {
	h, e, repo := newTestHandler(window("09:00", "13:00"))
	repo.insertErr = errors.New("connection refused")

	_, err := postBook(h, e, bookBody("09:30"))
	if code := httpStatus(t, err); code != http.StatusInternalServerError {
		t.Errorf("expected 500 for a storage failure, got %d", code)
	}
}
