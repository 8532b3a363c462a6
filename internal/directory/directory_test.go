package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(Options{BaseURL: srv.URL, AuthToken: "tok-123"})
	return c, srv
}

func TestBookedSlots(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/bookings/slots" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2026-08-31" {
			t.Fatalf("expected date query 2026-08-31, got %q", got)
		}
		if got := r.Header.Get("x-auth-token"); got != "tok-123" {
			t.Fatalf("expected auth token header, got %q", got)
		}
		if got := r.Header.Get("x-request-id"); got == "" {
			t.Fatalf("expected a request id header")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"bookedSlots": []string{"10:00", "14:30"}})
	})

	slots, err := c.BookedSlots(context.Background(), "2026-08-31")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 2 || slots[0] != "10:00" || slots[1] != "14:30" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestCreateBooking(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bookings" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var nb NewBooking
		if err := json.NewDecoder(r.Body).Decode(&nb); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if nb.TimeSlot != "10:00" || nb.Status != StatusConfirmed {
			t.Fatalf("unexpected payload: %+v", nb)
		}
		_ = json.NewEncoder(w).Encode(Booking{ID: "abc", Name: nb.Name, TimeSlot: nb.TimeSlot, Status: nb.Status})
	})

	b, err := c.CreateBooking(context.Background(), NewBooking{
		Name: "Jo Smith", Phone: "5550123456", Service: "Hair Styling",
		Date: "2026-08-31", TimeSlot: "10:00", Status: StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.ID != "abc" {
		t.Fatalf("expected created id abc, got %q", b.ID)
	}
}

func TestServerMessageSurfaced(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "slot already booked"})
	})

	_, err := c.CreateBooking(context.Background(), NewBooking{})
	if err == nil {
		t.Fatalf("expected error")
	}
	msg, ok := ServerMessage(err)
	if !ok || msg != "slot already booked" {
		t.Fatalf("expected server message, got %q (ok=%v)", msg, ok)
	}
}

func TestErrorWithoutMessageBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.BookedSlots(context.Background(), "2026-08-31")
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := ServerMessage(err); ok {
		t.Fatalf("expected no server message for a non-JSON body")
	}
}

func TestIsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "no such booking"})
	})

	_, err := c.BookingByID(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestAllBookingsParams(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "20" || q.Get("status") != "pending" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Has("date") {
			t.Fatalf("empty date filter must be omitted")
		}
		_ = json.NewEncoder(w).Encode(BookingPage{Total: 1, Page: 2, Pages: 3})
	})

	page, err := c.AllBookings(context.Background(), ListBookingsParams{Page: 2, Limit: 20, Status: "pending"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Total != 1 || page.Pages != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
