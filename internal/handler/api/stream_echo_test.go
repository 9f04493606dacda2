package api

import (
	"net/http/httptest"
	"strings"
	"testing"

	"DormBack/internal/domain/models"

	"github.com/gorilla/websocket"
)

func TestStreamReplaysSeries(t *testing.T) {
	_, _, e := newTestHandler(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream?seed=42&length=5&start=2023-01-01"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var points []models.MarketPoint
	for {
		var p models.MarketPoint
		if err := conn.ReadJSON(&p); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				break
			}
			t.Fatalf("read: %v", err)
		}
		points = append(points, p)
	}

	if len(points) != 5 {
		t.Fatalf("received %d points, want 5", len(points))
	}
	if got := points[0].Date.Format("2006-01-02"); got != "2023-01-01" {
		t.Fatalf("first date = %s", got)
	}
	if got := points[4].Date.Format("2006-01-02"); got != "2023-01-05" {
		t.Fatalf("last date = %s", got)
	}
}

func TestStreamIsDeterministic(t *testing.T) {
	_, _, e := newTestHandler(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	read := func() []models.MarketPoint {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream?seed=9&length=4"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		var out []models.MarketPoint
		for {
			var p models.MarketPoint
			if err := conn.ReadJSON(&p); err != nil {
				break
			}
			out = append(out, p)
		}
		return out
	}

	a, b := read(), read()
	if len(a) != 4 || len(b) != 4 {
		t.Fatalf("lengths: %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Price != b[i].Price || a[i].Volume != b[i].Volume {
			t.Fatalf("replay %d differs", i)
		}
	}
}
