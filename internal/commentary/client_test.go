package commentary

import (
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// testSink is a minimal commentary endpoint that records binary frames.
type testSink struct {
	mu     sync.Mutex
	frames [][]byte
}

func (s *testSink) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType == websocket.BinaryMessage {
			s.mu.Lock()
			s.frames = append(s.frames, msg)
			s.mu.Unlock()
		}
	}
}

func (s *testSink) frameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *testSink) firstFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[0]
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestClientSendsJPEGSnapshots(t *testing.T) {
	sink := &testSink{}
	srv := httptest.NewServer(http.HandlerFunc(sink.handler))
	defer srv.Close()

	var mu sync.Mutex
	var statuses []Status
	c := New(wsURL(srv), func(s Status) {
		mu.Lock()
		statuses = append(statuses, s)
		mu.Unlock()
	}, nil)
	c.Connect()
	defer c.Close()

	connected := waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, s := range statuses {
			if s == StatusConnected {
				return true
			}
		}
		return false
	})
	if !connected {
		t.Fatal("Client never reported StatusConnected")
	}

	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	c.SendSnapshot(img)

	if !waitFor(t, 2*time.Second, func() bool { return sink.frameCount() > 0 }) {
		t.Fatal("Sink never received a snapshot")
	}

	frame := sink.firstFrame()
	if len(frame) < 2 || frame[0] != 0xff || frame[1] != 0xd8 {
		t.Errorf("Snapshot is not JPEG (magic %x)", frame[:2])
	}
}

func TestClientDialFailureIsNonFatal(t *testing.T) {
	var mu sync.Mutex
	var last Status
	c := New("ws://127.0.0.1:1/nope", func(s Status) {
		mu.Lock()
		last = s
		mu.Unlock()
	}, nil)
	c.Connect()
	defer c.Close()

	errored := waitFor(t, 3*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last == StatusError
	})
	if !errored {
		t.Error("Dial failure should surface as StatusError")
	}

	// Sends after failure must be silent no-ops
	c.SendSnapshot(image.NewRGBA(image.Rect(0, 0, 8, 8)))
}

func TestSendSnapshotNeverBlocks(t *testing.T) {
	// No connection at all: every send must return immediately.
	c := New("ws://127.0.0.1:1/nope", nil, nil)
	defer c.Close()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			c.SendSnapshot(img)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SendSnapshot blocked")
	}
}

func TestStatusString(t *testing.T) {
	if StatusConnected.String() != "connected" || StatusClosed.String() != "closed" {
		t.Error("Status strings are off")
	}
}
