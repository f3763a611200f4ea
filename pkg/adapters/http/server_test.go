package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/logicx"
	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/observability"
	"github.com/aretw0/logicx/pkg/schema"
)

func newTestHandler(t *testing.T, opts ...Option) (*logicx.Editor, http.Handler) {
	t.Helper()
	ed := logicx.New()
	srv := NewServer(ed, opts...)
	t.Cleanup(srv.Close)
	return ed, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	_, h := newTestHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, strings.TrimSpace(logicx.Version), decode[map[string]string](t, w)["version"])
}

func TestGetProject(t *testing.T) {
	_, h := newTestHandler(t)

	w := do(t, h, "GET", "/project", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	doc := decode[schema.Document](t, w)
	assert.Len(t, doc.Placements, 3)
	assert.Len(t, doc.Templates, 5)

	w = do(t, h, "GET", "/project?format=yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "placements:")

	w = do(t, h, "GET", "/project?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutProject(t *testing.T) {
	ed, h := newTestHandler(t)

	t.Run("Invalid Leaves Project", func(t *testing.T) {
		w := do(t, h, "PUT", "/project", `{"placements": [{"instance": 0, "template": 42}]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := decode[map[string]any](t, w)
		assert.Contains(t, resp["error"], "unknown template")
		assert.Len(t, resp["details"], 1)
		assert.Equal(t, 3, ed.Project().Len())
	})

	t.Run("YAML Body", func(t *testing.T) {
		body := `
templates:
  - {id: 3, name: input, outputs: [q], driver: {kind: input}}
placements:
  - {instance: 7, template: 3, pos: {x: 1, y: 1}}
`
		w := do(t, h, "PUT", "/project?format=yaml", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		p := ed.Project()
		assert.Equal(t, 1, p.Len())
		_, ok := p.Placement(7)
		assert.True(t, ok)
	})

	t.Run("Reset", func(t *testing.T) {
		w := do(t, h, "POST", "/project/reset", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, ed.Project().Len())
	})
}

func TestPointer_DragInstance(t *testing.T) {
	ed, h := newTestHandler(t)

	w := do(t, h, "POST", "/pointer", `{"type": "press_instance", "x": 100, "y": 100, "instance": 2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[map[string]any](t, w)
	assert.Equal(t, true, resp["accepted"])
	assert.Equal(t, "drag_instance", resp["session"].(map[string]any)["kind"])

	w = do(t, h, "POST", "/pointer", `{"type": "move", "x": 170, "y": 135}`)
	assert.Equal(t, true, decode[map[string]any](t, w)["accepted"])

	w = do(t, h, "POST", "/pointer", `{"type": "release", "button": 2}`)
	assert.Equal(t, false, decode[map[string]any](t, w)["accepted"], "mismatched button")

	w = do(t, h, "POST", "/pointer", `{"type": "release"}`)
	resp = decode[map[string]any](t, w)
	assert.Equal(t, true, resp["accepted"])
	assert.NotContains(t, resp, "session")

	pl, _ := ed.Project().Placement(2)
	assert.Equal(t, domain.Pt(4, 1), pl.Pos)
}

func TestPointer_WireGesture(t *testing.T) {
	ed, h := newTestHandler(t)

	w := do(t, h, "POST", "/pointer", `{"type": "press_terminal", "x": 10, "y": 20, "terminal": "o0:0"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, "GET", "/session", "")
	st := decode[map[string]any](t, w)
	pending := st["pending"].(map[string]any)
	assert.Equal(t, "O0", pending["terminal"])
	assert.Equal(t, "O0:0", st["session"].(map[string]any)["origin"])

	w = do(t, h, "POST", "/pointer", `{"type": "release_terminal", "terminal": "I2:1"}`)
	resp := decode[PointerResponse](t, w)
	assert.True(t, resp.Accepted)
	require.NotNil(t, resp.Wire)
	assert.Equal(t, "O0:0", resp.Wire.From)
	assert.Equal(t, "I2:1", resp.Wire.To)
	assert.Nil(t, resp.Session)
	assert.Nil(t, resp.Pending)

	assert.Equal(t, []domain.Connection{domain.InputOf(2, 1)}, ed.Project().Targets(domain.OutputOf(0, 0)))
}

func TestPointer_PanAndWheel(t *testing.T) {
	ed, h := newTestHandler(t)

	do(t, h, "POST", "/pointer", `{"type": "press_surface", "x": 0, "y": 0, "button": 1}`)
	do(t, h, "POST", "/pointer", `{"type": "move", "x": 10, "y": 5, "button": 1}`)
	do(t, h, "POST", "/pointer", `{"type": "release", "button": 1}`)
	w := do(t, h, "POST", "/pointer", `{"type": "wheel", "dx": 2, "dy": 3}`)

	resp := decode[PointerResponse](t, w)
	assert.True(t, resp.Accepted)
	assert.Equal(t, domain.Pt(8, 2), resp.View.Scroll)
	assert.Equal(t, domain.Pt(8, 2), ed.View().Scroll)
}

func TestPointer_BadRequests(t *testing.T) {
	_, h := newTestHandler(t)

	for name, body := range map[string]string{
		"Malformed":        `{"type":`,
		"Unknown Type":     `{"type": "hover"}`,
		"Button Range":     `{"type": "move", "button": 7}`,
		"Missing Instance": `{"type": "press_instance"}`,
		"Bad Terminal":     `{"type": "press_terminal", "terminal": "Q1:0"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(t, h, "POST", "/pointer", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGraphAndNetlist(t *testing.T) {
	ed, h := newTestHandler(t)

	w := do(t, h, "POST", "/netlist", "O0:0 -> I2:0, I2:1\nO2:0 -> O1:0\n")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, 2.0, resp["applied"])
	assert.Len(t, resp["rejected"], 1)
	assert.Equal(t, 2, ed.Project().ConnectionCount())

	w = do(t, h, "POST", "/netlist", "O0:0 =>")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `n0 -- "q → b" --> n2`)
}

func TestSnapshots(t *testing.T) {
	ed, h := newTestHandler(t)

	w := do(t, h, "PUT", "/snapshots/base", "")
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, ed.Edit("delete", func(p *domain.Project) error { return p.Delete(2) }))

	w = do(t, h, "GET", "/snapshots", "")
	assert.Equal(t, []string{"base"}, decode[[]string](t, w))

	w = do(t, h, "POST", "/snapshots/base/restore", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, ed.Project().Len())

	w = do(t, h, "DELETE", "/snapshots/base", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "POST", "/snapshots/base/restore", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	_, h := newTestHandler(t, WithMetrics(m))

	do(t, h, "GET", "/health", "")
	do(t, h, "GET", "/health", "")

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	n, err := testutil.GatherAndCount(reg, "logicx_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCORSPreflight(t *testing.T) {
	_, h := newTestHandler(t)
	w := do(t, h, "OPTIONS", "/pointer", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	ed, h := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				return strings.TrimSpace(data)
			}
		}
	}

	assert.Equal(t, "connected", readData())

	ed.Reset()

	var ev domain.ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(readData()), &ev))
	assert.Equal(t, "reset", ev.Cause)
	assert.Equal(t, domain.EventProjectChanged, ev.Type)
}
