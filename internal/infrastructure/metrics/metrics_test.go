package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Observe(t *testing.T) {
	m := NewPrometheus(func() int { return 3 })

	m.ObservePrediction(200*time.Millisecond, 3, nil)
	m.ObservePrediction(time.Second, 0, errors.New("boom"))
	m.ObserveCommit(2)
	m.ObserveCommit(1)
	m.ObserveUndo()

	require.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("error")))
	require.Equal(t, 3.0, testutil.ToFloat64(m.committedShapes))
	require.Equal(t, 1.0, testutil.ToFloat64(m.undos))
}

func TestHandler(t *testing.T) {
	m := NewPrometheus(func() int { return 2 })
	m.ObserveCommit(5)

	srv := httptest.NewServer(NewHandler(m.Registry()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "sam_annotator_committed_shapes_total 5")
	require.Contains(t, string(body), "sam_annotator_active_sessions 2")
}
