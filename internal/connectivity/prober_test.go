package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProber_OnlineWhenHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(server.URL, "@every 1h", time.Second)

	assert.False(t, prober.Online(), "offline until first probe")
	assert.True(t, prober.Probe(context.Background()))
	assert.True(t, prober.Online())
}

func TestProber_OfflineWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	prober := NewProber(server.URL, "@every 1h", time.Second)

	assert.False(t, prober.Probe(context.Background()))
	assert.False(t, prober.Online())
}

func TestProber_NotifiesOnTransition(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(server.URL, "@every 1h", time.Second)

	var transitions []bool
	unsubscribe := prober.Subscribe(func(online bool) {
		transitions = append(transitions, online)
	})

	prober.Probe(context.Background()) // offline -> online
	healthy.Store(false)
	prober.Probe(context.Background()) // online -> offline
	prober.Probe(context.Background()) // no change, no callback

	require.Equal(t, []bool{true, false}, transitions)

	unsubscribe()
	healthy.Store(true)
	prober.Probe(context.Background())
	assert.Equal(t, []bool{true, false}, transitions, "unsubscribed callback must not fire")
}

func TestProber_StartStop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(server.URL, "@every 1h", time.Second)
	require.NoError(t, prober.Start(context.Background()))
	assert.True(t, prober.Online(), "Start seeds the snapshot synchronously")
	prober.Stop()
}

func TestProber_InvalidSchedule(t *testing.T) {
	prober := NewProber("http://localhost:0", "not a schedule", time.Second)
	assert.Error(t, prober.Start(context.Background()))
}
