package progrock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	packprogrock "go.trai.ch/pack/internal/adapters/telemetry/progrock"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func newReporter(t *testing.T) (*packprogrock.Reporter, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return packprogrock.NewReporter(log), log
}

func TestReporter_VertexLifecycle(t *testing.T) {
	r, log := newReporter(t)
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	running := &progrock.Vertex{Id: "1", Name: "bundle dist.js", Started: timestamppb.New(started)}
	require.NoError(t, r.WriteStatus(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{running}}))

	status, ok := r.Status("1")
	require.True(t, ok)
	assert.Equal(t, domain.VertexStatusRunning, status)

	log.EXPECT().Info("bundle dist.js done in 1.5s")
	completed := &progrock.Vertex{
		Id:        "1",
		Name:      "bundle dist.js",
		Started:   timestamppb.New(started),
		Completed: timestamppb.New(started.Add(1500 * time.Millisecond)),
	}
	require.NoError(t, r.WriteStatus(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{completed}}))

	// A repeated update for a finished vertex is not reported twice.
	require.NoError(t, r.WriteStatus(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{completed}}))

	status, _ = r.Status("1")
	assert.Equal(t, domain.VertexStatusCompleted, status)
}

func TestReporter_Cached(t *testing.T) {
	r, log := newReporter(t)

	log.EXPECT().Info("bundle dist.js is up to date")
	require.NoError(t, r.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "1", Name: "bundle dist.js", Cached: true}},
	}))

	status, _ := r.Status("1")
	assert.Equal(t, domain.VertexStatusCached, status)
}

func TestReporter_Failed(t *testing.T) {
	r, log := newReporter(t)
	msg := "build execution failed"

	log.EXPECT().Warn("bundle dist.js failed")
	require.NoError(t, r.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{
			Id:        "1",
			Name:      "bundle dist.js",
			Completed: timestamppb.New(time.Now()),
			Error:     &msg,
		}},
	}))

	status, _ := r.Status("1")
	assert.Equal(t, domain.VertexStatusFailed, status)
}

func TestReporter_Logs(t *testing.T) {
	r, log := newReporter(t)

	gomock.InOrder(
		log.EXPECT().Info("wrote dist.js (12 bytes)"),
		log.EXPECT().Warn("duplicate key"),
		log.EXPECT().Warn("unused import"),
	)
	require.NoError(t, r.WriteStatus(&progrock.StatusUpdate{
		Logs: []*progrock.VertexLog{
			{Vertex: "1", Stream: progrock.LogStream_STDOUT, Data: []byte("wrote dist.js (12 bytes)\n")},
			{Vertex: "1", Stream: progrock.LogStream_STDERR, Data: []byte("duplicate key\n\nunused import\n")},
		},
	}))
}

func TestReporter_UnknownVertex(t *testing.T) {
	r, _ := newReporter(t)

	_, ok := r.Status("missing")
	assert.False(t, ok)
	assert.NoError(t, r.Close())
}
