package progrock

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

var _ progrock.Writer = (*Reporter)(nil)

// Reporter consumes progrock status updates and renders vertex progress
// through a logger. A line is emitted when a vertex reaches a new terminal
// state and for every line written to a vertex's output streams.
type Reporter struct {
	logger ports.Logger

	mu     sync.Mutex
	states map[string]domain.VertexStatus
}

// NewReporter creates a Reporter writing to logger.
func NewReporter(logger ports.Logger) *Reporter {
	return &Reporter{
		logger: logger,
		states: make(map[string]domain.VertexStatus),
	}
}

// WriteStatus implements progrock.Writer.
func (r *Reporter) WriteStatus(update *progrock.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range update.Logs {
		r.processLog(l)
	}
	for _, v := range update.Vertexes {
		r.processVertex(v)
	}
	return nil
}

// Close implements progrock.Writer.
func (r *Reporter) Close() error {
	return nil
}

// Status returns the last observed status of the vertex with the given id.
func (r *Reporter) Status(id string) (domain.VertexStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.states[id]
	return status, ok
}

func (r *Reporter) processLog(l *progrock.VertexLog) {
	for _, line := range strings.Split(string(l.Data), "\n") {
		if line == "" {
			continue
		}
		if l.Stream == progrock.LogStream_STDERR {
			r.logger.Warn(line)
		} else {
			r.logger.Info(line)
		}
	}
}

func (r *Reporter) processVertex(v *progrock.Vertex) {
	status := vertexStatus(v)
	if prev, seen := r.states[v.Id]; seen && prev == status {
		return
	}
	r.states[v.Id] = status

	if !status.IsTerminal() {
		return
	}

	switch status {
	case domain.VertexStatusCached:
		r.logger.Info(v.Name + " is up to date")
	case domain.VertexStatusFailed:
		r.logger.Warn(v.Name + " failed")
	default:
		r.logger.Info(fmt.Sprintf("%s done%s", v.Name, elapsed(v)))
	}
}

func vertexStatus(v *progrock.Vertex) domain.VertexStatus {
	switch {
	case v.Cached:
		return domain.VertexStatusCached
	case v.Completed == nil:
		return domain.VertexStatusRunning
	case v.Error != nil, v.Canceled:
		return domain.VertexStatusFailed
	default:
		return domain.VertexStatusCompleted
	}
}

func elapsed(v *progrock.Vertex) string {
	if v.Started == nil || v.Completed == nil {
		return ""
	}
	d := v.Completed.AsTime().Sub(v.Started.AsTime())
	return " in " + d.Round(time.Millisecond).String()
}
