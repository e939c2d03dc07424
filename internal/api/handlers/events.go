package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/events"
	"github.com/kuriftu/essence/internal/httputil"
	"github.com/kuriftu/essence/internal/ledger"
)

// EventsHandler handles GET /api/events, a Server-Sent Events stream of
// points, tier and check-in events. With ?member=ID only that member's
// events are sent, starting with a snapshot of the current balance.
func EventsHandler(hub *events.Hub, svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			slog.Error("SSE not supported: response writer does not implement http.Flusher")
			httputil.Error(w, http.StatusInternalServerError, config.ErrorDatabase, "streaming not supported")
			return
		}

		member := r.URL.Query().Get("member")
		var snapshot *events.PointsData
		if member != "" {
			sum, err := svc.Account(member)
			if err != nil {
				writeError(w, r, err)
				return
			}
			snapshot = &events.PointsData{
				MemberID: member,
				Balance:  sum.Progress.Total,
				Tier:     sum.Progress.Tier.ID,
				Percent:  sum.Progress.ProgressPct,
			}
		}

		// The server write timeout would otherwise cut the stream.
		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
			slog.Debug("could not clear write deadline for SSE stream", "error", err)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		ch := hub.Subscribe()
		defer func() {
			hub.Unsubscribe(ch)
			slog.Info("SSE client disconnected", "remoteAddr", r.RemoteAddr, "member", member)
		}()

		slog.Info("SSE client connected",
			"remoteAddr", r.RemoteAddr,
			"member", member,
			"totalClients", hub.ClientCount(),
		)

		if snapshot != nil {
			writeEvent(w, events.TypePoints, snapshot)
		}
		flusher.Flush()

		keepAlive := time.NewTicker(config.EventKeepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case event, ok := <-ch:
				if !ok {
					slog.Info("event channel closed, ending stream", "remoteAddr", r.RemoteAddr)
					return
				}
				if member != "" && event.MemberID != member {
					continue
				}
				writeEvent(w, event.Type, event.Data)
				flusher.Flush()

			case <-keepAlive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				flusher.Flush()

			case <-r.Context().Done():
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal SSE event data", "type", eventType, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data)
}
