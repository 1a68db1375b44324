package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
)

// SessionCounter reports how many quiz sessions are live.
type SessionCounter interface {
	Live(ctx context.Context) (int, error)
}

// HealthHandler answers liveness probes with the live session count.
func HealthHandler(sessions SessionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		live, err := sessions.Live(r.Context())
		if err != nil {
			log.Printf("healthz session count: %v", err)
			fmt.Fprint(w, "ok live=unknown")
			return
		}
		fmt.Fprintf(w, "ok live=%d", live)
	}
}
