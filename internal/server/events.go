package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const heartbeatInterval = 15 * time.Second

// events streams the caller's active tasks as server-sent events. The
// first "tasks" event is the current snapshot; later ones follow writes.
func (h *handlers) events(c *gin.Context) {
	ctx := c.Request.Context()
	updates, unsubscribe := h.app.Tasks.Subscribe(ctx, h.owner(c))
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tasks, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(tasks)
			if err != nil {
				h.app.Logger.Error("encode task snapshot", "error", err)
				continue
			}
			if err := writeSSE(c.Writer, "tasks", string(data)); err != nil {
				return
			}
			c.Writer.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(c.Writer, ": heartbeat\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

func writeSSE(w io.Writer, event, data string) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
