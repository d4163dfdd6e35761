package devsession

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// ProxySubprotocol is the subprotocol websockify speaks for raw byte frames.
const ProxySubprotocol = "binary"

// DefaultProbeTimeout bounds the proxy handshake.
const DefaultProbeTimeout = 2 * time.Second

// ProbeProxy performs a WebSocket handshake against the proxy listening on
// port and closes the connection. A nil error means the proxy accepts
// connections.
func ProbeProxy(ctx context.Context, port int) error {
	return probeURL(ctx, fmt.Sprintf("ws://localhost:%d/", port))
}

func probeURL(ctx context.Context, url string) error {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: DefaultProbeTimeout,
		Subprotocols:     []string{ProxySubprotocol},
	}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("proxy handshake failed with status %s: %w", resp.Status, err)
		}
		return fmt.Errorf("proxy handshake failed: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		return fmt.Errorf("failed to close probe connection: %w", err)
	}
	return nil
}
