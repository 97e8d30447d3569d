package lifecycle

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Send delivers m to the collector listening on socketPath. Delivery is a
// single datagram; there is no acknowledgement.
func Send(socketPath string, m Message) error {
	if m.TS.IsZero() {
		m.TS = time.Now().UTC()
	}
	if err := m.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if len(payload) >= DefaultMaxPayloadBytes {
		return fmt.Errorf("message is %d bytes, limit is %d", len(payload), DefaultMaxPayloadBytes-1)
	}

	addr, err := net.ResolveUnixAddr("unixgram", socketPath)
	if err != nil {
		return fmt.Errorf("resolve unix addr: %w", err)
	}
	conn, err := net.DialUnix("unixgram", nil, addr)
	if err != nil {
		return fmt.Errorf("dial collector: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("send %s: %w", m.Op, err)
	}
	return nil
}
