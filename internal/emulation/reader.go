package emulation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hypebeast/go-osc/osc"

	"github.com/oshokin/facetrack/internal/logger"
)

// DefaultOSCAddress is where face tracking senders publish by default.
const DefaultOSCAddress = "127.0.0.1:9000"

// maxPacketSize bounds a single UDP datagram.
const maxPacketSize = 65535

// errUnknownPacket is returned for data that is neither a message nor a bundle.
var errUnknownPacket = errors.New("not an osc message or bundle")

// unknownArgument stands for an argument that is neither a number nor a string.
const unknownArgument = "[unknown]"

// Entry is one address and the text of its latest arguments.
type Entry struct {
	Address string
	Value   string
}

// OSCReader keeps the latest arguments received for every OSC address.
// The most recent write wins.
type OSCReader struct {
	conn net.PacketConn

	mu     sync.RWMutex
	values map[string]string
}

// NewOSCReader returns a reader that is not bound to any socket.
// Packets can still be fed with HandlePacket.
func NewOSCReader() *OSCReader {
	return &OSCReader{values: make(map[string]string)}
}

// Listen binds a UDP socket on address.
func Listen(address string) (*OSCReader, error) {
	conn, err := net.ListenPacket("udp", address)
	if err != nil {
		return nil, fmt.Errorf("listen for osc on %s: %w", address, err)
	}

	r := NewOSCReader()
	r.conn = conn

	return r, nil
}

// Addr returns the bound address, or nil for an unbound reader.
func (r *OSCReader) Addr() net.Addr {
	if r.conn == nil {
		return nil
	}

	return r.conn.LocalAddr()
}

// Serve reads packets until ctx ends or the socket is closed.
// Malformed packets are logged and skipped.
func (r *OSCReader) Serve(ctx context.Context) error {
	if r.conn == nil {
		return errors.New("osc reader is not listening")
	}

	stop := context.AfterFunc(ctx, func() {
		_ = r.conn.Close()
	})
	defer stop()

	logger.InfoKV(ctx, "OSC listener started", "address", r.conn.LocalAddr().String())

	buf := make([]byte, maxPacketSize)

	for {
		n, _, err := r.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			return fmt.Errorf("read osc packet: %w", err)
		}

		if err = r.HandlePacket(buf[:n]); err != nil {
			logger.DebugKV(ctx, "Skipping malformed OSC packet", "error", err)
		}
	}
}

// Close releases the socket.
func (r *OSCReader) Close() error {
	if r.conn == nil {
		return nil
	}

	if err := r.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("close osc listener: %w", err)
	}

	return nil
}

// HandlePacket decodes a message or a bundle and stores its arguments.
func (r *OSCReader) HandlePacket(data []byte) error {
	packet, err := osc.ParsePacket(string(data))
	if err != nil {
		return fmt.Errorf("parse osc packet: %w", err)
	}

	if packet == nil {
		return errUnknownPacket
	}

	r.store(packet)

	return nil
}

func (r *OSCReader) store(packet osc.Packet) {
	switch p := packet.(type) {
	case *osc.Message:
		r.storeMessage(p)
	case *osc.Bundle:
		for _, msg := range p.Messages {
			r.storeMessage(msg)
		}

		for _, nested := range p.Bundles {
			r.store(nested)
		}
	}
}

func (r *OSCReader) storeMessage(msg *osc.Message) {
	value := FormatArguments(msg.Arguments)

	r.mu.Lock()
	r.values[msg.Address] = value
	r.mu.Unlock()
}

// GetValue returns the latest argument text for address.
func (r *OSCReader) GetValue(address string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[address]

	return value, ok
}

// Values returns every known address with its latest value, sorted by address.
func (r *OSCReader) Values() []Entry {
	r.mu.RLock()

	entries := make([]Entry, 0, len(r.values))
	for address, value := range r.values {
		entries = append(entries, Entry{Address: address, Value: value})
	}

	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Address < entries[j].Address
	})

	return entries
}

// FormatArguments renders OSC arguments as space separated text: numbers as
// is, strings quoted, anything else as [unknown].
func FormatArguments(args []any) string {
	parts := make([]string, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case float32:
			parts = append(parts, strconv.FormatFloat(float64(v), 'g', -1, 32))
		case float64:
			parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
		case int32:
			parts = append(parts, strconv.FormatInt(int64(v), 10))
		case int64:
			parts = append(parts, strconv.FormatInt(v, 10))
		case string:
			parts = append(parts, strconv.Quote(v))
		default:
			parts = append(parts, unknownArgument)
		}
	}

	return strings.Join(parts, " ")
}
