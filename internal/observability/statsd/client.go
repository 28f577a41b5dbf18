package statsd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Sink describes the minimal interface required to emit StatsD-style metrics.
type Sink interface {
	Count(name string, value int64, tags map[string]string)
	Gauge(name string, value float64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}

// Discard is a Sink that drops every metric.
var Discard Sink = discard{}

type discard struct{}

func (discard) Count(string, int64, map[string]string)           {}
func (discard) Gauge(string, float64, map[string]string)         {}
func (discard) Timing(string, time.Duration, map[string]string) {}

const (
	// maxPacketSize keeps batched datagrams under a typical Ethernet MTU.
	maxPacketSize        = 1432
	defaultFlushInterval = time.Second
)

// Config describes how to connect to a StatsD-compatible sink.
type Config struct {
	Enabled    bool
	Address    string
	Prefix     string
	Logger     *slog.Logger
	GlobalTags map[string]string
	// FlushInterval bounds how long a line waits in the batch buffer.
	FlushInterval time.Duration
}

// Client batches metric lines and ships them over UDP using the DogStatsD
// line protocol. It is safe for concurrent use; a nil *Client drops metrics.
type Client struct {
	prefix     string
	globalTags string

	logger *slog.Logger

	mu   sync.Mutex
	conn net.Conn
	buf  bytes.Buffer

	stop chan struct{}
	done chan struct{}
}

var _ Sink = (*Client)(nil)

// NewClient dials the configured endpoint and starts the flush loop.
// A disabled config yields a client that drops everything.
func NewClient(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		prefix:     sanitizeName(cfg.Prefix),
		globalTags: formatTags(cfg.GlobalTags),
		logger:     logger,
	}

	address := strings.TrimSpace(cfg.Address)
	if !cfg.Enabled || address == "" {
		return c, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := (&net.Dialer{}).DialContext(ctx, "udp", address)
	if err != nil {
		return nil, fmt.Errorf("statsd dial %s: %w", address, err)
	}
	c.conn = conn

	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.flushLoop(interval)

	return c, nil
}

// Enabled reports whether the client actively emits metrics.
func (c *Client) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Count increments a counter metric.
func (c *Client) Count(name string, value int64, tags map[string]string) {
	c.add(name, strconv.FormatInt(value, 10)+"|c", tags)
}

// Gauge records the current value for a gauge metric.
func (c *Client) Gauge(name string, value float64, tags map[string]string) {
	c.add(name, formatFloat(value)+"|g", tags)
}

// Timing records a timing metric in milliseconds.
func (c *Client) Timing(name string, value time.Duration, tags map[string]string) {
	ms := float64(value) / float64(time.Millisecond)
	c.add(name, formatFloat(ms)+"|ms", tags)
}

// Flush sends any buffered lines immediately.
func (c *Client) Flush() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushLocked()
}

// Close stops the flush loop, sends what is buffered and releases the connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()
	if stop != nil {
		close(stop)
		<-c.done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.flushLocked()
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) flushLoop(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Flush()
		}
	}
}

func (c *Client) add(name, payload string, tags map[string]string) {
	if c == nil {
		return
	}
	line := c.line(name, payload, tags)
	if line == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	if c.buf.Len() > 0 && c.buf.Len()+1+len(line) > maxPacketSize {
		c.flushLocked()
	}
	if c.buf.Len() > 0 {
		c.buf.WriteByte('\n')
	}
	c.buf.WriteString(line)
}

func (c *Client) flushLocked() {
	if c.conn == nil || c.buf.Len() == 0 {
		return
	}
	if _, err := c.conn.Write(c.buf.Bytes()); err != nil {
		c.logger.Debug("statsd write failed", "error", err)
	}
	c.buf.Reset()
}

// line renders "prefix.name:payload|#tags". Per-call tags override global ones.
func (c *Client) line(name, payload string, tags map[string]string) string {
	metric := sanitizeName(name)
	if metric == "" {
		return ""
	}
	if c.prefix != "" {
		metric = c.prefix + "." + metric
	}
	t := formatTags(tags)
	switch {
	case t == "" && c.globalTags == "":
		return metric + ":" + payload
	case t == "":
		return metric + ":" + payload + "|#" + c.globalTags
	case c.globalTags == "":
		return metric + ":" + payload + "|#" + t
	default:
		return metric + ":" + payload + "|#" + c.globalTags + "," + t
	}
}

// sanitizeName lower-cases a metric name and replaces characters that have
// meaning in the line protocol.
func sanitizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = nameReplacer.Replace(n)
	for strings.Contains(n, "..") {
		n = strings.ReplaceAll(n, "..", ".")
	}
	return strings.Trim(n, ".")
}

var (
	nameReplacer = strings.NewReplacer(" ", "_", "/", "_", ":", "_", "|", "_", "@", "_", "#", "_")
	tagReplacer  = strings.NewReplacer(",", "_", "|", "_", "#", "_", "\n", "_")
)

// formatTags renders tags sorted by key as "k:v,k2:v2". Empty keys are dropped.
func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	clean := make(map[string]string, len(tags))
	for k, v := range tags {
		key := tagReplacer.Replace(strings.TrimSpace(k))
		key = strings.ReplaceAll(key, ":", "_")
		if key == "" {
			continue
		}
		if _, seen := clean[key]; !seen {
			keys = append(keys, key)
		}
		clean[key] = tagReplacer.Replace(strings.TrimSpace(v))
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		if clean[k] == "" {
			parts[i] = k
			continue
		}
		parts[i] = k + ":" + clean[k]
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
