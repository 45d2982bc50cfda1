// Package stdio implements the line-framed JSON-RPC transport over the
// stdin/stdout/stderr of a spawned child process.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creachadair/mds/queue"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mcpcore/mcp-go/correlator"
	"github.com/mcpcore/mcp-go/mcperr"
	"github.com/mcpcore/mcp-go/protocol"
)

// defaultRequestTimeout is the fixed per-request deadline.
const defaultRequestTimeout = 30 * time.Second

// ServerConfig is the immutable descriptor used to spawn the child.
type ServerConfig struct {
	// Command is the executable to run.
	Command string
	// Args are passed to Command in order.
	Args []string
	// Cwd, if non-empty, overrides the working directory.
	Cwd string
	// Env is merged over the inherited environment; a key here wins over
	// any identically named inherited variable.
	Env map[string]string
}

// NotificationHandler observes a notification the server sent unprompted.
// The default handler, used when none is supplied, logs at info level.
type NotificationHandler func(method string, params json.RawMessage)

// Config holds the transport's tunables.
type Config struct {
	Logger              *slog.Logger
	RequestTimeout      time.Duration
	NotificationHandler NotificationHandler
}

// Option configures a Config.
type Option func(*Config)

// WithLogger sets the logger used for background-task diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithRequestTimeout overrides the default 30s per-request deadline.
// Intended for tests; production callers should rely on the default.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) { c.RequestTimeout = d }
}

// WithNotificationHandler sets the sink for server-sent notifications.
func WithNotificationHandler(h NotificationHandler) Option {
	return func(c *Config) { c.NotificationHandler = h }
}

func defaultConfig() *Config {
	return &Config{
		Logger:         slog.Default(),
		RequestTimeout: defaultRequestTimeout,
	}
}

// Transport owns one child process and multiplexes its stdin/stdout into a
// request/response/notification bus. The zero value is not usable; use New.
type Transport struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	queue   *outboundQueue
	corr    *correlator.Correlator
	log     *slog.Logger
	notify  NotificationHandler
	timeout time.Duration

	group  *errgroup.Group
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// New spawns the configured child process and starts the writer, stdout
// reader, and stderr reader background tasks. Spawn failure surfaces as a
// KindIO *mcperr.Error naming the command, arguments, and underlying OS
// error.
func New(cfg ServerConfig, opts ...Option) (*Transport, error) {
	if cfg.Command == "" {
		return nil, mcperr.Protocol("server config requires a command")
	}

	options := defaultConfig()
	for _, opt := range opts {
		opt(options)
	}

	cmd := exec.Command(cfg.Command, cfg.Args...)
	if cfg.Cwd != "" {
		cmd.Dir = cfg.Cwd
	}
	cmd.Env = mergeEnv(os.Environ(), cfg.Env)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, mcperr.IO(err, "create stdin pipe for %s %v", cfg.Command, cfg.Args)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, mcperr.IO(err, "create stdout pipe for %s %v", cfg.Command, cfg.Args)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdin.Close()
		stdout.Close()
		return nil, mcperr.IO(err, "create stderr pipe for %s %v", cfg.Command, cfg.Args)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		stderr.Close()
		return nil, mcperr.IO(err, "spawn %s %v", cfg.Command, cfg.Args)
	}

	notify := options.NotificationHandler
	if notify == nil {
		notify = func(method string, params json.RawMessage) {
			options.Logger.Info("notification", "method", method, "params", string(params))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	t := &Transport{
		cmd:     cmd,
		stdin:   stdin,
		queue:   newOutboundQueue(),
		corr:    correlator.New(options.Logger),
		log:     options.Logger,
		notify:  notify,
		timeout: options.RequestTimeout,
		group:   group,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	// Whichever task ends first collapses the transport at once; the
	// watcher below then waits for the others to settle.
	collapseOnExit := func(task func() error) func() error {
		return func() error {
			err := task()
			t.shutdown(err)
			return err
		}
	}
	group.Go(collapseOnExit(func() error { return t.writeLoop(gctx) }))
	group.Go(collapseOnExit(func() error { return t.readStdout(stdout) }))
	group.Go(collapseOnExit(func() error { return t.readStderr(stderr) }))

	go func() {
		waitErr := group.Wait()
		t.shutdown(waitErr)
		close(t.done)
	}()

	return t, nil
}

func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(overrides))
	merged = append(merged, base...)
	for k, v := range overrides {
		merged = append(merged, fmt.Sprintf("%s=%s", k, v))
	}
	return merged
}

// writeLoop drains the outbound queue, serializing each message to a
// single line and flushing it to stdin.
func (t *Transport) writeLoop(ctx context.Context) error {
	w := bufio.NewWriter(t.stdin)
	for {
		line, ok := t.queue.pop()
		if !ok {
			return nil // queue closed and drained
		}
		if _, err := w.Write(line); err != nil {
			return mcperr.IO(err, "write to child stdin")
		}
		if err := w.WriteByte('\n'); err != nil {
			return mcperr.IO(err, "write newline to child stdin")
		}
		if err := w.Flush(); err != nil {
			return mcperr.IO(err, "flush child stdin")
		}
	}
}

// readStdout parses newline-delimited JSON-RPC messages from the child's
// stdout, routing responses to the correlator and notifications to the
// notification sink. A single malformed or unexpected line never stops
// the loop; a line longer than 1 MiB ends it with a KindIO error.
func (t *Transport) readStdout(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(trimSpace(line)) == 0 {
			continue
		}

		env, err := protocol.ParseLine(line)
		if err != nil {
			t.log.Info("discarding unparseable line from server", "error", err, "line", string(line))
			continue
		}

		switch {
		case env.Response != nil:
			t.deliverResponse(env.Response)
		case env.Notification != nil:
			t.notify(env.Notification.Method, env.Notification.Params)
		case env.Request != nil:
			t.log.Info("discarding unsupported inbound request from server", "method", env.Request.Method)
		}
	}
	if err := scanner.Err(); err != nil {
		return mcperr.IO(err, "read child stdout")
	}
	return nil // clean EOF: the child closed stdout
}

func (t *Transport) deliverResponse(resp *protocol.Response) {
	if resp.Error != nil {
		t.corr.Deliver(resp.ID, correlator.Outcome{
			Err: mcperr.RPC(resp.Error.Code, resp.Error.Message, resp.Error.Data),
		})
		return
	}
	t.corr.Deliver(resp.ID, correlator.Outcome{Result: resp.Result})
}

// readStderr drains the child's stderr continuously so it never blocks the
// child; every non-empty line is logged, never treated as fatal.
func (t *Transport) readStderr(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(trimSpace([]byte(line))) == 0 {
			continue
		}
		t.log.Info("server stderr", "line", line)
	}
	return nil
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// shutdown collapses the transport: it marks it closed, drains the
// correlator with a ChannelClosed error for every still-pending request,
// and kills the child so it never outlives the transport. Every caller
// sees ChannelClosed regardless of what ended the transport; the
// background-task failure, if any, is folded into the message for
// logging but never surfaces as its own error kind. Idempotent; safe to
// call from multiple goroutines.
func (t *Transport) shutdown(taskErr error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()

	t.queue.close()
	t.cancel()

	closeErr := mcperr.ChannelClosed("transport closed")
	if taskErr != nil {
		closeErr = mcperr.ChannelClosed("transport closed: %v", taskErr)
	}
	t.corr.Close(closeErr)

	if t.cmd != nil && t.cmd.Process != nil {
		_ = t.cmd.Process.Kill()
	}
}

// SendRequest allocates a fresh UUID correlation id, enqueues method/params
// as a request, and waits up to the configured timeout for the matching
// response.
func (t *Transport) SendRequest(ctx context.Context, method string, params any) (json.RawMessage, error) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return nil, mcperr.ChannelClosed("transport closed")
	}

	id := uuid.NewString()
	req, err := protocol.NewRequest(id, method, params)
	if err != nil {
		return nil, err
	}

	slot := correlator.NewSlot()
	if err := t.corr.Register(id, slot); err != nil {
		return nil, err
	}

	line, err := json.Marshal(req)
	if err != nil {
		t.corr.Cancel(id)
		return nil, mcperr.Parse(err, "marshal request %s", method)
	}
	if err := t.queue.push(line); err != nil {
		t.corr.Cancel(id)
		return nil, err
	}

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	select {
	case outcome := <-slot:
		if outcome.Err != nil {
			return nil, outcome.Err
		}
		return outcome.Result, nil
	case <-ctx.Done():
		t.corr.Cancel(id)
		return nil, ctx.Err()
	case <-timer.C:
		t.corr.Cancel(id)
		return nil, mcperr.Timeout("no response to %s within %s", method, t.timeout)
	}
}

// SendNotification enqueues a fire-and-forget notification. It returns
// success once enqueued; failure only when the transport is closed.
func (t *Transport) SendNotification(method string, params any) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return mcperr.ChannelClosed("transport closed")
	}

	notif, err := protocol.NewNotification(method, params)
	if err != nil {
		return err
	}
	line, err := json.Marshal(notif)
	if err != nil {
		return mcperr.Parse(err, "marshal notification %s", method)
	}
	return t.queue.push(line)
}

// Close performs a best-effort teardown: it stops accepting new writes,
// kills the child, and waits briefly for the background tasks to settle.
// Close is idempotent and safe to call more than once.
func (t *Transport) Close() error {
	t.shutdown(nil)

	select {
	case <-t.done:
	case <-time.After(5 * time.Second):
	}

	if t.cmd != nil && t.cmd.Process != nil {
		_ = t.cmd.Wait()
	}
	return nil
}

// outboundQueue is an unbounded FIFO of serialized lines: push never
// blocks the caller, and the writer wakes only when work is present.
type outboundQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	q      *queue.Queue[[]byte]
	closed bool
}

func newOutboundQueue() *outboundQueue {
	oq := &outboundQueue{q: queue.New[[]byte]()}
	oq.cond = sync.NewCond(&oq.mu)
	return oq
}

func (o *outboundQueue) push(line []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return mcperr.ChannelClosed("transport closed")
	}
	o.q.Add(line)
	o.cond.Signal()
	return nil
}

func (o *outboundQueue) pop() ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for o.q.Len() == 0 && !o.closed {
		o.cond.Wait()
	}
	if o.q.Len() == 0 {
		return nil, false
	}
	v, _ := o.q.Pop()
	return v, true
}

func (o *outboundQueue) close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	o.cond.Broadcast()
}
