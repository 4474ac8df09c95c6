// Package odoo provides XML-RPC access to an Odoo ERP instance.
package odoo

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Odoo operations used by the CRM tools.
type Client interface {
	// UID returns the authenticated user id, authenticating on first use.
	UID(ctx context.Context) (int64, error)

	ExecuteKw(ctx context.Context, table, method string, args []any, kwargs map[string]any) (any, error)

	Search(ctx context.Context, table string, domain []any, limit int) ([]int64, error)
	SearchRead(ctx context.Context, table string, domain []any, fields []string, limit int) ([]map[string]any, error)
	Create(ctx context.Context, table string, values map[string]any) (int64, error)
	Write(ctx context.Context, table string, ids []int64, values map[string]any) (bool, error)
}

// Config holds connection parameters for one Odoo instance.
type Config struct {
	URL      string
	Database string
	Username string
	Password string
	Timeout  time.Duration
}

// ClientOption configures the Odoo client.
type ClientOption func(*rpcClient)

// WithRateLimit sets a per-second rate limit for Odoo calls.
func WithRateLimit(rps float64) ClientOption {
	return func(c *rpcClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// rpcClient talks to the /xmlrpc/2/common and /xmlrpc/2/object endpoints.
//
// NOTE: kolo/xmlrpc does not accept context.Context, so calls run in a
// goroutine and the ctx governs how long we wait for them. The HTTP
// transport carries the hard timeout so abandoned calls do not pile up.
type rpcClient struct {
	cfg     Config
	common  *xmlrpc.Client
	object  *xmlrpc.Client
	limiter *rate.Limiter

	mu  sync.Mutex
	uid int64
}

// New creates an Odoo client. It fails fast on incomplete config; the
// actual authentication happens lazily on the first call.
func New(cfg Config, opts ...ClientOption) (Client, error) {
	if cfg.URL == "" || cfg.Database == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, eris.New("odoo: url, database, username and password are all required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		ResponseHeaderTimeout: timeout,
		IdleConnTimeout:       90 * time.Second,
	}

	common, err := xmlrpc.NewClient(cfg.URL+"/xmlrpc/2/common", transport)
	if err != nil {
		return nil, eris.Wrap(err, "odoo: common endpoint")
	}
	object, err := xmlrpc.NewClient(cfg.URL+"/xmlrpc/2/object", transport)
	if err != nil {
		return nil, eris.Wrap(err, "odoo: object endpoint")
	}

	c := &rpcClient{cfg: cfg, common: common, object: object}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *rpcClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// call runs an XML-RPC call under ctx.
func call(ctx context.Context, client *xmlrpc.Client, method string, args []any) (any, error) {
	type callResult struct {
		reply any
		err   error
	}
	done := make(chan callResult, 1)
	go func() {
		var reply any
		err := client.Call(method, args, &reply)
		done <- callResult{reply: reply, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.reply, res.err
	}
}

func (c *rpcClient) UID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uid != 0 {
		return c.uid, nil
	}

	reply, err := call(ctx, c.common, "authenticate", []any{
		c.cfg.Database, c.cfg.Username, c.cfg.Password, map[string]any{},
	})
	if err != nil {
		return 0, eris.Wrap(err, "odoo: authenticate")
	}

	uid, ok := toInt64(reply)
	if !ok || uid == 0 {
		// Odoo returns boolean false on bad credentials.
		return 0, eris.New("odoo: authentication rejected, check credentials")
	}
	c.uid = uid
	return uid, nil
}

func (c *rpcClient) ExecuteKw(ctx context.Context, table, method string, args []any, kwargs map[string]any) (any, error) {
	uid, err := c.UID(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "odoo: rate limit")
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}

	reply, err := call(ctx, c.object, "execute_kw", []any{
		c.cfg.Database, uid, c.cfg.Password, table, method, args, kwargs,
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("odoo: %s.%s", table, method))
	}
	return reply, nil
}

func (c *rpcClient) Search(ctx context.Context, table string, domain []any, limit int) ([]int64, error) {
	kwargs := map[string]any{}
	if limit > 0 {
		kwargs["limit"] = limit
	}
	reply, err := c.ExecuteKw(ctx, table, "search", []any{domain}, kwargs)
	if err != nil {
		return nil, err
	}
	return toInt64Slice(reply), nil
}

func (c *rpcClient) SearchRead(ctx context.Context, table string, domain []any, fields []string, limit int) ([]map[string]any, error) {
	kwargs := map[string]any{}
	if len(fields) > 0 {
		kwargs["fields"] = fields
	}
	if limit > 0 {
		kwargs["limit"] = limit
	}
	reply, err := c.ExecuteKw(ctx, table, "search_read", []any{domain}, kwargs)
	if err != nil {
		return nil, err
	}
	return toRecords(reply), nil
}

func (c *rpcClient) Create(ctx context.Context, table string, values map[string]any) (int64, error) {
	reply, err := c.ExecuteKw(ctx, table, "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}
	id, ok := toInt64(reply)
	if !ok {
		return 0, eris.New(fmt.Sprintf("odoo: create %s returned non-numeric id %v", table, reply))
	}
	return id, nil
}

func (c *rpcClient) Write(ctx context.Context, table string, ids []int64, values map[string]any) (bool, error) {
	args := []any{ids, values}
	reply, err := c.ExecuteKw(ctx, table, "write", args, nil)
	if err != nil {
		return false, err
	}
	ok, _ := reply.(bool)
	return ok, nil
}
