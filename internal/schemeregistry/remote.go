package schemeregistry

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"easywealth/internal/platform/logger"
)

const maxConcurrentFetches = 8

// Remote fetches per-scheme return overrides from GET {baseURL}/schemes/{id}.
// Answers, including misses, are cached for the life of the process.
type Remote struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
	cache   sync.Map // scheme id -> string ("" means no override)
}

type schemeResponse struct {
	SchemeID   string `json:"scheme_id"`
	ReturnRate string `json:"return_rate"`
}

// NewRemote returns nil when baseURL is empty so callers can pass it through unchecked
func NewRemote(baseURL string, timeout time.Duration, client *fasthttp.Client) *Remote {
	if baseURL == "" {
		return nil
	}
	if client == nil {
		client = &fasthttp.Client{
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
		}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Remote{baseURL: baseURL, timeout: timeout, client: client}
}

// ReturnRates resolves overrides for ids concurrently; failures yield no entry
func (r *Remote) ReturnRates(ctx context.Context, ids []string) map[string]string {
	result := make(map[string]string, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, id := range ids {
		if v, ok := r.cache.Load(id); ok {
			if s := v.(string); s != "" {
				result[id] = s
			}
			continue
		}
		g.Go(func() error {
			rate, err := r.fetch(gctx, id)
			if err != nil {
				logger.Named("schemeregistry").Warn().Err(err).Str("scheme_id", id).Msg("registry lookup failed; using catalogue value")
				return nil
			}
			r.cache.Store(id, rate)
			if rate != "" {
				mu.Lock()
				result[id] = rate
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return result
}

func (r *Remote) fetch(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.baseURL + "/schemes/" + id)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline := time.Now().Add(r.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := r.client.DoDeadline(req, resp, deadline); err != nil {
		return "", err
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return "", nil
	default:
		return "", &statusError{code: resp.StatusCode()}
	}

	var sr schemeResponse
	if err := json.Unmarshal(resp.Body(), &sr); err != nil {
		return "", err
	}
	return sr.ReturnRate, nil
}

type statusError struct{ code int }

func (e *statusError) Error() string {
	return "registry returned " + fasthttp.StatusMessage(e.code)
}
