package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

const (
	defaultBaseURL     = "http://router.project-osrm.org"
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 2
	defaultBackoffBase = time.Second
	defaultRateLimit   = rate.Limit(5)
	defaultRateBurst   = 5

	metersPerMile  = 1609.34
	secondsPerHour = 3600.0
)

// RequestObserver receives upstream call outcomes; implementations must be
// safe for concurrent use. A nil observer disables instrumentation.
type RequestObserver interface {
	ObserveRequest(outcome string, elapsed time.Duration)
	IncRetry(reason string)
}

// OSRMClient resolves driving routes against an OSRM HTTP endpoint and
// normalizes them to the canonical miles/hours representation.
type OSRMClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	observer    RequestObserver
}

// ClientOptions configures an OSRMClient; zero values fall back to defaults.
type ClientOptions struct {
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
	RateLimit   rate.Limit
	RateBurst   int
	Clock       shared.Clock
	Observer    RequestObserver
}

// NewOSRMClient creates a client. Transport failures are retried with
// exponential backoff plus jitter; the public OSRM demo server tolerates
// about one request per second, hence the conservative limiter defaults.
func NewOSRMClient(opts ClientOptions) *OSRMClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase == 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = defaultRateBurst
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}

	return &OSRMClient{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		rateLimiter: rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		baseURL:     opts.BaseURL,
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		clock:       opts.Clock,
		observer:    opts.Observer,
	}
}

// GetRoute fetches and normalizes the driving route between two locations.
func (c *OSRMClient) GetRoute(ctx context.Context, from, to shared.Location) (*domainRouting.Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&steps=true&annotations=true",
		c.baseURL, from.Lon, from.Lat, to.Lon, to.Lat)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, domainRouting.NewTransportError("rate limiter wait interrupted", err)
		}

		started := c.clock.Now()
		route, err, retryable := c.fetch(ctx, url, from, to)
		c.observe(outcomeOf(err), c.clock.Now().Sub(started))

		if err == nil {
			return route, nil
		}
		lastErr = err

		if !retryable || attempt >= c.maxRetries || ctx.Err() != nil {
			break
		}
		if c.observer != nil {
			c.observer.IncRetry(outcomeOf(err))
		}
		c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
	}

	return nil, lastErr
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Legs     []struct {
			Steps []osrmStep `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type osrmStep struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Name     string  `json:"name"`
	Maneuver struct {
		Location []float64 `json:"location"` // [lon, lat]
	} `json:"maneuver"`
}

// fetch performs one upstream attempt. The third return value reports
// whether the failure is worth retrying.
func (c *OSRMClient) fetch(ctx context.Context, url string, from, to shared.Location) (*domainRouting.Route, error, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domainRouting.NewTransportError("failed to create request", err), false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainRouting.NewTransportError("routing request failed", err), true
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainRouting.NewTransportError("failed to read routing response", err), true
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, domainRouting.NewTransportError(
			fmt.Sprintf("routing request failed with status code %d", resp.StatusCode), nil), retryable
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, domainRouting.NewMalformedError("failed to parse routing response", err), false
	}

	if len(parsed.Routes) == 0 {
		return nil, domainRouting.NewUnreachableError("no routes found in the routing response"), false
	}

	route, err := c.normalize(parsed, from, to)
	if err != nil {
		return nil, err, false
	}
	return route, nil, false
}

// normalize converts the upstream meters/seconds route into miles/hours and
// materializes step endpoints: each step starts at its maneuver location and
// ends where the next step starts; the final step ends at the destination.
func (c *OSRMClient) normalize(parsed osrmResponse, from, to shared.Location) (*domainRouting.Route, error) {
	best := parsed.Routes[0]

	route := &domainRouting.Route{
		TotalMiles: best.Distance / metersPerMile,
		TotalHours: best.Duration / secondsPerHour,
	}

	var raw []osrmStep
	for _, leg := range best.Legs {
		raw = append(raw, leg.Steps...)
	}

	for i, step := range raw {
		if len(step.Maneuver.Location) < 2 {
			return nil, domainRouting.NewMalformedError("step maneuver has no location", nil)
		}

		start := shared.NewLocation(step.Maneuver.Location[1], step.Maneuver.Location[0], "")
		var end shared.Location
		if i+1 < len(raw) {
			next := raw[i+1]
			if len(next.Maneuver.Location) < 2 {
				return nil, domainRouting.NewMalformedError("step maneuver has no location", nil)
			}
			end = shared.NewLocation(next.Maneuver.Location[1], next.Maneuver.Location[0], "")
		} else {
			end = to
		}

		name := step.Name
		if name == "" {
			name = "Unnamed Road"
		}

		route.Steps = append(route.Steps, domainRouting.RouteStep{
			Start:    start,
			End:      end,
			Miles:    step.Distance / metersPerMile,
			Hours:    step.Duration / secondsPerHour,
			RoadName: name,
		})
	}

	if len(route.Steps) == 0 {
		route.Steps = []domainRouting.RouteStep{
			domainRouting.SynthesizeDirectStep(from, to, route.TotalMiles, route.TotalHours),
		}
	}

	return route, nil
}

func (c *OSRMClient) observe(outcome string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(outcome, elapsed)
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	if re, ok := err.(*domainRouting.RouteError); ok {
		return re.Kind.String()
	}
	return "error"
}

// addJitter spreads retries by up to 25% of the base delay.
func addJitter(d time.Duration) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(d) / 4))
	return d + jitter
}
