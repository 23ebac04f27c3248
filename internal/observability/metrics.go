package observability

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderramin/aionboard/internal/service"
)

const DefaultNamespace = "aionboard"

// Metrics exports use-case, cache, retry and HTTP metrics to Prometheus. A
// nil *Metrics records nothing.
type Metrics struct {
	useCaseDuration  *promclient.HistogramVec
	useCaseErrors    *promclient.CounterVec
	personasAssigned *promclient.CounterVec
	cacheLookups     *promclient.CounterVec
	persistRetries   promclient.Counter
	httpRequests     *promclient.CounterVec
	httpDuration     *promclient.HistogramVec
}

// NewMetrics registers all collectors on reg. Collectors that are already
// registered are reused, so calling it twice against one registry is safe.
func NewMetrics(namespace string, reg promclient.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}

	m := &Metrics{}
	var err error
	if m.useCaseDuration, err = register(reg, promclient.NewHistogramVec(promclient.HistogramOpts{
		Namespace: namespace,
		Name:      "use_case_duration_seconds",
		Help:      "Latency of service use cases.",
		Buckets:   promclient.DefBuckets,
	}, []string{"use_case"})); err != nil {
		return nil, err
	}
	if m.useCaseErrors, err = register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "use_case_errors_total",
		Help:      "Count of failed service use cases.",
	}, []string{"use_case"})); err != nil {
		return nil, err
	}
	if m.personasAssigned, err = register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "personas_assigned_total",
		Help:      "Completed onboardings by assigned persona.",
	}, []string{"persona"})); err != nil {
		return nil, err
	}
	if m.cacheLookups, err = register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "plan_cache_lookups_total",
		Help:      "Plan cache lookups by result.",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if m.persistRetries, err = register(reg, promclient.NewCounter(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "persist_retries_total",
		Help:      "Transactions retried after a transient storage failure.",
	})); err != nil {
		return nil, err
	}
	if m.httpRequests, err = register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})); err != nil {
		return nil, err
	}
	if m.httpDuration, err = register(reg, promclient.NewHistogramVec(promclient.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   promclient.DefBuckets,
	}, []string{"method", "route"})); err != nil {
		return nil, err
	}
	return m, nil
}

func register[T promclient.Collector](reg promclient.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are promclient.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	if m == nil {
		return
	}
	m.useCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
	if !event.Success {
		m.useCaseErrors.WithLabelValues(event.Name).Inc()
		return
	}
	if event.Name == "complete-onboarding" {
		if persona, ok := event.Fields["persona"].(string); ok && persona != "" {
			m.personasAssigned.WithLabelValues(persona).Inc()
		}
	}
}

// RecordCacheLookup matches planner.WithLookupHook.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecordRetry matches the notify hook of db.NewRetryingUnitOfWork.
func (m *Metrics) RecordRetry(int, error, time.Duration) {
	if m == nil {
		return
	}
	m.persistRetries.Inc()
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var _ service.UseCaseObserver = (*Metrics)(nil)
