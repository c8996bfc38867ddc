// internal/analytics/resolver/resolver.go

// Package resolver is the entry point for a conversational turn: it tries the
// remote text-generation endpoint first, memoizes successes, and degrades to
// the local pattern classifier whenever the remote path is unconfigured,
// unreachable or inconclusive. It is the system's terminal safety net and
// never returns a failure to its caller.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"analytics-dashboard/internal/analytics/cache"
	"analytics-dashboard/internal/analytics/catalog"
	"analytics-dashboard/internal/analytics/classifier"
	commonhttp "analytics-dashboard/internal/common/http"
	"analytics-dashboard/internal/common/metrics"
	"analytics-dashboard/internal/models"
)

var (
	ErrRemoteCallFailed = errors.New("REMOTE_RESOLUTION_FAILED")
	ErrEmptyReply       = errors.New("REMOTE_EMPTY_REPLY")
)

// Remote resolutions sit above the 0.95 pattern cap so the two trust levels
// stay distinguishable downstream.
const remoteConfidence = 0.98

const systemPrompt = `You are a business analytics assistant. The user asks about ` +
	`companies, users, invoices, orders, payments, leads, opportunities or provider ` +
	`commissions. Answer in one short sentence naming the business entity, the ` +
	`measurement and the chart type (bar, line or insight) that fits the question.`

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Config is the remote endpoint configuration, exposed to the resolver as a
// read-only snapshot.
type Config struct {
	BaseURL        string
	CompletionPath string
	APIKey         string
	Model          string
	Timeout        time.Duration
}

// IsConfigured reports whether the remote path can be attempted at all.
func (c Config) IsConfigured() bool {
	return c.BaseURL != "" && c.APIKey != "" && c.Model != ""
}

// Resolver owns its configuration and cache explicitly so tests can
// substitute fakes without shared globals.
type Resolver struct {
	config Config
	client *commonhttp.Client
	cache  cache.Cache
	logger Logger
}

func New(config Config, client *commonhttp.Client, c cache.Cache, log Logger) *Resolver {
	if config.CompletionPath == "" {
		config.CompletionPath = "/v1/chat/completions"
	}
	return &Resolver{
		config: config,
		client: client,
		cache:  c,
		logger: log.With(map[string]interface{}{
			"component": "resolver",
		}),
	}
}

// Resolve handles one user turn. It always returns a structurally valid
// resolution: remote failure, a meaningless reply and an unmatchable query
// all degrade to values, never to errors.
func (r *Resolver) Resolve(ctx context.Context, query string, convCtx *models.Context) *models.Resolution {
	start := time.Now()
	key := cache.Key(r.config.Model, query, convCtx)

	if cached, ok := r.cache.Get(ctx, key); ok {
		metrics.CacheHits.Inc()
		resolution := r.finish(*cached, models.SourceCache, convCtx)
		resolution.UsedCache = true
		r.observe(start, models.SourceCache)
		return resolution
	}

	if !r.config.IsConfigured() {
		resolution := r.fallback(query, convCtx, "unconfigured")
		r.observe(start, models.SourcePattern)
		return resolution
	}

	reply, err := r.complete(ctx, query, convCtx)
	if err != nil {
		// Transport failures, bad statuses and empty replies are all the
		// same non-fatal event: log and fall through. One attempt per turn.
		metrics.RemoteCallsFailed.WithLabelValues(failureReason(err)).Inc()
		r.logger.Warn("remote resolution failed, using pattern fallback", map[string]interface{}{
			"error": err.Error(),
		})
		resolution := r.fallback(query, convCtx, "remote_error")
		r.observe(start, models.SourcePattern)
		return resolution
	}

	parsed := parseReply(reply, convCtx)
	if parsed.entity == "" || parsed.metric == "" {
		// The remote reply carried nothing usable; the classifier decides,
		// with its confidence floored to reflect that a remote attempt was
		// made.
		result := classifier.Classify(query, convCtx)
		result.Confidence = math.Max(result.Confidence, models.ConfidenceFallbackFloor)
		resolution := r.finish(result, models.SourcePattern, convCtx)
		resolution.FallbackUsed = true
		r.cache.Set(ctx, key, result)
		r.observe(start, models.SourcePattern)
		return resolution
	}

	intent := models.IntentShowChart
	if parsed.contextual {
		intent = models.IntentChangeVisualization
	}
	result := models.AnalyticsQuery{
		Intent:             intent,
		Entity:             parsed.entity,
		Metric:             parsed.metric,
		Visualization:      parsed.visualization,
		Timeframe:          models.DefaultTimeframe,
		Confidence:         remoteConfidence,
		IsValidCombination: catalog.IsValidCombination(parsed.entity, parsed.metric),
		IsContextual:       parsed.contextual,
	}

	r.logger.Info("query resolved remotely", map[string]interface{}{
		"entity":        string(result.Entity),
		"metric":        string(result.Metric),
		"visualization": string(result.Visualization),
		"contextual":    result.IsContextual,
	})

	r.cache.Set(ctx, key, result)
	resolution := r.finish(result, models.SourceLLM, convCtx)
	r.observe(start, models.SourceLLM)
	return resolution
}

// fallback is the local pattern path; it cannot fail.
func (r *Resolver) fallback(query string, convCtx *models.Context, reason string) *models.Resolution {
	result := classifier.Classify(query, convCtx)
	r.logger.Info("query resolved by pattern fallback", map[string]interface{}{
		"reason":     reason,
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
	})
	resolution := r.finish(result, models.SourcePattern, convCtx)
	resolution.FallbackUsed = true
	return resolution
}

// finish attaches the presentation payload: title and mock chart data for
// anything confident enough to render.
func (r *Resolver) finish(result models.AnalyticsQuery, source models.Source, convCtx *models.Context) *models.Resolution {
	resolution := &models.Resolution{Query: result, Source: source}
	if result.Entity != "" && result.Metric != "" && result.Confidence >= models.ConfidenceChartMinimum {
		resolution.Title = catalog.TitleFor(result.Metric)
		resolution.Data = catalog.SampleDataFor(result.Metric, result.Visualization, result.Timeframe)
	}
	return resolution
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs the single remote attempt for this turn.
func (r *Resolver) complete(ctx context.Context, query string, convCtx *models.Context) (string, error) {
	userContent := query
	if convCtx != nil && convCtx.Entity != "" {
		userContent = fmt.Sprintf("Current chart: %s (%s). %s", convCtx.Title, convCtx.Metric, query)
	}

	body, _ := json.Marshal(completionRequest{
		Model: r.config.Model,
		Messages: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Stream: false,
	})

	url := strings.TrimRight(r.config.BaseURL, "/") + r.config.CompletionPath
	resp, err := r.client.PostJSON(ctx, url, map[string]string{
		"Authorization": "Bearer " + r.config.APIKey,
	}, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteCallFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrRemoteCallFailed, resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrRemoteCallFailed, err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return parsed.Choices[0].Message.Content, nil
}

func (r *Resolver) observe(start time.Time, source models.Source) {
	metrics.ResolutionsTotal.WithLabelValues(string(source)).Inc()
	metrics.ResolutionDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())
}

func failureReason(err error) string {
	if errors.Is(err, ErrEmptyReply) {
		return "empty_reply"
	}
	return "transport"
}
