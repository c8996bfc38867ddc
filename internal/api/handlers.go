// internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"analytics-dashboard/internal/analytics/catalog"
	"analytics-dashboard/internal/analytics/session"
	commonerrors "analytics-dashboard/internal/common/errors"
	"analytics-dashboard/internal/models"
)

type messageRequest struct {
	Content string `json:"content"`
}

type messageResponse struct {
	UserMessage      models.Message `json:"userMessage"`
	AssistantMessage models.Message `json:"assistantMessage"`
}

type feedbackRequest struct {
	MessageID string `json:"messageId"`
	Helpful   bool   `json:"helpful"`
	Comment   string `json:"comment,omitempty"`
}

type widgetResolveRequest struct {
	Entity        string `json:"entity"`
	Metric        string `json:"metric"`
	Visualization string `json:"visualization,omitempty"`
	Timeframe     string `json:"timeframe,omitempty"`
}

type widgetOption struct {
	Entity  models.Entity  `json:"entity"`
	Metrics []widgetMetric `json:"metrics"`
}

type widgetMetric struct {
	Metric models.Metric `json:"metric"`
	Title  string        `json:"title"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	respondJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewSessionNotFoundError(id))
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewMessageInvalidError("unreadable body"))
		return
	}
	if result := s.validator.ValidateMessage(body); !result.Valid {
		s.errs.HandleRequestError(w, r,
			commonerrors.NewMessageInvalidError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}
	var req messageRequest
	_ = json.Unmarshal(body, &req)

	// One turn at a time per session: the context advanced by this turn must
	// be visible before the next turn reads it.
	release, err := s.sessions.BeginTurn(id)
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewSessionNotFoundError(id))
		return
	}
	defer release()

	convCtx, err := s.sessions.Context(id)
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewSessionNotFoundError(id))
		return
	}

	userMsg, err := s.sessions.Append(id, models.Message{
		Role:    "user",
		Content: req.Content,
	})
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewSessionNotFoundError(id))
		return
	}

	resolution := s.resolver.Resolve(r.Context(), req.Content, convCtx)

	assistantMsg, err := s.sessions.Append(id, models.Message{
		Role:       "assistant",
		Content:    composeReply(req.Content, resolution),
		Resolution: resolution,
	})
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewSessionNotFoundError(id))
		return
	}

	if s.obs != nil {
		s.obs.RecordRequest(r.Context(), "messages", string(resolution.Source))
	}

	respondJSON(w, http.StatusOK, messageResponse{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.sessions.Reset(id); err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewSessionNotFoundError(id))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handlePostFeedback(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.sessions.Get(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			s.errs.HandleRequestError(w, r, commonerrors.NewSessionNotFoundError(id))
			return
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewMessageInvalidError("unreadable body"))
		return
	}
	if result := s.validator.ValidateFeedback(body); !result.Valid {
		s.errs.HandleRequestError(w, r,
			commonerrors.NewMessageInvalidError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}
	var req feedbackRequest
	_ = json.Unmarshal(body, &req)

	if s.feedback == nil {
		// Persistence disabled; acknowledge without saving.
		s.logger.Warn("feedback received but persistence is disabled", map[string]interface{}{
			"sessionId": id,
		})
		respondJSON(w, http.StatusAccepted, map[string]bool{"saved": false})
		return
	}

	err = s.feedback.Save(r.Context(), models.Feedback{
		SessionID: id,
		MessageID: req.MessageID,
		Helpful:   req.Helpful,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewFeedbackSaveFailedError(err))
		return
	}
	respondJSON(w, http.StatusCreated, map[string]bool{"saved": true})
}

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	options := make([]widgetOption, 0, len(models.AllEntities))
	for _, entity := range models.AllEntities {
		opt := widgetOption{Entity: entity}
		for _, metric := range catalog.MetricsFor(entity) {
			opt.Metrics = append(opt.Metrics, widgetMetric{
				Metric: metric,
				Title:  catalog.TitleFor(metric),
			})
		}
		options = append(options, opt)
	}
	respondJSON(w, http.StatusOK, options)
}

func (s *Server) handleResolveWidget(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errs.HandleRequestError(w, r, commonerrors.NewMessageInvalidError("unreadable body"))
		return
	}
	if result := s.validator.ValidateWidgetResolve(body); !result.Valid {
		s.errs.HandleRequestError(w, r,
			commonerrors.NewMessageInvalidError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}
	var req widgetResolveRequest
	_ = json.Unmarshal(body, &req)

	entity := models.Entity(req.Entity)
	if !entity.Valid() {
		s.errs.HandleRequestError(w, r, commonerrors.NewUnknownWidgetError(req.Entity))
		return
	}

	metric := models.Metric(req.Metric)
	vis := models.Visualization(req.Visualization)
	if !vis.Valid() {
		vis = models.VisualizationBar
	}
	timeframe := models.Timeframe(req.Timeframe)
	if timeframe == "" {
		timeframe = models.DefaultTimeframe
	}

	respondJSON(w, http.StatusOK, models.Resolution{
		Query: models.AnalyticsQuery{
			Intent:             models.IntentShowChart,
			Entity:             entity,
			Metric:             metric,
			Visualization:      vis,
			Timeframe:          timeframe,
			Confidence:         1,
			IsValidCombination: catalog.IsValidCombination(entity, metric),
		},
		Title:  catalog.TitleFor(metric),
		Data:   catalog.SampleDataFor(metric, vis, timeframe),
		Source: models.SourcePattern,
	})
}
