package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/firejune/notion-github-embed/internal/api/middleware"
	"github.com/firejune/notion-github-embed/internal/calendar"
	"github.com/firejune/notion-github-embed/internal/models"
	"github.com/firejune/notion-github-embed/internal/services/chart"
	"github.com/firejune/notion-github-embed/internal/services/contributions"
)

// GraphHandler serves contribution graphs as SVG and JSON.
type GraphHandler struct {
	Provider contributions.Provider
	Renderer *chart.Renderer
	// Location is used when the request carries no tz parameter.
	Location    *time.Location
	CacheMaxAge time.Duration

	logger *zap.Logger
	now    func() time.Time
}

// NewGraphHandler creates a new instance of GraphHandler.
func NewGraphHandler(provider contributions.Provider, renderer *chart.Renderer, loc *time.Location, cacheMaxAge time.Duration, logger *zap.Logger) *GraphHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &GraphHandler{
		Provider:    provider,
		Renderer:    renderer,
		Location:    loc,
		CacheMaxAge: cacheMaxAge,
		logger:      logger,
		now:         time.Now,
	}
}

// graphResponse is the JSON form of a computed graph.
type graphResponse struct {
	Username string               `json:"username"`
	Link     string               `json:"link"`
	Options  models.RenderOptions `json:"options"`
	chart.Graph
}

// graphRequest is what every endpoint parses out of the URL.
type graphRequest struct {
	username string
	options  models.RenderOptions
	window   calendar.Window
	token    string
}

func (h *GraphHandler) parseRequest(r *http.Request) (graphRequest, error) {
	username := mux.Vars(r)["username"]
	if !ValidUsername(username) {
		return graphRequest{}, fmt.Errorf("ユーザー名が不正です: %q", username)
	}

	q := r.URL.Query()
	loc := h.Location
	// "+09:00" arrives as " 09:00" when the client did not escape the plus.
	if tz := strings.ReplaceAll(q.Get("tz"), " ", "+"); tz != "" {
		parsed, err := calendar.ParseLocation(tz)
		if err != nil {
			return graphRequest{}, err
		}
		loc = parsed
	}

	w := calendar.NewWindow(h.now(), loc, calendar.DefaultWeekStart)
	token := strings.TrimSpace(q.Get("v"))
	if token == "" {
		token = w.Token()
	}
	return graphRequest{
		username: username,
		options:  chart.DecodeOptions(q),
		window:   w,
		token:    token,
	}, nil
}

func (h *GraphHandler) build(w http.ResponseWriter, r *http.Request) (graphRequest, chart.Graph, bool) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return req, chart.Graph{}, false
	}

	records, err := h.Provider.FetchContributions(r.Context(), req.username, req.token)
	if err != nil {
		h.writeProviderError(w, r, req.username, err)
		return req, chart.Graph{}, false
	}

	g, err := chart.Build(records, req.window)
	if err != nil {
		h.logger.Error("グラフの組み立てに失敗しました", zap.String("username", req.username), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "グラフの生成に失敗しました")
		return req, chart.Graph{}, false
	}
	return req, g, true
}

// GetGraphSVGHandler renders the contribution graph of a user.
// GET /{username}
func (h *GraphHandler) GetGraphSVGHandler(w http.ResponseWriter, r *http.Request) {
	req, g, ok := h.build(w, r)
	if !ok {
		return
	}

	svg, err := h.Renderer.Render(g, req.username, req.options)
	if err != nil {
		h.logger.Error("SVGの描画に失敗しました", zap.String("username", req.username), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "SVGの生成に失敗しました")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	h.setCacheHeaders(w)
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Length", strconv.Itoa(len(svg)))
		return
	}
	if _, err := w.Write([]byte(svg)); err != nil {
		h.logger.Warn("レスポンスの書き込みに失敗しました", zap.Error(err))
	}
}

// GetGraphJSONHandler returns the computed graph without rendering it.
// GET /api/v1/{username}/graph
func (h *GraphHandler) GetGraphJSONHandler(w http.ResponseWriter, r *http.Request) {
	req, g, ok := h.build(w, r)
	if !ok {
		return
	}

	link, err := chart.CanonicalURL(h.Renderer.BaseURL, req.username, req.options)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "リンクの生成に失敗しました")
		return
	}
	h.setCacheHeaders(w)
	writeJSON(w, h.logger, graphResponse{
		Username: req.username,
		Link:     link,
		Options:  chart.NormalizeOptions(req.options),
		Graph:    g,
	})
}

func (h *GraphHandler) setCacheHeaders(w http.ResponseWriter) {
	if h.CacheMaxAge <= 0 {
		w.Header().Set("Cache-Control", "no-cache")
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.CacheMaxAge.Seconds())))
}

func (h *GraphHandler) writeProviderError(w http.ResponseWriter, r *http.Request, username string, err error) {
	requestID, _ := middleware.GetRequestIDFromContext(r.Context())
	fields := []zap.Field{zap.String("username", username), zap.String("request_id", requestID), zap.Error(err)}

	switch {
	case errors.Is(err, contributions.ErrUserNotFound):
		h.logger.Info("ユーザーが見つかりません", fields...)
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("ユーザー '%s' が見つかりません", username))
	default:
		h.logger.Error("貢献データの取得に失敗しました", fields...)
		writeJSONError(w, http.StatusBadGateway, "貢献データの取得に失敗しました")
	}
}
