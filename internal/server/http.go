package server

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/viper"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/rccgrog/rogsite/internal/content"
	"github.com/rccgrog/rogsite/internal/db"
	"github.com/rccgrog/rogsite/internal/util"
	"github.com/rccgrog/rogsite/pkg/api"
	"github.com/rccgrog/rogsite/pkg/textfmt"
)

const (
	defaultEventLimit = 256
	maxEventLimit     = 2000
)

// Server serves the section content API and the editor preview endpoint.
type Server struct {
	cfg      *viper.Viper
	store    *db.Store
	log      *zap.Logger
	sanitize *bluemonday.Policy
}

func New(cfg *viper.Viper, store *db.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		store:    store,
		log:      log,
		sanitize: bluemonday.NewPolicy().AllowElements("br"),
	}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /v1/sections", s.handleListSections)
	mux.HandleFunc("GET /v1/sections/{kind}", s.handleGetSection)
	mux.HandleFunc("PUT /v1/sections/{kind}", s.handlePutSection)
	mux.HandleFunc("DELETE /v1/sections/{kind}", s.handleDeleteSection)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("POST /v1/preview", s.handlePreview)
	return s.withRequestLog(s.withRecover(mux))
}

// sectionResponse is the body of GET and PUT on a section.
type sectionResponse struct {
	Kind      api.Kind    `json:"kind"`
	Version   int64       `json:"version"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Format    string      `json:"format,omitempty"`
	Content   api.Content `json:"content"`
}

type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	secs, err := s.store.Sections.ListSections(r.Context())
	if err != nil {
		s.internalError(w, r, "list sections", err)
		return
	}
	out := make([]api.SectionSummary, 0, len(secs))
	for _, sec := range secs {
		out = append(out, sec.Summary())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.parseKind(w, r)
	if !ok {
		return
	}
	var mode textfmt.Mode
	format := r.URL.Query().Get("format")
	if format != "" {
		m, err := textfmt.ParseMode(format)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		mode = m
	}
	sec, err := s.store.Sections.GetSection(r.Context(), kind)
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "section " + string(kind) + " has no content yet"})
		return
	}
	if err != nil {
		s.internalError(w, r, "get section", err)
		return
	}
	c, err := content.Decode(kind, sec.Record)
	if err != nil {
		s.internalError(w, r, "decode section", err)
		return
	}
	if mode != "" {
		c = content.Display(c, mode)
	}
	body, err := json.Marshal(sectionResponse{Kind: kind, Version: sec.Version, UpdatedAt: sec.UpdatedAt, Format: string(mode), Content: c})
	if err != nil {
		s.internalError(w, r, "encode section", err)
		return
	}
	etag := etagFor(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Section-Version", strconv.FormatInt(sec.Version, 10))
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) handlePutSection(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.parseKind(w, r)
	if !ok {
		return
	}
	var ifVersion int64
	if m := strings.Trim(strings.TrimSpace(r.Header.Get("If-Match")), `"`); m != "" {
		v, err := strconv.ParseInt(m, 10, 64)
		if err != nil || v <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "If-Match must be a positive section version"})
			return
		}
		ifVersion = v
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	c, err := content.DecodeView(kind, body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	rec, err := content.Encode(c)
	if err != nil {
		s.internalError(w, r, "encode section", err)
		return
	}
	sec, err := s.store.Sections.PutSection(r.Context(), api.Section{Kind: kind, Record: rec}, ifVersion)
	switch {
	case errors.Is(err, db.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "section was changed by someone else; reload and try again"})
		return
	case errors.Is(err, db.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "section " + string(kind) + " has no content yet"})
		return
	case err != nil:
		s.internalError(w, r, "put section", err)
		return
	}
	s.log.Info("section updated",
		zap.String("kind", string(kind)),
		zap.Int64("version", sec.Version),
		zap.String("request_id", requestID(r.Context())))
	w.Header().Set("X-Section-Version", strconv.FormatInt(sec.Version, 10))
	writeJSON(w, http.StatusOK, sectionResponse{Kind: kind, Version: sec.Version, UpdatedAt: sec.UpdatedAt, Content: c})
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.parseKind(w, r)
	if !ok {
		return
	}
	err := s.store.Sections.DeleteSection(r.Context(), kind)
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "section " + string(kind) + " has no content yet"})
		return
	}
	if err != nil {
		s.internalError(w, r, "delete section", err)
		return
	}
	s.log.Info("section deleted", zap.String("kind", string(kind)), zap.String("request_id", requestID(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

type eventsResponse struct {
	Events []api.Event `json:"events"`
	Next   *api.Cursor `json:"next,omitempty"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var cur api.Cursor
	if a := strings.TrimSpace(q.Get("after")); a != "" {
		t, err := util.ParseTimeExpr(a, time.Now())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad after: " + err.Error()})
			return
		}
		cur.After = t
	}
	if ss := strings.TrimSpace(q.Get("seq")); ss != "" {
		n, err := strconv.ParseInt(ss, 10, 64)
		if err != nil || n < 0 || cur.After.IsZero() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "seq must be a non-negative integer sent with after"})
			return
		}
		cur.Seq = n
	}
	limit := defaultEventLimit
	if ls := strings.TrimSpace(q.Get("limit")); ls != "" {
		if n, err := strconv.Atoi(ls); err == nil && n > 0 {
			limit = min(n, maxEventLimit)
		}
	}
	evs, next, err := s.store.Events.List(r.Context(), cur, limit)
	if err != nil {
		s.internalError(w, r, "list events", err)
		return
	}
	resp := eventsResponse{Events: evs}
	if resp.Events == nil {
		resp.Events = []api.Event{}
	}
	if len(evs) == limit && !next.After.IsZero() {
		resp.Next = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

// previewRequest carries the editor's current field value. Text is decoded
// loosely because form state may hold null or a number.
type previewRequest struct {
	Text      any    `json:"text"`
	Mode      string `json:"mode"`
	NoWrapper bool   `json:"noWrapper"`
}

type previewResponse struct {
	Mode      textfmt.Mode `json:"mode"`
	Display   string       `json:"display"`
	HTML      string       `json:"html"`
	NoWrapper bool         `json:"noWrapper"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var req previewRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json: " + err.Error()})
		return
	}
	mode, err := textfmt.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	raw := textfmt.FromValue(req.Text)
	var opts []textfmt.PlainOption
	if req.NoWrapper {
		opts = append(opts, textfmt.WithNoWrapper())
	}
	resp := previewResponse{Mode: mode, NoWrapper: textfmt.PlainOptions(opts...).NoWrapper}
	switch mode {
	case textfmt.ModeMarkup:
		resp.Display = textfmt.FormatMarkup(raw)
		if s.cfg == nil || s.cfg.GetBool("preview.sanitize") {
			resp.Display = s.sanitize.Sanitize(resp.Display)
		}
		resp.HTML = resp.Display
	default:
		resp.Display = textfmt.FormatPlain(raw, opts...)
		resp.HTML = textfmt.Paragraph(raw, opts...)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) parseKind(w http.ResponseWriter, r *http.Request) (api.Kind, bool) {
	name := r.PathValue("kind")
	kind, err := api.ParseKind(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:       "unknown section " + strconv.Quote(name),
			Suggestions: util.Suggest(strings.ToLower(name), api.KindNames(), 3),
		})
		return "", false
	}
	return kind, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	limit := int64(1 << 20)
	if s.cfg != nil && s.cfg.GetInt64("server.max_body_bytes") > 0 {
		limit = s.cfg.GetInt64("server.max_body_bytes")
	}
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"})
		return nil, false
	}
	return b, true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error(op+" failed", zap.Error(err), zap.String("request_id", requestID(r.Context())))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: op + " failed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// etagFor returns a strong validator for a response body.
func etagFor(body []byte) string {
	sum := blake3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches reports whether an If-None-Match header value matches etag
// using weak comparison. It accepts "*" and comma-separated lists.
func etagMatches(header, etag string) bool {
	etag = strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || (tag != "" && strings.TrimPrefix(tag, "W/") == etag) {
			return true
		}
	}
	return false
}
