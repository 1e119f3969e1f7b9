package handler

import (
	"net/http"

	"studio/internal/content/service"
	httputil "studio/pkg/http"
	"studio/pkg/logger"
	"studio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	PathHome      = "/api/home/"
	PathContact   = "/api/contact/"
	PathPortfolio = "/api/portfolio/"
	PathServices  = "/api/services/"
)

// TokenIssuer sets the CSRF cookie on responses to clients that do not hold one yet.
type TokenIssuer interface {
	Ensure(w http.ResponseWriter, r *http.Request) string
}

type ContentHandler struct {
	service service.ContentService
	tokens  TokenIssuer
	log     *logger.Logger
}

func NewContentHandler(service service.ContentService, tokens TokenIssuer, log *logger.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

// Home also hands out the CSRF cookie, so a client can prime its token with this request.
func (h *ContentHandler) Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.tokens.Ensure(w, r)

	data, err := h.service.Home(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, data)
}

func (h *ContentHandler) Contact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	data, err := h.service.Contact(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, data)
}

func (h *ContentHandler) Portfolio(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, err := httputil.ExtractPage(r)
	if err != nil {
		h.log.Warn("Invalid query parameter", "handler", "Portfolio", "error", err)
		httputil.WriteError(w, err)
		return
	}
	category, err := httputil.ExtractInt64(r, "category")
	if err != nil {
		h.log.Warn("Invalid query parameter", "handler", "Portfolio", "error", err)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Portfolio(r.Context(), page, category)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.PortfolioPage{
		Success:         true,
		PageInfo:        httputil.BuildPageInfo(r, result.Count, result.Page, result.PageSize),
		Results:         result.Items,
		Categories:      result.Categories,
		CurrentCategory: result.CategoryID,
	})
}

func (h *ContentHandler) Services(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, err := httputil.ExtractPage(r)
	if err != nil {
		h.log.Warn("Invalid query parameter", "handler", "Services", "error", err)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Services(r.Context(), page)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.ServicesPage{
		Success:  true,
		PageInfo: httputil.BuildPageInfo(r, result.Count, result.Page, result.PageSize),
		Results:  result.Services,
	})
}

func (h *ContentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET(PathHome, h.Home)
	router.GET(PathContact, h.Contact)
	router.GET(PathPortfolio, h.Portfolio)
	router.GET(PathServices, h.Services)
}
