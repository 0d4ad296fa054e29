package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appanalysis "github.com/bryanwahyu/personacolor/internal/application/analysis"
	appproducts "github.com/bryanwahyu/personacolor/internal/application/products"
	aidomain "github.com/bryanwahyu/personacolor/internal/domain/ai"
	domain "github.com/bryanwahyu/personacolor/internal/domain/analysis"
	productsdomain "github.com/bryanwahyu/personacolor/internal/domain/products"
	"github.com/bryanwahyu/personacolor/internal/infra/ai/prompt"
	"github.com/bryanwahyu/personacolor/internal/infra/storage"
	"github.com/bryanwahyu/personacolor/internal/middleware"
)

const maxUploadBytes = 10 << 20

// errUnauthenticated maps to 401 in wrap.
var errUnauthenticated = errors.New("unauthenticated")

type Router struct {
	analysisSvc *appanalysis.Service
	productsSvc *appproducts.Service
	images      *storage.Store
}

func NewRouter(analysisSvc *appanalysis.Service, productsSvc *appproducts.Service, images *storage.Store) http.Handler {
	r := &Router{analysisSvc: analysisSvc, productsSvc: productsSvc, images: images}
	mux := chi.NewRouter()

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analysis", r.wrap(r.handleAnalyze))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Delete("/history/{id}", r.wrap(r.handleDeleteHistory))
		rt.Get("/recommendation", r.wrap(r.handleRecommendation))
		rt.Get("/products", r.wrap(r.handleProducts))
		rt.Get("/products/{id}", r.wrap(r.handleProduct))
		rt.Post("/uploads/image", r.wrap(r.handleUploadImage))
		rt.Get("/ai/errors", r.wrap(r.handleAIErrors))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps the error taxonomy onto HTTP statuses so handler bodies stay
// linear. Messages never include provider credentials.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ve *middleware.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Validation failed",
				"field":   ve.Field,
				"error":   ve.Message,
			})
			return
		}
		if errors.Is(err, prompt.ErrTooFewColors) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Validation failed",
				"field":   "colors",
				"error":   err.Error(),
			})
			return
		}
		if errors.Is(err, errUnauthenticated) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated"})
			return
		}

		var ire *domain.InvalidResponseError
		if errors.As(err, &ire) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "Invalid AI response",
				"raw":     ire.Raw,
			})
			return
		}

		var te *aidomain.TransportError
		if errors.As(err, &te) || errors.Is(err, aidomain.ErrProviderShape) {
			middleware.IncrementAICallErrors()
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"message": "AI service error",
				"error":   err.Error(),
			})
			return
		}

		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
			return
		}

		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Internal server error"})
	}
}

// POST /v1/analysis
// Body: {"colors": ["#3B2219", ...], "notes": "...", "image_url": "..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	if user == "" {
		return errUnauthenticated
	}

	var body struct {
		Colors   []string `json:"colors"`
		Notes    string   `json:"notes"`
		ImageURL string   `json:"image_url"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &middleware.ValidationError{Field: "body", Message: "invalid JSON body"}
	}
	if err := middleware.ValidateColors(body.Colors); err != nil {
		return err
	}
	if err := middleware.ValidateNotes(body.Notes); err != nil {
		return err
	}
	if err := middleware.ValidateImageURL(body.ImageURL); err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	res, err := r.analysisSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		UserID:   user,
		Colors:   body.Colors,
		Notes:    middleware.SanitizeString(body.Notes),
		ImageURL: body.ImageURL,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	return writeJSON(w, http.StatusCreated, map[string]any{
		"message":        "Analysis completed",
		"palette":        res.Palette,
		"explanation":    res.Explanation,
		"recommendation": res.Recommendation,
		"history":        res.History,
		"products":       products(res.Products),
	})
}

// GET /v1/history — anonymous callers get an empty list, not an error.
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	if user == "" {
		return writeJSON(w, http.StatusOK, []any{})
	}

	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.analysisSvc.ListHistory(req.Context(), user, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.History{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// DELETE /v1/history/{id}
func (r *Router) handleDeleteHistory(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	if user == "" {
		return errUnauthenticated
	}
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateHistoryID(id); err != nil {
		// malformed ids can never match a record
		return domain.ErrNotFound
	}
	if err := r.analysisSvc.DeleteHistory(req.Context(), user, domain.HistoryID(id)); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"message": "History deleted"})
}

// GET /v1/recommendation — recompute from the latest history record.
func (r *Router) handleRecommendation(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	if user == "" {
		return errUnauthenticated
	}
	latest, items, err := r.analysisSvc.RecommendLatest(req.Context(), user)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"palette":  latest.ResultPalette,
		"history":  latest,
		"products": products(items),
	})
}

// GET /v1/products?palette=&limit=
func (r *Router) handleProducts(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.productsSvc.List(req.Context(), req.URL.Query().Get("palette"), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, products(list))
}

// GET /v1/products/{id}
func (r *Router) handleProduct(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return domain.ErrNotFound
	}
	p, err := r.productsSvc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return writeJSON(w, http.StatusOK, p)
}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// POST /v1/uploads/image — multipart field "image", stored in MinIO.
func (r *Router) handleUploadImage(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	if user == "" {
		return errUnauthenticated
	}
	if r.images == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"message": "Uploads disabled"})
		return nil
	}

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return &middleware.ValidationError{Field: "image", Message: "invalid multipart body"}
	}
	file, header, err := req.FormFile("image")
	if err != nil {
		return &middleware.ValidationError{Field: "image", Message: "image file is required"}
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExt[contentType]
	if !ok {
		return &middleware.ValidationError{Field: "image", Message: fmt.Sprintf("unsupported content type: %s", contentType)}
	}

	key := path.Join("uploads", user, uuid.New().String()+ext)
	url, err := r.images.UploadImage(req.Context(), key, file, header.Size, contentType)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusCreated, map[string]any{"url": url})
}

// GET /v1/ai/errors?limit= — recent provider failures for the caller.
func (r *Router) handleAIErrors(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	if user == "" {
		return errUnauthenticated
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.analysisSvc.ListFailures(req.Context(), user, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// products keeps the JSON field an empty array instead of null.
func products(list []*productsdomain.Product) []*productsdomain.Product {
	if list == nil {
		return []*productsdomain.Product{}
	}
	return list
}
