package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// bodies spill to temp files.
const maxUploadMemory = 32 << 20

// AssetHandler handles HTTP requests for assets using pkg/assetcdn
type AssetHandler struct {
	service assetcdn.Service
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(service assetcdn.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

// Routes returns the router for asset endpoints
func (h *AssetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.UploadAsset)
	r.Get("/{assetID}", h.GetAsset)
	r.Get("/{assetID}/download", h.DownloadAsset)
	r.Post("/{assetID}/publish", h.PublishAsset)
	r.Get("/{assetID}/versions", h.ListVersions)
	return r
}

// UploadAsset ingests a new asset from a multipart form
func (h *AssetHandler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Missing file field", "error", err)
		http.Error(w, "Missing 'file' field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read upload body", "error", err)
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	// The core only ever sees a real boolean; the string form stops here.
	isPrivate := strings.EqualFold(r.FormValue("is_private"), "true")

	asset, err := h.service.IngestAsset(r.Context(), assetcdn.IngestAssetRequest{
		Data:      data,
		Filename:  header.Filename,
		MimeType:  header.Header.Get("Content-Type"),
		IsPrivate: isPrivate,
	})
	if err != nil {
		slog.Error("Failed to ingest asset", "filename", header.Filename, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Asset ingested", "asset_id", asset.ID.String(), "storage_key", asset.StorageKey)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, asset)
}

// GetAsset returns an asset's metadata record
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.parseAssetID(w, r)
	if !ok {
		return
	}

	asset, err := h.service.GetAsset(r.Context(), assetID)
	if err != nil {
		h.renderError(w, assetID, "get asset", err)
		return
	}

	render.JSON(w, r, asset)
}

// DownloadAsset serves an asset body or short-circuits with 304 when the
// inbound If-None-Match validator matches the stored ETag
func (h *AssetHandler) DownloadAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.parseAssetID(w, r)
	if !ok {
		return
	}

	result, err := h.service.DownloadAsset(r.Context(), assetID, r.Header.Get("If-None-Match"))
	if err != nil {
		h.renderError(w, assetID, "download asset", err)
		return
	}

	w.Header().Set("ETag", result.ETag)
	w.Header().Set("Cache-Control", result.CacheControl)

	if result.NotModified {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(result.SizeBytes, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, result.Body); err != nil {
		// Headers are gone; all we can do is log
		slog.Error("Failed to stream asset body", "asset_id", assetID.String(), "error", err)
	}
}

// PublishAsset appends a new version record for an asset
func (h *AssetHandler) PublishAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.parseAssetID(w, r)
	if !ok {
		return
	}

	version, err := h.service.PublishAsset(r.Context(), assetID)
	if err != nil {
		h.renderError(w, assetID, "publish asset", err)
		return
	}

	slog.Info("Version published", "asset_id", assetID.String(), "version_label", version.VersionLabel)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, version)
}

// ListVersions returns the append-only version history for an asset
func (h *AssetHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.parseAssetID(w, r)
	if !ok {
		return
	}

	versions, err := h.service.ListVersions(r.Context(), assetID)
	if err != nil {
		h.renderError(w, assetID, "list versions", err)
		return
	}
	if versions == nil {
		versions = []*assetcdn.AssetVersion{}
	}

	render.JSON(w, r, versions)
}

func (h *AssetHandler) parseAssetID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	assetIDStr := chi.URLParam(r, "assetID")
	assetID, err := uuid.Parse(assetIDStr)
	if err != nil {
		slog.Error("Invalid asset ID", "asset_id", assetIDStr, "error", err)
		http.Error(w, "Invalid asset ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return assetID, true
}

func (h *AssetHandler) renderError(w http.ResponseWriter, assetID uuid.UUID, op string, err error) {
	if errors.Is(err, assetcdn.ErrAssetNotFound) {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}

	var storageErr *assetcdn.StorageError
	if errors.As(err, &storageErr) {
		// The ledger record is still valid; this is a transient storage
		// condition, never a 404
		slog.Error("Storage failure", "asset_id", assetID.String(), "op", op, "error", err)
		http.Error(w, "Storage unavailable", http.StatusInternalServerError)
		return
	}

	slog.Error("Request failed", "asset_id", assetID.String(), "op", op, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
