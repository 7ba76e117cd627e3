package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"arguminds/internal/config"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/httputil"
)

// graphFormField is the multipart field carrying the graph snapshot
const graphFormField = "graph"

// ExportHandler handles document export requests
type ExportHandler struct {
	exportService dossierSvc.ExportService
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService dossierSvc.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// ListFormats returns the supported export formats
// GET /api/export/formats
func (h *ExportHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string][]string{
		"formats": h.exportService.Formats(),
	})
}

// Export renders a case without graph snapshot
// GET /api/cases/{id}/export/{format}
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, nil)
}

// ExportWithGraph renders a case with the graph snapshot sent in the body,
// either as multipart field "graph" or as a raw image/png or image/jpeg body.
// POST /api/cases/{id}/export/{format}
func (h *ExportHandler) ExportWithGraph(w http.ResponseWriter, r *http.Request) {
	image, err := readGraphImage(w, r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "graph image exceeds "+strconv.Itoa(config.MaxGraphImageSize)+" bytes")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.export(w, r, image)
}

func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request, image []byte) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	caseID, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	result, err := h.exportService.Export(r.Context(), &dossierSvc.ExportRequest{
		UserID:     userID,
		CaseID:     caseID,
		Format:     r.PathValue("format"),
		GraphImage: image,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename})
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		h.logger.Warn("export write interrupted", "case_id", caseID, "error", err)
	}
}

// readGraphImage extracts the optional snapshot from the request body
func readGraphImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	// Room for multipart headers around the image
	limit := int64(config.MaxGraphImageSize) + 64<<10
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(limit); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile(graphFormField)
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	case strings.HasPrefix(mediaType, "image/"):
		return io.ReadAll(r.Body)
	case mediaType == "" && r.ContentLength == 0:
		return nil, nil
	default:
		return nil, errors.New("unsupported content type " + strconv.Quote(mediaType))
	}
}
