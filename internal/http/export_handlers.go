package httpapi

import (
	"fmt"
	"net/http"

	"paintcalc/internal/export"
)

// handleExport GET /paint/api/v1/projects/{id}/export?format=json|csv|xlsx
// 下载协作方：formatter 只产出内容/文件名/类型，这里负责交付给浏览器。
func (h *ProjectHandler) handleExport(w http.ResponseWriter, r *http.Request, projectID string, parts []string) {
	if len(parts) != 0 || r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}
	switch format {
	case export.FormatJSON, export.FormatCSV, export.FormatXLSX:
	default:
		writeJSON(w, http.StatusBadRequest, Fail(fmt.Sprintf("unsupported export format: %q", format)))
		return
	}

	file, err := h.svc.Export(r.Context(), projectID, format)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
