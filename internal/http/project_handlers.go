package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"paintcalc/internal/calc"
	"paintcalc/internal/domain"
	"paintcalc/internal/repository"
	"paintcalc/internal/service"
	"paintcalc/internal/units"
)

const maxBodyBytes = 1 << 20

// ProjectHandler 估算项目的 HTTP 入口
type ProjectHandler struct {
	svc    service.ProjectService
	logger *zap.Logger
}

func NewProjectHandler(svc service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, logger: logger}
}

// ---- catalog ----

type catalogEntry struct {
	Type domain.OpeningType `json:"type"`
	Spec domain.OpeningSpec `json:"spec"`
}

type paintEntry struct {
	Type domain.PaintType `json:"type"`
	Spec domain.PaintSpec `json:"spec"`
}

type catalogResponse struct {
	OpeningTypes []catalogEntry          `json:"opening_types"`
	PaintTypes   []paintEntry            `json:"paint_types"`
	UnitSystems  map[string]units.Labels `json:"unit_systems"`
}

func (h *ProjectHandler) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	resp := catalogResponse{
		UnitSystems: map[string]units.Labels{
			string(units.Imperial): units.LabelsFor(units.Imperial),
			string(units.Metric):   units.LabelsFor(units.Metric),
		},
	}
	for _, t := range domain.OpeningTypes() {
		resp.OpeningTypes = append(resp.OpeningTypes, catalogEntry{Type: t, Spec: domain.SpecFor(t)})
	}
	for _, t := range []domain.PaintType{
		domain.PaintInterior, domain.PaintExterior, domain.PaintEnamel, domain.PaintPrimer, domain.PaintCeiling,
	} {
		resp.PaintTypes = append(resp.PaintTypes, paintEntry{Type: t, Spec: domain.PaintSpecFor(t)})
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// ---- project collection ----

type createProjectRequest struct {
	ProjectName string       `json:"project_name"`
	UnitSystem  units.System `json:"unit_system"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	p, err := h.svc.CreateProject(r.Context(), req.ProjectName, req.UnitSystem)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListProjects(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(list))
}

// ---- project subtree dispatch ----

// HandleProjectSubtree routes everything under /paint/api/v1/projects/{id}.
func (h *ProjectHandler) HandleProjectSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/paint/api/v1/projects/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	projectID := parts[0]
	parts = parts[1:]

	if len(parts) == 0 {
		h.handleProject(w, r, projectID)
		return
	}

	switch parts[0] {
	case "rooms":
		h.handleRooms(w, r, projectID, parts[1:])
	case "settings":
		h.handleSettings(w, r, projectID, parts[1:])
	case "units":
		h.handleUnits(w, r, projectID, parts[1:])
	case "result":
		h.handleResult(w, r, projectID, parts[1:])
	case "export":
		h.handleExport(w, r, projectID, parts[1:])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ProjectHandler) handleProject(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		p, err := h.svc.GetProject(r.Context(), projectID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(p))
	case http.MethodPut:
		var req createProjectRequest
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		p, err := h.svc.RenameProject(r.Context(), projectID, req.ProjectName)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(p))
	case http.MethodDelete:
		if err := h.svc.DeleteProject(r.Context(), projectID); err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"project_id": projectID}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ProjectHandler) handleRooms(w http.ResponseWriter, r *http.Request, projectID string, parts []string) {
	// POST /rooms
	if len(parts) == 0 {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req service.RoomInput
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		p, err := h.svc.AddRoom(r.Context(), projectID, req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(p))
		return
	}

	roomID := parts[0]
	parts = parts[1:]

	// PUT/DELETE /rooms/{roomID}
	if len(parts) == 0 {
		switch r.Method {
		case http.MethodPut:
			var req service.RoomInput
			if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
				writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
				return
			}
			p, err := h.svc.UpdateRoom(r.Context(), projectID, roomID, req)
			if err != nil {
				h.writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, Ok(p))
		case http.MethodDelete:
			p, err := h.svc.DeleteRoom(r.Context(), projectID, roomID)
			if err != nil {
				h.writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, Ok(p))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if parts[0] != "openings" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.handleOpenings(w, r, projectID, roomID, parts[1:])
}

func (h *ProjectHandler) handleOpenings(w http.ResponseWriter, r *http.Request, projectID, roomID string, parts []string) {
	// POST /rooms/{roomID}/openings
	if len(parts) == 0 {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req service.OpeningInput
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		p, err := h.svc.AddOpening(r.Context(), projectID, roomID, req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(p))
		return
	}

	if len(parts) != 1 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	openingID := parts[0]

	switch r.Method {
	case http.MethodPut:
		var req service.OpeningInput
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		p, err := h.svc.UpdateOpening(r.Context(), projectID, roomID, openingID, req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(p))
	case http.MethodDelete:
		p, err := h.svc.DeleteOpening(r.Context(), projectID, roomID, openingID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(p))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ProjectHandler) handleSettings(w http.ResponseWriter, r *http.Request, projectID string, parts []string) {
	if len(parts) != 0 || r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req domain.Settings
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	p, err := h.svc.UpdateSettings(r.Context(), projectID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

type switchUnitsRequest struct {
	UnitSystem units.System `json:"unit_system"`
}

func (h *ProjectHandler) handleUnits(w http.ResponseWriter, r *http.Request, projectID string, parts []string) {
	if len(parts) != 0 || r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req switchUnitsRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	p, err := h.svc.SwitchUnits(r.Context(), projectID, req.UnitSystem)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

// calculationResponse 区分“没有可计算内容”与“计算结果为零”
type calculationResponse struct {
	Computed bool                      `json:"computed"`
	Result   *domain.CalculationResult `json:"result"`
}

func (h *ProjectHandler) handleResult(w http.ResponseWriter, r *http.Request, projectID string, parts []string) {
	if len(parts) != 0 || r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result, err := h.svc.Calculate(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, calc.ErrNoRooms) {
			writeJSON(w, http.StatusOK, Ok(calculationResponse{Computed: false}))
			return
		}
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(calculationResponse{Computed: true, Result: result}))
}

func (h *ProjectHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	case errors.Is(err, calc.ErrNoRooms):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("internal error"))
	}
}
