package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paintcalc/internal/repository"
	"paintcalc/internal/service"
	"paintcalc/internal/store"
)

func newTestServer() *httptest.Server {
	logger := zap.NewNop()
	svc := service.NewProjectService(repository.NewMemoryProjectsRepo(), store.NewMemoryKV(), logger)
	handler := NewProjectHandler(svc, logger)
	router := NewRouter(logger)
	router.RegisterProjectRoutes(handler)
	return httptest.NewServer(router)
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func resultOf(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	result, ok := envelope["result"].(map[string]any)
	require.True(t, ok, "expected object result, got %v", envelope["result"])
	return result
}

func createProject(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, envelope := doJSON(t, http.MethodPost, ts.URL+"/paint/api/v1/projects",
		`{"project_name":"Home Repaint","unit_system":"imperial"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return resultOf(t, envelope)["project_id"].(string)
}

func addRoom(t *testing.T, ts *httptest.Server, projectID, body string) string {
	t.Helper()
	resp, envelope := doJSON(t, http.MethodPost, ts.URL+"/paint/api/v1/projects/"+projectID+"/rooms", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rooms := resultOf(t, envelope)["rooms"].([]any)
	room := rooms[len(rooms)-1].(map[string]any)
	return room["room_id"].(string)
}

func TestCreateAndGetProject(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	projectID := createProject(t, ts)

	resp, envelope := doJSON(t, http.MethodGet, ts.URL+"/paint/api/v1/projects/"+projectID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(ResultSuccess), envelope["code"])
	assert.Equal(t, "Home Repaint", resultOf(t, envelope)["project_name"])
}

func TestGetProject_NotFound(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, envelope := doJSON(t, http.MethodGet, ts.URL+"/paint/api/v1/projects/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", envelope["type"])
}

func TestAddRoom_Validation(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)

	resp, envelope := doJSON(t, http.MethodPost, ts.URL+"/paint/api/v1/projects/"+projectID+"/rooms",
		`{"room_name":"Bad","length":-5,"width":10,"height":9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope["message"], "length")
}

func TestResultEndpoint_FullScenario(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)

	livingID := addRoom(t, ts, projectID, `{"room_name":"Living Room","length":20,"width":15,"height":9}`)
	resp, _ := doJSON(t, http.MethodPost,
		ts.URL+"/paint/api/v1/projects/"+projectID+"/rooms/"+livingID+"/openings",
		`{"type":"prefinished_door"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost,
		ts.URL+"/paint/api/v1/projects/"+projectID+"/rooms/"+livingID+"/openings",
		`{"type":"window","width":6,"height":4,"quantity":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, http.MethodGet, ts.URL+"/paint/api/v1/projects/"+projectID+"/result", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	calcResp := resultOf(t, envelope)
	require.Equal(t, true, calcResp["computed"])
	result := calcResp["result"].(map[string]any)
	totals := result["totals"].(map[string]any)
	assert.InDelta(t, 861, totals["total_paintable_area"].(float64), 1e-9)
}

func TestResultEndpoint_NoRoomsIsDistinguishable(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)

	resp, envelope := doJSON(t, http.MethodGet, ts.URL+"/paint/api/v1/projects/"+projectID+"/result", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	calcResp := resultOf(t, envelope)
	assert.Equal(t, false, calcResp["computed"])
	assert.Nil(t, calcResp["result"])
}

func TestSettingsEndpoint_RejectsOutOfRange(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)

	resp, _ := doJSON(t, http.MethodPut, ts.URL+"/paint/api/v1/projects/"+projectID+"/settings",
		`{"coats":9,"wastage_percent":10,"include_ceiling":true,"paint_type":"interior"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnitsEndpoint_RescalesRooms(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)
	addRoom(t, ts, projectID, `{"room_name":"A","length":20,"width":15,"height":9}`)

	resp, envelope := doJSON(t, http.MethodPut, ts.URL+"/paint/api/v1/projects/"+projectID+"/units",
		`{"unit_system":"metric"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := resultOf(t, envelope)
	assert.Equal(t, "metric", p["unit_system"])
	rooms := p["rooms"].([]any)
	room := rooms[0].(map[string]any)
	assert.InDelta(t, 6.096, room["length"].(float64), 1e-9)
}

func TestExportEndpoint_CSVDownload(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)
	addRoom(t, ts, projectID, `{"room_name":"Living Room","length":20,"width":15,"height":9}`)

	resp, err := http.Get(ts.URL + "/paint/api/v1/projects/" + projectID + "/export?format=csv")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="paint-estimate.csv"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "Paint Estimate Report\n"))
	assert.Contains(t, string(body), `"Living Room",630.00,300.00,0.00,0.00,930.00`)
}

func TestExportEndpoint_UnknownFormat(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)
	addRoom(t, ts, projectID, `{"room_name":"A","length":10,"width":10,"height":9}`)

	resp, envelope := doJSON(t, http.MethodGet,
		ts.URL+"/paint/api/v1/projects/"+projectID+"/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope["message"], "unsupported export format")
}

func TestExportEndpoint_EmptyProjectDoesNotCrash(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	projectID := createProject(t, ts)

	resp, envelope := doJSON(t, http.MethodGet,
		ts.URL+"/paint/api/v1/projects/"+projectID+"/export?format=csv", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope["message"], "no rooms")
}

func TestCatalogEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, envelope := doJSON(t, http.MethodGet, ts.URL+"/paint/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	catalog := resultOf(t, envelope)
	assert.Len(t, catalog["opening_types"].([]any), 6)
	assert.Len(t, catalog["paint_types"].([]any), 5)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/paint/api/v1/projects", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
