// paintcalc-check: end-to-end API smoke check against a running paintcalc
// instance. Builds the two README sample rooms and verifies the combined
// figures (1591 sq ft paintable, 11 gallons recommended), then downloads
// both exports.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

type result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

type project struct {
	ProjectID string `json:"project_id"`
	Rooms     []struct {
		RoomID string `json:"room_id"`
	} `json:"rooms"`
}

type calculation struct {
	Computed bool `json:"computed"`
	Result   struct {
		Totals struct {
			TotalPaintableArea float64 `json:"total_paintable_area"`
		} `json:"totals"`
		Paint struct {
			WithWastage      float64 `json:"with_wastage"`
			RecommendedUnits int     `json:"recommended_units"`
		} `json:"paint"`
	} `json:"result"`
}

func main() {
	baseURL := getEnv("PAINTCALC_ADDR", "http://localhost:8080")
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	fmt.Println("=== paintcalc API smoke check ===")

	// 1. Create project
	var created result[project]
	resp, err := client.R().
		SetBody(map[string]any{"project_name": "Smoke Check", "unit_system": "imperial"}).
		SetResult(&created).
		Post("/paint/api/v1/projects")
	must(err, resp.StatusCode(), "create project")
	projectID := created.Result.ProjectID
	fmt.Printf("project created: %s\n", projectID)

	// 2. Living Room 20x15x9 with prefinished door + two 6x4 windows
	var updated result[project]
	resp, err = client.R().
		SetBody(map[string]any{"room_name": "Living Room", "length": 20, "width": 15, "height": 9}).
		SetResult(&updated).
		Post("/paint/api/v1/projects/" + projectID + "/rooms")
	must(err, resp.StatusCode(), "add living room")
	livingID := updated.Result.Rooms[0].RoomID

	resp, err = client.R().
		SetBody(map[string]any{"type": "prefinished_door"}).
		Post("/paint/api/v1/projects/" + projectID + "/rooms/" + livingID + "/openings")
	must(err, resp.StatusCode(), "add prefinished door")
	resp, err = client.R().
		SetBody(map[string]any{"type": "window", "width": 6, "height": 4, "quantity": 2}).
		Post("/paint/api/v1/projects/" + projectID + "/rooms/" + livingID + "/openings")
	must(err, resp.StatusCode(), "add windows")

	// 3. Master Bedroom 14x12x9 with paintable door, window, 8x8 wardrobe
	resp, err = client.R().
		SetBody(map[string]any{"room_name": "Master Bedroom", "length": 14, "width": 12, "height": 9}).
		SetResult(&updated).
		Post("/paint/api/v1/projects/" + projectID + "/rooms")
	must(err, resp.StatusCode(), "add master bedroom")
	bedroomID := updated.Result.Rooms[1].RoomID

	for _, body := range []map[string]any{
		{"type": "paintable_door"},
		{"type": "window"},
		{"type": "wardrobe", "width": 8, "height": 8, "face_count": 1},
	} {
		resp, err = client.R().
			SetBody(body).
			Post("/paint/api/v1/projects/" + projectID + "/rooms/" + bedroomID + "/openings")
		must(err, resp.StatusCode(), fmt.Sprintf("add %v", body["type"]))
	}

	// 4. Verify combined figures
	var calcResp result[calculation]
	resp, err = client.R().
		SetResult(&calcResp).
		Get("/paint/api/v1/projects/" + projectID + "/result")
	must(err, resp.StatusCode(), "calculate")

	total := calcResp.Result.Result.Totals.TotalPaintableArea
	recommended := calcResp.Result.Result.Paint.RecommendedUnits
	fmt.Printf("total paintable area: %.2f sq ft\n", total)
	fmt.Printf("recommended purchase: %d gallons\n", recommended)
	if math.Abs(total-1591) > 1e-6 {
		log.Fatalf("FAIL: expected 1591 sq ft total paintable, got %.4f", total)
	}
	if recommended != 11 {
		log.Fatalf("FAIL: expected 11 gallons recommended, got %d", recommended)
	}

	// 5. Download exports
	for _, format := range []string{"csv", "json", "xlsx"} {
		resp, err = client.R().
			Get("/paint/api/v1/projects/" + projectID + "/export?format=" + format)
		must(err, resp.StatusCode(), "export "+format)
		fmt.Printf("export %s: %d bytes (%s)\n", format, len(resp.Body()), resp.Header().Get("Content-Type"))
	}

	fmt.Println("OK")
}

func must(err error, status int, step string) {
	if err != nil {
		log.Fatalf("FAIL: %s: %v", step, err)
	}
	if status != 200 {
		log.Fatalf("FAIL: %s: HTTP %d", step, status)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
