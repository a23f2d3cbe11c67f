package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterProjectRoutes 注册估算项目相关的全部路由
func (r *Router) RegisterProjectRoutes(h *ProjectHandler) {
	// catalog（开口类型/涂料类型/单位制元数据，表单下拉框用）
	r.Handle("/paint/api/v1/catalog", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetCatalog(w, req)
	})

	// project collection
	r.Handle("/paint/api/v1/projects", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.ListProjects(w, req)
		case http.MethodPost:
			h.CreateProject(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// project subtree: /projects/{id}[/rooms[/{roomID}[/openings[/{openingID}]]]]
	//                  /projects/{id}/settings | /units | /result | /export
	r.Handle("/paint/api/v1/projects/", h.HandleProjectSubtree)
}
