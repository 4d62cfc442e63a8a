package controllers

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/rahul4469/youtube-analyzer/internal/views"
)

// StaticController handles the index page.
type StaticController struct {
	templates     StaticTemplates
	isDevelopment bool
}

// StaticTemplates holds templates for static pages.
type StaticTemplates struct {
	Home *views.Template
}

func NewStaticController(templates StaticTemplates, isDevelopment bool) *StaticController {
	return &StaticController{
		templates:     templates,
		isDevelopment: isDevelopment,
	}
}

// HomeData holds data for the index page template.
type HomeData struct {
	Supported []string
}

var supportedFormats = []string{
	"youtube.com/watch?v=ID",
	"youtu.be/ID",
	"youtube.com/shorts/ID",
	"youtube.com/channel/ID",
	"youtube.com/@handle",
	"youtube.com/c/name",
	"youtube.com/user/name",
}

// GetHome renders the analysis form.
func (c *StaticController) GetHome(w http.ResponseWriter, r *http.Request) {
	data := &views.TemplateData{
		Title:         "YouTube Analyzer",
		Description:   "Channel and video statistics with engagement metrics.",
		CSRFToken:     csrf.Token(r),
		IsDevelopment: c.isDevelopment,
		Data: HomeData{
			Supported: supportedFormats,
		},
	}

	c.templates.Home.ExecuteHTTP(w, r, data)
}

// HealthCheck returns a simple health status for monitoring.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
