package service

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/contacts-store/pkg/model"
)

// serveIndex responds with the HTML page of the public directory.
func (h *contactsHandler) serveIndex(c *gin.Context) {
	if !h.serveFile(c, "/index.html") {
		h.routeNotFound(c)
	}
}

// noRoute serves a static file of the public directory for GET and HEAD requests and answers
// every other unknown route with 404.
func (h *contactsHandler) noRoute(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		urlPath := c.Request.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		if h.serveFile(c, urlPath) {
			return
		}
	}
	h.routeNotFound(c)
}

// serveFile writes the regular file at urlPath below the public directory. It returns false if
// there is no such file.
func (h *contactsHandler) serveFile(c *gin.Context, urlPath string) bool {
	if h.publicDir == "" {
		return false
	}
	// Cleaning an absolute path removes all '..' elements, so the result stays inside publicDir.
	name := filepath.Join(h.publicDir, filepath.FromSlash(path.Clean("/"+urlPath)))
	info, err := os.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	c.File(name)
	return true
}

func (h *contactsHandler) routeNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, model.Message{Status: http.StatusNotFound, Message: msgRouteNotFound})
}
