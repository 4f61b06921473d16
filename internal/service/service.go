package service

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	imodel "gitlab.com/dirk.krummacker/contacts-store/internal/model"
	"gitlab.com/dirk.krummacker/contacts-store/internal/sanitize"
	"gitlab.com/dirk.krummacker/contacts-store/internal/store"
	"gitlab.com/dirk.krummacker/contacts-store/pkg/model"
)

// Response messages. Clients compare some of them literally, so they must not change.
const (
	msgContactAdded       = "Contact added successfully"
	msgContactDeleted     = "Contact deleted successfully."
	msgAllContactsDeleted = "All contacts deleted successfully."
	msgEmailRegistered    = "Email is already registered"
	msgContactNotFound    = "Contact not found."
	msgInvalidRequest     = "Invalid request."
	msgRouteNotFound      = "Route not found."
	msgInternalError      = "Internal Server Error"
	msgCreateFailed       = "Internal Server Error Try Catch"
)

// Options configure the router beyond the store it serves.
type Options struct {
	// PublicDir is the directory with index.html and other static files.
	PublicDir string

	// HTTPLogging enables gin's request logger.
	HTTPLogging bool

	// Metrics receives the request metrics and is exposed at /metrics. Nil disables both.
	Metrics *metrics.Set

	// Logger is used for failed requests. Defaults to slog.Default().
	Logger *slog.Logger
}

// contactsHandler serves the REST API on top of a store.
type contactsHandler struct {
	store     store.Store
	publicDir string
	logger    *slog.Logger
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func SetupHttpRouter(contacts store.Store, options Options) *gin.Engine {
	h := &contactsHandler{store: contacts, publicDir: options.PublicDir, logger: options.Logger}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	var router *gin.Engine
	if options.HTTPLogging {
		router = gin.Default()
	} else {
		h.logger.Info("Turning off HTTP request logging.")
		router = gin.New()
		router.Use(gin.Recovery())
	}
	if options.Metrics != nil {
		router.Use(meterRequests(options.Metrics))
		router.GET("/metrics", writeMetrics(options.Metrics))
	}

	router.GET("/", h.serveIndex)
	router.GET("/contacts", h.findContacts)
	router.POST("/contacts", h.createContact)
	router.DELETE("/contacts", h.deleteAllContacts)
	router.GET("/contacts/:id", h.findContactByID)
	router.PUT("/contacts/:id", h.updateContactByID)
	router.DELETE("/contacts/:id", h.deleteContactByID)
	router.NoRoute(h.noRoute)
	return router
}

// findContacts responds with the list of all contacts as JSON. If there are no contacts, the
// response is an empty array.
//
// REST API call:
//
//	> curl "http://localhost:3000/contacts"
func (h *contactsHandler) findContacts(c *gin.Context) {
	contacts, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// createContact adds a contact from the form fields 'email', 'name' and 'subject'. Markup is
// removed from all three values before they are stored. The email must not belong to an
// existing contact. Query parameters are ignored.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts --request "POST" --form "email=a@x.com" --form "name=Al" --form "subject=Hi"
func (h *contactsHandler) createContact(c *gin.Context) {
	var form imodel.ContactForm
	if err := bindForm(c, &form); err != nil {
		h.fail(c, err)
		return
	}
	contact := model.Contact{
		Email:   sanitize.String(form.Email),
		Name:    sanitize.String(form.Name),
		Subject: sanitize.String(form.Subject),
	}
	if _, err := h.store.Create(c.Request.Context(), contact); err != nil {
		h.failWith(c, err, msgCreateFailed)
		return
	}
	respond(c, http.StatusOK, msgContactAdded)
}

// findContactByID locates the contact whose ID value matches the id parameter of the request URL,
// then returns that contact as a response.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts/0b6e2e0c-5a43-4d43-a2b1-5cf1b5e3d0c1
func (h *contactsHandler) findContactByID(c *gin.Context) {
	contact, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// updateContactByID updates the contact whose ID value matches the id parameter of the request
// URL with the values specified in the JSON (and only those), and finally responds with the new
// version of the contact. Only 'email', 'name' and 'subject' can be changed; other keys are
// ignored. An empty body leaves the contact unchanged.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts/0b6e2e0c-5a43-4d43-a2b1-5cf1b5e3d0c1 --request "PUT" --header "Content-Type: application/json" --data '{"subject": "Bye"}'
func (h *contactsHandler) updateContactByID(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	var patch imodel.ContactPatch
	if len(bytes.TrimSpace(body)) > 0 {
		if err := binding.JSON.BindBody(body, &patch); err != nil {
			h.fail(c, errors.Join(store.ErrInvalidRequest, err))
			return
		}
	}
	patch = imodel.ContactPatch{
		Email:   sanitize.StringPtr(patch.Email),
		Name:    sanitize.StringPtr(patch.Name),
		Subject: sanitize.StringPtr(patch.Subject),
	}

	contact, err := h.store.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, model.ContactResponse{Status: http.StatusOK, Contact: contact})
}

// deleteContactByID deletes the contact whose ID value matches the id parameter of the request
// URL.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts/0b6e2e0c-5a43-4d43-a2b1-5cf1b5e3d0c1 --request "DELETE"
func (h *contactsHandler) deleteContactByID(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, msgContactDeleted)
}

// deleteAllContacts removes every contact, but only if the form field 'all' is set to 'true'.
// The field may also be passed as a query parameter.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts --request "DELETE" --form "all=true"
func (h *contactsHandler) deleteAllContacts(c *gin.Context) {
	form, err := bindDeleteAll(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.store.DeleteAll(c.Request.Context(), form.All); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, msgAllContactsDeleted)
}

// fail translates an error into the matching HTTP status and aborts the request. Errors that
// are not caused by the client are logged.
func (h *contactsHandler) fail(c *gin.Context, err error) {
	h.failWith(c, err, msgInternalError)
}

// failWith works like fail, but answers internal errors with the given message.
func (h *contactsHandler) failWith(c *gin.Context, err error, internalMessage string) {
	var status int
	var message string
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, message = http.StatusNotFound, msgContactNotFound
	case errors.Is(err, store.ErrDuplicateEmail):
		status, message = http.StatusBadRequest, msgEmailRegistered
	case errors.Is(err, store.ErrInvalidRequest):
		status, message = http.StatusBadRequest, msgInvalidRequest
	default:
		status, message = http.StatusInternalServerError, internalMessage
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(c.Request.Context(), level, "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"err", err,
	)
	c.AbortWithStatusJSON(status, model.Message{Status: status, Message: message})
}

// respond writes a status message as the response body.
func respond(c *gin.Context, status int, message string) {
	c.IndentedJSON(status, model.Message{Status: status, Message: message})
}
