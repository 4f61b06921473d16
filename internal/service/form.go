package service

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	imodel "gitlab.com/dirk.krummacker/contacts-store/internal/model"
)

// maxFormMemory is the maximum size of a URL-encoded DELETE body.
const maxFormMemory = 32 << 20

// bindForm binds the fields of a multipart or URL-encoded request body to obj. Query
// parameters are not taken into account.
func bindForm(c *gin.Context, obj any) error {
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		return c.ShouldBindWith(obj, binding.FormMultipart)
	}
	return c.ShouldBindWith(obj, binding.FormPost)
}

// bindDeleteAll reads the confirmation for deleting all contacts from the request body, or from
// the query string if the body has no value for it.
func bindDeleteAll(c *gin.Context) (imodel.DeleteAllForm, error) {
	var form imodel.DeleteAllForm
	if err := bindForm(c, &form); err != nil {
		return form, err
	}
	// net/http parses URL-encoded bodies only for POST, PUT and PATCH.
	if form.All == "" && c.Request.Method == http.MethodDelete && c.ContentType() == binding.MIMEPOSTForm {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFormMemory))
		if err != nil {
			return form, fmt.Errorf("service: read form: %w", err)
		}
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return form, fmt.Errorf("service: parse form: %w", err)
		}
		form.All = values.Get("all")
	}
	if form.All == "" {
		form.All = c.Query("all")
	}
	return form, nil
}
