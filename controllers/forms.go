package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	// multipartMemory is how much of a parsed multipart body stays in
	// memory before spilling to temp files.
	multipartMemory = 32 << 20
	// maxRequestBytes caps a whole upload request, audio plus cover plus
	// fields.
	maxRequestBytes = 100 << 20
)

// postForm parses the request body (multipart or urlencoded) and returns
// the submitted fields. Edit forms send only the fields they touched, so
// presence in the form is what drives the merge-write builders. A body
// that claims to be multipart but cannot be parsed is an error; a plain
// urlencoded body is not.
func postForm(c *gin.Context) (url.Values, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	return c.Request.PostForm, nil
}

func formValue(form url.Values, key string) (string, bool) {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
