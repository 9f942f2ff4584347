package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/pkg/response"
)

// MaxRequestBody caps how much of a request body middleware will buffer.
const MaxRequestBody = 1 << 20

var errBodyTooLarge = &response.AppError{HTTPStatus: http.StatusRequestEntityTooLarge, Code: 413, Message: "request body too large"}

// readBody buffers the request body up to MaxRequestBody and puts it back so
// later handlers can read it again.
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBody))
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errInvalidBody
	}
	return data, nil
}
