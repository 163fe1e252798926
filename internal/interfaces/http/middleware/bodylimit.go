package middleware

import (
	"net/http"
	"net/url"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const msgFormTooLarge = "El formulario excede el tamaño permitido"

// BodyLimit caps submitted forms at maxBytes. A declared oversize body is
// refused up front: /ui calls get the JSON envelope, page posts go back to
// the form they came from with an error flash. Bodies of unknown length are
// cut off while reading.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			if IsUIRequest(c) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
					dto.NewErrorResponse(dto.ErrCodeTooLarge, msgFormTooLarge))
				return
			}
			SetFlash(c, FlashError, msgFormTooLarge)
			c.Redirect(http.StatusSeeOther, RefererPath(c.Request, "/"))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// RefererPath returns the local path of the Referer header, or fallback
// when it is missing or points at another host
func RefererPath(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	return SafeNext(ref.RequestURI(), fallback)
}
