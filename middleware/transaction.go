package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const txKey = "tx"

// Transaction opens one database transaction per request and stores it in the
// gin context. The handler's response is buffered: it is committed when the
// handler finished below 500 and only then sent. A failed commit replaces the
// response with the generic server error. A 5xx status or a panic rolls back;
// the panic is re-raised for Recovery.
func Transaction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.WithContext(c.Request.Context()).Begin()
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("Failed to begin transaction")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Database unavailable",
			})
			return
		}
		c.Set(txKey, tx)

		writer := c.Writer
		headers := writer.Header().Clone()
		buffered := newBufferedWriter(writer)
		c.Writer = buffered

		done := false
		defer func() {
			c.Writer = writer
			if done {
				return
			}
			if err := tx.Rollback().Error; err != nil {
				log.Error().Err(err).Msg("Failed to roll back transaction")
			}
		}()

		c.Next()
		c.Writer = writer

		if buffered.Status() < http.StatusInternalServerError {
			err := tx.Commit().Error
			done = true
			if err != nil {
				log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to commit transaction")
				resetHeaders(writer.Header(), headers)
				RespondServerError(c)
				return
			}
		}
		buffered.flush()
	}
}

// Tx returns the request transaction. It panics when Transaction is not
// installed on the route.
func Tx(c *gin.Context) *gorm.DB {
	return c.MustGet(txKey).(*gorm.DB)
}

// bufferedWriter holds the status and body until the transaction outcome is
// known. Headers go straight to the underlying map.
type bufferedWriter struct {
	gin.ResponseWriter
	status  int
	written bool
	body    bytes.Buffer
}

func newBufferedWriter(w gin.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.written {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.written {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

// Flush is a no-op until the response is released.
func (w *bufferedWriter) Flush() {}

func (w *bufferedWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	if w.body.Len() == 0 {
		w.ResponseWriter.WriteHeaderNow()
		return
	}
	if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
		log.Debug().Err(err).Msg("Failed to write response")
	}
}

// resetHeaders drops everything the handler added, such as a session cookie.
func resetHeaders(h, snapshot http.Header) {
	for key := range h {
		delete(h, key)
	}
	for key, values := range snapshot {
		h[key] = values
	}
}
