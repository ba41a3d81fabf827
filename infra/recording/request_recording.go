package recording

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const bodyRecordLimit = 4096

// RequestRecording is a cross cutting observer around the request pipeline.
// It logs request and response bodies at debug level with a per-request id
// and has no bearing on any authorization decision.
func RequestRecording() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !logrus.IsLevelEnabled(logrus.DebugLevel) {
			ctx.Next()
			return
		}

		requestID := uuid.New().String()

		var reqBody []byte
		if ctx.Request.Body != nil {
			reqBody, _ = io.ReadAll(ctx.Request.Body)
			ctx.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}
		logrus.WithFields(logrus.Fields{
			"requestId": requestID,
			"method":    ctx.Request.Method,
			"path":      ctx.Request.URL.Path,
		}).Debug("request: ", truncate(reqBody))

		writer := &recordingWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = writer

		start := time.Now()
		ctx.Next()

		logrus.WithFields(logrus.Fields{
			"requestId": requestID,
			"status":    ctx.Writer.Status(),
			"elapsedMs": time.Since(start).Milliseconds(),
		}).Debug("response: ", truncate(writer.body.Bytes()))
	}
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(data []byte) (int, error) {
	if w.body.Len() < bodyRecordLimit {
		w.body.Write(data)
	}
	return w.ResponseWriter.Write(data)
}

func (w *recordingWriter) WriteString(data string) (int, error) {
	if w.body.Len() < bodyRecordLimit {
		w.body.WriteString(data)
	}
	return w.ResponseWriter.WriteString(data)
}

func truncate(body []byte) string {
	if len(body) > bodyRecordLimit {
		body = body[:bodyRecordLimit]
	}
	return string(body)
}
