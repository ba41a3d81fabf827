package recording

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shaorongqiang/permission-api/testinfra"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

func TestRequestRecording(t *testing.T) {
	RegisterTestingT(t)

	router := gin.New()
	router.Use(RequestRecording())
	router.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})

	t.Run("the request body must survive recording", func(t *testing.T) {
		origLevel := logrus.GetLevel()
		logrus.SetLevel(logrus.DebugLevel)
		defer logrus.SetLevel(origLevel)

		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"hello": "world"}`))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(Equal(`{"hello": "world"}`))
	})

	t.Run("request and response are logged at debug level with a request id", func(t *testing.T) {
		origLevel := logrus.GetLevel()
		origOut := logrus.StandardLogger().Out
		logrus.SetLevel(logrus.DebugLevel)
		buf := bytes.Buffer{}
		logrus.SetOutput(&buf)
		defer func() {
			logrus.SetLevel(origLevel)
			logrus.SetOutput(origOut)
		}()

		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("ping"))
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))

		logged := buf.String()
		Expect(logged).To(ContainSubstring("request: ping"))
		Expect(logged).To(ContainSubstring("response: ping"))
		Expect(logged).To(ContainSubstring("requestId"))
	})

	t.Run("nothing is recorded below debug level", func(t *testing.T) {
		origLevel := logrus.GetLevel()
		origOut := logrus.StandardLogger().Out
		logrus.SetLevel(logrus.InfoLevel)
		buf := bytes.Buffer{}
		logrus.SetOutput(&buf)
		defer func() {
			logrus.SetLevel(origLevel)
			logrus.SetOutput(origOut)
		}()

		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("ping"))
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(buf.Len()).To(BeZero())
	})

	t.Run("oversized bodies are truncated in the record", func(t *testing.T) {
		Expect(len(truncate(make([]byte, bodyRecordLimit*2)))).To(Equal(bodyRecordLimit))
		Expect(truncate([]byte("short"))).To(Equal("short"))
	})
}
