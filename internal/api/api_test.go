package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SaidRavestG/secugen-api/internal/device"
	"github.com/SaidRavestG/secugen-api/internal/domain"
	"github.com/SaidRavestG/secugen-api/internal/sgfplib"
)

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
}

// stubSDK stands in for the vendor library so handler tests run without a reader.
type stubSDK struct {
	openCode     sgfplib.Code
	infoCode     sgfplib.Code
	ledCode      sgfplib.Code
	imageCode    sgfplib.Code
	matchCode    sgfplib.Code
	matchResult  bool
	templateFill byte

	imageCalls int
}

func newStubSDK() *stubSDK { return &stubSDK{templateFill: 0x5A} }

func (s *stubSDK) Create(h *sgfplib.Handle) sgfplib.Code {
	*h = sgfplib.Handle(1)
	return sgfplib.ErrorNone
}

func (s *stubSDK) Init(sgfplib.Handle, uint64) sgfplib.Code { return sgfplib.ErrorNone }

func (s *stubSDK) Terminate(sgfplib.Handle) sgfplib.Code { return sgfplib.ErrorNone }

func (s *stubSDK) OpenDevice(sgfplib.Handle, uint64) sgfplib.Code { return s.openCode }

func (s *stubSDK) CloseDevice(sgfplib.Handle) sgfplib.Code { return sgfplib.ErrorNone }

func (s *stubSDK) GetDeviceInfo(_ sgfplib.Handle, info *sgfplib.DeviceInfoParam) sgfplib.Code {
	if s.infoCode != sgfplib.ErrorNone {
		return s.infoCode
	}
	info.DeviceID = uint64(sgfplib.DevFDU06)
	copy(info.DeviceSN[:], "TESTSN01")
	info.ImageWidth = 260
	info.ImageHeight = 300
	info.ImageDPI = 500
	info.FWVersion = 0x0100
	return sgfplib.ErrorNone
}

func (s *stubSDK) SetLedOn(sgfplib.Handle, bool) sgfplib.Code { return s.ledCode }

func (s *stubSDK) GetImage(sgfplib.Handle, []byte) sgfplib.Code {
	s.imageCalls++
	return s.imageCode
}

func (s *stubSDK) CreateTemplate(_ sgfplib.Handle, _ *sgfplib.FingerInfo, _, template []byte) sgfplib.Code {
	for i := range template {
		template[i] = s.templateFill
	}
	return sgfplib.ErrorNone
}

func (s *stubSDK) GetLastImageQuality(_ sgfplib.Handle, quality *uint64) sgfplib.Code {
	*quality = 75
	return sgfplib.ErrorNone
}

func (s *stubSDK) MatchTemplate(_ sgfplib.Handle, _, _ []byte, _ uint64, matched *bool) sgfplib.Code {
	if s.matchCode == sgfplib.ErrorNone {
		*matched = s.matchResult
	}
	return s.matchCode
}

func newSession(sdk device.SDK) *device.Session {
	return device.NewSession(func() (device.SDK, error) { return sdk, nil })
}

func newReadySession(t *testing.T, sdk device.SDK) *device.Session {
	t.Helper()
	sess := newSession(sdk)
	if err := sess.Initialize(); err != nil {
		t.Fatalf("initialize session: %v", err)
	}
	return sess
}

// newRouter wires the handlers the way cmd/server does, without auth.
func newRouter(db *gorm.DB, sess *device.Session) *gin.Engine {
	r := gin.New()
	r.POST("/users", RegisterHandler(db))
	r.GET("/login", LoginHandler(db, "test-secret"))
	fp := r.Group("/api/v1/fingerprint")
	fp.POST("/initialize", InitializeHandler(sess))
	fp.POST("/terminate", TerminateHandler(sess))
	fp.GET("/status", StatusHandler(sess))
	fp.POST("/led", LEDHandler(sess))
	fp.POST("/capture", CaptureHandler(sess))
	fp.POST("/verify", VerifyHandler(sess))
	fp.POST("/enroll", EnrollHandler(db, sess))
	r.GET("/users/:id/fingerprints", ListFingerprintsHandler(db))
	return r
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Fingerprint{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
