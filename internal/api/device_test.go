package api

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/SaidRavestG/secugen-api/internal/sgfplib"
)

func TestReadyOnlyEndpointsReturn503WhileNotReady(t *testing.T) {
	r := newRouter(setupDB(t), newSession(newStubSDK()))

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/fingerprint/status", ""},
		{http.MethodPost, "/api/v1/fingerprint/led", `{"state":true}`},
		{http.MethodPost, "/api/v1/fingerprint/capture", ""},
		{http.MethodPost, "/api/v1/fingerprint/verify", `{"template1":"AA==","template2":"AA=="}`},
		{http.MethodPost, "/api/v1/fingerprint/enroll", `{"user_id":1,"finger_position":"thumb_right"}`},
		// Gating is unconditional: a bad or missing body is still a 503, not a 400
		{http.MethodPost, "/api/v1/fingerprint/led", ``},
		{http.MethodPost, "/api/v1/fingerprint/led", `{}`},
		{http.MethodPost, "/api/v1/fingerprint/verify", `{"template1":"AA=="}`},
		{http.MethodPost, "/api/v1/fingerprint/verify", `not json`},
	}
	for _, tc := range cases {
		rec := perform(r, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s %s (body %q): expected 503, got %d (%s)", tc.method, tc.path, tc.body, rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["success"] != false || body["message"] != notReadyMessage {
			t.Fatalf("%s %s (body %q): unexpected body %v", tc.method, tc.path, tc.body, body)
		}
	}
}

func TestInitializeEndpoint(t *testing.T) {
	sess := newSession(newStubSDK())
	r := newRouter(setupDB(t), sess)

	rec := perform(r, http.MethodPost, "/api/v1/fingerprint/initialize", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["success"] != true {
		t.Fatalf("unexpected body %v", body)
	}

	// Calling it again while ready succeeds without altering the session
	rec = perform(r, http.MethodPost, "/api/v1/fingerprint/initialize", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat initialize, got %d", rec.Code)
	}
	if !sess.Ready() {
		t.Fatal("expected session to stay ready")
	}
}

func TestInitializeEndpointReports503OnFailure(t *testing.T) {
	sdk := newStubSDK()
	sdk.openCode = sgfplib.ErrorFunctionFailed
	r := newRouter(setupDB(t), newSession(sdk))

	rec := perform(r, http.MethodPost, "/api/v1/fingerprint/initialize", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["success"] != false {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestTerminateEndpointMakesSessionNotReady(t *testing.T) {
	sess := newReadySession(t, newStubSDK())
	r := newRouter(setupDB(t), sess)

	rec := perform(r, http.MethodPost, "/api/v1/fingerprint/terminate", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["success"] != true {
		t.Fatalf("unexpected body %v", body)
	}

	// Any ready-only operation now answers 503
	rec = perform(r, http.MethodGet, "/api/v1/fingerprint/status", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after terminate, got %d", rec.Code)
	}
}

func TestStatusEndpointReturnsDeviceInfo(t *testing.T) {
	r := newRouter(setupDB(t), newReadySession(t, newStubSDK()))

	rec := perform(r, http.MethodGet, "/api/v1/fingerprint/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Fatalf("unexpected status %v", body["status"])
	}
	info, ok := body["device_info"].(map[string]any)
	if !ok {
		t.Fatalf("missing device_info in %v", body)
	}
	if info["serial_number"] != "TESTSN01" {
		t.Fatalf("unexpected serial %v", info["serial_number"])
	}
	if info["image_width"] != float64(260) || info["image_height"] != float64(300) {
		t.Fatalf("unexpected dimensions %v x %v", info["image_width"], info["image_height"])
	}
}

func TestStatusEndpointReports500OnInfoFailure(t *testing.T) {
	sdk := newStubSDK()
	r := newRouter(setupDB(t), newReadySession(t, sdk))

	// A ready session whose reader stops answering GetDeviceInfo is an info
	// failure, not a readiness failure
	sdk.infoCode = sgfplib.ErrorFunctionFailed
	rec := perform(r, http.MethodGet, "/api/v1/fingerprint/status", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d (%s)", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["success"] != false || body["device_info"] != nil {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestLEDEndpoint(t *testing.T) {
	sdk := newStubSDK()
	r := newRouter(setupDB(t), newReadySession(t, sdk))

	// Missing or mistyped state field is rejected before any vendor call
	for _, body := range []string{"", `{}`, `{"state":"on"}`} {
		rec := perform(r, http.MethodPost, "/api/v1/fingerprint/led", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}

	// false is a valid state, not a missing field
	rec := perform(r, http.MethodPost, "/api/v1/fingerprint/led", `{"state":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for state=false, got %d (%s)", rec.Code, rec.Body.String())
	}

	// The unsupported code surfaces as a 500, same as a genuine fault
	sdk.ledCode = sgfplib.ErrorFunctionFailed
	rec = perform(r, http.MethodPost, "/api/v1/fingerprint/led", `{"state":true}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unsupported LED, got %d", rec.Code)
	}
}

func TestCaptureEndpointReturnsFullTemplate(t *testing.T) {
	r := newRouter(setupDB(t), newReadySession(t, newStubSDK()))

	rec := perform(r, http.MethodPost, "/api/v1/fingerprint/capture", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	template, ok := body["template"].(string)
	if !ok || template == "" {
		t.Fatalf("missing template in %v", body)
	}
	raw, err := base64.StdEncoding.DecodeString(template)
	if err != nil {
		t.Fatalf("template is not valid base64: %v", err)
	}
	if len(raw) != sgfplib.TemplateSizeSG400 {
		t.Fatalf("expected %d template bytes, got %d", sgfplib.TemplateSizeSG400, len(raw))
	}
}

func TestCaptureEndpointReports500OnVendorFailure(t *testing.T) {
	sdk := newStubSDK()
	sdk.imageCode = sgfplib.ErrorFunctionFailed
	r := newRouter(setupDB(t), newReadySession(t, sdk))

	rec := perform(r, http.MethodPost, "/api/v1/fingerprint/capture", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	sdk := newStubSDK()
	sdk.matchResult = true
	r := newRouter(setupDB(t), newReadySession(t, sdk))

	// Missing fields
	rec := perform(r, http.MethodPost, "/api/v1/fingerprint/verify", `{"template1":"AA=="}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing template2, got %d", rec.Code)
	}

	// Malformed base64 is a verification error, never a boolean result
	rec = perform(r, http.MethodPost, "/api/v1/fingerprint/verify", `{"template1":"%%%","template2":"AA=="}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for malformed base64, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["match"] != nil {
		t.Fatalf("no match result may be reported on failure, got %v", body)
	}

	// Valid templates produce a boolean match
	rec = perform(r, http.MethodPost, "/api/v1/fingerprint/verify", `{"template1":"AQID","template2":"AQID"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["match"] != true {
		t.Fatalf("expected match=true, got %v", body)
	}
}
