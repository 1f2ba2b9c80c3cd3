// Package device owns the process-wide reader session and the capture/match
// service built on top of the vendor SDK binding.
package device

import (
	"errors"

	"github.com/SaidRavestG/secugen-api/internal/sgfplib" // Vendor SDK binding
)

// SDK is the set of vendor calls the session needs. *sgfplib.Library satisfies
// it; tests substitute a fake so no reader hardware is required.
type SDK interface {
	Create(h *sgfplib.Handle) sgfplib.Code
	Init(h sgfplib.Handle, devName uint64) sgfplib.Code
	Terminate(h sgfplib.Handle) sgfplib.Code
	OpenDevice(h sgfplib.Handle, devID uint64) sgfplib.Code
	CloseDevice(h sgfplib.Handle) sgfplib.Code
	GetDeviceInfo(h sgfplib.Handle, info *sgfplib.DeviceInfoParam) sgfplib.Code
	SetLedOn(h sgfplib.Handle, on bool) sgfplib.Code
	GetImage(h sgfplib.Handle, buf []byte) sgfplib.Code
	CreateTemplate(h sgfplib.Handle, info *sgfplib.FingerInfo, image, template []byte) sgfplib.Code
	GetLastImageQuality(h sgfplib.Handle, quality *uint64) sgfplib.Code
	MatchTemplate(h sgfplib.Handle, t1, t2 []byte, securityLevel uint64, matched *bool) sgfplib.Code
}

// Loader opens the SDK library on first use, so the process can start without
// the vendor .so installed and fail only when /initialize is called.
type Loader func() (SDK, error)

// DeviceInfo is the reader description returned by /status.
type DeviceInfo struct {
	DeviceID     uint64 `json:"device_id"`     // Device model identifier
	SerialNumber string `json:"serial_number"` // Reader serial number
	ImageWidth   uint64 `json:"image_width"`   // Capture width in pixels
	ImageHeight  uint64 `json:"image_height"`  // Capture height in pixels
	ImageDPI     uint64 `json:"image_dpi"`     // Capture resolution
	FWVersion    uint64 `json:"fw_version"`    // Firmware version
}

// Session errors. Vendor-call failures are *sgfplib.CallError.
var (
	// ErrNotReady is returned by every operation while the session is not
	// initialized; recoverable by calling Initialize.
	ErrNotReady = errors.New("SDK not initialized or device not open")
	// ErrNotSupported is returned by SetLED when the reader reports the
	// generic-failure code, which on LED-less models means unsupported.
	ErrNotSupported = errors.New("LED control not supported by this reader")
	// ErrMalformedTemplate is returned by VerifyTemplates for input that is not
	// valid base64 or does not fit the template buffer; rejected before any
	// vendor call.
	ErrMalformedTemplate = errors.New("malformed template data")
)
