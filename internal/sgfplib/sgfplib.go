// Package sgfplib binds the SecuGen FDx SDK shared library (sgfplib) at runtime.
// Constants and structure layouts follow sgfplib.h for the Linux SDK build.
package sgfplib

import "fmt"

// Code is the numeric return code of every SGFPM_* function (DWORD in the SDK headers)
type Code uint64

// Handle is the opaque SGFPM object handle created by SGFPM_Create
type Handle uintptr

// Vendor return codes
const (
	ErrorNone           Code = 0 // Success
	ErrorFunctionFailed Code = 2 // Generic failure; SetLedOn returns this on readers without a controllable LED
)

// Device model identifiers for SGFPM_Init
const (
	DevAuto  uint64 = 0xFF // Auto-detect
	DevFDU06 uint64 = 0x07 // UPx / Hamster Pro
)

// Template matching security levels for SGFPM_MatchTemplate
const (
	SecurityLevelNormal uint64 = 5
)

// Finger info constants for SGFPM_CreateTemplate
const (
	FingerPositionUnknown   uint16 = 0x00 // Unknown finger
	ImpressionLiveScanPlain uint16 = 0x00 // Live-scan plain
)

// Buffer and format sizing
const (
	SerialNumberLen           = 15     // Serial number length, excluding NUL
	DefaultTemplateBufferSize = 2000   // Capacity handed to CreateTemplate/MatchTemplate
	TemplateSizeSG400         = 400    // SG400 templates are fixed at 400 bytes
	MaxImageQuality           = 0xFFFF // ImageQuality is a WORD
)

// TemplateFormatSG400 tags templates produced by this binding. The SDK default
// format is SG400 and this binding never switches it.
const TemplateFormatSG400 = "SG400"

// DeviceInfoParam mirrors SGDeviceInfoParam. Field order and sizes must match the
// C layout exactly (c_ulong is 8 bytes on linux/amd64, where the vendor .so runs).
type DeviceInfoParam struct {
	DeviceID    uint64                    // Device model identifier
	DeviceSN    [SerialNumberLen + 1]byte // NUL-terminated serial number
	ComPort     uint64
	ComSpeed    uint64
	ImageWidth  uint64
	ImageHeight uint64
	Contrast    uint64
	Brightness  uint64
	Gain        uint64
	ImageDPI    uint64
	FWVersion   uint64
}

// SerialNumber returns the serial as a string, cut at the first NUL.
func (p *DeviceInfoParam) SerialNumber() string {
	for i, b := range p.DeviceSN {
		if b == 0 {
			return string(p.DeviceSN[:i])
		}
	}
	return string(p.DeviceSN[:])
}

// FingerInfo mirrors SGFingerInfo, passed to SGFPM_CreateTemplate.
type FingerInfo struct {
	FingerNumber   uint16 // Finger position
	ViewNumber     uint16 // Sample view index
	ImpressionType uint16 // Impression type
	ImageQuality   uint16 // Quality of the source image
}

// CallError reports a vendor function that returned a nonzero code. Codes are not
// individually mapped to causes; the raw code is logged and surfaced as-is.
type CallError struct {
	Func string // Vendor function name, e.g. "SGFPM_GetImage"
	Code Code   // Raw vendor return code
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed (code=%d)", e.Func, e.Code)
}

// Check converts a vendor return code into an error, nil on ErrorNone.
func Check(fn string, code Code) error {
	if code == ErrorNone {
		return nil
	}
	return &CallError{Func: fn, Code: code}
}
