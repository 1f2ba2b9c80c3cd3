package sgfplib

import (
	"fmt"

	"github.com/ebitengine/purego" // Runtime loading of the vendor shared library
	"github.com/sirupsen/logrus"   // Logging library
)

// DefaultLibraryName is the shared object the deployment loads the SGFPM_*
// symbols from on Linux. Overridable through SDK_LIBRARY for other SDK builds.
const DefaultLibraryName = "libpysgfplib.so"

// Library wraps the loaded vendor shared object. One typed function pointer is
// registered per SGFPM_* call; every call returns the raw vendor Code.
type Library struct {
	create              func(*Handle) Code
	init                func(Handle, uint64) Code
	terminate           func(Handle) Code
	openDevice          func(Handle, uint64) Code
	closeDevice         func(Handle) Code
	getDeviceInfo       func(Handle, *DeviceInfoParam) Code
	setLedOn            func(Handle, bool) Code
	getImage            func(Handle, *byte) Code
	createTemplate      func(Handle, *FingerInfo, *byte, *byte) Code
	getLastImageQuality func(Handle, *uint64) Code
	matchTemplate       func(Handle, *byte, *byte, uint64, *bool) Code
}

// Open loads the vendor shared library and registers the call signatures.
// Loading fails if the SDK is not installed on the host.
func Open(name string) (*Library, error) {
	if name == "" {
		name = DefaultLibraryName
	}
	handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load SDK library %q: %w", name, err)
	}
	l := &Library{}
	// Core
	purego.RegisterLibFunc(&l.create, handle, "SGFPM_Create")
	purego.RegisterLibFunc(&l.init, handle, "SGFPM_Init")
	purego.RegisterLibFunc(&l.terminate, handle, "SGFPM_Terminate")
	// Device
	purego.RegisterLibFunc(&l.openDevice, handle, "SGFPM_OpenDevice")
	purego.RegisterLibFunc(&l.closeDevice, handle, "SGFPM_CloseDevice")
	purego.RegisterLibFunc(&l.getDeviceInfo, handle, "SGFPM_GetDeviceInfo")
	// LED
	purego.RegisterLibFunc(&l.setLedOn, handle, "SGFPM_SetLedOn")
	// Image / template
	purego.RegisterLibFunc(&l.getImage, handle, "SGFPM_GetImage")
	purego.RegisterLibFunc(&l.createTemplate, handle, "SGFPM_CreateTemplate")
	purego.RegisterLibFunc(&l.getLastImageQuality, handle, "SGFPM_GetLastImageQuality")
	// Matching
	purego.RegisterLibFunc(&l.matchTemplate, handle, "SGFPM_MatchTemplate")
	logrus.WithField("library", name).Info("SDK library loaded")
	return l, nil
}

// Create creates the SGFPM object and writes its handle into h.
func (l *Library) Create(h *Handle) Code { return l.create(h) }

// Init initializes the SDK for a device model identifier.
func (l *Library) Init(h Handle, devName uint64) Code { return l.init(h, devName) }

// Terminate destroys the SGFPM object.
func (l *Library) Terminate(h Handle) Code { return l.terminate(h) }

// OpenDevice opens the reader at the given device index.
func (l *Library) OpenDevice(h Handle, devID uint64) Code { return l.openDevice(h, devID) }

// CloseDevice closes the open reader.
func (l *Library) CloseDevice(h Handle) Code { return l.closeDevice(h) }

// GetDeviceInfo fills info for the open reader.
func (l *Library) GetDeviceInfo(h Handle, info *DeviceInfoParam) Code {
	return l.getDeviceInfo(h, info)
}

// SetLedOn drives the reader LED. Not supported by every reader model.
func (l *Library) SetLedOn(h Handle, on bool) Code { return l.setLedOn(h, on) }

// GetImage captures a fingerprint image into buf. Blocks until a finger is
// presented or the vendor driver times out; buf must be width*height bytes.
func (l *Library) GetImage(h Handle, buf []byte) Code { return l.getImage(h, &buf[0]) }

// CreateTemplate extracts a template from a captured image.
func (l *Library) CreateTemplate(h Handle, info *FingerInfo, image, template []byte) Code {
	return l.createTemplate(h, info, &image[0], &template[0])
}

// GetLastImageQuality reads the quality score of the last captured image.
func (l *Library) GetLastImageQuality(h Handle, quality *uint64) Code {
	return l.getLastImageQuality(h, quality)
}

// MatchTemplate compares two templates at the given security level.
func (l *Library) MatchTemplate(h Handle, t1, t2 []byte, securityLevel uint64, matched *bool) Code {
	return l.matchTemplate(h, &t1[0], &t2[0], securityLevel, matched)
}
