package device

import (
	"sync"

	"github.com/sirupsen/logrus" // Logging library

	"github.com/SaidRavestG/secugen-api/internal/sgfplib" // Vendor SDK binding
)

// Session is the single logical device session shared by all requests: the
// SGFPM handle plus the two readiness flags, guarded by one mutex so at most
// one caller talks to the reader at a time.
type Session struct {
	mu sync.Mutex

	loader Loader // Opens the SDK library on first Initialize
	sdk    SDK    // Loaded library, nil until first Initialize

	handle         sgfplib.Handle // SGFPM object handle, 0 when absent
	sdkInitialized bool           // SGFPM_Init succeeded
	deviceOpened   bool           // SGFPM_OpenDevice succeeded
}

// NewSession returns an uninitialized session that loads the SDK via loader.
func NewSession(loader Loader) *Session {
	return &Session{loader: loader}
}

// Ready reports whether the SDK is initialized and the device is open.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked()
}

func (s *Session) readyLocked() bool {
	return s.sdkInitialized && s.deviceOpened && s.handle != 0
}

// Initialize loads the library, creates the SGFPM handle, initializes the SDK
// for the FDU06 model and opens device index 0, in that order. Idempotent: a
// ready session returns nil immediately. Any step's failure rolls the whole
// session back to uninitialized.
func (s *Session) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readyLocked() {
		logrus.Info("SDK already initialized and device open")
		return nil
	}

	// Load the library once
	if s.sdk == nil {
		sdk, err := s.loader()
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to load SDK library")
			return err
		}
		s.sdk = sdk
	}

	// Create the handle if absent
	if s.handle == 0 {
		var h sgfplib.Handle
		if err := sgfplib.Check("SGFPM_Create", s.sdk.Create(&h)); err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create SDK object")
			return err
		}
		if h == 0 {
			logrus.Error("SGFPM_Create returned success but a NULL handle")
			return &sgfplib.CallError{Func: "SGFPM_Create", Code: sgfplib.ErrorFunctionFailed}
		}
		s.handle = h
		logrus.WithField("handle", uintptr(h)).Info("SDK object created")
	}

	// Initialize the SDK for the UPx device model
	if !s.sdkInitialized {
		if err := sgfplib.Check("SGFPM_Init", s.sdk.Init(s.handle, sgfplib.DevFDU06)); err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to initialize SDK")
			s.terminateLocked() // Roll back the half-open session
			return err
		}
		s.sdkInitialized = true
		logrus.Info("SDK initialized")
	}

	// Open the first device
	if !s.deviceOpened {
		if err := sgfplib.Check("SGFPM_OpenDevice", s.sdk.OpenDevice(s.handle, 0)); err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to open device")
			s.terminateLocked() // Roll back the half-open session
			return err
		}
		s.deviceOpened = true
		logrus.Info("Device opened")
	}

	return nil
}

// Terminate closes the device if open and destroys the SGFPM handle if created.
// Teardown is best-effort: state is always reset to uninitialized, and the
// first native-level failure is reported.
func (s *Session) Terminate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminateLocked()
}

func (s *Session) terminateLocked() error {
	var firstErr error

	if s.deviceOpened && s.handle != 0 && s.sdk != nil {
		logrus.Info("Closing device")
		if err := sgfplib.Check("SGFPM_CloseDevice", s.sdk.CloseDevice(s.handle)); err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to close device")
			firstErr = err
		}
		s.deviceOpened = false // Mark closed even if the call failed
	}

	if s.handle != 0 && s.sdk != nil {
		logrus.Info("Terminating SDK")
		if err := sgfplib.Check("SGFPM_Terminate", s.sdk.Terminate(s.handle)); err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to terminate SDK")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	// Reset to uninitialized regardless of teardown outcome
	s.sdkInitialized = false
	s.deviceOpened = false
	s.handle = 0
	logrus.Info("SDK terminated")
	return firstErr
}

// DeviceInfo reads the open reader's description.
func (s *Session) DeviceInfo() (*DeviceInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceInfoLocked()
}

func (s *Session) deviceInfoLocked() (*DeviceInfo, error) {
	if !s.readyLocked() {
		return nil, ErrNotReady
	}
	var param sgfplib.DeviceInfoParam
	if err := sgfplib.Check("SGFPM_GetDeviceInfo", s.sdk.GetDeviceInfo(s.handle, &param)); err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to get device info")
		return nil, err
	}
	return &DeviceInfo{
		DeviceID:     param.DeviceID,
		SerialNumber: param.SerialNumber(),
		ImageWidth:   param.ImageWidth,
		ImageHeight:  param.ImageHeight,
		ImageDPI:     param.ImageDPI,
		FWVersion:    param.FWVersion,
	}, nil
}

// SetLED drives the reader LED on or off. A reader without a controllable LED
// answers with the generic-failure code, surfaced as ErrNotSupported.
func (s *Session) SetLED(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.readyLocked() {
		return ErrNotReady
	}
	code := s.sdk.SetLedOn(s.handle, on)
	switch code {
	case sgfplib.ErrorNone:
		logrus.WithField("state", on).Info("LED command sent")
		return nil
	case sgfplib.ErrorFunctionFailed:
		logrus.Warn("SGFPM_SetLedOn failed (code 2), function may not be supported")
		return ErrNotSupported
	default:
		err := sgfplib.Check("SGFPM_SetLedOn", code)
		logrus.WithField("error", err.Error()).Error("Failed to set LED")
		return err
	}
}
