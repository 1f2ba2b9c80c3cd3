package device

import (
	"encoding/base64"
	"fmt"

	"github.com/sirupsen/logrus" // Logging library

	"github.com/SaidRavestG/secugen-api/internal/sgfplib" // Vendor SDK binding
)

// CaptureTemplate captures one fingerprint image and extracts its SG400
// template, returned base64-encoded. The GetImage call blocks until a finger is
// presented or the vendor driver times out; the timeout is owned by the driver.
// Any vendor-call failure aborts the sequence, no partial template is returned.
func (s *Session) CaptureTemplate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.readyLocked() {
		return "", ErrNotReady
	}

	// Read capture dimensions from the reader
	info, err := s.deviceInfoLocked()
	if err != nil {
		return "", err
	}
	if info.ImageWidth == 0 || info.ImageHeight == 0 {
		logrus.Error("Device reported invalid capture dimensions")
		return "", fmt.Errorf("invalid capture dimensions %dx%d", info.ImageWidth, info.ImageHeight)
	}

	// Capture the image. Blocks awaiting finger placement.
	imageBuf := make([]byte, info.ImageWidth*info.ImageHeight)
	logrus.Info("Calling SGFPM_GetImage, place finger on the reader")
	if err := sgfplib.Check("SGFPM_GetImage", s.sdk.GetImage(s.handle, imageBuf)); err != nil {
		logrus.WithField("error", err.Error()).Error("Image capture failed")
		return "", err
	}
	logrus.Info("Image captured")

	// Quality score is optional; a failure here is non-fatal and defaults to 0
	var quality uint64
	if err := sgfplib.Check("SGFPM_GetLastImageQuality", s.sdk.GetLastImageQuality(s.handle, &quality)); err != nil {
		logrus.Warn("Could not read image quality, using 0")
		quality = 0
	}
	if quality > sgfplib.MaxImageQuality {
		quality = sgfplib.MaxImageQuality // ImageQuality is a WORD
	}

	fingerInfo := sgfplib.FingerInfo{
		FingerNumber:   sgfplib.FingerPositionUnknown,
		ViewNumber:     0, // First and only view
		ImpressionType: sgfplib.ImpressionLiveScanPlain,
		ImageQuality:   uint16(quality),
	}

	// Extract the template
	templateBuf := make([]byte, sgfplib.DefaultTemplateBufferSize)
	if err := sgfplib.Check("SGFPM_CreateTemplate", s.sdk.CreateTemplate(s.handle, &fingerInfo, imageBuf, templateBuf)); err != nil {
		logrus.WithField("error", err.Error()).Error("Template extraction failed")
		return "", err
	}

	// SG400 templates are fixed at 400 bytes; the binding never switches format
	encoded := base64.StdEncoding.EncodeToString(templateBuf[:sgfplib.TemplateSizeSG400])
	logrus.WithFields(logrus.Fields{
		"quality":    quality,
		"base64_len": len(encoded),
	}).Info("Template created")
	return encoded, nil
}

// VerifyTemplates compares two base64-encoded templates at the given security
// level. Malformed input is rejected before any vendor call. A vendor-call
// failure is returned as an error, never conflated with a "no match" result.
func (s *Session) VerifyTemplates(template1, template2 string, securityLevel uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.readyLocked() {
		return false, ErrNotReady
	}

	buf1, err := decodeTemplate(template1)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Rejected template1")
		return false, err
	}
	buf2, err := decodeTemplate(template2)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Rejected template2")
		return false, err
	}

	var matched bool
	logrus.WithField("security_level", securityLevel).Info("Calling SGFPM_MatchTemplate")
	if err := sgfplib.Check("SGFPM_MatchTemplate", s.sdk.MatchTemplate(s.handle, buf1, buf2, securityLevel, &matched)); err != nil {
		logrus.WithField("error", err.Error()).Error("Template matching failed")
		return false, err
	}
	logrus.WithField("match", matched).Info("Templates compared")
	return matched, nil
}

// decodeTemplate decodes a base64 template into a fixed-capacity buffer, the
// same capacity handed to CreateTemplate, independent of the decoded length.
func decodeTemplate(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
	}
	if len(raw) > sgfplib.DefaultTemplateBufferSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds buffer capacity", ErrMalformedTemplate, len(raw))
	}
	buf := make([]byte, sgfplib.DefaultTemplateBufferSize)
	copy(buf, raw)
	return buf, nil
}
