package main

import (
	"flag" // Command line flags
	"time" // Pause between LED states

	"github.com/SaidRavestG/secugen-api/internal/config"  // Custom package for configuration
	"github.com/SaidRavestG/secugen-api/internal/device"  // Device session service
	"github.com/SaidRavestG/secugen-api/internal/sgfplib" // Vendor SDK binding

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// ledctl is a bench diagnostic: it brings the reader up, prints its info and
// optionally blinks the LED, then tears the session down again.
func main() {
	blink := flag.Duration("blink", 0, "turn the LED on for this duration, then off (0 skips the LED)")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	session := device.NewSession(func() (device.SDK, error) {
		return sgfplib.Open(cfg.SDKLibrary)
	})

	if err := session.Initialize(); err != nil {
		logrus.Fatalf("failed to initialize reader: %v", err)
	}
	// Always tear down, even after a failed step below
	defer func() {
		if err := session.Terminate(); err != nil {
			logrus.Errorf("teardown finished with errors: %v", err)
		}
	}()

	info, err := session.DeviceInfo()
	if err != nil {
		logrus.Fatalf("failed to read device info: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"serial_number": info.SerialNumber,
		"image_width":   info.ImageWidth,
		"image_height":  info.ImageHeight,
		"image_dpi":     info.ImageDPI,
		"fw_version":    info.FWVersion,
	}).Info("Reader detected")

	if *blink <= 0 {
		return
	}
	if err := session.SetLED(true); err != nil {
		// Some reader models have no controllable LED
		logrus.Errorf("LED on failed: %v", err)
		return
	}
	time.Sleep(*blink)
	if err := session.SetLED(false); err != nil {
		logrus.Errorf("LED off failed: %v", err)
	}
}
