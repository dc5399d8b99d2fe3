package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/ayusman/irpoint/internal/app"
	"github.com/ayusman/irpoint/internal/detector"
	"github.com/ayusman/irpoint/internal/server"
	"github.com/ayusman/irpoint/internal/store"
	"github.com/ayusman/irpoint/internal/tracking"
	"github.com/ayusman/irpoint/internal/tray"
)

func main() {
	verbose := flag.Bool("v", false, "Display verbose per-cycle tracking information")
	cameraID := flag.Int("camera", 0, "Camera device ID")
	addr := flag.String("addr", ":8080", "Address for the tuning/settings server")
	profileName := flag.String("profile", "", "Tuning profile to use (defaults to the active profile)")
	noTray := flag.Bool("no-tray", false, "Run without the system tray (headless)")
	flag.Parse()

	fmt.Println("irpoint - IR Pointer Mouse")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".irpoint")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "irpoint.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	profile, err := loadProfile(st, *profileName)
	if err != nil {
		log.Fatalf("Failed to load tuning profile: %v", err)
	}
	log.Printf("Using profile %q", profile.Name)

	a, err := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
		Verbose:  *verbose,
		Thresholds: detector.ThresholdConfig{
			HueMin:   profile.HueMin,
			HueMax:   profile.HueMax,
			ValueMin: profile.ValueMin,
			ValueMax: profile.ValueMax,
		},
		Tracking: tracking.Config{
			Alpha:    profile.Alpha,
			MaxJump:  profile.MaxJump,
			DeadZone: profile.DeadZone,
			Gain:     profile.Gain,
			InvertX:  profile.InvertX,
		},
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracker: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to open camera: %v", err)
	}

	// Tuning/settings server
	srv := server.New(server.Config{
		StaticDir: findWebDir(dataDir),
		Store:     st,
		Camera:    a.Camera(),
		App:       a,
	})
	go func() {
		log.Printf("Settings server listening on %s", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Printf("Settings server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// The pipeline's terminal error: nil after a clean Stop, the capture
	// or actuator failure otherwise.
	errCh := make(chan error, 1)
	go func() { errCh <- a.Wait() }()

	exitCode := 0

	if *noTray {
		select {
		case <-sigCh:
			log.Println("Shutting down...")
			a.Stop()
			<-errCh
		case err := <-errCh:
			a.Stop()
			if err != nil {
				log.Printf("Tracking stopped: %v", err)
				exitCode = 1
			}
		}
	} else {
		t := tray.New()
		t.OnToggle(a.SetEnabled)
		t.OnSettings(func() {
			log.Printf("Settings: http://localhost%s/", *addr)
		})
		t.OnQuit(func() {
			a.Stop()
		})

		go func() {
			select {
			case <-sigCh:
				log.Println("Shutting down...")
				a.Stop()
				<-errCh
			case err := <-errCh:
				a.Stop()
				if err != nil {
					log.Printf("Tracking stopped: %v", err)
					exitCode = 1
				}
			}
			t.Quit()
		}()

		t.Run()
	}

	os.Exit(exitCode)
}

// loadProfile resolves the tuning profile to run with: the named one if
// -profile was given, otherwise the active profile. A fresh database is
// seeded with a default profile.
func loadProfile(st *store.Store, name string) (*store.Profile, error) {
	profiles := st.Profiles()

	if name != "" {
		return profiles.GetByName(name)
	}

	if activeID, err := st.Settings().Get(store.ActiveProfileKey); err == nil {
		p, err := profiles.GetByID(activeID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		// The active profile was deleted; fall through and reseed.
	}

	defaults := detector.DefaultThresholds()
	p := &store.Profile{
		ID:       uuid.New().String(),
		Name:     "default",
		HueMin:   defaults.HueMin,
		HueMax:   defaults.HueMax,
		ValueMin: defaults.ValueMin,
		ValueMax: defaults.ValueMax,
		Alpha:    tracking.DefaultAlpha,
		MaxJump:  tracking.DefaultMaxJump,
		DeadZone: tracking.DefaultDeadZone,
		Gain:     tracking.DefaultGain,
		InvertX:  true,
	}

	if err := profiles.Create(p); err != nil {
		// A default profile may already exist from a previous run.
		existing, gerr := profiles.GetByName("default")
		if gerr != nil {
			return nil, err
		}
		p = existing
	}

	if err := st.Settings().Set(store.ActiveProfileKey, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// findWebDir searches for the settings web directory in common
// locations. It checks "web", "../web", "../../web", and
// <dataDir>/web. Returns the first existing directory or empty string
// if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	webDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(webDir); err == nil && info.IsDir() {
		return webDir
	}

	return ""
}
