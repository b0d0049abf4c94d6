package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "control panel listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	flag.Parse()

	fmt.Println("Mudra - Gesture Camera Control")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dbDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	sessionID := uuid.NewString()
	if prev, err := st.Settings().Get(store.SettingLastSessionID); err == nil {
		log.Printf("Previous session: %s (events at /api/sessions/%s)", prev, prev)
	}
	if err := st.Settings().Set(store.SettingLastSessionID, sessionID); err != nil {
		log.Printf("Failed to record session ID: %v", err)
	}

	hub := server.NewEventHub(st.Sessions(), sessionID)

	a := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
		Targets:  demoTargets(),
		Gesture:  gesture.DefaultConfig(),
		Interact: interact.DefaultConfig(),
		Notifier: hub,
	})
	if err := a.LoadActiveProfile(); err != nil {
		log.Printf("Failed to load active profile: %v", err)
	}

	// A denied camera only disables gesture control; the control panel and
	// tray still come up.
	if err := a.Start(); err != nil {
		log.Printf("Failed to start pipeline (gesture control disabled): %v", err)
	} else {
		a.SetEnabled(true)
	}
	defer a.Stop()

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Events:    hub,
	})

	go func() {
		fmt.Printf("Starting control panel on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnExitFocus(func() {
		// The exit lands on the next render tick.
		a.ExitFocus()
	})
	t.OnSettings(func() {
		log.Printf("Control panel available at http://localhost%s", *addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Mirror pipeline state into the tray menu.
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.SetGesture(string(a.LastLabel()))
			t.SetFocus(a.LastFocus())
		}
	}()

	// Blocks until Quit is chosen from the menu.
	t.Run()
}

// demoTargets is the built-in scene: a handful of selectable orbs around the
// origin until scene loading from the panel lands.
func demoTargets() []scene.Target {
	return []scene.Target{
		scene.NewTarget("Sun Core", r3.Vec{}, 0.8),
		scene.NewTarget("Inner Orbiter", r3.Vec{X: 2.5}, 0.4),
		scene.NewTarget("Outer Orbiter", r3.Vec{X: -4, Z: -1.5}, 0.6),
		scene.NewTarget("Sentinel", r3.Vec{Y: 2, Z: 2}, 0.3),
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
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

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
