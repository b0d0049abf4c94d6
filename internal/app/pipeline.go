package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
)

// detection is one detector result handed back to the render tick.
type detection struct {
	hands []detector.HandLandmarks
	err   error
}

// runPipeline drives two loops off one goroutine: a capture tick at the
// camera rate feeding the motion gate and the detector, and a render tick at
// a fixed rate advancing the rig and the interaction controller.
//
// Detection is fire-and-forget. Frames go to the detect goroutine through a
// one-slot channel; when the detector is still busy the frame is dropped.
// Results come back through a one-slot channel the render tick drains without
// blocking. Gesture state changes only on ticks that see a fresh result, so a
// slow detector stretches gesture latency but never stalls rendering.
func (a *App) runPipeline(stopCh chan struct{}) {
	frameCh := make(chan *gocv.Mat, 1)
	resultCh := make(chan detection, 1)
	go a.runDetect(frameCh, resultCh)
	defer close(frameCh)

	renderTicker := time.NewTicker(time.Second / RenderFPS)
	defer renderTicker.Stop()

	captureInterval := time.Second / time.Duration(capture.IdleFPS)
	captureTicker := time.NewTicker(captureInterval)
	defer captureTicker.Stop()

	activeMode := false
	lastMotionTime := time.Now()
	lastRender := time.Now()

	// Interaction inputs carried across render ticks between detections.
	var ev gesture.Event
	var pointer scene.Pointer
	handVisible := false

	for {
		select {
		case <-stopCh:
			return

		case <-captureTicker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(capture.ActiveFPS)
					captureTicker.Reset(time.Second / time.Duration(capture.ActiveFPS))
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(capture.IdleFPS)
					captureTicker.Reset(time.Second / time.Duration(capture.IdleFPS))
					// Going idle means no hand has moved for a while; feed an
					// empty detection through so the hand is released rather
					// than frozen in its last pose.
					select {
					case resultCh <- detection{}:
					default:
					}
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			select {
			case frameCh <- frame:
			default:
				// Detector still busy; this frame is expendable.
				frame.Close()
			}

		case <-renderTicker.C:
			now := time.Now()
			dt := now.Sub(lastRender)
			lastRender = now

			// Pending profile swaps and UI focus exits apply between ticks.
			select {
			case p := <-a.profileCh:
				a.applyProfile(p)
			default:
			}
			select {
			case <-a.exitFocusCh:
				a.controller.ExitFocus()
			default:
			}

			select {
			case res := <-resultCh:
				if res.err != nil {
					log.Printf("Error detecting hands: %v", res.err)
					break
				}
				ev = a.classifier.Process(res.hands)
				handVisible = len(res.hands) > 0
				if handVisible {
					tip := res.hands[0].Points[detector.IndexTip]
					pointer = scene.Pointer{X: tip.X, Y: tip.Y}
				}
			default:
				// No fresh detection; the previous event carries over.
			}

			a.rig.Update(dt)
			if a.IsEnabled() {
				a.controller.Tick(dt, ev, pointer, handVisible)
			}

			focus := ""
			if target, ok := a.controller.FocusedTarget(); ok {
				focus = target.Name
			}
			a.recordTick(ev.Type, a.controller.State(), focus)
		}
	}
}

// runDetect is the detection worker. It owns each frame it receives.
func (a *App) runDetect(frames <-chan *gocv.Mat, results chan<- detection) {
	for frame := range frames {
		hands, err := a.Detector().Detect(frame)
		frame.Close()

		select {
		case results <- detection{hands: hands, err: err}:
		default:
			// The render loop hasn't consumed the previous result yet;
			// replace it so the freshest detection wins.
			select {
			case <-results:
			default:
			}
			select {
			case results <- detection{hands: hands, err: err}:
			default:
			}
		}
	}
}
