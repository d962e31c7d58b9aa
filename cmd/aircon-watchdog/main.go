// Command aircon-watchdog drives an IR-controlled air conditioner under
// hardware watchdog protection. Every IR command is bracketed by liveness
// timer feeds; the designed-in fault branches stop feeding so the watchdog
// reset path stays proven.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/controller"
	"github.com/sweeney/aircon-watchdog/internal/diag"
	"github.com/sweeney/aircon-watchdog/internal/display"
	"github.com/sweeney/aircon-watchdog/internal/gpio"
	"github.com/sweeney/aircon-watchdog/internal/ir"
	"github.com/sweeney/aircon-watchdog/internal/logic"
	"github.com/sweeney/aircon-watchdog/internal/mqtt"
	"github.com/sweeney/aircon-watchdog/internal/status"
	"github.com/sweeney/aircon-watchdog/internal/watchdog"
	"github.com/sweeney/aircon-watchdog/internal/web"
)

const (
	defaultDebounce = 300 * time.Millisecond
	defaultPoll     = 10 * time.Millisecond

	heartbeatPeriod = 500 * time.Millisecond
	refreshPeriod   = time.Second

	// diagHold keeps the boot diagnostics screen up before the watchdog is
	// armed, so a recovered fault record can actually be read.
	diagHold = 3 * time.Second

	bootBlinkCount  = 3
	bootBlinkPeriod = 120 * time.Millisecond

	bringUpBlinkPeriod = 100 * time.Millisecond
	manualFaultBlink   = 200 * time.Millisecond
	temp22FaultBlink   = 150 * time.Millisecond
)

func main() {
	window := flag.Duration("window", watchdog.DefaultWindow, "Watchdog liveness window")
	debounce := flag.Duration("debounce", defaultDebounce, "Button debounce window")
	settle := flag.Duration("settle", controller.DefaultSettle, "Post-transmission settle delay")
	poll := flag.Duration("poll", defaultPoll, "Scheduler polling interval")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	lircSocket := flag.String("lirc-socket", ir.DefaultSocket, "lircd control socket")
	lircRemote := flag.String("lirc-remote", "aircon", "Remote name in lircd.conf")
	faultFile := flag.String("fault-file", diag.DefaultPath, "Fault record path")
	watchdogDev := flag.String("watchdog-device", watchdog.DefaultDevice, "Watchdog device node")
	pinFault := flag.Int("pin-fault", gpio.DefaultPinFaultBtn, "BCM pin for the fault button")
	pinAdvance := flag.Int("pin-advance", gpio.DefaultPinAdvanceBtn, "BCM pin for the advance button")
	pinLedBoot := flag.Int("pin-led-boot", gpio.DefaultPinLedBoot, "BCM pin for the boot LED")
	pinLedHeart := flag.Int("pin-led-heart", gpio.DefaultPinLedHeart, "BCM pin for the heartbeat LED")
	pinLedFault := flag.Int("pin-led-fault", gpio.DefaultPinLedFault, "BCM pin for the fault LED")
	configPath := flag.String("config", "", "YAML config file (flags take precedence)")

	flag.Parse()

	opts := options{
		Window:         *window,
		Debounce:       *debounce,
		Settle:         *settle,
		Poll:           *poll,
		Broker:         *broker,
		HTTPAddr:       *httpAddr,
		LircSocket:     *lircSocket,
		LircRemote:     *lircRemote,
		FaultFile:      *faultFile,
		WatchdogDevice: *watchdogDev,
		Pins: gpio.Pins{
			FaultBtn:   *pinFault,
			AdvanceBtn: *pinAdvance,
			LedBoot:    *pinLedBoot,
			LedHeart:   *pinLedHeart,
			LedFault:   *pinLedFault,
		},
	}

	if *configPath != "" {
		fc, err := loadFileConfig(*configPath)
		if err != nil {
			log.Fatalf("fatal: %v", err)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		applyFileConfig(&opts, fc, set)
	}

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(opts options) error {
	hw, err := gpio.NewRealIO(opts.Pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer hw.Close()

	disp := display.NewConsole(os.Stdout)

	blinkBoot(hw)

	wdt, err := watchdog.OpenDevice(opts.WatchdogDevice)
	if err != nil {
		return failBringUp(hw, fmt.Errorf("open watchdog: %w", err))
	}

	store, err := diag.NewFileStore(opts.FaultFile)
	if err != nil {
		return failBringUp(hw, fmt.Errorf("open fault store: %w", err))
	}

	wasReset := wdt.CausedLastReset()
	rec, err := store.Read()
	if err != nil {
		log.Printf("read fault record: %v", err)
	}
	if !wasReset {
		// Clean boot: the previous fault record no longer describes this run.
		rec = diag.FaultRecord{}
		if err := store.Write(rec); err != nil {
			log.Printf("zero fault record: %v", err)
		}
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		WindowMs:   opts.Window.Milliseconds(),
		DebounceMs: opts.Debounce.Milliseconds(),
		PollMs:     opts.Poll.Milliseconds(),
		SettleMs:   opts.Settle.Milliseconds(),
		Broker:     opts.Broker,
		HTTPAddr:   opts.HTTPAddr,
		LircRemote: opts.LircRemote,
	})
	tracker.SetBoot(wasReset, rec)

	publisher := mqtt.NewRealPublisher(opts.Broker)
	defer publisher.Close()

	if wasReset {
		log.Printf("recovered from WATCHDOG reset: count=%d fault=%s", rec.ResetCount, rec.Code)
	} else {
		log.Printf("clean boot (power-on or manual reset)")
	}
	if err := disp.ShowBootDiag(display.BootDiag{
		WatchdogReset: wasReset,
		ResetCount:    rec.ResetCount,
		FaultCode:     rec.Code,
		Window:        opts.Window,
	}); err != nil {
		log.Printf("render boot diag: %v", err)
	}
	bootEvent := mqtt.SystemEvent{
		Timestamp: time.Now(),
		Event:     "BOOT",
		Retained:  true,
		Boot: &mqtt.BootInfo{
			WatchdogReset: wasReset,
			ResetCount:    rec.ResetCount,
			FaultCode:     rec.Code.String(),
			WindowMs:      opts.Window.Milliseconds(),
		},
	}
	if err := publisher.PublishSystem(bootEvent); err != nil {
		log.Printf("publish boot event: %v", err)
	}

	if opts.HTTPAddr != "" {
		srv := web.New(opts.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.HTTPAddr)
	}

	sender, err := ir.NewLircSender(opts.LircSocket, opts.LircRemote)
	if err != nil {
		return failBringUp(hw, fmt.Errorf("init ir: %w", err))
	}
	defer sender.Close()

	// Hold the boot report on screen. The watchdog is not armed yet, so this
	// pause cannot trip it.
	time.Sleep(diagHold)

	if err := wdt.Arm(opts.Window); err != nil {
		return failBringUp(hw, fmt.Errorf("arm watchdog: %w", err))
	}
	tracker.SetArmed(true)
	log.Printf("watchdog armed: window=%v", opts.Window)

	ctrl := controller.New(controller.Deps{
		Feeder:  wdt,
		Store:   store,
		Sender:  sender,
		Display: disp,
		Tracker: tracker,
		Settle:  opts.Settle,
	})

	printMenu(os.Stdout)
	if err := disp.ShowStatus(ctrl.Current()); err != nil {
		log.Printf("render status: %v", err)
	}

	serial := make(chan byte, 16)
	go readSerial(os.Stdin, serial)

	ticker := time.NewTicker(opts.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		ctrl:       ctrl,
		buttons:    hw,
		leds:       hw,
		disp:       disp,
		feeder:     wdt,
		publisher:  publisher,
		mqttStatus: publisher,
		tracker:    tracker,
	}
	err = runLoop(deps, opts.Debounce, time.Now, ticker.C, serial, sigCh)

	var halt haltErr
	if errors.As(err, &halt) {
		// Terminal fault: blink until the watchdog pulls the plug.
		blinkForever(hw, gpio.LedFault, halt.cadence)
	}
	return err
}

// loopDeps groups the collaborators of the scheduler loop so tests can
// substitute fakes.
type loopDeps struct {
	ctrl       *controller.Controller
	buttons    gpio.Buttons
	leds       gpio.Leds
	disp       display.Display
	feeder     watchdog.Feeder
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus // may be nil
	tracker    *status.Tracker
}

// haltErr reports that a terminal fault branch was entered. The caller must
// blink the fault LED at the given cadence and let the watchdog expire.
type haltErr struct {
	cadence time.Duration
	label   string
}

func (e haltErr) Error() string {
	return fmt.Sprintf("terminal fault (%s): awaiting watchdog reset", e.label)
}

func runLoop(d loopDeps, debounce time.Duration, now func() time.Time, tick <-chan time.Time, serial <-chan byte, sig <-chan os.Signal) error {
	faultBtn := logic.NewButton(debounce)
	advanceBtn := logic.NewButton(debounce)

	heartbeatOn := false
	lastHeartbeat := now()
	lastRefresh := now()
	lastShown := d.ctrl.Current()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName(s),
				Retained:  true,
			}
			if err := d.publisher.PublishSystem(event); err != nil {
				log.Printf("publish shutdown event: %v", err)
			}
			return nil

		case b := <-serial:
			if b == logic.KeyHelp {
				printMenu(os.Stdout)
				break
			}
			target, ok := logic.TargetForKey(b)
			if !ok {
				if b != '\n' && b != '\r' {
					log.Printf("unknown serial key %q", b)
				}
				break
			}
			log.Printf("serial command %q: target %s", b, target)
			if err := d.execute(target, now); err != nil {
				return err
			}

		case <-tick:
			t := now()

			fault, advance, err := d.buttons.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
			} else {
				if faultBtn.Sample(fault, t) {
					log.Printf("fault button pressed: entering terminal fault branch")
					d.ctrl.EnterFault(diag.CodeManualFault, "FAULT BUTTON")
					d.publishFault(now)
					return haltErr{cadence: manualFaultBlink, label: "FAULT BUTTON"}
				}
				if advanceBtn.Sample(advance, t) {
					target := d.ctrl.Current().Next()
					log.Printf("advance button: target %s", target)
					if err := d.execute(target, now); err != nil {
						return err
					}
				}
			}

			if t.Sub(lastHeartbeat) >= heartbeatPeriod {
				heartbeatOn = !heartbeatOn
				if err := d.leds.Set(gpio.LedHeartbeat, heartbeatOn); err != nil {
					log.Printf("heartbeat led: %v", err)
				}
				lastHeartbeat = t
			}

			// Refresh the status screen on a state change or once per period,
			// whichever comes first. An edge refresh resets the timer.
			cur := d.ctrl.Current()
			if cur != lastShown || t.Sub(lastRefresh) >= refreshPeriod {
				if err := d.disp.ShowStatus(cur); err != nil {
					log.Printf("render status: %v", err)
				}
				lastShown = cur
				lastRefresh = t
				d.feed()
			}

			if d.tracker != nil && d.mqttStatus != nil {
				d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
			}

			// Baseline liveness: every iteration ends with a feed.
			d.feed()
		}
	}
}

// execute runs one transition and publishes the matching MQTT traffic.
// A rejected transition is logged and absorbed; a fatal halt is returned as
// haltErr so the loop unwinds to the blink loop.
func (d loopDeps) execute(target logic.State, now func() time.Time) error {
	outcome, err := d.ctrl.Execute(target)
	switch outcome {
	case controller.OutcomeApplied:
		cmd, _ := ir.CommandForState(target)
		event := mqtt.StateEvent{Timestamp: now(), State: target, Command: string(cmd)}
		if err := d.publisher.Publish(event); err != nil {
			log.Printf("publish state event: %v", err)
		}
	case controller.OutcomeRejected:
		log.Printf("transition rejected: %v", err)
	case controller.OutcomeFatalHalt:
		d.publishFault(now)
		return haltErr{cadence: temp22FaultBlink, label: "CMD 22C FAILED"}
	}
	return nil
}

// publishFault emits the FAULT lifecycle event from the tracker's view of the
// just-written record. Publish failures only get logged; the broker being
// away must not stop the halt.
func (d loopDeps) publishFault(now func() time.Time) {
	if d.tracker == nil {
		return
	}
	snap := d.tracker.Snapshot()
	event := mqtt.SystemEvent{
		Timestamp: now(),
		Event:     "FAULT",
		Reason:    snap.FaultLabel,
		Retained:  true,
		Fault: &mqtt.FaultInfo{
			FaultCode:  snap.Fault.Code.String(),
			ResetCount: snap.Fault.ResetCount,
			Label:      snap.FaultLabel,
		},
	}
	if err := d.publisher.PublishSystem(event); err != nil {
		log.Printf("publish fault event: %v", err)
	}
}

func (d loopDeps) feed() {
	if err := d.feeder.Feed(); err != nil {
		log.Printf("watchdog feed: %v", err)
	}
	if d.tracker != nil {
		d.tracker.RecordFeed()
	}
}

// readSerial forwards single key bytes from r to ch. Exits on read error.
func readSerial(r io.Reader, ch chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			ch <- buf[0]
		}
		if err != nil {
			return
		}
	}
}

func printMenu(w io.Writer) {
	fmt.Fprint(w, "\n=== IR + WATCHDOG MENU ===\n"+
		"1-AC ON        2-AC OFF\n"+
		"3-22C (FAULT!) 4-20C\n"+
		"5-FAN 1        6-FAN 2\n"+
		"0-MENU\n\n")
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}

// blinkBoot signals power-on with short pulses on the boot LED.
func blinkBoot(leds gpio.Leds) {
	for i := 0; i < bootBlinkCount; i++ {
		leds.Set(gpio.LedBoot, true)
		time.Sleep(bootBlinkPeriod)
		leds.Set(gpio.LedBoot, false)
		time.Sleep(bootBlinkPeriod)
	}
}

// failBringUp reports a bring-up failure and parks the process on the boot
// LED. The watchdog is never armed on this path, so the halt is indefinite
// and recovery needs an operator or a power cycle.
func failBringUp(leds gpio.Leds, err error) error {
	log.Printf("bring-up failure: %v", err)
	blinkForever(leds, gpio.LedBoot, bringUpBlinkPeriod)
	return err
}

// blinkForever blinks one LED at the given cadence and never returns. The
// process stays dark on purpose: no feeds happen here.
func blinkForever(leds gpio.Leds, led gpio.Led, period time.Duration) {
	for {
		leds.Set(led, true)
		time.Sleep(period)
		leds.Set(led, false)
		time.Sleep(period)
	}
}
