// Command optrexd keeps an Optrex IM50240 display refreshed and lets other
// programs change what it shows over HTTP.
//
//	optrexd -config=/etc/optrexd.toml [-mode=idle|count|cycle]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/DrJosh9000/optrexlcd"
	"github.com/DrJosh9000/optrexlcd/render"
	"github.com/DrJosh9000/optrexlcd/sim"
)

var (
	configPath = flag.String("config", "", "path to TOML config file")
	modeFlag   = flag.String("mode", "", "override the configured mode (idle, count, cycle)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *modeFlag != "" {
		cfg.Mode = *modeFlag
		if err := cfg.validate(); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.Render == "termbox" {
		// Log lines would scribble over the display.
		cfg.LogStderr = false
	}
	closeLog := setupLogging(cfg)
	defer closeLog()

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Exiting: %v", err)
		closeLog()
		os.Exit(1)
	}
	log.Println("Exiting")
}

func run(cfg config) error {
	log.Printf("Starting: backend=%s interval=%v mode=%s render=%s", cfg.Backend, cfg.Interval, cfg.Mode, cfg.Render)
	if err := optrexlcd.CheckTiming(cfg.Interval); err != nil {
		log.Printf("Warning: %v", err)
	}
	log.Printf("M at %s, shift clock at %s, %s refresh",
		optrexlcd.MFrequency(cfg.Interval),
		optrexlcd.ShiftFrequency(cfg.Interval),
		optrexlcd.RefreshFrequency(cfg.Interval))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Latch notifications for the renderer. Dropped if the renderer is busy.
	latched := make(chan struct{}, 1)
	d := &optrexlcd.IM50240{
		OnLatch: func() {
			select {
			case latched <- struct{}{}:
			default:
			}
		},
	}
	d.SetInterval(cfg.Interval)

	panel, release, err := wire(cfg, d)
	if err != nil {
		return err
	}
	defer release()
	if err := d.Init(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	runErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr <- d.Run(ctx)
		cancel()
	}()

	if cfg.Listen != "" {
		srv := &http.Server{Addr: cfg.Listen, Handler: (&apiHandler{dev: d}).router()}
		wg.Add(2)
		go func() {
			defer wg.Done()
			log.Printf("Starting http server on %s", cfg.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("http server: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			<-ctx.Done()
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			srv.Shutdown(sctx)
		}()
	}

	if cfg.Render != "none" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := renderLoop(ctx, cancel, cfg.Render, d, panel, latched); err != nil {
				log.Printf("render: %v", err)
			}
		}()
	}

	switch cfg.Mode {
	case "count":
		d.Clear()
		d.Count(ctx, 0)
	case "cycle":
		d.CycleDigits(ctx)
	default:
		<-ctx.Done()
	}

	if cfg.Snapshot != "" {
		if err := render.SavePNG(cfg.Snapshot, shown(d, panel)); err != nil {
			log.Printf("Saving snapshot: %v", err)
		} else {
			log.Printf("Saved snapshot to %s", cfg.Snapshot)
		}
	}

	cancel()
	return <-runErr
}

// shown returns what the display is showing: the simulated panel's content if
// there is one, otherwise the frame being sent to it.
func shown(d *optrexlcd.IM50240, panel *sim.Panel) optrexlcd.Frame {
	if panel != nil {
		return panel.Frame()
	}
	return d.Frame()
}

func renderLoop(ctx context.Context, cancel func(), kind string, d *optrexlcd.IM50240, panel *sim.Panel, latched <-chan struct{}) error {
	var draw func(optrexlcd.Frame) error
	var quit <-chan struct{}
	switch kind {
	case "termbox":
		tb, err := render.OpenTermbox()
		if err != nil {
			return err
		}
		defer tb.Close()
		draw, quit = tb.Draw, tb.Quit()
	default:
		c := render.NewConsole(os.Stdout)
		defer c.Halt()
		draw = c.Draw
	}

	last := optrexlcd.Frame{}
	drawn := false
	for {
		select {
		case <-latched:
			f := shown(d, panel)
			if drawn && f == last {
				continue
			}
			if err := draw(f); err != nil {
				return err
			}
			last, drawn = f, true
		case <-quit:
			cancel()
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
