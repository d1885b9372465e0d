package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mjl-/touchkit"
	"github.com/mjl-/touchkit/devdraw"
	"github.com/mjl-/touchkit/touch"
)

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return errors.Join(err, errApp)
	}
	th, err := cfg.Theme()
	if err != nil {
		return errors.Join(err, errApp)
	}

	surf, err := devdraw.Open("touchkitsim", th.Width, th.Height)
	if err != nil {
		return errors.Join(err, errApp)
	}
	defer surf.Close()

	logo, err := cfg.LoadLogo()
	if err != nil {
		return errors.Join(err, errApp)
	}

	env := touchkit.NewEnv(surf, th)
	d, err := newDemo(env, logo)
	if err != nil {
		return errors.Join(err, errApp)
	}
	scr := d.scr
	scr.Interval = cfg.Interval()
	contact := &touch.Contact{Trigger: &scr.Trigger}
	scr.Sampler = contact

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	mouse := &devdraw.Mouse{
		Surface: surf,
		Contact: contact,
		OnResize: func() {
			redraw := func() {
				if err := surf.Attach(); err != nil {
					slog.Error("resize", "error", err)
					return
				}
				scr.Draw()
			}
			select {
			case scr.Call <- redraw:
			case <-ctx.Done():
			}
		},
	}
	g.Go(func() error {
		if err := mouse.Run(ctx); err != nil {
			return err
		}
		// Window closed.
		return context.Canceled
	})

	if cfg.SerialPort != "" {
		port, err := touch.OpenSerial(cfg.SerialPort, cfg.SerialBaud)
		if err != nil {
			return errors.Join(err, errApp)
		}
		g.Go(func() error {
			return port.Run(ctx, contact)
		})
	}

	if cfg.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/touch", touch.NewRemote(contact))
		srv := &http.Server{Addr: cfg.Listen, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		g.Go(func() error {
			slog.Info("listening for remote touch", "addr", cfg.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		return d.tick(ctx)
	})
	g.Go(func() error {
		return scr.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Join(err, errApp)
	}
	return nil
}
