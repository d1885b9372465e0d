package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mjl-/touchkit"
	"github.com/mjl-/touchkit/fb"
	"github.com/mjl-/touchkit/touch"
)

func snapshot(_ *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return errors.Join(err, errApp)
	}
	th, err := cfg.Theme()
	if err != nil {
		return errors.Join(err, errApp)
	}
	logo, err := cfg.LoadLogo()
	if err != nil {
		return errors.Join(err, errApp)
	}
	img, err := render(th, logo, args[1:])
	if err != nil {
		return errors.Join(err, errApp)
	}
	if err := img.WritePNGPath(args[0]); err != nil {
		return errors.Join(err, errApp)
	}
	slog.Info("wrote snapshot", "path", args[0], "taps", len(args)-1)
	return nil
}

// render draws the demo screen on a framebuffer and taps at each point of taps, given as "x,y".
func render(th touchkit.Theme, logo *touchkit.Bitmap, taps []string) (*fb.Framebuffer, error) {
	img := fb.New(th.Width, th.Height)
	d, err := newDemo(touchkit.NewEnv(img, th), logo)
	if err != nil {
		return nil, err
	}
	d.scr.Draw()
	for _, s := range taps {
		p, down, err := touch.ParseLine(s)
		if err != nil {
			return nil, err
		}
		if !down {
			continue
		}
		d.tap(p)
	}
	return img, nil
}
