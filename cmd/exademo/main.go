// Command exademo drives the exa composition engine through a small scene
// and saves the resulting framebuffer as a PNG.
//
// Usage:
//
//	exademo [-config exa.toml] [-output exademo.png] [-trace scene.gptrace] [-scale 4]
//
// Composites the engine declines are drawn by the software fallback.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/exa"
	"github.com/gogpu/exa/gp"
	"github.com/gogpu/exa/gp/soft"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		output     = flag.String("output", "exademo.png", "output file")
		tracePath  = flag.String("trace", "", "write the command trace to this file")
		scale      = flag.Int("scale", 4, "PNG upscale factor")
	)
	flag.Parse()

	if err := run(*configPath, *output, *tracePath, *scale); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, output, tracePath string, scale int) error {
	cfg := exa.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = exa.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	exa.SetLogger(cfg.Logger(os.Stderr))
	if scale < 1 {
		scale = 1
	}

	fb := make([]byte, cfg.FramebufferSize)
	q, err := gp.Open(cfg.Backend, fb)
	if err != nil {
		return err
	}
	if c, ok := q.(io.Closer); ok {
		defer c.Close()
	}
	rec := gp.NewRecorder(q)
	e := exa.New(rec, cfg.Options(fb)...)
	defer e.Close()

	sc, err := newScene(e, fb)
	if err != nil {
		return err
	}
	if err := sc.draw(); err != nil {
		return err
	}
	e.WaitMarker(0)

	printStats(os.Stdout, q, rec, sc)

	if err := savePNG(output, sc.screen.ToImage(fb), scale); err != nil {
		return err
	}
	log.Printf("Scene saved to %s (%dx%d)\n", output, sc.screen.Width()*scale, sc.screen.Height()*scale)

	if tracePath != "" {
		if err := saveTrace(tracePath, rec.Commands()); err != nil {
			return err
		}
		log.Printf("Trace saved to %s\n", tracePath)
	}
	return nil
}

func printStats(w io.Writer, q gp.Queue, rec *gp.Recorder, sc *scene) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "commands:    %d\n", len(rec.Commands()))
	p.Fprintf(w, "transfers:   %d\n", len(rec.Primitives()))
	p.Fprintf(w, "accelerated: %d composites\n", sc.accelerated)
	p.Fprintf(w, "fallback:    %d composites\n", sc.fallbacks)
	if dev, ok := q.(*soft.Device); ok {
		st := dev.Stats()
		p.Fprintf(w, "device:      %d blts, %d hazards, %d idle waits\n", st.Blts, st.Hazards, st.IdleWaits)
		p.Fprintf(w, "pixels:      %d written, %d dropped\n", st.Pixels, st.Dropped)
	}
}

func savePNG(path string, img image.Image, scale int) error {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func saveTrace(path string, cmds []gp.Command) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gp.WriteTrace(f, cmds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
