// Command dmgboy is a headless driver for the emulator core: it runs a
// cartridge for a fixed number of frames and optionally dumps the final
// frame as an upscaled PNG.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/urfave/cli"
	"golang.org/x/image/draw"

	"github.com/pixelforge/dmgboy/internal/cartridge"
	"github.com/pixelforge/dmgboy/pkg/emulator"
	"github.com/pixelforge/dmgboy/pkg/log"
	"github.com/pixelforge/dmgboy/pkg/romload"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgboy"
	app.Usage = "dmgboy [options] <ROM file>"
	app.Description = "Headless DMG emulator core driver"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to a 256-byte DMG boot ROM image (optional; skips boot sequence if omitted)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames (video or LCD-off) to run before exiting",
			Value: 60,
		},
		cli.StringFlag{
			Name:  "snapshot",
			Usage: "Write the final frame as an upscaled PNG to this path",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Integer upscale factor applied to the PNG snapshot",
			Value: 4,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dmgboy:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	rom, err := romload.Load(romPath)
	if err != nil {
		return err
	}

	cart, err := cartridge.Load(rom)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}

	var opts []emulator.Option
	if bootPath := c.String("boot-rom"); bootPath != "" {
		boot, err := os.ReadFile(bootPath)
		if err != nil {
			return fmt.Errorf("reading boot ROM: %w", err)
		}
		opts = append(opts, emulator.WithBootROM(boot))
	}
	opts = append(opts, emulator.WithLogger(log.New()))

	emu, err := emulator.New(cart, opts...)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	frames := c.Int("frames")
	for done := 0; done < frames; {
		emu.StepInstruction()
		switch emu.QueryFrameStatus() {
		case emulator.FrameVideo, emulator.FrameLCDOff:
			done++
		}
	}

	fmt.Printf("ran %d frames, final frame hash %016x\n", frames, emu.FrameHash())

	if snapshotPath := c.String("snapshot"); snapshotPath != "" {
		if err := writeSnapshot(emu, snapshotPath, c.Int("scale")); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		fmt.Println("wrote snapshot to", snapshotPath)
	}

	return nil
}

// writeSnapshot upscales the current frame with nearest-neighbor
// filtering and writes it as a PNG.
func writeSnapshot(emu *emulator.Emulator, path string, scale int) error {
	if scale < 1 {
		scale = 1
	}

	const w, h = 160, 144
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, px := range emu.Frame() {
		off := i * 4
		src.Pix[off] = px.R
		src.Pix[off+1] = px.G
		src.Pix[off+2] = px.B
		src.Pix[off+3] = px.A
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, dst)
}
