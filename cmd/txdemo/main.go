// Command txdemo opens a txlin window, draws from the owning goroutine and
// from a worker, and keeps the window open until it is closed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/txlin"
	"github.com/gogpu/txlin/backend"
)

func main() {
	var (
		width   = flag.Int("width", 640, "window width")
		height  = flag.Int("height", 480, "window height")
		cfgPath = flag.String("config", "", "optional YAML config file")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	txlin.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := txlin.DefaultConfig()
	if *cfgPath != "" {
		var err error
		cfg, err = txlin.LoadConfig(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	m := txlin.NewWindowManager(cfg)
	win, err := m.Create(*width, *height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dc := win.Context()
	dc.SetColor(txlin.Black)
	dc.TextOut(16, 16, "Hello, TXLin!")
	dc.SetColor(txlin.Blue)
	dc.Rectangle(8, 8, *width-8, *height-8)

	// A worker draws through the command queue while the owner pumps the
	// event loop.
	h := win.Threads().Spawn(func(parallel bool) {
		dc.SetColor(txlin.Red)
		for i := 0; win.Threads().Sleep(50) == 0 && i < 100; i++ {
			dc.Line(20, 40+i*2, 20+i*4, 40+i*2)
		}
		dc.SelectMouseCursor(backend.CursorHand)
	})

	m.KeepOpen()
	win.Threads().Join(h)
}
