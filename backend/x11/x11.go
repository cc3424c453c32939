// Package x11 implements the native windowing backend over the X protocol.
//
// The connection, window, graphics context and cursors are created and used
// from a single goroutine. Pixels are pushed with ZPixmap PutImage requests,
// chunked by rows to stay under the protocol's maximum request length.
package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/gogpu/txlin/backend"
)

func init() {
	backend.Register(backend.BackendX11, func() backend.Backend {
		return New()
	})
}

// putImageChunk caps the pixel payload per PutImage request. The X default
// maximum request length is 256 KiB; 64 KiB of pixels per request leaves
// ample room for the header on any server.
const putImageChunk = 1 << 16

// Backend is an X11 windowing backend. The zero value is not usable; call New.
type Backend struct {
	xu  *xgbutil.XUtil
	win *xwindow.Window
	gc  xproto.Gcontext

	width  int
	height int
	depth  byte

	wmDelete xproto.Atom

	cursors     map[backend.Cursor]xproto.Cursor
	initialized bool

	// buf holds one chunk of BGRX-converted rows, reused across presents.
	buf []byte
}

// New creates an unconnected X11 backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendX11 }

// Init connects to the X server and creates the window.
func (b *Backend) Init(width, height int, title string) error {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrBackendNotAvailable, err)
	}
	keybind.Initialize(xu)

	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return fmt.Errorf("x11: allocate window id: %w", err)
	}
	screen := xu.Screen()
	err = win.CreateChecked(xu.RootWin(), 0, 0, width, height,
		xproto.CwBackPixel|xproto.CwEventMask,
		screen.WhitePixel,
		xproto.EventMaskExposure|xproto.EventMaskKeyPress|xproto.EventMaskStructureNotify)
	if err != nil {
		xu.Conn().Close()
		return fmt.Errorf("x11: create window: %w", err)
	}

	// Title and close-button protocol. Failures here are cosmetic.
	_ = ewmh.WmNameSet(xu, win.Id, title)
	_ = icccm.WmProtocolsSet(xu, win.Id, []string{"WM_DELETE_WINDOW"})

	wmDelete, err := xprop.Atm(xu, "WM_DELETE_WINDOW")
	if err != nil {
		wmDelete = 0
	}

	gcid, err := xproto.NewGcontextId(xu.Conn())
	if err != nil {
		win.Destroy()
		xu.Conn().Close()
		return fmt.Errorf("x11: allocate gc id: %w", err)
	}
	err = xproto.CreateGCChecked(xu.Conn(), gcid, xproto.Drawable(win.Id), 0, nil).Check()
	if err != nil {
		win.Destroy()
		xu.Conn().Close()
		return fmt.Errorf("x11: create gc: %w", err)
	}

	win.Map()

	b.xu = xu
	b.win = win
	b.gc = gcid
	b.width = width
	b.height = height
	b.depth = screen.RootDepth
	b.wmDelete = wmDelete
	b.cursors = make(map[backend.Cursor]xproto.Cursor)
	b.initialized = true
	return nil
}

// Present pushes the canvas to the window with row-chunked PutImage requests.
func (b *Backend) Present(img *image.RGBA) error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}

	stride := b.width * 4
	rowsPerChunk := putImageChunk / stride
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}
	if cap(b.buf) < rowsPerChunk*stride {
		b.buf = make([]byte, rowsPerChunk*stride)
	}

	for y := 0; y < b.height; y += rowsPerChunk {
		rows := rowsPerChunk
		if y+rows > b.height {
			rows = b.height - y
		}
		chunk := b.buf[:rows*stride]
		// X servers at depth 24/32 expect BGRX pixel order.
		for r := 0; r < rows; r++ {
			src := img.Pix[(y+r)*img.Stride : (y+r)*img.Stride+stride]
			dst := chunk[r*stride:]
			for x := 0; x < stride; x += 4 {
				dst[x+0] = src[x+2]
				dst[x+1] = src[x+1]
				dst[x+2] = src[x+0]
				dst[x+3] = 0xff
			}
		}
		err := xproto.PutImageChecked(b.xu.Conn(), xproto.ImageFormatZPixmap,
			xproto.Drawable(b.win.Id), b.gc,
			uint16(b.width), uint16(rows), 0, int16(y),
			0, b.depth, chunk).Check()
		if err != nil {
			return fmt.Errorf("x11: put image: %w", err)
		}
	}
	return nil
}

// PollEvent translates pending X events. Connection errors end the stream.
func (b *Backend) PollEvent() (backend.Event, bool) {
	if !b.initialized {
		return backend.Event{}, false
	}
	for {
		ev, xerr := b.xu.Conn().PollForEvent()
		if ev == nil && xerr == nil {
			return backend.Event{}, false
		}
		if xerr != nil {
			continue
		}
		switch e := ev.(type) {
		case xproto.ExposeEvent:
			// Coalesce: only the final expose in a series matters.
			if e.Count == 0 {
				return backend.Event{Kind: backend.EventExpose}, true
			}
		case xproto.ClientMessageEvent:
			if b.wmDelete != 0 && e.Format == 32 && xproto.Atom(e.Data.Data32[0]) == b.wmDelete {
				return backend.Event{Kind: backend.EventClose}, true
			}
		case xproto.KeyPressEvent:
			s := keybind.LookupString(b.xu, e.State, e.Detail)
			if s == "q" && e.State&xproto.ModMaskControl != 0 {
				// Platform quit shortcut.
				return backend.Event{Kind: backend.EventClose}, true
			}
			var r rune
			for _, c := range s {
				r = c
				break
			}
			return backend.Event{Kind: backend.EventKey, Rune: r}, true
		case xproto.DestroyNotifyEvent:
			return backend.Event{Kind: backend.EventClose}, true
		}
	}
}

// Bell triggers the X keyboard bell at default volume.
func (b *Backend) Bell() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	xproto.Bell(b.xu.Conn(), 0)
	return nil
}

// Close destroys the window and disconnects.
func (b *Backend) Close() {
	if !b.initialized {
		return
	}
	b.initialized = false
	for _, c := range b.cursors {
		xproto.FreeCursor(b.xu.Conn(), c)
	}
	b.win.Destroy()
	b.xu.Conn().Close()
}
