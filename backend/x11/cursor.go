package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/gogpu/txlin/backend"
)

// Glyph indices into the standard X "cursor" font.
const (
	glyphLeftPtr = 68  // XC_left_ptr
	glyphWatch   = 150 // XC_watch
	glyphCircle  = 24  // XC_circle
	glyphHand2   = 60  // XC_hand2
)

// SetCursor changes the window cursor. Cursors are created lazily and cached
// for the lifetime of the connection.
func (b *Backend) SetCursor(c backend.Cursor) error {
	if !c.Valid() {
		return backend.ErrUnknownCursor
	}
	if !b.initialized {
		return backend.ErrNotInitialized
	}

	cur, ok := b.cursors[c]
	if !ok {
		var err error
		if c == backend.CursorNone {
			cur, err = b.createBlankCursor()
		} else {
			cur, err = b.createGlyphCursor(glyphFor(c))
		}
		if err != nil {
			return err
		}
		b.cursors[c] = cur
	}

	err := xproto.ChangeWindowAttributesChecked(b.xu.Conn(), b.win.Id,
		xproto.CwCursor, []uint32{uint32(cur)}).Check()
	if err != nil {
		return fmt.Errorf("x11: set cursor: %w", err)
	}
	return nil
}

func glyphFor(c backend.Cursor) uint16 {
	switch c {
	case backend.CursorWait:
		return glyphWatch
	case backend.CursorProhibited:
		return glyphCircle
	case backend.CursorHand:
		return glyphHand2
	}
	return glyphLeftPtr
}

// createGlyphCursor builds a cursor from the standard cursor font. The mask
// glyph is by convention the source glyph plus one.
func (b *Backend) createGlyphCursor(glyph uint16) (xproto.Cursor, error) {
	conn := b.xu.Conn()

	fid, err := xproto.NewFontId(conn)
	if err != nil {
		return 0, fmt.Errorf("x11: allocate font id: %w", err)
	}
	name := "cursor"
	if err := xproto.OpenFontChecked(conn, fid, uint16(len(name)), name).Check(); err != nil {
		return 0, fmt.Errorf("x11: open cursor font: %w", err)
	}
	defer xproto.CloseFont(conn, fid)

	cid, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, fmt.Errorf("x11: allocate cursor id: %w", err)
	}
	err = xproto.CreateGlyphCursorChecked(conn, cid, fid, fid,
		glyph, glyph+1,
		0, 0, 0,
		0xffff, 0xffff, 0xffff).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create glyph cursor: %w", err)
	}
	return cid, nil
}

// createBlankCursor builds an invisible cursor from a 1x1 empty pixmap.
func (b *Backend) createBlankCursor() (xproto.Cursor, error) {
	conn := b.xu.Conn()

	pid, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, fmt.Errorf("x11: allocate pixmap id: %w", err)
	}
	err = xproto.CreatePixmapChecked(conn, 1, pid, xproto.Drawable(b.win.Id), 1, 1).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create cursor pixmap: %w", err)
	}
	defer xproto.FreePixmap(conn, pid)

	cid, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, fmt.Errorf("x11: allocate cursor id: %w", err)
	}
	err = xproto.CreateCursorChecked(conn, cid, pid, pid,
		0, 0, 0, 0, 0, 0, 0, 0).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create blank cursor: %w", err)
	}
	return cid, nil
}
