package touch

import (
	"context"
	"errors"
	"image"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjl-/touchkit"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		p    image.Point
		down bool
		err  bool
	}{
		{"10,20", image.Pt(10, 20), true, false},
		{" 319 , 239 \r", image.Pt(319, 239), true, false},
		{"up", image.Point{}, false, false},
		{"-", image.Point{}, false, false},
		{"", image.Point{}, false, false},
		{"10", image.Point{}, false, true},
		{"a,b", image.Point{}, false, true},
		{"-1,5", image.Point{}, false, true},
		{"70000,5", image.Point{}, false, true},
	}
	for _, tc := range tests {
		p, down, err := ParseLine(tc.line)
		if tc.err {
			assert.True(t, errors.Is(err, ErrSyntax), "line %q", tc.line)
			continue
		}
		require.NoError(t, err, "line %q", tc.line)
		assert.Equal(t, tc.p, p, "line %q", tc.line)
		assert.Equal(t, tc.down, down, "line %q", tc.line)
	}
}

func TestContactTrigger(t *testing.T) {
	var trig touchkit.Trigger
	c := &Contact{Trigger: &trig}

	_, ok := c.Sample()
	assert.False(t, ok)

	c.Set(image.Pt(3, 4))
	p, ok := trig.Take()
	require.True(t, ok)
	assert.Equal(t, image.Pt(3, 4), p)

	// Moving while down does not arm again.
	c.Set(image.Pt(5, 6))
	assert.False(t, trig.Armed())
	p, ok = c.Sample()
	assert.True(t, ok)
	assert.Equal(t, image.Pt(5, 6), p)

	c.Release()
	_, ok = c.Sample()
	assert.False(t, ok)
	c.Set(image.Pt(7, 8))
	assert.True(t, trig.Armed())
}

func TestFeed(t *testing.T) {
	var trig touchkit.Trigger
	c := &Contact{Trigger: &trig}
	err := Feed(context.Background(), strings.NewReader("1,2\nnoise\n3,4\n"), c)
	require.NoError(t, err)

	p, ok := trig.Take()
	assert.True(t, ok)
	assert.Equal(t, image.Pt(1, 2), p)
	_, ok = c.Sample()
	assert.False(t, ok, "released at EOF")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Feed(ctx, strings.NewReader("1,2\n"), c)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemote(t *testing.T) {
	c := &Contact{}
	srv := httptest.NewServer(NewRemote(c))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(Message{X: 40, Y: 50, Down: true}))
	assert.Eventually(t, func() bool {
		p, ok := c.Sample()
		return ok && p == image.Pt(40, 50)
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Message{Down: false}))
	assert.Eventually(t, func() bool {
		_, ok := c.Sample()
		return !ok
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Message{X: 1, Y: 1, Down: true}))
	assert.Eventually(t, func() bool {
		_, ok := c.Sample()
		return ok
	}, time.Second, 5*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool {
		_, ok := c.Sample()
		return !ok
	}, time.Second, 5*time.Millisecond, "released on disconnect")
}

func TestRemoteOutOfRange(t *testing.T) {
	var trig touchkit.Trigger
	c := &Contact{Trigger: &trig}
	srv := httptest.NewServer(NewRemote(c))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	// 65546 would wrap to 10 in the packed state.
	require.NoError(t, conn.WriteJSON(Message{X: 65546, Y: 5, Down: true}))
	require.NoError(t, conn.WriteJSON(Message{X: -1, Y: 5, Down: true}))
	require.NoError(t, conn.WriteJSON(Message{X: 7, Y: 8, Down: true}))
	assert.Eventually(t, trig.Armed, time.Second, 5*time.Millisecond)
	p, ok := trig.Take()
	require.True(t, ok)
	assert.Equal(t, image.Pt(7, 8), p)
}

func TestMessagePoint(t *testing.T) {
	p, err := Message{X: 65535, Y: 0}.Point()
	require.NoError(t, err)
	assert.Equal(t, image.Pt(65535, 0), p)

	for _, m := range []Message{{X: 65536}, {Y: -1}, {X: -5, Y: 70000}} {
		_, err := m.Point()
		assert.True(t, errors.Is(err, ErrSyntax), "message %+v", m)
	}
}

func TestScreenContact(t *testing.T) {
	th := touchkit.DefaultTheme()
	env := touchkit.NewEnv(nopSurface{}, th)
	scr := touchkit.NewScreen(env)
	g, err := touchkit.NewButtonGroup(env, 1, th.GroupTop(touchkit.PosBottom))
	require.NoError(t, err)
	n := 0
	g.Buttons[0].Action = func() { n++ }
	_, err = scr.Stack.AddGroup(g)
	require.NoError(t, err)

	c := &Contact{Trigger: &scr.Trigger}
	scr.Sampler = c
	c.Set(g.Buttons[0].Rect().Min.Add(image.Pt(2, 2)))
	scr.Poll()
	scr.Poll()
	assert.Equal(t, 1, n)
	assert.True(t, g.Buttons[0].Pressed())
	c.Release()
	scr.Poll()
	assert.False(t, g.Buttons[0].Pressed())
}

type nopSurface struct{}

func (nopSurface) FillRect(image.Rectangle, touchkit.Color) {}

func (nopSurface) DrawText(image.Point, string, touchkit.Font, touchkit.Color) {}

func (nopSurface) DrawBitmap(image.Point, []uint16, int, int) {}

func (nopSurface) StringWidth(s string, f touchkit.Font) int {
	return 6 * len(s)
}
