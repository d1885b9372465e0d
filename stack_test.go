package touchkit

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStack returns a stack with a panel and two groups of three buttons, docked at the top and the bottom.
// Each button counts its touches in hits.
func newTestStack(t *testing.T) (*Stack, *recorder, map[*Button]int) {
	env, rec := newTestEnv()
	s := NewStack(env)
	s.Panel = NewScrollPanel(env)
	hits := map[*Button]int{}
	for _, pos := range []Position{PosTop, PosBottom} {
		g, err := NewButtonGroup(env, 3, env.Theme.GroupTop(pos))
		require.NoError(t, err)
		for _, b := range g.Buttons {
			b.Action = func() { hits[b]++ }
		}
		_, err = s.AddGroup(g)
		require.NoError(t, err)
	}
	return s, rec, hits
}

func TestStackAddGroupCapacity(t *testing.T) {
	env, _ := newTestEnv()
	s := NewStack(env)
	for i := 0; i < MaxGroups; i++ {
		g, err := NewButtonGroup(env, 1, 0)
		require.NoError(t, err)
		slot, err := s.AddGroup(g)
		require.NoError(t, err)
		assert.Equal(t, i, slot)
	}
	g, err := NewButtonGroup(env, 1, 0)
	require.NoError(t, err)
	_, err = s.AddGroup(g)
	assert.True(t, errors.Is(err, ErrCapacity))
}

func TestStackTouchRoutesToOneButton(t *testing.T) {
	s, _, hits := newTestStack(t)
	for _, g := range s.Groups[:2] {
		for _, b := range g.Buttons {
			before := map[*Button]int{}
			for k, v := range hits {
				before[k] = v
			}
			p := center(b.Rect())
			s.Touch(p)
			s.Untouch(p)
			for _, gg := range s.Groups[:2] {
				for _, o := range gg.Buttons {
					want := before[o]
					if o == b {
						want++
					}
					assert.Equal(t, want, hits[o])
				}
			}
		}
	}
}

func TestStackTouchOutside(t *testing.T) {
	s, rec, hits := newTestStack(t)
	s.Panel.Hide()
	s.Draw()
	rec.reset()

	for _, p := range []image.Point{{-1, -1}, {160, 120}, {500, 10}, {0, 240}} {
		s.Touch(p)
		s.Untouch(p)
	}
	assert.Empty(t, hits)
	assert.Empty(t, rec.ops)
}

func TestStackInactive(t *testing.T) {
	s, rec, hits := newTestStack(t)
	s.Hide()
	p := center(s.Groups[0].Buttons[0].Rect())
	s.Touch(p)
	s.Draw()
	assert.Empty(t, hits)
	assert.Empty(t, rec.ops)
}

func TestStackGroupsBeforeKeyboard(t *testing.T) {
	s, _, hits := newTestStack(t)
	kb := s.StartKeyboard("x", KeySetMajuscule)

	// the bottom group lies on top of the keyboard's lower rows
	b := s.Groups[1].Buttons[0]
	require.True(t, b.Rect().Overlaps(kb.Rect()))
	s.Touch(center(b.Rect()))
	assert.Equal(t, 1, hits[b])
	assert.Equal(t, "", kb.Text())

	s.Groups[1].Hide()
	tap(s, keyPoint(t, kb, "Z"))
	assert.Equal(t, "Z", kb.Text())
}

func TestStackKeyboardLifecycle(t *testing.T) {
	s, _, _ := newTestStack(t)
	s.Groups[1].Hide()

	_, err := s.KeyboardReady()
	assert.True(t, errors.Is(err, ErrNoKeyboard))
	_, err = s.TakeKeyboard()
	assert.True(t, errors.Is(err, ErrNoKeyboard))
	_, ok := s.Keyboard()
	assert.False(t, ok)

	kb := s.StartKeyboard("Enter name", KeySetMajuscule)
	ready, err := s.KeyboardReady()
	require.NoError(t, err)
	assert.False(t, ready)

	tap(s, keyPoint(t, kb, "J"))
	tap(s, keyPoint(t, kb, "P"))
	tap(s, keyPoint(t, kb, "OK"))
	ready, err = s.KeyboardReady()
	require.NoError(t, err)
	assert.True(t, ready)

	text, err := s.TakeKeyboard()
	require.NoError(t, err)
	assert.Equal(t, "JP", text)
	assert.False(t, kb.Active())

	_, err = s.KeyboardReady()
	assert.True(t, errors.Is(err, ErrNoKeyboard))
	text, err = s.TakeKeyboard()
	assert.True(t, errors.Is(err, ErrNoKeyboard))
	assert.Equal(t, "", text)

	kb2 := s.StartKeyboard("Again", KeySetNumeric)
	assert.Equal(t, "", kb2.Text())
	assert.Equal(t, KeySetNumeric, kb2.KeySet())
}

func TestStackDrawPanelAroundWidgets(t *testing.T) {
	s, rec, _ := newTestStack(t)
	s.Groups[0].Hide()
	s.Draw()

	th := s.env.Theme
	from, _ := s.Panel.Window()
	assert.Equal(t, op{kind: "fill", r: image.Rect(0, from, th.Width, th.GroupTop(PosBottom)), c: s.Panel.Color}, rec.ops[0])
	assert.True(t, s.Displayed())

	rec.reset()
	kb := s.StartKeyboard("", KeySetMajuscule)
	assert.True(t, kb.Displayed(), "started keyboard is drawn on a displayed stack")

	rec.reset()
	s.Draw()
	assert.Equal(t, image.Rect(0, from, th.Width, kb.Top()), rec.ops[0].r)

	rec.reset()
	_, err := s.TakeKeyboard()
	require.NoError(t, err)
	assert.Equal(t, op{kind: "fill", r: kb.Rect(), c: th.Background}, rec.ops[0])
	assert.Equal(t, image.Rect(0, from, th.Width, th.GroupTop(PosBottom)), rec.ops[1].r)
}

func TestStackPanelTouch(t *testing.T) {
	s, _, hits := newTestStack(t)
	n := 0
	s.Panel.Action = func() { n++ }
	s.Touch(image.Pt(100, 120))
	assert.Equal(t, 1, n)
	assert.Empty(t, hits)
}

func TestStackUntouchAfterHide(t *testing.T) {
	s, rec, _ := newTestStack(t)
	th := s.env.Theme
	g := s.Groups[1]
	b := g.Buttons[0]
	b.Action = func() { g.Hide() }
	s.Draw()

	p := center(b.Rect())
	s.Touch(p)
	s.Untouch(p)
	assert.False(t, b.Pressed())

	g.Show()
	rec.reset()
	s.Draw()
	fills := rec.filled(b.Rect())
	require.NotEmpty(t, fills)
	for _, o := range fills {
		assert.NotEqual(t, th.Pressed, o.c)
	}
}

func TestStackUntouchFollowsTouch(t *testing.T) {
	s, rec, _ := newTestStack(t)
	g := s.Groups[1]
	b := g.Buttons[0]
	// Routing changes under the finger: the release must not reach the keyboard key now at that point.
	b.Action = func() {
		g.Hide()
		s.StartKeyboard("Name", KeySetMajuscule)
	}
	s.Draw()

	p := center(b.Rect())
	s.Touch(p)
	rec.reset()
	s.Untouch(p)
	assert.Empty(t, rec.ops)
	assert.False(t, b.Pressed())
}

func TestStackPanelClipped(t *testing.T) {
	env, rec := newTestEnv()
	s := NewStack(env)
	s.Panel = NewScrollPanel(env)
	g, err := NewButtonGroup(env, 2, env.Theme.GroupTop(PosBottom))
	require.NoError(t, err)
	_, err = s.AddGroup(g)
	require.NoError(t, err)
	s.Draw()

	overlaps := func(r image.Rectangle) []op {
		var l []op
		for _, o := range rec.ops {
			if o.r.Overlaps(r) {
				l = append(l, o)
			}
		}
		return l
	}

	rec.reset()
	for i := 0; i <= s.Panel.Capacity(); i++ {
		s.Panel.Println("line")
	}
	assert.Empty(t, overlaps(g.Rect()))
	assert.Contains(t, rec.ops, op{kind: "fill", r: image.Rect(0, 32, 320, 172), c: env.Theme.Panel}, "overflow redraws up to the group")

	kb := s.StartKeyboard("Name", KeySetMajuscule)
	rec.reset()
	s.Panel.Print("more")
	s.Panel.Clear()
	s.Panel.Println("after")
	assert.Empty(t, overlaps(kb.Rect()))
}
