package card

import "testing"

func TestResolveMini(t *testing.T) {
	g := Resolve(FormatMini)
	want := Geometry{OuterWidth: 320, AspectW: 54, AspectH: 86, StripHeight: 40}
	if g != want {
		t.Fatalf("mini geometry = %+v, want %+v", g, want)
	}
}

func TestResolveWide(t *testing.T) {
	g := Resolve(FormatWide)
	want := Geometry{OuterWidth: 400, AspectW: 99, AspectH: 62, StripHeight: 48}
	if g != want {
		t.Fatalf("wide geometry = %+v, want %+v", g, want)
	}
}

func TestResolveDeterministic(t *testing.T) {
	for _, f := range []Format{FormatMini, FormatWide} {
		first := Resolve(f)
		for i := 0; i < 10; i++ {
			if got := Resolve(f); got != first {
				t.Fatalf("Resolve(%s) changed between calls: %+v vs %+v", f, got, first)
			}
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("wide") != FormatWide {
		t.Fatalf("expected wide")
	}
	if ParseFormat("mini") != FormatMini {
		t.Fatalf("expected mini")
	}
	// Anything unknown falls back to mini; no failure path exists.
	if ParseFormat("square") != FormatMini {
		t.Fatalf("expected unknown value to fall back to mini")
	}
}

func TestLayoutDerivation(t *testing.T) {
	l := Resolve(FormatMini).Layout(1)

	if l.CardW != 320 {
		t.Fatalf("card width = %d, want 320", l.CardW)
	}
	if l.WindowW != 320-2*framePad1x {
		t.Fatalf("window width = %d, want %d", l.WindowW, 320-2*framePad1x)
	}
	wantH := l.WindowW * 86 / 54
	if l.WindowH != wantH {
		t.Fatalf("window height = %d, want %d", l.WindowH, wantH)
	}
	if l.CardH != l.FramePad+l.WindowH+l.StripH+l.FramePad {
		t.Fatalf("card height %d does not stack up from its parts", l.CardH)
	}
}

func TestLayoutScalesExactly(t *testing.T) {
	for _, f := range []Format{FormatMini, FormatWide} {
		one := Resolve(f).Layout(1)
		four := Resolve(f).Layout(4)

		if four.CanvasW != 4*one.CanvasW || four.CanvasH != 4*one.CanvasH {
			t.Fatalf("%s: 4x canvas %dx%d is not exactly 4x the 1x canvas %dx%d",
				f, four.CanvasW, four.CanvasH, one.CanvasW, one.CanvasH)
		}
		if four.WindowW != 4*one.WindowW || four.WindowH != 4*one.WindowH {
			t.Fatalf("%s: 4x window is not exactly 4x the 1x window", f)
		}
	}
}
