package session

import "testing"

func TestWPMExamples(t *testing.T) {
	cases := []struct {
		chars   int
		seconds float64
		want    int
	}{
		{5, 60, 1},
		{25, 60, 5},
		{0, 1, 0},
		{30, 6, 60},
		{10, 0, 120},
		{10, 0.25, 120},
	}
	for _, tc := range cases {
		if got := WPM(tc.chars, tc.seconds); got != tc.want {
			t.Fatalf("WPM(%d, %v) = %d, want %d", tc.chars, tc.seconds, got, tc.want)
		}
	}
}

func TestWPMRoundsHalfToEven(t *testing.T) {
	if got := WPM(5, 120); got != 0 {
		t.Fatalf("expected 0.5 to round to 0, got %d", got)
	}
	if got := WPM(15, 120); got != 2 {
		t.Fatalf("expected 1.5 to round to 2, got %d", got)
	}
	if got := WPM(25, 120); got != 2 {
		t.Fatalf("expected 2.5 to round to 2, got %d", got)
	}
}

func TestWPMMonotonic(t *testing.T) {
	for seconds := 1.0; seconds <= 120; seconds += 7.5 {
		prev := WPM(0, seconds)
		for chars := 1; chars <= 400; chars++ {
			cur := WPM(chars, seconds)
			if cur < prev {
				t.Fatalf("WPM decreased with chars at %v s: %d -> %d", seconds, prev, cur)
			}
			prev = cur
		}
	}
	for chars := 0; chars <= 300; chars += 13 {
		prev := WPM(chars, 1)
		for seconds := 1.5; seconds <= 180; seconds += 0.5 {
			cur := WPM(chars, seconds)
			if cur > prev {
				t.Fatalf("WPM increased with time for %d chars: %d -> %d", chars, prev, cur)
			}
			prev = cur
		}
	}
}

func TestClassify(t *testing.T) {
	target := []rune("a•bc")
	classes := Classify(target, []rune("ax"))
	want := []Class{Correct, Incorrect, Cursor, Pending}
	for i := range want {
		if classes[i] != want[i] {
			t.Fatalf("index %d: expected %s, got %s", i, want[i], classes[i])
		}
	}
}

func TestClassifyEmptyTyped(t *testing.T) {
	classes := Classify([]rune("ab"), nil)
	if classes[0] != Cursor || classes[1] != Pending {
		t.Fatalf("unexpected classes: %v", classes)
	}
}

func TestClassifyTypedPastTarget(t *testing.T) {
	classes := Classify([]rune("ab"), []rune("abc"))
	if len(classes) != 2 {
		t.Fatalf("expected one class per target rune, got %d", len(classes))
	}
	for i, c := range classes {
		if c != Correct {
			t.Fatalf("index %d: expected correct, got %s", i, c)
		}
	}
}

func TestSubstitute(t *testing.T) {
	if got := Substitute("a b  c", '•'); got != "a•b••c" {
		t.Fatalf("unexpected substitution: %q", got)
	}
	if got := Substitute("a b", '_'); got != "a_b" {
		t.Fatalf("unexpected substitution: %q", got)
	}
}
