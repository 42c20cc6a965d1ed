package layout

import (
	"strings"
	"testing"
)

func rows(n int, cells string) string {
	var b strings.Builder
	b.WriteString("<tr><th>Champion</th><th>Skin</th><th>Release</th><th>Cost</th></tr>")
	for i := 0; i < n; i++ {
		b.WriteString("<tr>")
		b.WriteString(cells)
		b.WriteString("</tr>")
	}
	return b.String()
}

func TestFingerprint_IgnoresText(t *testing.T) {
	a := Fingerprint(`<tr><td><a href="/Ahri">Ahri</a></td><td>Foxfire</td><td>2011</td><td>1350</td></tr>`)
	b := Fingerprint(`<tr><td><a href="/Zed">Zed</a></td><td>Project</td><td>2014</td><td>Special</td></tr>`)
	if a != b {
		t.Errorf("text-only change moved the fingerprint: %016x vs %016x", a, b)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	doc := rows(20, "<td>a</td><td>b</td><td>c</td><td>d</td>")
	if Fingerprint(doc) != Fingerprint(doc) {
		t.Error("same markup produced different fingerprints")
	}
}

func TestFingerprint_SmallChangeIsClose(t *testing.T) {
	base := rows(40, "<td>a</td><td>b</td><td>c</td><td>d</td>")
	grown := base + "<tr><td>a</td><td>b</td><td>c</td><td>d</td></tr>"

	if d := Distance(Fingerprint(base), Fingerprint(grown)); d > 10 {
		t.Errorf("one extra row moved the fingerprint by %d bits", d)
	}
}

func TestFingerprint_StructureChangeIsFar(t *testing.T) {
	base := rows(40, "<td>a</td><td>b</td><td>c</td><td>d</td>")
	reshaped := `<div><ul><li><span>a</span></li><li><em>b</em></li></ul><section><p>c</p><p>d</p></section></div>`

	if d := Distance(Fingerprint(base), Fingerprint(reshaped)); d < 5 {
		t.Errorf("unrelated structure is only %d bits away", d)
	}
}

func TestFingerprint_FewTags(t *testing.T) {
	if Fingerprint("<td>x</td>") == 0 {
		t.Error("a single tag should still produce a fingerprint")
	}
	if got := Fingerprint("plain text, no markup"); got != 0 {
		t.Errorf("no tags should produce 0, got %016x", got)
	}
	if got := Fingerprint(""); got != 0 {
		t.Errorf("empty input should produce 0, got %016x", got)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%x, %x) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDrifted(t *testing.T) {
	if Drifted(0, 0x3FF, 10) {
		t.Error("10 bits at threshold 10 is not drift")
	}
	if !Drifted(0, 0x7FF, 10) {
		t.Error("11 bits at threshold 10 is drift")
	}
}
