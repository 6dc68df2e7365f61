package team

import "testing"

func TestResolveShortCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "FC", want: "FC", ok: true},
		{in: " ss ", want: "SS", ok: true},
		{in: "flame chargers", want: "FC", ok: true},
		{in: "Thunder Titans", want: "TT", ok: true},
		{in: "Nobody XI", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ResolveShortCode(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ResolveShortCode(%q)=(%q,%v) want (%q,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBrandFor(t *testing.T) {
	b, ok := BrandFor("fc")
	if !ok {
		t.Fatalf("expected FC brand")
	}
	if b.Color != "#e87425" || b.LogoURL != "/images/teams/fc-logo.png" {
		t.Fatalf("unexpected FC brand: %+v", b)
	}
	if _, ok := BrandFor("ZZ"); ok {
		t.Fatalf("expected unknown code to miss")
	}
}

func TestBrands_ReturnsCopy(t *testing.T) {
	first := Brands()
	first[0].Name = "mutated"
	if Brands()[0].Name == "mutated" {
		t.Fatalf("Brands must not expose the package table")
	}
}
