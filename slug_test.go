package agencia

import "testing"

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Café com Leite!", "cafe-com-leite"},
		{"Marketing Digital: o guia", "marketing-digital-o-guia"},
		{"  Espaços   em   excesso  ", "espacos-em-excesso"},
		{"Ação & Reação", "acao-reacao"},
		{"UPPER case", "upper-case"},
		{"100% resultado", "100-resultado"},
		{"trailing---", "trailing"},
		{"---leading", "leading"},
		{"!!!", ""},
		{"", ""},
		{"já-é-um-slug", "ja-e-um-slug"},
	}
	for _, tt := range tests {
		if got := GenerateSlug(tt.title); got != tt.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestGenerateSlugDeterministic(t *testing.T) {
	title := "Publicidade Online"
	first := GenerateSlug(title)
	for i := 0; i < 10; i++ {
		if got := GenerateSlug(title); got != first {
			t.Fatalf("GenerateSlug not deterministic: %q vs %q", got, first)
		}
	}
}
