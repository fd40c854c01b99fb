package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngredient(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Aloe Vera (Organic) Extract", "Aloe Vera"},
		{"Vitamin-C/Ester", "Vitamin C"},
		{"Hyaluronic Acid (2%)", "Hyaluronic"},
		{"  niacinamide  ", "Niacinamide"},
		{"BUTYROSPERMUM PARKII (SHEA) BUTTER", "Butyrospermum Parkii Butter"},
		{"Sodium\\Chloride", "Sodium Chloride"},
		{"Rosa Canina Fruit Oil", "Rosa Canina Fruit"},
		{"Aqua (Water)", "Aqua"},
		{"Oilseed", "Oilseed"},
		{"1,2-hexanediol", "1,2 Hexanediol"},
		{"CI 77491 (Iron Oxides)", "Ci 77491"},
		{"Water", ""},
		{"Extract / Oil - Juice", ""},
		{"(Fragrance)", ""},
		{"", ""},
		{"a (x\ny) b", "A B"},
		{"Rose (organic\nfair trade) Extract", "Rose"},
		{"ſalt", ""},
		{"ſalt ſcrub", "Scrub"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Ingredient(tt.in))
		})
	}
}

func TestIngredient_Idempotent(t *testing.T) {
	inputs := []string{
		"Aloe Vera (Organic) Extract",
		"Vitamin-C/Ester",
		"((a)b) Oil",
		"a) (b",
		"Oi(x)l Rose",
		"Sal-Oil-t",
		"o'neil 1st",
		"Caprylic/Capric Triglyceride",
		"  Glycerin\t\n",
		"Parfum (Fragrance) , ",
		"ÉCORCE d'orange",
		"Rose Oil Hip",
		"PEG-100 Stearate",
		"Salt Water Juice Powder",
		"Rosa Damascena (organic,\nfair trade) Flower",
		"ſalt",
		"Oſter (x) ſalt",
		"caf\xe9 oil",
	}

	for _, in := range inputs {
		once := Ingredient(in)
		assert.Equal(t, once, Ingredient(once), "input %q", in)
	}
}

func FuzzIngredient(f *testing.F) {
	for _, seed := range []string{
		"Aloe Vera (Organic) Extract",
		"a (x\ny) b",
		"ſalt",
		"Vitamin-C/Ester",
		"((a)b) Oil",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Ingredient(s)
		if twice := Ingredient(once); twice != once {
			t.Fatalf("Ingredient(%q) = %q, but Ingredient(%q) = %q", s, once, once, twice)
		}
	})
}
