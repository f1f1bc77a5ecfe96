package etl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTitle(t *testing.T) {
	cases := []struct {
		name        string
		description string
		want        string
	}{
		{"vide", "", "Producto Sin Título"},
		{"espaces uniquement", "   \n  ", "Producto Sin Título"},
		{"première ligne", "Remera oversize negra\nTalle S a XL", "Remera oversize negra"},
		{"markdown retiré", "*NUEVA COLECCIÓN* remeras", "NUEVA COLECCIÓN remeras"},
		{"saute les lignes vides", "\n\n  Gorra trucker  \nStock limitado", "Gorra trucker"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateTitle(tc.description))
		})
	}
}

func TestGenerateTitleTruncatesAt60Runes(t *testing.T) {
	long := strings.Repeat("á", 80)

	title := GenerateTitle(long)

	assert.Equal(t, 60, len([]rune(title)))
	assert.Equal(t, strings.Repeat("á", 60), title)
}

func TestExtractTags(t *testing.T) {
	cases := []struct {
		name        string
		description string
		want        []string
	}{
		{"vide", "", nil},
		{"sans astérisques", "Remera lisa de algodón", nil},
		{"segments en gras", "*NUEVA COLECCIÓN* ya disponible *oferta*", []string{"NUEVA COLECCIÓN", "OFERTA"}},
		{"fragments courts ignorés", "*ya* *XL* *GORRAS*", []string{"GORRAS"}},
		{"dédupliqué", "*oferta* y más *OFERTA*", []string{"OFERTA"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractTags(tc.description))
		})
	}
}

func TestSplitImages(t *testing.T) {
	assert.Nil(t, SplitImages(""))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, SplitImages(" a.jpg , b.jpg ,, "))
}

func TestLoadCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Fecha,Descripcion,Precio,Imagenes_Agrupadas,Imagen_Representativa",
		`15/03/2024,"*NUEVA COLECCIÓN* Remeras oversize` + "\n" + `Talles S a XL",💰70.000,"r1.jpg, r2.jpg",r1.jpg`,
		`,Gorra trucker,15.000,"g1.jpg",`,
	}, "\n")

	products, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "NUEVA COLECCIÓN Remeras oversize", first.Name)
	assert.Equal(t, int64(70000), first.Price)
	assert.Equal(t, []string{"NUEVA COLECCIÓN"}, first.Tags)
	assert.Equal(t, []string{"r1.jpg", "r2.jpg"}, first.Images)
	assert.Equal(t, "r1.jpg", first.Image)
	assert.Equal(t, 2024, first.CreatedAt.Year())

	second := products[1]
	assert.Equal(t, "Gorra trucker", second.Name)
	assert.Equal(t, int64(15000), second.Price)
	// Pas de couverture dans l'export → première image de la galerie
	assert.Equal(t, "g1.jpg", second.Image)
	assert.False(t, second.CreatedAt.IsZero())
}

func TestLoadCSVMissingDescriptionColumn(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("Fecha,Precio\n01/01/2024,100"))
	assert.Error(t, err)
}
