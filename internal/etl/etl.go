package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/services"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Colonnes attendues dans l'export CSV de la boutique.
const (
	colDate        = "Fecha"
	colDescription = "Descripcion"
	colPrice       = "Precio"
	colImages      = "Imagenes_Agrupadas"
	colCover       = "Imagen_Representativa"
)

var (
	markdownChars = regexp.MustCompile(`[*_~]`)
	boldSegments  = regexp.MustCompile(`\*([^*]+)\*`)
)

// GenerateTitle dérive un titre court de la description : première ligne non
// vide, débarrassée du markdown basique, tronquée à 60 caractères.
func GenerateTitle(description string) string {
	if strings.TrimSpace(description) == "" {
		return "Producto Sin Título"
	}

	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title := strings.TrimSpace(markdownChars.ReplaceAllString(line, ""))
		if title == "" {
			continue
		}
		runes := []rune(title)
		if len(runes) > 60 {
			return string(runes[:60])
		}
		return title
	}

	return "Nuevo Producto"
}

// ExtractTags extrait les tags de la description : les segments entre
// astérisques (gras façon WhatsApp, "*NUEVA COLECCIÓN*") deviennent des tags
// en majuscules, dédupliqués, les fragments de moins de 3 caractères ignorés.
func ExtractTags(description string) []string {
	if description == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, m := range boldSegments.FindAllStringSubmatch(description, -1) {
		tag := strings.ToUpper(strings.TrimSpace(m[1]))
		if len([]rune(tag)) <= 2 || seen[tag] {
			continue
		}
		tags = append(tags, tag)
		seen[tag] = true
	}
	return tags
}

// SplitImages convertit la colonne d'images groupées ("a.jpg, b.jpg") en liste.
func SplitImages(grouped string) []string {
	var images []string
	for _, img := range strings.Split(grouped, ",") {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	return images
}

// parseDate accepte les formats jour-en-tête de l'export. Repli sur now.
func parseDate(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"02/01/2006 15:04", "02/01/2006", "2/1/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return now
}

// LoadCSV lit l'export produits et le transforme en documents normalisés
// (titre généré, tags extraits, prix nettoyé, galerie aplatie).
func LoadCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lecture en-tête CSV: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[colDescription]; !ok {
		return nil, fmt.Errorf("colonne %q absente du CSV", colDescription)
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	now := time.Now()
	var products []models.Product
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("⚠️ Ligne %d ignorée: %v", line, err)
			continue
		}

		description := field(row, colDescription)
		gallery := SplitImages(field(row, colImages))
		cover := field(row, colCover)
		if cover == "" && len(gallery) > 0 {
			cover = gallery[0]
		}

		products = append(products, models.Product{
			ID:          primitive.NewObjectID(),
			Name:        GenerateTitle(description),
			Description: description,
			Price:       utils.ParsePrice(field(row, colPrice)),
			Tags:        ExtractTags(description),
			Image:       cover,
			Images:      gallery,
			CreatedAt:   parseDate(field(row, colDate), now),
			UpdatedAt:   now,
		})
	}

	return products, nil
}

// Run exécute l'ETL complet : lecture du CSV, transformation, insertion en
// masse dans Mongo puis indexation Elasticsearch best-effort.
func Run(ctx context.Context, csvPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("ouverture CSV: %w", err)
	}
	defer f.Close()

	products, err := LoadCSV(f)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		log.Println("⚠️ Aucun produit exploitable dans le CSV")
		return nil
	}
	log.Printf("📂 CSV chargé : %d produits", len(products))

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}
	res, err := database.Products().InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("insertion MongoDB: %w", err)
	}
	log.Printf("✅ %d produits insérés", len(res.InsertedIDs))

	for _, p := range products {
		services.IndexProduct(p)
	}

	return nil
}
