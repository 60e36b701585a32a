package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/config"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/database"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
)

// Seeds the immutable catalog from CSV files. Ingredient rows are
// "name,measurement_unit"; tag rows are "name,color,slug". Existing entries
// are left alone so the command is safe to re-run.
func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.csv", "path to the ingredients CSV")
	tagsPath := flag.String("tags", "data/tags.csv", "path to the tags CSV")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGormDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seedIngredients(db, *ingredientsPath); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}
	if err := seedTags(db, *tagsPath); err != nil {
		log.Fatalf("Failed to seed tags: %v", err)
	}
}

func seedIngredients(db *gorm.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	var created int
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		ingredient := models.Ingredient{Name: row[0], MeasurementUnit: row[1]}

		var count int64
		err := db.Model(&models.Ingredient{}).
			Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&ingredient).Error; err != nil {
			return err
		}
		created++
	}
	log.Printf("Seeded %d ingredients from %s", created, path)
	return nil
}

func seedTags(db *gorm.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No tags file at %s, skipping", path)
			return nil
		}
		return err
	}

	var created int
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		tag := models.Tag{Name: row[0], Color: row[1], Slug: row[2]}

		var count int64
		if err := db.Model(&models.Tag{}).Where("slug = ?", tag.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&tag).Error; err != nil {
			return err
		}
		created++
	}
	log.Printf("Seeded %d tags from %s", created, path)
	return nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
