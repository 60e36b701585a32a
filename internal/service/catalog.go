package service

import (
	"context"
	"strings"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService serves the immutable reference data: tags and ingredients.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// SearchIngredients lists ingredients matching term, case-insensitively.
// Names starting with the term rank before names merely containing it; each
// rank keeps the catalog's name order. An empty term lists everything.
func (s *CatalogService) SearchIngredients(ctx context.Context, term string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient

	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	term = strings.TrimSpace(term)
	if term == "" {
		err := query.Order("name ASC, id ASC").Find(&ingredients).Error
		return ingredients, err
	}

	lowered := strings.ToLower(term)
	err := query.
		Where("LOWER(name) LIKE ?", "%"+lowered+"%").
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END, name ASC, id ASC",
			Vars: []interface{}{lowered + "%"},
		}}).
		Find(&ingredients).Error
	return ingredients, err
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
