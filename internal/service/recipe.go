package service

import (
	"context"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter carries the optional recipe listing parameters. The boolean
// filters are tri-state: nil means absent, otherwise the raw "0"/"1" value.
type RecipeFilter struct {
	AuthorID         *uint
	TagSlugs         []string
	IsFavorited      *string
	IsInShoppingCart *string
}

// IngredientInput is one ingredient line of a recipe create/update request.
type IngredientInput struct {
	ID     uint
	Amount int
}

// RecipeInput is the write-side representation of a recipe. Tags and
// Ingredients fully replace any previous set on update.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientInput
}

// RecipeService handles recipe reads and writes. Writes that touch join rows
// run inside a single transaction so an invalid ingredient or tag id leaves
// no partial rows behind.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// ListRecipes applies the filter and returns recipes newest first (ties
// broken by id ascending). The favorited/cart filters need a caller identity
// and are silently skipped for anonymous requests; for authenticated callers
// any value other than "0"/"1" is an input error.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter, userID *uint) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		// IN-subquery rather than a plain join so the tag OR cannot
		// produce duplicate recipes.
		tagged := s.db.Model(&models.RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	var err error
	query, err = applyMembershipFilter(query, filter.IsFavorited, models.Favorite{}.TableName(), userID)
	if err != nil {
		return nil, err
	}
	query, err = applyMembershipFilter(query, filter.IsInShoppingCart, models.CartItem{}.TableName(), userID)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err = query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC, recipes.id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// applyMembershipFilter filters recipes by the per-user membership count in
// the given relation table: count > 0 for "1", count == 0 for "0".
func applyMembershipFilter(query *gorm.DB, value *string, table string, userID *uint) (*gorm.DB, error) {
	if value == nil {
		return query, nil
	}
	if userID == nil {
		// Anonymous callers get the unfiltered listing, not an error.
		return query, nil
	}
	if *value != "0" && *value != "1" {
		return nil, ErrInvalidFilterValue
	}

	op := "="
	if *value == "1" {
		op = ">"
	}
	return query.Where(
		clause.Expr{
			SQL:  "(SELECT COUNT(*) FROM " + table + " WHERE " + table + ".recipe_id = recipes.id AND " + table + ".user_id = ?) " + op + " 0",
			Vars: []interface{}{*userID},
		},
	), nil
}

// GetRecipe retrieves a recipe with its author, tags and ingredient lines.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe validates the input, resolves the image reference and writes
// the recipe row together with its ingredient lines and tag links as one
// transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uint, input RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	image, err := ResolveImage(ctx, s.images, input.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:        input.Name,
		Image:       image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		AuthorID:    authorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCatalogIDs(tx, input); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		return createJoinRows(tx, recipe.ID, input)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe replaces the recipe's fields and its full ingredient and tag
// sets. Join rows are deleted and recreated, not diffed: callers rely on
// atomic full replacement.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uint, input RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotRecipeAuthor
	}

	image, err := ResolveImage(ctx, s.images, input.Image)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCatalogIDs(tx, input); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         input.Name,
			"image":        image,
			"text":         input.Text,
			"cooking_time": input.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return createJoinRows(tx, id, input)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe and cascades to every row referencing it:
// ingredient lines, tag links, favorites and cart items.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return ErrNotRecipeAuthor
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.RecipeIngredient{},
			&models.RecipeTag{},
			&models.Favorite{},
			&models.CartItem{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

func validateRecipeInput(input RecipeInput) error {
	if len(input.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if len(input.TagIDs) == 0 {
		return ErrNoTags
	}

	seen := make(map[uint]bool, len(input.Ingredients))
	for _, line := range input.Ingredients {
		if seen[line.ID] {
			return ErrDuplicateIngredient
		}
		seen[line.ID] = true
	}
	return nil
}

// checkCatalogIDs verifies inside the transaction that every referenced tag
// and ingredient exists, before any join row is written.
func checkCatalogIDs(tx *gorm.DB, input RecipeInput) error {
	var count int64
	if err := tx.Model(&models.Tag{}).Where("id IN ?", input.TagIDs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(uniqueIDs(input.TagIDs))) {
		return ErrUnknownTag
	}

	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, line.ID)
	}
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ingredientIDs)) {
		return ErrUnknownIngredient
	}
	return nil
}

func createJoinRows(tx *gorm.DB, recipeID uint, input RecipeInput) error {
	lines := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		lines = append(lines, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	if err := tx.Create(&lines).Error; err != nil {
		return err
	}

	links := make([]models.RecipeTag, 0, len(input.TagIDs))
	for _, tagID := range uniqueIDs(input.TagIDs) {
		links = append(links, models.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	return tx.Create(&links).Error
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
