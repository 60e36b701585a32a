package service

import "errors"

// Sentinel errors returned by services. Handlers translate these into HTTP
// statuses; nothing here is fatal to the process.
var (
	// Validation
	ErrInvalidFilterValue  = errors.New("filter value must be \"0\" or \"1\"")
	ErrNoIngredients       = errors.New("recipe must list at least one ingredient")
	ErrNoTags              = errors.New("recipe must have at least one tag")
	ErrDuplicateIngredient = errors.New("ingredients must not repeat within a recipe")
	ErrUnknownIngredient   = errors.New("unknown ingredient id")
	ErrUnknownTag          = errors.New("unknown tag id")

	// Collections and follows
	ErrAlreadyInCollection = errors.New("recipe is already in the collection")
	ErrNotInCollection     = errors.New("recipe is not in the collection")
	ErrSelfFollow          = errors.New("cannot subscribe to yourself")
	ErrAlreadyFollowing    = errors.New("already subscribed to this author")
	ErrNotFollowing        = errors.New("not subscribed to this author")

	// Cart download
	ErrEmptyCart = errors.New("shopping cart is empty")

	// Permissions and auth
	ErrNotRecipeAuthor    = errors.New("only the author can modify a recipe")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
