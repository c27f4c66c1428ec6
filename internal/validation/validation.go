package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"recipebox/internal/models"
)

// FieldError is one structural violation in a submitted payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RecipePayload is the full create-path payload. ImageURL and CreatedAt are
// filled in by the route layer before validation runs.
type RecipePayload struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description" validate:"required"`
	Category        string    `json:"category" validate:"required,oneof=breakfast lunch dinner desserts drinks other"`
	CookTimeMinutes int       `json:"cookTimeMinutes" validate:"required,min=1"`
	Ingredients     []string  `json:"ingredients" validate:"required,min=1,dive,required"`
	Steps           []string  `json:"steps" validate:"required,min=1,dive,required"`
	Notes           string    `json:"notes"`
	ImageURL        string    `json:"imageUrl"`
	CreatedAt       time.Time `json:"createdAt" validate:"required"`
}

// ToRecipe converts a validated payload to its model form.
func (p *RecipePayload) ToRecipe() models.Recipe {
	return models.Recipe{
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		CookTimeMinutes: p.CookTimeMinutes,
		Ingredients:     p.Ingredients,
		Steps:           p.Steps,
		Notes:           p.Notes,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt.UTC(),
	}
}

// RecipeUpdate is the partial update-path payload. Nil means "not provided";
// provided fields are held to the same rules as on create.
type RecipeUpdate struct {
	Title           *string    `json:"title" validate:"omitnil,min=1"`
	Description     *string    `json:"description" validate:"omitnil,min=1"`
	Category        *string    `json:"category" validate:"omitnil,oneof=breakfast lunch dinner desserts drinks other"`
	CookTimeMinutes *int       `json:"cookTimeMinutes" validate:"omitnil,min=1"`
	Ingredients     []string   `json:"ingredients" validate:"omitnil,min=1,dive,required"`
	Steps           []string   `json:"steps" validate:"omitnil,min=1,dive,required"`
	Notes           *string    `json:"notes"`
	ImageURL        *string    `json:"imageUrl"`
	CreatedAt       *time.Time `json:"createdAt"`
}

// ToPatch converts a validated update payload to its model form.
func (u *RecipeUpdate) ToPatch() models.RecipePatch {
	return models.RecipePatch{
		Title:           u.Title,
		Description:     u.Description,
		Category:        u.Category,
		CookTimeMinutes: u.CookTimeMinutes,
		Ingredients:     u.Ingredients,
		Steps:           u.Steps,
		Notes:           u.Notes,
		ImageURL:        u.ImageURL,
		CreatedAt:       u.CreatedAt,
	}
}

// RecipeValidator checks inbound recipe payloads and reports every
// violation as a field-level error list.
type RecipeValidator struct {
	v *validator.Validate
}

func New() *RecipeValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names, not Go struct names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RecipeValidator{v: v}
}

// ValidateCreate checks a full payload. An empty result means valid.
func (rv *RecipeValidator) ValidateCreate(p *RecipePayload) []FieldError {
	return rv.collect(rv.v.Struct(p))
}

// ValidateUpdate checks a partial payload. An empty patch is valid.
func (rv *RecipeValidator) ValidateUpdate(u *RecipeUpdate) []FieldError {
	return rv.collect(rv.v.Struct(u))
}

func (rv *RecipeValidator) collect(err error) []FieldError {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe),
			Message: messageFor(fe),
		})
	}
	return out
}

// fieldPath strips the struct name prefix, leaving e.g. "ingredients[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required and must not be empty"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(models.Categories, ", "))
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least one entry"
		}
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
