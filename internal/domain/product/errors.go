package product

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugTaken        = errors.New("slug already exists")
	ErrCategoryInUse    = errors.New("cannot delete category with products")
)
