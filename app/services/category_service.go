package services

import (
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/cache"
)

const categoryCachePrefix = "catalog:categories:"

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	ParentID *uint  `json:"parent_id"`
}

type CategoryService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

func NewCategoryService(
	categories *repositories.CategoryRepository,
	products *repositories.ProductRepository,
) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

// DescendantSet returns the id of the category plus every category below
// it, walking the tree breadth first. Visited ids are tracked so a corrupt
// tree with a cycle terminates instead of looping.
func (s *CategoryService) DescendantSet(id uint) ([]uint, error) {
	if _, err := s.categories.Find(id); err != nil {
		return nil, err
	}

	seen := map[uint]bool{id: true}
	result := []uint{id}
	frontier := []uint{id}

	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]

		children, err := s.categories.ChildrenOf(next)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			result = append(result, child)
			frontier = append(frontier, child)
		}
	}
	return result, nil
}

func (s *CategoryService) All() ([]models.Category, error) {
	var categories []models.Category
	if cache.Get(categoryCachePrefix+"all", &categories) {
		return categories, nil
	}
	categories, err := s.categories.All()
	if err != nil {
		return nil, err
	}
	cache.Set(categoryCachePrefix+"all", categories, catalogCacheTTL)
	return categories, nil
}

func (s *CategoryService) Find(id uint) (*models.Category, error) {
	return s.categories.Find(id)
}

func (s *CategoryService) Create(in CategoryInput) (*models.Category, error) {
	if in.ParentID != nil {
		if _, err := s.categories.Find(*in.ParentID); err != nil {
			return nil, apperr.ValidationField("parent_id", "parent category does not exist")
		}
	}
	exists, err := s.categories.SiblingExists(in.ParentID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("category %q already exists under this parent", in.Name)
	}

	category := &models.Category{Name: in.Name, ParentID: in.ParentID}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	cache.ForgetPrefix(categoryCachePrefix)
	return category, nil
}

// Update renames or re-parents a category. Re-parenting a category under
// itself or one of its own descendants would detach that subtree from the
// root, so the new parent is checked against the descendant set first.
func (s *CategoryService) Update(id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.categories.Find(id)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		descendants, err := s.DescendantSet(id)
		if err != nil {
			return nil, err
		}
		for _, d := range descendants {
			if d == *in.ParentID {
				return nil, apperr.ValidationField("parent_id",
					"cannot move a category under itself or its descendants")
			}
		}
		if _, err := s.categories.Find(*in.ParentID); err != nil {
			return nil, apperr.ValidationField("parent_id", "parent category does not exist")
		}
	}

	exists, err := s.categories.SiblingExists(in.ParentID, in.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("category %q already exists under this parent", in.Name)
	}

	category.Name = in.Name
	category.ParentID = in.ParentID
	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	cache.ForgetPrefix(categoryCachePrefix)
	cache.ForgetPrefix(productCachePrefix)
	return category, nil
}

// Delete removes a category. Refused while the category or any descendant
// still has products, so no product is left pointing at a dead category.
func (s *CategoryService) Delete(id uint) error {
	descendants, err := s.DescendantSet(id)
	if err != nil {
		return err
	}
	count, err := s.products.CountInCategories(descendants)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("category still has %d product(s)", count)
	}
	if children, err := s.categories.ChildrenOf(id); err != nil {
		return err
	} else if len(children) > 0 {
		return apperr.Conflict("category still has %d subcategorie(s)", len(children))
	}

	if err := s.categories.Delete(id); err != nil {
		return err
	}
	cache.ForgetPrefix(categoryCachePrefix)
	return nil
}
