package services

import (
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryService(db *gorm.DB) *CategoryService {
	_, products, _, categories := newRepos(db)
	return NewCategoryService(categories, products)
}

func TestDescendantSetWalksTheWholeSubtree(t *testing.T) {
	db := testDB(t)
	svc := newCategoryService(db)

	root := seedCategory(t, db, "Electronics", nil)
	audio := seedCategory(t, db, "Audio", &root.ID)
	phones := seedCategory(t, db, "Phones", &root.ID)
	earbuds := seedCategory(t, db, "Earbuds", &audio.ID)
	seedCategory(t, db, "Books", nil) // unrelated root

	ids, err := svc.DescendantSet(root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{root.ID, audio.ID, phones.ID, earbuds.ID}, ids)

	// a leaf resolves to just itself
	ids, err = svc.DescendantSet(earbuds.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{earbuds.ID}, ids)
}

func TestDescendantSetUnknownCategory(t *testing.T) {
	db := testDB(t)
	svc := newCategoryService(db)

	_, err := svc.DescendantSet(42)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDescendantSetTerminatesOnCorruptCycle(t *testing.T) {
	db := testDB(t)
	svc := newCategoryService(db)

	a := seedCategory(t, db, "A", nil)
	b := seedCategory(t, db, "B", &a.ID)
	// corrupt the tree directly: A becomes a child of its own child
	require.NoError(t, db.Model(a).Update("parent_id", b.ID).Error)

	ids, err := svc.DescendantSet(a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)
}

func TestCreateCategoryRejectsDuplicateSiblings(t *testing.T) {
	db := testDB(t)
	svc := newCategoryService(db)

	root, err := svc.Create(CategoryInput{Name: "Electronics"})
	require.NoError(t, err)

	_, err = svc.Create(CategoryInput{Name: "Electronics"})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// same name under a different parent is fine
	_, err = svc.Create(CategoryInput{Name: "Electronics", ParentID: &root.ID})
	require.NoError(t, err)
}

func TestCreateCategoryRejectsMissingParent(t *testing.T) {
	db := testDB(t)
	svc := newCategoryService(db)

	missing := uint(99)
	_, err := svc.Create(CategoryInput{Name: "Orphan", ParentID: &missing})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateCategoryRefusesReparentIntoOwnSubtree(t *testing.T) {
	db := testDB(t)
	svc := newCategoryService(db)

	root := seedCategory(t, db, "Electronics", nil)
	audio := seedCategory(t, db, "Audio", &root.ID)
	earbuds := seedCategory(t, db, "Earbuds", &audio.ID)

	// under itself
	_, err := svc.Update(audio.ID, CategoryInput{Name: "Audio", ParentID: &audio.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// under its own descendant
	_, err = svc.Update(audio.ID, CategoryInput{Name: "Audio", ParentID: &earbuds.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// a legal re-parent still works
	other := seedCategory(t, db, "Accessories", nil)
	updated, err := svc.Update(audio.ID, CategoryInput{Name: "Audio", ParentID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, *updated.ParentID)
}

func TestDeleteCategoryGuards(t *testing.T) {
	db := testDB(t)
	svc := newCategoryService(db)

	root := seedCategory(t, db, "Electronics", nil)
	audio := seedCategory(t, db, "Audio", &root.ID)
	seedProduct(t, db, "Headphones", "79.99", 10, audio.ID)

	// products anywhere in the subtree block deletion
	err := svc.Delete(root.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	require.NoError(t, db.Exec("DELETE FROM products").Error)

	// children still block deletion of the parent
	err = svc.Delete(root.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	require.NoError(t, svc.Delete(audio.ID))
	require.NoError(t, svc.Delete(root.ID))
}
