package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"esatalim/internal/common"
	"esatalim/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var categoryColumnNames = []string{
	"id", "name", "description", "icon", "parent_id", "parent_name", "is_active", "sort_order", "created_at", "updated_at",
}

type CategoryRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    CategoryRepository
	context context.Context
}

func (suite *CategoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewCategoryRepo(mock)
	suite.context = context.Background()
}

func (suite *CategoryRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestCategoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryRepoTestSuite))
}

func (suite *CategoryRepoTestSuite) TestListActive_OrdersBySortOrderThenName() {
	now := time.Now()
	parentID := uuid.New()
	icon := "🏠"

	suite.mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.is_active ORDER BY c.sort_order ASC, c.name ASC`)).
		WillReturnRows(pgxmock.NewRows(categoryColumnNames).
			AddRow(parentID, "Emlak", "Konut, işyeri", &icon, nil, "", true, 0, now, now).
			AddRow(uuid.New(), "Konut Satılık", "", nil, &parentID, "Emlak", true, 1, now, now))

	categories, err := suite.repo.ListActive(suite.context)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 2)

	assert.Nil(suite.T(), categories[0].Parent)
	assert.Equal(suite.T(), "🏠", *categories[0].Icon)
	require.NotNil(suite.T(), categories[1].Parent)
	assert.Equal(suite.T(), parentID, categories[1].Parent.ID)
	assert.Equal(suite.T(), "Emlak", categories[1].Parent.Name)
}

func (suite *CategoryRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.id = $1`)).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByID(suite.context, id)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
	assert.EqualError(suite.T(), err, "Category not found")
}

func (suite *CategoryRepoTestSuite) TestCreate() {
	now := time.Now()
	category := &models.Category{ID: uuid.New(), Name: "Vasıta", IsActive: true, SortOrder: 2}

	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories`)).
		WithArgs(category.ID, "Vasıta", "", category.Icon, category.ParentID, true, 2).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(suite.T(), suite.repo.Create(suite.context, category))
	assert.Equal(suite.T(), now, category.CreatedAt)
}

func (suite *CategoryRepoTestSuite) TestDelete_DoesNotTouchListings() {
	id := uuid.New()
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(suite.T(), suite.repo.Delete(suite.context, id))
}

func (suite *CategoryRepoTestSuite) TestUpdate_NotFound() {
	category := &models.Category{ID: uuid.New(), Name: "Yok"}
	suite.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE categories`)).
		WithArgs(category.Name, category.Description, category.Icon, category.ParentID, category.IsActive,
			category.SortOrder, category.ID).
		WillReturnError(pgx.ErrNoRows)

	err := suite.repo.Update(suite.context, category)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}
