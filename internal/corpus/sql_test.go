package corpus

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/corpusquery/internal/config"
	"github.com/dbsmedya/corpusquery/internal/logger"
)

func testSchema() *config.SchemaConfig {
	return &config.SchemaConfig{
		Table: "items",
		Columns: map[string]string{
			"title": "item title",
			"color": "item color",
		},
		Categorical:   []string{"color"},
		DistinctLimit: 100,
	}
}

func TestSQLCorpus_SchemaAccessors(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := NewSQL(db, testSchema(), logger.NewNop())

	assert.Equal(t, "items", c.Name())
	assert.Equal(t, "item color", c.ColumnMeanings()["color"])

	_, ok := c.CategoricalValues("color")
	assert.False(t, ok, "domain not loaded yet")
}

func TestSQLCorpus_LoadDomains(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT `color` FROM `items` WHERE `color` IS NOT NULL LIMIT 100").
		WillReturnRows(sqlmock.NewRows([]string{"color"}).
			AddRow("coffee").
			AddRow("black").
			AddRow("white"))

	c := NewSQL(db, testSchema(), logger.NewNop())
	require.NoError(t, c.LoadDomains(context.Background()))

	domain, ok := c.CategoricalValues("color")
	require.True(t, ok)
	assert.Equal(t, []string{"coffee", "black", "white"}, domain)

	_, ok = c.CategoricalValues("title")
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCorpus_Execute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM items WHERE color LIKE '%coffee%'").
		WillReturnRows(sqlmock.NewRows([]string{"title", "color"}).
			AddRow([]byte("Espresso Cup"), []byte("coffee")).
			AddRow([]byte("French Press"), []byte("coffee")))

	c := NewSQL(db, testSchema(), logger.NewNop())
	records, err := c.Execute(context.Background(), "SELECT * FROM items WHERE color LIKE '%coffee%'")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"title", "color"}, records[0].Fields())

	title, _ := records[0].Get("title")
	assert.Equal(t, "Espresso Cup", title)

	color, _ := records[1].Get("color")
	assert.Equal(t, "coffee", color)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCorpus_ExecuteError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM items").
		WillReturnError(assert.AnError)

	c := NewSQL(db, testSchema(), logger.NewNop())
	_, err = c.Execute(context.Background(), "SELECT * FROM items")
	require.Error(t, err)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "SELECT * FROM items", execErr.Query)
	assert.ErrorIs(t, err, assert.AnError)
}
