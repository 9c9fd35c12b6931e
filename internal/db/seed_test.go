package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/db"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/testutil"
)

func TestSeedDefaultIsIdempotent(t *testing.T) {
	gdb := testutil.SetupTestDB(t)

	f, err := db.LoadSeedFile("")
	require.NoError(t, err)
	require.NotEmpty(t, f.Pages)

	require.NoError(t, db.Seed(gdb, f))
	require.NoError(t, db.Seed(gdb, f))

	var pages int64
	require.NoError(t, gdb.Model(&models.Page{}).Count(&pages).Error)
	assert.Equal(t, int64(len(f.Pages)), pages)

	var sections []models.Section
	require.NoError(t, gdb.Order("position asc").Find(&sections).Error)
	require.Len(t, sections, len(f.Pages[0].Sections))
	assert.Equal(t, "hero", sections[0].Type)
	assert.True(t, sections[0].Visible)
	assert.JSONEq(t, `{"eyebrow":"Product studio","primary_label":"Start a project","primary_href":"#contact","secondary_label":"See our work","secondary_href":"#offer"}`, string(sections[0].Content))

	var approved int64
	require.NoError(t, gdb.Model(&models.Testimonial{}).Where("approved = ?", true).Count(&approved).Error)
	assert.Equal(t, int64(1), approved)
}

func TestLoadSeedFileMissing(t *testing.T) {
	_, err := db.LoadSeedFile("/does/not/exist.yaml")
	require.Error(t, err)
}
