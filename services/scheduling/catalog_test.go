package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogParsesWindows(t *testing.T) {
	catalog, err := NewCatalog([]string{"9:00 AM - 11:00 AM", "11:00 AM - 1:00 PM"})
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, 540, catalog[0].Start)
	assert.Equal(t, 660, catalog[0].End)
	assert.Equal(t, 660, catalog[1].Start)
	assert.Equal(t, 780, catalog[1].End)
}

func TestNewCatalogRejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := NewCatalog([]string{"9:00 AM - 11:00 AM", "9:00 AM - 11:00 AM"})
	assert.Error(t, err)

	_, err = NewCatalog(nil)
	assert.Error(t, err)

	_, err = NewCatalog([]string{"morning shift"})
	assert.Error(t, err)
}

func TestCatalogForKnownAndDefaultTypes(t *testing.T) {
	carwash, err := CatalogFor("carwash")
	require.NoError(t, err)
	assert.Equal(t, "8:00 AM - 9:00 AM", carwash[0].Label)
	assert.Len(t, carwash, 7)

	// Unlisted types use the shared default windows.
	electrician, err := CatalogFor("electrician")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"9:00 AM - 11:00 AM",
		"11:00 AM - 1:00 PM",
		"1:00 PM - 3:00 PM",
		"3:00 PM - 5:00 PM",
		"5:00 PM - 7:00 PM",
	}, electrician.Labels())
}

func TestCatalogIndexOf(t *testing.T) {
	catalog, err := CatalogFor("health")
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.IndexOf("10:00 AM - 12:00 PM"))
	assert.Equal(t, -1, catalog.IndexOf("9:00 AM - 11:00 AM"))
}
