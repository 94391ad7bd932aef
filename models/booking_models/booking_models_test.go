package booking_models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmission_MissingFields(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		var sub Submission
		err := json.Unmarshal([]byte(`{
			"name": "Ada", "email": "a@x.com", "phone": "070",
			"date": "2024-07-01", "passengers": 2,
			"package": "halvdag", "experience": "beginner"
		}`), &sub)
		require.NoError(t, err)
		assert.Empty(t, sub.MissingFields())
	})

	t.Run("several missing", func(t *testing.T) {
		var sub Submission
		err := json.Unmarshal([]byte(`{"name": "Ada", "date": "2024-07-01"}`), &sub)
		require.NoError(t, err)
		assert.Equal(t, []string{"email", "phone", "passengers", "package", "experience"}, sub.MissingFields())
	})

	t.Run("whitespace counts as missing", func(t *testing.T) {
		var sub Submission
		err := json.Unmarshal([]byte(`{
			"name": "   ", "email": "a@x.com", "phone": "070",
			"date": "2024-07-01", "passengers": 2,
			"package": "halvdag", "experience": "beginner"
		}`), &sub)
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, sub.MissingFields())
	})
}

func TestPassengerCount(t *testing.T) {
	parse := func(t *testing.T, payload string) PassengerCount {
		t.Helper()
		var sub Submission
		require.NoError(t, json.Unmarshal([]byte(payload), &sub))
		return sub.Passengers
	}

	t.Run("json number", func(t *testing.T) {
		n, err := parse(t, `{"passengers": 3}`).Value()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("numeric string", func(t *testing.T) {
		n, err := parse(t, `{"passengers": "2"}`).Value()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("absent", func(t *testing.T) {
		assert.True(t, parse(t, `{}`).IsZero())
	})

	t.Run("null", func(t *testing.T) {
		assert.True(t, parse(t, `{"passengers": null}`).IsZero())
	})

	t.Run("non-numeric", func(t *testing.T) {
		_, err := parse(t, `{"passengers": "many"}`).Value()
		assert.Error(t, err)
	})

	t.Run("below range", func(t *testing.T) {
		_, err := parse(t, `{"passengers": 0}`).Value()
		assert.ErrorIs(t, err, ErrPassengersOutOfRange)
	})

	t.Run("above range", func(t *testing.T) {
		_, err := parse(t, `{"passengers": 6}`).Value()
		assert.ErrorIs(t, err, ErrPassengersOutOfRange)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		for _, v := range []string{`{"passengers": 1}`, `{"passengers": 5}`} {
			_, err := parse(t, v).Value()
			assert.NoError(t, err)
		}
	})
}

func TestNewBooking(t *testing.T) {
	sub := Submission{
		Name:       "  Ada Lovelace  ",
		Email:      " ada@example.com ",
		Phone:      " 070-1234567 ",
		Date:       "2024-07-01",
		Package:    "halvdag",
		Experience: "beginner",
		Notes:      "  gärna förmiddag  ",
	}

	b := NewBooking(sub, 2)

	assert.NotEmpty(t, b.ID)
	assert.NotEmpty(t, b.CreatedAt)
	assert.Equal(t, StatusPending, b.Status)
	assert.Empty(t, b.DecidedAt)
	assert.Equal(t, "Ada Lovelace", b.Name)
	assert.Equal(t, "ada@example.com", b.Email)
	assert.Equal(t, "070-1234567", b.Phone)
	assert.Equal(t, 2, b.Passengers)
	assert.Equal(t, "gärna förmiddag", b.Notes)

	other := NewBooking(sub, 2)
	assert.NotEqual(t, b.ID, other.ID)
}

func TestPackageLabel(t *testing.T) {
	assert.Equal(t, "Prova-på (1 timme)", PackageLabel("prova"))
	assert.Equal(t, "Halvdagstur (3 timmar)", PackageLabel("halvdag"))
	assert.Equal(t, "Heldagsäventyr (6 timmar)", PackageLabel("heldag"))

	// Unknown codes fall back to the raw code, empty to a dash.
	assert.Equal(t, "weekend", PackageLabel("weekend"))
	assert.Equal(t, "—", PackageLabel(""))
}
