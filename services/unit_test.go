package services

import (
	"context"
	"testing"

	"tradehub/models"

	"github.com/stretchr/testify/require"
)

func TestUnitCRUD(t *testing.T) {
	svc := NewUnitService(newRepos(t).Units)
	ctx := context.Background()

	kg, err := svc.Create(ctx, CreateUnitInput{Name: "Kilogram", Symbol: " kg "})
	require.NoError(t, err)
	require.Equal(t, "kg", kg.Symbol)

	_, err = svc.Create(ctx, CreateUnitInput{Name: "Kilogram"})
	require.Equal(t, KindConflict, KindOf(err))

	updated, err := svc.Update(ctx, kg.ID, UpdateUnitInput{Symbol: models.Some("KG")})
	require.NoError(t, err)
	require.Equal(t, "KG", updated.Symbol)
	require.Equal(t, "Kilogram", updated.Name)

	res, err := svc.List(ctx, ListParams{Search: "kilo"})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Meta.Total)

	require.NoError(t, svc.Delete(ctx, kg.ID))
	_, err = svc.Get(ctx, kg.ID)
	require.Equal(t, KindNotFound, KindOf(err))
}
