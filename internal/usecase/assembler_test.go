package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ReviewScanner/internal/domain"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	table := Assemble([]domain.ReviewRecord{
		{ReviewerName: "A", StarRating: "5.0", Title: "Great", ReviewDate: "14/03/2024", Body: "Loved it"},
		{Title: "", Body: "No title here"},
		{Title: "No body", Body: ""},
		{Title: "Great", Body: "Loved it"},
	})

	require.Equal(t, domain.ReviewTable{
		{Review: "Great Loved it"},
		{Review: " No title here"},
		{Review: "No body "},
		{Review: "Great Loved it"},
	}, table)
}

func TestAssembleEmpty(t *testing.T) {
	t.Parallel()

	table := Assemble(nil)
	require.NotNil(t, table)
	require.Empty(t, table)
}
