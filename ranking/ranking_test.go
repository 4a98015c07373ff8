// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/ranking"
	"github.com/danielhkuo/gimnis/testutil"
)

func TestGetRankings(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	seniors := "Individual - Seniors"
	juniors := "Pair - Juniors"
	testutil.CreateTestCompetitor(t, conn, 1, seniors, "Club A", models.SexFemale)
	testutil.CreateTestCompetitor(t, conn, 2, seniors, "Club B", models.SexFemale)
	testutil.CreateTestCompetitor(t, conn, 3, seniors, "Club C", models.SexMale)
	testutil.CreateTestCompetitor(t, conn, 4, seniors, "Club D", models.SexMale)
	testutil.CreateTestCompetitor(t, conn, 5, juniors, "Club E", models.SexMale, models.SexFemale)

	for id, total := range map[int64]float64{1: 20.5, 2: 22.125, 3: 20.5, 5: 18} {
		_, err := conn.Exec(`
			UPDATE competitors SET validated = TRUE, frozen_total = $1 WHERE id = $2
		`, total, id)
		require.NoError(t, err)
	}

	r, err := ranking.New(conn).GetRankings(ctx)
	require.NoError(t, err)
	require.Len(t, r, 2)

	assert.Equal(t, []models.RankingEntry{
		{Position: 1, Place: "1st", CompetitorID: 2, Club: "Club B", Score: 22.125},
		{Position: 2, Place: "2nd", CompetitorID: 1, Club: "Club A", Score: 20.5},
		{Position: 3, Place: "3rd", CompetitorID: 3, Club: "Club C", Score: 20.5},
	}, r[seniors])

	assert.Equal(t, []models.RankingEntry{
		{Position: 1, Place: "1st", CompetitorID: 5, Club: "Club E", Score: 18},
	}, r[juniors])
}

func TestRankingsExcludeUnvalidated(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestCompetitor(t, conn, 1, "Trio - Seniors", "Club A", models.SexFemale)

	engine := ranking.New(conn)
	r, err := engine.GetRankings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, r)

	entries, err := engine.Category(context.Background(), "Trio - Seniors")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
