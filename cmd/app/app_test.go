package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spotcontest/api/internal/api/handler/v1/response"
	"github.com/spotcontest/api/internal/db"
	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/pkg/password"
	"github.com/spotcontest/api/internal/repository"
	"github.com/spotcontest/api/internal/repository/dao"
)

func TestHashPassword(t *testing.T) {
	app := NewApp()
	out := &bytes.Buffer{}
	app.Reader = strings.NewReader("correct-horse-9\n")
	app.Writer = out

	require.NoError(t, app.Run([]string{"spotcontest", "hash-password"}))

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct-horse-9")))

	app = NewApp()
	app.Reader = strings.NewReader("weak\n")
	app.Writer = &bytes.Buffer{}
	assert.ErrorIs(t, app.Run([]string{"spotcontest", "hash-password"}), password.ErrWeakPassword)
}

func TestCompute(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "contest.db")
	confPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(confPath, []byte(fmt.Sprintf(`
api:
  environment: test
  jwt_signing_key: key
db:
  driver: sqlite
sqlite:
  path: %s
`, dbPath)), 0o600))

	ctx := context.Background()
	gormDB, err := db.OpenSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gormDB))

	competitions := repository.NewCompetitionRepository(dao.NewCompetitionDAO(gormDB))
	entries := repository.NewEntryRepository(dao.NewEntryDAO(gormDB))

	_, err = competitions.Create(ctx, domain.Competition{ID: "c1", Name: "Spot", WinnerCount: 3})
	require.NoError(t, err)
	_, err = competitions.UpdateFinalJudge(ctx, "c1", domain.Coordinate{X: 0, Y: 0}, time.Now())
	require.NoError(t, err)
	_, err = entries.CreateCheckoutSummary(ctx, domain.CheckoutSummary{
		CompetitionID: "c1",
		ParticipantID: "p1",
		Participant:   domain.Identity{ID: "p1", Name: "Ann"},
		Tickets: []domain.RawTicket{{
			TicketNumber: 1,
			Markers:      []domain.RawMarker{{"id": "near", "x": 0.1, "y": 0.1}, {"id": "far", "x": 0.9, "y": 0.9}},
		}},
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	app := NewApp()
	out := &bytes.Buffer{}
	app.Writer = out
	require.NoError(t, app.Run([]string{"spotcontest", "--config", confPath, "compute", "--competition", "c1"}))

	var result response.CompetitionResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "p1:1", result.Winners[0].TicketID)
	assert.Equal(t, "near", result.Winners[0].Marker.ID)
	assert.Equal(t, 0.141421, result.Winners[0].Distance)

	app = NewApp()
	app.Writer = &bytes.Buffer{}
	assert.Error(t, app.Run([]string{"spotcontest", "--config", confPath, "compute", "--competition", "missing"}))
}
