package contentstack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-league/internal/domain/registration"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
)

var _ registration.Repository = (*RegistrationRepository)(nil)

type fakeWriter struct {
	created    map[string]any
	published  []string
	createErr  error
	publishErr error
}

func (f *fakeWriter) CreateEntry(_ context.Context, contentType string, fields map[string]any) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = fields
	return "blt-" + contentType, nil
}

func (f *fakeWriter) PublishEntry(_ context.Context, _ string, uid string) error {
	f.published = append(f.published, uid)
	return f.publishErr
}

func sampleSubmission() registration.Submission {
	return registration.Submission{
		FullName:          "Asha Rao",
		Email:             "asha@example.com",
		Phone:             "+1 555 0100",
		DateOfBirth:       "1999-04-12",
		PreferredRole:     "Batsman",
		BattingStyle:      "Right-handed",
		PreferredTeam:     "flame chargers",
		PreferredTeamCode: "FC",
		SubmittedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRegistrationRepository_CreateMapsFields(t *testing.T) {
	writer := &fakeWriter{}
	repo := NewRegistrationRepository(writer, false, logging.NewNop())

	uid, err := repo.Create(context.Background(), sampleSubmission())
	require.NoError(t, err)
	assert.Equal(t, "blt-player_registration", uid)

	assert.Equal(t, "Asha Rao", writer.created["title"])
	assert.Equal(t, "asha@example.com", writer.created["email"])
	assert.Equal(t, "pending", writer.created["status"])
	assert.Equal(t, "FC", writer.created["preferred_team_code"])
	assert.Equal(t, "2026-03-01T10:00:00Z", writer.created["submitted_at"])
	assert.Empty(t, writer.published)
}

func TestRegistrationRepository_PublishFailureKeepsEntry(t *testing.T) {
	writer := &fakeWriter{publishErr: errors.New("publish queue full")}
	repo := NewRegistrationRepository(writer, true, logging.NewNop())

	uid, err := repo.Create(context.Background(), sampleSubmission())
	require.NoError(t, err)
	assert.Equal(t, []string{uid}, writer.published)
}

func TestRegistrationRepository_CreateError(t *testing.T) {
	writer := &fakeWriter{createErr: errors.New("boom")}
	repo := NewRegistrationRepository(writer, true, logging.NewNop())

	_, err := repo.Create(context.Background(), sampleSubmission())
	assert.Error(t, err)
	assert.Empty(t, writer.published)
}
