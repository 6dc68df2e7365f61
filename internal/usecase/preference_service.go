package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/cricket-league/internal/domain/preference"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
)

type PreferenceService struct {
	store    preference.Store
	validate *validator.Validate
}

func NewPreferenceService(store preference.Store, validate *validator.Validate) *PreferenceService {
	if validate == nil {
		validate = NewValidator()
	}
	return &PreferenceService{store: store, validate: validate}
}

func (s *PreferenceService) FavoriteTeam(ctx context.Context, visitorID string) (team.Brand, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.FavoriteTeam")
	defer span.End()

	visitorID, err := s.visitor(visitorID)
	if err != nil {
		return team.Brand{}, err
	}

	code, ok, err := s.store.Get(ctx, visitorID, preference.KeyFavoriteTeam)
	if err != nil {
		return team.Brand{}, fmt.Errorf("get favorite team: %w", err)
	}
	if !ok {
		return team.Brand{}, fmt.Errorf("%w: no favorite team set", ErrNotFound)
	}
	brand, known := team.BrandFor(code)
	if !known {
		return team.Brand{}, fmt.Errorf("%w: stored favorite team %q is no longer in the league", ErrNotFound, code)
	}
	return brand, nil
}

// SetFavoriteTeam accepts a short code or team name.
func (s *PreferenceService) SetFavoriteTeam(ctx context.Context, visitorID, value string) (team.Brand, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.SetFavoriteTeam")
	defer span.End()

	visitorID, err := s.visitor(visitorID)
	if err != nil {
		return team.Brand{}, err
	}
	code, ok := team.ResolveShortCode(value)
	if !ok {
		return team.Brand{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, strings.TrimSpace(value))
	}
	if err := s.store.Set(ctx, visitorID, preference.KeyFavoriteTeam, code); err != nil {
		return team.Brand{}, fmt.Errorf("set favorite team: %w", err)
	}
	brand, _ := team.BrandFor(code)
	return brand, nil
}

func (s *PreferenceService) ClearFavoriteTeam(ctx context.Context, visitorID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.ClearFavoriteTeam")
	defer span.End()

	visitorID, err := s.visitor(visitorID)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, visitorID, preference.KeyFavoriteTeam); err != nil {
		return fmt.Errorf("remove favorite team: %w", err)
	}
	return nil
}

func (s *PreferenceService) visitor(raw string) (string, error) {
	visitorID := strings.TrimSpace(raw)
	if err := s.validate.Var(visitorID, "required,max=64,printascii"); err != nil {
		return "", fmt.Errorf("%w: visitor id must be 1-64 printable characters", ErrInvalidInput)
	}
	return visitorID, nil
}
