package ledger_test

import (
	"context"
	"strings"

	"github.com/soundfolio/creditsync/internal/poster"
	"github.com/soundfolio/creditsync/internal/project"
)

type fakePosters struct {
	failing map[string]error
}

func (f *fakePosters) Acquire(_ context.Context, imdbID string, title string) (*poster.Poster, error) {
	if err, ok := f.failing[imdbID]; ok {
		return nil, err
	}

	name := strings.ToLower(title) + ".jpg"
	return &poster.Poster{Filename: name, PublicPath: "/images/projects/" + name, Outcome: poster.DOWNLOADED}, nil
}

type identityRoles struct{}

func (identityRoles) Normalize(role string) project.Localized {
	return project.Localized{En: role, Es: role}
}
