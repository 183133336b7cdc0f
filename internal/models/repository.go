package models

import (
	"fmt"
	"strings"
)

// RepositoryMetadata is one entry of a user's repository listing.
type RepositoryMetadata struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Language        *string `json:"language"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
	UpdatedAt       string  `json:"updated_at"`
}

// RepositoryRef identifies a GitHub repository.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepositoryRef resolves "owner/name" or a bare "name". A bare name is
// owned by username.
func ParseRepositoryRef(raw, username string) (RepositoryRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RepositoryRef{}, fmt.Errorf("empty repository reference")
	}

	owner, name, ok := strings.Cut(raw, "/")
	if !ok {
		if username == "" {
			return RepositoryRef{}, fmt.Errorf("repository %q has no owner", raw)
		}
		return RepositoryRef{Owner: username, Name: raw}, nil
	}

	// Extra segments ("owner/name/tree/main") are not part of the reference.
	name, _, _ = strings.Cut(name, "/")
	if owner == "" || name == "" {
		return RepositoryRef{}, fmt.Errorf("invalid repository reference %q", raw)
	}
	return RepositoryRef{Owner: owner, Name: name}, nil
}
